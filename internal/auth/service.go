package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jobhive/jobhive-backend/internal/notifications"
	"github.com/jobhive/jobhive-backend/internal/users"
	pkgauth "github.com/jobhive/jobhive-backend/pkg/auth"
	"github.com/jobhive/jobhive-backend/pkg/config"
	"github.com/jobhive/jobhive-backend/pkg/db/models"
	"github.com/jobhive/jobhive-backend/pkg/enums"
	pkgerrors "github.com/jobhive/jobhive-backend/pkg/errors"
	"github.com/jobhive/jobhive-backend/pkg/security"
)

const resetCodeLength = 6

type userRepository interface {
	Create(ctx context.Context, dto users.CreateUserDTO) (*models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByMobile(ctx context.Context, mobile string) (*models.User, error)
	FindByEmailOrMobile(ctx context.Context, identifier string) (*models.User, error)
	FindByResetCode(ctx context.Context, code string) (*models.User, error)
	CountByResetCode(ctx context.Context, code string) (int64, error)
	Update(ctx context.Context, user *models.User) error
}

type tokenRepository interface {
	Create(ctx context.Context, token string, userID uuid.UUID, userAgent string) (*models.Token, error)
	Find(ctx context.Context, token string) (*models.Token, error)
	InvalidateUserTokens(ctx context.Context, userID uuid.UUID) error
}

// Service exposes the credential and session operations.
type Service interface {
	Signup(ctx context.Context, input SignupInput) error
	ActivateAccount(ctx context.Context, token string) error
	Login(ctx context.Context, input LoginInput) (*LoginResult, error)
	ForgetPassword(ctx context.Context, email string) error
	VerifyResetCode(ctx context.Context, code string) error
	ResetPassword(ctx context.Context, email, newPassword string) error
	Authenticate(ctx context.Context, rawToken string) (*models.User, error)
}

type service struct {
	users  userRepository
	tokens tokenRepository
	mailer notifications.Mailer

	appCfg      config.AppConfig
	jwtCfg      config.JWTConfig
	passwordCfg config.PasswordConfig
	mediaCfg    config.CloudinaryConfig
	resetCfg    config.ResetCodeConfig

	now func() time.Time
}

// ServiceDeps bundles the collaborators the auth service needs.
type ServiceDeps struct {
	Users  userRepository
	Tokens tokenRepository
	Mailer notifications.Mailer

	App        config.AppConfig
	JWT        config.JWTConfig
	Password   config.PasswordConfig
	Cloudinary config.CloudinaryConfig
	Reset      config.ResetCodeConfig

	Now func() time.Time
}

// NewService builds an auth service with the provided dependencies.
func NewService(deps ServiceDeps) (Service, error) {
	if deps.Users == nil {
		return nil, fmt.Errorf("user repository required")
	}
	if deps.Tokens == nil {
		return nil, fmt.Errorf("token repository required")
	}
	if deps.Mailer == nil {
		return nil, fmt.Errorf("mailer required")
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		users:       deps.Users,
		tokens:      deps.Tokens,
		mailer:      deps.Mailer,
		appCfg:      deps.App,
		jwtCfg:      deps.JWT,
		passwordCfg: deps.Password,
		mediaCfg:    deps.Cloudinary,
		resetCfg:    deps.Reset,
		now:         now,
	}, nil
}

// Signup registers an inactive account and emails the activation link.
// The email goes out before the row is written, matching the pipeline
// order the product expects: no account without a deliverable address.
func (s *service) Signup(ctx context.Context, input SignupInput) error {
	if input.RecoveryEmail != nil && *input.RecoveryEmail == input.Email {
		return pkgerrors.New(pkgerrors.CodeConflict, "Email and recovery email cant be the same.")
	}

	if _, err := s.users.FindByEmail(ctx, input.Email); err == nil {
		return pkgerrors.New(pkgerrors.CodeConflict, "Email already exist.")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup email")
	}

	if _, err := s.users.FindByMobile(ctx, input.MobileNumber); err == nil {
		return pkgerrors.New(pkgerrors.CodeConflict, "Number already used.")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup mobile number")
	}

	if err := s.sendActivationLink(ctx, input.Email); err != nil {
		return err
	}

	hash, err := security.HashPassword(input.Password, s.passwordCfg)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	if _, err := s.users.Create(ctx, users.CreateUserDTO{
		FirstName:         input.FirstName,
		LastName:          input.LastName,
		Email:             input.Email,
		PasswordHash:      hash,
		RecoveryEmail:     input.RecoveryEmail,
		DateOfBirth:       input.DateOfBirth,
		MobileNumber:      input.MobileNumber,
		Role:              input.Role,
		ProfilePictureURL: s.mediaCfg.DefaultProfilePictureURL,
		ProfilePictureID:  s.mediaCfg.DefaultProfilePictureID,
	}); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create user")
	}
	return nil
}

// ActivateAccount flips the activation flag for the email baked into the link token.
func (s *service) ActivateAccount(ctx context.Context, token string) error {
	email, err := pkgauth.ParseActivationToken(s.jwtCfg, token)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid activation token")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "User not found.")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}

	user.IsActive = true
	if err := s.users.Update(ctx, user); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "activate user")
	}
	return nil
}

// Login verifies the credentials, marks the account online and mints a
// persisted session token.
func (s *service) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	user, err := s.users.FindByEmailOrMobile(ctx, input.Identifier)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "User not found.")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup user")
	}

	match, err := security.VerifyPassword(input.Password, user.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !match {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "Password is wrong.")
	}

	if !user.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "You need to activate your account first.")
	}

	user.Status = enums.UserStatusOnline
	if err := s.users.Update(ctx, user); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update user status")
	}

	token, err := pkgauth.MintAccessToken(s.jwtCfg, s.now(), pkgauth.AccessTokenPayload{
		UserID:    user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		UserName:  user.Username,
		Role:      user.Role,
		IsActive:  user.IsActive,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint token")
	}

	if _, err := s.tokens.Create(ctx, token, user.ID, input.UserAgent); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist token")
	}
	return &LoginResult{Token: token}, nil
}

// ForgetPassword issues a short-lived numeric code and mails it. The code
// must be globally unique so the verify step can resolve it back to an
// account without an email.
func (s *service) ForgetPassword(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "User not found.")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}

	code, err := security.GenerateResetCode(resetCodeLength)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate reset code")
	}

	taken, err := s.users.CountByResetCode(ctx, code)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check reset code")
	}
	if taken > 0 {
		return pkgerrors.New(pkgerrors.CodeConflict, "Forget code already exist try to generate another code.")
	}

	subject, body := notifications.ResetCodeEmail(code)
	if err := s.mailer.Send(ctx, user.Email, subject, body); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "send reset code email")
	}

	expiresAt := s.now().Add(s.resetCfg.TTL)
	user.ResetCode = &code
	user.ResetCodeIsValid = true
	user.ResetCodeIsVerified = false
	user.ResetCodeExpiresAt = &expiresAt
	if err := s.users.Update(ctx, user); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store reset code")
	}
	return nil
}

// VerifyResetCode consumes a valid, unexpired code; afterwards the account
// may set a new password exactly once.
func (s *service) VerifyResetCode(ctx context.Context, code string) error {
	user, err := s.users.FindByResetCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeUnauthorized, "Reset code not found.")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup reset code")
	}

	if !user.ResetCodeIsValid {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "Reset code not valid.")
	}
	if user.ResetCodeExpiresAt == nil || s.now().After(*user.ResetCodeExpiresAt) {
		return pkgerrors.New(pkgerrors.CodeTokenExpired, "Reset code expired.")
	}

	user.ResetCodeIsVerified = true
	user.ResetCodeIsValid = false
	if err := s.users.Update(ctx, user); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "verify reset code")
	}
	return nil
}

// ResetPassword completes the forget-password flow after code verification.
func (s *service) ResetPassword(ctx context.Context, email, newPassword string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "User not found.")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}

	if !user.ResetCodeIsVerified {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "You need to generate code first.")
	}

	same, err := security.VerifyPassword(newPassword, user.PasswordHash)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if same {
		return pkgerrors.New(pkgerrors.CodeValidation, "New password cant be same as old password.")
	}

	hash, err := security.HashPassword(newPassword, s.passwordCfg)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	user.PasswordHash = hash
	user.ResetCodeIsVerified = false
	if err := s.users.Update(ctx, user); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update password")
	}

	if err := s.tokens.InvalidateUserTokens(ctx, user.ID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "invalidate tokens")
	}
	return nil
}

// Authenticate resolves a bearer token to its account. The persisted
// record is consulted first: an unknown token and an invalidated one are
// different failures. Then the signature must verify and the account must
// still exist, be active, and be online.
func (s *service) Authenticate(ctx context.Context, rawToken string) (*models.User, error) {
	record, err := s.tokens.Find(ctx, rawToken)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "Token not found.")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup token")
	}
	if !record.IsValid {
		return nil, pkgerrors.New(pkgerrors.CodeTokenExpired, "Token expired, login again.")
	}

	claims, err := pkgauth.ParseAccessToken(s.jwtCfg, rawToken)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token")
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "User not found.")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}

	if !user.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "You need to activate your account first.")
	}
	if user.Status == enums.UserStatusOffline {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "User not online. you need to login again.")
	}
	return user, nil
}

func (s *service) sendActivationLink(ctx context.Context, email string) error {
	token, err := pkgauth.MintActivationToken(s.jwtCfg, s.now(), email)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint activation token")
	}
	subject, body := notifications.ActivationEmail(s.appCfg.BaseURL, token)
	if err := s.mailer.Send(ctx, email, subject, body); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "send activation email")
	}
	return nil
}
