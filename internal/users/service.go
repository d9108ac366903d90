package users

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/jobhive/jobhive-backend/internal/notifications"
	pkgauth "github.com/jobhive/jobhive-backend/pkg/auth"
	"github.com/jobhive/jobhive-backend/pkg/config"
	"github.com/jobhive/jobhive-backend/pkg/db/models"
	"github.com/jobhive/jobhive-backend/pkg/enums"
	pkgerrors "github.com/jobhive/jobhive-backend/pkg/errors"
	"github.com/jobhive/jobhive-backend/pkg/logger"
	"github.com/jobhive/jobhive-backend/pkg/media"
	"github.com/jobhive/jobhive-backend/pkg/security"
)

type userRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByMobile(ctx context.Context, mobile string) (*models.User, error)
	FindByRecoveryEmail(ctx context.Context, recoveryEmail string) ([]models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type tokenInvalidator interface {
	InvalidateUserTokens(ctx context.Context, userID uuid.UUID) error
}

type companiesRepository interface {
	FindByHR(ctx context.Context, hrID uuid.UUID) ([]models.Company, error)
	DeleteByHR(ctx context.Context, hrID uuid.UUID) error
}

type jobsRepository interface {
	FindByAddedBy(ctx context.Context, userID uuid.UUID) ([]models.Job, error)
	DeleteByAddedBy(ctx context.Context, userID uuid.UUID) error
}

type applicationsRepository interface {
	DeleteByJobIDs(ctx context.Context, jobIDs []uuid.UUID) error
}

// Service exposes account operations.
type Service interface {
	Get(ctx context.Context, userID uuid.UUID) (*UserDTO, error)
	GetPublic(ctx context.Context, userID uuid.UUID) (*PublicUserDTO, error)
	Update(ctx context.Context, userID uuid.UUID, input UpdateUserInput) (*UserDTO, error)
	UpdateProfilePicture(ctx context.Context, userID uuid.UUID, file io.Reader) (*UserDTO, error)
	UpdatePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error
	Delete(ctx context.Context, userID uuid.UUID) error
	AccountsWithRecoveryEmail(ctx context.Context, recoveryEmail string) ([]string, error)
}

type service struct {
	repo         userRepository
	tokens       tokenInvalidator
	companies    companiesRepository
	jobs         jobsRepository
	applications applicationsRepository
	uploader     media.Uploader
	mailer       notifications.Mailer
	logg         *logger.Logger

	appCfg      config.AppConfig
	jwtCfg      config.JWTConfig
	passwordCfg config.PasswordConfig
	mediaCfg    config.CloudinaryConfig
}

// ServiceDeps bundles the collaborators the account service needs.
type ServiceDeps struct {
	Repo         userRepository
	Tokens       tokenInvalidator
	Companies    companiesRepository
	Jobs         jobsRepository
	Applications applicationsRepository
	Uploader     media.Uploader
	Mailer       notifications.Mailer
	Logger       *logger.Logger

	App        config.AppConfig
	JWT        config.JWTConfig
	Password   config.PasswordConfig
	Cloudinary config.CloudinaryConfig
}

// NewService builds an account service with the provided dependencies.
func NewService(deps ServiceDeps) (Service, error) {
	if deps.Repo == nil {
		return nil, fmt.Errorf("user repository required")
	}
	if deps.Tokens == nil {
		return nil, fmt.Errorf("token invalidator required")
	}
	if deps.Companies == nil || deps.Jobs == nil || deps.Applications == nil {
		return nil, fmt.Errorf("cascade repositories required")
	}
	return &service{
		repo:         deps.Repo,
		tokens:       deps.Tokens,
		companies:    deps.Companies,
		jobs:         deps.Jobs,
		applications: deps.Applications,
		uploader:     deps.Uploader,
		mailer:       deps.Mailer,
		logg:         deps.Logger,
		appCfg:       deps.App,
		jwtCfg:       deps.JWT,
		passwordCfg:  deps.Password,
		mediaCfg:     deps.Cloudinary,
	}, nil
}

func (s *service) Get(ctx context.Context, userID uuid.UUID) (*UserDTO, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return FromModel(user), nil
}

func (s *service) GetPublic(ctx context.Context, userID uuid.UUID) (*PublicUserDTO, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return PublicFromModel(user), nil
}

// Update merges the provided fields. A change to either contact field
// deactivates the account, invalidates every token, and emails a fresh
// activation link to the effective address.
func (s *service) Update(ctx context.Context, userID uuid.UUID, input UpdateUserInput) (*UserDTO, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Email != nil {
		if err := s.ensureEmailFree(ctx, *input.Email); err != nil {
			return nil, err
		}
	}
	if input.MobileNumber != nil {
		if err := s.ensureMobileFree(ctx, *input.MobileNumber); err != nil {
			return nil, err
		}
	}

	if input.ContactChanged() {
		target := user.Email
		if input.Email != nil {
			target = *input.Email
		}
		if err := s.sendActivationLink(ctx, target); err != nil {
			return nil, err
		}

		if input.Email != nil {
			user.Email = *input.Email
		}
		if input.MobileNumber != nil {
			user.MobileNumber = *input.MobileNumber
		}
		user.IsActive = false
		user.Status = enums.UserStatusOffline

		if err := s.tokens.InvalidateUserTokens(ctx, userID); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "invalidate tokens")
		}
	}

	if input.RecoveryEmail != nil {
		user.RecoveryEmail = cloneStringPtr(input.RecoveryEmail)
	}
	if input.DateOfBirth != nil {
		user.DateOfBirth = *input.DateOfBirth
	}
	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update user")
	}
	return FromModel(user), nil
}

// UpdateProfilePicture uploads the stream, either into the user's folder
// when the current picture is the shared placeholder, or over the existing
// public id otherwise.
func (s *service) UpdateProfilePicture(ctx context.Context, userID uuid.UUID, file io.Reader) (*UserDTO, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	var asset media.Asset
	if user.ProfilePictureID == s.mediaCfg.DefaultProfilePictureID {
		folder := media.UserFolder(s.mediaCfg.RootFolder, user.ID.String())
		asset, err = s.uploader.Upload(ctx, file, folder)
	} else {
		asset, err = s.uploader.Replace(ctx, file, user.ProfilePictureID)
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store profile picture")
	}

	user.ProfilePictureURL = asset.URL
	user.ProfilePictureID = asset.PublicID
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update user")
	}
	return FromModel(user), nil
}

// UpdatePassword verifies the current password, stores the new hash, forces
// the account offline and invalidates every token.
func (s *service) UpdatePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return err
	}

	match, err := security.VerifyPassword(currentPassword, user.PasswordHash)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !match {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "Current password is wrong.")
	}

	hash, err := security.HashPassword(newPassword, s.passwordCfg)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	user.PasswordHash = hash
	user.Status = enums.UserStatusOffline
	if err := s.repo.Update(ctx, user); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update user")
	}

	if err := s.tokens.InvalidateUserTokens(ctx, userID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "invalidate tokens")
	}
	return nil
}

// Delete removes the account and everything reachable from it: tokens are
// invalidated first, then stored media, then (for companyHR) the owned
// jobs' applications, the jobs, and finally the companies. Jobs must go
// before their companies or the company rows cannot be removed under the
// schema's foreign keys. Stages run without a surrounding transaction; a
// mid-cascade failure leaves earlier stages applied and reports the
// failing stage.
func (s *service) Delete(ctx context.Context, userID uuid.UUID) error {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.tokens.InvalidateUserTokens(ctx, userID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "invalidate tokens")
	}

	var mediaErr error
	if user.ProfilePictureID != s.mediaCfg.DefaultProfilePictureID && s.uploader != nil {
		mediaErr = multierr.Append(mediaErr, s.uploader.Destroy(ctx, user.ProfilePictureID))
		folder := media.UserFolder(s.mediaCfg.RootFolder, user.ID.String())
		mediaErr = multierr.Append(mediaErr, s.uploader.DeleteFolder(ctx, folder))
	}
	if mediaErr != nil && s.logg != nil {
		s.logg.Error(ctx, "releasing user media", mediaErr)
	}

	if user.Role == enums.UserRoleCompanyHR {
		jobs, err := s.jobs.FindByAddedBy(ctx, userID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list owned jobs")
		}
		jobIDs := make([]uuid.UUID, 0, len(jobs))
		for _, job := range jobs {
			jobIDs = append(jobIDs, job.ID)
		}

		if err := s.applications.DeleteByJobIDs(ctx, jobIDs); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete job applications")
		}
		if err := s.jobs.DeleteByAddedBy(ctx, userID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete owned jobs")
		}
		if err := s.companies.DeleteByHR(ctx, userID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete owned companies")
		}
	}

	if err := s.repo.Delete(ctx, userID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete user")
	}

	if mediaErr != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, mediaErr, "release user media")
	}
	return nil
}

func (s *service) AccountsWithRecoveryEmail(ctx context.Context, recoveryEmail string) ([]string, error) {
	accounts, err := s.repo.FindByRecoveryEmail(ctx, recoveryEmail)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list accounts")
	}
	emails := make([]string, 0, len(accounts))
	for _, account := range accounts {
		emails = append(emails, account.Email)
	}
	return emails, nil
}

func (s *service) loadUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "User not found.")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	return user, nil
}

func (s *service) ensureEmailFree(ctx context.Context, email string) error {
	_, err := s.repo.FindByEmail(ctx, email)
	if err == nil {
		return pkgerrors.New(pkgerrors.CodeConflict, "Email already exist.")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup email")
	}
	return nil
}

func (s *service) ensureMobileFree(ctx context.Context, mobile string) error {
	_, err := s.repo.FindByMobile(ctx, mobile)
	if err == nil {
		return pkgerrors.New(pkgerrors.CodeConflict, "Mobile number already exist.")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup mobile number")
	}
	return nil
}

func (s *service) sendActivationLink(ctx context.Context, email string) error {
	token, err := pkgauth.MintActivationToken(s.jwtCfg, time.Now(), email)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint activation token")
	}
	subject, body := notifications.ActivationEmail(s.appCfg.BaseURL, token)
	if err := s.mailer.Send(ctx, email, subject, body); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "send activation email")
	}
	return nil
}

func cloneStringPtr(value *string) *string {
	if value == nil {
		return nil
	}
	cpy := *value
	return &cpy
}
