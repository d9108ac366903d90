package auth

import (
	"time"

	"github.com/jobhive/jobhive-backend/pkg/enums"
)

// SignupInput holds the registration payload after validation.
type SignupInput struct {
	FirstName     string
	LastName      string
	Email         string
	Password      string
	RecoveryEmail *string
	DateOfBirth   time.Time
	MobileNumber  string
	Role          enums.UserRole
}

// LoginInput identifies the account by email or mobile number.
type LoginInput struct {
	Identifier string
	Password   string
	UserAgent  string
}

// LoginResult carries the minted token back to the controller.
type LoginResult struct {
	Token string `json:"token"`
}

// SignupRequest is the registration payload as it arrives on the wire.
type SignupRequest struct {
	FirstName       string  `json:"firstName" validate:"required,min=2,max=50"`
	LastName        string  `json:"lastName" validate:"required,min=2,max=50"`
	Email           string  `json:"email" validate:"required,email"`
	Password        string  `json:"password" validate:"required,min=8"`
	ConfirmPassword string  `json:"cPassword" validate:"required,eqfield=Password"`
	RecoveryEmail   *string `json:"recoveryEmail" validate:"omitempty,email"`
	DateOfBirth     string  `json:"dateOfBirth" validate:"required,datetime=2006-01-02"`
	MobileNumber    string  `json:"mobileNumber" validate:"required,min=10,max=15"`
	Role            string  `json:"role" validate:"omitempty,oneof=user companyHR"`
}

// Input converts the wire payload into the service input. Validation has
// already run, so the date parse cannot fail on well-formed requests.
func (r SignupRequest) Input() (SignupInput, error) {
	dob, err := time.Parse("2006-01-02", r.DateOfBirth)
	if err != nil {
		return SignupInput{}, err
	}
	input := SignupInput{
		FirstName:     r.FirstName,
		LastName:      r.LastName,
		Email:         r.Email,
		Password:      r.Password,
		RecoveryEmail: r.RecoveryEmail,
		DateOfBirth:   dob,
		MobileNumber:  r.MobileNumber,
	}
	if r.Role != "" {
		role, err := enums.ParseUserRole(r.Role)
		if err != nil {
			return SignupInput{}, err
		}
		input.Role = role
	}
	return input, nil
}

// LoginRequest accepts either the account email or mobile number.
type LoginRequest struct {
	Email        string `json:"email" validate:"omitempty,email"`
	MobileNumber string `json:"mobileNumber" validate:"omitempty,min=10,max=15"`
	Password     string `json:"password" validate:"required"`
}

// Identifier returns whichever credential the caller supplied.
func (r LoginRequest) Identifier() string {
	if r.Email != "" {
		return r.Email
	}
	return r.MobileNumber
}

// ForgetPasswordRequest starts the reset-code flow.
type ForgetPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetCodeRequest verifies an emailed reset code.
type ResetCodeRequest struct {
	Code string `json:"code" validate:"required,len=6"`
}

// ChangePasswordRequest completes the reset-code flow.
type ChangePasswordRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}
