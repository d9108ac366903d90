package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/jobhive/jobhive-backend/pkg/db/models"
	"github.com/jobhive/jobhive-backend/pkg/enums"
	"github.com/jobhive/jobhive-backend/pkg/media"
)

// UserDTO exposes the full account view returned to its owner.
type UserDTO struct {
	ID             uuid.UUID        `json:"id"`
	FirstName      string           `json:"firstName"`
	LastName       string           `json:"lastName"`
	Username       string           `json:"userName"`
	Email          string           `json:"email"`
	RecoveryEmail  *string          `json:"recoveryEmail,omitempty"`
	DateOfBirth    time.Time        `json:"dateOfBirth"`
	MobileNumber   string           `json:"mobileNumber"`
	Role           enums.UserRole   `json:"role"`
	Status         enums.UserStatus `json:"status"`
	IsActive       bool             `json:"isActive"`
	ProfilePicture media.Asset      `json:"profilePicture"`
	CreatedAt      time.Time        `json:"createdAt"`
	UpdatedAt      time.Time        `json:"updatedAt"`
}

// PublicUserDTO is the subset shown when someone else looks up the account.
type PublicUserDTO struct {
	ID             uuid.UUID        `json:"id"`
	FirstName      string           `json:"firstName"`
	LastName       string           `json:"lastName"`
	Username       string           `json:"userName"`
	Role           enums.UserRole   `json:"role"`
	Status         enums.UserStatus `json:"status"`
	ProfilePicture media.Asset      `json:"profilePicture"`
}

// CreateUserDTO holds creation-time data for a new account.
type CreateUserDTO struct {
	FirstName     string
	LastName      string
	Email         string
	PasswordHash  string
	RecoveryEmail *string
	DateOfBirth   time.Time
	MobileNumber  string
	Role          enums.UserRole

	ProfilePictureURL string
	ProfilePictureID  string
}

// UpdateUserInput captures the mutable profile fields; omitted fields keep
// their previous values.
type UpdateUserInput struct {
	Email         *string    `json:"email" validate:"omitempty,email"`
	MobileNumber  *string    `json:"mobileNumber" validate:"omitempty,min=10,max=15"`
	RecoveryEmail *string    `json:"recoveryEmail" validate:"omitempty,email"`
	DateOfBirth   *time.Time `json:"dateOfBirth"`
	FirstName     *string    `json:"firstName" validate:"omitempty,min=2,max=50"`
	LastName      *string    `json:"lastName" validate:"omitempty,min=2,max=50"`
}

// UpdatePasswordRequest changes the password of a logged-in account.
type UpdatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8"`
}

// RecoveryEmailRequest looks up every account sharing a recovery email.
type RecoveryEmailRequest struct {
	RecoveryEmail string `json:"recoveryEmail" validate:"required,email"`
}

// ContactChanged reports whether the input touches email or mobile number,
// which forces re-activation.
func (u UpdateUserInput) ContactChanged() bool {
	return u.Email != nil || u.MobileNumber != nil
}

// FromModel maps the persisted user into the owner-facing DTO.
func FromModel(m *models.User) *UserDTO {
	if m == nil {
		return nil
	}
	return &UserDTO{
		ID:            m.ID,
		FirstName:     m.FirstName,
		LastName:      m.LastName,
		Username:      m.Username,
		Email:         m.Email,
		RecoveryEmail: m.RecoveryEmail,
		DateOfBirth:   m.DateOfBirth,
		MobileNumber:  m.MobileNumber,
		Role:          m.Role,
		Status:        m.Status,
		IsActive:      m.IsActive,
		ProfilePicture: media.Asset{
			URL:      m.ProfilePictureURL,
			PublicID: m.ProfilePictureID,
		},
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// PublicFromModel maps the persisted user into the public DTO.
func PublicFromModel(m *models.User) *PublicUserDTO {
	if m == nil {
		return nil
	}
	return &PublicUserDTO{
		ID:        m.ID,
		FirstName: m.FirstName,
		LastName:  m.LastName,
		Username:  m.Username,
		Role:      m.Role,
		Status:    m.Status,
		ProfilePicture: media.Asset{
			URL:      m.ProfilePictureURL,
			PublicID: m.ProfilePictureID,
		},
	}
}

// ToModel prepares the GORM model from the creation DTO.
func (c CreateUserDTO) ToModel() *models.User {
	role := c.Role
	if !role.IsValid() {
		role = enums.UserRoleUser
	}
	return &models.User{
		FirstName:         c.FirstName,
		LastName:          c.LastName,
		Email:             c.Email,
		PasswordHash:      c.PasswordHash,
		RecoveryEmail:     c.RecoveryEmail,
		DateOfBirth:       c.DateOfBirth,
		MobileNumber:      c.MobileNumber,
		Role:              role,
		Status:            enums.UserStatusOffline,
		IsActive:          false,
		ProfilePictureURL: c.ProfilePictureURL,
		ProfilePictureID:  c.ProfilePictureID,
	}
}
