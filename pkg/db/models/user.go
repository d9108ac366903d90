package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jobhive/jobhive-backend/pkg/enums"
)

// User represents the canonical account entity.
type User struct {
	ID            uuid.UUID        `gorm:"type:uuid;primaryKey"`
	FirstName     string           `gorm:"column:first_name;not null"`
	LastName      string           `gorm:"column:last_name;not null"`
	Username      string           `gorm:"column:username;not null"`
	Email         string           `gorm:"type:text;not null;uniqueIndex"`
	PasswordHash  string           `gorm:"column:password_hash;not null"`
	RecoveryEmail *string          `gorm:"column:recovery_email"`
	DateOfBirth   time.Time        `gorm:"column:date_of_birth;not null"`
	MobileNumber  string           `gorm:"column:mobile_number;not null;uniqueIndex"`
	Role          enums.UserRole   `gorm:"column:role;type:text;not null;default:'user'"`
	Status        enums.UserStatus `gorm:"column:status;type:text;not null;default:'offline'"`
	IsActive      bool             `gorm:"column:is_active;not null;default:false"`

	ProfilePictureURL string `gorm:"column:profile_picture_url;not null"`
	ProfilePictureID  string `gorm:"column:profile_picture_id;not null"`

	ResetCode           *string    `gorm:"column:reset_code"`
	ResetCodeIsValid    bool       `gorm:"column:reset_code_is_valid;not null;default:false"`
	ResetCodeIsVerified bool       `gorm:"column:reset_code_is_verified;not null;default:false"`
	ResetCodeExpiresAt  *time.Time `gorm:"column:reset_code_expires_at"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// BeforeCreate assigns the primary key when the caller did not.
func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// BeforeSave keeps the display name derived from the name fields.
func (u *User) BeforeSave(_ *gorm.DB) error {
	u.Username = u.FirstName + " " + u.LastName
	return nil
}
