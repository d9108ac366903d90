package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Token records an issued access token. Tokens are never deleted on
// logout or deactivation, only flagged invalid, so the login history
// stays auditable.
type Token struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Token     string    `gorm:"type:text;not null;uniqueIndex"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;index"`
	IsValid   bool      `gorm:"column:is_valid;not null;default:true"`
	UserAgent string    `gorm:"column:user_agent;not null"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// BeforeCreate assigns the primary key when the caller did not.
func (t *Token) BeforeCreate(_ *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
