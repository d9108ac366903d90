package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jobhive/jobhive-backend/pkg/enums"
)

// Company represents an employer profile owned by a companyHR user.
type Company struct {
	ID          uuid.UUID         `gorm:"type:uuid;primaryKey"`
	Name        string            `gorm:"type:text;not null;uniqueIndex"`
	Slug        string            `gorm:"type:text;not null;uniqueIndex"`
	Description string            `gorm:"column:description;not null"`
	Industry    string            `gorm:"column:industry;not null"`
	Address     string            `gorm:"column:address;not null"`
	CompanySize enums.CompanySize `gorm:"column:company_size;type:text;not null"`
	Email       string            `gorm:"column:company_email;type:text;not null;uniqueIndex"`
	HRID        uuid.UUID         `gorm:"column:company_hr;type:uuid;not null;index"`

	PhotoURL string `gorm:"column:photo_url;not null"`
	PhotoID  string `gorm:"column:photo_id;not null"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// SlugFromName derives the URL identifier used for a company name:
// lowercased with spaces removed.
func SlugFromName(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, " ", ""))
}

// BeforeCreate assigns the primary key when the caller did not.
func (c *Company) BeforeCreate(_ *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// BeforeSave keeps the slug derived from the company name.
func (c *Company) BeforeSave(_ *gorm.DB) error {
	c.Slug = SlugFromName(c.Name)
	return nil
}
