package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// CreatedDayLayout is the day-resolution format stored on applications
// and used when bucketing them for the per-day export.
const CreatedDayLayout = "2006-01-02"

// Application represents a user applying to a job with an uploaded resume.
type Application struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey"`
	JobID      uuid.UUID      `gorm:"column:job_id;type:uuid;not null;index"`
	UserID     uuid.UUID      `gorm:"column:user_id;type:uuid;not null;index"`
	TechSkills pq.StringArray `gorm:"column:technical_skills;type:text[];not null"`
	SoftSkills pq.StringArray `gorm:"column:soft_skills;type:text[];not null"`
	ResumeURL  string         `gorm:"column:resume_url;not null"`
	ResumeID   string         `gorm:"column:resume_id;not null"`
	CreatedDay string         `gorm:"column:created_day;type:text;not null;index"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// BeforeCreate assigns the primary key and stamps the creation day.
func (a *Application) BeforeCreate(_ *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.CreatedDay == "" {
		a.CreatedDay = time.Now().UTC().Format(CreatedDayLayout)
	}
	return nil
}
