package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/jobhive/jobhive-backend/pkg/enums"
)

// Job represents an open position posted under a company.
type Job struct {
	ID             uuid.UUID            `gorm:"type:uuid;primaryKey"`
	Title          string               `gorm:"column:title;not null;index"`
	Location       enums.JobLocation    `gorm:"column:location;type:text;not null"`
	WorkingTime    enums.WorkingTime    `gorm:"column:working_time;type:text;not null"`
	SeniorityLevel enums.SeniorityLevel `gorm:"column:seniority_level;type:text;not null"`
	Description    string               `gorm:"column:description;not null"`
	TechSkills     pq.StringArray       `gorm:"column:technical_skills;type:text[];not null"`
	SoftSkills     pq.StringArray       `gorm:"column:soft_skills;type:text[];not null"`
	CompanyID      uuid.UUID            `gorm:"column:company_id;type:uuid;not null;index"`
	AddedBy        uuid.UUID            `gorm:"column:added_by;type:uuid;not null;index"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// BeforeCreate assigns the primary key when the caller did not.
func (j *Job) BeforeCreate(_ *gorm.DB) error {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	return nil
}

// BeforeSave normalizes the searchable text fields to lowercase.
func (j *Job) BeforeSave(_ *gorm.DB) error {
	j.Title = strings.ToLower(j.Title)
	lowerAll(j.TechSkills)
	lowerAll(j.SoftSkills)
	return nil
}

func lowerAll(values pq.StringArray) {
	for i, v := range values {
		values[i] = strings.ToLower(v)
	}
}
