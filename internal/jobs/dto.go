package jobs

import (
	"time"

	"github.com/google/uuid"

	"github.com/jobhive/jobhive-backend/pkg/db/models"
	"github.com/jobhive/jobhive-backend/pkg/enums"
	"github.com/jobhive/jobhive-backend/pkg/media"
)

// CompanySummary is the slice of company data embedded in job listings.
type CompanySummary struct {
	ID       uuid.UUID   `json:"id"`
	Name     string      `json:"companyName"`
	Industry string      `json:"industry"`
	Email    string      `json:"companyEmail"`
	Photo    media.Asset `json:"companyPhoto"`
}

// JobDTO exposes a posted job, optionally with its company attached.
type JobDTO struct {
	ID             uuid.UUID            `json:"id"`
	Title          string               `json:"jobTitle"`
	Location       enums.JobLocation    `json:"jobLocation"`
	WorkingTime    enums.WorkingTime    `json:"workingTime"`
	SeniorityLevel enums.SeniorityLevel `json:"seniorityLevel"`
	Description    string               `json:"jobDescription"`
	TechSkills     []string             `json:"technicalSkills"`
	SoftSkills     []string             `json:"softSkills"`
	CompanyID      uuid.UUID            `json:"companyId"`
	AddedBy        uuid.UUID            `json:"addedBy"`
	Company        *CompanySummary      `json:"company,omitempty"`
	CreatedAt      time.Time            `json:"createdAt"`
}

// FromModel maps the persisted job into a DTO.
func FromModel(m *models.Job) *JobDTO {
	if m == nil {
		return nil
	}
	return &JobDTO{
		ID:             m.ID,
		Title:          m.Title,
		Location:       m.Location,
		WorkingTime:    m.WorkingTime,
		SeniorityLevel: m.SeniorityLevel,
		Description:    m.Description,
		TechSkills:     append([]string(nil), m.TechSkills...),
		SoftSkills:     append([]string(nil), m.SoftSkills...),
		CompanyID:      m.CompanyID,
		AddedBy:        m.AddedBy,
		CreatedAt:      m.CreatedAt,
	}
}

// CompanySummaryFromModel maps a company row into the embedded summary.
func CompanySummaryFromModel(c *models.Company) *CompanySummary {
	if c == nil {
		return nil
	}
	return &CompanySummary{
		ID:       c.ID,
		Name:     c.Name,
		Industry: c.Industry,
		Email:    c.Email,
		Photo:    media.Asset{URL: c.PhotoURL, PublicID: c.PhotoID},
	}
}

// AddJobInput carries the fields required to post a job.
type AddJobInput struct {
	Title          string               `json:"jobTitle" validate:"required,min=3,max=200"`
	Location       enums.JobLocation    `json:"jobLocation" validate:"required"`
	WorkingTime    enums.WorkingTime    `json:"workingTime" validate:"required"`
	SeniorityLevel enums.SeniorityLevel `json:"seniorityLevel" validate:"required"`
	Description    string               `json:"jobDescription" validate:"required"`
	TechSkills     []string             `json:"technicalSkills" validate:"required,min=1"`
	SoftSkills     []string             `json:"softSkills" validate:"required,min=1"`
}

// UpdateJobInput carries a partial job update; nil fields keep their value.
type UpdateJobInput struct {
	Title          *string               `json:"jobTitle" validate:"omitempty,min=3,max=200"`
	Location       *enums.JobLocation    `json:"jobLocation"`
	WorkingTime    *enums.WorkingTime    `json:"workingTime"`
	SeniorityLevel *enums.SeniorityLevel `json:"seniorityLevel"`
	Description    *string               `json:"jobDescription"`
	TechSkills     []string              `json:"technicalSkills"`
	SoftSkills     []string              `json:"softSkills"`
}

// Filter narrows job listings; zero values are ignored.
type Filter struct {
	Title          string
	Location       enums.JobLocation
	WorkingTime    enums.WorkingTime
	SeniorityLevel enums.SeniorityLevel
	TechSkills     []string
}

// Empty reports whether no filter field is set.
func (f Filter) Empty() bool {
	return f.Title == "" && f.Location == "" && f.WorkingTime == "" &&
		f.SeniorityLevel == "" && len(f.TechSkills) == 0
}
