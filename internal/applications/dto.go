package applications

import (
	"time"

	"github.com/google/uuid"

	"github.com/jobhive/jobhive-backend/pkg/db/models"
	"github.com/jobhive/jobhive-backend/pkg/media"
)

// ApplicantSummary is the slice of the applicant's profile embedded in
// application listings.
type ApplicantSummary struct {
	ID             uuid.UUID   `json:"id"`
	FirstName      string      `json:"firstName"`
	LastName       string      `json:"lastName"`
	Email          string      `json:"email"`
	DateOfBirth    time.Time   `json:"dateOfBirth"`
	ProfilePicture media.Asset `json:"profilePicture"`
}

// ApplicationDTO exposes a stored application, optionally with its applicant.
type ApplicationDTO struct {
	ID         uuid.UUID         `json:"id"`
	JobID      uuid.UUID         `json:"jobId"`
	UserID     uuid.UUID         `json:"userId"`
	TechSkills []string          `json:"userTechSkills"`
	SoftSkills []string          `json:"userSoftSkills"`
	Resume     media.Asset       `json:"userResume"`
	CreatedDay string            `json:"createdDay"`
	Applicant  *ApplicantSummary `json:"applicant,omitempty"`
	CreatedAt  time.Time         `json:"createdAt"`
}

// FromModel maps the persisted application into a DTO.
func FromModel(m *models.Application) *ApplicationDTO {
	if m == nil {
		return nil
	}
	return &ApplicationDTO{
		ID:         m.ID,
		JobID:      m.JobID,
		UserID:     m.UserID,
		TechSkills: append([]string(nil), m.TechSkills...),
		SoftSkills: append([]string(nil), m.SoftSkills...),
		Resume:     media.Asset{URL: m.ResumeURL, PublicID: m.ResumeID},
		CreatedDay: m.CreatedDay,
		CreatedAt:  m.CreatedAt,
	}
}

// ApplicantFromUser maps a user row into the embedded applicant summary.
func ApplicantFromUser(u *models.User) *ApplicantSummary {
	if u == nil {
		return nil
	}
	return &ApplicantSummary{
		ID:          u.ID,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Email:       u.Email,
		DateOfBirth: u.DateOfBirth,
		ProfilePicture: media.Asset{
			URL:      u.ProfilePictureURL,
			PublicID: u.ProfilePictureID,
		},
	}
}
