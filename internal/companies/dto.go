package companies

import (
	"time"

	"github.com/google/uuid"

	"github.com/jobhive/jobhive-backend/internal/jobs"
	"github.com/jobhive/jobhive-backend/pkg/db/models"
	"github.com/jobhive/jobhive-backend/pkg/enums"
	"github.com/jobhive/jobhive-backend/pkg/media"
)

// HRSummary is the slice of the owning HR account embedded in company views.
type HRSummary struct {
	ID             uuid.UUID      `json:"id"`
	Username       string         `json:"userName"`
	Email          string         `json:"email"`
	MobileNumber   string         `json:"mobileNumber"`
	Role           enums.UserRole `json:"role"`
	ProfilePicture media.Asset    `json:"profilePicture"`
}

// CompanyDTO exposes a stored company, optionally with its HR owner and jobs.
type CompanyDTO struct {
	ID          uuid.UUID         `json:"id"`
	Name        string            `json:"companyName"`
	Slug        string            `json:"companySlug"`
	Description string            `json:"description"`
	Industry    string            `json:"industry"`
	Address     string            `json:"address"`
	CompanySize enums.CompanySize `json:"numberOfEmployees"`
	Email       string            `json:"companyEmail"`
	HRID        uuid.UUID         `json:"companyHR"`
	Photo       media.Asset       `json:"companyPhoto"`
	HR          *HRSummary        `json:"hr,omitempty"`
	Jobs        []jobs.JobDTO     `json:"jobs,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`
}

// FromModel maps the persisted company into a DTO.
func FromModel(m *models.Company) *CompanyDTO {
	if m == nil {
		return nil
	}
	return &CompanyDTO{
		ID:          m.ID,
		Name:        m.Name,
		Slug:        m.Slug,
		Description: m.Description,
		Industry:    m.Industry,
		Address:     m.Address,
		CompanySize: m.CompanySize,
		Email:       m.Email,
		HRID:        m.HRID,
		Photo:       media.Asset{URL: m.PhotoURL, PublicID: m.PhotoID},
		CreatedAt:   m.CreatedAt,
	}
}

// HRSummaryFromUser maps a user row into the embedded HR summary.
func HRSummaryFromUser(u *models.User) *HRSummary {
	if u == nil {
		return nil
	}
	return &HRSummary{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		MobileNumber: u.MobileNumber,
		Role:         u.Role,
		ProfilePicture: media.Asset{
			URL:      u.ProfilePictureURL,
			PublicID: u.ProfilePictureID,
		},
	}
}

// AddCompanyInput carries the fields required to register a company.
type AddCompanyInput struct {
	Name        string            `json:"companyName" validate:"required,min=2,max=100"`
	Description string            `json:"description" validate:"required"`
	Industry    string            `json:"industry" validate:"required"`
	Address     string            `json:"address" validate:"required"`
	CompanySize enums.CompanySize `json:"numberOfEmployees" validate:"required"`
	Email       string            `json:"companyEmail" validate:"required,email"`
}

// UpdateCompanyInput carries a partial company update; nil fields keep
// their value.
type UpdateCompanyInput struct {
	Name        *string            `json:"companyName" validate:"omitempty,min=2,max=100"`
	Description *string            `json:"description"`
	Industry    *string            `json:"industry"`
	Address     *string            `json:"address"`
	CompanySize *enums.CompanySize `json:"numberOfEmployees"`
	Email       *string            `json:"companyEmail" validate:"omitempty,email"`
}
