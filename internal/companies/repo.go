package companies

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jobhive/jobhive-backend/pkg/db/models"
	"github.com/jobhive/jobhive-backend/pkg/enums"
)

// Repository handles company persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to company operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateCompanyDTO holds creation-time data for a new company.
type CreateCompanyDTO struct {
	Name        string
	Description string
	Industry    string
	Address     string
	CompanySize enums.CompanySize
	Email       string
	HRID        uuid.UUID
	PhotoURL    string
	PhotoID     string
}

// Create persists a new company row. The slug derives from the name in the
// model's save hook.
func (r *Repository) Create(ctx context.Context, dto CreateCompanyDTO) (*models.Company, error) {
	company := &models.Company{
		Name:        dto.Name,
		Description: dto.Description,
		Industry:    dto.Industry,
		Address:     dto.Address,
		CompanySize: dto.CompanySize,
		Email:       dto.Email,
		HRID:        dto.HRID,
		PhotoURL:    dto.PhotoURL,
		PhotoID:     dto.PhotoID,
	}
	if err := r.db.WithContext(ctx).Create(company).Error; err != nil {
		return nil, err
	}
	return company, nil
}

// FindByID loads a single company.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Company, error) {
	var company models.Company
	if err := r.db.WithContext(ctx).First(&company, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

// FindByIDs loads the companies named by ids, skipping missing ones.
func (r *Repository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Company, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var companies []models.Company
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&companies).Error; err != nil {
		return nil, err
	}
	return companies, nil
}

// FindBySlug loads a company by its derived name slug.
func (r *Repository) FindBySlug(ctx context.Context, slug string) (*models.Company, error) {
	var company models.Company
	if err := r.db.WithContext(ctx).First(&company, "slug = ?", slug).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

// FindByEmail loads a company by its contact email.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.Company, error) {
	var company models.Company
	if err := r.db.WithContext(ctx).First(&company, "company_email = ?", email).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

// FindByHR returns every company owned by the HR user.
func (r *Repository) FindByHR(ctx context.Context, hrID uuid.UUID) ([]models.Company, error) {
	var companies []models.Company
	if err := r.db.WithContext(ctx).Where("company_hr = ?", hrID).Find(&companies).Error; err != nil {
		return nil, err
	}
	return companies, nil
}

// Update persists the company's current state.
func (r *Repository) Update(ctx context.Context, company *models.Company) error {
	return r.db.WithContext(ctx).Save(company).Error
}

// Delete removes a single company row.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Company{}, "id = ?", id).Error
}

// DeleteByHR removes every company owned by the HR user.
func (r *Repository) DeleteByHR(ctx context.Context, hrID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("company_hr = ?", hrID).Delete(&models.Company{}).Error
}
