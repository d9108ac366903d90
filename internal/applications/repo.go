package applications

import (
	"context"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/jobhive/jobhive-backend/pkg/db/models"
)

// Repository handles application persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to application operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateApplicationDTO holds creation-time data for a new application.
type CreateApplicationDTO struct {
	JobID      uuid.UUID
	UserID     uuid.UUID
	TechSkills []string
	SoftSkills []string
	ResumeURL  string
	ResumeID   string
}

// Create persists a new application row.
func (r *Repository) Create(ctx context.Context, dto CreateApplicationDTO) (*models.Application, error) {
	app := &models.Application{
		JobID:      dto.JobID,
		UserID:     dto.UserID,
		TechSkills: pq.StringArray(dto.TechSkills),
		SoftSkills: pq.StringArray(dto.SoftSkills),
		ResumeURL:  dto.ResumeURL,
		ResumeID:   dto.ResumeID,
	}
	if err := r.db.WithContext(ctx).Create(app).Error; err != nil {
		return nil, err
	}
	return app, nil
}

// FindByUser returns the first application the user ever made, if any.
func (r *Repository) FindByUser(ctx context.Context, userID uuid.UUID) (*models.Application, error) {
	var app models.Application
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&app).Error; err != nil {
		return nil, err
	}
	return &app, nil
}

// FindByJob returns every application made to the job.
func (r *Repository) FindByJob(ctx context.Context, jobID uuid.UUID) ([]models.Application, error) {
	var apps []models.Application
	if err := r.db.WithContext(ctx).Where("job_id = ?", jobID).Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// FindByDay returns every application created on the given YYYY-MM-DD day.
func (r *Repository) FindByDay(ctx context.Context, day string) ([]models.Application, error) {
	var apps []models.Application
	if err := r.db.WithContext(ctx).Where("created_day = ?", day).Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// DeleteByJobIDs removes all applications referencing any of the jobs.
func (r *Repository) DeleteByJobIDs(ctx context.Context, jobIDs []uuid.UUID) error {
	if len(jobIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("job_id IN ?", jobIDs).
		Delete(&models.Application{}).Error
}
