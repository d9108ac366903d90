package jobs

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/jobhive/jobhive-backend/pkg/db/models"
	"github.com/jobhive/jobhive-backend/pkg/enums"
	"github.com/jobhive/jobhive-backend/pkg/pagination"
)

// Repository handles job persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to job operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateJobDTO holds creation-time data for a new job posting.
type CreateJobDTO struct {
	Title          string
	Location       enums.JobLocation
	WorkingTime    enums.WorkingTime
	SeniorityLevel enums.SeniorityLevel
	Description    string
	TechSkills     []string
	SoftSkills     []string
	CompanyID      uuid.UUID
	AddedBy        uuid.UUID
}

// Create persists a new job row.
func (r *Repository) Create(ctx context.Context, dto CreateJobDTO) (*models.Job, error) {
	job := &models.Job{
		Title:          dto.Title,
		Location:       dto.Location,
		WorkingTime:    dto.WorkingTime,
		SeniorityLevel: dto.SeniorityLevel,
		Description:    dto.Description,
		TechSkills:     pq.StringArray(dto.TechSkills),
		SoftSkills:     pq.StringArray(dto.SoftSkills),
		CompanyID:      dto.CompanyID,
		AddedBy:        dto.AddedBy,
	}
	if err := r.db.WithContext(ctx).Create(job).Error; err != nil {
		return nil, err
	}
	return job, nil
}

// FindByID loads a single job.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	var job models.Job
	if err := r.db.WithContext(ctx).First(&job, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

// FindAll returns one page of jobs plus the total row count.
func (r *Repository) FindAll(ctx context.Context, page pagination.Params) ([]models.Job, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Job{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var jobList []models.Job
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(page.Offset()).
		Limit(page.Limit()).
		Find(&jobList).Error; err != nil {
		return nil, 0, err
	}
	return jobList, total, nil
}

// FindByCompany returns every job posted under the company.
func (r *Repository) FindByCompany(ctx context.Context, companyID uuid.UUID) ([]models.Job, error) {
	var jobList []models.Job
	if err := r.db.WithContext(ctx).Where("company_id = ?", companyID).Find(&jobList).Error; err != nil {
		return nil, err
	}
	return jobList, nil
}

// FindByAddedBy returns every job posted by the user, across companies.
func (r *Repository) FindByAddedBy(ctx context.Context, userID uuid.UUID) ([]models.Job, error) {
	var jobList []models.Job
	if err := r.db.WithContext(ctx).Where("added_by = ?", userID).Find(&jobList).Error; err != nil {
		return nil, err
	}
	return jobList, nil
}

// CountDuplicates reports how many jobs in the company already match the
// posting's identity fields, ignoring the row named by exclude so updates do
// not collide with themselves. Titles are stored lowercased, so the
// comparison lowercases its input.
func (r *Repository) CountDuplicates(ctx context.Context, companyID uuid.UUID, title string, location enums.JobLocation, workingTime enums.WorkingTime, seniority enums.SeniorityLevel, exclude uuid.UUID) (int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Job{}).
		Where("company_id = ? AND title = ? AND location = ? AND working_time = ? AND seniority_level = ?",
			companyID, strings.ToLower(title), location, workingTime, seniority)
	if exclude != uuid.Nil {
		q = q.Where("id <> ?", exclude)
	}
	var count int64
	err := q.Count(&count).Error
	return count, err
}

// FindFiltered returns jobs matching every set filter field. The skills
// filter matches jobs sharing at least one technical skill.
func (r *Repository) FindFiltered(ctx context.Context, f Filter) ([]models.Job, error) {
	q := r.db.WithContext(ctx).Model(&models.Job{})
	if f.Title != "" {
		q = q.Where("title = ?", strings.ToLower(f.Title))
	}
	if f.Location != "" {
		q = q.Where("location = ?", f.Location)
	}
	if f.WorkingTime != "" {
		q = q.Where("working_time = ?", f.WorkingTime)
	}
	if f.SeniorityLevel != "" {
		q = q.Where("seniority_level = ?", f.SeniorityLevel)
	}
	if len(f.TechSkills) > 0 {
		skills := make([]string, len(f.TechSkills))
		for i, s := range f.TechSkills {
			skills[i] = strings.ToLower(s)
		}
		q = q.Where("technical_skills && ?", pq.StringArray(skills))
	}
	var jobList []models.Job
	if err := q.Find(&jobList).Error; err != nil {
		return nil, err
	}
	return jobList, nil
}

// Update persists the job's current state.
func (r *Repository) Update(ctx context.Context, job *models.Job) error {
	return r.db.WithContext(ctx).Save(job).Error
}

// Delete removes a single job row.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Job{}, "id = ?", id).Error
}

// DeleteByCompany removes every job posted under the company.
func (r *Repository) DeleteByCompany(ctx context.Context, companyID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("company_id = ?", companyID).Delete(&models.Job{}).Error
}

// DeleteByAddedBy removes every job posted by the user.
func (r *Repository) DeleteByAddedBy(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("added_by = ?", userID).Delete(&models.Job{}).Error
}
