package jobs

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jobhive/jobhive-backend/internal/applications"
	"github.com/jobhive/jobhive-backend/pkg/config"
	"github.com/jobhive/jobhive-backend/pkg/db/models"
	"github.com/jobhive/jobhive-backend/pkg/enums"
	pkgerrors "github.com/jobhive/jobhive-backend/pkg/errors"
	"github.com/jobhive/jobhive-backend/pkg/logger"
	"github.com/jobhive/jobhive-backend/pkg/media"
	"github.com/jobhive/jobhive-backend/pkg/pagination"
)

type jobRepository interface {
	Create(ctx context.Context, dto CreateJobDTO) (*models.Job, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Job, error)
	FindAll(ctx context.Context, page pagination.Params) ([]models.Job, int64, error)
	FindByCompany(ctx context.Context, companyID uuid.UUID) ([]models.Job, error)
	CountDuplicates(ctx context.Context, companyID uuid.UUID, title string, location enums.JobLocation, workingTime enums.WorkingTime, seniority enums.SeniorityLevel, exclude uuid.UUID) (int64, error)
	FindFiltered(ctx context.Context, f Filter) ([]models.Job, error)
	Update(ctx context.Context, job *models.Job) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type companyReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Company, error)
	FindBySlug(ctx context.Context, slug string) (*models.Company, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Company, error)
}

type applicationsStore interface {
	Create(ctx context.Context, dto applications.CreateApplicationDTO) (*models.Application, error)
	FindByUser(ctx context.Context, userID uuid.UUID) (*models.Application, error)
	DeleteByJobIDs(ctx context.Context, jobIDs []uuid.UUID) error
}

// ApplyInput carries a candidate's submission to a job.
type ApplyInput struct {
	TechSkills []string
	SoftSkills []string
	Resume     io.Reader
}

// Service exposes job posting and application operations.
type Service interface {
	Add(ctx context.Context, userID, companyID uuid.UUID, input AddJobInput) (*JobDTO, error)
	Update(ctx context.Context, userID, companyID, jobID uuid.UUID, input UpdateJobInput) (*JobDTO, error)
	Delete(ctx context.Context, userID, companyID, jobID uuid.UUID) error
	All(ctx context.Context, page pagination.Params) ([]JobDTO, pagination.Meta, error)
	ForCompany(ctx context.Context, companyName string) ([]JobDTO, error)
	Filtered(ctx context.Context, f Filter) ([]JobDTO, error)
	Apply(ctx context.Context, userID, jobID uuid.UUID, input ApplyInput) error
}

type service struct {
	repo      jobRepository
	companies companyReader
	apps      applicationsStore
	uploader  media.Uploader
	logg      *logger.Logger

	mediaCfg config.CloudinaryConfig
}

// ServiceDeps bundles the collaborators the job service needs.
type ServiceDeps struct {
	Repo         jobRepository
	Companies    companyReader
	Applications applicationsStore
	Uploader     media.Uploader
	Logger       *logger.Logger

	Cloudinary config.CloudinaryConfig
}

// NewService builds a job service with the provided dependencies.
func NewService(deps ServiceDeps) (Service, error) {
	if deps.Repo == nil {
		return nil, fmt.Errorf("job repository required")
	}
	if deps.Companies == nil {
		return nil, fmt.Errorf("company reader required")
	}
	if deps.Applications == nil {
		return nil, fmt.Errorf("applications store required")
	}
	return &service{
		repo:      deps.Repo,
		companies: deps.Companies,
		apps:      deps.Applications,
		uploader:  deps.Uploader,
		logg:      deps.Logger,
		mediaCfg:  deps.Cloudinary,
	}, nil
}

// Add posts a new job under the company. Only the company's HR owner may
// post, and a job with the same title, location, working time and seniority
// may exist only once per company.
func (s *service) Add(ctx context.Context, userID, companyID uuid.UUID, input AddJobInput) (*JobDTO, error) {
	company, err := s.loadOwnedCompany(ctx, userID, companyID)
	if err != nil {
		return nil, err
	}
	if err := s.ensureNotDuplicate(ctx, company.ID, input.Title, input.Location, input.WorkingTime, input.SeniorityLevel, uuid.Nil); err != nil {
		return nil, err
	}
	job, err := s.repo.Create(ctx, CreateJobDTO{
		Title:          input.Title,
		Location:       input.Location,
		WorkingTime:    input.WorkingTime,
		SeniorityLevel: input.SeniorityLevel,
		Description:    input.Description,
		TechSkills:     input.TechSkills,
		SoftSkills:     input.SoftSkills,
		CompanyID:      company.ID,
		AddedBy:        userID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create job")
	}
	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"job_id":     job.ID.String(),
		"company_id": company.ID.String(),
	}), "job posted")
	return FromModel(job), nil
}

// Update merges the provided fields into the job. The caller must own both
// the company and the job, and the job must belong to the company.
func (s *service) Update(ctx context.Context, userID, companyID, jobID uuid.UUID, input UpdateJobInput) (*JobDTO, error) {
	job, err := s.loadOwnedJob(ctx, userID, companyID, jobID)
	if err != nil {
		return nil, err
	}
	if input.Title != nil {
		job.Title = *input.Title
	}
	if input.Location != nil {
		job.Location = *input.Location
	}
	if input.WorkingTime != nil {
		job.WorkingTime = *input.WorkingTime
	}
	if input.SeniorityLevel != nil {
		job.SeniorityLevel = *input.SeniorityLevel
	}
	if input.Description != nil {
		job.Description = *input.Description
	}
	if input.TechSkills != nil {
		job.TechSkills = input.TechSkills
	}
	if input.SoftSkills != nil {
		job.SoftSkills = input.SoftSkills
	}
	if err := s.ensureNotDuplicate(ctx, job.CompanyID, job.Title, job.Location, job.WorkingTime, job.SeniorityLevel, job.ID); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, job); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update job")
	}
	return FromModel(job), nil
}

// Delete removes the job and every application submitted to it.
func (s *service) Delete(ctx context.Context, userID, companyID, jobID uuid.UUID) error {
	job, err := s.loadOwnedJob(ctx, userID, companyID, jobID)
	if err != nil {
		return err
	}
	if err := s.apps.DeleteByJobIDs(ctx, []uuid.UUID{job.ID}); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete job applications")
	}
	if err := s.repo.Delete(ctx, job.ID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete job")
	}
	s.logg.Info(s.logg.WithField(ctx, "job_id", job.ID.String()), "job deleted")
	return nil
}

// All returns one page of jobs with their company details attached.
func (s *service) All(ctx context.Context, page pagination.Params) ([]JobDTO, pagination.Meta, error) {
	jobList, total, err := s.repo.FindAll(ctx, page)
	if err != nil {
		return nil, pagination.Meta{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list jobs")
	}
	dtos, err := s.withCompanies(ctx, jobList)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return dtos, pagination.MetaFor(page, total), nil
}

// ForCompany returns every job posted under the named company. The name is
// matched through the company's slug, so spacing and case do not matter.
func (s *service) ForCompany(ctx context.Context, companyName string) ([]JobDTO, error) {
	company, err := s.companies.FindBySlug(ctx, models.SlugFromName(companyName))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Company not found.")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup company")
	}
	jobList, err := s.repo.FindByCompany(ctx, company.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list company jobs")
	}
	if len(jobList) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "No jobs found for this company.")
	}
	dtos := make([]JobDTO, len(jobList))
	for i := range jobList {
		dtos[i] = *FromModel(&jobList[i])
	}
	return dtos, nil
}

// Filtered returns jobs matching the filter, or not found when none do.
func (s *service) Filtered(ctx context.Context, f Filter) ([]JobDTO, error) {
	jobList, err := s.repo.FindFiltered(ctx, f)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "filter jobs")
	}
	if len(jobList) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "No jobs found match the filters.")
	}
	dtos := make([]JobDTO, len(jobList))
	for i := range jobList {
		dtos[i] = *FromModel(&jobList[i])
	}
	return dtos, nil
}

// Apply submits the user's resume to the job. A user may apply once on the
// whole platform; the resume is stored under the job's media folder.
func (s *service) Apply(ctx context.Context, userID, jobID uuid.UUID, input ApplyInput) error {
	if input.Resume == nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "File not attached.")
	}
	job, err := s.loadJob(ctx, jobID)
	if err != nil {
		return err
	}
	if _, err := s.apps.FindByUser(ctx, userID); err == nil {
		return pkgerrors.New(pkgerrors.CodeConflict, "You already applied for this job.")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup prior application")
	}
	folder := media.ResumeFolder(s.mediaCfg.RootFolder, job.CompanyID.String(), job.ID.String())
	asset, err := s.uploader.Upload(ctx, input.Resume, folder)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store resume")
	}
	if _, err := s.apps.Create(ctx, applications.CreateApplicationDTO{
		JobID:      job.ID,
		UserID:     userID,
		TechSkills: input.TechSkills,
		SoftSkills: input.SoftSkills,
		ResumeURL:  asset.URL,
		ResumeID:   asset.PublicID,
	}); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create application")
	}
	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"job_id":  job.ID.String(),
		"user_id": userID.String(),
	}), "application submitted")
	return nil
}

func (s *service) loadJob(ctx context.Context, jobID uuid.UUID) (*models.Job, error) {
	job, err := s.repo.FindByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Job not found.")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load job")
	}
	return job, nil
}

func (s *service) loadOwnedCompany(ctx context.Context, userID, companyID uuid.UUID) (*models.Company, error) {
	company, err := s.companies.FindByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Company not found.")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load company")
	}
	if company.HRID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "You are not the company owner.")
	}
	return company, nil
}

func (s *service) loadOwnedJob(ctx context.Context, userID, companyID, jobID uuid.UUID) (*models.Job, error) {
	company, err := s.loadOwnedCompany(ctx, userID, companyID)
	if err != nil {
		return nil, err
	}
	job, err := s.loadJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.CompanyID != company.ID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "Company is not the job owner.")
	}
	if job.AddedBy != userID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "You are not the job owner.")
	}
	return job, nil
}

func (s *service) ensureNotDuplicate(ctx context.Context, companyID uuid.UUID, title string, location enums.JobLocation, workingTime enums.WorkingTime, seniority enums.SeniorityLevel, exclude uuid.UUID) error {
	count, err := s.repo.CountDuplicates(ctx, companyID, title, location, workingTime, seniority, exclude)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check duplicate job")
	}
	if count > 0 {
		return pkgerrors.New(pkgerrors.CodeConflict, "Job already exist.")
	}
	return nil
}

func (s *service) withCompanies(ctx context.Context, jobList []models.Job) ([]JobDTO, error) {
	ids := make([]uuid.UUID, 0, len(jobList))
	seen := make(map[uuid.UUID]bool, len(jobList))
	for i := range jobList {
		if !seen[jobList[i].CompanyID] {
			seen[jobList[i].CompanyID] = true
			ids = append(ids, jobList[i].CompanyID)
		}
	}
	companyByID := make(map[uuid.UUID]*models.Company, len(ids))
	if len(ids) > 0 {
		companyList, err := s.companies.FindByIDs(ctx, ids)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load job companies")
		}
		for i := range companyList {
			companyByID[companyList[i].ID] = &companyList[i]
		}
	}
	dtos := make([]JobDTO, len(jobList))
	for i := range jobList {
		dto := FromModel(&jobList[i])
		dto.Company = CompanySummaryFromModel(companyByID[jobList[i].CompanyID])
		dtos[i] = *dto
	}
	return dtos, nil
}
