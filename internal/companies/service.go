package companies

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/jobhive/jobhive-backend/internal/applications"
	"github.com/jobhive/jobhive-backend/internal/jobs"
	"github.com/jobhive/jobhive-backend/pkg/config"
	"github.com/jobhive/jobhive-backend/pkg/db/models"
	pkgerrors "github.com/jobhive/jobhive-backend/pkg/errors"
	"github.com/jobhive/jobhive-backend/pkg/logger"
	"github.com/jobhive/jobhive-backend/pkg/media"
)

type companyRepository interface {
	Create(ctx context.Context, dto CreateCompanyDTO) (*models.Company, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Company, error)
	FindBySlug(ctx context.Context, slug string) (*models.Company, error)
	FindByEmail(ctx context.Context, email string) (*models.Company, error)
	Update(ctx context.Context, company *models.Company) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type jobsReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Job, error)
	FindByCompany(ctx context.Context, companyID uuid.UUID) ([]models.Job, error)
	DeleteByCompany(ctx context.Context, companyID uuid.UUID) error
}

type applicationsReader interface {
	FindByJob(ctx context.Context, jobID uuid.UUID) ([]models.Application, error)
	FindByDay(ctx context.Context, day string) ([]models.Application, error)
	DeleteByJobIDs(ctx context.Context, jobIDs []uuid.UUID) error
}

type usersReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.User, error)
}

// DayExport is the outcome of a day-filtered application export: the
// matching applications plus the spreadsheet written for them.
type DayExport struct {
	Applications []applications.ApplicationDTO `json:"jobApplications"`
	FilePath     string                        `json:"file"`
}

// Service exposes company management operations.
type Service interface {
	Add(ctx context.Context, hrID uuid.UUID, input AddCompanyInput) (*CompanyDTO, error)
	Update(ctx context.Context, userID, companyID uuid.UUID, input UpdateCompanyInput) (*CompanyDTO, error)
	UpdatePhoto(ctx context.Context, userID, companyID uuid.UUID, file io.Reader) (*CompanyDTO, error)
	Delete(ctx context.Context, userID, companyID uuid.UUID) error
	Get(ctx context.Context, userID, companyID uuid.UUID) (*CompanyDTO, error)
	SearchByName(ctx context.Context, name string) (*CompanyDTO, error)
	JobApplications(ctx context.Context, userID, companyID, jobID uuid.UUID) ([]applications.ApplicationDTO, error)
	ApplicationsByDay(ctx context.Context, userID, companyID uuid.UUID, day string) (*DayExport, error)
}

type service struct {
	repo     companyRepository
	jobs     jobsReader
	apps     applicationsReader
	users    usersReader
	uploader media.Uploader
	logg     *logger.Logger

	mediaCfg  config.CloudinaryConfig
	uploadCfg config.UploadConfig
}

// ServiceDeps bundles the collaborators the company service needs.
type ServiceDeps struct {
	Repo         companyRepository
	Jobs         jobsReader
	Applications applicationsReader
	Users        usersReader
	Uploader     media.Uploader
	Logger       *logger.Logger

	Cloudinary config.CloudinaryConfig
	Upload     config.UploadConfig
}

// NewService builds a company service with the provided dependencies.
func NewService(deps ServiceDeps) (Service, error) {
	if deps.Repo == nil {
		return nil, fmt.Errorf("company repository required")
	}
	if deps.Jobs == nil || deps.Applications == nil {
		return nil, fmt.Errorf("cascade repositories required")
	}
	if deps.Users == nil {
		return nil, fmt.Errorf("users reader required")
	}
	return &service{
		repo:      deps.Repo,
		jobs:      deps.Jobs,
		apps:      deps.Applications,
		users:     deps.Users,
		uploader:  deps.Uploader,
		logg:      deps.Logger,
		mediaCfg:  deps.Cloudinary,
		uploadCfg: deps.Upload,
	}, nil
}

// Add registers a company owned by the HR user. Names collide through their
// slug, so "Hive Labs" and "hivelabs" are the same company.
func (s *service) Add(ctx context.Context, hrID uuid.UUID, input AddCompanyInput) (*CompanyDTO, error) {
	if err := s.ensureNameFree(ctx, input.Name); err != nil {
		return nil, err
	}
	if err := s.ensureEmailFree(ctx, input.Email); err != nil {
		return nil, err
	}
	company, err := s.repo.Create(ctx, CreateCompanyDTO{
		Name:        input.Name,
		Description: input.Description,
		Industry:    input.Industry,
		Address:     input.Address,
		CompanySize: input.CompanySize,
		Email:       input.Email,
		HRID:        hrID,
		PhotoURL:    s.mediaCfg.DefaultCompanyPhotoURL,
		PhotoID:     s.mediaCfg.DefaultCompanyPhotoID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create company")
	}
	s.logg.Info(s.logg.WithCompanyID(ctx, company.ID.String()), "company registered")
	return FromModel(company), nil
}

// Update merges the provided fields into the company. A new name or email
// must not collide with another company.
func (s *service) Update(ctx context.Context, userID, companyID uuid.UUID, input UpdateCompanyInput) (*CompanyDTO, error) {
	company, err := s.loadOwned(ctx, userID, companyID)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		if models.SlugFromName(*input.Name) != company.Slug {
			if err := s.ensureNameFree(ctx, *input.Name); err != nil {
				return nil, err
			}
		}
		company.Name = *input.Name
	}
	if input.Email != nil && *input.Email != company.Email {
		if err := s.ensureEmailFree(ctx, *input.Email); err != nil {
			return nil, err
		}
		company.Email = *input.Email
	}
	if input.Description != nil {
		company.Description = *input.Description
	}
	if input.Industry != nil {
		company.Industry = *input.Industry
	}
	if input.Address != nil {
		company.Address = *input.Address
	}
	if input.CompanySize != nil {
		company.CompanySize = *input.CompanySize
	}
	if err := s.repo.Update(ctx, company); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update company")
	}
	return FromModel(company), nil
}

// UpdatePhoto stores a new company photo. While the company still carries
// the stock photo the upload lands in the company's own folder; afterwards
// the existing asset is overwritten in place.
func (s *service) UpdatePhoto(ctx context.Context, userID, companyID uuid.UUID, file io.Reader) (*CompanyDTO, error) {
	if file == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "File not provided.")
	}
	company, err := s.loadOwned(ctx, userID, companyID)
	if err != nil {
		return nil, err
	}

	var asset media.Asset
	if company.PhotoID == s.mediaCfg.DefaultCompanyPhotoID {
		folder := media.CompanyFolder(s.mediaCfg.RootFolder, company.ID.String())
		asset, err = s.uploader.Upload(ctx, file, folder)
	} else {
		asset, err = s.uploader.Replace(ctx, file, company.PhotoID)
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store company photo")
	}

	company.PhotoURL = asset.URL
	company.PhotoID = asset.PublicID
	if err := s.repo.Update(ctx, company); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update company")
	}
	return FromModel(company), nil
}

// Delete removes the company and everything under it: stored media, its
// jobs, and those jobs' applications. Stages run without a surrounding
// transaction; a mid-cascade failure leaves earlier stages applied and
// reports the failing stage.
func (s *service) Delete(ctx context.Context, userID, companyID uuid.UUID) error {
	company, err := s.loadOwned(ctx, userID, companyID)
	if err != nil {
		return err
	}

	var mediaErr error
	if company.PhotoID != s.mediaCfg.DefaultCompanyPhotoID && s.uploader != nil {
		mediaErr = multierr.Append(mediaErr, s.uploader.Destroy(ctx, company.PhotoID))
		folder := media.CompanyFolder(s.mediaCfg.RootFolder, company.ID.String())
		mediaErr = multierr.Append(mediaErr, s.uploader.DeleteFolder(ctx, folder))
	}
	if mediaErr != nil && s.logg != nil {
		s.logg.Error(ctx, "releasing company media", mediaErr)
	}

	jobList, err := s.jobs.FindByCompany(ctx, company.ID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list company jobs")
	}
	jobIDs := make([]uuid.UUID, 0, len(jobList))
	for _, job := range jobList {
		jobIDs = append(jobIDs, job.ID)
	}

	if err := s.apps.DeleteByJobIDs(ctx, jobIDs); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete job applications")
	}
	if err := s.jobs.DeleteByCompany(ctx, company.ID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete company jobs")
	}
	if err := s.repo.Delete(ctx, company.ID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete company")
	}

	if mediaErr != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, mediaErr, "release company media")
	}
	return nil
}

// Get returns the company with its HR owner and every posted job. Only the
// owner may read the full view.
func (s *service) Get(ctx context.Context, userID, companyID uuid.UUID) (*CompanyDTO, error) {
	company, err := s.loadOwned(ctx, userID, companyID)
	if err != nil {
		return nil, err
	}
	dto := FromModel(company)
	if err := s.attachHR(ctx, dto); err != nil {
		return nil, err
	}
	jobList, err := s.jobs.FindByCompany(ctx, company.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list company jobs")
	}
	dto.Jobs = make([]jobs.JobDTO, len(jobList))
	for i := range jobList {
		dto.Jobs[i] = *jobs.FromModel(&jobList[i])
	}
	return dto, nil
}

// SearchByName resolves a company through its name slug and returns it with
// its HR owner attached.
func (s *service) SearchByName(ctx context.Context, name string) (*CompanyDTO, error) {
	company, err := s.repo.FindBySlug(ctx, models.SlugFromName(name))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Company not found.")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup company")
	}
	dto := FromModel(company)
	if err := s.attachHR(ctx, dto); err != nil {
		return nil, err
	}
	return dto, nil
}

// JobApplications lists every application made to one of the company's
// jobs, each with its applicant attached. The caller must own both the
// company and the job.
func (s *service) JobApplications(ctx context.Context, userID, companyID, jobID uuid.UUID) ([]applications.ApplicationDTO, error) {
	if _, err := s.loadOwned(ctx, userID, companyID); err != nil {
		return nil, err
	}
	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Job not found.")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load job")
	}
	if job.AddedBy != userID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "You are not the job owner.")
	}

	appList, err := s.apps.FindByJob(ctx, job.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list job applications")
	}
	if len(appList) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "No applications for this job.")
	}
	return s.withApplicants(ctx, appList)
}

// ApplicationsByDay collects the applications created on the given day and
// writes them to a downloadable spreadsheet. The company must have at least
// one posted job.
func (s *service) ApplicationsByDay(ctx context.Context, userID, companyID uuid.UUID, day string) (*DayExport, error) {
	company, err := s.loadOwned(ctx, userID, companyID)
	if err != nil {
		return nil, err
	}
	jobList, err := s.jobs.FindByCompany(ctx, company.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list company jobs")
	}
	if len(jobList) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "No jobs found for this company.")
	}

	// The day query is platform-wide rather than scoped to the company's
	// jobs; the listing keeps that shape so exports stay comparable with
	// historical ones.
	appList, err := s.apps.FindByDay(ctx, day)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list applications by day")
	}
	if len(appList) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "No applications found for this day.")
	}

	dtos, err := s.withApplicants(ctx, appList)
	if err != nil {
		return nil, err
	}
	filePath, err := applications.ExportDaySheet(s.uploadCfg.ExportDir, day, dtos)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "write applications sheet")
	}
	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"company_id": company.ID.String(),
		"file":       path.Base(filePath),
	}), "applications sheet exported")
	return &DayExport{Applications: dtos, FilePath: filePath}, nil
}

func (s *service) loadOwned(ctx context.Context, userID, companyID uuid.UUID) (*models.Company, error) {
	company, err := s.repo.FindByID(ctx, companyID)
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

func (s *service) ensureNameFree(ctx context.Context, name string) error {
	_, err := s.repo.FindBySlug(ctx, models.SlugFromName(name))
	if err == nil {
		return pkgerrors.New(pkgerrors.CodeConflict, "Company name already exist.")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup company name")
	}
	return nil
}

func (s *service) ensureEmailFree(ctx context.Context, email string) error {
	_, err := s.repo.FindByEmail(ctx, email)
	if err == nil {
		return pkgerrors.New(pkgerrors.CodeConflict, "Company email already exist.")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup company email")
	}
	return nil
}

func (s *service) attachHR(ctx context.Context, dto *CompanyDTO) error {
	hr, err := s.users.FindByID(ctx, dto.HRID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load company hr")
	}
	dto.HR = HRSummaryFromUser(hr)
	return nil
}

func (s *service) withApplicants(ctx context.Context, appList []models.Application) ([]applications.ApplicationDTO, error) {
	ids := make([]uuid.UUID, 0, len(appList))
	seen := make(map[uuid.UUID]bool, len(appList))
	for i := range appList {
		if !seen[appList[i].UserID] {
			seen[appList[i].UserID] = true
			ids = append(ids, appList[i].UserID)
		}
	}
	userByID := make(map[uuid.UUID]*models.User, len(ids))
	if len(ids) > 0 {
		userList, err := s.users.FindByIDs(ctx, ids)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load applicants")
		}
		for i := range userList {
			userByID[userList[i].ID] = &userList[i]
		}
	}
	dtos := make([]applications.ApplicationDTO, len(appList))
	for i := range appList {
		dto := applications.FromModel(&appList[i])
		dto.Applicant = applications.ApplicantFromUser(userByID[appList[i].UserID])
		dtos[i] = *dto
	}
	return dtos, nil
}
