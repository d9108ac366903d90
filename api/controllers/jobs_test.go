package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobhive/jobhive-backend/internal/jobs"
	"github.com/jobhive/jobhive-backend/pkg/config"
	"github.com/jobhive/jobhive-backend/pkg/enums"
	pkgerrors "github.com/jobhive/jobhive-backend/pkg/errors"
	"github.com/jobhive/jobhive-backend/pkg/pagination"
)

type stubJobsService struct {
	job  *jobs.JobDTO
	list []jobs.JobDTO
	meta pagination.Meta
	err  error

	addInput    *jobs.AddJobInput
	updateInput *jobs.UpdateJobInput
	applyInput  *jobs.ApplyInput
	page        pagination.Params
	companyName string
	filter      jobs.Filter
	deletedJob  uuid.UUID
}

func (s *stubJobsService) Add(_ context.Context, _, _ uuid.UUID, input jobs.AddJobInput) (*jobs.JobDTO, error) {
	s.addInput = &input
	return s.job, s.err
}

func (s *stubJobsService) Update(_ context.Context, _, _, _ uuid.UUID, input jobs.UpdateJobInput) (*jobs.JobDTO, error) {
	s.updateInput = &input
	return s.job, s.err
}

func (s *stubJobsService) Delete(_ context.Context, _, _, jobID uuid.UUID) error {
	s.deletedJob = jobID
	return s.err
}

func (s *stubJobsService) All(_ context.Context, page pagination.Params) ([]jobs.JobDTO, pagination.Meta, error) {
	s.page = page
	return s.list, s.meta, s.err
}

func (s *stubJobsService) ForCompany(_ context.Context, companyName string) ([]jobs.JobDTO, error) {
	s.companyName = companyName
	return s.list, s.err
}

func (s *stubJobsService) Filtered(_ context.Context, f jobs.Filter) ([]jobs.JobDTO, error) {
	s.filter = f
	return s.list, s.err
}

func (s *stubJobsService) Apply(_ context.Context, _, _ uuid.UUID, input jobs.ApplyInput) error {
	s.applyInput = &input
	return s.err
}

func TestJobAdd(t *testing.T) {
	svc := &stubJobsService{job: &jobs.JobDTO{ID: uuid.New()}}
	body := `{
		"jobTitle": "Backend Engineer",
		"jobLocation": "remotely",
		"workingTime": "full-time",
		"seniorityLevel": "senior",
		"jobDescription": "Build the platform.",
		"technicalSkills": ["go", "postgres"],
		"softSkills": ["communication"]
	}`

	req := httptest.NewRequest(http.MethodPost, "/company/x/job/", bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	req = authenticatedRequest(req, uuid.New())
	req = routed(req, map[string]string{"companyId": uuid.NewString()})
	rec := httptest.NewRecorder()

	JobAdd(svc, nil)(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Job added successfully.")
	require.NotNil(t, svc.addInput)
	assert.Equal(t, "Backend Engineer", svc.addInput.Title)
	assert.Equal(t, []string{"go", "postgres"}, svc.addInput.TechSkills)
}

func TestJobAddValidation(t *testing.T) {
	svc := &stubJobsService{}
	req := httptest.NewRequest(http.MethodPost, "/company/x/job/", bytes.NewReader([]byte(`{"jobTitle":"ok title"}`)))
	req.Header.Set("Content-Type", "application/json")
	req = authenticatedRequest(req, uuid.New())
	req = routed(req, map[string]string{"companyId": uuid.NewString()})
	rec := httptest.NewRecorder()

	JobAdd(svc, nil)(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, svc.addInput)
}

func TestJobUpdate(t *testing.T) {
	svc := &stubJobsService{job: &jobs.JobDTO{ID: uuid.New()}}
	req := httptest.NewRequest(http.MethodPut, "/company/x/job/y",
		bytes.NewReader([]byte(`{"jobDescription":"Refined role."}`)))
	req.Header.Set("Content-Type", "application/json")
	req = authenticatedRequest(req, uuid.New())
	req = routed(req, map[string]string{"companyId": uuid.NewString(), "jobId": uuid.NewString()})
	rec := httptest.NewRecorder()

	JobUpdate(svc, nil)(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Job updated successfully.")
	require.NotNil(t, svc.updateInput)
	require.NotNil(t, svc.updateInput.Description)
	assert.Equal(t, "Refined role.", *svc.updateInput.Description)
}

func TestJobDelete(t *testing.T) {
	svc := &stubJobsService{}
	jobID := uuid.New()
	req := httptest.NewRequest(http.MethodDelete, "/company/x/job/"+jobID.String(), nil)
	req = authenticatedRequest(req, uuid.New())
	req = routed(req, map[string]string{"companyId": uuid.NewString(), "jobId": jobID.String()})
	rec := httptest.NewRecorder()

	JobDelete(svc, nil)(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Job deleted successfully.")
	assert.Equal(t, jobID, svc.deletedJob)
}

func TestJobAll(t *testing.T) {
	svc := &stubJobsService{
		list: []jobs.JobDTO{{ID: uuid.New(), Title: "Backend Engineer"}},
		meta: pagination.Meta{Page: 2, PerPage: 5, Total: 11, TotalPages: 3},
	}
	req := httptest.NewRequest(http.MethodGet, "/job/all-jobs?page=2&perPage=5", nil)
	rec := httptest.NewRecorder()

	JobAll(svc, nil)(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, svc.page.Page)
	assert.Equal(t, 5, svc.page.PerPage)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	var result struct {
		Jobs []jobs.JobDTO   `json:"jobs"`
		Meta pagination.Meta `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(env.Result, &result))
	require.Len(t, result.Jobs, 1)
	assert.Equal(t, int64(11), result.Meta.Total)
}

func TestJobsForCompany(t *testing.T) {
	svc := &stubJobsService{list: []jobs.JobDTO{{ID: uuid.New()}}}
	req := httptest.NewRequest(http.MethodGet, "/job/company-jobs?companyName=Hive+Labs", nil)
	rec := httptest.NewRecorder()

	JobsForCompany(svc, nil)(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Hive Labs", svc.companyName)
}

func TestJobsForCompanyRequiresName(t *testing.T) {
	svc := &stubJobsService{}
	req := httptest.NewRequest(http.MethodGet, "/job/company-jobs", nil)
	rec := httptest.NewRecorder()

	JobsForCompany(svc, nil)(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Company name required as query param.")
}

func TestJobsFiltered(t *testing.T) {
	svc := &stubJobsService{list: []jobs.JobDTO{{ID: uuid.New()}}}
	target := "/job/filtered-jobs?jobTitle=engineer&jobLocation=remotely&workingTime=part-time&technicalSkills=go,redis"
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()

	JobsFiltered(svc, nil)(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "engineer", svc.filter.Title)
	assert.Equal(t, enums.JobLocationRemotely, svc.filter.Location)
	assert.Equal(t, enums.WorkingTimePartTime, svc.filter.WorkingTime)
	assert.Equal(t, []string{"go", "redis"}, svc.filter.TechSkills)
}

func TestJobsFilteredRejectsUnknownEnum(t *testing.T) {
	svc := &stubJobsService{}
	req := httptest.NewRequest(http.MethodGet, "/job/filtered-jobs?jobLocation=moon", nil)
	rec := httptest.NewRecorder()

	JobsFiltered(svc, nil)(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestJobsFilteredPropagatesNoMatch(t *testing.T) {
	svc := &stubJobsService{err: pkgerrors.New(pkgerrors.CodeNotFound, "No jobs found match the filters.")}
	req := httptest.NewRequest(http.MethodGet, "/job/filtered-jobs?jobTitle=engineer", nil)
	rec := httptest.NewRecorder()

	JobsFiltered(svc, nil)(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "No jobs found match the filters.")
}

// pdfApplication builds a multipart body with skills fields and a resume that
// sniffs as application/pdf.
func pdfApplication(t *testing.T) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("userTechSkills", "go,postgres"))
	require.NoError(t, mw.WriteField("userSoftSkills", "teamwork"))
	part, err := mw.CreateFormFile("userResume", "resume.pdf")
	require.NoError(t, err)
	_, err = part.Write([]byte("%PDF-1.4 resume body"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestJobApply(t *testing.T) {
	svc := &stubJobsService{}
	body, contentType := pdfApplication(t)

	req := httptest.NewRequest(http.MethodPost, "/company/x/job/y/application", body)
	req.Header.Set("Content-Type", contentType)
	req = authenticatedRequest(req, uuid.New())
	req = routed(req, map[string]string{"companyId": uuid.NewString(), "jobId": uuid.NewString()})
	rec := httptest.NewRecorder()

	JobApply(svc, config.UploadConfig{MaxUploadMB: 10}, nil)(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Applied to job successfully.")
	require.NotNil(t, svc.applyInput)
	assert.Equal(t, []string{"go", "postgres"}, svc.applyInput.TechSkills)
	assert.Equal(t, []string{"teamwork"}, svc.applyInput.SoftSkills)

	resume, err := io.ReadAll(svc.applyInput.Resume)
	require.NoError(t, err)
	assert.Contains(t, string(resume), "%PDF-1.4")
}

func TestJobApplyRequiresResume(t *testing.T) {
	svc := &stubJobsService{}
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("userTechSkills", "go"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/company/x/job/y/application", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req = authenticatedRequest(req, uuid.New())
	req = routed(req, map[string]string{"companyId": uuid.NewString(), "jobId": uuid.NewString()})
	rec := httptest.NewRecorder()

	JobApply(svc, config.UploadConfig{MaxUploadMB: 10}, nil)(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "File not attached.")
	assert.Nil(t, svc.applyInput)
}

func TestJobApplyRejectsNonPDF(t *testing.T) {
	svc := &stubJobsService{}
	body, contentType := pngUpload(t, "userResume")

	req := httptest.NewRequest(http.MethodPost, "/company/x/job/y/application", body)
	req.Header.Set("Content-Type", contentType)
	req = authenticatedRequest(req, uuid.New())
	req = routed(req, map[string]string{"companyId": uuid.NewString(), "jobId": uuid.NewString()})
	rec := httptest.NewRecorder()

	JobApply(svc, config.UploadConfig{MaxUploadMB: 10}, nil)(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, svc.applyInput)
}
