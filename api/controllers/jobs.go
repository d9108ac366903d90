package controllers

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/jobhive/jobhive-backend/api/middleware"
	"github.com/jobhive/jobhive-backend/api/responses"
	"github.com/jobhive/jobhive-backend/api/validators"
	"github.com/jobhive/jobhive-backend/internal/jobs"
	"github.com/jobhive/jobhive-backend/pkg/config"
	"github.com/jobhive/jobhive-backend/pkg/enums"
	pkgerrors "github.com/jobhive/jobhive-backend/pkg/errors"
	"github.com/jobhive/jobhive-backend/pkg/logger"
	"github.com/jobhive/jobhive-backend/pkg/pagination"
)

// JobAdd posts a job under a company owned by the caller.
func JobAdd(svc jobs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		companyID, err := uuidParam(r, "companyId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body jobs.AddJobInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		userID := middleware.UserIDFromContext(r.Context())
		if _, err := svc.Add(r.Context(), userID, companyID, body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteMsg(w, "Job added successfully.")
	}
}

// JobUpdate edits a posted job; only the posting HR may call it.
func JobUpdate(svc jobs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		companyID, err := uuidParam(r, "companyId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		jobID, err := uuidParam(r, "jobId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body jobs.UpdateJobInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		userID := middleware.UserIDFromContext(r.Context())
		if _, err := svc.Update(r.Context(), userID, companyID, jobID, body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteMsg(w, "Job updated successfully.")
	}
}

// JobDelete removes a job and its applications.
func JobDelete(svc jobs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		companyID, err := uuidParam(r, "companyId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		jobID, err := uuidParam(r, "jobId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		userID := middleware.UserIDFromContext(r.Context())
		if err := svc.Delete(r.Context(), userID, companyID, jobID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteMsg(w, "Job deleted successfully.")
	}
}

// JobAll lists every job with its company information.
func JobAll(svc jobs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := pagination.FromQuery(r.URL.Query())
		list, meta, err := svc.All(r.Context(), page)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteResult(w, map[string]any{"jobs": list, "meta": meta})
	}
}

// JobsForCompany lists the jobs of a company looked up by name.
func JobsForCompany(svc jobs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimSpace(r.URL.Query().Get("companyName"))
		if name == "" {
			err := pkgerrors.New(pkgerrors.CodeValidation, "Company name required as query param.")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.ForCompany(r.Context(), name)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteResult(w, map[string]any{"jobs": list})
	}
}

// JobsFiltered lists jobs matching the query-string filters.
func JobsFiltered(svc jobs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := filterFromQuery(r.URL.Query())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.Filtered(r.Context(), filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteResult(w, map[string]any{"jobs": list})
	}
}

// JobApply submits an application with a PDF resume.
func JobApply(svc jobs.Service, uploadCfg config.UploadConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := uuidParam(r, "companyId"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		jobID, err := uuidParam(r, "jobId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		resume, err := validators.FormFile(r, "userResume", uploadCfg.MaxBytes(), validators.PDFTypes)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := jobs.ApplyInput{
			TechSkills: formList(r, "userTechSkills"),
			SoftSkills: formList(r, "userSoftSkills"),
			Resume:     resume,
		}

		userID := middleware.UserIDFromContext(r.Context())
		if err := svc.Apply(r.Context(), userID, jobID, input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteMsg(w, "Applied to job successfully.")
	}
}

func filterFromQuery(q url.Values) (jobs.Filter, error) {
	var filter jobs.Filter
	filter.Title = strings.TrimSpace(q.Get("jobTitle"))
	filter.TechSkills = splitList(q["technicalSkills"])

	if raw := strings.TrimSpace(q.Get("jobLocation")); raw != "" {
		location, err := enums.ParseJobLocation(raw)
		if err != nil {
			return jobs.Filter{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid jobLocation")
		}
		filter.Location = location
	}
	if raw := strings.TrimSpace(q.Get("workingTime")); raw != "" {
		workingTime, err := enums.ParseWorkingTime(raw)
		if err != nil {
			return jobs.Filter{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid workingTime")
		}
		filter.WorkingTime = workingTime
	}
	if raw := strings.TrimSpace(q.Get("seniorityLevel")); raw != "" {
		seniority, err := enums.ParseSeniorityLevel(raw)
		if err != nil {
			return jobs.Filter{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid seniorityLevel")
		}
		filter.SeniorityLevel = seniority
	}
	return filter, nil
}

// formList reads a repeated multipart field, splitting comma-separated
// entries the way HTML clients tend to send them.
func formList(r *http.Request, field string) []string {
	if r.MultipartForm == nil {
		return nil
	}
	return splitList(r.MultipartForm.Value[field])
}

func splitList(values []string) []string {
	var out []string
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				out = append(out, trimmed)
			}
		}
	}
	return out
}
