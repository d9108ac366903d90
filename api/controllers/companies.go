package controllers

import (
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/jobhive/jobhive-backend/api/middleware"
	"github.com/jobhive/jobhive-backend/api/responses"
	"github.com/jobhive/jobhive-backend/api/validators"
	"github.com/jobhive/jobhive-backend/internal/companies"
	"github.com/jobhive/jobhive-backend/pkg/config"
	"github.com/jobhive/jobhive-backend/pkg/db/models"
	pkgerrors "github.com/jobhive/jobhive-backend/pkg/errors"
	"github.com/jobhive/jobhive-backend/pkg/logger"
)

// CompanyAdd creates a company owned by the calling HR account.
func CompanyAdd(svc companies.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body companies.AddCompanyInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		hrID := middleware.UserIDFromContext(r.Context())
		if _, err := svc.Add(r.Context(), hrID, body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteMsg(w, "Company added successfully.")
	}
}

// CompanyPhoto replaces the company photo.
func CompanyPhoto(svc companies.Service, uploadCfg config.UploadConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		companyID, err := uuidParam(r, "companyId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		file, err := validators.FormFile(r, "companyPhoto", uploadCfg.MaxBytes(), validators.ImageTypes)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		userID := middleware.UserIDFromContext(r.Context())
		if _, err := svc.UpdatePhoto(r.Context(), userID, companyID, file); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteMsg(w, "Company photo added.")
	}
}

// CompanyUpdate edits company fields; only the owning HR may call it.
func CompanyUpdate(svc companies.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		companyID, err := uuidParam(r, "companyId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body companies.UpdateCompanyInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		userID := middleware.UserIDFromContext(r.Context())
		if _, err := svc.Update(r.Context(), userID, companyID, body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteMsg(w, "Company updated successfully.")
	}
}

// CompanyDelete removes a company together with its jobs and applications.
func CompanyDelete(svc companies.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		companyID, err := uuidParam(r, "companyId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		userID := middleware.UserIDFromContext(r.Context())
		if err := svc.Delete(r.Context(), userID, companyID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteMsg(w, "Company deleted successfully.")
	}
}

// CompanyGet returns a company with its HR summary and job list.
func CompanyGet(svc companies.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		companyID, err := uuidParam(r, "companyId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		userID := middleware.UserIDFromContext(r.Context())
		company, err := svc.Get(r.Context(), userID, companyID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteResult(w, map[string]any{"company": company})
	}
}

// CompanySearchByName resolves a company by its display name.
func CompanySearchByName(svc companies.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimSpace(r.URL.Query().Get("companyName"))
		if name == "" {
			err := pkgerrors.New(pkgerrors.CodeValidation, "Company name required as query param.")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		company, err := svc.SearchByName(r.Context(), name)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteResult(w, map[string]any{"company": company})
	}
}

// CompanyJobApplications lists every application for one of the company's
// jobs, with applicant details attached.
func CompanyJobApplications(svc companies.Service, logg *logger.Logger) http.HandlerFunc {
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
		apps, err := svc.JobApplications(r.Context(), userID, companyID, jobID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteResult(w, map[string]any{"jobApplications": apps})
	}
}

// CompanyApplicationsByDay collects a day's applications into an Excel sheet
// and returns them alongside a download header.
func CompanyApplicationsByDay(svc companies.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		companyID, err := uuidParam(r, "companyId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		day := strings.TrimSpace(r.URL.Query().Get("day"))
		if day == "" {
			err := pkgerrors.New(pkgerrors.CodeValidation, "Day required as query param.")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		// the day names the workbook file, so it must be a real date and
		// nothing else
		if parsed, err := time.Parse(models.CreatedDayLayout, day); err != nil || parsed.Format(models.CreatedDayLayout) != day {
			err := pkgerrors.New(pkgerrors.CodeValidation,
				`Invalid day format. Please use the format "YYYY-MM-DD" with two-digit month and day.`)
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		userID := middleware.UserIDFromContext(r.Context())
		export, err := svc.ApplicationsByDay(r.Context(), userID, companyID, day)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filename := url.QueryEscape(filepath.Base(export.FilePath))
		w.Header().Set("Content-Disposition", "attachment; filename="+filename)
		responses.WriteMsgResult(w, "Excel file created, try to download it now.",
			map[string]any{"jobApplications": export.Applications})
	}
}
