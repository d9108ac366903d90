package users_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/jobhive/jobhive-backend/internal/applications"
	"github.com/jobhive/jobhive-backend/internal/auth"
	"github.com/jobhive/jobhive-backend/internal/companies"
	"github.com/jobhive/jobhive-backend/internal/jobs"
	"github.com/jobhive/jobhive-backend/internal/users"
	"github.com/jobhive/jobhive-backend/pkg/config"
	"github.com/jobhive/jobhive-backend/pkg/db/models"
	"github.com/jobhive/jobhive-backend/pkg/enums"
)

// cascadeSchema mirrors the production schema's foreign keys: tokens and
// applications follow their user out via ON DELETE CASCADE, while the
// company/job references restrict, so deletes must run children-first.
const cascadeSchema = `
CREATE TABLE users (
    id text PRIMARY KEY,
    first_name text NOT NULL,
    last_name text NOT NULL,
    username text NOT NULL,
    email text NOT NULL UNIQUE,
    password_hash text NOT NULL,
    recovery_email text,
    date_of_birth datetime NOT NULL,
    mobile_number text NOT NULL UNIQUE,
    role text NOT NULL DEFAULT 'user',
    status text NOT NULL DEFAULT 'offline',
    is_active boolean NOT NULL DEFAULT false,
    profile_picture_url text NOT NULL,
    profile_picture_id text NOT NULL,
    reset_code text,
    reset_code_is_valid boolean NOT NULL DEFAULT false,
    reset_code_is_verified boolean NOT NULL DEFAULT false,
    reset_code_expires_at datetime,
    created_at datetime NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at datetime NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE companies (
    id text PRIMARY KEY,
    name text NOT NULL UNIQUE,
    slug text NOT NULL UNIQUE,
    description text NOT NULL,
    industry text NOT NULL,
    address text NOT NULL,
    company_size text NOT NULL,
    company_email text NOT NULL UNIQUE,
    company_hr text NOT NULL REFERENCES users (id),
    photo_url text NOT NULL,
    photo_id text NOT NULL,
    created_at datetime NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at datetime NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE jobs (
    id text PRIMARY KEY,
    title text NOT NULL,
    location text NOT NULL,
    working_time text NOT NULL,
    seniority_level text NOT NULL,
    description text NOT NULL,
    technical_skills text NOT NULL,
    soft_skills text NOT NULL,
    company_id text NOT NULL REFERENCES companies (id),
    added_by text NOT NULL REFERENCES users (id),
    created_at datetime NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at datetime NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE applications (
    id text PRIMARY KEY,
    job_id text NOT NULL REFERENCES jobs (id),
    user_id text NOT NULL REFERENCES users (id) ON DELETE CASCADE,
    technical_skills text NOT NULL,
    soft_skills text NOT NULL,
    resume_url text NOT NULL,
    resume_id text NOT NULL,
    created_day text NOT NULL,
    created_at datetime NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at datetime NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE tokens (
    id text PRIMARY KEY,
    token text NOT NULL UNIQUE,
    user_id text NOT NULL REFERENCES users (id) ON DELETE CASCADE,
    is_valid boolean NOT NULL DEFAULT true,
    user_agent text NOT NULL,
    created_at datetime NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at datetime NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

func openCascadeDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Discard,
	})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	// single connection keeps the in-memory database and its pragma alive
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, gdb.Exec("PRAGMA foreign_keys = ON").Error)
	require.NoError(t, gdb.Exec(cascadeSchema).Error)
	return gdb
}

func newDBService(t *testing.T, gdb *gorm.DB) users.Service {
	t.Helper()
	svc, err := users.NewService(users.ServiceDeps{
		Repo:         users.NewRepository(gdb),
		Tokens:       auth.NewTokenRepository(gdb),
		Companies:    companies.NewRepository(gdb),
		Jobs:         jobs.NewRepository(gdb),
		Applications: applications.NewRepository(gdb),
		Cloudinary:   config.CloudinaryConfig{DefaultProfilePictureID: "default"},
	})
	require.NoError(t, err)
	return svc
}

func seedAccount(t *testing.T, gdb *gorm.DB, role enums.UserRole, email, mobile string) *models.User {
	t.Helper()
	user := &models.User{
		FirstName:         "Test",
		LastName:          "Account",
		Email:             email,
		PasswordHash:      "irrelevant",
		MobileNumber:      mobile,
		Role:              role,
		Status:            enums.UserStatusOnline,
		IsActive:          true,
		ProfilePictureURL: "https://cdn/default.png",
		ProfilePictureID:  "default",
	}
	require.NoError(t, gdb.Create(user).Error)
	return user
}

func rowCount(t *testing.T, gdb *gorm.DB, table string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, gdb.Table(table).Count(&n).Error)
	return n
}

func TestDeleteUserWithTokensAndApplication(t *testing.T) {
	gdb := openCascadeDB(t)
	svc := newDBService(t, gdb)

	hr := seedAccount(t, gdb, enums.UserRoleCompanyHR, "hr@example.com", "+201000000001")
	applicant := seedAccount(t, gdb, enums.UserRoleUser, "dev@example.com", "+201000000002")

	company := &models.Company{
		Name: "Acme Corp", Slug: "acmecorp", Description: "d", Industry: "tech",
		Address: "Cairo", CompanySize: enums.CompanySize11To20,
		Email: "contact@acme.example", HRID: hr.ID,
		PhotoURL: "https://cdn/c.png", PhotoID: "default",
	}
	require.NoError(t, gdb.Create(company).Error)

	job := &models.Job{
		Title: "backend engineer", Location: enums.JobLocationRemotely,
		WorkingTime: enums.WorkingTimeFullTime, SeniorityLevel: enums.SeniorityJunior,
		Description: "d", TechSkills: pq.StringArray{"go"}, SoftSkills: pq.StringArray{"teamwork"},
		CompanyID: company.ID, AddedBy: hr.ID,
	}
	require.NoError(t, gdb.Create(job).Error)

	require.NoError(t, gdb.Create(&models.Application{
		JobID: job.ID, UserID: applicant.ID,
		TechSkills: pq.StringArray{"go"}, SoftSkills: pq.StringArray{"teamwork"},
		ResumeURL: "https://cdn/r.pdf", ResumeID: "resume-id",
	}).Error)
	for _, u := range []uuid.UUID{hr.ID, applicant.ID} {
		_, err := auth.NewTokenRepository(gdb).Create(context.Background(), "token-"+u.String(), u, "test-agent")
		require.NoError(t, err)
	}

	// the applicant has a live token row and an application; both follow
	// the account out through the schema's cascades
	require.NoError(t, svc.Delete(context.Background(), applicant.ID))
	assert.Equal(t, int64(0), rowCount(t, gdb, "applications"))
	assert.Equal(t, int64(1), rowCount(t, gdb, "tokens"))
	assert.Equal(t, int64(1), rowCount(t, gdb, "users"))

	// the HR account owns a company with a job; the service must remove
	// them children-first or the restricting foreign keys reject it
	require.NoError(t, svc.Delete(context.Background(), hr.ID))
	assert.Equal(t, int64(0), rowCount(t, gdb, "jobs"))
	assert.Equal(t, int64(0), rowCount(t, gdb, "companies"))
	assert.Equal(t, int64(0), rowCount(t, gdb, "tokens"))
	assert.Equal(t, int64(0), rowCount(t, gdb, "users"))
}
