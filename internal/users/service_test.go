package users

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/jobhive/jobhive-backend/pkg/config"
	"github.com/jobhive/jobhive-backend/pkg/db/models"
	"github.com/jobhive/jobhive-backend/pkg/enums"
	pkgerrors "github.com/jobhive/jobhive-backend/pkg/errors"
	"github.com/jobhive/jobhive-backend/pkg/media"
	"github.com/jobhive/jobhive-backend/pkg/security"
)

type stubUserRepo struct {
	users   map[uuid.UUID]*models.User
	deleted []uuid.UUID
}

func newStubUserRepo(seed ...*models.User) *stubUserRepo {
	r := &stubUserRepo{users: map[uuid.UUID]*models.User{}}
	for _, u := range seed {
		r.users[u.ID] = u
	}
	return r
}

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cpy := *u
	return &cpy, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cpy := *u
			return &cpy, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) FindByMobile(_ context.Context, mobile string) (*models.User, error) {
	for _, u := range r.users {
		if u.MobileNumber == mobile {
			cpy := *u
			return &cpy, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) FindByRecoveryEmail(_ context.Context, recoveryEmail string) ([]models.User, error) {
	var out []models.User
	for _, u := range r.users {
		if u.RecoveryEmail != nil && *u.RecoveryEmail == recoveryEmail {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, user *models.User) error {
	cpy := *user
	r.users[user.ID] = &cpy
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.users, id)
	r.deleted = append(r.deleted, id)
	return nil
}

type stubTokens struct {
	invalidated []uuid.UUID
}

func (t *stubTokens) InvalidateUserTokens(_ context.Context, userID uuid.UUID) error {
	t.invalidated = append(t.invalidated, userID)
	return nil
}

// callLog records the sequence of cascade stages across the stubs so
// tests can assert children go before their parents.
type callLog struct {
	calls []string
}

func (l *callLog) record(stage string) {
	if l != nil {
		l.calls = append(l.calls, stage)
	}
}

type stubCompanies struct {
	log       *callLog
	deletedHR []uuid.UUID
}

func (c *stubCompanies) FindByHR(context.Context, uuid.UUID) ([]models.Company, error) {
	return nil, nil
}

func (c *stubCompanies) DeleteByHR(_ context.Context, hrID uuid.UUID) error {
	c.log.record("companies")
	c.deletedHR = append(c.deletedHR, hrID)
	return nil
}

type stubJobs struct {
	log       *callLog
	jobs      []models.Job
	deletedBy []uuid.UUID
}

func (j *stubJobs) FindByAddedBy(context.Context, uuid.UUID) ([]models.Job, error) {
	return j.jobs, nil
}

func (j *stubJobs) DeleteByAddedBy(_ context.Context, userID uuid.UUID) error {
	j.log.record("jobs")
	j.deletedBy = append(j.deletedBy, userID)
	return nil
}

type stubApplications struct {
	log           *callLog
	deletedJobIDs [][]uuid.UUID
}

func (a *stubApplications) DeleteByJobIDs(_ context.Context, jobIDs []uuid.UUID) error {
	a.log.record("applications")
	a.deletedJobIDs = append(a.deletedJobIDs, jobIDs)
	return nil
}

type stubUploader struct {
	uploads   int
	replaces  int
	destroyed []string
	folders   []string
}

func (u *stubUploader) Upload(context.Context, io.Reader, string) (media.Asset, error) {
	u.uploads++
	return media.Asset{URL: "https://cdn/img.png", PublicID: "uploaded-id"}, nil
}

func (u *stubUploader) Replace(_ context.Context, _ io.Reader, publicID string) (media.Asset, error) {
	u.replaces++
	return media.Asset{URL: "https://cdn/img2.png", PublicID: publicID}, nil
}

func (u *stubUploader) Destroy(_ context.Context, publicID string) error {
	u.destroyed = append(u.destroyed, publicID)
	return nil
}

func (u *stubUploader) DeleteFolder(_ context.Context, folder string) error {
	u.folders = append(u.folders, folder)
	return nil
}

type stubMailer struct {
	sent []string
}

func (m *stubMailer) Send(_ context.Context, to, _, _ string) error {
	m.sent = append(m.sent, to)
	return nil
}

func testConfig() (config.AppConfig, config.JWTConfig, config.PasswordConfig, config.CloudinaryConfig) {
	app := config.AppConfig{Env: "development", BaseURL: "http://localhost:3000"}
	jwt := config.JWTConfig{Secret: "test-secret", Issuer: "jobhive-test"}
	pw := config.PasswordConfig{ArgonMemoryKB: 8192, ArgonTime: 1, ArgonParallelism: 1, ArgonSaltLen: 16, ArgonKeyLen: 32}
	cld := config.CloudinaryConfig{
		RootFolder:              "JobHive",
		DefaultProfilePictureID: "JobHive/DefaultImages/placeholder",
	}
	return app, jwt, pw, cld
}

func seedUser(t *testing.T, pw config.PasswordConfig) *models.User {
	t.Helper()
	hash, err := security.HashPassword("old-password", pw)
	require.NoError(t, err)
	recovery := "backup@example.com"
	return &models.User{
		ID:                uuid.New(),
		FirstName:         "Jane",
		LastName:          "Doe",
		Username:          "Jane Doe",
		Email:             "jane@example.com",
		PasswordHash:      hash,
		RecoveryEmail:     &recovery,
		DateOfBirth:       time.Date(1992, 4, 1, 0, 0, 0, 0, time.UTC),
		MobileNumber:      "+201000000001",
		Role:              enums.UserRoleUser,
		Status:            enums.UserStatusOnline,
		IsActive:          true,
		ProfilePictureURL: "https://cdn/default.png",
		ProfilePictureID:  "JobHive/DefaultImages/placeholder",
	}
}

func newTestService(t *testing.T, repo *stubUserRepo) (Service, *stubTokens, *stubCompanies, *stubJobs, *stubApplications, *stubUploader, *stubMailer) {
	t.Helper()
	app, jwt, pw, cld := testConfig()
	tokens := &stubTokens{}
	log := &callLog{}
	companies := &stubCompanies{log: log}
	jobs := &stubJobs{log: log}
	apps := &stubApplications{log: log}
	uploader := &stubUploader{}
	mailer := &stubMailer{}

	svc, err := NewService(ServiceDeps{
		Repo:         repo,
		Tokens:       tokens,
		Companies:    companies,
		Jobs:         jobs,
		Applications: apps,
		Uploader:     uploader,
		Mailer:       mailer,
		App:          app,
		JWT:          jwt,
		Password:     pw,
		Cloudinary:   cld,
	})
	require.NoError(t, err)
	return svc, tokens, companies, jobs, apps, uploader, mailer
}

func TestUpdateMergesPartialPayload(t *testing.T) {
	_, _, pw, _ := testConfig()
	user := seedUser(t, pw)
	repo := newStubUserRepo(user)
	svc, tokens, _, _, _, _, mailer := newTestService(t, repo)

	newFirst := "Janet"
	updated, err := svc.Update(context.Background(), user.ID, UpdateUserInput{FirstName: &newFirst})
	require.NoError(t, err)

	assert.Equal(t, "Janet", updated.FirstName)
	assert.Equal(t, user.LastName, updated.LastName)
	assert.Equal(t, user.Email, updated.Email)
	assert.Equal(t, user.MobileNumber, updated.MobileNumber)
	assert.Equal(t, user.DateOfBirth, updated.DateOfBirth)
	assert.True(t, updated.IsActive)
	assert.Empty(t, tokens.invalidated)
	assert.Empty(t, mailer.sent)
}

func TestUpdateContactChangeForcesReactivation(t *testing.T) {
	_, _, pw, _ := testConfig()
	user := seedUser(t, pw)
	repo := newStubUserRepo(user)
	svc, tokens, _, _, _, _, mailer := newTestService(t, repo)

	newEmail := "janet@example.com"
	updated, err := svc.Update(context.Background(), user.ID, UpdateUserInput{Email: &newEmail})
	require.NoError(t, err)

	assert.Equal(t, newEmail, updated.Email)
	assert.False(t, updated.IsActive)
	assert.Equal(t, enums.UserStatusOffline, updated.Status)
	assert.Equal(t, []uuid.UUID{user.ID}, tokens.invalidated)
	assert.Equal(t, []string{newEmail}, mailer.sent)
}

func TestUpdateRejectsTakenEmail(t *testing.T) {
	_, _, pw, _ := testConfig()
	user := seedUser(t, pw)
	other := seedUser(t, pw)
	other.ID = uuid.New()
	other.Email = "taken@example.com"
	other.MobileNumber = "+201000000002"
	repo := newStubUserRepo(user, other)
	svc, _, _, _, _, _, _ := newTestService(t, repo)

	taken := "taken@example.com"
	_, err := svc.Update(context.Background(), user.ID, UpdateUserInput{Email: &taken})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeConflict, pkgerrors.As(err).Code())
}

func TestUpdatePasswordWrongCurrent(t *testing.T) {
	_, _, pw, _ := testConfig()
	user := seedUser(t, pw)
	repo := newStubUserRepo(user)
	svc, tokens, _, _, _, _, _ := newTestService(t, repo)

	err := svc.UpdatePassword(context.Background(), user.ID, "not-the-password", "new-password")
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeUnauthorized, pkgerrors.As(err).Code())
	assert.Empty(t, tokens.invalidated)
}

func TestUpdatePasswordInvalidatesTokens(t *testing.T) {
	_, _, pw, _ := testConfig()
	user := seedUser(t, pw)
	repo := newStubUserRepo(user)
	svc, tokens, _, _, _, _, _ := newTestService(t, repo)

	require.NoError(t, svc.UpdatePassword(context.Background(), user.ID, "old-password", "new-password"))
	assert.Equal(t, []uuid.UUID{user.ID}, tokens.invalidated)

	stored := repo.users[user.ID]
	assert.Equal(t, enums.UserStatusOffline, stored.Status)
	match, err := security.VerifyPassword("new-password", stored.PasswordHash)
	require.NoError(t, err)
	assert.True(t, match)
}

func TestDeleteCompanyHRCascades(t *testing.T) {
	_, _, pw, _ := testConfig()
	user := seedUser(t, pw)
	user.Role = enums.UserRoleCompanyHR
	user.ProfilePictureID = "JobHive/users/custom"
	repo := newStubUserRepo(user)
	svc, tokens, companies, jobs, apps, uploader, _ := newTestService(t, repo)

	jobID := uuid.New()
	jobs.jobs = []models.Job{{ID: jobID, AddedBy: user.ID}}

	require.NoError(t, svc.Delete(context.Background(), user.ID))

	assert.Equal(t, []uuid.UUID{user.ID}, tokens.invalidated)
	assert.Equal(t, []string{"JobHive/users/custom"}, uploader.destroyed)
	assert.Equal(t, []uuid.UUID{user.ID}, companies.deletedHR)
	assert.Equal(t, []uuid.UUID{user.ID}, jobs.deletedBy)
	require.Len(t, apps.deletedJobIDs, 1)
	assert.Equal(t, []uuid.UUID{jobID}, apps.deletedJobIDs[0])
	assert.Equal(t, []uuid.UUID{user.ID}, repo.deleted)

	// children before parents, or the database foreign keys reject the
	// company delete
	assert.Equal(t, []string{"applications", "jobs", "companies"}, companies.log.calls)
}

func TestDeletePlainUserSkipsCompanyCascade(t *testing.T) {
	_, _, pw, _ := testConfig()
	user := seedUser(t, pw)
	repo := newStubUserRepo(user)
	svc, tokens, companies, jobs, _, uploader, _ := newTestService(t, repo)

	require.NoError(t, svc.Delete(context.Background(), user.ID))

	assert.Equal(t, []uuid.UUID{user.ID}, tokens.invalidated)
	assert.Empty(t, uploader.destroyed)
	assert.Empty(t, companies.deletedHR)
	assert.Empty(t, jobs.deletedBy)
}

func TestUpdateProfilePictureDefaultUploadsToFolder(t *testing.T) {
	_, _, pw, _ := testConfig()
	user := seedUser(t, pw)
	repo := newStubUserRepo(user)
	svc, _, _, _, _, uploader, _ := newTestService(t, repo)

	dto, err := svc.UpdateProfilePicture(context.Background(), user.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, uploader.uploads)
	assert.Equal(t, 0, uploader.replaces)
	assert.Equal(t, "uploaded-id", dto.ProfilePicture.PublicID)
}

func TestUpdateProfilePictureCustomReplacesInPlace(t *testing.T) {
	_, _, pw, _ := testConfig()
	user := seedUser(t, pw)
	user.ProfilePictureID = "JobHive/users/custom"
	repo := newStubUserRepo(user)
	svc, _, _, _, _, uploader, _ := newTestService(t, repo)

	dto, err := svc.UpdateProfilePicture(context.Background(), user.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, uploader.uploads)
	assert.Equal(t, 1, uploader.replaces)
	assert.Equal(t, "JobHive/users/custom", dto.ProfilePicture.PublicID)
}

func TestAccountsWithRecoveryEmail(t *testing.T) {
	_, _, pw, _ := testConfig()
	user := seedUser(t, pw)
	repo := newStubUserRepo(user)
	svc, _, _, _, _, _, _ := newTestService(t, repo)

	emails, err := svc.AccountsWithRecoveryEmail(context.Background(), "backup@example.com")
	require.NoError(t, err)
	assert.Equal(t, []string{"jane@example.com"}, emails)

	none, err := svc.AccountsWithRecoveryEmail(context.Background(), "missing@example.com")
	require.NoError(t, err)
	assert.Empty(t, none)
}
