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

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobhive/jobhive-backend/api/middleware"
	"github.com/jobhive/jobhive-backend/internal/users"
	"github.com/jobhive/jobhive-backend/pkg/config"
	"github.com/jobhive/jobhive-backend/pkg/db/models"
	"github.com/jobhive/jobhive-backend/pkg/enums"
	pkgerrors "github.com/jobhive/jobhive-backend/pkg/errors"
)

type stubUsersService struct {
	user   *users.UserDTO
	public *users.PublicUserDTO
	emails []string
	err    error

	updateInput   *users.UpdateUserInput
	pictureBytes  []byte
	passwords     [2]string
	deletedID     uuid.UUID
	recoveryEmail string
}

func (s *stubUsersService) Get(context.Context, uuid.UUID) (*users.UserDTO, error) {
	return s.user, s.err
}

func (s *stubUsersService) GetPublic(context.Context, uuid.UUID) (*users.PublicUserDTO, error) {
	return s.public, s.err
}

func (s *stubUsersService) Update(_ context.Context, _ uuid.UUID, input users.UpdateUserInput) (*users.UserDTO, error) {
	s.updateInput = &input
	return s.user, s.err
}

func (s *stubUsersService) UpdateProfilePicture(_ context.Context, _ uuid.UUID, file io.Reader) (*users.UserDTO, error) {
	if file != nil {
		s.pictureBytes, _ = io.ReadAll(file)
	}
	return s.user, s.err
}

func (s *stubUsersService) UpdatePassword(_ context.Context, _ uuid.UUID, current, next string) error {
	s.passwords = [2]string{current, next}
	return s.err
}

func (s *stubUsersService) Delete(_ context.Context, userID uuid.UUID) error {
	s.deletedID = userID
	return s.err
}

func (s *stubUsersService) AccountsWithRecoveryEmail(_ context.Context, recoveryEmail string) ([]string, error) {
	s.recoveryEmail = recoveryEmail
	return s.emails, s.err
}

func authenticatedRequest(req *http.Request, userID uuid.UUID) *http.Request {
	user := &models.User{ID: userID, Role: enums.UserRoleUser, IsActive: true}
	return req.WithContext(middleware.WithPrincipal(req.Context(), user))
}

// pngUpload builds a multipart body whose file part sniffs as image/png.
func pngUpload(t *testing.T, field string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(field, "photo.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("\x89PNG\r\n\x1a\npixels"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestUserProfilePicture(t *testing.T) {
	svc := &stubUsersService{user: &users.UserDTO{ID: uuid.New()}}
	body, contentType := pngUpload(t, "profilePicture")

	req := httptest.NewRequest(http.MethodPatch, "/user/profile-picture", body)
	req.Header.Set("Content-Type", contentType)
	req = authenticatedRequest(req, uuid.New())
	rec := httptest.NewRecorder()

	UserProfilePicture(svc, config.UploadConfig{MaxUploadMB: 10}, nil)(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Profile picture added.")
	assert.NotEmpty(t, svc.pictureBytes)
}

func TestUserProfilePictureRequiresFile(t *testing.T) {
	svc := &stubUsersService{}
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPatch, "/user/profile-picture", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req = authenticatedRequest(req, uuid.New())
	rec := httptest.NewRecorder()

	UserProfilePicture(svc, config.UploadConfig{MaxUploadMB: 10}, nil)(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "File not attached.")
}

func TestUserUpdate(t *testing.T) {
	svc := &stubUsersService{user: &users.UserDTO{ID: uuid.New()}}
	req := httptest.NewRequest(http.MethodPut, "/user/", bytes.NewReader([]byte(`{"firstName":"Nour","recoveryEmail":"backup@example.com"}`)))
	req.Header.Set("Content-Type", "application/json")
	req = authenticatedRequest(req, uuid.New())
	rec := httptest.NewRecorder()

	UserUpdate(svc, nil)(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.updateInput)
	require.NotNil(t, svc.updateInput.FirstName)
	assert.Equal(t, "Nour", *svc.updateInput.FirstName)
	assert.Nil(t, svc.updateInput.Email)
}

func TestUserDelete(t *testing.T) {
	svc := &stubUsersService{}
	userID := uuid.New()
	req := httptest.NewRequest(http.MethodDelete, "/user/", nil)
	req = authenticatedRequest(req, userID)
	rec := httptest.NewRecorder()

	UserDelete(svc, nil)(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "User deleted successfully.")
	assert.Equal(t, userID, svc.deletedID)
}

func TestUserGet(t *testing.T) {
	dto := &users.UserDTO{ID: uuid.New(), Email: "hana@example.com"}
	svc := &stubUsersService{user: dto}
	req := authenticatedRequest(httptest.NewRequest(http.MethodGet, "/user/", nil), dto.ID)
	rec := httptest.NewRecorder()

	UserGet(svc, nil)(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	var result struct {
		User users.UserDTO `json:"user"`
	}
	require.NoError(t, json.Unmarshal(env.Result, &result))
	assert.Equal(t, "hana@example.com", result.User.Email)
}

func TestUserGetByID(t *testing.T) {
	public := &users.PublicUserDTO{ID: uuid.New(), FirstName: "Omar"}
	svc := &stubUsersService{public: public}

	req := httptest.NewRequest(http.MethodGet, "/user/"+public.ID.String(), nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("userId", public.ID.String())
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	rec := httptest.NewRecorder()

	UserGetByID(svc, nil)(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Omar")
}

func TestUserGetByIDRejectsMalformedID(t *testing.T) {
	svc := &stubUsersService{}
	req := httptest.NewRequest(http.MethodGet, "/user/not-a-uuid", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("userId", "not-a-uuid")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	rec := httptest.NewRecorder()

	UserGetByID(svc, nil)(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUserUpdatePassword(t *testing.T) {
	svc := &stubUsersService{}
	req := httptest.NewRequest(http.MethodPatch, "/user/update-password",
		bytes.NewReader([]byte(`{"currentPassword":"oldPass123","newPassword":"newPass456"}`)))
	req.Header.Set("Content-Type", "application/json")
	req = authenticatedRequest(req, uuid.New())
	rec := httptest.NewRecorder()

	UserUpdatePassword(svc, nil)(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Password changed successfully. try to login again")
	assert.Equal(t, [2]string{"oldPass123", "newPass456"}, svc.passwords)
}

func TestUserAccountsWithRecoveryEmail(t *testing.T) {
	svc := &stubUsersService{emails: []string{"a@example.com", "b@example.com"}}
	req := httptest.NewRequest(http.MethodPost, "/user/with-same-recovery-email",
		bytes.NewReader([]byte(`{"recoveryEmail":"backup@example.com"}`)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	UserAccountsWithRecoveryEmail(svc, nil)(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, "Emails with same recovery mail", msgString(t, env))

	var emails []string
	require.NoError(t, json.Unmarshal(env.Result, &emails))
	assert.Equal(t, []string{"a@example.com", "b@example.com"}, emails)
	assert.Equal(t, "backup@example.com", svc.recoveryEmail)
}

func TestUserGetPropagatesNotFound(t *testing.T) {
	svc := &stubUsersService{err: pkgerrors.New(pkgerrors.CodeNotFound, "User not found.")}
	req := authenticatedRequest(httptest.NewRequest(http.MethodGet, "/user/", nil), uuid.New())
	rec := httptest.NewRecorder()

	UserGet(svc, nil)(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "User not found.")
}
