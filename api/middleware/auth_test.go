package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobhive/jobhive-backend/internal/auth"
	pkgerrors "github.com/jobhive/jobhive-backend/pkg/errors"
	"github.com/jobhive/jobhive-backend/pkg/db/models"
	"github.com/jobhive/jobhive-backend/pkg/enums"
)

const testBearerMarker = "jobhive__"

type stubAuthService struct {
	user *models.User
	err  error
}

func (s *stubAuthService) Signup(context.Context, auth.SignupInput) error      { return nil }
func (s *stubAuthService) ActivateAccount(context.Context, string) error       { return nil }
func (s *stubAuthService) ForgetPassword(context.Context, string) error        { return nil }
func (s *stubAuthService) VerifyResetCode(context.Context, string) error       { return nil }
func (s *stubAuthService) ResetPassword(context.Context, string, string) error { return nil }

func (s *stubAuthService) Login(context.Context, auth.LoginInput) (*auth.LoginResult, error) {
	return nil, nil
}

func (s *stubAuthService) Authenticate(context.Context, string) (*models.User, error) {
	return s.user, s.err
}

func TestAuthenticatedSeedsContext(t *testing.T) {
	user := &models.User{ID: uuid.New(), Role: enums.UserRoleCompanyHR, IsActive: true}
	svc := &stubAuthService{user: user}

	var seen *models.User
	var role string
	handler := Authenticated(testBearerMarker, svc, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = PrincipalFromContext(r.Context())
		role = RoleFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/user/", nil)
	req.Header.Set("Authorization", testBearerMarker+"sometoken")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, seen)
	assert.Equal(t, user.ID, seen.ID)
	assert.Equal(t, string(enums.UserRoleCompanyHR), role)
}

func TestAuthenticatedRejectsMissingToken(t *testing.T) {
	svc := &stubAuthService{user: &models.User{ID: uuid.New()}}
	handler := Authenticated(testBearerMarker, svc, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/user/", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticatedRejectsWrongMarker(t *testing.T) {
	svc := &stubAuthService{user: &models.User{ID: uuid.New()}}
	handler := Authenticated(testBearerMarker, svc, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/user/", nil)
	req.Header.Set("Authorization", "Bearer sometoken")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticatedPropagatesExpiredToken(t *testing.T) {
	svc := &stubAuthService{err: pkgerrors.New(pkgerrors.CodeTokenExpired, "Token expired, login again.")}
	handler := Authenticated(testBearerMarker, svc, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/user/", nil)
	req.Header.Set("Authorization", testBearerMarker+"stale")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Token expired, login again.")
}

func TestRequireRoles(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := RequireRoles(nil, string(enums.UserRoleCompanyHR))(next)

	hr := &models.User{ID: uuid.New(), Role: enums.UserRoleCompanyHR}
	req := httptest.NewRequest(http.MethodPost, "/company/", nil)
	req = req.WithContext(WithPrincipal(req.Context(), hr))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	member := &models.User{ID: uuid.New(), Role: enums.UserRoleUser}
	req = httptest.NewRequest(http.MethodPost, "/company/", nil)
	req = req.WithContext(WithPrincipal(req.Context(), member))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "You are not authorized.")
}
