package responses

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/jobhive/jobhive-backend/pkg/errors"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestWriteMsgResult(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteMsgResult(rec, "Job added successfully.", map[string]string{"id": "j1"})

	body := decode(t, rec)
	assert.Equal(t, 200, rec.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Job added successfully.", body["msg"])
	assert.Equal(t, "j1", body["result"].(map[string]any)["id"])
}

func TestWriteErrorKeepsClientMessages(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(context.Background(), nil, rec, pkgerrors.New(pkgerrors.CodeConflict, "Email already exist."))

	body := decode(t, rec)
	assert.Equal(t, 409, rec.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Email already exist.", body["msg"])
	assert.NotContains(t, body, "stack")
}

func TestWriteErrorMasksInternalMessages(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(context.Background(), nil, rec, pkgerrors.Wrap(pkgerrors.CodeInternal, errors.New("pq: boom"), "create user"))

	body := decode(t, rec)
	assert.Equal(t, 500, rec.Code)
	assert.Equal(t, "internal server error", body["msg"])
}

func TestWriteErrorValidationDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	err := pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
		WithDetails(map[string]string{"email": "is required", "password": "must be at least 8"})
	WriteError(context.Background(), nil, rec, err)

	body := decode(t, rec)
	assert.Equal(t, 400, rec.Code)
	details := body["msg"].(map[string]any)
	assert.Equal(t, "is required", details["email"])
	assert.Equal(t, "must be at least 8", details["password"])
}

func TestWriteErrorStackOnlyWhenExposed(t *testing.T) {
	ExposeStacks(true)
	defer ExposeStacks(false)

	rec := httptest.NewRecorder()
	WriteError(context.Background(), nil, rec, pkgerrors.Wrap(pkgerrors.CodeNotFound, errors.New("gone"), "User not found."))

	body := decode(t, rec)
	assert.Contains(t, body["stack"], "gone")
}

func TestWriteNotFoundPage(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteNotFoundPage(rec)

	body := decode(t, rec)
	assert.Equal(t, 404, rec.Code)
	assert.Equal(t, "Page not found.", body["msg"])
}
