package validators

import (
	"net/http"
	"strings"

	pkgerrors "github.com/jobhive/jobhive-backend/pkg/errors"
)

// BearerToken extracts the session token from the Authorization header. The
// header must start with the configured marker, which replaces the usual
// "Bearer " prefix.
func BearerToken(r *http.Request, marker string) (string, error) {
	raw := strings.TrimSpace(r.Header.Get("Authorization"))
	if raw == "" {
		return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "Token not provided.")
	}
	if marker != "" && !strings.HasPrefix(raw, marker) {
		return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "Invalid bearer key.")
	}
	token := strings.TrimSpace(strings.TrimPrefix(raw, marker))
	if token == "" {
		return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "Token not provided.")
	}
	return token, nil
}
