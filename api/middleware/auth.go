package middleware

import (
	"context"
	"net/http"

	"github.com/jobhive/jobhive-backend/api/responses"
	"github.com/jobhive/jobhive-backend/api/validators"
	"github.com/jobhive/jobhive-backend/internal/auth"
	"github.com/jobhive/jobhive-backend/pkg/logger"
)

// Authenticated validates a bearer token and seeds the request context with
// the resolved account.
func Authenticated(marker string, authSvc auth.Service, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := validators.BearerToken(r, marker)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}

			user, err := authSvc.Authenticate(r.Context(), token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}

			ctx := context.WithValue(r.Context(), ctxUser, user)
			ctx = context.WithValue(ctx, ctxRole, string(user.Role))
			if logg != nil {
				ctx = logg.WithFields(ctx, map[string]any{
					"user_id":    user.ID.String(),
					"actor_role": string(user.Role),
				})
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
