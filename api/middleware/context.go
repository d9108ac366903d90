package middleware

import (
	"context"

	"github.com/google/uuid"

	"github.com/jobhive/jobhive-backend/pkg/db/models"
)

type contextKey string

const (
	ctxUser contextKey = "principal"
	ctxRole contextKey = "actor_role"
)

// PrincipalFromContext returns the authenticated user seeded by Auth.
func PrincipalFromContext(ctx context.Context) *models.User {
	if ctx == nil {
		return nil
	}
	if u, ok := ctx.Value(ctxUser).(*models.User); ok {
		return u
	}
	return nil
}

// UserIDFromContext returns the authenticated user's id, or uuid.Nil.
func UserIDFromContext(ctx context.Context) uuid.UUID {
	if u := PrincipalFromContext(ctx); u != nil {
		return u.ID
	}
	return uuid.Nil
}

// RoleFromContext returns the authenticated user's role string.
func RoleFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxRole).(string); ok {
		return v
	}
	return ""
}

// WithPrincipal seeds the context with an authenticated user. Exposed for
// handler tests.
func WithPrincipal(ctx context.Context, user *models.User) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = context.WithValue(ctx, ctxUser, user)
	if user != nil {
		ctx = context.WithValue(ctx, ctxRole, string(user.Role))
	}
	return ctx
}
