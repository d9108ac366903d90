package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/jobhive/jobhive-backend/pkg/enums"
)

// AccessTokenPayload captures the identity snapshot embedded when minting a token.
type AccessTokenPayload struct {
	UserID    uuid.UUID
	FirstName string
	LastName  string
	UserName  string
	Role      enums.UserRole
	IsActive  bool
}

// AccessTokenClaims represents the typed JWT issued at login. Expiry is not
// encoded here: token lifetime is governed by the persisted token record,
// which is flagged invalid instead of deleted.
type AccessTokenClaims struct {
	UserID    uuid.UUID      `json:"user_id"`
	FirstName string         `json:"first_name"`
	LastName  string         `json:"last_name"`
	UserName  string         `json:"user_name"`
	Role      enums.UserRole `json:"role"`
	IsActive  bool           `json:"is_active"`
	jwt.RegisteredClaims
}

// ActivationClaims carries the email an account-activation link refers to.
type ActivationClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}
