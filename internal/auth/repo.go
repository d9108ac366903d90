package auth

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jobhive/jobhive-backend/pkg/db/models"
)

// TokenRepository handles persisted access tokens. Rows are only ever
// flagged invalid, never removed.
type TokenRepository struct {
	db *gorm.DB
}

// NewTokenRepository binds a GORM DB to token operations.
func NewTokenRepository(db *gorm.DB) *TokenRepository {
	return &TokenRepository{db: db}
}

// Create records a freshly minted token.
func (r *TokenRepository) Create(ctx context.Context, token string, userID uuid.UUID, userAgent string) (*models.Token, error) {
	record := &models.Token{
		Token:     token,
		UserID:    userID,
		IsValid:   true,
		UserAgent: userAgent,
	}
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}

// Find loads the token row regardless of its validity flag. Callers
// decide how a missing row differs from an invalidated one.
func (r *TokenRepository) Find(ctx context.Context, token string) (*models.Token, error) {
	var record models.Token
	if err := r.db.WithContext(ctx).
		Where("token = ?", token).
		First(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// InvalidateUserTokens flags every token of the user invalid.
func (r *TokenRepository) InvalidateUserTokens(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&models.Token{}).
		Where("user_id = ?", userID).
		Update("is_valid", false).Error
}
