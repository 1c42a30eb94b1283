package repository

import (
	"context"

	"forumapi/internal/models"

	"gorm.io/gorm"
)

// ErrRefreshTokenNotFound is the message for refresh tokens missing from the store.
const ErrRefreshTokenNotFound = "refresh token not found"

// AuthenticationRepository persists issued refresh tokens.
type AuthenticationRepository interface {
	AddToken(ctx context.Context, token string) error
	CheckTokenExists(ctx context.Context, token string) error
	DeleteToken(ctx context.Context, token string) error
}

type authenticationRepository struct {
	db *gorm.DB
}

// NewAuthenticationRepository returns a new AuthenticationRepository implementation.
func NewAuthenticationRepository(db *gorm.DB) AuthenticationRepository {
	return &authenticationRepository{db: db}
}

func (r *authenticationRepository) AddToken(ctx context.Context, token string) error {
	if err := r.db.WithContext(ctx).Create(&models.Authentication{Token: token}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// CheckTokenExists reads the primary so a fresh login is visible immediately.
func (r *authenticationRepository) CheckTokenExists(ctx context.Context, token string) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Authentication{}).Where("token = ?", token).Count(&count).Error; err != nil {
		return models.NewInternalError(err)
	}
	if count == 0 {
		return models.NewValidationError(ErrRefreshTokenNotFound)
	}
	return nil
}

func (r *authenticationRepository) DeleteToken(ctx context.Context, token string) error {
	result := r.db.WithContext(ctx).Where("token = ?", token).Delete(&models.Authentication{})
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewValidationError(ErrRefreshTokenNotFound)
	}
	return nil
}
