package service

import (
	"context"
	"errors"

	"forumapi/internal/auth"
	"forumapi/internal/models"
	"forumapi/internal/observability"
	"forumapi/internal/repository"
)

// Login and refresh failure messages.
const (
	ErrUsernameNotFound    = "username not found"
	ErrInvalidCredentials  = "invalid credentials"
	ErrInvalidRefreshToken = "invalid refresh token"
)

// TokenIssuer creates and verifies the JWT pair.
type TokenIssuer interface {
	CreateAccessToken(id auth.Identity) (string, error)
	CreateRefreshToken(id auth.Identity) (string, error)
	VerifyRefreshToken(token string) (auth.Identity, error)
}

type AuthService struct {
	userRepo repository.UserRepository
	authRepo repository.AuthenticationRepository
	hasher   PasswordHasher
	tokens   TokenIssuer
}

func NewAuthService(
	userRepo repository.UserRepository,
	authRepo repository.AuthenticationRepository,
	hasher PasswordHasher,
	tokens TokenIssuer,
) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		authRepo: authRepo,
		hasher:   hasher,
		tokens:   tokens,
	}
}

// Login checks credentials, issues a token pair and persists the refresh token.
func (s *AuthService) Login(ctx context.Context, in models.UserLogin) (pair *models.NewAuth, err error) {
	ctx, span := observability.StartSpan(ctx, "AuthService.Login")
	defer func() { span.End(err) }()

	user, err := s.userRepo.GetByUsername(ctx, in.Username)
	if err != nil {
		if models.IsCode(err, models.CodeNotFound) {
			return nil, models.NewValidationError(ErrUsernameNotFound)
		}
		return nil, err
	}

	if err = s.hasher.Compare(user.Password, in.Password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return nil, models.NewUnauthenticatedError(ErrInvalidCredentials)
		}
		return nil, models.NewInternalError(err)
	}

	identity := auth.Identity{ID: user.ID, Username: user.Username}
	access, err := s.tokens.CreateAccessToken(identity)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	refresh, err := s.tokens.CreateRefreshToken(identity)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	if err = s.authRepo.AddToken(ctx, refresh); err != nil {
		return nil, err
	}
	return &models.NewAuth{AccessToken: access, RefreshToken: refresh}, nil
}

// Refresh exchanges a stored refresh token for a new access token.
// The refresh token itself is not rotated.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (access string, err error) {
	ctx, span := observability.StartSpan(ctx, "AuthService.Refresh")
	defer func() { span.End(err) }()

	identity, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		return "", models.NewValidationError(ErrInvalidRefreshToken)
	}
	if err = s.authRepo.CheckTokenExists(ctx, refreshToken); err != nil {
		return "", err
	}

	access, err = s.tokens.CreateAccessToken(identity)
	if err != nil {
		return "", models.NewInternalError(err)
	}
	return access, nil
}

// Logout revokes a stored refresh token.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) (err error) {
	ctx, span := observability.StartSpan(ctx, "AuthService.Logout")
	defer func() { span.End(err) }()

	if err = s.authRepo.CheckTokenExists(ctx, refreshToken); err != nil {
		return err
	}
	return s.authRepo.DeleteToken(ctx, refreshToken)
}
