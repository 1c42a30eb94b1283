package service

import (
	"context"
	"errors"
	"testing"

	"forumapi/internal/auth"
	"forumapi/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_Login(t *testing.T) {
	t.Parallel()

	var persisted string
	authRepo := noopAuthRepo()
	authRepo.addTokenFn = func(_ context.Context, token string) error {
		persisted = token
		return nil
	}

	svc := NewAuthService(noopUserRepo(), authRepo, fakeHasher{}, tokenIssuerStub{})
	pair, err := svc.Login(context.Background(), models.UserLogin{Username: "dicoding", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "access:user-1", pair.AccessToken)
	assert.Equal(t, "refresh:user-1", pair.RefreshToken)
	assert.Equal(t, pair.RefreshToken, persisted)
}

func TestAuthService_Login_Failures(t *testing.T) {
	t.Parallel()

	t.Run("unknown username", func(t *testing.T) {
		t.Parallel()
		users := noopUserRepo()
		users.getByUsernameFn = func(_ context.Context, username string) (*models.User, error) {
			return nil, models.NewNotFoundError("user", username)
		}
		svc := NewAuthService(users, noopAuthRepo(), fakeHasher{}, tokenIssuerStub{})
		_, err := svc.Login(context.Background(), models.UserLogin{Username: "ghost", Password: "secret"})
		assertCode(t, err, models.CodeValidation)
		assert.Equal(t, ErrUsernameNotFound, err.Error())
	})

	t.Run("wrong password", func(t *testing.T) {
		t.Parallel()
		authRepo := noopAuthRepo()
		authRepo.addTokenFn = func(context.Context, string) error {
			t.Fatal("token must not be stored")
			return nil
		}
		svc := NewAuthService(noopUserRepo(), authRepo, fakeHasher{}, tokenIssuerStub{})
		_, err := svc.Login(context.Background(), models.UserLogin{Username: "dicoding", Password: "wrong"})
		assertCode(t, err, models.CodeUnauthenticated)
	})

	t.Run("store failure propagates", func(t *testing.T) {
		t.Parallel()
		users := noopUserRepo()
		users.getByUsernameFn = func(context.Context, string) (*models.User, error) {
			return nil, models.NewInternalError(errors.New("db down"))
		}
		svc := NewAuthService(users, noopAuthRepo(), fakeHasher{}, tokenIssuerStub{})
		_, err := svc.Login(context.Background(), models.UserLogin{Username: "dicoding", Password: "secret"})
		assertCode(t, err, models.CodeInternal)
	})
}

func TestAuthService_Refresh(t *testing.T) {
	t.Parallel()

	t.Run("issues access token", func(t *testing.T) {
		t.Parallel()
		svc := NewAuthService(noopUserRepo(), noopAuthRepo(), fakeHasher{}, tokenIssuerStub{})
		access, err := svc.Refresh(context.Background(), "refresh:user-1")
		require.NoError(t, err)
		assert.Equal(t, "access:user-1", access)
	})

	t.Run("bad signature checked before store", func(t *testing.T) {
		t.Parallel()
		authRepo := noopAuthRepo()
		authRepo.checkTokenFn = func(context.Context, string) error {
			t.Fatal("store must not be consulted")
			return nil
		}
		issuer := tokenIssuerStub{verifyRefreshFn: func(string) (auth.Identity, error) {
			return auth.Identity{}, auth.ErrInvalidToken
		}}
		svc := NewAuthService(noopUserRepo(), authRepo, fakeHasher{}, issuer)
		_, err := svc.Refresh(context.Background(), "garbage")
		assertCode(t, err, models.CodeValidation)
		assert.Equal(t, ErrInvalidRefreshToken, err.Error())
	})

	t.Run("revoked token", func(t *testing.T) {
		t.Parallel()
		authRepo := noopAuthRepo()
		authRepo.checkTokenFn = func(context.Context, string) error {
			return models.NewValidationError("refresh token not found")
		}
		svc := NewAuthService(noopUserRepo(), authRepo, fakeHasher{}, tokenIssuerStub{})
		_, err := svc.Refresh(context.Background(), "refresh:user-1")
		assertCode(t, err, models.CodeValidation)
	})
}

func TestAuthService_Logout(t *testing.T) {
	t.Parallel()

	var deleted string
	authRepo := noopAuthRepo()
	authRepo.deleteTokenFn = func(_ context.Context, token string) error {
		deleted = token
		return nil
	}
	svc := NewAuthService(noopUserRepo(), authRepo, fakeHasher{}, tokenIssuerStub{})
	require.NoError(t, svc.Logout(context.Background(), "refresh:user-1"))
	assert.Equal(t, "refresh:user-1", deleted)

	missing := noopAuthRepo()
	missing.checkTokenFn = func(context.Context, string) error {
		return models.NewValidationError("refresh token not found")
	}
	missing.deleteTokenFn = func(context.Context, string) error {
		t.Fatal("delete must not run for unknown tokens")
		return nil
	}
	svc = NewAuthService(noopUserRepo(), missing, fakeHasher{}, tokenIssuerStub{})
	assertCode(t, svc.Logout(context.Background(), "unknown"), models.CodeValidation)
}
