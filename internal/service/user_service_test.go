package service

import (
	"context"
	"testing"

	"forumapi/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_Register(t *testing.T) {
	t.Parallel()

	var stored models.RegisterUser
	repo := noopUserRepo()
	repo.addUserFn = func(_ context.Context, u models.RegisterUser) (*models.AddedUser, error) {
		stored = u
		return &models.AddedUser{ID: "user-123", Username: u.Username, Fullname: u.Fullname}, nil
	}

	svc := NewUserService(repo, fakeHasher{})
	added, err := svc.Register(context.Background(), models.RegisterUser{
		Username: "dicoding",
		Password: "secret",
		Fullname: "Dicoding Indonesia",
	})
	require.NoError(t, err)
	assert.Equal(t, "user-123", added.ID)
	assert.Equal(t, "hashed:secret", stored.Password)
}

func TestUserService_Register_UsernameTaken(t *testing.T) {
	t.Parallel()

	repo := noopUserRepo()
	repo.verifyAvailableFn = func(context.Context, string) error {
		return models.NewConflictError("username is not available")
	}
	repo.addUserFn = func(context.Context, models.RegisterUser) (*models.AddedUser, error) {
		t.Fatal("AddUser must not be called")
		return nil, nil
	}

	svc := NewUserService(repo, fakeHasher{})
	_, err := svc.Register(context.Background(), models.RegisterUser{Username: "dicoding", Password: "secret"})
	assertCode(t, err, models.CodeConflict)
}
