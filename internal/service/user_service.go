// Package service contains the forum use cases. Payloads arrive already
// validated; services sequence repository checks and effects.
package service

import (
	"context"

	"forumapi/internal/models"
	"forumapi/internal/observability"
	"forumapi/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

// PasswordHasher hashes and compares user passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

type UserService struct {
	userRepo repository.UserRepository
	hasher   PasswordHasher
}

func NewUserService(userRepo repository.UserRepository, hasher PasswordHasher) *UserService {
	return &UserService{userRepo: userRepo, hasher: hasher}
}

// Register stores a new user with a hashed password.
func (s *UserService) Register(ctx context.Context, in models.RegisterUser) (added *models.AddedUser, err error) {
	ctx, span := observability.StartSpan(ctx, "UserService.Register", attribute.String("user.username", in.Username))
	defer func() { span.End(err) }()

	if err = s.userRepo.VerifyAvailableUsername(ctx, in.Username); err != nil {
		return nil, err
	}

	hashed, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	in.Password = hashed

	return s.userRepo.AddUser(ctx, in)
}
