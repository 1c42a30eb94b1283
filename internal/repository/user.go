package repository

import (
	"context"
	"errors"

	"forumapi/internal/models"
	"forumapi/internal/observability"

	"gorm.io/gorm"
)

// ErrUsernameTaken is the message returned for duplicate usernames.
const ErrUsernameTaken = "username is not available"

// UserRepository defines persistence operations for users.
type UserRepository interface {
	VerifyAvailableUsername(ctx context.Context, username string) error
	AddUser(ctx context.Context, user models.RegisterUser) (*models.AddedUser, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) VerifyAvailableUsername(ctx context.Context, username string) error {
	defer observability.TrackQuery("select", "users")()

	var count int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return models.NewInternalError(err)
	}
	if count > 0 {
		return models.NewConflictError(ErrUsernameTaken)
	}
	return nil
}

// AddUser stores a user whose Password is already hashed.
func (r *userRepository) AddUser(ctx context.Context, in models.RegisterUser) (*models.AddedUser, error) {
	defer observability.TrackQuery("insert", "users")()

	user := models.User{
		ID:       newID("user"),
		Username: in.Username,
		Password: in.Password,
		Fullname: in.Fullname,
	}
	if err := r.db.WithContext(ctx).Create(&user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return nil, models.NewConflictError(ErrUsernameTaken)
		}
		return nil, models.NewInternalError(err)
	}
	return &models.AddedUser{ID: user.ID, Username: user.Username, Fullname: user.Fullname}, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	defer observability.TrackQuery("select", "users")()

	var user models.User
	if err := readDB(r.db).WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("user", username)
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}
