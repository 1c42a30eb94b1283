package repository

import (
	"context"
	"errors"

	"forumapi/internal/models"
	"forumapi/internal/observability"

	"gorm.io/gorm"
)

// ThreadRepository defines persistence operations for threads.
type ThreadRepository interface {
	AddThread(ctx context.Context, thread models.NewThread) (*models.AddedThread, error)
	VerifyThreadExists(ctx context.Context, threadID string) error
	GetThreadByID(ctx context.Context, threadID string) (*models.ThreadRow, error)
}

type threadRepository struct {
	db *gorm.DB
}

// NewThreadRepository returns a new ThreadRepository implementation.
func NewThreadRepository(db *gorm.DB) ThreadRepository {
	return &threadRepository{db: db}
}

func (r *threadRepository) AddThread(ctx context.Context, in models.NewThread) (*models.AddedThread, error) {
	defer observability.TrackQuery("insert", "threads")()

	thread := models.Thread{
		ID:    newID("thread"),
		Title: in.Title,
		Body:  in.Body,
		Owner: in.Owner,
		Date:  now(),
	}
	if err := r.db.WithContext(ctx).Create(&thread).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return &models.AddedThread{ID: thread.ID, Title: thread.Title, Owner: thread.Owner}, nil
}

func (r *threadRepository) VerifyThreadExists(ctx context.Context, threadID string) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Thread{}).Where("id = ?", threadID).Count(&count).Error; err != nil {
		return models.NewInternalError(err)
	}
	if count == 0 {
		return models.NewNotFoundError("thread", threadID)
	}
	return nil
}

func (r *threadRepository) GetThreadByID(ctx context.Context, threadID string) (*models.ThreadRow, error) {
	defer observability.TrackQuery("select", "threads")()

	var row models.ThreadRow
	err := r.db.WithContext(ctx).
		Table("threads").
		Select("threads.id, threads.title, threads.body, threads.date, users.username").
		Joins("INNER JOIN users ON users.id = threads.owner").
		Where("threads.id = ?", threadID).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("thread", threadID)
		}
		return nil, models.NewInternalError(err)
	}
	return &row, nil
}
