package repository

import (
	"context"
	"errors"

	"forumapi/internal/models"
	"forumapi/internal/observability"

	"gorm.io/gorm"
)

// CommentRepository defines persistence operations for comments and their likes.
type CommentRepository interface {
	AddComment(ctx context.Context, comment models.NewComment) (*models.AddedComment, error)
	VerifyCommentExists(ctx context.Context, commentID, threadID string) error
	VerifyCommentOwner(ctx context.Context, commentID, owner string) error
	DeleteComment(ctx context.Context, commentID string) error
	GetCommentsByThreadID(ctx context.Context, threadID string) ([]models.CommentRow, error)
	IsLiked(ctx context.Context, userID, commentID string) (bool, error)
	AddLike(ctx context.Context, userID, commentID string) error
	DeleteLike(ctx context.Context, userID, commentID string) error
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

// commentsByThreadQuery counts likes per comment; comments without likes keep a zero count.
const commentsByThreadQuery = `SELECT comments.id, users.username, comments.date, comments.content, comments.is_delete,
	CAST(COUNT(user_comment_likes.id) AS INTEGER) AS like_count
FROM comments
INNER JOIN users ON users.id = comments.owner
LEFT JOIN user_comment_likes ON user_comment_likes.comment_id = comments.id
WHERE comments.thread_id = ?
GROUP BY comments.id, users.username
ORDER BY comments.date ASC, comments.id ASC`

func (r *commentRepository) AddComment(ctx context.Context, in models.NewComment) (*models.AddedComment, error) {
	defer observability.TrackQuery("insert", "comments")()

	comment := models.Comment{
		ID:       newID("comment"),
		Content:  in.Content,
		Owner:    in.Owner,
		ThreadID: in.ThreadID,
		Date:     now(),
	}
	if err := r.db.WithContext(ctx).Create(&comment).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return &models.AddedComment{ID: comment.ID, Content: comment.Content, Owner: comment.Owner}, nil
}

// VerifyCommentExists fails with NotFound unless the comment exists in the given thread.
func (r *commentRepository) VerifyCommentExists(ctx context.Context, commentID, threadID string) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Comment{}).
		Where("id = ? AND thread_id = ?", commentID, threadID).
		Count(&count).Error; err != nil {
		return models.NewInternalError(err)
	}
	if count == 0 {
		return models.NewNotFoundError("comment", commentID)
	}
	return nil
}

func (r *commentRepository) VerifyCommentOwner(ctx context.Context, commentID, owner string) error {
	var comment models.Comment
	if err := r.db.WithContext(ctx).Select("id", "owner").Where("id = ?", commentID).Take(&comment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("comment", commentID)
		}
		return models.NewInternalError(err)
	}
	if comment.Owner != owner {
		return models.NewForbiddenError("you are not the owner of this comment")
	}
	return nil
}

// DeleteComment flags the comment as deleted. The row and its replies remain.
func (r *commentRepository) DeleteComment(ctx context.Context, commentID string) error {
	result := r.db.WithContext(ctx).Model(&models.Comment{}).Where("id = ?", commentID).Update("is_delete", true)
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("comment", commentID)
	}
	return nil
}

func (r *commentRepository) GetCommentsByThreadID(ctx context.Context, threadID string) ([]models.CommentRow, error) {
	defer observability.TrackQuery("select", "comments")()

	rows := []models.CommentRow{}
	if err := r.db.WithContext(ctx).Raw(commentsByThreadQuery, threadID).Scan(&rows).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return rows, nil
}

func (r *commentRepository) IsLiked(ctx context.Context, userID, commentID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.CommentLike{}).
		Where("user_id = ? AND comment_id = ?", userID, commentID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *commentRepository) AddLike(ctx context.Context, userID, commentID string) error {
	like := models.CommentLike{ID: newID("like"), UserID: userID, CommentID: commentID}
	if err := r.db.WithContext(ctx).Create(&like).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *commentRepository) DeleteLike(ctx context.Context, userID, commentID string) error {
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND comment_id = ?", userID, commentID).
		Delete(&models.CommentLike{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
