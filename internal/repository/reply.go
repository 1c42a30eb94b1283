package repository

import (
	"context"
	"errors"

	"forumapi/internal/models"
	"forumapi/internal/observability"

	"gorm.io/gorm"
)

// ReplyRepository defines persistence operations for replies.
type ReplyRepository interface {
	AddReply(ctx context.Context, reply models.NewReply) (*models.AddedReply, error)
	VerifyReplyExists(ctx context.Context, replyID, commentID string) error
	VerifyReplyOwner(ctx context.Context, replyID, owner string) error
	DeleteReply(ctx context.Context, replyID string) error
	GetRepliesByThreadID(ctx context.Context, threadID string) ([]models.ReplyRow, error)
}

type replyRepository struct {
	db *gorm.DB
}

// NewReplyRepository returns a new ReplyRepository implementation.
func NewReplyRepository(db *gorm.DB) ReplyRepository {
	return &replyRepository{db: db}
}

// repliesByThreadQuery returns every reply under every comment of a thread.
const repliesByThreadQuery = `SELECT replies.id, replies.comment_id, replies.content, replies.date, users.username, replies.is_delete
FROM replies
INNER JOIN comments ON comments.id = replies.comment_id
INNER JOIN users ON users.id = replies.owner
WHERE comments.thread_id = ?
ORDER BY replies.date ASC, replies.id ASC`

func (r *replyRepository) AddReply(ctx context.Context, in models.NewReply) (*models.AddedReply, error) {
	defer observability.TrackQuery("insert", "replies")()

	reply := models.Reply{
		ID:        newID("reply"),
		Content:   in.Content,
		Owner:     in.Owner,
		CommentID: in.CommentID,
		Date:      now(),
	}
	if err := r.db.WithContext(ctx).Create(&reply).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return &models.AddedReply{ID: reply.ID, Content: reply.Content, Owner: reply.Owner}, nil
}

// VerifyReplyExists fails with NotFound unless the reply exists under the given comment.
func (r *replyRepository) VerifyReplyExists(ctx context.Context, replyID, commentID string) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Reply{}).
		Where("id = ? AND comment_id = ?", replyID, commentID).
		Count(&count).Error; err != nil {
		return models.NewInternalError(err)
	}
	if count == 0 {
		return models.NewNotFoundError("reply", replyID)
	}
	return nil
}

func (r *replyRepository) VerifyReplyOwner(ctx context.Context, replyID, owner string) error {
	var reply models.Reply
	if err := r.db.WithContext(ctx).Select("id", "owner").Where("id = ?", replyID).Take(&reply).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("reply", replyID)
		}
		return models.NewInternalError(err)
	}
	if reply.Owner != owner {
		return models.NewForbiddenError("you are not the owner of this reply")
	}
	return nil
}

// DeleteReply flags the reply as deleted.
func (r *replyRepository) DeleteReply(ctx context.Context, replyID string) error {
	result := r.db.WithContext(ctx).Model(&models.Reply{}).Where("id = ?", replyID).Update("is_delete", true)
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("reply", replyID)
	}
	return nil
}

func (r *replyRepository) GetRepliesByThreadID(ctx context.Context, threadID string) ([]models.ReplyRow, error) {
	defer observability.TrackQuery("select", "replies")()

	rows := []models.ReplyRow{}
	if err := r.db.WithContext(ctx).Raw(repliesByThreadQuery, threadID).Scan(&rows).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return rows, nil
}
