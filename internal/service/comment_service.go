package service

import (
	"context"

	"forumapi/internal/models"
	"forumapi/internal/observability"
	"forumapi/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

type CommentService struct {
	commentRepo repository.CommentRepository
	threadRepo  repository.ThreadRepository
}

type DeleteCommentInput struct {
	ThreadID  string
	CommentID string
	Owner     string
}

type ToggleLikeInput struct {
	ThreadID  string
	CommentID string
	UserID    string
}

func NewCommentService(commentRepo repository.CommentRepository, threadRepo repository.ThreadRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		threadRepo:  threadRepo,
	}
}

func (s *CommentService) AddComment(ctx context.Context, in models.NewComment) (added *models.AddedComment, err error) {
	ctx, span := observability.StartSpan(ctx, "CommentService.AddComment", attribute.String("thread.id", in.ThreadID))
	defer func() { span.End(err) }()

	if err = s.threadRepo.VerifyThreadExists(ctx, in.ThreadID); err != nil {
		return nil, err
	}
	return s.commentRepo.AddComment(ctx, in)
}

// DeleteComment soft-deletes a comment owned by the caller.
func (s *CommentService) DeleteComment(ctx context.Context, in DeleteCommentInput) (err error) {
	ctx, span := observability.StartSpan(ctx, "CommentService.DeleteComment",
		attribute.String("thread.id", in.ThreadID),
		attribute.String("comment.id", in.CommentID),
	)
	defer func() { span.End(err) }()

	if err = s.threadRepo.VerifyThreadExists(ctx, in.ThreadID); err != nil {
		return err
	}
	if err = s.commentRepo.VerifyCommentExists(ctx, in.CommentID, in.ThreadID); err != nil {
		return err
	}
	if err = s.commentRepo.VerifyCommentOwner(ctx, in.CommentID, in.Owner); err != nil {
		return err
	}
	return s.commentRepo.DeleteComment(ctx, in.CommentID)
}

// ToggleLike likes the comment, or removes the like if the user already liked it.
// It reports whether the comment is liked afterwards.
func (s *CommentService) ToggleLike(ctx context.Context, in ToggleLikeInput) (liked bool, err error) {
	ctx, span := observability.StartSpan(ctx, "CommentService.ToggleLike",
		attribute.String("thread.id", in.ThreadID),
		attribute.String("comment.id", in.CommentID),
	)
	defer func() { span.End(err) }()

	if err = s.threadRepo.VerifyThreadExists(ctx, in.ThreadID); err != nil {
		return false, err
	}
	if err = s.commentRepo.VerifyCommentExists(ctx, in.CommentID, in.ThreadID); err != nil {
		return false, err
	}

	liked, err = s.commentRepo.IsLiked(ctx, in.UserID, in.CommentID)
	if err != nil {
		return false, err
	}
	if liked {
		return false, s.commentRepo.DeleteLike(ctx, in.UserID, in.CommentID)
	}
	return true, s.commentRepo.AddLike(ctx, in.UserID, in.CommentID)
}
