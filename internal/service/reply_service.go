package service

import (
	"context"

	"forumapi/internal/models"
	"forumapi/internal/observability"
	"forumapi/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

type ReplyService struct {
	replyRepo   repository.ReplyRepository
	commentRepo repository.CommentRepository
	threadRepo  repository.ThreadRepository
}

type AddReplyInput struct {
	ThreadID string
	Reply    models.NewReply
}

type DeleteReplyInput struct {
	ThreadID  string
	CommentID string
	ReplyID   string
	Owner     string
}

func NewReplyService(
	replyRepo repository.ReplyRepository,
	commentRepo repository.CommentRepository,
	threadRepo repository.ThreadRepository,
) *ReplyService {
	return &ReplyService{
		replyRepo:   replyRepo,
		commentRepo: commentRepo,
		threadRepo:  threadRepo,
	}
}

func (s *ReplyService) AddReply(ctx context.Context, in AddReplyInput) (added *models.AddedReply, err error) {
	ctx, span := observability.StartSpan(ctx, "ReplyService.AddReply",
		attribute.String("thread.id", in.ThreadID),
		attribute.String("comment.id", in.Reply.CommentID),
	)
	defer func() { span.End(err) }()

	if err = s.threadRepo.VerifyThreadExists(ctx, in.ThreadID); err != nil {
		return nil, err
	}
	if err = s.commentRepo.VerifyCommentExists(ctx, in.Reply.CommentID, in.ThreadID); err != nil {
		return nil, err
	}
	return s.replyRepo.AddReply(ctx, in.Reply)
}

func (s *ReplyService) DeleteReply(ctx context.Context, in DeleteReplyInput) (err error) {
	ctx, span := observability.StartSpan(ctx, "ReplyService.DeleteReply",
		attribute.String("thread.id", in.ThreadID),
		attribute.String("reply.id", in.ReplyID),
	)
	defer func() { span.End(err) }()

	if err = s.threadRepo.VerifyThreadExists(ctx, in.ThreadID); err != nil {
		return err
	}
	if err = s.commentRepo.VerifyCommentExists(ctx, in.CommentID, in.ThreadID); err != nil {
		return err
	}
	if err = s.replyRepo.VerifyReplyExists(ctx, in.ReplyID, in.CommentID); err != nil {
		return err
	}
	if err = s.replyRepo.VerifyReplyOwner(ctx, in.ReplyID, in.Owner); err != nil {
		return err
	}
	return s.replyRepo.DeleteReply(ctx, in.ReplyID)
}
