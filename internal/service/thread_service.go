package service

import (
	"context"

	"forumapi/internal/models"
	"forumapi/internal/observability"
	"forumapi/internal/repository"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
)

type ThreadService struct {
	threadRepo  repository.ThreadRepository
	commentRepo repository.CommentRepository
	replyRepo   repository.ReplyRepository
}

func NewThreadService(
	threadRepo repository.ThreadRepository,
	commentRepo repository.CommentRepository,
	replyRepo repository.ReplyRepository,
) *ThreadService {
	return &ThreadService{
		threadRepo:  threadRepo,
		commentRepo: commentRepo,
		replyRepo:   replyRepo,
	}
}

func (s *ThreadService) AddThread(ctx context.Context, in models.NewThread) (added *models.AddedThread, err error) {
	ctx, span := observability.StartSpan(ctx, "ThreadService.AddThread", attribute.String("user.id", in.Owner))
	defer func() { span.End(err) }()

	return s.threadRepo.AddThread(ctx, in)
}

// GetThreadDetail returns the thread with its comments, likes and replies.
// Existence is checked first; the three reads then run concurrently and any
// failure discards the partial results.
func (s *ThreadService) GetThreadDetail(ctx context.Context, threadID string) (detail *models.ThreadDetail, err error) {
	ctx, span := observability.StartSpan(ctx, "ThreadService.GetThreadDetail", attribute.String("thread.id", threadID))
	defer func() { span.End(err) }()

	if err = s.threadRepo.VerifyThreadExists(ctx, threadID); err != nil {
		return nil, err
	}

	var (
		thread   *models.ThreadRow
		comments []models.CommentRow
		replies  []models.ReplyRow
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		thread, err = s.threadRepo.GetThreadByID(gctx, threadID)
		return err
	})
	g.Go(func() error {
		var err error
		comments, err = s.commentRepo.GetCommentsByThreadID(gctx, threadID)
		return err
	})
	g.Go(func() error {
		var err error
		replies, err = s.replyRepo.GetRepliesByThreadID(gctx, threadID)
		return err
	})
	if err = g.Wait(); err != nil {
		return nil, err
	}

	assembled := assembleThreadDetail(*thread, comments, replies)
	return &assembled, nil
}

// assembleThreadDetail keeps the store's ordering for comments and replies and
// redacts anything flagged deleted.
func assembleThreadDetail(thread models.ThreadRow, comments []models.CommentRow, replies []models.ReplyRow) models.ThreadDetail {
	byComment := make(map[string][]models.ReplyDetail, len(comments))
	for _, r := range replies {
		content := r.Content
		if r.IsDelete {
			content = models.DeletedReplyContent
		}
		byComment[r.CommentID] = append(byComment[r.CommentID], models.ReplyDetail{
			ID:       r.ID,
			Content:  content,
			Date:     r.Date,
			Username: r.Username,
		})
	}

	details := make([]models.CommentDetail, 0, len(comments))
	for _, c := range comments {
		content := c.Content
		if c.IsDelete {
			content = models.DeletedCommentContent
		}
		likeCount := 0
		if c.LikeCount != nil {
			likeCount = *c.LikeCount
		}
		commentReplies := byComment[c.ID]
		if commentReplies == nil {
			commentReplies = []models.ReplyDetail{}
		}
		details = append(details, models.CommentDetail{
			ID:        c.ID,
			Username:  c.Username,
			Date:      c.Date,
			Content:   content,
			LikeCount: likeCount,
			Replies:   commentReplies,
		})
	}

	return models.ThreadDetail{
		ID:       thread.ID,
		Title:    thread.Title,
		Body:     thread.Body,
		Date:     thread.Date,
		Username: thread.Username,
		Comments: details,
	}
}
