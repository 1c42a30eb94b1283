package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"reflect"
	"sync/atomic"
	"testing"
	"time"

	"forumapi/internal/models"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC)

func intPtr(v int) *int { return &v }

func TestThreadService_AddThread(t *testing.T) {
	t.Parallel()

	svc := NewThreadService(noopThreadRepo(), noopCommentRepo(), noopReplyRepo())
	added, err := svc.AddThread(context.Background(), models.NewThread{Title: "sebuah thread", Body: "isi", Owner: "user-1"})
	require.NoError(t, err)
	assert.Equal(t, "thread-1", added.ID)
	assert.Equal(t, "sebuah thread", added.Title)
	assert.Equal(t, "user-1", added.Owner)
}

func TestThreadService_GetThreadDetail(t *testing.T) {
	t.Parallel()

	threads := noopThreadRepo()
	threads.getByIDFn = func(_ context.Context, id string) (*models.ThreadRow, error) {
		return &models.ThreadRow{ID: id, Title: "sebuah thread", Body: "isi body thread", Date: t0, Username: "dicoding"}, nil
	}
	comments := noopCommentRepo()
	comments.listFn = func(context.Context, string) ([]models.CommentRow, error) {
		return []models.CommentRow{
			{ID: "comment-1", Username: "johndoe", Date: t0.Add(time.Minute), Content: "first", LikeCount: intPtr(2)},
			{ID: "comment-2", Username: "dicoding", Date: t0.Add(2 * time.Minute), Content: "secret", IsDelete: true},
		}, nil
	}
	replies := noopReplyRepo()
	replies.listFn = func(context.Context, string) ([]models.ReplyRow, error) {
		return []models.ReplyRow{
			{ID: "reply-1", CommentID: "comment-1", Content: "gone", Date: t0.Add(3 * time.Minute), Username: "dicoding", IsDelete: true},
			{ID: "reply-2", CommentID: "comment-1", Content: "hello", Date: t0.Add(4 * time.Minute), Username: "johndoe"},
		}, nil
	}

	svc := NewThreadService(threads, comments, replies)
	detail, err := svc.GetThreadDetail(context.Background(), "thread-1")
	require.NoError(t, err)

	assert.Equal(t, "thread-1", detail.ID)
	assert.Equal(t, "dicoding", detail.Username)
	require.Len(t, detail.Comments, 2)

	first := detail.Comments[0]
	assert.Equal(t, "first", first.Content)
	assert.Equal(t, 2, first.LikeCount)
	require.Len(t, first.Replies, 2)
	assert.Equal(t, models.DeletedReplyContent, first.Replies[0].Content)
	assert.Equal(t, "hello", first.Replies[1].Content)

	second := detail.Comments[1]
	assert.Equal(t, models.DeletedCommentContent, second.Content)
	assert.Equal(t, "dicoding", second.Username)
	assert.Equal(t, 0, second.LikeCount)
	assert.NotNil(t, second.Replies)
	assert.Empty(t, second.Replies)
}

func TestThreadService_GetThreadDetail_MissingThreadStopsReads(t *testing.T) {
	t.Parallel()

	var reads atomic.Int32
	threads := noopThreadRepo()
	threads.verifyExistsFn = func(_ context.Context, id string) error {
		return models.NewNotFoundError("thread", id)
	}
	threads.getByIDFn = func(context.Context, string) (*models.ThreadRow, error) {
		reads.Add(1)
		return nil, nil
	}
	comments := noopCommentRepo()
	comments.listFn = func(context.Context, string) ([]models.CommentRow, error) {
		reads.Add(1)
		return nil, nil
	}

	svc := NewThreadService(threads, comments, noopReplyRepo())
	_, err := svc.GetThreadDetail(context.Background(), "thread-x")
	assertCode(t, err, models.CodeNotFound)
	assert.Zero(t, reads.Load())
}

func TestThreadService_GetThreadDetail_FetchFailure(t *testing.T) {
	t.Parallel()

	replies := noopReplyRepo()
	replies.listFn = func(context.Context, string) ([]models.ReplyRow, error) {
		return nil, models.NewInternalError(errors.New("boom"))
	}

	svc := NewThreadService(noopThreadRepo(), noopCommentRepo(), replies)
	detail, err := svc.GetThreadDetail(context.Background(), "thread-1")
	assertCode(t, err, models.CodeInternal)
	assert.Nil(t, detail)
}

// randomThread builds date-ordered comment and reply rows as the store returns them.
func randomThread(seed int64) ([]models.CommentRow, []models.ReplyRow) {
	rng := rand.New(rand.NewSource(seed))

	comments := make([]models.CommentRow, rng.Intn(8))
	for i := range comments {
		c := models.CommentRow{
			ID:       fmt.Sprintf("comment-%d", i),
			Username: fmt.Sprintf("user%d", rng.Intn(3)),
			Date:     t0.Add(time.Duration(i) * time.Minute),
			Content:  fmt.Sprintf("content %d", rng.Int()),
			IsDelete: rng.Intn(2) == 0,
		}
		if rng.Intn(3) > 0 {
			c.LikeCount = intPtr(rng.Intn(5))
		}
		comments[i] = c
	}

	var replies []models.ReplyRow
	if len(comments) > 0 {
		replies = make([]models.ReplyRow, rng.Intn(12))
		for i := range replies {
			replies[i] = models.ReplyRow{
				ID:        fmt.Sprintf("reply-%d", i),
				CommentID: comments[rng.Intn(len(comments))].ID,
				Content:   fmt.Sprintf("reply %d", rng.Int()),
				Date:      t0.Add(time.Duration(i) * time.Second),
				Username:  "replier",
				IsDelete:  rng.Intn(2) == 0,
			}
		}
	}
	return comments, replies
}

func TestAssembleThreadDetail_Properties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)
	thread := models.ThreadRow{ID: "thread-1", Title: "t", Body: "b", Date: t0, Username: "owner"}

	properties.Property("comments keep store order and ascending dates", prop.ForAll(
		func(seed int64) bool {
			comments, replies := randomThread(seed)
			detail := assembleThreadDetail(thread, comments, replies)
			if len(detail.Comments) != len(comments) {
				return false
			}
			for i, c := range detail.Comments {
				if c.ID != comments[i].ID {
					return false
				}
				if i > 0 && c.Date.Before(detail.Comments[i-1].Date) {
					return false
				}
			}
			return true
		},
		gen.Int64(),
	))

	properties.Property("replies attach to their comment in ascending order", prop.ForAll(
		func(seed int64) bool {
			comments, replies := randomThread(seed)
			detail := assembleThreadDetail(thread, comments, replies)
			total := 0
			for _, c := range detail.Comments {
				if c.Replies == nil {
					return false
				}
				var want []string
				for _, r := range replies {
					if r.CommentID == c.ID {
						want = append(want, r.ID)
					}
				}
				if len(want) != len(c.Replies) {
					return false
				}
				for i, r := range c.Replies {
					if r.ID != want[i] {
						return false
					}
					if i > 0 && r.Date.Before(c.Replies[i-1].Date) {
						return false
					}
				}
				total += len(c.Replies)
			}
			return total == len(replies)
		},
		gen.Int64(),
	))

	properties.Property("deleted content is always redacted", prop.ForAll(
		func(seed int64) bool {
			comments, replies := randomThread(seed)
			detail := assembleThreadDetail(thread, comments, replies)
			replyByID := make(map[string]models.ReplyRow, len(replies))
			for _, r := range replies {
				replyByID[r.ID] = r
			}
			for i, c := range detail.Comments {
				src := comments[i]
				if src.IsDelete && c.Content != models.DeletedCommentContent {
					return false
				}
				if !src.IsDelete && c.Content != src.Content {
					return false
				}
				if c.Username != src.Username || !c.Date.Equal(src.Date) {
					return false
				}
				for _, r := range c.Replies {
					src := replyByID[r.ID]
					if src.IsDelete && r.Content != models.DeletedReplyContent {
						return false
					}
					if !src.IsDelete && r.Content != src.Content {
						return false
					}
				}
			}
			return true
		},
		gen.Int64(),
	))

	properties.Property("like count defaults to zero only when absent", prop.ForAll(
		func(seed int64) bool {
			comments, replies := randomThread(seed)
			detail := assembleThreadDetail(thread, comments, replies)
			for i, c := range detail.Comments {
				want := 0
				if comments[i].LikeCount != nil {
					want = *comments[i].LikeCount
				}
				if c.LikeCount != want {
					return false
				}
			}
			return true
		},
		gen.Int64(),
	))

	properties.Property("assembly is idempotent", prop.ForAll(
		func(seed int64) bool {
			comments, replies := randomThread(seed)
			return reflect.DeepEqual(
				assembleThreadDetail(thread, comments, replies),
				assembleThreadDetail(thread, comments, replies),
			)
		},
		gen.Int64(),
	))

	properties.TestingRun(t)
}
