package service

import (
	"context"
	"testing"

	"forumapi/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplyService_AddReply(t *testing.T) {
	t.Parallel()

	var scopedThread string
	comments := noopCommentRepo()
	comments.verifyExistsFn = func(_ context.Context, _, threadID string) error {
		scopedThread = threadID
		return nil
	}

	svc := NewReplyService(noopReplyRepo(), comments, noopThreadRepo())
	added, err := svc.AddReply(context.Background(), AddReplyInput{
		ThreadID: "thread-1",
		Reply:    models.NewReply{Content: "sebuah balasan", CommentID: "comment-1", Owner: "user-1"},
	})
	require.NoError(t, err)
	assert.Equal(t, "reply-1", added.ID)
	assert.Equal(t, "sebuah balasan", added.Content)
	assert.Equal(t, "thread-1", scopedThread)
}

func TestReplyService_AddReply_MissingComment(t *testing.T) {
	t.Parallel()

	comments := noopCommentRepo()
	comments.verifyExistsFn = func(_ context.Context, id, _ string) error {
		return models.NewNotFoundError("comment", id)
	}
	replies := noopReplyRepo()
	replies.addReplyFn = func(context.Context, models.NewReply) (*models.AddedReply, error) {
		t.Fatal("reply must not be inserted")
		return nil, nil
	}

	svc := NewReplyService(replies, comments, noopThreadRepo())
	_, err := svc.AddReply(context.Background(), AddReplyInput{
		ThreadID: "thread-1",
		Reply:    models.NewReply{Content: "x", CommentID: "comment-x", Owner: "user-1"},
	})
	assertCode(t, err, models.CodeNotFound)
}

func TestReplyService_DeleteReply_Order(t *testing.T) {
	t.Parallel()

	var calls []string
	threads := noopThreadRepo()
	threads.verifyExistsFn = func(context.Context, string) error {
		calls = append(calls, "thread")
		return nil
	}
	comments := noopCommentRepo()
	comments.verifyExistsFn = func(context.Context, string, string) error {
		calls = append(calls, "comment")
		return nil
	}
	replies := noopReplyRepo()
	replies.verifyExistsFn = func(context.Context, string, string) error {
		calls = append(calls, "reply")
		return nil
	}
	replies.verifyOwnerFn = func(context.Context, string, string) error {
		calls = append(calls, "owner")
		return nil
	}
	replies.deleteFn = func(context.Context, string) error {
		calls = append(calls, "delete")
		return nil
	}

	svc := NewReplyService(replies, comments, threads)
	err := svc.DeleteReply(context.Background(), DeleteReplyInput{
		ThreadID: "thread-1", CommentID: "comment-1", ReplyID: "reply-1", Owner: "user-1",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"thread", "comment", "reply", "owner", "delete"}, calls)
}

func TestReplyService_DeleteReply_NotOwner(t *testing.T) {
	t.Parallel()

	replies := noopReplyRepo()
	replies.verifyOwnerFn = func(context.Context, string, string) error {
		return models.NewForbiddenError("you are not the owner of this reply")
	}
	replies.deleteFn = func(context.Context, string) error {
		t.Fatal("reply must not be deleted")
		return nil
	}

	svc := NewReplyService(replies, noopCommentRepo(), noopThreadRepo())
	err := svc.DeleteReply(context.Background(), DeleteReplyInput{
		ThreadID: "thread-1", CommentID: "comment-1", ReplyID: "reply-1", Owner: "user-2",
	})
	assertCode(t, err, models.CodeForbidden)
}
