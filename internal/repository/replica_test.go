package repository

import (
	"testing"

	"forumapi/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// useLaggingReplica installs an empty replica that has seen none of the
// primary's writes.
func useLaggingReplica(t *testing.T) {
	t.Helper()
	replica := setupTestDB(t)
	prev := replicaDB
	replicaDB = func() *gorm.DB { return replica }
	t.Cleanup(func() { replicaDB = prev })
}

func TestThreadDetailReads_UsePrimary(t *testing.T) {
	db := setupTestDB(t)
	seedUser(t, db, "user-1", "dicoding")
	seedThread(t, db, "thread-1", "user-1")
	seedComment(t, db, "comment-1", "thread-1", "user-1", baseTime)
	seedReply(t, db, "reply-1", "comment-1", "user-1", baseTime)
	useLaggingReplica(t)

	threads := NewThreadRepository(db)
	require.NoError(t, threads.VerifyThreadExists(ctx, "thread-1"))

	row, err := threads.GetThreadByID(ctx, "thread-1")
	require.NoError(t, err)
	assert.Equal(t, "dicoding", row.Username)

	comments, err := NewCommentRepository(db).GetCommentsByThreadID(ctx, "thread-1")
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "comment-1", comments[0].ID)

	replies, err := NewReplyRepository(db).GetRepliesByThreadID(ctx, "thread-1")
	require.NoError(t, err)
	require.Len(t, replies, 1)
	assert.Equal(t, "reply-1", replies[0].ID)
}

func TestGetByUsername_ReadsReplica(t *testing.T) {
	db := setupTestDB(t)
	seedUser(t, db, "user-1", "dicoding")
	useLaggingReplica(t)

	_, err := NewUserRepository(db).GetByUsername(ctx, "dicoding")
	requireCode(t, err, models.CodeNotFound)
}
