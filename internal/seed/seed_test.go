package seed

import (
	"context"
	"testing"

	"forumapi/internal/auth"
	"forumapi/internal/database"
	"forumapi/internal/models"
	"forumapi/internal/repository"
	"forumapi/internal/service"
	"forumapi/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupSeedDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(database.PersistentModels()...))
	return db
}

func servicesFor(db *gorm.DB) Services {
	users := repository.NewUserRepository(db)
	threads := repository.NewThreadRepository(db)
	comments := repository.NewCommentRepository(db)
	replies := repository.NewReplyRepository(db)
	return Services{
		Users:    service.NewUserService(users, &auth.BcryptHasher{Cost: bcrypt.MinCost}),
		Threads:  service.NewThreadService(threads, comments, replies),
		Comments: service.NewCommentService(comments, threads),
		Replies:  service.NewReplyService(replies, comments, threads),
	}
}

func TestBuildUser_ProducesValidUniqueUsernames(t *testing.T) {
	s := NewSeeder(Services{}, Options{RandomSeed: 42})
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		u := s.BuildUser()
		require.NoError(t, validation.ValidateUsername(u.Username), u.Username)
		assert.False(t, seen[u.Username], "duplicate username %s", u.Username)
		seen[u.Username] = true
		assert.NotEmpty(t, u.Fullname)
		assert.Equal(t, DefaultPassword, u.Password)
	}
}

func TestBuilders_FillContent(t *testing.T) {
	s := NewSeeder(Services{}, Options{RandomSeed: 7})

	thread := s.BuildThread("user-1")
	assert.NotEmpty(t, thread.Title)
	assert.NotEmpty(t, thread.Body)
	assert.Equal(t, "user-1", thread.Owner)

	comment := s.BuildComment("thread-1", "user-2")
	assert.NotEmpty(t, comment.Content)
	assert.Equal(t, "thread-1", comment.ThreadID)

	reply := s.BuildReply("comment-1", "user-3")
	assert.NotEmpty(t, reply.Content)
	assert.Equal(t, "comment-1", reply.CommentID)
}

func TestSeeder_Run(t *testing.T) {
	db := setupSeedDB(t)
	opts := Options{Users: 3, ThreadsPerUser: 1, CommentsPerThread: 2, RepliesPerComment: 1, LikeChance: 1, RandomSeed: 1}

	sum, err := NewSeeder(servicesFor(db), opts).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &Summary{Users: 3, Threads: 3, Comments: 6, Replies: 6, Likes: 18}, sum)

	var likes int64
	require.NoError(t, db.Model(&models.CommentLike{}).Count(&likes).Error)
	assert.EqualValues(t, 18, likes)

	require.NoError(t, ClearAll(db))
	var users int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	assert.Zero(t, users)
}
