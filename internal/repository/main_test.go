package repository

import (
	"context"
	"testing"
	"time"

	"forumapi/internal/database"
	"forumapi/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var baseTime = time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC)

// setupTestDB returns an in-memory SQLite database with the forum schema.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(database.PersistentModels()...))
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	require.NoError(t, err)
	return gormDB, mock
}

func seedUser(t *testing.T, db *gorm.DB, id, username string) {
	t.Helper()
	require.NoError(t, db.Create(&models.User{ID: id, Username: username, Password: "hash", Fullname: username}).Error)
}

func seedThread(t *testing.T, db *gorm.DB, id, owner string) {
	t.Helper()
	require.NoError(t, db.Create(&models.Thread{ID: id, Title: "title", Body: "body", Owner: owner, Date: baseTime}).Error)
}

func seedComment(t *testing.T, db *gorm.DB, id, threadID, owner string, date time.Time) {
	t.Helper()
	require.NoError(t, db.Create(&models.Comment{ID: id, Content: "content " + id, Owner: owner, ThreadID: threadID, Date: date}).Error)
}

func seedReply(t *testing.T, db *gorm.DB, id, commentID, owner string, date time.Time) {
	t.Helper()
	require.NoError(t, db.Create(&models.Reply{ID: id, Content: "reply " + id, Owner: owner, CommentID: commentID, Date: date}).Error)
}

func requireCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	require.True(t, models.IsCode(err, code), "expected %s, got %v", code, err)
}

var ctx = context.Background()
