// Package repository implements the data access layer for the forum.
package repository

import (
	"errors"
	"strings"
	"time"

	"forumapi/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// pgUniqueViolation is the SQLSTATE for unique_violation.
const pgUniqueViolation = "23505"

// newID returns a prefixed identifier such as "thread-<uuid>".
var newID = func(prefix string) string {
	return prefix + "-" + uuid.NewString()
}

// now is the creation timestamp source for new rows.
var now = func() time.Time {
	return time.Now().UTC()
}

// replicaDB returns the read replica, or nil when none is configured.
var replicaDB = database.GetReadDB

// readDB prefers the replica for single reads that tolerate replication lag.
// Reads that follow an existence check on the primary must stay on r.db so
// one request never mixes handles.
func readDB(primary *gorm.DB) *gorm.DB {
	if db := replicaDB(); db != nil {
		return db
	}
	return primary
}

// isUniqueConstraintError checks if a DB error is a unique constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, pgUniqueViolation)
}
