package database

import "forumapi/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Authentication{},
		&models.Thread{},
		&models.Comment{},
		&models.Reply{},
		&models.CommentLike{},
	}
}
