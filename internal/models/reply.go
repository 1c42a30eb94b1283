package models

import "time"

// Reply belongs to a comment. Deletion only flips IsDelete.
type Reply struct {
	ID        string    `gorm:"primaryKey;size:50" json:"id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Owner     string    `gorm:"size:50;not null;index" json:"owner"`
	CommentID string    `gorm:"size:50;not null;index" json:"comment_id"`
	Date      time.Time `gorm:"not null" json:"date"`
	IsDelete  bool      `gorm:"not null;default:false" json:"is_delete"`

	OwnerUser *User    `gorm:"foreignKey:Owner;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	Comment   *Comment `gorm:"foreignKey:CommentID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName pins the table name used by the SQL migrations.
func (Reply) TableName() string { return "replies" }

// NewReply is the validated reply payload.
type NewReply struct {
	Content   string
	CommentID string
	Owner     string
}

// AddedReply is returned after a reply is created.
type AddedReply struct {
	ID      string `json:"id"`
	Content string `json:"content"`
	Owner   string `json:"owner"`
}

// ReplyRow is a reply of some comment in a thread, joined with its owner's username.
type ReplyRow struct {
	ID        string
	CommentID string
	Content   string
	Date      time.Time
	Username  string
	IsDelete  bool
}
