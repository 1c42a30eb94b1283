package models

import "time"

// Comment belongs to a thread. Deletion only flips IsDelete.
type Comment struct {
	ID       string    `gorm:"primaryKey;size:50" json:"id"`
	Content  string    `gorm:"type:text;not null" json:"content"`
	Owner    string    `gorm:"size:50;not null;index" json:"owner"`
	ThreadID string    `gorm:"size:50;not null;index" json:"thread_id"`
	Date     time.Time `gorm:"not null" json:"date"`
	IsDelete bool      `gorm:"not null;default:false" json:"is_delete"`

	OwnerUser *User   `gorm:"foreignKey:Owner;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	Thread    *Thread `gorm:"foreignKey:ThreadID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

// NewComment is the validated comment payload.
type NewComment struct {
	Content  string
	ThreadID string
	Owner    string
}

// AddedComment is returned after a comment is created.
type AddedComment struct {
	ID      string `json:"id"`
	Content string `json:"content"`
	Owner   string `json:"owner"`
}

// CommentRow is a comment joined with its owner's username and like count.
// LikeCount is nil when the store reported no count at all.
type CommentRow struct {
	ID        string
	Username  string
	Date      time.Time
	Content   string
	IsDelete  bool
	LikeCount *int
}
