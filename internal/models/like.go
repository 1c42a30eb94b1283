package models

// CommentLike is one user's like on one comment.
type CommentLike struct {
	ID        string `gorm:"primaryKey;size:50" json:"id"`
	UserID    string `gorm:"size:50;not null;index" json:"user_id"`
	CommentID string `gorm:"size:50;not null;index" json:"comment_id"`

	User    *User    `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	Comment *Comment `gorm:"foreignKey:CommentID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName pins the table name used by the SQL migrations.
func (CommentLike) TableName() string { return "user_comment_likes" }
