package models

import "time"

// Placeholders shown instead of soft-deleted content.
const (
	DeletedCommentContent = "**comment deleted**"
	DeletedReplyContent   = "**reply deleted**"
)

// ThreadDetail is the assembled read model for GET /threads/:threadId.
type ThreadDetail struct {
	ID       string          `json:"id"`
	Title    string          `json:"title"`
	Body     string          `json:"body"`
	Date     time.Time       `json:"date"`
	Username string          `json:"username"`
	Comments []CommentDetail `json:"comments"`
}

// CommentDetail is a comment inside a ThreadDetail.
type CommentDetail struct {
	ID        string        `json:"id"`
	Username  string        `json:"username"`
	Date      time.Time     `json:"date"`
	Content   string        `json:"content"`
	LikeCount int           `json:"likeCount"`
	Replies   []ReplyDetail `json:"replies"`
}

// ReplyDetail is a reply inside a CommentDetail.
type ReplyDetail struct {
	ID       string    `json:"id"`
	Content  string    `json:"content"`
	Date     time.Time `json:"date"`
	Username string    `json:"username"`
}
