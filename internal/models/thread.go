package models

import "time"

// Thread is a top-level discussion post. Threads are never mutated after creation.
type Thread struct {
	ID    string    `gorm:"primaryKey;size:50" json:"id"`
	Title string    `gorm:"type:text;not null" json:"title"`
	Body  string    `gorm:"type:text;not null" json:"body"`
	Owner string    `gorm:"size:50;not null;index" json:"owner"`
	Date  time.Time `gorm:"not null" json:"date"`

	OwnerUser *User `gorm:"foreignKey:Owner;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

// NewThread is the validated thread payload plus its owner.
type NewThread struct {
	Title string
	Body  string
	Owner string
}

// AddedThread is returned after a thread is created.
type AddedThread struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Owner string `json:"owner"`
}

// ThreadRow is a thread joined with its owner's username.
type ThreadRow struct {
	ID       string
	Title    string
	Body     string
	Date     time.Time
	Username string
}
