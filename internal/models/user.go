// Package models contains data structures for the forum's domain models.
package models

// User is a registered forum member. Password holds the bcrypt hash.
type User struct {
	ID       string `gorm:"primaryKey;size:50" json:"id"`
	Username string `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Password string `gorm:"type:text;not null" json:"-"`
	Fullname string `gorm:"type:text;not null" json:"fullname"`
}

// RegisterUser is the validated registration payload.
type RegisterUser struct {
	Username string
	Password string
	Fullname string
}

// AddedUser is returned after registration.
type AddedUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Fullname string `json:"fullname"`
}
