package models

// Authentication is a persisted refresh token. Logout removes the row.
type Authentication struct {
	Token string `gorm:"primaryKey;type:text" json:"token"`
}

// TableName pins the table name used by the SQL migrations.
func (Authentication) TableName() string { return "authentications" }

// NewAuth is the token pair issued at login.
type NewAuth struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// UserLogin is the validated login payload.
type UserLogin struct {
	Username string
	Password string
}
