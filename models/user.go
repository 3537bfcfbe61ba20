package models

import "time"

// User is an account of the remote store. Records pushed by a client are
// owned by the user its session belongs to.
type User struct {
	// UserID is the internal identifier, never exposed via JSON.
	UserID int64 `json:"-"`

	// Login is the unique user login.
	Login string `json:"login"`

	// Password is the plaintext password on the way in and the bcrypt hash
	// once loaded from storage.
	Password string `json:"password"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// Session is the locally persisted authentication state of the client.
type Session struct {
	UserID int64  `json:"user_id"`
	Login  string `json:"login"`
	// Token is the compact JWT issued by the remote store.
	Token     string    `json:"token"`
	CreatedAt time.Time `json:"created_at"`
}
