package models

import "time"

// User represents an account held by the authentication service.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// UserID is the unique identifier generated by the credential store on insert.
	UserID int64 `json:"user_id"`

	// Username is the unique, case-sensitive login name. It never changes
	// after registration.
	Username string `json:"username"`

	// PasswordHash is the bcrypt hash of the user's password.
	// It is never serialized.
	PasswordHash string `json:"-"`

	// CreatedAt is the moment the account was registered.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// Credentials is the request body accepted by the register and login endpoints.
type Credentials struct {
	Username string `json:"username" validate:"required,max=64,nospace"`
	Password string `json:"password" validate:"required,max=72"`
}
