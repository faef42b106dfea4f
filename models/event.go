package models

import "errors"

// UserCreatedQueue is the name of the durable queue carrying
// [UserCreatedEvent] messages from the auth service to the game service.
const UserCreatedQueue = "user_created"

var (
	errEventNoUserID   = errors.New("user_created event has no user_id")
	errEventNoUsername = errors.New("user_created event has no username")
)

// UserCreatedEvent is published once per successful registration.
//
// Delivery is at-least-once and may be delayed or lost entirely, so every
// consumer must be idempotent.
type UserCreatedEvent struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
}

// Validate reports whether the event carries both required fields.
func (e UserCreatedEvent) Validate() error {
	if e.UserID <= 0 {
		return errEventNoUserID
	}
	if e.Username == "" {
		return errEventNoUsername
	}

	return nil
}
