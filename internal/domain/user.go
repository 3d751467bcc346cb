package domain

import "time"

// User represents a registered account. PasswordHash is a bcrypt digest and is
// never serialized out of the service layer.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
