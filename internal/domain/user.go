package domain

import "time"

// User represents a registered account. ExternalID is set for accounts created
// through a third-party identity provider; such users still carry a password
// hash and may log in either way.
type User struct {
	ID           int64
	Email        string
	Name         string
	PasswordHash string
	ExternalID   string
	Phone        string
	ProfilePic   string
	CreatedAt    time.Time
}
