package domain

import (
	"errors"
	"time"
)

// User validation errors
var (
	ErrEmptyUserName = errors.New("user name cannot be empty")
)

// User represents an account holder registered with the external identity
// system. Users are created and destroyed by that system; this service only
// reads them to resolve ownership.
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Validate checks if the User has valid data.
// Returns an error if any field fails validation.
func (u *User) Validate() error {
	if u.ID < 0 {
		return ErrInvalidID
	}

	if u.Name == "" {
		return ErrEmptyUserName
	}

	return nil
}
