package domain

import (
	"context"
	"time"
)

// DefaultRole is assigned to every user at registration.
const DefaultRole = "USER"

// User represents an account. PasswordHash holds a salted one-way hash;
// plaintext passwords never survive registration.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Roles        []string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Validate validates the user
func (u *User) Validate() error {
	if u.Username == "" {
		return NewValidationError("username is required")
	}
	if u.Email == "" {
		return NewValidationError("email is required")
	}
	if u.PasswordHash == "" {
		return NewValidationError("password hash is required")
	}
	return nil
}

// UserRepository defines the interface for user persistence.
// Lookups return (nil, nil) when no matching user exists.
type UserRepository interface {
	CreateUser(ctx context.Context, user *User) error
	GetUserByID(ctx context.Context, userID string) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
