/*
Package user implements the credential store: account creation with salted
PBKDF2 password hashes and credential verification.
*/
package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"massg/internal/app/store"
	"massg/internal/pkg/passwd"
)

// ErrDuplicateUsername is returned by Create when the username is already registered.
var ErrDuplicateUsername = store.ErrDuplicateUsername

// Credentials creates and verifies user accounts.
type Credentials struct {
	users store.UserRepository
	now   func() time.Time
}

// NewCredentials returns a Credentials backed by users.
func NewCredentials(users store.UserRepository) *Credentials {
	return &Credentials{users: users, now: time.Now}
}

// Create registers username with a fresh salt and the PBKDF2 hash of password.
// The repository's unique index is the final arbiter for concurrent registrations.
func (c *Credentials) Create(ctx context.Context, username, password string) error {
	if _, err := c.users.GetUserByUsername(ctx, username); err == nil {
		return ErrDuplicateUsername
	} else if !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("failed to check username: %w", err)
	}

	salt, err := passwd.NewSalt()
	if err != nil {
		return err
	}

	err = c.users.CreateUser(ctx, &store.User{
		Username:     username,
		Salt:         salt,
		PasswordHash: passwd.Hash(password, salt),
		CreatedAt:    c.now().Unix(),
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicateUsername) {
			return ErrDuplicateUsername
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// Verify reports whether password matches the stored hash for username.
// An unknown username yields false, indistinguishable from a wrong password.
func (c *Credentials) Verify(ctx context.Context, username, password string) (bool, error) {
	u, err := c.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to load user: %w", err)
	}

	return passwd.Verify(password, u.Salt, u.PasswordHash), nil
}
