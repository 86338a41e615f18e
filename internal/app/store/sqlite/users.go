package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"massg/internal/app/store"
)

// CreateUser inserts u. The primary key on username reports duplicates.
func (s *Storage) CreateUser(ctx context.Context, u *store.User) error {
	query := `
		INSERT INTO users (username, salt, password_hash, created_at)
		VALUES (?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query, u.Username, u.Salt, u.PasswordHash, u.CreatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return store.ErrDuplicateUsername
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

// GetUserByUsername looks a user up by exact username.
func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*store.User, error) {
	query := `
		SELECT username, salt, password_hash, created_at
		FROM users
		WHERE username = ?
	`

	u := &store.User{}
	err := s.db.QueryRowContext(ctx, query, username).Scan(
		&u.Username,
		&u.Salt,
		&u.PasswordHash,
		&u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return u, nil
}
