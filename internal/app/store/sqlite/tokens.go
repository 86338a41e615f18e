package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"massg/internal/app/store"
)

// SaveToken inserts t.
func (s *Storage) SaveToken(ctx context.Context, t *store.Token) error {
	query := `INSERT INTO tokens (token, username, created_at) VALUES (?, ?, ?)`

	if _, err := s.db.ExecContext(ctx, query, t.Token, t.Username, t.CreatedAt); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}

	return nil
}

// GetToken looks a token up by value.
func (s *Storage) GetToken(ctx context.Context, token string) (*store.Token, error) {
	query := `SELECT token, username, created_at FROM tokens WHERE token = ?`

	t := &store.Token{}
	err := s.db.QueryRowContext(ctx, query, token).Scan(&t.Token, &t.Username, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get token: %w", err)
	}

	return t, nil
}
