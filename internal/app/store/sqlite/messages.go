package sqlite

import (
	"context"
	"fmt"

	"massg/internal/app/store"
)

var _ store.Store = (*Storage)(nil)

// InsertMessage appends m. The AUTOINCREMENT seq column records insertion order.
func (s *Storage) InsertMessage(ctx context.Context, m *store.Message) error {
	query := `
		INSERT INTO messages (id, username, text, image_url, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	if _, err := s.db.ExecContext(ctx, query, m.ID, m.Username, m.Text, m.ImageURL, m.CreatedAt); err != nil {
		return fmt.Errorf("failed to insert message: %w", err)
	}

	return nil
}

// ListMessages returns all messages ordered by created_at, then seq.
func (s *Storage) ListMessages(ctx context.Context) ([]store.Message, error) {
	query := `
		SELECT id, username, text, image_url, created_at
		FROM messages
		ORDER BY created_at ASC, seq ASC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	msgs := []store.Message{}
	for rows.Next() {
		var m store.Message
		if err := rows.Scan(&m.ID, &m.Username, &m.Text, &m.ImageURL, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		msgs = append(msgs, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return msgs, nil
}
