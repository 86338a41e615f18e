// Package message implements the append-only chat message log.
package message

import (
	"context"
	"errors"
	"fmt"
	"time"

	"massg/internal/app/store"
	"massg/internal/pkg/randx"
)

// ErrEmptyMessage is returned by Append when both text and image URL are empty.
var ErrEmptyMessage = errors.New("message has neither text nor image")

// Log appends and lists chat messages.
type Log struct {
	repo store.MessageRepository
	now  func() time.Time
}

// NewLog returns a Log backed by repo.
func NewLog(repo store.MessageRepository) *Log {
	return &Log{repo: repo, now: time.Now}
}

// Append stamps a new id and the current time, persists the message and returns it.
func (l *Log) Append(ctx context.Context, username, text, imageURL string) (*store.Message, error) {
	if text == "" && imageURL == "" {
		return nil, ErrEmptyMessage
	}

	m := &store.Message{
		ID:        randx.MessageID(),
		Username:  username,
		Text:      text,
		ImageURL:  imageURL,
		CreatedAt: l.now().Unix(),
	}

	if err := l.repo.InsertMessage(ctx, m); err != nil {
		return nil, fmt.Errorf("failed to store message: %w", err)
	}

	return m, nil
}

// ListAllOrdered returns every message, oldest first.
func (l *Log) ListAllOrdered(ctx context.Context) ([]store.Message, error) {
	msgs, err := l.repo.ListMessages(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return msgs, nil
}
