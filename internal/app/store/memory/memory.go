// Package memory is a process-local store.Store used for development and tests.
package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"massg/internal/app/store"
)

// Storage keeps all records in maps guarded by a single RWMutex.
type Storage struct {
	mu       sync.RWMutex
	users    map[string]store.User
	tokens   map[string]store.Token
	messages []store.Message
}

// New returns an empty Storage.
func New() *Storage {
	return &Storage{
		users:  make(map[string]store.User),
		tokens: make(map[string]store.Token),
	}
}

// CreateUser inserts u unless the username is taken.
func (s *Storage) CreateUser(_ context.Context, u *store.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[u.Username]; exists {
		return store.ErrDuplicateUsername
	}

	s.users[u.Username] = store.User{
		Username:     u.Username,
		Salt:         slices.Clone(u.Salt),
		PasswordHash: slices.Clone(u.PasswordHash),
		CreatedAt:    u.CreatedAt,
	}
	return nil
}

// GetUserByUsername returns a copy of the stored user.
func (s *Storage) GetUserByUsername(_ context.Context, username string) (*store.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[username]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &u, nil
}

// SaveToken stores t, replacing any token with the same value.
func (s *Storage) SaveToken(_ context.Context, t *store.Token) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tokens[t.Token] = *t
	return nil
}

// GetToken returns the stored token record.
func (s *Storage) GetToken(_ context.Context, token string) (*store.Token, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tokens[token]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &t, nil
}

// InsertMessage appends m. The correlation id is dropped.
func (s *Storage) InsertMessage(_ context.Context, m *store.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *m
	stored.ClientID = ""
	s.messages = append(s.messages, stored)
	return nil
}

// ListMessages returns a copy of all messages, stably sorted by CreatedAt.
func (s *Storage) ListMessages(_ context.Context) ([]store.Message, error) {
	s.mu.RLock()
	out := slices.Clone(s.messages)
	s.mu.RUnlock()

	slices.SortStableFunc(out, func(a, b store.Message) int {
		return cmp.Compare(a.CreatedAt, b.CreatedAt)
	})
	if out == nil {
		out = []store.Message{}
	}
	return out, nil
}

// Close is a no-op.
func (s *Storage) Close() error {
	return nil
}
