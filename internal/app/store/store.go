/*
Package store defines the persisted records of the chat server and the
repository interfaces every persistence backend implements.

Backends live in sub-packages (memory, sqlite, boltdb) and in internal/app/db (PostgreSQL).
*/
package store

import "context"

// User is a registered account.
type User struct {
	Username     string
	Salt         []byte
	PasswordHash []byte
	CreatedAt    int64
}

// Token is an issued bearer token. Tokens never expire.
type Token struct {
	Token     string
	Username  string
	CreatedAt int64
}

// Message is a persisted chat message.
type Message struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Text      string `json:"text"`
	ImageURL  string `json:"image_url"`
	CreatedAt int64  `json:"created_at"`

	// ClientID echoes the sender's correlation id on broadcast. It is never persisted.
	ClientID string `json:"client_id,omitempty"`
}

// UserRepository persists users. Usernames are unique.
type UserRepository interface {
	// CreateUser inserts u. Returns ErrDuplicateUsername if the username is taken.
	CreateUser(ctx context.Context, u *User) error

	// GetUserByUsername returns ErrNotFound if no such user exists.
	GetUserByUsername(ctx context.Context, username string) (*User, error)
}

// TokenRepository persists bearer tokens.
type TokenRepository interface {
	SaveToken(ctx context.Context, t *Token) error

	// GetToken returns ErrNotFound if the token was never issued.
	GetToken(ctx context.Context, token string) (*Token, error)
}

// MessageRepository persists chat messages in insertion order.
type MessageRepository interface {
	InsertMessage(ctx context.Context, m *Message) error

	// ListMessages returns every message ordered by CreatedAt, then insertion order.
	ListMessages(ctx context.Context) ([]Message, error)
}

// Store bundles the three repositories of one backend.
type Store interface {
	UserRepository
	TokenRepository
	MessageRepository

	Close() error
}
