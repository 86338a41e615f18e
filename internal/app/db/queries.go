package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"massg/internal/app/store"
)

var _ store.Store = (*Storage)(nil)

// Storage implements store.Store on a pgx pool.
type Storage struct {
	pool *pgxpool.Pool
}

// New wraps an open pool. Storage.Close closes the pool.
func New(pool *pgxpool.Pool) *Storage {
	return &Storage{pool: pool}
}

// Open is NewPool followed by New.
func Open(ctx context.Context, dsn string) (*Storage, error) {
	pool, err := NewPool(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return New(pool), nil
}

// Close releases every pooled connection.
func (s *Storage) Close() error {
	s.pool.Close()
	return nil
}

// CreateUser inserts u; the primary key on username reports duplicates.
func (s *Storage) CreateUser(ctx context.Context, u *store.User) error {
	const query = `
		INSERT INTO users (username, salt, password_hash, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := s.pool.Exec(ctx, query, u.Username, u.Salt, u.PasswordHash, u.CreatedAt)
	return translateError("create user", err)
}

// GetUserByUsername looks a user up by exact username.
func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*store.User, error) {
	const query = `
		SELECT username, salt, password_hash, created_at
		FROM users
		WHERE username = $1
	`

	u := &store.User{}
	err := s.pool.QueryRow(ctx, query, username).Scan(&u.Username, &u.Salt, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		return nil, translateError("get user", err)
	}

	return u, nil
}

// SaveToken inserts t.
func (s *Storage) SaveToken(ctx context.Context, t *store.Token) error {
	const query = `INSERT INTO tokens (token, username, created_at) VALUES ($1, $2, $3)`

	_, err := s.pool.Exec(ctx, query, t.Token, t.Username, t.CreatedAt)
	return translateError("save token", err)
}

// GetToken looks a token up by value.
func (s *Storage) GetToken(ctx context.Context, token string) (*store.Token, error) {
	const query = `SELECT token, username, created_at FROM tokens WHERE token = $1`

	t := &store.Token{}
	err := s.pool.QueryRow(ctx, query, token).Scan(&t.Token, &t.Username, &t.CreatedAt)
	if err != nil {
		return nil, translateError("get token", err)
	}

	return t, nil
}

// InsertMessage appends m; seq (BIGSERIAL) records insertion order.
func (s *Storage) InsertMessage(ctx context.Context, m *store.Message) error {
	const query = `
		INSERT INTO messages (id, username, text, image_url, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := s.pool.Exec(ctx, query, m.ID, m.Username, m.Text, m.ImageURL, m.CreatedAt)
	return translateError("insert message", err)
}

// ListMessages returns all messages ordered by created_at, then seq.
func (s *Storage) ListMessages(ctx context.Context) ([]store.Message, error) {
	const query = `
		SELECT id, username, text, image_url, created_at
		FROM messages
		ORDER BY created_at ASC, seq ASC
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, translateError("list messages", err)
	}

	msgs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (store.Message, error) {
		var m store.Message
		err := row.Scan(&m.ID, &m.Username, &m.Text, &m.ImageURL, &m.CreatedAt)
		return m, err
	})
	if err != nil {
		return nil, translateError("scan messages", err)
	}

	if msgs == nil {
		msgs = []store.Message{}
	}
	return msgs, nil
}
