package db

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"massg/internal/app/store"
	"massg/internal/app/store/storetest"
)

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.True(t, IsUniqueViolation(fmt.Errorf("wrapped: %w", &pgconn.PgError{Code: "23505"})))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsUniqueViolation(fmt.Errorf("plain")))
	assert.False(t, IsUniqueViolation(nil))
}

func TestTranslateError(t *testing.T) {
	assert.NoError(t, translateError("op", nil))
	assert.ErrorIs(t, translateError("get user", pgx.ErrNoRows), store.ErrNotFound)
	assert.ErrorIs(t,
		translateError("create user", &pgconn.PgError{Code: "23505", ConstraintName: "users_pkey"}),
		store.ErrDuplicateUsername)

	err := translateError("save token", &pgconn.PgError{Code: "23505", ConstraintName: "tokens_pkey"})
	assert.NotErrorIs(t, err, store.ErrDuplicateUsername)
	assert.True(t, IsUniqueViolation(err))
	assert.Contains(t, err.Error(), "save token")
}

func TestPoolConfig(t *testing.T) {
	cfg, err := poolConfig("postgres://chat:pw@db.internal:5432/massg?sslmode=disable")
	require.NoError(t, err)

	assert.Equal(t, int32(maxConns), cfg.MaxConns)
	assert.Equal(t, int32(minConns), cfg.MinConns)
	assert.Equal(t, "db.internal", cfg.ConnConfig.Host)

	_, err = poolConfig("postgres://%zz")
	assert.Error(t, err)
}

// TestStorage runs the store suite against a live PostgreSQL given by TEST_DATABASE_URL.
func TestStorage(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	storetest.Run(t, func(t *testing.T) store.Store {
		ctx := context.Background()

		s, err := Open(ctx, dsn)
		require.NoError(t, err)

		_, err = s.pool.Exec(ctx, `TRUNCATE users, tokens, messages RESTART IDENTITY`)
		require.NoError(t, err)

		t.Cleanup(func() { _ = s.Close() })
		return s
	})
}
