package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"massg/internal/app/store"
	"massg/internal/app/store/storetest"
)

func setupTestStorage(t *testing.T) *Storage {
	t.Helper()

	s, err := New(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	return s
}

func TestStorage(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store {
		return setupTestStorage(t)
	})
}

func TestNewReopensExistingFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "chat.db")

	s, err := New(ctx, path)
	require.NoError(t, err)
	require.NoError(t, s.InsertMessage(ctx, &store.Message{ID: "m1", Username: "alice", Text: "hi", CreatedAt: 1}))
	require.NoError(t, s.Close())

	reopened, err := New(ctx, path)
	require.NoError(t, err)
	defer reopened.Close()

	msgs, err := reopened.ListMessages(ctx)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "hi", msgs[0].Text)
}
