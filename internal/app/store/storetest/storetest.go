// Package storetest holds the behavioural suite every store.Store backend must pass.
package storetest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"massg/internal/app/store"
)

// Factory returns a fresh, empty store. Cleanup should be registered with t.Cleanup.
type Factory func(t *testing.T) store.Store

// Run executes the full suite against stores produced by newStore.
func Run(t *testing.T, newStore Factory) {
	t.Run("CreateAndGetUser", func(t *testing.T) { testCreateAndGetUser(t, newStore(t)) })
	t.Run("DuplicateUsername", func(t *testing.T) { testDuplicateUsername(t, newStore(t)) })
	t.Run("ConcurrentDuplicateUsername", func(t *testing.T) { testConcurrentDuplicateUsername(t, newStore(t)) })
	t.Run("UsernameIsCaseSensitive", func(t *testing.T) { testUsernameCaseSensitive(t, newStore(t)) })
	t.Run("MissingUser", func(t *testing.T) { testMissingUser(t, newStore(t)) })
	t.Run("Tokens", func(t *testing.T) { testTokens(t, newStore(t)) })
	t.Run("MissingToken", func(t *testing.T) { testMissingToken(t, newStore(t)) })
	t.Run("EmptyHistory", func(t *testing.T) { testEmptyHistory(t, newStore(t)) })
	t.Run("MessageRoundTrip", func(t *testing.T) { testMessageRoundTrip(t, newStore(t)) })
	t.Run("MessageOrdering", func(t *testing.T) { testMessageOrdering(t, newStore(t)) })
}

func newUser(name string) *store.User {
	return &store.User{
		Username:     name,
		Salt:         []byte("0123456789abcdef"),
		PasswordHash: []byte("hash-" + name),
		CreatedAt:    1_700_000_000,
	}
}

func testCreateAndGetUser(t *testing.T, s store.Store) {
	ctx := context.Background()

	require.NoError(t, s.CreateUser(ctx, newUser("alice")))

	got, err := s.GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)
	assert.Equal(t, []byte("0123456789abcdef"), got.Salt)
	assert.Equal(t, []byte("hash-alice"), got.PasswordHash)
	assert.Equal(t, int64(1_700_000_000), got.CreatedAt)
}

func testDuplicateUsername(t *testing.T, s store.Store) {
	ctx := context.Background()

	require.NoError(t, s.CreateUser(ctx, newUser("bob")))

	second := newUser("bob")
	second.PasswordHash = []byte("other")
	err := s.CreateUser(ctx, second)
	assert.ErrorIs(t, err, store.ErrDuplicateUsername)

	got, err := s.GetUserByUsername(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, []byte("hash-bob"), got.PasswordHash, "first record must survive")
}

func testConcurrentDuplicateUsername(t *testing.T, s store.Store) {
	ctx := context.Background()
	const workers = 8

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		created  int
		rejected int
		other    []error
	)

	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			u := newUser("carol")
			u.PasswordHash = []byte(fmt.Sprintf("hash-%d", i))
			err := s.CreateUser(ctx, u)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				created++
			case errors.Is(err, store.ErrDuplicateUsername):
				rejected++
			default:
				other = append(other, err)
			}
		}()
	}
	wg.Wait()

	assert.Empty(t, other)
	assert.Equal(t, 1, created)
	assert.Equal(t, workers-1, rejected)
}

func testUsernameCaseSensitive(t *testing.T, s store.Store) {
	ctx := context.Background()

	require.NoError(t, s.CreateUser(ctx, newUser("dave")))
	require.NoError(t, s.CreateUser(ctx, newUser("Dave")))

	got, err := s.GetUserByUsername(ctx, "Dave")
	require.NoError(t, err)
	assert.Equal(t, "Dave", got.Username)
}

func testMissingUser(t *testing.T, s store.Store) {
	_, err := s.GetUserByUsername(context.Background(), "nobody")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func testTokens(t *testing.T, s store.Store) {
	ctx := context.Background()

	tokens := []string{
		"00000000000000000000000000000001",
		"00000000000000000000000000000002",
		"00000000000000000000000000000003",
	}
	for i, tok := range tokens {
		require.NoError(t, s.SaveToken(ctx, &store.Token{Token: tok, Username: "erin", CreatedAt: int64(100 + i)}))
	}

	for i, tok := range tokens {
		got, err := s.GetToken(ctx, tok)
		require.NoError(t, err)
		assert.Equal(t, tok, got.Token)
		assert.Equal(t, "erin", got.Username)
		assert.Equal(t, int64(100+i), got.CreatedAt)
	}
}

func testMissingToken(t *testing.T, s store.Store) {
	_, err := s.GetToken(context.Background(), "ffffffffffffffffffffffffffffffff")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func testEmptyHistory(t *testing.T, s store.Store) {
	msgs, err := s.ListMessages(context.Background())
	require.NoError(t, err)
	assert.Empty(t, msgs)
}

func testMessageRoundTrip(t *testing.T, s store.Store) {
	ctx := context.Background()

	in := &store.Message{
		ID:        "m-1",
		Username:  "frank",
		Text:      "look",
		ImageURL:  "/uploads/cat.png",
		CreatedAt: 1_700_000_123,
		ClientID:  "tmp-1",
	}
	require.NoError(t, s.InsertMessage(ctx, in))

	msgs, err := s.ListMessages(ctx)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, store.Message{
		ID:        "m-1",
		Username:  "frank",
		Text:      "look",
		ImageURL:  "/uploads/cat.png",
		CreatedAt: 1_700_000_123,
	}, msgs[0], "client id is not persisted")
}

func testMessageOrdering(t *testing.T, s store.Store) {
	ctx := context.Background()

	inserts := []store.Message{
		{ID: "late", Username: "u", Text: "late", CreatedAt: 300},
		{ID: "tie-1", Username: "u", Text: "tie-1", CreatedAt: 200},
		{ID: "early", Username: "u", Text: "early", CreatedAt: 100},
		{ID: "tie-2", Username: "u", Text: "tie-2", CreatedAt: 200},
		{ID: "tie-3", Username: "u", Text: "tie-3", CreatedAt: 200},
	}
	for i := range inserts {
		require.NoError(t, s.InsertMessage(ctx, &inserts[i]))
	}

	msgs, err := s.ListMessages(ctx)
	require.NoError(t, err)

	ids := make([]string, 0, len(msgs))
	for _, m := range msgs {
		ids = append(ids, m.ID)
	}
	assert.Equal(t, []string{"early", "tie-1", "tie-2", "tie-3", "late"}, ids)
}
