package message

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"massg/internal/app/store"
	"massg/internal/app/store/memory"
)

func TestAppendThenList(t *testing.T) {
	ctx := context.Background()
	log := NewLog(memory.New())

	before := time.Now().Unix()
	appended, err := log.Append(ctx, "alice", "hello", "")
	require.NoError(t, err)

	msgs, err := log.ListAllOrdered(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, msgs)

	last := msgs[len(msgs)-1]
	assert.Equal(t, "hello", last.Text)
	assert.Equal(t, "alice", last.Username)
	assert.NotEmpty(t, last.ID)
	assert.Equal(t, appended.ID, last.ID)
	assert.GreaterOrEqual(t, last.CreatedAt, before)
}

func TestAppendImageOnly(t *testing.T) {
	m, err := NewLog(memory.New()).Append(context.Background(), "alice", "", "/uploads/a.png")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/a.png", m.ImageURL)
	assert.Empty(t, m.Text)
}

func TestAppendRejectsEmpty(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()

	_, err := NewLog(repo).Append(ctx, "alice", "", "")
	assert.ErrorIs(t, err, ErrEmptyMessage)

	msgs, err := repo.ListMessages(ctx)
	require.NoError(t, err)
	assert.Empty(t, msgs)
}

func TestListIsStableWithinOneSecond(t *testing.T) {
	ctx := context.Background()
	log := NewLog(memory.New())
	log.now = func() time.Time { return time.Unix(1_700_000_000, 0) }

	var want []string
	for _, text := range []string{"one", "two", "three", "four"} {
		m, err := log.Append(ctx, "alice", text, "")
		require.NoError(t, err)
		want = append(want, m.ID)
	}

	msgs, err := log.ListAllOrdered(ctx)
	require.NoError(t, err)

	var got []string
	for _, m := range msgs {
		got = append(got, m.ID)
	}
	assert.Equal(t, want, got)
}

func TestUniqueIDs(t *testing.T) {
	ctx := context.Background()
	log := NewLog(memory.New())

	a, err := log.Append(ctx, "alice", "x", "")
	require.NoError(t, err)
	b, err := log.Append(ctx, "alice", "x", "")
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
}

type failingRepo struct{}

func (failingRepo) InsertMessage(context.Context, *store.Message) error {
	return errors.New("insert failed")
}

func (failingRepo) ListMessages(context.Context) ([]store.Message, error) {
	return nil, errors.New("query failed")
}

func TestRepositoryErrorsPropagate(t *testing.T) {
	ctx := context.Background()
	log := NewLog(failingRepo{})

	_, err := log.Append(ctx, "alice", "hi", "")
	assert.ErrorContains(t, err, "insert failed")

	_, err = log.ListAllOrdered(ctx)
	assert.ErrorContains(t, err, "query failed")
}
