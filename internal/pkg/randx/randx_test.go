package randx

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToken(t *testing.T) {
	seen := make(map[string]struct{})

	for range 100 {
		tok, err := Token()
		require.NoError(t, err)
		assert.Len(t, tok, TokenLength)
		assert.True(t, IsWellFormedToken(tok))

		_, dup := seen[tok]
		assert.False(t, dup, "token repeated: %s", tok)
		seen[tok] = struct{}{}
	}
}

func TestIsWellFormedToken(t *testing.T) {
	assert.False(t, IsWellFormedToken(""))
	assert.False(t, IsWellFormedToken("xyz"))
	assert.False(t, IsWellFormedToken("ABCDEF0123456789ABCDEF0123456789"))
	assert.False(t, IsWellFormedToken("zz0123456789abcdef0123456789abcd"))
	assert.True(t, IsWellFormedToken("abcdef0123456789abcdef0123456789"))
}

func TestMessageID(t *testing.T) {
	id := MessageID()

	_, err := uuid.Parse(id)
	assert.NoError(t, err)
	assert.NotEqual(t, id, MessageID())
}

func TestObjectName(t *testing.T) {
	name := ObjectName(".PNG")

	assert.Len(t, name, 32+len(".png"))
	assert.Equal(t, ".png", name[32:])
}
