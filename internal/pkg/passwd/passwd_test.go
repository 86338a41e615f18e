package passwd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSalt(t *testing.T) {
	a, err := NewSalt()
	require.NoError(t, err)
	b, err := NewSalt()
	require.NoError(t, err)

	assert.Len(t, a, SaltSize)
	assert.NotEqual(t, a, b)
}

func TestHashIsDeterministic(t *testing.T) {
	salt := []byte("0123456789abcdef")

	first := Hash("hunter2", salt)
	assert.Len(t, first, KeyLen)
	assert.Equal(t, first, Hash("hunter2", salt))
	assert.NotEqual(t, first, Hash("hunter2", []byte("fedcba9876543210")))
	assert.NotEqual(t, first, Hash("hunter3", salt))
}

func TestVerify(t *testing.T) {
	salt, err := NewSalt()
	require.NoError(t, err)
	stored := Hash("correct horse", salt)

	assert.True(t, Verify("correct horse", salt, stored))
	assert.False(t, Verify("correct horse ", salt, stored))
	assert.False(t, Verify("", salt, stored))
	assert.False(t, Verify("correct horse", salt, stored[:10]))
}
