/*
Package randx generates cryptographically secure identifiers.

It produces bearer tokens, message ids and storage object names.
*/
package randx

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const (
	// TokenBytes is the entropy of a bearer token (128 bits).
	TokenBytes = 16

	// TokenLength is the rendered length of a bearer token in hex characters.
	TokenLength = TokenBytes * 2
)

// Token returns a random bearer token of TokenLength lowercase hex characters.
func Token() (string, error) {
	buf := make([]byte, TokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes for token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// IsWellFormedToken reports whether s has the shape of a token produced by Token.
func IsWellFormedToken(s string) bool {
	if len(s) != TokenLength {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil && strings.ToLower(s) == s
}

// MessageID returns a UUID v4 string identifying a chat message.
func MessageID() string {
	return uuid.New().String()
}

// ObjectName returns a random storage object name keeping ext, e.g. "3f2a...e1.png".
func ObjectName(ext string) string {
	id := uuid.New()
	return hex.EncodeToString(id[:]) + strings.ToLower(ext)
}
