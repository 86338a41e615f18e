// Package passwd derives and checks salted password hashes with PBKDF2-HMAC-SHA256.
package passwd

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// SaltSize is the length of a generated salt in bytes (128 bits).
	SaltSize = 16

	// Iterations is the PBKDF2 round count.
	Iterations = 120_000

	// KeyLen is the derived hash length in bytes.
	KeyLen = sha256.Size
)

// NewSalt returns SaltSize random bytes.
func NewSalt() ([]byte, error) {
	salt := make([]byte, SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	return salt, nil
}

// Hash derives the password hash for password and salt. The result is deterministic.
func Hash(password string, salt []byte) []byte {
	return pbkdf2.Key([]byte(password), salt, Iterations, KeyLen, sha256.New)
}

// Verify reports whether password hashes to expected under salt, in constant time.
func Verify(password string, salt, expected []byte) bool {
	return subtle.ConstantTimeCompare(Hash(password, salt), expected) == 1
}
