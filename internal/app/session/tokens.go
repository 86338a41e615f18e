// Package session issues opaque bearer tokens and authenticates requests with them.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"massg/internal/app/store"
	"massg/internal/pkg/auth"
	"massg/internal/pkg/randx"
)

// ErrInvalidToken is returned for an empty, malformed or unknown token.
var ErrInvalidToken = auth.ErrInvalidToken

// Tokens is the token store. Issued tokens never expire and are never revoked.
type Tokens struct {
	repo store.TokenRepository
	now  func() time.Time
}

// NewTokens returns a Tokens backed by repo.
func NewTokens(repo store.TokenRepository) *Tokens {
	return &Tokens{repo: repo, now: time.Now}
}

// Issue creates and persists a new token for username.
func (t *Tokens) Issue(ctx context.Context, username string) (string, error) {
	token, err := randx.Token()
	if err != nil {
		return "", err
	}

	err = t.repo.SaveToken(ctx, &store.Token{
		Token:     token,
		Username:  username,
		CreatedAt: t.now().Unix(),
	})
	if err != nil {
		return "", fmt.Errorf("failed to persist token: %w", err)
	}

	return token, nil
}

// Resolve returns the username the token was issued to.
func (t *Tokens) Resolve(ctx context.Context, token string) (string, error) {
	if !randx.IsWellFormedToken(token) {
		return "", ErrInvalidToken
	}

	rec, err := t.repo.GetToken(ctx, token)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrInvalidToken
		}
		return "", fmt.Errorf("failed to resolve token: %w", err)
	}

	return rec.Username, nil
}
