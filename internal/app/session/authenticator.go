package session

import "context"

// Authenticator validates bearer tokens for HTTP requests and live channels.
type Authenticator struct {
	tokens *Tokens
}

// NewAuthenticator returns an Authenticator resolving tokens through tokens.
func NewAuthenticator(tokens *Tokens) *Authenticator {
	return &Authenticator{tokens: tokens}
}

// Authenticate returns the identity behind token, or ErrInvalidToken.
func (a *Authenticator) Authenticate(ctx context.Context, token string) (string, error) {
	return a.tokens.Resolve(ctx, token)
}
