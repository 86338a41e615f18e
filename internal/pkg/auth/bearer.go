// Package auth extracts opaque bearer tokens from requests and guards handlers with them.
package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"massg/internal/pkg/errs"
	"massg/internal/pkg/logx"
	"massg/internal/pkg/resp"
)

// ErrInvalidToken is returned by an Authenticator for an empty, malformed or unknown token.
var ErrInvalidToken = errors.New("invalid token")

// Authenticator resolves a bearer token to the username it was issued to.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (string, error)
}

type contextKey string

// ContextUsernameKey stores the authenticated username in the request Context.
const ContextUsernameKey contextKey = "auth_username"

// TokenFromRequest returns the `token` query parameter or, if absent, the
// credential of an "Authorization: Bearer <token>" header.
func TokenFromRequest(r *http.Request) string {
	if token := r.URL.Query().Get("token"); token != "" {
		return token
	}

	// Expected format: "Bearer <token>"
	parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}

// RequireToken rejects requests without a valid token with 401 and injects the
// authenticated username into the Context otherwise.
func RequireToken(a Authenticator) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			username, err := a.Authenticate(r.Context(), TokenFromRequest(r))
			if err != nil {
				if errors.Is(err, ErrInvalidToken) {
					resp.RespondError(w, r, errs.NewError(errs.ErrInvalidToken))
					return
				}

				logx.Error(err, "Token lookup failed", "path", r.URL.Path)
				resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
				return
			}

			ctx := context.WithValue(r.Context(), ContextUsernameKey, username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UsernameFromContext returns the username stored by RequireToken.
func UsernameFromContext(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(ContextUsernameKey).(string)
	return username, ok
}
