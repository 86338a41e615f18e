package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticAuth map[string]string

func (s staticAuth) Authenticate(_ context.Context, token string) (string, error) {
	if token == "broken" {
		return "", errors.New("store offline")
	}
	if name, ok := s[token]; ok {
		return name, nil
	}
	return "", ErrInvalidToken
}

func TestTokenFromRequest(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/ws?token=abc", nil)
	assert.Equal(t, "abc", TokenFromRequest(r))

	r = httptest.NewRequest(http.MethodGet, "/ws", nil)
	r.Header.Set("Authorization", "Bearer xyz")
	assert.Equal(t, "xyz", TokenFromRequest(r))

	r = httptest.NewRequest(http.MethodGet, "/ws", nil)
	r.Header.Set("Authorization", "Basic xyz")
	assert.Empty(t, TokenFromRequest(r))

	r = httptest.NewRequest(http.MethodGet, "/ws?token=q", nil)
	r.Header.Set("Authorization", "Bearer h")
	assert.Equal(t, "q", TokenFromRequest(r))
}

func TestRequireToken(t *testing.T) {
	var seen string
	h := RequireToken(staticAuth{"good": "alice"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name, ok := UsernameFromContext(r.Context())
		require.True(t, ok)
		seen = name
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name   string
		target string
		want   int
	}{
		{name: "valid", target: "/?token=good", want: http.StatusNoContent},
		{name: "missing", target: "/", want: http.StatusUnauthorized},
		{name: "unknown", target: "/?token=nope", want: http.StatusUnauthorized},
		{name: "lookup failure", target: "/?token=broken", want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, tt.target, nil))
			assert.Equal(t, tt.want, rec.Code)
		})
	}

	assert.Equal(t, "alice", seen)
}

func TestUsernameFromContextMissing(t *testing.T) {
	_, ok := UsernameFromContext(context.Background())
	assert.False(t, ok)
}
