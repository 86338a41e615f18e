package errs

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewError(t *testing.T) {
	tests := []struct {
		name       string
		code       int
		wantCode   int
		wantStatus int
	}{
		{name: "default status is bad request", code: ErrInvalidParams, wantCode: ErrInvalidParams, wantStatus: http.StatusBadRequest},
		{name: "conflict", code: ErrUserAlreadyExists, wantCode: ErrUserAlreadyExists, wantStatus: http.StatusConflict},
		{name: "unauthorized", code: ErrInvalidToken, wantCode: ErrInvalidToken, wantStatus: http.StatusUnauthorized},
		{name: "unregistered code falls back to unknown", code: 42, wantCode: ErrUnknown, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewError(tt.code)
			assert.Equal(t, tt.wantCode, err.Code)
			assert.Equal(t, tt.wantStatus, err.Status)
			assert.NotEmpty(t, err.Message)
		})
	}
}

func TestNewErrorReturnsCopy(t *testing.T) {
	first := NewError(ErrFileMissing)
	first.Message = "changed"

	assert.Equal(t, "No file", NewError(ErrFileMissing).Message)
}

func TestNewErrorUnknownKeepsCauseInternal(t *testing.T) {
	err := NewError(ErrUnknown, errors.New("database is on fire"))

	assert.NotContains(t, err.Message, "database")
	assert.Contains(t, err.Error(), "HTTP 500")
}
