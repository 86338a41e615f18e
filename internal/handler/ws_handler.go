package handler

import (
	"net/http"

	"massg/internal/configs"
	"massg/internal/pkg/logx"
)

// OriginChecker accepts every origin in development and only the configured
// ALLOWED_ORIGINS otherwise. Requests without an Origin header are not browsers
// and are let through.
func OriginChecker(cfg *configs.AppConfig) func(r *http.Request) bool {
	allowedOrigins := make(map[string]struct{}, len(cfg.AllowedOrigins))
	for _, origin := range cfg.AllowedOrigins {
		allowedOrigins[origin] = struct{}{}
	}

	return func(r *http.Request) bool {
		if cfg.IsDevelopment() {
			return true
		}

		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		if _, ok := allowedOrigins[origin]; ok {
			return true
		}

		logx.Warn("WebSocket connection rejected: Origin not allowed.", "origin", origin)
		return false
	}
}
