package handler

import (
	"massg/internal/app/chat"
	"massg/internal/app/message"
	"massg/internal/app/session"
	"massg/internal/app/storage"
	"massg/internal/app/user"
	"massg/internal/configs"
)

// AppDeps carries the services the HTTP layer is built from.
type AppDeps struct {
	Config         *configs.AppConfig
	Credentials    *user.Credentials
	Tokens         *session.Tokens
	Authenticator  *session.Authenticator
	Messages       *message.Log
	Registry       *chat.Registry
	StorageService storage.StorageService
}
