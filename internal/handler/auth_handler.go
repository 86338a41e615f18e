/*
Package handler provides the HTTP handlers and routing setup for the chat server.

This file holds the account endpoints: registration and login both answer with a fresh bearer token.
*/
package handler

import (
	"errors"
	"net/http"
	"strings"

	"massg/internal/app/user"
	"massg/internal/pkg/errs"
	"massg/internal/pkg/logx"
	"massg/internal/pkg/req"
	"massg/internal/pkg/resp"
)

// CredentialsInput is the JSON body of register and login requests.
type CredentialsInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenResponse is returned by register and login.
type TokenResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// bindCredentials decodes the body and trims the username. Passwords are used verbatim.
func bindCredentials(w http.ResponseWriter, r *http.Request) (CredentialsInput, *errs.CustomError) {
	var input CredentialsInput
	if customErr := req.BindJSON(w, r, &input); customErr != nil {
		return input, customErr
	}

	input.Username = strings.TrimSpace(input.Username)
	if input.Username == "" || input.Password == "" {
		return input, errs.NewError(errs.ErrInvalidParams)
	}

	return input, nil
}

// HandleRegister creates an account and issues its first token.
func HandleRegister(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		input, customErr := bindCredentials(w, r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if err := deps.Credentials.Create(r.Context(), input.Username, input.Password); err != nil {
			if errors.Is(err, user.ErrDuplicateUsername) {
				logx.Warn("registration conflict: username already exists", "username", input.Username)
				resp.RespondError(w, r, errs.NewError(errs.ErrUserAlreadyExists))
				return
			}

			logx.Error(err, "failed to create user")
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		respondWithToken(w, r, deps, input.Username)
	}
}

// HandleLogin verifies credentials and issues a new token. Earlier tokens stay valid.
func HandleLogin(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		input, customErr := bindCredentials(w, r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		ok, err := deps.Credentials.Verify(r.Context(), input.Username, input.Password)
		if err != nil {
			logx.Error(err, "login: credential check failed", "username", input.Username)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}
		if !ok {
			logx.Warn("login: invalid credentials", "username", input.Username)
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidCredentials))
			return
		}

		respondWithToken(w, r, deps, input.Username)
	}
}

func respondWithToken(w http.ResponseWriter, r *http.Request, deps *AppDeps, username string) {
	token, err := deps.Tokens.Issue(r.Context(), username)
	if err != nil {
		logx.Error(err, "failed to issue token", "username", username)
		resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
		return
	}

	resp.RespondSuccess(w, r, TokenResponse{Token: token, Username: username})
}
