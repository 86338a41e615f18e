package chat

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"massg/internal/app/store"
	"massg/internal/pkg/auth"
	"massg/internal/pkg/logx"
)

// MessageLog is the durable message history used by the gateway.
type MessageLog interface {
	Append(ctx context.Context, username, text, imageURL string) (*store.Message, error)
	ListAllOrdered(ctx context.Context) ([]store.Message, error)
}

// Gateway upgrades authenticated requests into live channels and runs the
// channel protocol: history replay, then inbound messages broadcast to everyone.
type Gateway struct {
	auth     auth.Authenticator
	messages MessageLog
	registry *Registry
	upgrader websocket.Upgrader
	logger   zerolog.Logger
}

// NewGateway wires a Gateway. checkOrigin may be nil to accept any origin.
func NewGateway(a auth.Authenticator, messages MessageLog, registry *Registry, checkOrigin func(*http.Request) bool) *Gateway {
	if checkOrigin == nil {
		checkOrigin = func(*http.Request) bool { return true }
	}

	return &Gateway{
		auth:     a,
		messages: messages,
		registry: registry,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin,
		},
		logger: logx.Component("Gateway"),
	}
}

// ServeHTTP authenticates the request, upgrades it and serves the channel until it closes.
// A request with an invalid token is upgraded only to be closed with a policy-violation code.
func (g *Gateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	username, authErr := g.auth.Authenticate(ctx, auth.TokenFromRequest(r))

	conn, err := g.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// the upgrader has already replied with an HTTP error
		g.logger.Warn().Err(err).Msg("WebSocket upgrade failed.")
		return
	}

	if authErr != nil {
		code, reason := websocket.ClosePolicyViolation, "invalid token"
		if !errors.Is(authErr, auth.ErrInvalidToken) {
			g.logger.Error().Err(authErr).Msg("Token lookup failed.")
			code, reason = websocket.CloseInternalServerErr, "authentication unavailable"
		}
		rejectConn(conn, code, reason)
		return
	}

	client := newClient(g, conn, username)
	g.registry.Register(client)

	history, err := g.messages.ListAllOrdered(ctx)
	if err != nil {
		client.logger.Error().Err(err).Msg("Failed to load history.")
		g.registry.Unregister(client)
		client.Close()
		rejectConn(conn, websocket.CloseInternalServerErr, "history unavailable")
		return
	}

	// history goes out before WritePump starts so it always precedes queued broadcasts
	if err := client.writeJSON(HistoryEvent{Type: TypeHistory, Messages: history}); err != nil {
		client.logger.Warn().Err(err).Msg("Failed to send history.")
		g.registry.Unregister(client)
		client.Close()
		_ = conn.Close()
		return
	}

	client.logger.Info().Int("history_len", len(history)).Msg("Channel opened.")

	go client.WritePump()
	client.ReadPump(ctx)
}

func rejectConn(conn *websocket.Conn, code int, reason string) {
	msg := websocket.FormatCloseMessage(code, reason)
	_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
	_ = conn.Close()
}
