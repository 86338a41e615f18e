package chat

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"massg/internal/pkg/logx"
	"massg/internal/pkg/randx"
)

const (
	// timeout duration for writing to the WebSocket connection.
	writeWait = 10 * time.Second

	// maximum time allowed for the server to wait for a Pong message from the client.
	pongWait = 60 * time.Second

	// frequency at which the server sends a Ping message.
	pingPeriod = (pongWait * 9) / 10

	// MaxMessageSize bounds one inbound frame. Larger frames close the channel with 1009.
	MaxMessageSize = 1 << 20

	// SendQueueSize bounds the frames waiting to be written to one client.
	SendQueueSize = 256
)

var (
	// ErrChannelClosed is returned by Enqueue after the client has been closed.
	ErrChannelClosed = errors.New("channel closed")

	// ErrSendQueueFull is returned by Enqueue when the client is not draining its queue.
	ErrSendQueueFull = errors.New("send queue full")
)

// Client is one live WebSocket connection of an authenticated user.
type Client struct {
	gateway *Gateway

	// underlying WebSocket connection object.
	conn *websocket.Conn

	username string

	// frames waiting to be written by WritePump.
	send chan []byte

	// mu guards closed and the close of send.
	mu     sync.Mutex
	closed bool

	// closeSent is set once a close frame has gone out.
	closeSent atomic.Bool

	logger zerolog.Logger
}

func newClient(g *Gateway, conn *websocket.Conn, username string) *Client {
	return &Client{
		gateway:  g,
		conn:     conn,
		username: username,
		send:     make(chan []byte, SendQueueSize),
		logger: logx.Component("Client").With().
			Str("conn_id", randx.MessageID()).
			Str("username", username).
			Logger(),
	}
}

// Enqueue queues frame for delivery without blocking.
func (c *Client) Enqueue(frame []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrChannelClosed
	}

	select {
	case c.send <- frame:
		return nil
	default:
		return ErrSendQueueFull
	}
}

// Close stops the client's write side. WritePump sends a close frame and
// shuts the connection down once it drains the queue. Safe to call repeatedly.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

// ReadPump reads inbound frames until the connection fails or a frame cannot be handled.
func (c *Client) ReadPump(ctx context.Context) {
	defer c.cleanupOnDisconnect()

	c.conn.SetReadLimit(MaxMessageSize)

	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set read deadline")
		return
	}

	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, messageBytes, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Info().Err(err).Msg("Error reading message (Client close/going away)")
			}
			return
		}

		var inbound InboundEvent
		if err := json.Unmarshal(messageBytes, &inbound); err != nil {
			c.logger.Warn().Err(err).Msg("Client sent invalid JSON")
			c.closeWith(websocket.CloseUnsupportedData, "invalid JSON")
			return
		}

		if err := c.handleInbound(ctx, inbound); err != nil {
			c.logger.Error().Err(err).Msg("Failed to store inbound message")
			c.closeWith(websocket.CloseInternalServerErr, "message could not be stored")
			return
		}
	}
}

// handleInbound stores and broadcasts one chat message. Frames with neither
// text nor an image are ignored.
func (c *Client) handleInbound(ctx context.Context, in InboundEvent) error {
	text := strings.TrimSpace(in.Text)
	imageURL := strings.TrimSpace(in.ImageURL)
	clientID := strings.TrimSpace(in.ClientID)

	if text == "" && imageURL == "" {
		return nil
	}

	msg, err := c.gateway.messages.Append(ctx, c.username, text, imageURL)
	if err != nil {
		return err
	}

	msg.ClientID = clientID

	return c.gateway.registry.Broadcast(MessageEvent{
		Type:    TypeMessage,
		Message: *msg,
	})
}

// cleanupOnDisconnect removes the client from the registry and stops WritePump.
func (c *Client) cleanupOnDisconnect() {
	c.logger.Info().Msg("Client connection cleanup starting.")

	c.gateway.registry.Unregister(c)
	c.Close()
}

// closeWith sends a close frame with code unless one was already sent.
// It is safe to call while WritePump runs.
func (c *Client) closeWith(code int, reason string) {
	if !c.closeSent.CompareAndSwap(false, true) {
		return
	}

	msg := websocket.FormatCloseMessage(code, reason)
	if err := c.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait)); err != nil {
		// the peer is usually gone already when this fails
		c.logger.Debug().Err(err).Int("close_code", code).Msg("Failed to send close frame.")
	}
}

// writeJSON writes v directly to the connection. Only valid before WritePump starts.
func (c *Client) writeJSON(v any) error {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.conn.WriteJSON(v)
}

// WritePump writes queued frames and keepalive pings until the queue is closed
// or a write fails.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()

		// a failed write leaves the queue open; mark it closed so broadcasts stop targeting it.
		c.Close()

		if err := c.conn.Close(); err != nil {
			c.logger.Debug().Err(err).Msg("Client connection close error in WritePump")
		}
	}()

	for {
		select {
		case message, ok := <-c.send:
			if !c.writeQueuedMessage(message, ok) {
				return
			}

		case <-ticker.C:
			if !c.writePingMessage() {
				return
			}
		}
	}
}

// writeQueuedMessage returns true if the WritePump loop should continue.
func (c *Client) writeQueuedMessage(message []byte, ok bool) bool {
	if !ok {
		c.closeWith(websocket.CloseNormalClosure, "")
		return false
	}

	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set write deadline")
		return false
	}

	if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
		c.logger.Warn().Err(err).Msg("Error writing message")
		return false
	}

	return true
}

// writePingMessage returns false if the WritePump loop should terminate.
func (c *Client) writePingMessage() bool {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set write deadline on ping")
		return false
	}

	if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
		c.logger.Warn().Err(err).Msg("Error writing ping")
		return false
	}

	return true
}
