package chat

import "massg/internal/app/store"

// EventType tags every frame the server sends on a live channel.
type EventType string

const (
	// TypeHistory is sent once, as the first frame after a channel is registered.
	TypeHistory EventType = "history"

	// TypeMessage carries one newly stored message to every registered channel.
	TypeMessage EventType = "message"
)

// HistoryEvent replays every stored message, oldest first.
type HistoryEvent struct {
	Type     EventType       `json:"type"`
	Messages []store.Message `json:"messages"`
}

// MessageEvent wraps a message being broadcast.
type MessageEvent struct {
	Type    EventType     `json:"type"`
	Message store.Message `json:"message"`
}

// InboundEvent is a chat message sent by a client. All fields are optional.
type InboundEvent struct {
	Text     string `json:"text"`
	ImageURL string `json:"image_url"`
	ClientID string `json:"client_id"`
}
