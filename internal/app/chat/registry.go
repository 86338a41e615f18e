/*
Package chat contains the real-time side of the server: the connection registry,
the per-connection client pumps and the gateway that runs the channel protocol.

This file defines the Registry, the set of live channels shared by every connection.
*/
package chat

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"massg/internal/pkg/logx"
)

// Channel is a live connection that accepts outbound frames.
// Enqueue must not block; an error means the channel can no longer be served.
type Channel interface {
	Enqueue(frame []byte) error
	Close()
}

// Registry tracks registered channels and fans frames out to them.
type Registry struct {
	// mu protects channels.
	mu sync.RWMutex

	channels map[Channel]struct{}

	logger zerolog.Logger
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		channels: make(map[Channel]struct{}),
		logger:   logx.Component("Registry"),
	}
}

// Register adds ch. Registering the same channel twice is a no-op.
func (r *Registry) Register(ch Channel) {
	r.mu.Lock()
	r.channels[ch] = struct{}{}
	total := len(r.channels)
	r.mu.Unlock()

	r.logger.Info().Int("total_channels", total).Msg("Channel registered.")
}

// Unregister removes ch. Removing an absent channel is a no-op.
func (r *Registry) Unregister(ch Channel) {
	r.mu.Lock()
	_, ok := r.channels[ch]
	delete(r.channels, ch)
	total := len(r.channels)
	r.mu.Unlock()

	if ok {
		r.logger.Info().Int("total_channels", total).Msg("Channel unregistered.")
	}
}

// Count returns the number of registered channels.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.channels)
}

// Broadcast marshals payload once and enqueues it on every registered channel.
// Channels that fail to accept the frame are unregistered and closed; the rest
// still receive it. Only a marshal failure is returned.
func (r *Registry) Broadcast(payload any) error {
	frame, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal broadcast payload: %w", err)
	}

	r.mu.RLock()
	targets := make([]Channel, 0, len(r.channels))
	for ch := range r.channels {
		targets = append(targets, ch)
	}
	r.mu.RUnlock()

	var failed []Channel
	for _, ch := range targets {
		if err := ch.Enqueue(frame); err != nil {
			r.logger.Warn().Err(err).Msg("Channel rejected frame, dropping it.")
			failed = append(failed, ch)
		}
	}

	for _, ch := range failed {
		r.Unregister(ch)
		ch.Close()
	}

	r.logger.Debug().
		Int("targets", len(targets)).
		Int("failed", len(failed)).
		Msg("Broadcast delivered.")

	return nil
}

// Shutdown closes and forgets every registered channel.
func (r *Registry) Shutdown() {
	r.mu.Lock()
	channels := r.channels
	r.channels = make(map[Channel]struct{})
	r.mu.Unlock()

	for ch := range channels {
		ch.Close()
	}

	r.logger.Info().Int("closed_channels", len(channels)).Msg("Registry shutdown complete.")
}
