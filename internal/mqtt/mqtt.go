// Package mqtt provides MQTT publishing with abstraction for testing.
package mqtt

import (
	"encoding/json"
	"time"

	"github.com/RadmehrMoradkhani/pinsignal/internal/monitor"
)

// Topic is the MQTT topic for pin transition events.
const Topic = "sensors/pins/events"

// TopicSystem is the MQTT topic for system lifecycle events.
const TopicSystem = "sensors/pins/system"

// Publisher publishes events to MQTT.
type Publisher interface {
	// Publish sends a pin transition event to the broker.
	// Returns error if publishing fails (should not crash the process).
	Publish(event monitor.Event) error

	// PublishSystem sends a system lifecycle event to the broker.
	PublishSystem(event SystemEvent) error

	// Close disconnects from the broker.
	Close() error
}

// ConnectionStatus reports whether the MQTT connection is active.
type ConnectionStatus interface {
	IsConnected() bool
}

// SystemEvent represents a system lifecycle event (e.g., startup, shutdown, heartbeat).
type SystemEvent struct {
	Timestamp  time.Time
	Event      string // e.g., "STARTUP", "SHUTDOWN", "HEARTBEAT"
	Reason     string // e.g., "SIGTERM", "SIGINT" (shutdown only)
	RawPayload []byte // Pre-formatted JSON payload; if set, FormatSystemPayload returns it directly
	Retained   bool   // Whether the message should be retained by the broker
}

// Payload represents the MQTT message payload structure.
type Payload struct {
	Pin PinPayload `json:"pin"`
}

// PinPayload contains the pin transition details.
type PinPayload struct {
	Timestamp string `json:"timestamp"`
	Name      string `json:"name"`
	Edge      string `json:"edge"`  // RISING or FALLING
	Level     string `json:"level"` // HIGH or LOW after the transition
}

// LevelString maps a stable level to its payload representation.
func LevelString(level int) string {
	if level != 0 {
		return "HIGH"
	}
	return "LOW"
}

// FormatPayload creates the JSON payload for a pin transition event.
func FormatPayload(event monitor.Event) ([]byte, error) {
	payload := Payload{
		Pin: PinPayload{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Name:      event.Pin,
			Edge:      event.Edge.String(),
			Level:     LevelString(event.Level),
		},
	}
	return json.Marshal(payload)
}

// SystemPayload represents the MQTT message payload for system events.
// Used for simple events that don't carry a full status snapshot.
type SystemPayload struct {
	System SystemPayloadInner `json:"system"`
}

// SystemPayloadInner contains the system event details.
type SystemPayloadInner struct {
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
	Reason    string `json:"reason,omitempty"`
}

// FormatSystemPayload creates the JSON payload for a system event.
// If event.RawPayload is set, it is returned directly (used for full status snapshots).
func FormatSystemPayload(event SystemEvent) ([]byte, error) {
	if event.RawPayload != nil {
		return event.RawPayload, nil
	}

	payload := SystemPayload{
		System: SystemPayloadInner{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Event:     event.Event,
			Reason:    event.Reason,
		},
	}
	return json.Marshal(payload)
}
