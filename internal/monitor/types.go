// Package monitor wires the debounce and edge primitives into per-pin
// pipelines for the pin-monitor daemon. Like the primitives themselves it is
// pure logic: no GPIO, MQTT, OS, or time.Sleep. Time is always injectable
// via time.Time parameters.
package monitor

import (
	"time"

	"github.com/RadmehrMoradkhani/pinsignal/edge"
)

// Event represents a confirmed, debounced transition on one pin.
type Event struct {
	Timestamp time.Time
	Pin       string
	Edge      edge.Edge // Rising or Falling, never None
	Level     int       // stable level after the transition (0 or 1)
}

// PinLevel is the current stable level of one pin.
type PinLevel struct {
	Name  string
	Level int
}

// PinCounts holds the cumulative edge counts for one pin.
type PinCounts struct {
	Name  string
	Rises uint32
	Falls uint32
}

// HeartbeatData contains information for a heartbeat event.
type HeartbeatData struct {
	Timestamp time.Time
	Uptime    time.Duration
	Counts    []PinCounts
}
