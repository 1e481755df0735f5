// Package status provides a thread-safe status tracker for the pin-monitor
// daemon. It is designed to be read by HTTP handlers and MQTT system events.
package status

import (
	"sync"
	"time"

	"github.com/RadmehrMoradkhani/pinsignal/internal/monitor"
)

// NetworkInfo contains network state reported by the host helper.
type NetworkInfo struct {
	Type       string
	IP         string
	Status     string
	Gateway    string
	WifiStatus string
	SSID       string
}

// Config contains daemon configuration for display.
type Config struct {
	PollMs      int64
	DebounceMs  int64
	HeartbeatMs int64
	Pins        string // pin spec as configured, e.g. "door=26,bell=16"
	Broker      string
	HTTPAddr    string
	WSBroker    string // Websocket broker URL for browser MQTT (empty = disabled)
}

// PinStatus is the displayed state of one monitored pin.
type PinStatus struct {
	Name  string
	Level int // stable level, 0 or 1
	Rises uint32
	Falls uint32
}

// Snapshot is a point-in-time view of daemon state.
// It is a value type — safe to use after the lock is released.
type Snapshot struct {
	Pins          []PinStatus
	Primed        bool
	StartTime     time.Time
	Now           time.Time
	MQTTConnected bool
	Network       *NetworkInfo
	Config        Config
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Tracker holds mutable daemon state behind an RWMutex.
type Tracker struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewTracker creates a Tracker with the given start time and config.
func NewTracker(startTime time.Time, cfg Config) *Tracker {
	return &Tracker{
		snap: Snapshot{
			StartTime: startTime,
			Config:    cfg,
		},
	}
}

// Update sets pin levels, primed status, and edge counts.
// Called from runLoop on every tick. Levels and counts must be in the same
// pin order.
func (t *Tracker) Update(levels []monitor.PinLevel, primed bool, counts []monitor.PinCounts) {
	pins := make([]PinStatus, len(levels))
	for i, l := range levels {
		pins[i].Name = l.Name
		pins[i].Level = l.Level
		if i < len(counts) {
			pins[i].Rises = counts[i].Rises
			pins[i].Falls = counts[i].Falls
		}
	}

	t.mu.Lock()
	t.snap.Pins = pins
	t.snap.Primed = primed
	t.mu.Unlock()
}

// SetMQTTConnected sets the MQTT connection status.
func (t *Tracker) SetMQTTConnected(connected bool) {
	t.mu.Lock()
	t.snap.MQTTConnected = connected
	t.mu.Unlock()
}

// SetNetwork sets the network info.
func (t *Tracker) SetNetwork(info *NetworkInfo) {
	t.mu.Lock()
	t.snap.Network = info
	t.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the daemon state.
// The Now field is set to the current time at the moment of the call.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	t.mu.RUnlock()
	s.Now = time.Now()
	return s
}
