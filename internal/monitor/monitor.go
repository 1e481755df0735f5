package monitor

import (
	"time"

	"github.com/RadmehrMoradkhani/pinsignal/debounce"
	"github.com/RadmehrMoradkhani/pinsignal/edge"
)

// pipeline is the signal chain for one pin: a settle timer feeding the
// debounce filter's readiness predicate, and an edge detector classifying
// the filter's stable output.
type pipeline struct {
	name   string
	settle *debounce.Settle
	filter *debounce.Filter
	det    *edge.Detector
}

// Monitor tracks a set of pins and reports debounced transitions.
type Monitor struct {
	debounceDuration time.Duration
	names            []string
	pins             []*pipeline
	primed           bool
	startTime        time.Time
	lastHeartbeat    time.Time

	// Time of the tick currently being processed. Read by the settle
	// predicates and the edge callbacks during Process.
	now time.Time

	// Events collected by the edge callbacks during the current Process call.
	events []Event
}

// New creates a Monitor for the named pins with the given debounce duration.
// The startTime is used for calculating uptime in heartbeat events. Pipelines
// are created lazily on the first Process call so they can be synchronized to
// the first observed sample.
func New(names []string, debounceDuration time.Duration, startTime time.Time) *Monitor {
	return &Monitor{
		debounceDuration: debounceDuration,
		names:            names,
		startTime:        startTime,
		lastHeartbeat:    startTime,
	}
}

// Process takes one raw sample per pin, in the order the names were given,
// and returns any confirmed transition events. The first call primes every
// pipeline with its initial sample and never emits events, so startup state
// cannot masquerade as a transition. A raws slice of the wrong length is
// ignored.
func (m *Monitor) Process(raws []int, now time.Time) []Event {
	if len(raws) != len(m.names) {
		return nil
	}
	m.now = now

	if !m.primed {
		m.prime(raws, now)
		return nil
	}

	m.events = nil
	for i, p := range m.pins {
		p.settle.Observe(raws[i], now)
		stable := p.filter.Update(raws[i])
		p.det.Classify(stable)
	}
	events := m.events
	m.events = nil
	return events
}

func (m *Monitor) prime(raws []int, now time.Time) {
	m.pins = make([]*pipeline, len(m.names))
	for i, name := range m.names {
		p := &pipeline{
			name:   name,
			settle: debounce.NewSettle(m.debounceDuration),
		}
		p.settle.Observe(raws[i], now)
		p.filter = debounce.New(p.settle.At(m.tickTime), raws[i])
		p.det = edge.New(raws[i])

		p.det.Notify(func(e edge.Edge) {
			m.events = append(m.events, Event{
				Timestamp: m.now,
				Pin:       p.name,
				Edge:      e,
				Level:     p.filter.Output(),
			})
		})
		m.pins[i] = p
	}
	m.primed = true
}

// tickTime returns the time of the tick being processed.
func (m *Monitor) tickTime() time.Time {
	return m.now
}

// Primed returns whether the monitor has seen its first sample set.
func (m *Monitor) Primed() bool {
	return m.primed
}

// Levels returns the current stable level of every pin, in name order.
// Before priming, all levels read 0.
func (m *Monitor) Levels() []PinLevel {
	levels := make([]PinLevel, len(m.names))
	for i, name := range m.names {
		levels[i].Name = name
		if m.primed {
			levels[i].Level = m.pins[i].filter.Output()
		}
	}
	return levels
}

// Counts returns the cumulative edge counts of every pin, in name order.
func (m *Monitor) Counts() []PinCounts {
	counts := make([]PinCounts, len(m.names))
	for i, name := range m.names {
		counts[i].Name = name
		if m.primed {
			counts[i].Rises = m.pins[i].det.Rises()
			counts[i].Falls = m.pins[i].det.Falls()
		}
	}
	return counts
}

// ResetCounts zeroes every pin's edge counters. Stable levels are untouched.
func (m *Monitor) ResetCounts() {
	for _, p := range m.pins {
		p.det.Reset()
	}
}

// CheckHeartbeat returns heartbeat data if the interval has elapsed since the
// last heartbeat (or startup). Returns nil if not yet primed, if the interval
// has not elapsed, or if interval is <= 0 (disabled).
func (m *Monitor) CheckHeartbeat(now time.Time, interval time.Duration) *HeartbeatData {
	if interval <= 0 {
		return nil
	}

	if !m.primed {
		return nil
	}

	if now.Sub(m.lastHeartbeat) < interval {
		return nil
	}

	m.lastHeartbeat = now
	return &HeartbeatData{
		Timestamp: now,
		Uptime:    now.Sub(m.startTime),
		Counts:    m.Counts(),
	}
}
