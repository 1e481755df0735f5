package debounce

import "time"

// Settle is a stock wall-clock predicate: it reports ready once the raw
// input has gone unchanged for the configured period. Time is always passed
// in by the caller, never read from the system clock, so behavior stays
// deterministic under test.
//
// Usage: call Observe with each raw sample before Update, then let the
// filter query ReadyAt (typically through At).
type Settle struct {
	period time.Duration
	last   bool
	since  time.Time
	primed bool
}

// NewSettle creates a settle timer for the given quiet period.
func NewSettle(period time.Duration) *Settle {
	return &Settle{period: period}
}

// Observe records one raw sample. The quiet-period timer restarts whenever
// the normalized sample differs from the previous one.
func (s *Settle) Observe(raw int, now time.Time) {
	if s == nil {
		return
	}
	v := normalize(raw)
	if !s.primed || v != s.last {
		s.last = v
		s.since = now
		s.primed = true
	}
}

// ReadyAt reports whether the input has been quiet for the full period.
// Before the first Observe it reports false.
func (s *Settle) ReadyAt(now time.Time) bool {
	if s == nil || !s.primed {
		return false
	}
	return now.Sub(s.since) >= s.period
}

// At adapts the settle timer into a zero-argument Predicate using the given
// clock function.
func (s *Settle) At(now func() time.Time) Predicate {
	return func() bool {
		return s.ReadyAt(now())
	}
}
