// Package debounce rejects spurious transitions on a noisy binary input.
// A Filter only lets its output change after the raw input has held a new
// value for as long as a caller-supplied readiness predicate demands.
// This package has NO external dependencies and performs no I/O; all timing
// is owned by the caller through the Predicate.
package debounce

// Predicate reports whether the configured quiet period has elapsed.
// It must return false while the signal is still to be considered unstable
// and true once it may be accepted.
//
// Update calls the predicate at most once per invocation. On a call where
// the raw input changed, the predicate is still invoked but its result is
// discarded: this is a hook for implementations that reset an internal timer
// on observing a transition, never a condition for acceptance on that call.
// Whether a predicate with side effects is sound is up to the caller; the
// only guarantee here is the at-most-once call per step.
type Predicate func() bool

// Filter holds the debounce state for one monitored signal.
// An instance must be driven from a single call site at a time; concurrent
// use requires external synchronization.
type Filter struct {
	lastRaw bool
	stable  bool
	ready   Predicate
}

// New creates a Filter synchronized to the given initial raw sample, so the
// first real sample cannot produce a false transition. Any nonzero sample
// counts as high. A nil predicate means changes are accepted immediately
// (pass-through, a valid unfiltered configuration).
func New(ready Predicate, initial int) *Filter {
	v := normalize(initial)
	return &Filter{
		lastRaw: v,
		stable:  v,
		ready:   ready,
	}
}

// Update processes one raw sample and returns the stable output, 0 or 1.
//
// A change in the raw input is recorded but not trusted: the previous stable
// value is returned unchanged. Only when the input repeats its new value on a
// later call, and the predicate reports ready, does the stable output follow.
// With a nil predicate a change observed on call k is reflected on call k+1.
//
// Calling Update on a nil Filter is a safe no-op returning 0.
func (f *Filter) Update(raw int) int {
	if f == nil {
		return 0
	}
	current := normalize(raw)

	if current != f.lastRaw {
		f.lastRaw = current
		// Result deliberately discarded; see Predicate.
		if f.ready != nil {
			f.ready()
		}
		return boolToInt(f.stable)
	}

	if f.ready == nil || f.ready() {
		f.stable = current
	}
	return boolToInt(f.stable)
}

// Output returns the current stable value without advancing the filter.
// Safe on a nil Filter (returns 0).
func (f *Filter) Output() int {
	if f == nil {
		return 0
	}
	return boolToInt(f.stable)
}

func normalize(v int) bool {
	return v != 0
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
