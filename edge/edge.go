// Package edge classifies transitions between consecutive samples of a
// binary signal. A Detector is fed one raw sample per call by an external
// sampling loop and reports whether that step was a rising edge, a falling
// edge, or no transition, keeping cumulative counts and optionally notifying
// a callback. Like package debounce it is pure state: no I/O, no clock, no
// internal concurrency.
package edge

// Edge classifies one sampling step.
type Edge int

const (
	// None means the normalized sample did not change.
	None Edge = iota
	// Rising is a 0 -> 1 transition.
	Rising
	// Falling is a 1 -> 0 transition.
	Falling
)

// String returns NONE, RISING or FALLING.
func (e Edge) String() string {
	switch e {
	case Rising:
		return "RISING"
	case Falling:
		return "FALLING"
	default:
		return "NONE"
	}
}

// Callback is notified of each detected edge, synchronously within the
// Classify call that detected it. It is never invoked with None. It must not
// call back into the same Detector.
type Callback func(Edge)

// Detector holds edge-detection state for one monitored signal.
// An instance must be driven from a single call site at a time.
type Detector struct {
	prev   bool
	rises  uint32
	falls  uint32
	onEdge Callback
}

// New creates a Detector synchronized to the given initial sample, so the
// first real sample cannot report a spurious edge. Any nonzero sample counts
// as high.
func New(initial int) *Detector {
	return &Detector{prev: initial != 0}
}

// Notify sets the edge callback. A nil callback disables notification.
func (d *Detector) Notify(cb Callback) {
	if d == nil {
		return
	}
	d.onEdge = cb
}

// Classify processes one raw sample and reports the transition from the
// previous sample. This is the only operation that advances the detector;
// call it exactly once per sample. Counters increment on the matching edge
// and wrap silently at the uint32 boundary.
//
// Calling Classify on a nil Detector is a safe no-op returning None.
func (d *Detector) Classify(raw int) Edge {
	if d == nil {
		return None
	}
	current := raw != 0

	result := None
	switch {
	case !d.prev && current:
		result = Rising
		d.rises++
	case d.prev && !current:
		result = Falling
		d.falls++
	}
	d.prev = current

	if result != None && d.onEdge != nil {
		d.onEdge(result)
	}
	return result
}

// Any processes one raw sample and reports whether any edge occurred.
// It advances the detector exactly once, through a single Classify step.
func (d *Detector) Any(raw int) bool {
	return d.Classify(raw) != None
}

// Reset zeroes both counters. The previous-sample state is untouched, so a
// following edge is still detected correctly.
func (d *Detector) Reset() {
	if d == nil {
		return
	}
	d.rises = 0
	d.falls = 0
}

// Rises returns the number of rising edges seen since creation or the last
// Reset. The count wraps at the uint32 boundary.
func (d *Detector) Rises() uint32 {
	if d == nil {
		return 0
	}
	return d.rises
}

// Falls returns the number of falling edges seen since creation or the last
// Reset. The count wraps at the uint32 boundary.
func (d *Detector) Falls() uint32 {
	if d == nil {
		return 0
	}
	return d.falls
}
