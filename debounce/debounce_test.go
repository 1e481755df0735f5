package debounce

import (
	"testing"
	"time"
)

func TestNewSynchronizesToInitial(t *testing.T) {
	f := New(nil, 1)
	if f.Output() != 1 {
		t.Errorf("expected initial output 1, got %d", f.Output())
	}

	// First sample matching the initial value is not a transition.
	if got := f.Update(1); got != 1 {
		t.Errorf("expected 1, got %d", got)
	}

	f = New(nil, 0)
	if f.Output() != 0 {
		t.Errorf("expected initial output 0, got %d", f.Output())
	}
}

func TestNormalization(t *testing.T) {
	// Nonzero initial values behave as 1.
	f := New(nil, 5)
	if f.Output() != 1 {
		t.Errorf("init 5: expected output 1, got %d", f.Output())
	}

	// Update with 5 behaves exactly like update with 1: no change observed.
	f2 := New(nil, 1)
	if got := f2.Update(5); got != 1 {
		t.Errorf("update 5 after init 1: expected 1, got %d", got)
	}
	if got := f2.Update(-3); got != 1 {
		t.Errorf("update -3: expected 1 (nonzero is high), got %d", got)
	}
}

func TestNoPredicatePassThrough(t *testing.T) {
	// Without a predicate, a change observed on call k is reflected on
	// call k+1.
	f := New(nil, 0)

	if got := f.Update(1); got != 0 {
		t.Errorf("Update(1): expected 0 (change not yet trusted), got %d", got)
	}
	if got := f.Update(1); got != 1 {
		t.Errorf("Update(1) again: expected 1, got %d", got)
	}
	if got := f.Update(0); got != 1 {
		t.Errorf("Update(0): expected 1 (change not yet trusted), got %d", got)
	}
	if got := f.Update(0); got != 0 {
		t.Errorf("Update(0) again: expected 0, got %d", got)
	}
}

func TestPredicateAlwaysTrue(t *testing.T) {
	f := New(func() bool { return true }, 0)

	if got := f.Update(1); got != 0 {
		t.Errorf("change call: expected previous stable 0, got %d", got)
	}
	if got := f.Update(1); got != 1 {
		t.Errorf("confirm call: expected 1, got %d", got)
	}
}

func TestPredicateAlwaysFalse(t *testing.T) {
	f := New(func() bool { return false }, 0)

	inputs := []int{1, 1, 0, 1, 1, 1, 0, 0}
	for i, in := range inputs {
		if got := f.Update(in); got != 0 {
			t.Errorf("call %d: output changed to %d with predicate always false", i, got)
		}
	}
}

func TestPredicateCalledOncePerStep(t *testing.T) {
	calls := 0
	f := New(func() bool {
		calls++
		return true
	}, 0)

	// Raw change: predicate queried once, result discarded.
	if got := f.Update(1); got != 0 {
		t.Errorf("change call: expected 0, got %d", got)
	}
	if calls != 1 {
		t.Errorf("expected 1 predicate call on the change step, got %d", calls)
	}

	// Unchanged raw: predicate queried once, result used.
	f.Update(1)
	if calls != 2 {
		t.Errorf("expected 2 predicate calls total, got %d", calls)
	}
}

func TestChangeResultDiscarded(t *testing.T) {
	// Even a predicate returning true on the change step must not make the
	// new value visible on that same call.
	f := New(func() bool { return true }, 0)
	if got := f.Update(1); got != 0 {
		t.Errorf("expected change step to return old stable 0, got %d", got)
	}
}

func TestIdempotentWhenStable(t *testing.T) {
	f := New(func() bool { return true }, 0)
	f.Update(1)
	f.Update(1)

	for i := 0; i < 10; i++ {
		if got := f.Update(1); got != 1 {
			t.Errorf("call %d: stable output drifted to %d", i, got)
		}
	}
}

func TestNilFilterSafe(t *testing.T) {
	var f *Filter
	if got := f.Update(1); got != 0 {
		t.Errorf("nil Update: expected 0, got %d", got)
	}
	if got := f.Output(); got != 0 {
		t.Errorf("nil Output: expected 0, got %d", got)
	}
}

func TestSettleReadyAfterQuietPeriod(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s := NewSettle(250 * time.Millisecond)

	if s.ReadyAt(now) {
		t.Error("should not be ready before any sample")
	}

	s.Observe(0, now)
	if s.ReadyAt(now.Add(200 * time.Millisecond)) {
		t.Error("should not be ready before the period elapses")
	}
	if !s.ReadyAt(now.Add(250 * time.Millisecond)) {
		t.Error("should be ready once the period elapses")
	}
}

func TestSettleRestartsOnChange(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s := NewSettle(250 * time.Millisecond)

	s.Observe(0, now)
	s.Observe(1, now.Add(100*time.Millisecond)) // change restarts the timer

	if s.ReadyAt(now.Add(250 * time.Millisecond)) {
		t.Error("timer should have restarted on the raw change")
	}
	if !s.ReadyAt(now.Add(350 * time.Millisecond)) {
		t.Error("should be ready 250ms after the change")
	}

	// Unchanged samples do not restart the timer.
	s.Observe(1, now.Add(400*time.Millisecond))
	if !s.ReadyAt(now.Add(400 * time.Millisecond)) {
		t.Error("repeated sample must not restart the timer")
	}
}

func TestSettleNormalizes(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s := NewSettle(100 * time.Millisecond)

	s.Observe(1, now)
	s.Observe(5, now.Add(50*time.Millisecond)) // 5 == 1 after normalization
	if !s.ReadyAt(now.Add(100 * time.Millisecond)) {
		t.Error("nonzero values are the same level; timer must not restart")
	}
}

func TestSettleDrivesFilter(t *testing.T) {
	// End-to-end: a noisy input settles only after staying put for 250ms.
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	now := start
	clock := func() time.Time { return now }

	s := NewSettle(250 * time.Millisecond)
	s.Observe(0, now)
	f := New(s.At(clock), 0)

	step := func(raw int) int {
		now = now.Add(100 * time.Millisecond)
		s.Observe(raw, now)
		return f.Update(raw)
	}

	// Bounce: 1, 0, 1 — never quiet long enough.
	if got := step(1); got != 0 {
		t.Errorf("bounce 1: expected 0, got %d", got)
	}
	if got := step(0); got != 0 {
		t.Errorf("bounce 2: expected 0, got %d", got)
	}
	if got := step(1); got != 0 {
		t.Errorf("bounce 3: expected 0, got %d", got)
	}

	// Hold high: accepted once 250ms of quiet accumulate.
	if got := step(1); got != 0 { // 100ms quiet
		t.Errorf("hold 1: expected 0, got %d", got)
	}
	if got := step(1); got != 0 { // 200ms quiet
		t.Errorf("hold 2: expected 0, got %d", got)
	}
	if got := step(1); got != 1 { // 300ms quiet
		t.Errorf("hold 3: expected 1, got %d", got)
	}
}

func TestNilSettleSafe(t *testing.T) {
	var s *Settle
	s.Observe(1, time.Now())
	if s.ReadyAt(time.Now()) {
		t.Error("nil Settle should never report ready")
	}
}
