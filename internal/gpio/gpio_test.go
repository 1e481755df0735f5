package gpio

import (
	"errors"
	"testing"
)

func TestParsePins(t *testing.T) {
	pins, err := ParsePins("door=26,bell=16")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pins) != 2 {
		t.Fatalf("expected 2 pins, got %d", len(pins))
	}
	if pins[0].Name != "door" || pins[0].Line != 26 {
		t.Errorf("pin 0: expected door=26, got %s=%d", pins[0].Name, pins[0].Line)
	}
	if pins[1].Name != "bell" || pins[1].Line != 16 {
		t.Errorf("pin 1: expected bell=16, got %s=%d", pins[1].Name, pins[1].Line)
	}
}

func TestParsePinsBareNumbers(t *testing.T) {
	pins, err := ParsePins("26, 16")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pins[0].Name != "gpio26" {
		t.Errorf("expected auto name gpio26, got %s", pins[0].Name)
	}
	if pins[1].Name != "gpio16" || pins[1].Line != 16 {
		t.Errorf("expected gpio16=16, got %s=%d", pins[1].Name, pins[1].Line)
	}
}

func TestParsePinsDefaultSpec(t *testing.T) {
	pins, err := ParsePins(DefaultPinSpec)
	if err != nil {
		t.Fatalf("default spec must parse, got error: %v", err)
	}
	if len(pins) != 2 {
		t.Errorf("expected 2 default pins, got %d", len(pins))
	}
}

func TestParsePinsErrors(t *testing.T) {
	cases := []string{
		"",
		"   ",
		",",
		"door=abc",
		"door=-1",
		"door=26,door=16",
	}
	for _, spec := range cases {
		if _, err := ParsePins(spec); err == nil {
			t.Errorf("spec %q: expected error", spec)
		}
	}
}

func TestNames(t *testing.T) {
	pins := []Pin{{Name: "a", Line: 1}, {Name: "b", Line: 2}}
	names := Names(pins)
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Errorf("unexpected names: %v", names)
	}
}

func TestFakeReaderRead(t *testing.T) {
	samples := [][]int{
		{1, 0},
		{0, 1},
		{1, 1},
	}

	f := NewFakeReader(samples)

	for i, want := range samples {
		got, err := f.Read()
		if err != nil {
			t.Fatalf("sample %d: unexpected error: %v", i, err)
		}
		if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
			t.Errorf("sample %d: expected %v, got %v", i, want, got)
		}
	}

	// Next read repeats the last sample set.
	got, err := f.Read()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got[0] != 1 || got[1] != 1 {
		t.Errorf("repeat read: expected [1 1], got %v", got)
	}
}

func TestFakeReaderNoSamples(t *testing.T) {
	f := NewFakeReader(nil)

	if _, err := f.Read(); err == nil {
		t.Error("expected error with no samples")
	}
}

func TestFakeReaderError(t *testing.T) {
	f := NewFakeReader([][]int{{1}})
	f.ReadError = errors.New("simulated error")

	_, err := f.Read()
	if err == nil {
		t.Error("expected error to be returned")
	}
	if err.Error() != "simulated error" {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestFakeReaderCloseAndReset(t *testing.T) {
	f := NewFakeReader([][]int{{1, 0}, {0, 1}})

	if f.Closed {
		t.Error("should not be closed initially")
	}
	if err := f.Close(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if !f.Closed {
		t.Error("should be closed after Close()")
	}

	f.Read()
	f.Reset()

	got, _ := f.Read()
	if got[0] != 1 || got[1] != 0 {
		t.Errorf("after reset: expected [1 0], got %v", got)
	}
}
