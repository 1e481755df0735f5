// Package gpio provides GPIO input reading with hardware abstraction.
// The real implementation uses the Linux GPIO character device.
// The fake implementation allows testing without hardware.
package gpio

import (
	"fmt"
	"strconv"
	"strings"
)

// Reader reads raw GPIO input levels.
type Reader interface {
	// Read returns the raw level (0 or 1) of each configured pin, in
	// configuration order.
	Read() ([]int, error)

	// Close releases GPIO resources.
	Close() error
}

// Pin names one monitored GPIO line (BCM numbering).
type Pin struct {
	Name string
	Line int
}

// DefaultPinSpec monitors BCM pins 26 and 16, matching the original
// deployment wiring.
const DefaultPinSpec = "gpio26=26,gpio16=16"

// ParsePins parses a comma-separated list of name=line pairs, e.g.
// "door=26,bell=16". A bare line number is allowed and named gpio<line>.
func ParsePins(spec string) ([]Pin, error) {
	if strings.TrimSpace(spec) == "" {
		return nil, fmt.Errorf("empty pin spec")
	}

	var pins []Pin
	seen := map[string]bool{}
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		name := ""
		lineStr := part
		if i := strings.IndexByte(part, '='); i >= 0 {
			name = strings.TrimSpace(part[:i])
			lineStr = strings.TrimSpace(part[i+1:])
		}

		line, err := strconv.Atoi(lineStr)
		if err != nil || line < 0 {
			return nil, fmt.Errorf("invalid pin %q: bad line number %q", part, lineStr)
		}
		if name == "" {
			name = "gpio" + lineStr
		}
		if seen[name] {
			return nil, fmt.Errorf("duplicate pin name %q", name)
		}
		seen[name] = true

		pins = append(pins, Pin{Name: name, Line: line})
	}

	if len(pins) == 0 {
		return nil, fmt.Errorf("empty pin spec")
	}
	return pins, nil
}

// Names returns the pin names in configuration order.
func Names(pins []Pin) []string {
	names := make([]string, len(pins))
	for i, p := range pins {
		names[i] = p.Name
	}
	return names
}
