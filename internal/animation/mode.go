// Package animation computes per-light intensity and color for a frame.
//
// Everything here is a pure function of its inputs: the caller owns the
// lights and applies the returned samples.
package animation

import (
	"errors"
	"fmt"
	"strings"
)

// Mode selects the formula that drives the lights.
type Mode uint8

// Animation modes.
const (
	Static Mode = iota
	Wave
	Pulse
	Rainbow
)

// ErrUnknownMode is returned when parsing an unrecognized mode name.
var ErrUnknownMode = errors.New("animation: unknown mode")

var modeNames = [...]string{
	Static:  "static",
	Wave:    "wave",
	Pulse:   "pulse",
	Rainbow: "rainbow",
}

// Modes returns every mode in cycling order.
func Modes() []Mode {
	return []Mode{Static, Wave, Pulse, Rainbow}
}

// Valid reports whether m is one of the defined modes.
func (m Mode) Valid() bool {
	return int(m) < len(modeNames)
}

func (m Mode) String() string {
	if !m.Valid() {
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
	return modeNames[m]
}

// Next returns the mode after m, wrapping around.
func (m Mode) Next() Mode {
	return Mode((int(m) + 1) % len(modeNames))
}

// ParseMode parses a mode name, ignoring case and surrounding spaces.
func ParseMode(s string) (Mode, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range modeNames {
		if n == name {
			return Mode(i), nil
		}
	}
	return Static, fmt.Errorf("%q: %w", s, ErrUnknownMode)
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("mode %d: %w", uint8(m), ErrUnknownMode)
	}
	return []byte(modeNames[m]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Set implements flag.Value.
func (m *Mode) Set(s string) error {
	return m.UnmarshalText([]byte(s))
}
