// SPDX-License-Identifier: Unlicense OR MIT

package geom

import (
	"fmt"
	"strings"

	"golang.org/x/exp/constraints"
)

// Align is the placement of a smaller extent inside a larger one
// along a single axis. The zero value is Center.
type Align uint8

const (
	Center Align = iota
	Start
	End
)

// offset returns the position of an extent of length size placed in
// [lo, hi).
func offset[T constraints.Integer](a Align, lo, hi, size T) T {
	switch a {
	case Start:
		return lo
	case End:
		return hi - size
	default:
		// Unsigned types must not see a negative intermediate when
		// size fits.
		return lo + (hi-lo-size)/2
	}
}

func (a Align) String() string {
	switch a {
	case Start:
		return "Start"
	case Center:
		return "Center"
	case End:
		return "End"
	default:
		panic("unreachable")
	}
}

// MarshalText implements encoding.TextMarshaler.
func (a Align) MarshalText() ([]byte, error) {
	return []byte(strings.ToLower(a.String())), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. It accepts
// "start", "center" and "end" in any case.
func (a *Align) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "start":
		*a = Start
	case "center", "":
		*a = Center
	case "end":
		*a = End
	default:
		return fmt.Errorf("geom: unknown alignment %q", text)
	}
	return nil
}
