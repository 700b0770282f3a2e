// SPDX-License-Identifier: Unlicense OR MIT

package paint

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is a non-premultiplied 32-bit color.
type Color struct {
	A, R, G, B uint8
}

var (
	Black       = Color{A: 0xff}
	White       = Color{A: 0xff, R: 0xff, G: 0xff, B: 0xff}
	Transparent = Color{}
)

// ARGB8888 returns c in the memory layout of the wl_shm ARGB8888
// format: a little-endian 32-bit word, so blue comes first.
func (c Color) ARGB8888() [4]byte {
	return [4]byte{c.B, c.G, c.R, c.A}
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}.RGBA()
}

// NRGBA converts c to the image/color representation.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// FromNRGBA converts an image/color value.
func FromNRGBA(c color.NRGBA) Color {
	return Color{A: c.A, R: c.R, G: c.G, B: c.B}
}

// ParseColor parses "#rrggbb", "#rgb" or "#rrggbbaa". Colors without
// an alpha component are opaque.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	alpha := uint8(0xff)
	if len(s) == 9 && s[0] == '#' {
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("paint: invalid color %q: %w", s, err)
		}
		alpha = uint8(a)
		s = s[:7]
	}
	if len(s) != 4 && len(s) != 7 {
		return Color{}, fmt.Errorf("paint: invalid color %q", s)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("paint: invalid color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return Color{A: alpha, R: r, G: g, B: b}, nil
}

// String returns c in the "#rrggbbaa" form accepted by ParseColor.
func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// MarshalText implements encoding.TextMarshaler.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Color) UnmarshalText(text []byte) error {
	v, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// Blend returns src drawn over dst with the given coverage, where 0
// leaves dst unchanged and 0xff replaces it with src.
func Blend(dst, src Color, coverage uint8) Color {
	switch coverage {
	case 0:
		return dst
	case 0xff:
		return src
	}
	t := float64(coverage) / 0xff
	d := colorful.Color{R: float64(dst.R) / 0xff, G: float64(dst.G) / 0xff, B: float64(dst.B) / 0xff}
	s := colorful.Color{R: float64(src.R) / 0xff, G: float64(src.G) / 0xff, B: float64(src.B) / 0xff}
	r, g, b := d.BlendRgb(s, t).Clamped().RGB255()
	a := float64(dst.A) + (float64(src.A)-float64(dst.A))*t
	return Color{A: uint8(a + .5), R: r, G: g, B: b}
}
