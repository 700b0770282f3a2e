// SPDX-License-Identifier: Unlicense OR MIT

/*
Package font loads the typefaces available to text widgets.

The Go fonts and Roboto are built in. Faces are built at a pixel size,
so a face of size 20 has an em height of 20 pixels.
*/
package font

import (
	"fmt"
	"os"
	"sync"

	"eliasnaur.com/font/roboto/robotoregular"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Typeface names a registered font.
type Typeface string

const (
	Mono   Typeface = "Go Mono"
	Sans   Typeface = "Go"
	Roboto Typeface = "Roboto"

	// Default is used when no typeface is named.
	Default = Mono
)

type entry struct {
	once sync.Once
	src  []byte
	font *opentype.Font
	err  error
}

var (
	mu       sync.Mutex
	registry = map[Typeface]*entry{
		Mono:   {src: gomono.TTF},
		Sans:   {src: goregular.TTF},
		Roboto: {src: robotoregular.TTF},
	}
)

// Register adds or replaces a typeface from OpenType or TrueType
// data. The data is parsed on first use.
func Register(name Typeface, src []byte) {
	mu.Lock()
	defer mu.Unlock()
	registry[name] = &entry{src: src}
}

// RegisterFile registers the font file at path under name.
func RegisterFile(name Typeface, path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("font: %w", err)
	}
	Register(name, src)
	return nil
}

// Parse returns the parsed font for name. The empty name selects
// Default.
func Parse(name Typeface) (*opentype.Font, error) {
	if name == "" {
		name = Default
	}
	mu.Lock()
	e, ok := registry[name]
	mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("font: unknown typeface %q", name)
	}
	e.once.Do(func() {
		e.font, e.err = opentype.Parse(e.src)
		if e.err != nil {
			e.err = fmt.Errorf("font: failed to parse %q: %w", name, e.err)
		}
	})
	return e.font, e.err
}

// Face returns a face of name at a size of px pixels.
func Face(name Typeface, px int) (xfont.Face, error) {
	if px <= 0 {
		return nil, fmt.Errorf("font: invalid size %d", px)
	}
	f, err := Parse(name)
	if err != nil {
		return nil, err
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    float64(px),
		DPI:     72,
		Hinting: xfont.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("font: %q at %dpx: %w", name, px, err)
	}
	return face, nil
}

// Advance returns the advance width of '0' in face, rounded to whole
// pixels. For monospace faces it is the width of every glyph.
func Advance(face xfont.Face) int {
	adv, ok := face.GlyphAdvance('0')
	if !ok {
		return face.Metrics().Height.Round() / 2
	}
	return adv.Round()
}
