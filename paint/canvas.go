// SPDX-License-Identifier: Unlicense OR MIT

package paint

import (
	"fmt"
	"image"

	"tidebar.org/geom"
)

// Buffer is the platform buffer behind a Canvas. It is passed through
// to widgets and presenters and never dereferenced by this package.
type Buffer interface {
	// Fd returns the file descriptor sharing the pixel memory, or -1
	// if the memory is not shareable.
	Fd() int
}

// Canvas is the pixel storage for a whole surface.
type Canvas struct {
	buf  Buffer
	pix  []byte
	size geom.Point[int]

	damage     []geom.Rect[int]
	fullRedraw bool
	// live is set while a Ctx is handed out.
	live bool
}

// NewCanvas returns a canvas over pix, which must hold at least
// 4*size.X*size.Y bytes laid out row by row.
func NewCanvas(buf Buffer, pix []byte, size geom.Point[int]) *Canvas {
	if size.X < 0 || size.Y < 0 {
		panic(fmt.Errorf("paint: negative canvas size %v", size))
	}
	if n := 4 * size.X * size.Y; len(pix) < n {
		panic(fmt.Errorf("paint: canvas of size %v needs %d bytes, got %d", size, n, len(pix)))
	}
	return &Canvas{buf: buf, pix: pix, size: size}
}

// Bounds returns the rectangle covered by the canvas.
func (c *Canvas) Bounds() geom.Rect[int] {
	return geom.Rect[int]{Max: c.size}
}

// Buffer returns the platform buffer.
func (c *Canvas) Buffer() Buffer {
	return c.buf
}

// Pix returns the raw pixel memory.
func (c *Canvas) Pix() []byte {
	return c.pix
}

// SetFullRedraw marks the current frame as needing a full redraw.
// Recorded damage becomes advisory.
func (c *Canvas) SetFullRedraw() {
	c.fullRedraw = true
}

// FullRedraw reports whether the current frame needs a full redraw.
func (c *Canvas) FullRedraw() bool {
	return c.fullRedraw
}

// Damage returns the damage recorded so far this frame.
func (c *Canvas) Damage() []geom.Rect[int] {
	return c.damage
}

// EndFrame returns the frame's damage and full redraw flag and resets
// both for the next frame. The returned slice is owned by the caller.
func (c *Canvas) EndFrame() (damage []geom.Rect[int], full bool) {
	damage, full = c.damage, c.fullRedraw
	c.damage, c.fullRedraw = nil, false
	return damage, full
}

// Draw calls fn with a Ctx scoped to r, which must lie within the
// canvas bounds. The Ctx is valid only until fn returns. Draw panics if
// called while another Ctx is live.
func (c *Canvas) Draw(r geom.Rect[int], fn func(ctx *Ctx) error) error {
	if c.live {
		panic("paint: Draw called while another Ctx is live")
	}
	if !r.In(c.Bounds()) {
		panic(fmt.Errorf("paint: draw rectangle %v outside canvas %v", r, c.Bounds()))
	}
	c.live = true
	ctx := &Ctx{canvas: c, rect: r}
	defer func() {
		ctx.canvas = nil
		c.live = false
	}()
	return fn(ctx)
}

// At returns the color of the pixel at p.
func (c *Canvas) At(p geom.Point[int]) Color {
	if !c.Bounds().Contains(p) {
		return Transparent
	}
	i := c.index(p)
	px := c.pix[i : i+4 : i+4]
	return Color{B: px[0], G: px[1], R: px[2], A: px[3]}
}

// Image returns a copy of the canvas contents.
func (c *Canvas) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, c.size.X, c.size.Y))
	for y := 0; y < c.size.Y; y++ {
		for x := 0; x < c.size.X; x++ {
			img.SetNRGBA(x, y, c.At(geom.Pt(x, y)).NRGBA())
		}
	}
	return img
}

// index returns the byte offset of p. The row stride is the surface
// width, independent of any Ctx rectangle.
func (c *Canvas) index(p geom.Point[int]) int {
	return 4 * (p.X + p.Y*c.size.X)
}
