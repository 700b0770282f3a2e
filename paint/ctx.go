// SPDX-License-Identifier: Unlicense OR MIT

package paint

import (
	"fmt"

	"tidebar.org/geom"
)

// Ctx is a write capability for one rectangle of a Canvas, valid for a
// single Canvas.Draw call.
type Ctx struct {
	canvas *Canvas
	rect   geom.Rect[int]
}

// Rect returns the rectangle the context may write to, in surface
// coordinates.
func (c *Ctx) Rect() geom.Rect[int] {
	return c.rect
}

// Buffer returns the platform buffer backing the canvas.
func (c *Ctx) Buffer() Buffer {
	return c.valid().buf
}

// FullRedraw reports whether the whole surface will be presented this
// frame, regardless of damage.
func (c *Ctx) FullRedraw() bool {
	return c.valid().fullRedraw
}

// SetFullRedraw requests a full redraw for the current frame.
func (c *Ctx) SetFullRedraw() {
	c.valid().fullRedraw = true
}

// Put writes col at p. Writing outside Rect is a programming error and
// panics.
func (c *Ctx) Put(p geom.Point[int], col Color) {
	cv := c.valid()
	if !c.rect.Contains(p) {
		panic(fmt.Errorf("paint: put at %v outside %v", p, c.rect))
	}
	i := cv.index(p)
	px := (*[4]byte)(cv.pix[i : i+4])
	*px = col.ARGB8888()
}

// At returns the color at p, which must be inside Rect.
func (c *Ctx) At(p geom.Point[int]) Color {
	cv := c.valid()
	if !c.rect.Contains(p) {
		panic(fmt.Errorf("paint: read at %v outside %v", p, c.rect))
	}
	return cv.At(p)
}

// Fill sets every pixel of r to col. r must lie within Rect.
func (c *Ctx) Fill(r geom.Rect[int], col Color) {
	if !r.In(c.rect) {
		panic(fmt.Errorf("paint: fill of %v outside %v", r, c.rect))
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			c.Put(geom.Pt(x, y), col)
		}
	}
}

// Damage records r as changed this frame. r is clipped to Rect; empty
// rectangles are dropped.
func (c *Ctx) Damage(r geom.Rect[int]) {
	cv := c.valid()
	r = r.Intersect(c.rect)
	if r.Empty() {
		return
	}
	cv.damage = append(cv.damage, r)
}

func (c *Ctx) valid() *Canvas {
	if c.canvas == nil {
		panic("paint: use of Ctx after Draw returned")
	}
	return c.canvas
}
