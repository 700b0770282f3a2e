// SPDX-License-Identifier: Unlicense OR MIT

package layout

import (
	"tidebar.org/geom"
	"tidebar.org/paint"
)

// Widget is an element of the bar with a size preference, an assigned
// area and the ability to render itself.
type Widget interface {
	// Name identifies the widget in logs and errors.
	Name() string
	// Area returns the rectangle set by the most recent Resize.
	Area() geom.Rect[int]
	// HAlign and VAlign are the preferred placement of the widget's
	// content inside its area.
	HAlign() geom.Align
	VAlign() geom.Align
	DesiredHeight() int
	// DesiredWidth returns the width the widget wants at the given
	// height. It must not modify the widget.
	DesiredWidth(height int) int
	// Resize assigns the widget its area. It may be called any number
	// of times.
	Resize(r geom.Rect[int])
	// Draw renders the widget into ctx, writing only inside
	// ctx.Rect(). A widget may skip drawing when nothing changed and
	// ctx.FullRedraw is false.
	Draw(ctx *paint.Ctx) error
}

// Margins is empty space around a widget's content.
type Margins struct {
	Top, Bottom, Left, Right int
}

// UniformMargins returns Margins with v on every edge.
func UniformMargins(v int) Margins {
	return Margins{Top: v, Bottom: v, Left: v, Right: v}
}

// V returns the total vertical margin.
func (m Margins) V() int {
	return m.Top + m.Bottom
}

// H returns the total horizontal margin.
func (m Margins) H() int {
	return m.Left + m.Right
}

// Shrink returns r with the margins removed. An axis whose margins
// exceed r collapses to r's midpoint.
func (m Margins) Shrink(r geom.Rect[int]) geom.Rect[int] {
	out := geom.Rect[int]{
		Min: r.Min.Add(geom.Pt(m.Left, m.Top)),
		Max: r.Max.Sub(geom.Pt(m.Right, m.Bottom)),
	}
	if out.Min.X > out.Max.X {
		c := r.Min.X + r.Dx()/2
		out.Min.X, out.Max.X = c, c
	}
	if out.Min.Y > out.Max.Y {
		c := r.Min.Y + r.Dy()/2
		out.Min.Y, out.Max.Y = c, c
	}
	return out
}
