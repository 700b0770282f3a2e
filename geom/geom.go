// SPDX-License-Identifier: Unlicense OR MIT

/*
Package geom implements integer points and rectangles for pixel
layout.

The coordinate space has the origin in the top left corner with the
axes extending right and down, like package image. Unlike
image.Rectangle, the types are generic over the integer type used for
coordinates.
*/
package geom

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// A Point is a two dimensional point.
type Point[T constraints.Integer] struct {
	X, Y T
}

// A Rectangle contains the points (X, Y) where Min.X <= X < Max.X,
// Min.Y <= Y < Max.Y. A well-formed Rect has Min.X <= Max.X and
// Min.Y <= Max.Y.
type Rect[T constraints.Integer] struct {
	Min, Max Point[T]
}

// Pt is shorthand for Point[T]{X: x, Y: y}.
func Pt[T constraints.Integer](x, y T) Point[T] {
	return Point[T]{X: x, Y: y}
}

// NewRect returns the rectangle spanning min to max. It panics if the
// rectangle is malformed.
func NewRect[T constraints.Integer](min, max Point[T]) Rect[T] {
	r := Rect[T]{Min: min, Max: max}
	if !r.wellFormed() {
		panic(fmt.Errorf("geom: malformed rectangle %v", r))
	}
	return r
}

// Rectangle is shorthand for NewRect(Pt(x0, y0), Pt(x1, y1)).
func Rectangle[T constraints.Integer](x0, y0, x1, y1 T) Rect[T] {
	return NewRect(Pt(x0, y0), Pt(x1, y1))
}

// Add returns the point p+p2.
func (p Point[T]) Add(p2 Point[T]) Point[T] {
	return Point[T]{X: p.X + p2.X, Y: p.Y + p2.Y}
}

// Sub returns the vector p-p2.
func (p Point[T]) Sub(p2 Point[T]) Point[T] {
	return Point[T]{X: p.X - p2.X, Y: p.Y - p2.Y}
}

// In reports whether p is in r.
func (p Point[T]) In(r Rect[T]) bool {
	return r.Contains(p)
}

func (p Point[T]) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Dx returns r's width.
func (r Rect[T]) Dx() T {
	return r.Max.X - r.Min.X
}

// Dy returns r's height.
func (r Rect[T]) Dy() T {
	return r.Max.Y - r.Min.Y
}

// Width is an alias for Dx.
func (r Rect[T]) Width() T { return r.Dx() }

// Height is an alias for Dy.
func (r Rect[T]) Height() T { return r.Dy() }

// Size returns r's width and height.
func (r Rect[T]) Size() Point[T] {
	return Point[T]{X: r.Dx(), Y: r.Dy()}
}

// Contains reports whether p lies within r. The rectangle is half
// open: points on the Max edges are outside.
func (r Rect[T]) Contains(p Point[T]) bool {
	return r.Min.X <= p.X && p.X < r.Max.X &&
		r.Min.Y <= p.Y && p.Y < r.Max.Y
}

// In reports whether every point in r is in s. An empty r is in any s.
func (r Rect[T]) In(s Rect[T]) bool {
	if r.Empty() {
		return true
	}
	return s.Min.X <= r.Min.X && r.Max.X <= s.Max.X &&
		s.Min.Y <= r.Min.Y && r.Max.Y <= s.Max.Y
}

// Empty reports whether r represents the empty area.
func (r Rect[T]) Empty() bool {
	return r.Min.X >= r.Max.X || r.Min.Y >= r.Max.Y
}

// Overlaps reports whether r and s have a non-empty intersection.
func (r Rect[T]) Overlaps(s Rect[T]) bool {
	return !r.Empty() && !s.Empty() &&
		r.Min.X < s.Max.X && s.Min.X < r.Max.X &&
		r.Min.Y < s.Max.Y && s.Min.Y < r.Max.Y
}

// Intersect returns the intersection of r and s. If they do not
// overlap, the result is the zero Rect.
func (r Rect[T]) Intersect(s Rect[T]) Rect[T] {
	if r.Min.X < s.Min.X {
		r.Min.X = s.Min.X
	}
	if r.Min.Y < s.Min.Y {
		r.Min.Y = s.Min.Y
	}
	if r.Max.X > s.Max.X {
		r.Max.X = s.Max.X
	}
	if r.Max.Y > s.Max.Y {
		r.Max.Y = s.Max.Y
	}
	if r.Empty() {
		return Rect[T]{}
	}
	return r
}

// Union returns the smallest rectangle containing r and s.
func (r Rect[T]) Union(s Rect[T]) Rect[T] {
	if r.Empty() {
		return s
	}
	if s.Empty() {
		return r
	}
	if r.Min.X > s.Min.X {
		r.Min.X = s.Min.X
	}
	if r.Min.Y > s.Min.Y {
		r.Min.Y = s.Min.Y
	}
	if r.Max.X < s.Max.X {
		r.Max.X = s.Max.X
	}
	if r.Max.Y < s.Max.Y {
		r.Max.Y = s.Max.Y
	}
	return r
}

// Add offsets r with the vector p.
func (r Rect[T]) Add(p Point[T]) Rect[T] {
	return Rect[T]{
		Point[T]{r.Min.X + p.X, r.Min.Y + p.Y},
		Point[T]{r.Max.X + p.X, r.Max.Y + p.Y},
	}
}

// Sub offsets r with the vector -p.
func (r Rect[T]) Sub(p Point[T]) Rect[T] {
	return Rect[T]{
		Point[T]{r.Min.X - p.X, r.Min.Y - p.Y},
		Point[T]{r.Max.X - p.X, r.Max.Y - p.Y},
	}
}

// PlaceAt returns a rectangle of the given size inside r, positioned
// along each axis according to h and v. Center places the leftover
// space evenly on both sides, truncating toward Min when it is odd.
// The result is contained in r whenever size fits.
func (r Rect[T]) PlaceAt(size Point[T], h, v Align) Rect[T] {
	pos := Point[T]{
		X: offset(h, r.Min.X, r.Max.X, size.X),
		Y: offset(v, r.Min.Y, r.Max.Y, size.Y),
	}
	return Rect[T]{Min: pos, Max: pos.Add(size)}
}

func (r Rect[T]) wellFormed() bool {
	return r.Min.X <= r.Max.X && r.Min.Y <= r.Max.Y
}

func (r Rect[T]) String() string {
	return r.Min.String() + "-" + r.Max.String()
}
