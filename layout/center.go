// SPDX-License-Identifier: Unlicense OR MIT

package layout

import (
	"fmt"

	"tidebar.org/geom"
)

// Center lays out widgets from the middle of area outward.
//
// Every widget gets the full height of area and its desired width at
// that height. If the widths do not fit, they are all multiplied by
// the truncated ratio area.Dx()/total, which is zero whenever it is
// less than one.
//
// With an odd number of widgets the first is centered in area. The
// rest alternate between the left half, growing leftward from the
// center, and the right half, growing rightward, starting with the
// left. With an even number the first two pieces meet at the
// horizontal midpoint.
//
// Each widget is resized exactly once.
func Center(widgets []Widget, area geom.Rect[int]) {
	if len(widgets) == 0 {
		return
	}
	width, height := area.Dx(), area.Dy()
	widths := make([]int, len(widgets))
	total := 0
	for i, w := range widgets {
		dw := w.DesiredWidth(height)
		if dw < 0 {
			panic(fmt.Errorf("layout: widget %q wants negative width %d", w.Name(), dw))
		}
		widths[i] = dw
		total += dw
	}
	if total > width {
		ratio := width / total
		for i := range widths {
			widths[i] *= ratio
		}
	}

	mid := area.Min.X + width/2
	left := geom.Rect[int]{Min: area.Min, Max: geom.Pt(mid, area.Max.Y)}
	right := geom.Rect[int]{Min: geom.Pt(mid, area.Min.Y), Max: area.Max}

	if len(widgets)%2 == 1 {
		r := area.PlaceAt(geom.Pt(widths[0], height), geom.Center, geom.Center)
		widgets[0].Resize(r)
		// Cut the halves back to the center piece's edges. Offsetting by
		// half its width from mid would overlap it by a pixel when the
		// width is odd.
		left.Max.X = r.Min.X
		right.Min.X = r.Max.X
		if left.Min.X > left.Max.X || right.Min.X > right.Max.X {
			panic(fmt.Errorf("layout: center widget %q of width %d does not fit in %v", widgets[0].Name(), widths[0], area))
		}
		widgets, widths = widgets[1:], widths[1:]
	}

	for i, w := range widgets {
		size := geom.Pt(widths[i], height)
		if i%2 == 0 {
			r := left.PlaceAt(size, geom.End, geom.Center)
			w.Resize(r)
			left.Max.X -= r.Dx()
		} else {
			r := right.PlaceAt(size, geom.Start, geom.Center)
			w.Resize(r)
			right.Min.X += r.Dx()
		}
	}
}
