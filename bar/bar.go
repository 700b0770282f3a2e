// SPDX-License-Identifier: Unlicense OR MIT

/*
Package bar drives frames: it lays out the widgets across the canvas,
draws them one at a time and hands the result to a Presenter.
*/
package bar

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"tidebar.org/geom"
	"tidebar.org/layout"
	"tidebar.org/paint"
)

// Options configure a Bar.
type Options struct {
	// Interval is the time between frames. Defaults to one second.
	Interval time.Duration
	// Background fills the canvas before a full redraw. The zero
	// value is paint.Black.
	Background paint.Color
	// Logger defaults to the standard logger.
	Logger *log.Logger
	// Verbose enables per-frame trace logging.
	Verbose bool
}

// Presenter commits a finished frame to the screen.
type Presenter interface {
	// Present is called after every frame with damage or a full
	// redraw. Damage is advisory when full is set.
	Present(c *paint.Canvas, damage []geom.Rect[int], full bool) error
}

// Bar owns the canvas and the widgets drawn on it.
type Bar struct {
	opts    Options
	canvas  *paint.Canvas
	widgets []layout.Widget
	// stale is set when the widgets must be laid out before the next
	// frame.
	stale bool
}

// New returns a bar drawing widgets, in left to right priority order
// as understood by layout.Center, onto canvas.
func New(opts Options, canvas *paint.Canvas, widgets ...layout.Widget) *Bar {
	if opts.Interval <= 0 {
		opts.Interval = time.Second
	}
	if opts.Background == (paint.Color{}) {
		opts.Background = paint.Black
	}
	return &Bar{opts: opts, canvas: canvas, widgets: widgets, stale: true}
}

// Canvas returns the canvas frames are drawn on.
func (b *Bar) Canvas() *paint.Canvas {
	return b.canvas
}

// Widgets returns the bar's widgets.
func (b *Bar) Widgets() []layout.Widget {
	return b.widgets
}

// Invalidate schedules a layout pass before the next frame, for
// example after a widget's desired width changed.
func (b *Bar) Invalidate() {
	b.stale = true
}

// Layout assigns every widget its area and schedules a full redraw.
func (b *Bar) Layout() {
	bounds := b.canvas.Bounds()
	b.tracef("bar: layout %v", bounds)
	layout.Center(b.widgets, bounds)
	for _, w := range b.widgets {
		b.tracef("bar: %s at %v", w.Name(), w.Area())
	}
	b.canvas.Draw(bounds, func(ctx *paint.Ctx) error {
		ctx.Fill(bounds, b.opts.Background)
		ctx.SetFullRedraw()
		return nil
	})
	b.stale = false
}

// Frame draws every widget and returns the frame's damage. A widget
// that fails to draw is logged and reported in the joined error; the
// remaining widgets are still drawn.
func (b *Bar) Frame() (damage []geom.Rect[int], full bool, err error) {
	if b.stale {
		b.Layout()
	}
	bounds := b.canvas.Bounds()
	var errs []error
	for _, w := range b.widgets {
		r := w.Area().Intersect(bounds)
		if r.Empty() {
			continue
		}
		if err := b.canvas.Draw(r, w.Draw); err != nil {
			err = fmt.Errorf("%s: %w", w.Name(), err)
			b.logger().Printf("bar: draw: %v", err)
			errs = append(errs, err)
		}
	}
	damage, full = b.canvas.EndFrame()
	b.tracef("bar: frame damage %v full %v", damage, full)
	return damage, full, errors.Join(errs...)
}

// Run draws a frame every interval and after every update until ctx
// is done. Updates are applied on the calling goroutine, between
// frames. Widget errors are logged; presentation errors stop Run.
func (b *Bar) Run(ctx context.Context, p Presenter, updates <-chan func()) error {
	t := time.NewTicker(b.opts.Interval)
	defer t.Stop()
	for {
		if err := b.present(p); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case f, ok := <-updates:
			if !ok {
				updates = nil
				continue
			}
			f()
		case <-t.C:
		}
	}
}

func (b *Bar) present(p Presenter) error {
	damage, full, _ := b.Frame()
	if len(damage) == 0 && !full {
		return nil
	}
	if err := p.Present(b.canvas, damage, full); err != nil {
		return fmt.Errorf("bar: present: %w", err)
	}
	return nil
}

func (b *Bar) logger() *log.Logger {
	if b.opts.Logger != nil {
		return b.opts.Logger
	}
	return log.Default()
}

func (b *Bar) tracef(format string, args ...interface{}) {
	if b.opts.Verbose {
		b.logger().Printf(format, args...)
	}
}
