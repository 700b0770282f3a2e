// SPDX-License-Identifier: Unlicense OR MIT

package bar

import (
	"bytes"
	"context"
	"errors"
	"log"
	"strings"
	"testing"
	"time"

	"tidebar.org/geom"
	"tidebar.org/paint"
)

type nopBuffer struct{}

func (nopBuffer) Fd() int { return -1 }

// block fills its area with a color whenever it is dirty.
type block struct {
	name  string
	width int
	col   paint.Color
	err   error
	area  geom.Rect[int]
	dirty bool
	draws int
}

func (b *block) Name() string                { return b.name }
func (b *block) Area() geom.Rect[int]        { return b.area }
func (b *block) HAlign() geom.Align          { return geom.Center }
func (b *block) VAlign() geom.Align          { return geom.Center }
func (b *block) DesiredHeight() int          { return 0 }
func (b *block) DesiredWidth(height int) int { return b.width }
func (b *block) Resize(r geom.Rect[int])     { b.area = r; b.dirty = true }

func (b *block) Draw(ctx *paint.Ctx) error {
	b.draws++
	if !b.dirty && !ctx.FullRedraw() {
		return nil
	}
	ctx.Fill(ctx.Rect(), b.col)
	ctx.Damage(ctx.Rect())
	b.dirty = false
	return b.err
}

func newCanvas(w, h int) *paint.Canvas {
	return paint.NewCanvas(nopBuffer{}, make([]byte, 4*w*h), geom.Pt(w, h))
}

var (
	red  = paint.Color{A: 0xff, R: 0xff}
	blue = paint.Color{A: 0xff, B: 0xff}
)

func TestFrameLayoutAndDraw(t *testing.T) {
	a := &block{name: "a", width: 20, col: red}
	b := &block{name: "b", width: 10, col: blue}
	bar := New(Options{}, newCanvas(100, 4), a, b)
	damage, full, err := bar.Frame()
	if err != nil {
		t.Fatal(err)
	}
	if !full {
		t.Error("first frame is not a full redraw")
	}
	if a.area != geom.Rectangle(30, 0, 50, 4) || b.area != geom.Rectangle(50, 0, 60, 4) {
		t.Errorf("areas %v %v", a.area, b.area)
	}
	if len(damage) != 2 {
		t.Errorf("damage %v", damage)
	}
	c := bar.Canvas()
	if c.At(geom.Pt(30, 0)) != red || c.At(geom.Pt(59, 3)) != blue || c.At(geom.Pt(0, 0)) != paint.Black {
		t.Error("unexpected canvas contents")
	}

	damage, full, err = bar.Frame()
	if err != nil || full || len(damage) != 0 {
		t.Errorf("idle frame: damage %v full %v err %v", damage, full, err)
	}

	a.dirty = true
	damage, _, _ = bar.Frame()
	if len(damage) != 1 || damage[0] != a.area {
		t.Errorf("damage %v, want [%v]", damage, a.area)
	}
}

func TestFrameErrorIsolation(t *testing.T) {
	errBoom := errors.New("boom")
	a := &block{name: "first", width: 10, col: red}
	b := &block{name: "broken", width: 10, col: blue, err: errBoom}
	c := &block{name: "last", width: 10, col: red}
	var logs bytes.Buffer
	bar := New(Options{Logger: log.New(&logs, "", 0)}, newCanvas(60, 2), a, b, c)
	damage, _, err := bar.Frame()
	if !errors.Is(err, errBoom) || !strings.Contains(err.Error(), "broken") {
		t.Errorf("error %v", err)
	}
	if c.draws != 1 {
		t.Error("widget after the failing one was not drawn")
	}
	if len(damage) != 3 {
		t.Errorf("damage %v", damage)
	}
	if bar.Canvas().At(a.area.Min) != red {
		t.Error("earlier widget's pixels lost")
	}
	if !strings.Contains(logs.String(), "broken: boom") {
		t.Errorf("log %q", logs.String())
	}
}

func TestInvalidate(t *testing.T) {
	a := &block{name: "a", width: 10, col: red}
	bar := New(Options{}, newCanvas(40, 2), a)
	bar.Frame()
	a.width = 20
	bar.Invalidate()
	_, full, _ := bar.Frame()
	if !full || a.area.Dx() != 20 {
		t.Errorf("relayout: full %v area %v", full, a.area)
	}
}

func TestFrameSkipsOffCanvasWidgets(t *testing.T) {
	// 30+10 fits the area, but the left half only has 20 pixels.
	a := &block{name: "a", width: 30, col: red}
	b := &block{name: "b", width: 10, col: blue}
	bar := New(Options{}, newCanvas(40, 2), a, b)
	if _, _, err := bar.Frame(); err != nil {
		t.Fatal(err)
	}
	if a.area.Min.X >= 0 {
		t.Fatalf("expected area hanging off the left edge, got %v", a.area)
	}
	if bar.Canvas().At(geom.Pt(0, 0)) != red {
		t.Error("visible part of clipped widget not drawn")
	}
}

type recorder struct {
	frames chan bool
}

func (r *recorder) Present(c *paint.Canvas, damage []geom.Rect[int], full bool) error {
	r.frames <- full
	return nil
}

func TestRun(t *testing.T) {
	a := &block{name: "a", width: 10, col: red}
	bar := New(Options{Interval: time.Hour}, newCanvas(20, 2), a)
	rec := &recorder{frames: make(chan bool, 4)}
	updates := make(chan func())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- bar.Run(ctx, rec, updates) }()

	if full := <-rec.frames; !full {
		t.Error("first presented frame is not full")
	}
	updates <- func() { a.dirty = true }
	select {
	case full := <-rec.frames:
		if full {
			t.Error("update caused a full redraw")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("update did not trigger a frame")
	}
	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("Run returned %v", err)
	}
}

type failing struct{}

func (failing) Present(*paint.Canvas, []geom.Rect[int], bool) error {
	return errors.New("surface gone")
}

func TestRunPresentError(t *testing.T) {
	bar := New(Options{}, newCanvas(10, 1), &block{name: "a", width: 5, col: red})
	err := bar.Run(context.Background(), failing{}, nil)
	if err == nil || !strings.Contains(err.Error(), "surface gone") {
		t.Errorf("Run returned %v", err)
	}
}
