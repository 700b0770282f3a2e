// SPDX-License-Identifier: Unlicense OR MIT

package widget

import (
	"fmt"
	"strconv"

	"golang.org/x/exp/slices"

	"tidebar.org/font"
	"tidebar.org/geom"
	"tidebar.org/internal/hypr"
	"tidebar.org/paint"
)

// WorkspacesConfig configures a Workspaces widget.
type WorkspacesConfig struct {
	DesiredHeight  int
	HAlign, VAlign geom.Align
	// Fg and Bg color inactive cells, ActiveFg and ActiveBg the
	// focused one. ActiveFg defaults to Bg and ActiveBg to Fg.
	Fg, Bg             paint.Color
	ActiveFg, ActiveBg paint.Color
	Typeface           font.Typeface
	// CellWidth is the width of one workspace cell. If zero, cells
	// are square.
	CellWidth int
}

// Workspaces shows one cell per workspace, highlighting the active
// one.
type Workspaces struct {
	name string
	cfg  WorkspacesConfig
	area geom.Rect[int]

	ids    []int
	active int
	cells  []*TextBox
	dirty  bool
}

func NewWorkspaces(name string, cfg WorkspacesConfig) (*Workspaces, error) {
	if cfg.DesiredHeight < 0 || cfg.CellWidth < 0 {
		return nil, fmt.Errorf("widget: %s: negative size in config", name)
	}
	if _, err := font.Parse(cfg.Typeface); err != nil {
		return nil, fmt.Errorf("widget: %s: %w", name, err)
	}
	if cfg.Fg == (paint.Color{}) {
		cfg.Fg = paint.White
	}
	if cfg.Bg == (paint.Color{}) {
		cfg.Bg = paint.Black
	}
	if cfg.ActiveFg == (paint.Color{}) {
		cfg.ActiveFg = cfg.Bg
	}
	if cfg.ActiveBg == (paint.Color{}) {
		cfg.ActiveBg = cfg.Fg
	}
	return &Workspaces{name: name, cfg: cfg, dirty: true}, nil
}

func (w *Workspaces) Name() string         { return w.name }
func (w *Workspaces) Area() geom.Rect[int] { return w.area }
func (w *Workspaces) HAlign() geom.Align   { return w.cfg.HAlign }
func (w *Workspaces) VAlign() geom.Align   { return w.cfg.VAlign }
func (w *Workspaces) DesiredHeight() int   { return w.cfg.DesiredHeight }

// IDs returns the known workspace ids in ascending order.
func (w *Workspaces) IDs() []int { return w.ids }

// Active returns the focused workspace id.
func (w *Workspaces) Active() int { return w.active }

// Apply updates the widget state. It reports whether the set of
// workspaces changed, which changes the desired width.
func (w *Workspaces) Apply(ev hypr.Event) (resized bool) {
	switch ev.Kind {
	case hypr.WorkspaceReset:
		resized = len(w.ids) > 0
		w.ids = w.ids[:0]
		w.active = 0
	case hypr.WorkspaceCreate:
		i, found := slices.BinarySearch(w.ids, ev.ID)
		if !found {
			w.ids = slices.Insert(w.ids, i, ev.ID)
			resized = true
		}
	case hypr.WorkspaceDestroy:
		if i, found := slices.BinarySearch(w.ids, ev.ID); found {
			w.ids = slices.Delete(w.ids, i, i+1)
			resized = true
		}
	case hypr.WorkspaceActive:
		w.active = ev.ID
		// Switching to a workspace implies it exists.
		if i, found := slices.BinarySearch(w.ids, ev.ID); !found {
			w.ids = slices.Insert(w.ids, i, ev.ID)
			resized = true
		}
	}
	w.dirty = true
	return resized
}

func (w *Workspaces) cellWidth(height int) int {
	if w.cfg.CellWidth > 0 {
		return w.cfg.CellWidth
	}
	return height
}

func (w *Workspaces) DesiredWidth(height int) int {
	return len(w.ids) * w.cellWidth(height)
}

func (w *Workspaces) Resize(r geom.Rect[int]) {
	if r != w.area {
		w.area = r
		w.dirty = true
	}
}

// Draw lays the cells out from the left edge of the area and draws
// them. Cells that do not fit are clipped.
func (w *Workspaces) Draw(ctx *paint.Ctx) error {
	if !w.dirty && !ctx.FullRedraw() {
		return nil
	}
	clip := w.area.Intersect(ctx.Rect())
	if clip.Empty() {
		w.dirty = false
		return nil
	}
	ctx.Fill(clip, w.cfg.Bg)
	if err := w.syncCells(); err != nil {
		return err
	}
	cw := w.cellWidth(w.area.Dy())
	for i, cell := range w.cells {
		r := geom.Rect[int]{
			Min: geom.Pt(w.area.Min.X+i*cw, w.area.Min.Y),
			Max: geom.Pt(w.area.Min.X+(i+1)*cw, w.area.Max.Y),
		}
		cell.Resize(r)
		if w.ids[i] == w.active {
			cell.SetColors(w.cfg.ActiveFg, w.cfg.ActiveBg)
		} else {
			cell.SetColors(w.cfg.Fg, w.cfg.Bg)
		}
		// The background fill above erased every cell.
		cell.dirty = true
		if err := cell.Draw(ctx); err != nil {
			return err
		}
	}
	ctx.Damage(clip)
	w.dirty = false
	return nil
}

// syncCells makes one text box per workspace id.
func (w *Workspaces) syncCells() error {
	for len(w.cells) < len(w.ids) {
		cell, err := NewTextBox(fmt.Sprintf("%s %d", w.name, len(w.cells)), TextBoxConfig{
			Typeface: w.cfg.Typeface,
			Fg:       w.cfg.Fg,
			Bg:       w.cfg.Bg,
		})
		if err != nil {
			return err
		}
		w.cells = append(w.cells, cell)
	}
	w.cells = w.cells[:len(w.ids)]
	for i, id := range w.ids {
		w.cells[i].SetText(strconv.Itoa(id))
	}
	return nil
}
