// SPDX-License-Identifier: Unlicense OR MIT

package widget

import (
	"time"

	"tidebar.org/font"
	"tidebar.org/geom"
	"tidebar.org/layout"
	"tidebar.org/paint"
)

// ClockConfig configures a Clock.
type ClockConfig struct {
	// Format is a time layout as accepted by time.Time.Format.
	// Defaults to "15:04".
	Format         string
	DesiredHeight  int
	HAlign, VAlign geom.Align
	Fg, Bg         paint.Color
	Typeface       font.Typeface
	Margins        layout.Margins
	// Location defaults to time.Local.
	Location *time.Location
	// Now defaults to time.Now.
	Now func() time.Time
}

// Clock shows the current time.
type Clock struct {
	name   string
	format string
	loc    *time.Location
	now    func() time.Time
	text   *TextBox
	// widest is the reference rendering used for sizing.
	widest string
}

// reference is a time whose formatting is about as wide as any other
// in most layouts.
var reference = time.Date(2000, time.September, 28, 20, 58, 58, 0, time.UTC)

func NewClock(name string, cfg ClockConfig) (*Clock, error) {
	if cfg.Format == "" {
		cfg.Format = "15:04"
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	widest := reference.Format(cfg.Format)
	text, err := NewTextBox(name+" Text", TextBoxConfig{
		Text:          widest,
		Typeface:      cfg.Typeface,
		DesiredHeight: cfg.DesiredHeight,
		HAlign:        cfg.HAlign,
		VAlign:        cfg.VAlign,
		Fg:            cfg.Fg,
		Bg:            cfg.Bg,
		Margins:       cfg.Margins,
	})
	if err != nil {
		return nil, err
	}
	return &Clock{
		name:   name,
		format: cfg.Format,
		loc:    cfg.Location,
		now:    cfg.Now,
		text:   text,
		widest: widest,
	}, nil
}

func (c *Clock) Name() string            { return c.name }
func (c *Clock) Area() geom.Rect[int]    { return c.text.Area() }
func (c *Clock) HAlign() geom.Align      { return c.text.HAlign() }
func (c *Clock) VAlign() geom.Align      { return c.text.VAlign() }
func (c *Clock) DesiredHeight() int      { return c.text.DesiredHeight() }
func (c *Clock) Resize(r geom.Rect[int]) { c.text.Resize(r) }

// DesiredWidth measures the reference time, so the width does not
// change as the time does.
func (c *Clock) DesiredWidth(height int) int {
	return c.text.measure(c.widest, height)
}

func (c *Clock) Draw(ctx *paint.Ctx) error {
	c.text.SetText(c.now().In(c.loc).Format(c.format))
	return c.text.Draw(ctx)
}
