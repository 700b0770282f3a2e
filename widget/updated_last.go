// SPDX-License-Identifier: Unlicense OR MIT

package widget

import (
	"fmt"
	"time"

	"tidebar.org/font"
	"tidebar.org/geom"
	"tidebar.org/paint"
)

// UpdatedLastConfig configures an UpdatedLast widget.
type UpdatedLastConfig struct {
	// Timestamp is the time of the last update in Unix seconds.
	Timestamp int64
	// DesiredHeight is the preferred height. If zero, the text fills
	// whatever height it is given.
	DesiredHeight  int
	HAlign, VAlign geom.Align
	Fg, Bg         paint.Color
	Typeface       font.Typeface
	// Now defaults to time.Now.
	Now func() time.Time
}

// UpdatedLast shows how long ago a timestamp was, such as
// "3 Days Ago".
type UpdatedLast struct {
	name string
	time time.Time
	now  func() time.Time
	text *TextBox
}

// maxLabelLen is the length of the widest label.
const maxLabelLen = len("59 Minutes Ago")

func NewUpdatedLast(name string, cfg UpdatedLastConfig) (*UpdatedLast, error) {
	if cfg.DesiredHeight < 0 {
		return nil, fmt.Errorf("widget: %s: negative height %d", name, cfg.DesiredHeight)
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	text, err := NewTextBox(name+" Text", TextBoxConfig{
		Text:          "Default Text",
		Typeface:      cfg.Typeface,
		TextHeight:    cfg.DesiredHeight * 20 / 23,
		DesiredHeight: cfg.DesiredHeight,
		HAlign:        cfg.HAlign,
		VAlign:        cfg.VAlign,
		Fg:            cfg.Fg,
		Bg:            cfg.Bg,
	})
	if err != nil {
		return nil, err
	}
	return &UpdatedLast{
		name: name,
		time: time.Unix(cfg.Timestamp, 0).UTC(),
		now:  cfg.Now,
		text: text,
	}, nil
}

func (u *UpdatedLast) Name() string            { return u.name }
func (u *UpdatedLast) Area() geom.Rect[int]    { return u.text.Area() }
func (u *UpdatedLast) HAlign() geom.Align      { return u.text.HAlign() }
func (u *UpdatedLast) VAlign() geom.Align      { return u.text.VAlign() }
func (u *UpdatedLast) DesiredHeight() int      { return u.text.DesiredHeight() }
func (u *UpdatedLast) Resize(r geom.Rect[int]) { u.text.Resize(r) }

// DesiredWidth is wide enough for the longest label at the given
// height.
func (u *UpdatedLast) DesiredWidth(height int) int {
	return height * maxLabelLen * 2 / 3
}

// Draw repaints only when the label text changes.
func (u *UpdatedLast) Draw(ctx *paint.Ctx) error {
	u.text.SetText(AgeLabel(u.now().Sub(u.time)))
	return u.text.Draw(ctx)
}

// AgeLabel describes an elapsed duration in the coarsest whole unit.
func AgeLabel(d time.Duration) string {
	if d/time.Second < 0 {
		return "The Future?"
	}
	days := int64(d / (24 * time.Hour))
	switch {
	case days > 14:
		return "UPDATE NOW!"
	case days == 1:
		return "1 Day Ago"
	case days > 1:
		return fmt.Sprintf("%d Days Ago", days)
	}
	switch hours := int64(d / time.Hour); {
	case hours == 1:
		return "1 Hour Ago"
	case hours > 1:
		return fmt.Sprintf("%d Hours Ago", hours)
	}
	switch minutes := int64(d / time.Minute); {
	case minutes == 1:
		return "1 Minute Ago"
	case minutes > 1:
		return fmt.Sprintf("%d Minutes Ago", minutes)
	}
	return "Now"
}
