// SPDX-License-Identifier: Unlicense OR MIT

// Package config loads the bar configuration from a TOML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"tidebar.org/font"
	"tidebar.org/geom"
	"tidebar.org/layout"
	"tidebar.org/paint"
	"tidebar.org/widget"
)

// Widget kinds.
const (
	KindText        = "text"
	KindClock       = "clock"
	KindUpdatedLast = "updated_last"
	KindWorkspaces  = "workspaces"
)

// Config is the decoded configuration file.
type Config struct {
	Bar     Bar      `toml:"bar"`
	Widgets []Widget `toml:"widget"`
}

// Bar configures the surface and the defaults shared by widgets.
type Bar struct {
	Width    int           `toml:"width"`
	Height   int           `toml:"height"`
	Font     font.Typeface `toml:"font"`
	Fg       paint.Color   `toml:"fg"`
	Bg       paint.Color   `toml:"bg"`
	Interval Duration      `toml:"interval"`
}

// Widget is one [[widget]] table. Colors and the font default to the
// bar's.
type Widget struct {
	Kind     string        `toml:"kind"`
	Name     string        `toml:"name"`
	Font     font.Typeface `toml:"font"`
	Fg       paint.Color   `toml:"fg"`
	Bg       paint.Color   `toml:"bg"`
	ActiveFg paint.Color   `toml:"active_fg"`
	ActiveBg paint.Color   `toml:"active_bg"`
	HAlign   geom.Align    `toml:"h_align"`
	VAlign   geom.Align    `toml:"v_align"`
	// Text is the content of a text widget.
	Text string `toml:"text"`
	// Timestamp is the Unix time shown by updated_last.
	Timestamp int64 `toml:"timestamp"`
	// Format is the time layout of a clock.
	Format string `toml:"format"`
}

// Duration is a time.Duration written as a string such as "500ms".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the configuration used when no file exists: a
// clock between the workspaces and the age of the build.
func Default() Config {
	return Config{
		Bar: Bar{
			Width:    1920,
			Height:   24,
			Font:     font.Default,
			Fg:       paint.White,
			Bg:       paint.Black,
			Interval: Duration{time.Second},
		},
		Widgets: []Widget{
			{Kind: KindClock, Name: "Clock"},
			{Kind: KindWorkspaces, Name: "Workspaces"},
		},
	}
}

// Path returns the default configuration file location,
// $XDG_CONFIG_HOME/tidebar/config.toml.
func Path() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "tidebar", "config.toml"), nil
}

// Load reads the file at path. A missing file yields Default().
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Parse("")
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	cfg, err := Parse(string(data))
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes and validates a configuration. Keys left out take
// their default values; a file without [[widget]] tables gets the
// default widgets.
func Parse(data string) (Config, error) {
	def := Default()
	cfg := Config{Bar: def.Bar}
	md, err := toml.Decode(data, &cfg)
	if err != nil {
		return Config{}, err
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		keys := make([]string, len(undec))
		for i, k := range undec {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	if cfg.Widgets == nil {
		cfg.Widgets = def.Widgets
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	b := &c.Bar
	if b.Width <= 0 || b.Height <= 0 {
		return fmt.Errorf("bar: invalid size %dx%d", b.Width, b.Height)
	}
	if b.Interval.Duration <= 0 {
		return fmt.Errorf("bar: interval must be positive, got %v", b.Interval.Duration)
	}
	if _, err := font.Parse(b.Font); err != nil {
		return fmt.Errorf("bar: %w", err)
	}
	names := make(map[string]bool)
	for i := range c.Widgets {
		w := &c.Widgets[i]
		switch w.Kind {
		case KindText, KindClock, KindUpdatedLast, KindWorkspaces:
		case "":
			return fmt.Errorf("widget %d: missing kind", i)
		default:
			return fmt.Errorf("widget %d: unknown kind %q", i, w.Kind)
		}
		if w.Name == "" {
			w.Name = fmt.Sprintf("%s %d", w.Kind, i)
		}
		if names[w.Name] {
			return fmt.Errorf("widget %d: duplicate name %q", i, w.Name)
		}
		names[w.Name] = true
		if w.Font == "" {
			w.Font = b.Font
		}
		if w.Fg == (paint.Color{}) {
			w.Fg = b.Fg
		}
		if w.Bg == (paint.Color{}) {
			w.Bg = b.Bg
		}
	}
	return nil
}

// Build constructs the configured widgets in order. The workspaces
// widget, if any, is also returned so events can be routed to it.
func (c *Config) Build() ([]layout.Widget, *widget.Workspaces, error) {
	h := c.Bar.Height
	var (
		ws  []layout.Widget
		wsp *widget.Workspaces
	)
	for _, w := range c.Widgets {
		var (
			lw  layout.Widget
			err error
		)
		switch w.Kind {
		case KindText:
			lw, err = widget.NewTextBox(w.Name, widget.TextBoxConfig{
				Text:          w.Text,
				Typeface:      w.Font,
				DesiredHeight: h,
				HAlign:        w.HAlign,
				VAlign:        w.VAlign,
				Fg:            w.Fg,
				Bg:            w.Bg,
			})
		case KindClock:
			lw, err = widget.NewClock(w.Name, widget.ClockConfig{
				Format:        w.Format,
				DesiredHeight: h,
				HAlign:        w.HAlign,
				VAlign:        w.VAlign,
				Fg:            w.Fg,
				Bg:            w.Bg,
				Typeface:      w.Font,
			})
		case KindUpdatedLast:
			lw, err = widget.NewUpdatedLast(w.Name, widget.UpdatedLastConfig{
				Timestamp:     w.Timestamp,
				DesiredHeight: h,
				HAlign:        w.HAlign,
				VAlign:        w.VAlign,
				Fg:            w.Fg,
				Bg:            w.Bg,
				Typeface:      w.Font,
			})
		case KindWorkspaces:
			if wsp != nil {
				return nil, nil, fmt.Errorf("config: %s: only one workspaces widget is supported", w.Name)
			}
			wsp, err = widget.NewWorkspaces(w.Name, widget.WorkspacesConfig{
				DesiredHeight: h,
				HAlign:        w.HAlign,
				VAlign:        w.VAlign,
				Fg:            w.Fg,
				Bg:            w.Bg,
				ActiveFg:      w.ActiveFg,
				ActiveBg:      w.ActiveBg,
				Typeface:      w.Font,
			})
			lw = wsp
		default:
			err = fmt.Errorf("unknown kind %q", w.Kind)
		}
		if err != nil {
			return nil, nil, fmt.Errorf("config: %w", err)
		}
		ws = append(ws, lw)
	}
	return ws, wsp, nil
}
