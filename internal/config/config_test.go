// SPDX-License-Identifier: Unlicense OR MIT

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"tidebar.org/font"
	"tidebar.org/geom"
	"tidebar.org/paint"
	"tidebar.org/widget"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse("")
	if err != nil {
		t.Fatal(err)
	}
	def := Default()
	if cfg.Bar != def.Bar {
		t.Errorf("bar %+v, want %+v", cfg.Bar, def.Bar)
	}
	if len(cfg.Widgets) != len(def.Widgets) {
		t.Fatalf("got %d widgets, want %d", len(cfg.Widgets), len(def.Widgets))
	}
	for _, w := range cfg.Widgets {
		if w.Font != font.Default || w.Fg != paint.White || w.Bg != paint.Black {
			t.Errorf("widget %q did not inherit bar defaults: %+v", w.Name, w)
		}
	}
}

func TestParse(t *testing.T) {
	const data = `
[bar]
width = 800
height = 30
fg = "#ff0000"
interval = "250ms"

[[widget]]
kind = "updated_last"
timestamp = 1700000000
h_align = "start"

[[widget]]
kind = "text"
name = "hello"
text = "hi"
bg = "#123"
v_align = "end"

[[widget]]
kind = "clock"
format = "15:04:05"
`
	cfg, err := Parse(data)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Bar.Width != 800 || cfg.Bar.Height != 30 || cfg.Bar.Interval.Duration != 250*time.Millisecond {
		t.Errorf("bar %+v", cfg.Bar)
	}
	if cfg.Bar.Bg != paint.Black {
		t.Errorf("bar bg %v, want default", cfg.Bar.Bg)
	}
	red := paint.Color{A: 0xff, R: 0xff}
	ws := cfg.Widgets
	if len(ws) != 3 {
		t.Fatalf("got %d widgets", len(ws))
	}
	if ws[0].Name != "updated_last 0" || ws[0].HAlign != geom.Start || ws[0].Fg != red {
		t.Errorf("widget 0: %+v", ws[0])
	}
	if ws[1].Bg != (paint.Color{A: 0xff, R: 0x11, G: 0x22, B: 0x33}) || ws[1].VAlign != geom.End || ws[1].HAlign != geom.Center {
		t.Errorf("widget 1: %+v", ws[1])
	}
	if ws[2].Format != "15:04:05" {
		t.Errorf("widget 2: %+v", ws[2])
	}

	built, wsp, err := cfg.Build()
	if err != nil {
		t.Fatal(err)
	}
	if wsp != nil {
		t.Error("unexpected workspaces widget")
	}
	if len(built) != 3 {
		t.Fatalf("built %d widgets", len(built))
	}
	if _, ok := built[0].(*widget.UpdatedLast); !ok {
		t.Errorf("widget 0 is %T", built[0])
	}
	if tb, ok := built[1].(*widget.TextBox); !ok || tb.Text() != "hi" || tb.Name() != "hello" {
		t.Errorf("widget 1 is %T", built[1])
	}
	for _, w := range built {
		if w.DesiredHeight() != 30 {
			t.Errorf("%s: desired height %d", w.Name(), w.DesiredHeight())
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		data, err string
	}{
		{"[bar]\nwdith = 3", "unknown keys: bar.wdith"},
		{"[[widget]]\nkind = \"battery\"", `unknown kind "battery"`},
		{"[[widget]]\nname = \"x\"", "missing kind"},
		{"[bar]\nheight = 0", "invalid size"},
		{"[bar]\ninterval = \"-1s\"", "interval must be positive"},
		{"[bar]\ninterval = \"soon\"", "invalid duration"},
		{"[bar]\nfg = \"red\"", `invalid color "red"`},
		{"[bar]\nfont = \"Comic Sans\"", "Comic Sans"},
		{"[[widget]]\nkind = \"clock\"\nh_align = \"left\"", "left"},
		{"[[widget]]\nkind = \"clock\"\nname = \"a\"\n[[widget]]\nkind = \"text\"\nname = \"a\"", "duplicate name"},
		{"bar = 3", ""},
	}
	for _, test := range tests {
		_, err := Parse(test.data)
		if err == nil {
			t.Errorf("%q: no error", test.data)
			continue
		}
		if !strings.Contains(err.Error(), test.err) {
			t.Errorf("%q: error %q does not mention %q", test.data, err, test.err)
		}
	}
}

func TestSecondWorkspaces(t *testing.T) {
	cfg, err := Parse("[[widget]]\nkind = \"workspaces\"\n[[widget]]\nkind = \"workspaces\"")
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := cfg.Build(); err == nil {
		t.Error("two workspaces widgets accepted")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(filepath.Join(dir, "missing.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Bar != Default().Bar {
		t.Error("missing file did not yield defaults")
	}

	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[bar]\nheight = 40\n[[widget]]\nkind = \"workspaces\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = Load(path)
	if err != nil {
		t.Fatal(err)
	}
	_, wsp, err := cfg.Build()
	if err != nil {
		t.Fatal(err)
	}
	if wsp == nil || wsp.DesiredHeight() != 40 {
		t.Errorf("workspaces widget %v", wsp)
	}

	if err := os.WriteFile(path, []byte("[bar\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), path) {
		t.Errorf("bad file: %v", err)
	}
}

func TestPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	t.Setenv("HOME", "/home/u")
	p, err := Path()
	if err != nil {
		t.Fatal(err)
	}
	if p != "/xdg/tidebar/config.toml" {
		t.Errorf("path %q", p)
	}
}
