// SPDX-License-Identifier: Unlicense OR MIT

package widget

import (
	"fmt"
	"image"
	"unicode/utf8"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/image/draw"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"tidebar.org/font"
	"tidebar.org/geom"
	"tidebar.org/layout"
	"tidebar.org/paint"
)

// TextBoxConfig configures a TextBox.
type TextBoxConfig struct {
	// Text is the initial text.
	Text string
	// Typeface defaults to font.Default.
	Typeface font.Typeface
	// TextHeight is the font size in pixels. If zero, the text fills
	// the height of the area less the vertical margins.
	TextHeight int
	// DesiredHeight defaults to TextHeight plus the vertical margins.
	DesiredHeight int
	// HAlign and VAlign place the text inside the area. The zero
	// value centers it.
	HAlign, VAlign geom.Align
	// Fg defaults to paint.White and Bg to paint.Black when left at
	// the zero Color.
	Fg, Bg  paint.Color
	Margins layout.Margins
	// GlyphCache is the number of rasterized glyphs kept per face.
	// Defaults to 128.
	GlyphCache int
}

// TextBox is a single line of text.
type TextBox struct {
	name string
	cfg  TextBoxConfig
	text string
	area geom.Rect[int]
	// dirty is set when the next Draw must repaint.
	dirty bool

	faces  map[int]xfont.Face
	glyphs *lru.Cache[glyphKey, *glyph]
}

type glyphKey struct {
	px int
	r  rune
}

// glyph is a rasterized rune positioned relative to a dot at the
// origin of its baseline.
type glyph struct {
	bounds  image.Rectangle
	mask    *image.Alpha
	advance int
}

const defaultGlyphCache = 128

// NewTextBox validates cfg and returns a text box.
func NewTextBox(name string, cfg TextBoxConfig) (*TextBox, error) {
	if cfg.TextHeight < 0 || cfg.DesiredHeight < 0 || cfg.GlyphCache < 0 {
		return nil, fmt.Errorf("widget: %s: negative size in config", name)
	}
	if cfg.Margins.Top < 0 || cfg.Margins.Bottom < 0 || cfg.Margins.Left < 0 || cfg.Margins.Right < 0 {
		return nil, fmt.Errorf("widget: %s: negative margins", name)
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
	if cfg.GlyphCache == 0 {
		cfg.GlyphCache = defaultGlyphCache
	}
	if cfg.DesiredHeight == 0 && cfg.TextHeight > 0 {
		cfg.DesiredHeight = cfg.TextHeight + cfg.Margins.V()
	}
	glyphs, err := lru.New[glyphKey, *glyph](cfg.GlyphCache)
	if err != nil {
		return nil, fmt.Errorf("widget: %s: %w", name, err)
	}
	return &TextBox{
		name:   name,
		cfg:    cfg,
		text:   cfg.Text,
		dirty:  true,
		faces:  make(map[int]xfont.Face),
		glyphs: glyphs,
	}, nil
}

func (t *TextBox) Name() string         { return t.name }
func (t *TextBox) Area() geom.Rect[int] { return t.area }
func (t *TextBox) HAlign() geom.Align   { return t.cfg.HAlign }
func (t *TextBox) VAlign() geom.Align   { return t.cfg.VAlign }
func (t *TextBox) DesiredHeight() int   { return t.cfg.DesiredHeight }

// Text returns the current text.
func (t *TextBox) Text() string { return t.text }

// SetText replaces the text. The box repaints on the next Draw if the
// text changed.
func (t *TextBox) SetText(s string) {
	if s != t.text {
		t.text = s
		t.dirty = true
	}
}

// SetColors replaces the foreground and background colors.
func (t *TextBox) SetColors(fg, bg paint.Color) {
	if fg != t.cfg.Fg || bg != t.cfg.Bg {
		t.cfg.Fg, t.cfg.Bg = fg, bg
		t.dirty = true
	}
}

// DesiredWidth returns the width of the current text at the text size
// implied by height, plus the horizontal margins. The face built for
// the measurement is memoized; the text, area and repaint state are
// left alone.
func (t *TextBox) DesiredWidth(height int) int {
	return t.measure(t.text, height)
}

func (t *TextBox) measure(s string, height int) int {
	face, err := t.face(t.textPx(height))
	if err != nil {
		return utf8.RuneCountInString(s)*height/2 + t.cfg.Margins.H()
	}
	return xfont.MeasureString(face, s).Ceil() + t.cfg.Margins.H()
}

func (t *TextBox) Resize(r geom.Rect[int]) {
	if r != t.area {
		t.area = r
		t.dirty = true
	}
}

// Draw paints the background and the text. It does nothing if the box
// is unchanged since the last Draw, unless a full redraw is requested.
func (t *TextBox) Draw(ctx *paint.Ctx) error {
	if !t.dirty && !ctx.FullRedraw() {
		return nil
	}
	clip := t.area.Intersect(ctx.Rect())
	if clip.Empty() {
		t.dirty = false
		return nil
	}
	px := t.textPx(t.area.Dy())
	face, err := t.face(px)
	if err != nil {
		return err
	}
	ctx.Fill(clip, t.cfg.Bg)

	m := face.Metrics()
	ascent, descent := m.Ascent.Ceil(), m.Descent.Ceil()
	size := geom.Pt(xfont.MeasureString(face, t.text).Ceil(), ascent+descent)
	box := t.cfg.Margins.Shrink(t.area).PlaceAt(size, t.cfg.HAlign, t.cfg.VAlign)
	textClip := t.cfg.Margins.Shrink(t.area).Intersect(clip)

	dot := geom.Pt(box.Min.X, box.Min.Y+ascent)
	prev := rune(-1)
	for _, r := range t.text {
		if prev >= 0 {
			dot.X += face.Kern(prev, r).Round()
		}
		prev = r
		g, ok := t.glyph(face, px, r)
		if !ok {
			continue
		}
		t.blit(ctx, g, dot, textClip)
		dot.X += g.advance
	}
	ctx.Damage(clip)
	t.dirty = false
	return nil
}

func (t *TextBox) blit(ctx *paint.Ctx, g *glyph, dot geom.Point[int], clip geom.Rect[int]) {
	for y := g.bounds.Min.Y; y < g.bounds.Max.Y; y++ {
		for x := g.bounds.Min.X; x < g.bounds.Max.X; x++ {
			p := dot.Add(geom.Pt(x, y))
			if !clip.Contains(p) {
				continue
			}
			a := g.mask.AlphaAt(x-g.bounds.Min.X, y-g.bounds.Min.Y).A
			if a == 0 {
				continue
			}
			ctx.Put(p, paint.Blend(t.cfg.Bg, t.cfg.Fg, a))
		}
	}
}

// textPx returns the font size for an area of the given height.
func (t *TextBox) textPx(height int) int {
	if t.cfg.TextHeight > 0 {
		return t.cfg.TextHeight
	}
	if px := height - t.cfg.Margins.V(); px > 0 {
		return px
	}
	return 1
}

func (t *TextBox) face(px int) (xfont.Face, error) {
	if f, ok := t.faces[px]; ok {
		return f, nil
	}
	f, err := font.Face(t.cfg.Typeface, px)
	if err != nil {
		return nil, fmt.Errorf("widget: %s: %w", t.name, err)
	}
	t.faces[px] = f
	return f, nil
}

// glyph returns the rasterized r, caching the mask. The face reuses
// its mask buffer between calls, so masks are copied.
func (t *TextBox) glyph(face xfont.Face, px int, r rune) (*glyph, bool) {
	key := glyphKey{px: px, r: r}
	if g, ok := t.glyphs.Get(key); ok {
		return g, true
	}
	dr, mask, maskp, adv, ok := face.Glyph(fixed.Point26_6{}, r)
	if !ok {
		return nil, false
	}
	g := &glyph{
		bounds:  dr,
		mask:    image.NewAlpha(image.Rect(0, 0, dr.Dx(), dr.Dy())),
		advance: adv.Round(),
	}
	draw.Draw(g.mask, g.mask.Bounds(), mask, maskp, draw.Src)
	t.glyphs.Add(key, g)
	return g, true
}
