// SPDX-License-Identifier: Unlicense OR MIT

package font

import "testing"

func TestBuiltinFaces(t *testing.T) {
	for _, name := range []Typeface{"", Mono, Sans, Roboto} {
		face, err := Face(name, 20)
		if err != nil {
			t.Fatalf("Face(%q): %v", name, err)
		}
		if adv := Advance(face); adv <= 0 || adv > 20 {
			t.Errorf("Advance(%q) = %d", name, adv)
		}
		if h := face.Metrics().Height.Round(); h < 18 || h > 30 {
			t.Errorf("%q line height %d at 20px", name, h)
		}
		face.Close()
	}
}

func TestMonoAdvanceScales(t *testing.T) {
	small, err := Face(Mono, 10)
	if err != nil {
		t.Fatal(err)
	}
	large, err := Face(Mono, 40)
	if err != nil {
		t.Fatal(err)
	}
	if Advance(large) < 3*Advance(small) {
		t.Errorf("advance at 40px (%d) not ~4x advance at 10px (%d)", Advance(large), Advance(small))
	}
	for _, r := range "iW@" {
		adv, ok := large.GlyphAdvance(r)
		if !ok || adv.Round() != Advance(large) {
			t.Errorf("mono glyph %q has advance %v", r, adv)
		}
	}
}

func TestUnknownTypeface(t *testing.T) {
	if _, err := Face("Comic Sans", 12); err == nil {
		t.Error("expected error for unknown typeface")
	}
	if _, err := Face(Mono, 0); err == nil {
		t.Error("expected error for zero size")
	}
}

func TestRegisterInvalid(t *testing.T) {
	Register("broken", []byte("not a font"))
	if _, err := Parse("broken"); err == nil {
		t.Error("expected parse error")
	}
	if err := RegisterFile("missing", "/nonexistent/font.ttf"); err == nil {
		t.Error("expected error for missing file")
	}
}
