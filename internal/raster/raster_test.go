package raster

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"github.com/Zachkp/portfolio/internal/particles"
	"github.com/Zachkp/portfolio/internal/theme"
)

var red = color.NRGBA{R: 255, A: 255}

func TestFillCirclePaintsCentreOnly(t *testing.T) {
	c := NewCanvas(40, 40)
	c.FillCircle(20, 20, 5, red)

	if got := c.Image().RGBAAt(20, 20); got.R != 255 || got.A != 255 {
		t.Errorf("centre pixel = %v, want opaque red", got)
	}
	if got := c.Image().RGBAAt(2, 2); got.A != 0 {
		t.Errorf("corner pixel = %v, want transparent", got)
	}
}

func TestShapesClipAtEdges(t *testing.T) {
	c := NewCanvas(20, 20)
	c.FillCircle(0, 0, 6, red)
	c.FillTriangle(18, 10, 30, 30, 10, 30, red)
	c.StrokeLine(-10, 5, 30, 5, 2, red)
	c.FillRect(-5, -5, 8, 8, red)

	if got := c.Image().RGBAAt(1, 1); got.A == 0 {
		t.Error("clipped circle left its visible corner empty")
	}
	if got := c.Image().RGBAAt(10, 5); got.A == 0 {
		t.Error("line crossing the canvas left no pixels")
	}
}

func TestClearAndFade(t *testing.T) {
	c := NewCanvas(10, 10)
	c.FillRect(0, 0, 10, 10, red)
	c.Clear()
	if got := c.Image().RGBAAt(5, 5); got.A != 0 {
		t.Errorf("pixel after Clear = %v, want transparent", got)
	}

	c.Fade(color.NRGBA{B: 255, A: 128})
	if got := c.Image().RGBAAt(5, 5); got.B == 0 || got.A == 0 {
		t.Errorf("pixel after Fade = %v, want half blue", got)
	}
}

func painted(c *Canvas) int {
	n := 0
	b := c.Image().Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if c.Image().RGBAAt(x, y).A > 0 {
				n++
			}
		}
	}
	return n
}

func TestDrawGlyph(t *testing.T) {
	tests := []struct {
		name    string
		r       rune
		covered bool
	}{
		{"Latin", 'M', true},
		{"Digit", '0', true},
		{"Greek", 'λ', true},
		{"Katakana", 'ア', false},
		{"Kanji", '学', false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCanvas(20, 20)
			c.DrawGlyph(tt.r, 2, 15, 16, red)
			got := painted(c)
			if tt.covered && got == 0 {
				t.Errorf("DrawGlyph(%q) painted no pixels", tt.r)
			}
			if !tt.covered && got != 0 {
				t.Errorf("DrawGlyph(%q) painted %d pixels, want 0 for a rune the font lacks", tt.r, got)
			}
		})
	}
}

func TestDrawGlyphScalesWithSize(t *testing.T) {
	small := NewCanvas(40, 40)
	small.DrawGlyph('M', 2, 30, 8, red)
	large := NewCanvas(40, 40)
	large.DrawGlyph('M', 2, 30, 24, red)
	if s, l := painted(small), painted(large); l <= s {
		t.Errorf("24px glyph painted %d pixels, 8px painted %d, want more at 24px", l, s)
	}
}

func TestRenderSnapshot(t *testing.T) {
	pal := theme.Builtin()["neo-brutal/dark"]
	for _, v := range particles.Variants() {
		t.Run(string(v), func(t *testing.T) {
			opts := particles.DefaultOptions(v)
			opts.Seed = 7
			sim, err := particles.NewSimulation(v, opts, pal)
			if err != nil {
				t.Fatal(err)
			}
			img, err := Render(sim, Snapshot{Width: 320, Height: 200, Frames: 30, Palette: pal})
			if err != nil {
				t.Fatalf("Render err = %v", err)
			}
			if b := img.Bounds(); b.Dx() != 320 || b.Dy() != 200 {
				t.Errorf("image size = %v, want 320x200", b)
			}
			if got := img.RGBAAt(0, 0).A; got != 255 {
				t.Errorf("composited pixel alpha = %d, want 255", got)
			}

			var buf bytes.Buffer
			if err := EncodePNG(&buf, img); err != nil {
				t.Fatalf("EncodePNG err = %v", err)
			}
			if _, err := png.Decode(&buf); err != nil {
				t.Errorf("encoded snapshot does not decode: %v", err)
			}
		})
	}
}

func TestRenderRejectsBadSizes(t *testing.T) {
	sim := particles.NewDataParticles(particles.DefaultOptions(particles.VariantParticles), theme.Palette{})
	tests := []Snapshot{
		{Width: 0, Height: 10},
		{Width: 10, Height: MaxSide + 1},
		{Width: 10, Height: 10, Frames: MaxFrames + 1},
		{Width: 10, Height: 10, Frames: -1},
	}
	for _, s := range tests {
		if _, err := Render(sim, s); err == nil {
			t.Errorf("Render(%+v) err = nil, want error", s)
		}
	}
}
