package particles

import (
	"image/color"
	"math"
	"testing"
	"time"

	"github.com/Zachkp/portfolio/internal/theme"
)

type spyLine struct {
	x1, y1, x2, y2 float64
	width          float64
	c              color.NRGBA
}

// spyCanvas records every call a renderer makes.
type spyCanvas struct {
	w, h      int
	resizes   int
	clears    int
	fades     int
	circles   int
	rects     int
	triangles int
	glyphs    int
	lines     []spyLine
}

func (s *spyCanvas) Size() (int, int) { return s.w, s.h }
func (s *spyCanvas) Resize(w, h int) {
	s.w, s.h = w, h
	s.resizes++
}
func (s *spyCanvas) Clear() { s.clears++ }
func (s *spyCanvas) Fade(color.NRGBA) { s.fades++ }
func (s *spyCanvas) FillCircle(_, _, _ float64, _ color.NRGBA) { s.circles++ }
func (s *spyCanvas) FillRect(_, _, _, _ float64, _ color.NRGBA) { s.rects++ }
func (s *spyCanvas) DrawGlyph(rune, float64, float64, float64, color.NRGBA) { s.glyphs++ }
func (s *spyCanvas) FillTriangle(_, _, _, _, _, _ float64, _ color.NRGBA) {
	s.triangles++
}
func (s *spyCanvas) StrokeLine(x1, y1, x2, y2, width float64, c color.NRGBA) {
	s.lines = append(s.lines, spyLine{x1, y1, x2, y2, width, c})
}

func (s *spyCanvas) draws() int {
	return s.circles + s.rects + s.triangles + s.glyphs + len(s.lines)
}

func (s *spyCanvas) calls() int {
	return s.draws() + s.clears + s.fades
}

var testPalette = theme.Builtin()["glass/dark"]

type harness struct {
	canvas *spyCanvas
	queue  *FrameQueue
	window *Window
	r      *Renderer
}

func newHarness(t *testing.T, v Variant, opts Options, w, h int) *harness {
	t.Helper()
	if opts.Seed == 0 {
		opts.Seed = 42
	}
	sim, err := NewSimulation(v, opts, testPalette)
	if err != nil {
		t.Fatalf("NewSimulation(%s) err = %v", v, err)
	}
	hs := &harness{
		canvas: &spyCanvas{},
		queue:  NewFrameQueue(10 * time.Millisecond),
		window: NewWindow(w, h),
	}
	hs.r = New(sim, hs.canvas, hs.queue, hs.window)
	return hs
}

func assertInBounds(t *testing.T, frame int, ents []Entity, w, h float64) {
	t.Helper()
	for i, e := range ents {
		if math.IsNaN(e.X) || math.IsNaN(e.Y) || math.IsInf(e.X, 0) || math.IsInf(e.Y, 0) {
			t.Fatalf("frame %d: entity %d has non-finite position (%v, %v)", frame, i, e.X, e.Y)
		}
		if e.X < 0 || e.X > w || e.Y < 0 || e.Y > h {
			t.Fatalf("frame %d: entity %d at (%v, %v) outside [0,%v]x[0,%v]", frame, i, e.X, e.Y, w, h)
		}
	}
}
