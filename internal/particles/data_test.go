package particles

import (
	"testing"
)

func TestDataParticlesBoundsAndSpeed(t *testing.T) {
	opts := DefaultOptions(VariantParticles)
	opts.Count = 60
	opts.Speed = 2
	hs := newHarness(t, VariantParticles, opts, 200, 150)
	hs.r.Start()
	sim := hs.r.Simulation().(*DataParticles)
	max := sim.MaxSpeed()

	for i := 1; i <= 3000; i++ {
		hs.queue.Tick()
		ents := sim.Entities()
		assertInBounds(t, i, ents, 200, 150)
		for j, e := range ents {
			if s := e.Speed(); s > max+1e-9 {
				t.Fatalf("frame %d: particle %d speed %v exceeds clamp %v", i, j, s, max)
			}
			if e.VX < -driftLimit || e.VX > driftLimit {
				t.Fatalf("frame %d: particle %d drift %v outside ±%v", i, j, e.VX, driftLimit)
			}
		}
	}
}

func TestDataParticlesOneShapePerParticle(t *testing.T) {
	hs := newHarness(t, VariantParticles, DefaultOptions(VariantParticles), 800, 600)
	hs.r.Start()
	hs.queue.Advance(3)

	c := hs.canvas
	if c.clears != 3 {
		t.Errorf("clears = %d, want 3", c.clears)
	}
	if got := c.draws(); got != 3*40 {
		t.Errorf("shape draws = %d, want %d", got, 3*40)
	}
	if len(c.lines) != 0 || c.glyphs != 0 {
		t.Errorf("unexpected lines=%d glyphs=%d", len(c.lines), c.glyphs)
	}
}

func TestDataParticlesUsePalette(t *testing.T) {
	hs := newHarness(t, VariantParticles, DefaultOptions(VariantParticles), 800, 600)
	hs.r.Start()

	shapes := map[Shape]int{}
	for _, e := range hs.r.Simulation().Entities() {
		if e.Color != testPalette.Primary && e.Color != testPalette.Secondary && e.Color != testPalette.Accent {
			t.Errorf("particle colour %v not in palette", e.Color)
		}
		if e.Alpha < 0.3 || e.Alpha >= 0.8 {
			t.Errorf("particle alpha %v outside [0.3, 0.8)", e.Alpha)
		}
		shapes[e.Shape]++
	}
	if len(shapes) != 3 {
		t.Errorf("shapes used = %v, want all three kinds among 40 particles", shapes)
	}
}

func TestShapeString(t *testing.T) {
	tests := map[Shape]string{
		ShapeCircle:   "circle",
		ShapeSquare:   "square",
		ShapeTriangle: "triangle",
		Shape(9):      "unknown",
	}
	for s, want := range tests {
		if got := s.String(); got != want {
			t.Errorf("Shape(%d).String() = %q, want %q", s, got, want)
		}
	}
}
