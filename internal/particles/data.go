package particles

import (
	"math"
	"math/rand"

	"github.com/Zachkp/portfolio/internal/theme"
)

const (
	driftLimit   = 0.5
	driftJitter  = 0.01
	minFallSpeed = 0.1
)

// DataParticles draws small shapes falling from the top of the surface.
// Particles wrap horizontally and restart at the top once they pass the bottom.
type DataParticles struct {
	opts      Options
	pal       theme.Palette
	rng       *rand.Rand
	particles []Entity
	w, h      float64
}

func NewDataParticles(opts Options, pal theme.Palette) *DataParticles {
	opts = opts.withDefaults(VariantParticles)
	return &DataParticles{opts: opts, pal: pal, rng: opts.rng()}
}

// MaxSpeed bounds the velocity magnitude of any particle.
func (d *DataParticles) MaxSpeed() float64 {
	return math.Hypot(driftLimit, d.opts.Speed+minFallSpeed)
}

func (d *DataParticles) Interactive() bool { return false }

func (d *DataParticles) Entities() []Entity { return d.particles }

func (d *DataParticles) Populate(w, h float64) {
	d.w, d.h = w, h
	d.particles = make([]Entity, d.opts.Count)
	for i := range d.particles {
		p := &d.particles[i]
		d.reset(p)
		p.Y = d.rng.Float64() * h
		p.Shape = Shape(d.rng.Intn(3))
	}
}

func (d *DataParticles) reset(p *Entity) {
	p.X = d.rng.Float64() * d.w
	p.Y = 0
	p.Size = d.rng.Float64()*3 + 1
	p.VY = d.rng.Float64()*d.opts.Speed + minFallSpeed
	p.VX = (d.rng.Float64() - 0.5) * 0.3
	p.Alpha = (d.rng.Float64()*0.5 + 0.3) * d.opts.Opacity
	p.Color = d.pal.Sample(d.rng, 3)
}

func (d *DataParticles) Resize(w, h float64) {
	d.w, d.h = w, h
	for i := range d.particles {
		p := &d.particles[i]
		if p.Y > h {
			d.reset(p)
			continue
		}
		if p.X > w {
			p.X = d.rng.Float64() * w
		}
	}
}

func (d *DataParticles) Step(f *Frame) {
	if len(d.particles) == 0 {
		return
	}
	c := f.Canvas
	c.Clear()

	for i := range d.particles {
		p := &d.particles[i]
		p.X += p.VX
		p.Y += p.VY

		if p.X < 0 {
			p.X = d.w
		} else if p.X > d.w {
			p.X = 0
		}
		if p.Y > d.h {
			d.reset(p)
		}

		p.VX += (d.rng.Float64() - 0.5) * driftJitter
		p.VX = clamp(p.VX, -driftLimit, driftLimit)

		d.draw(c, p)
	}
}

func (d *DataParticles) draw(c Canvas, p *Entity) {
	col := theme.WithAlpha(p.Color, p.Alpha)
	s := p.Size
	switch p.Shape {
	case ShapeCircle:
		c.FillCircle(p.X, p.Y, s, col)
	case ShapeSquare:
		c.FillRect(p.X-s, p.Y-s, s*2, s*2, col)
	case ShapeTriangle:
		c.FillTriangle(p.X, p.Y-s, p.X-s, p.Y+s, p.X+s, p.Y+s, col)
	}
}
