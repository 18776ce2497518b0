package particles

import (
	"math"
	"math/rand"
	"time"

	"github.com/Zachkp/portfolio/internal/theme"
)

const (
	trailFade    = 0.05
	accentChance = 0.02
	restartOdds  = 0.025
)

// MatrixRain draws falling columns of glyphs, one per FontSize of width
// with AutoCount or at most Count otherwise.
//
// The surface is faded rather than cleared, so each column leaves a trail.
// Drops advance one row per Interval/Speed; once past the last row a drop
// parks until it restarts at the top with probability 0.025 per step.
type MatrixRain struct {
	opts    Options
	pal     theme.Palette
	rng     *rand.Rand
	charset []rune
	rows    []int
	w, h    float64

	interval time.Duration
	last     time.Duration
	stepped  bool
}

func NewMatrixRain(opts Options, pal theme.Palette) *MatrixRain {
	opts = opts.withDefaults(VariantMatrix)
	return &MatrixRain{
		opts:     opts,
		pal:      pal,
		rng:      opts.rng(),
		charset:  []rune(opts.Charset),
		interval: time.Duration(float64(opts.Interval) / opts.Speed),
	}
}

func (m *MatrixRain) Interactive() bool { return false }

// columns is as many as fit the width, capped by Count unless it is AutoCount.
func (m *MatrixRain) columns(w float64) int {
	n := int(math.Floor(w / m.opts.FontSize))
	if m.opts.Count != AutoCount && m.opts.Count < n {
		n = m.opts.Count
	}
	if n < 0 {
		n = 0
	}
	return n
}

// lastRow is the lowest row whose baseline is still on the surface.
func (m *MatrixRain) lastRow() int {
	return int(math.Floor(m.h / m.opts.FontSize))
}

func (m *MatrixRain) Populate(w, h float64) {
	m.w, m.h = w, h
	m.rows = make([]int, m.columns(w))
	for i := range m.rows {
		m.rows[i] = 1
	}
	m.stepped = false
}

func (m *MatrixRain) Resize(w, h float64) {
	m.w, m.h = w, h
	n := m.columns(w)
	if n <= len(m.rows) {
		m.rows = m.rows[:n]
	} else {
		for len(m.rows) < n {
			m.rows = append(m.rows, 1)
		}
	}
}

// Entities reports one entity per column at its drop's current glyph.
func (m *MatrixRain) Entities() []Entity {
	out := make([]Entity, len(m.rows))
	last := m.lastRow()
	for i, row := range m.rows {
		if row > last {
			row = last
		}
		out[i] = Entity{
			X:     float64(i) * m.opts.FontSize,
			Y:     float64(row) * m.opts.FontSize,
			VY:    m.opts.FontSize,
			Size:  m.opts.FontSize,
			Alpha: m.opts.Opacity,
			Color: m.pal.Primary,
		}
	}
	return out
}

// MaxSpeed is one row per step.
func (m *MatrixRain) MaxSpeed() float64 { return m.opts.FontSize }

func (m *MatrixRain) Step(f *Frame) {
	if len(m.rows) == 0 || len(m.charset) == 0 {
		return
	}
	if m.stepped && f.Now-m.last < m.interval {
		return
	}
	m.stepped = true
	m.last = f.Now

	c := f.Canvas
	c.Fade(theme.WithAlpha(m.pal.Background, trailFade))

	last := m.lastRow()
	fs := m.opts.FontSize
	for i, row := range m.rows {
		if row > last {
			if m.rng.Float64() < restartOdds {
				m.rows[i] = 0
			}
			continue
		}

		col := m.pal.Primary
		if m.rng.Float64() < accentChance {
			col = m.pal.Accent
		}
		glyph := m.charset[m.rng.Intn(len(m.charset))]
		c.DrawGlyph(glyph, float64(i)*fs, float64(row)*fs, fs, theme.WithAlpha(col, m.opts.Opacity))

		m.rows[i]++
	}
}
