package particles

import (
	"image/color"
	"math"
)

// Shape selects how a data particle is drawn.
type Shape uint8

const (
	ShapeCircle Shape = iota
	ShapeSquare
	ShapeTriangle
)

func (s Shape) String() string {
	switch s {
	case ShapeCircle:
		return "circle"
	case ShapeSquare:
		return "square"
	case ShapeTriangle:
		return "triangle"
	}
	return "unknown"
}

// Entity is one simulated node, particle or character drop.
type Entity struct {
	X, Y   float64
	VX, VY float64
	Size   float64
	Alpha  float64
	Color  color.NRGBA
	Shape  Shape
}

// Speed returns the magnitude of the velocity vector.
func (e *Entity) Speed() float64 {
	return math.Hypot(e.VX, e.VY)
}

// ClampSpeed scales the velocity down so its magnitude does not exceed max.
func ClampSpeed(e *Entity, max float64) {
	s := e.Speed()
	if s <= max || s == 0 {
		return
	}
	k := max / s
	e.VX *= k
	e.VY *= k
}

// bounce integrates one step and reflects off the edges of a w×h box.
func bounce(e *Entity, w, h float64) {
	e.X += e.VX
	e.Y += e.VY

	if e.X < 0 {
		e.X = -e.X
		e.VX = math.Abs(e.VX)
	} else if e.X > w {
		e.X = 2*w - e.X
		e.VX = -math.Abs(e.VX)
	}
	if e.Y < 0 {
		e.Y = -e.Y
		e.VY = math.Abs(e.VY)
	} else if e.Y > h {
		e.Y = 2*h - e.Y
		e.VY = -math.Abs(e.VY)
	}

	// a reflection can still overshoot when the box is narrower than one step
	e.X = clamp(e.X, 0, w)
	e.Y = clamp(e.Y, 0, h)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// LinkAlpha is the opacity of a connection line between two points d apart.
// It falls linearly from base at d=0 to exactly 0 at d >= max, and never exceeds 1.
func LinkAlpha(d, max, base float64) float64 {
	if max <= 0 || d >= max || d < 0 || math.IsNaN(d) {
		return 0
	}
	a := (1 - d/max) * base
	if a > 1 {
		return 1
	}
	if a < 0 {
		return 0
	}
	return a
}
