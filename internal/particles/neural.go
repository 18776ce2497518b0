package particles

import (
	"math"
	"math/rand"

	"github.com/Zachkp/portfolio/internal/theme"
)

const (
	nodeBaseVelocity = 0.5
	linkWidth        = 0.5
	pointerWidth     = 1
	pointerBoost     = 1.5
)

// NeuralNetwork draws bouncing nodes joined by distance-faded lines.
//
// Only the next NeighborWindow-1 nodes of each node are checked for links,
// keeping a frame at O(n·k). Nodes move and draw on every DrawEvery-th frame;
// pointer links are added on frames that are also multiples of PointerEvery.
type NeuralNetwork struct {
	opts  Options
	pal   theme.Palette
	rng   *rand.Rand
	nodes []Entity
	w, h  float64
}

func NewNeuralNetwork(opts Options, pal theme.Palette) *NeuralNetwork {
	opts = opts.withDefaults(VariantNeural)
	return &NeuralNetwork{opts: opts, pal: pal, rng: opts.rng()}
}

// MaxSpeed is the velocity clamp: the largest magnitude a fresh node can have.
func (n *NeuralNetwork) MaxSpeed() float64 {
	half := nodeBaseVelocity / 2 * n.opts.Speed
	return math.Hypot(half, half)
}

func (n *NeuralNetwork) Interactive() bool { return n.opts.Interactive }

func (n *NeuralNetwork) Entities() []Entity { return n.nodes }

func (n *NeuralNetwork) Populate(w, h float64) {
	n.w, n.h = w, h
	n.nodes = make([]Entity, n.opts.Count)
	for i := range n.nodes {
		n.nodes[i] = Entity{
			X:     n.rng.Float64() * w,
			Y:     n.rng.Float64() * h,
			VX:    (n.rng.Float64() - 0.5) * nodeBaseVelocity * n.opts.Speed,
			VY:    (n.rng.Float64() - 0.5) * nodeBaseVelocity * n.opts.Speed,
			Size:  n.rng.Float64()*2 + 1,
			Alpha: 1,
			Color: n.pal.Sample(n.rng, 2),
		}
	}
}

func (n *NeuralNetwork) Resize(w, h float64) {
	n.w, n.h = w, h
	for i := range n.nodes {
		n.nodes[i].X = clamp(n.nodes[i].X, 0, w)
		n.nodes[i].Y = clamp(n.nodes[i].Y, 0, h)
	}
}

func (n *NeuralNetwork) Step(f *Frame) {
	if len(n.nodes) == 0 {
		return
	}
	if f.Index%uint64(n.opts.DrawEvery) != 0 {
		return
	}
	c := f.Canvas
	c.Clear()

	max := n.MaxSpeed()
	for i := range n.nodes {
		node := &n.nodes[i]
		bounce(node, n.w, n.h)
		ClampSpeed(node, max)
		c.FillCircle(node.X, node.Y, node.Size, node.Color)
	}

	withPointer := n.opts.Interactive && f.Pointer.Valid && f.Index%uint64(n.opts.PointerEvery) == 0
	for i := range n.nodes {
		a := &n.nodes[i]
		end := i + n.opts.NeighborWindow
		if end > len(n.nodes) {
			end = len(n.nodes)
		}
		for j := i + 1; j < end; j++ {
			b := &n.nodes[j]
			d := math.Hypot(a.X-b.X, a.Y-b.Y)
			if alpha := LinkAlpha(d, n.opts.LinkDistance, n.opts.Opacity); alpha > 0 {
				c.StrokeLine(a.X, a.Y, b.X, b.Y, linkWidth, theme.WithAlpha(n.pal.Primary, alpha))
			}
		}

		if withPointer {
			d := math.Hypot(a.X-f.Pointer.X, a.Y-f.Pointer.Y)
			if alpha := LinkAlpha(d, n.opts.PointerDistance, n.opts.Opacity*pointerBoost); alpha > 0 {
				c.StrokeLine(a.X, a.Y, f.Pointer.X, f.Pointer.Y, pointerWidth, theme.WithAlpha(n.pal.Secondary, alpha))
			}
		}
	}
}
