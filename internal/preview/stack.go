package preview

import (
	"github.com/Zachkp/portfolio/internal/particles"
)

// Layer is one mounted backdrop in a Stack.
type Layer struct {
	Name     string
	Canvas   particles.Canvas
	Renderer *particles.Renderer
}

// Stack layers several renderers over one window and one frame queue, the
// way the page stacks its backdrops. Layers are drawn in insertion order.
type Stack struct {
	queue  *particles.FrameQueue
	window *particles.Window
	layers []*Layer
}

func NewStack(w, h int) *Stack {
	return &Stack{
		queue:  particles.NewFrameQueue(particles.DefaultFrameInterval),
		window: particles.NewWindow(w, h),
	}
}

// Add wires sim to c. The layer is not started.
func (s *Stack) Add(name string, sim particles.Simulation, c particles.Canvas) *Layer {
	l := &Layer{
		Name:     name,
		Canvas:   c,
		Renderer: particles.New(sim, c, s.queue, s.window),
	}
	s.layers = append(s.layers, l)
	return l
}

func (s *Stack) Layers() []*Layer { return s.layers }

// Toggle mounts or unmounts layer i and reports whether it is now running.
// Out of range indexes are ignored.
func (s *Stack) Toggle(i int) bool {
	if i < 0 || i >= len(s.layers) {
		return false
	}
	r := s.layers[i].Renderer
	if r.Running() {
		r.Stop()
		s.layers[i].Canvas.Clear()
		return false
	}
	r.Start()
	return true
}

func (s *Stack) StartAll() {
	for _, l := range s.layers {
		l.Renderer.Start()
	}
}

func (s *Stack) StopAll() {
	for _, l := range s.layers {
		l.Renderer.Stop()
	}
}

func (s *Stack) Resize(w, h int) { s.window.Resize(w, h) }

func (s *Stack) MovePointer(x, y float64) { s.window.MovePointer(x, y) }

// Tick runs one frame for every running layer.
func (s *Stack) Tick() { s.queue.Tick() }

func (s *Stack) Size() (int, int) { return s.window.Size() }
