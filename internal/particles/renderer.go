// Package particles implements the decorative backdrop renderers: a bouncing
// neural-network graph, floating data particles and matrix-style character
// rain.
//
// A Renderer owns its canvas, its entities and its pending frame callback.
// Start and Stop are the whole lifecycle; nothing is shared between renderers.
package particles

import "time"

// Frame is what a simulation sees on each scheduled callback.
type Frame struct {
	Index   uint64
	Now     time.Duration
	Canvas  Canvas
	Pointer Pointer
}

// Simulation is one renderer variant: its entities and per-frame algorithm.
type Simulation interface {
	// Populate creates the entities with randomized state for a w×h surface.
	Populate(w, h float64)
	// Resize moves entities that fall outside the new bounds back inside.
	Resize(w, h float64)
	// Step integrates and draws one frame.
	Step(f *Frame)
	// Interactive reports whether the simulation reads the pointer.
	Interactive() bool
	Entities() []Entity
}

// Renderer drives a Simulation on a Canvas through a Scheduler.
// It is not safe for concurrent use.
type Renderer struct {
	sim    Simulation
	canvas Canvas
	sched  Scheduler
	view   Viewport

	running bool
	handle  FrameHandle
	frame   uint64
	pointer Pointer
	detach  []func()
}

// New wires a renderer. Nothing happens until Start.
func New(sim Simulation, canvas Canvas, sched Scheduler, view Viewport) *Renderer {
	return &Renderer{
		sim:    sim,
		canvas: canvas,
		sched:  sched,
		view:   view,
	}
}

// Start sizes the canvas to the viewport, populates the simulation, attaches
// listeners and schedules the first frame. Calling Start on a running
// renderer does nothing.
func (r *Renderer) Start() {
	if r.running {
		return
	}
	w, h := r.view.Size()
	r.canvas.Resize(w, h)
	r.sim.Populate(float64(w), float64(h))

	r.detach = append(r.detach, r.view.OnResize(r.resize))
	if r.sim.Interactive() {
		r.detach = append(r.detach, r.view.OnPointerMove(r.movePointer))
	}

	r.running = true
	r.frame = 0
	r.handle = r.sched.RequestFrame(r.tick)
}

// Stop cancels the pending frame and detaches every listener. After Stop
// returns the canvas receives no further draw calls, even if a callback that
// was already in flight fires late.
func (r *Renderer) Stop() {
	if !r.running {
		return
	}
	r.running = false
	r.sched.CancelFrame(r.handle)
	r.handle = 0
	for _, remove := range r.detach {
		remove()
	}
	r.detach = nil
}

// Running reports whether the renderer is between Start and Stop.
func (r *Renderer) Running() bool { return r.running }

// Frames is the number of frame callbacks handled since Start.
func (r *Renderer) Frames() uint64 { return r.frame }

// Simulation returns the variant being rendered.
func (r *Renderer) Simulation() Simulation { return r.sim }

func (r *Renderer) tick(now time.Duration) {
	if !r.running {
		return
	}
	r.frame++
	r.sim.Step(&Frame{
		Index:   r.frame,
		Now:     now,
		Canvas:  r.canvas,
		Pointer: r.pointer,
	})
	r.handle = r.sched.RequestFrame(r.tick)
}

func (r *Renderer) resize(w, h int) {
	r.canvas.Resize(w, h)
	r.sim.Resize(float64(w), float64(h))
}

func (r *Renderer) movePointer(x, y float64) {
	r.pointer = Pointer{X: x, Y: y, Valid: true}
}
