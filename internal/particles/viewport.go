package particles

// Viewport is the window-level source of size and pointer events a renderer
// listens to while mounted. Each On* call returns the function that detaches
// the listener.
type Viewport interface {
	Size() (w, h int)
	OnResize(fn func(w, h int)) (remove func())
	OnPointerMove(fn func(x, y float64)) (remove func())
}

// Pointer is the last known cursor position. Valid is false until the first move.
type Pointer struct {
	X, Y  float64
	Valid bool
}

// Window is an in-process Viewport. Surfaces push their resize and pointer
// events into it; renderers subscribe through the Viewport interface.
type Window struct {
	w, h    int
	nextID  int
	resize  map[int]func(w, h int)
	pointer map[int]func(x, y float64)
}

// NewWindow returns a window of the given size with no listeners.
func NewWindow(w, h int) *Window {
	return &Window{
		w:       w,
		h:       h,
		resize:  make(map[int]func(w, h int)),
		pointer: make(map[int]func(x, y float64)),
	}
}

func (win *Window) Size() (int, int) { return win.w, win.h }

func (win *Window) OnResize(fn func(w, h int)) func() {
	win.nextID++
	id := win.nextID
	win.resize[id] = fn
	return func() { delete(win.resize, id) }
}

func (win *Window) OnPointerMove(fn func(x, y float64)) func() {
	win.nextID++
	id := win.nextID
	win.pointer[id] = fn
	return func() { delete(win.pointer, id) }
}

// Resize updates the size and notifies resize listeners. A no-op when unchanged.
func (win *Window) Resize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	if w == win.w && h == win.h {
		return
	}
	win.w, win.h = w, h
	for _, fn := range win.resize {
		fn(w, h)
	}
}

// MovePointer notifies pointer listeners of a cursor move.
func (win *Window) MovePointer(x, y float64) {
	for _, fn := range win.pointer {
		fn(x, y)
	}
}

// Listeners reports how many resize and pointer listeners are attached.
func (win *Window) Listeners() (resize, pointer int) {
	return len(win.resize), len(win.pointer)
}
