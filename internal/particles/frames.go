package particles

import "time"

// FrameHandle identifies one pending frame callback. The zero handle is never issued.
type FrameHandle uint64

// FrameFunc is called once per scheduled frame with the surface's clock.
type FrameFunc func(now time.Duration)

// Scheduler is the per-frame callback primitive a renderer runs on.
type Scheduler interface {
	RequestFrame(fn FrameFunc) FrameHandle
	CancelFrame(h FrameHandle)
}

// DefaultFrameInterval is one frame at 60 FPS.
const DefaultFrameInterval = time.Second / 60

type pendingFrame struct {
	handle FrameHandle
	fn     FrameFunc
}

// FrameQueue is a Scheduler advanced explicitly by whatever owns the surface:
// an ebiten Update, a terminal ticker, or a loop rendering a snapshot.
//
// Callbacks requested while a tick runs are deferred to the next tick, so a
// renderer draws at most once per Tick. FrameQueue is not safe for concurrent
// use; drive it from the goroutine that owns the renderers.
type FrameQueue struct {
	interval time.Duration
	now      time.Duration
	next     FrameHandle
	pending  []pendingFrame
	cancels  int
}

// NewFrameQueue returns a queue whose clock advances by interval per tick.
func NewFrameQueue(interval time.Duration) *FrameQueue {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	return &FrameQueue{interval: interval}
}

func (q *FrameQueue) RequestFrame(fn FrameFunc) FrameHandle {
	q.next++
	q.pending = append(q.pending, pendingFrame{handle: q.next, fn: fn})
	return q.next
}

func (q *FrameQueue) CancelFrame(h FrameHandle) {
	q.cancels++
	for i, p := range q.pending {
		if p.handle == h {
			q.pending = append(q.pending[:i], q.pending[i+1:]...)
			return
		}
	}
}

// Tick advances the clock by one interval and runs every callback that was
// pending before the call.
func (q *FrameQueue) Tick() {
	q.now += q.interval
	due := q.pending
	q.pending = nil
	for _, p := range due {
		p.fn(q.now)
	}
}

// Advance runs n ticks.
func (q *FrameQueue) Advance(n int) {
	for i := 0; i < n; i++ {
		q.Tick()
	}
}

// Now is the queue's clock: ticks run so far times the interval.
func (q *FrameQueue) Now() time.Duration { return q.now }

// Pending is the number of callbacks waiting for the next tick.
func (q *FrameQueue) Pending() int { return len(q.pending) }

// Cancels counts CancelFrame calls, including ones for handles already run.
func (q *FrameQueue) Cancels() int { return q.cancels }
