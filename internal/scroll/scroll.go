// Package scroll derives animation values (offset, opacity, scale) from the
// page's global scroll progress, 0 at the top and 1 at the bottom.
package scroll

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/tanema/gween/ease"
)

// Breakpoints is the progress window over which a value animates.
type Breakpoints struct {
	Start, End float64
}

// Bounds is the output range: From before Start, To after End.
type Bounds struct {
	From, To float64
}

// Transform maps scroll progress to a value.
type Transform struct {
	In   Breakpoints
	Out  Bounds
	Ease ease.TweenFunc
}

// Linear returns a transform that interpolates linearly.
func Linear(in Breakpoints, out Bounds) Transform {
	return Transform{In: in, Out: out}
}

// At returns the value at progress p. Outside the breakpoint window the value
// is clamped to the matching output bound; easings that overshoot are
// clamped too.
func (t Transform) At(p float64) float64 {
	if math.IsNaN(p) {
		p = 0
	}
	span := t.In.End - t.In.Start
	var k float64
	switch {
	case span == 0:
		if p < t.In.Start {
			k = 0
		} else {
			k = 1
		}
	default:
		k = (p - t.In.Start) / span
	}
	k = clamp01(k)
	if t.Ease != nil {
		k = clamp01(float64(t.Ease(float32(k), 0, 1, 1)))
	}
	return t.Out.From + (t.Out.To-t.Out.From)*k
}

var easings = map[string]ease.TweenFunc{
	"linear":       ease.Linear,
	"in-quad":      ease.InQuad,
	"out-quad":     ease.OutQuad,
	"in-out-quad":  ease.InOutQuad,
	"in-cubic":     ease.InCubic,
	"out-cubic":    ease.OutCubic,
	"in-out-cubic": ease.InOutCubic,
	"in-sine":      ease.InSine,
	"out-sine":     ease.OutSine,
	"in-out-sine":  ease.InOutSine,
}

// Easing looks up an easing by name. The empty name is linear.
func Easing(name string) (ease.TweenFunc, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return ease.Linear, nil
	}
	fn, ok := easings[name]
	if !ok {
		return nil, fmt.Errorf("unknown easing %q (want one of %s)", name, strings.Join(EasingNames(), ", "))
	}
	return fn, nil
}

// EasingNames lists the supported easing names.
func EasingNames() []string {
	names := make([]string, 0, len(easings))
	for n := range easings {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Progress normalises a scroll offset: 0 at the top of the document, 1 when
// the bottom of the viewport reaches the bottom of the document.
func Progress(scrollY, viewportH, documentH float64) float64 {
	scrollable := documentH - viewportH
	if scrollable <= 0 {
		return 0
	}
	return clamp01(scrollY / scrollable)
}

// Tracker holds the current scroll progress and notifies subscribers when it
// changes. Subscribers only read; the tracker is the single writer.
type Tracker struct {
	mu       sync.Mutex
	progress float64
	nextID   int
	subs     map[int]func(float64)
}

func NewTracker() *Tracker {
	return &Tracker{subs: make(map[int]func(float64))}
}

// Subscribe calls fn with the current progress and on every later change.
// The returned function unsubscribes.
func (t *Tracker) Subscribe(fn func(progress float64)) func() {
	t.mu.Lock()
	t.nextID++
	id := t.nextID
	t.subs[id] = fn
	p := t.progress
	t.mu.Unlock()

	fn(p)
	return func() {
		t.mu.Lock()
		delete(t.subs, id)
		t.mu.Unlock()
	}
}

// Set clamps p to [0,1] and notifies subscribers if it changed.
func (t *Tracker) Set(p float64) {
	p = clamp01(p)
	t.mu.Lock()
	if p == t.progress {
		t.mu.Unlock()
		return
	}
	t.progress = p
	subs := make([]func(float64), 0, len(t.subs))
	for _, fn := range t.subs {
		subs = append(subs, fn)
	}
	t.mu.Unlock()

	for _, fn := range subs {
		fn(p)
	}
}

// Scroll moves the progress by delta.
func (t *Tracker) Scroll(delta float64) {
	t.Set(t.Progress() + delta)
}

func (t *Tracker) Progress() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.progress
}

// Bind keeps fn updated with tr's value for the tracker's progress.
func Bind(t *Tracker, tr Transform, fn func(v float64)) func() {
	return t.Subscribe(func(p float64) { fn(tr.At(p)) })
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
