package particles

import (
	"errors"
	"testing"
	"time"
)

func TestFrameQueueDefersNestedRequests(t *testing.T) {
	q := NewFrameQueue(0)
	calls := 0
	var loop FrameFunc
	loop = func(time.Duration) {
		calls++
		q.RequestFrame(loop)
	}
	q.RequestFrame(loop)

	q.Tick()
	if calls != 1 {
		t.Fatalf("calls after one tick = %d, want 1", calls)
	}
	q.Advance(4)
	if calls != 5 {
		t.Errorf("calls after five ticks = %d, want 5", calls)
	}
	if got, want := q.Now(), 5*DefaultFrameInterval; got != want {
		t.Errorf("Now() = %v, want %v", got, want)
	}
}

func TestFrameQueueCancel(t *testing.T) {
	q := NewFrameQueue(time.Millisecond)
	ran := map[string]bool{}
	a := q.RequestFrame(func(time.Duration) { ran["a"] = true })
	b := q.RequestFrame(func(time.Duration) { ran["b"] = true })
	if a == 0 || b == 0 || a == b {
		t.Fatalf("handles a=%d b=%d, want distinct and non-zero", a, b)
	}

	q.CancelFrame(a)
	q.Tick()
	if ran["a"] || !ran["b"] {
		t.Errorf("ran = %v, want only b", ran)
	}
	if q.Cancels() != 1 {
		t.Errorf("Cancels() = %d, want 1", q.Cancels())
	}

	// cancelling a handle that already ran is harmless
	q.CancelFrame(b)
	if q.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", q.Pending())
	}
}

func TestWindowListeners(t *testing.T) {
	win := NewWindow(100, 50)
	var sizes [][2]int
	removeResize := win.OnResize(func(w, h int) { sizes = append(sizes, [2]int{w, h}) })
	moves := 0
	removePointer := win.OnPointerMove(func(x, y float64) { moves++ })

	win.Resize(100, 50)
	win.Resize(200, 80)
	win.MovePointer(1, 2)
	if len(sizes) != 1 || sizes[0] != [2]int{200, 80} {
		t.Errorf("resize events = %v, want one 200x80", sizes)
	}
	if moves != 1 {
		t.Errorf("pointer events = %d, want 1", moves)
	}

	removeResize()
	removePointer()
	win.Resize(10, 10)
	win.MovePointer(3, 4)
	if len(sizes) != 1 || moves != 1 {
		t.Errorf("listeners still firing after removal: sizes=%v moves=%d", sizes, moves)
	}
	if w, h := win.Size(); w != 10 || h != 10 {
		t.Errorf("Size() = %dx%d, want 10x10", w, h)
	}
}

func TestParseVariant(t *testing.T) {
	tests := []struct {
		input   string
		want    Variant
		wantErr bool
	}{
		{"neural", VariantNeural, false},
		{" Particles ", VariantParticles, false},
		{"MATRIX", VariantMatrix, false},
		{"snow", "", true},
	}
	for _, tt := range tests {
		got, err := ParseVariant(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseVariant(%q) err = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if tt.wantErr && !errors.Is(err, ErrUnknownVariant) {
			t.Errorf("ParseVariant(%q) err = %v, want ErrUnknownVariant", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("ParseVariant(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}

	if _, err := NewSimulation("snow", Options{}, testPalette); !errors.Is(err, ErrUnknownVariant) {
		t.Errorf("NewSimulation(snow) err = %v, want ErrUnknownVariant", err)
	}
}

func TestOptionsDefaultsKeepZeroCount(t *testing.T) {
	o := Options{Opacity: 0.8}.withDefaults(VariantNeural)
	if o.Count != 0 {
		t.Errorf("Count = %d, want 0 to stay 0", o.Count)
	}
	if o.Opacity != 0.8 {
		t.Errorf("Opacity = %v, want caller's 0.8", o.Opacity)
	}
	if o.LinkDistance != 120 || o.PointerDistance != 150 || o.NeighborWindow != 10 {
		t.Errorf("neural defaults not applied: %+v", o)
	}
}

func TestOptionsAutoCount(t *testing.T) {
	tests := []struct {
		variant Variant
		count   int
		want    int
	}{
		{VariantMatrix, AutoCount, AutoCount},
		{VariantMatrix, -7, AutoCount},
		{VariantMatrix, 0, 0},
		{VariantNeural, AutoCount, 0},
		{VariantParticles, AutoCount, 0},
	}
	for _, tt := range tests {
		o := Options{Count: tt.count}.withDefaults(tt.variant)
		if o.Count != tt.want {
			t.Errorf("withDefaults(%s, count %d).Count = %d, want %d", tt.variant, tt.count, o.Count, tt.want)
		}
	}
}
