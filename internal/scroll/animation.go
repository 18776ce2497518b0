package scroll

import "github.com/tanema/gween/ease"

// Options configures the fade/slide/scale-in preset. Zero values are not
// defaults; start from DefaultOptions.
type Options struct {
	Start, End               float64
	YStart, YEnd             float64
	OpacityStart, OpacityEnd float64
	ScaleStart, ScaleEnd     float64
	Ease                     ease.TweenFunc
}

// DefaultOptions slides content up 50px while fading it in and growing it
// from 95% over the whole page.
func DefaultOptions() Options {
	return Options{
		Start:        0,
		End:          1,
		YStart:       50,
		YEnd:         0,
		OpacityStart: 0,
		OpacityEnd:   1,
		ScaleStart:   0.95,
		ScaleEnd:     1,
	}
}

// Style is the set of values a layout component applies for one progress.
type Style struct {
	Y       float64 `json:"y"`
	Opacity float64 `json:"opacity"`
	Scale   float64 `json:"scale"`
}

// Animation bundles the three transforms of a scroll-in effect.
type Animation struct {
	Y       Transform
	Opacity Transform
	Scale   Transform
}

func NewAnimation(o Options) Animation {
	in := Breakpoints{Start: o.Start, End: o.End}
	return Animation{
		Y:       Transform{In: in, Out: Bounds{From: o.YStart, To: o.YEnd}, Ease: o.Ease},
		Opacity: Transform{In: in, Out: Bounds{From: o.OpacityStart, To: o.OpacityEnd}, Ease: o.Ease},
		Scale:   Transform{In: in, Out: Bounds{From: o.ScaleStart, To: o.ScaleEnd}, Ease: o.Ease},
	}
}

// Fade only animates opacity.
func Fade(start, end, from, to float64) Transform {
	return Linear(Breakpoints{Start: start, End: end}, Bounds{From: from, To: to})
}

// Scale only animates scale; the scroll-in preset grows from 0.95 to 1.
func Scale(start, end, from, to float64) Transform {
	return Linear(Breakpoints{Start: start, End: end}, Bounds{From: from, To: to})
}

// At evaluates all three transforms.
func (a Animation) At(p float64) Style {
	return Style{
		Y:       a.Y.At(p),
		Opacity: a.Opacity.At(p),
		Scale:   a.Scale.At(p),
	}
}
