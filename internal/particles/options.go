package particles

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/Zachkp/portfolio/internal/theme"
)

// Variant names one of the three renderer kinds.
type Variant string

const (
	VariantNeural    Variant = "neural"
	VariantParticles Variant = "particles"
	VariantMatrix    Variant = "matrix"
)

var ErrUnknownVariant = errors.New("unknown renderer variant")

// Variants lists every variant in a stable order.
func Variants() []Variant {
	return []Variant{VariantNeural, VariantParticles, VariantMatrix}
}

// ParseVariant accepts a variant name, case-insensitively.
func ParseVariant(s string) (Variant, error) {
	v := Variant(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Variants() {
		if v == known {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownVariant, s)
}

// MatrixCharset mixes binary, katakana and maths symbols.
const MatrixCharset = "01アイエムエルデータサイエンスニューラルネットワーク学習モデルMLAINNDLΣ∑∫∂∇∆λπθ<>/{}[]"

// AutoCount asks matrix rain for one column per FontSize of width. Other
// variants treat it as zero.
const AutoCount = -1

// Options configures a simulation. Count is taken as given (zero means no
// entities); other zero fields fall back to the variant's defaults.
type Options struct {
	Count   int
	Speed   float64
	Opacity float64

	// neural network
	Interactive     bool
	LinkDistance    float64
	PointerDistance float64
	NeighborWindow  int
	DrawEvery       int
	PointerEvery    int

	// matrix rain
	FontSize float64
	Interval time.Duration
	Charset  string

	// Seed fixes the random source; zero seeds from the clock.
	Seed int64
}

// DefaultOptions returns the stock configuration of a variant.
func DefaultOptions(v Variant) Options {
	switch v {
	case VariantNeural:
		return Options{
			Count:           25,
			Speed:           1,
			Opacity:         0.3,
			LinkDistance:    120,
			PointerDistance: 150,
			NeighborWindow:  10,
			DrawEvery:       2,
			PointerEvery:    3,
		}
	case VariantParticles:
		return Options{Count: 40, Speed: 0.3, Opacity: 1}
	case VariantMatrix:
		return Options{
			Count:    AutoCount,
			Speed:    1,
			Opacity:  0.5,
			FontSize: 16,
			Interval: 80 * time.Millisecond,
			Charset:  MatrixCharset,
		}
	}
	return Options{}
}

func (o Options) withDefaults(v Variant) Options {
	d := DefaultOptions(v)
	if o.Speed <= 0 {
		o.Speed = d.Speed
	}
	if o.Opacity <= 0 {
		o.Opacity = d.Opacity
	}
	if o.LinkDistance <= 0 {
		o.LinkDistance = d.LinkDistance
	}
	if o.PointerDistance <= 0 {
		o.PointerDistance = d.PointerDistance
	}
	if o.NeighborWindow <= 0 {
		o.NeighborWindow = d.NeighborWindow
	}
	if o.DrawEvery <= 0 {
		o.DrawEvery = d.DrawEvery
	}
	if o.PointerEvery <= 0 {
		o.PointerEvery = d.PointerEvery
	}
	if o.FontSize <= 0 {
		o.FontSize = d.FontSize
	}
	if o.Interval <= 0 {
		o.Interval = d.Interval
	}
	if o.Charset == "" {
		o.Charset = d.Charset
	}
	if o.Count < 0 {
		o.Count = 0
		if v == VariantMatrix {
			o.Count = AutoCount
		}
	}
	return o
}

func (o Options) rng() *rand.Rand {
	seed := o.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// NewSimulation builds the simulation for a variant.
func NewSimulation(v Variant, opts Options, pal theme.Palette) (Simulation, error) {
	switch v {
	case VariantNeural:
		return NewNeuralNetwork(opts, pal), nil
	case VariantParticles:
		return NewDataParticles(opts, pal), nil
	case VariantMatrix:
		return NewMatrixRain(opts, pal), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, v)
}
