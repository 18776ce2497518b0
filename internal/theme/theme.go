// Package theme holds the colour palettes the backdrop renderers draw with.
//
// A palette is read-only once built: renderers receive it at construction and
// never write back to it.
package theme

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"math/rand"
	"sort"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// DefaultAccent is used when a theme does not define an accent colour.
const DefaultAccent = "#00ff88"

var ErrUnknownTheme = errors.New("unknown theme")

// Palette is the small set of named colours a renderer samples from.
type Palette struct {
	Primary    color.NRGBA
	Secondary  color.NRGBA
	Accent     color.NRGBA
	Background color.NRGBA
	Dark       bool
}

// Spec is the hex form of a palette as written in scene files.
type Spec struct {
	Primary    string `yaml:"primary"`
	Secondary  string `yaml:"secondary"`
	Accent     string `yaml:"accent"`
	Background string `yaml:"background"`
	Mode       string `yaml:"mode"`
}

// Palette parses every hex colour in s.
func (s Spec) Palette() (Palette, error) {
	var p Palette
	var err error
	if p.Primary, err = ParseHex(s.Primary); err != nil {
		return Palette{}, fmt.Errorf("primary: %w", err)
	}
	if p.Secondary, err = ParseHex(s.Secondary); err != nil {
		return Palette{}, fmt.Errorf("secondary: %w", err)
	}
	accent := s.Accent
	if accent == "" {
		accent = DefaultAccent
	}
	if p.Accent, err = ParseHex(accent); err != nil {
		return Palette{}, fmt.Errorf("accent: %w", err)
	}
	if p.Background, err = ParseHex(s.Background); err != nil {
		return Palette{}, fmt.Errorf("background: %w", err)
	}
	switch strings.ToLower(s.Mode) {
	case "", "dark":
		p.Dark = true
	case "light":
		p.Dark = false
	default:
		return Palette{}, fmt.Errorf("mode %q: want dark or light", s.Mode)
	}
	return p, nil
}

// ParseHex parses "#rrggbb" (or "#rgb") into an opaque colour.
func ParseHex(s string) (color.NRGBA, error) {
	s = strings.TrimSpace(s)
	if len(s) == 4 && s[0] == '#' {
		s = "#" + strings.Repeat(s[1:2], 2) + strings.Repeat(s[2:3], 2) + strings.Repeat(s[3:4], 2)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("parse colour %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
}

// WithAlpha returns c with its alpha set to a (0..1).
func WithAlpha(c color.NRGBA, a float64) color.NRGBA {
	if a <= 0 || math.IsNaN(a) {
		c.A = 0
		return c
	}
	if a >= 1 {
		c.A = 255
		return c
	}
	c.A = uint8(a * 255)
	return c
}

// Blend mixes a towards b by t in RGB space. The result is opaque.
func Blend(a, b color.NRGBA, t float64) color.NRGBA {
	ca := colorful.Color{R: float64(a.R) / 255, G: float64(a.G) / 255, B: float64(a.B) / 255}
	cb := colorful.Color{R: float64(b.R) / 255, G: float64(b.G) / 255, B: float64(b.B) / 255}
	r, g, bl := ca.BlendRgb(cb, clamp01(t)).Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: bl, A: 255}
}

// Flatten composites c over the background using c's alpha.
func (p Palette) Flatten(c color.NRGBA) color.NRGBA {
	return Blend(p.Background, c, float64(c.A)/255)
}

// Sample picks one of the first n palette colours (primary, secondary, accent).
func (p Palette) Sample(rng *rand.Rand, n int) color.NRGBA {
	colors := [...]color.NRGBA{p.Primary, p.Secondary, p.Accent}
	if n < 1 {
		n = 1
	}
	if n > len(colors) {
		n = len(colors)
	}
	return colors[rng.Intn(n)]
}

// Catalog maps theme names ("glass/dark") to palettes.
type Catalog map[string]Palette

// Get looks a palette up by name.
func (c Catalog) Get(name string) (Palette, error) {
	p, ok := c[name]
	if !ok {
		return Palette{}, fmt.Errorf("%w: %q", ErrUnknownTheme, name)
	}
	return p, nil
}

// Names returns the catalog's theme names in sorted order.
func (c Catalog) Names() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Build parses a set of specs into a catalog.
func Build(specs map[string]Spec) (Catalog, error) {
	cat := make(Catalog, len(specs))
	for name, spec := range specs {
		p, err := spec.Palette()
		if err != nil {
			return nil, fmt.Errorf("theme %q: %w", name, err)
		}
		cat[name] = p
	}
	return cat, nil
}

// Builtin returns the neo-brutal and glass themes in both modes.
func Builtin() Catalog {
	cat, err := Build(builtinSpecs)
	if err != nil {
		panic(err)
	}
	return cat
}

var builtinSpecs = map[string]Spec{
	"neo-brutal/dark":  {Primary: "#4361EE", Secondary: "#F72585", Background: "#121212", Mode: "dark"},
	"neo-brutal/light": {Primary: "#4361EE", Secondary: "#F72585", Background: "#F8F8F8", Mode: "light"},
	"glass/dark":       {Primary: "#6366F1", Secondary: "#EC4899", Background: "#0F172A", Mode: "dark"},
	"glass/light":      {Primary: "#6366F1", Secondary: "#EC4899", Background: "#F8FAFC", Mode: "light"},
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
