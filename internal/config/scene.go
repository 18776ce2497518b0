package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Zachkp/portfolio/internal/particles"
	"github.com/Zachkp/portfolio/internal/theme"
)

//go:embed scene.yaml
var defaultScene []byte

// Scene is the backdrop scene file.
type Scene struct {
	Theme     string                `yaml:"theme"`
	Themes    map[string]theme.Spec `yaml:"themes"`
	Backdrops []Backdrop            `yaml:"backdrops"`

	// catalog is built once by ParseScene.
	catalog theme.Catalog
}

// Backdrop is one renderer preset. Unset fields take the variant's defaults.
type Backdrop struct {
	Name        string  `yaml:"name"`
	Variant     string  `yaml:"variant"`
	Count       *int    `yaml:"count"`
	Speed       float64 `yaml:"speed"`
	Opacity     float64 `yaml:"opacity"`
	Interactive bool    `yaml:"interactive"`
	FontSize    float64 `yaml:"font_size"`
	IntervalMS  int     `yaml:"interval_ms"`
	Charset     string  `yaml:"charset"`
}

// LoadScene reads a scene file. An empty path loads the built-in scene.
func LoadScene(path string) (*Scene, error) {
	data := defaultScene
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read scene file: %w", err)
		}
	}
	return ParseScene(data)
}

// ParseScene decodes and validates scene YAML.
func ParseScene(data []byte) (*Scene, error) {
	var s Scene
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scene file: %w", err)
	}
	cat, err := s.buildCatalog()
	if err != nil {
		return nil, err
	}
	s.catalog = cat
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks that the theme resolves and every backdrop has a unique
// name, a known variant and sane numbers.
func (s *Scene) Validate() error {
	cat, err := s.Catalog()
	if err != nil {
		return err
	}
	if s.Theme != "" {
		if _, err := cat.Get(s.Theme); err != nil {
			return err
		}
	}
	if len(s.Backdrops) == 0 {
		return errors.New("scene has no backdrops")
	}
	seen := make(map[string]bool, len(s.Backdrops))
	for i, b := range s.Backdrops {
		if b.Name == "" {
			return fmt.Errorf("backdrop %d: missing name", i)
		}
		if seen[b.Name] {
			return fmt.Errorf("backdrop %q: duplicate name", b.Name)
		}
		seen[b.Name] = true
		if _, _, err := b.Options(); err != nil {
			return fmt.Errorf("backdrop %q: %w", b.Name, err)
		}
	}
	return nil
}

// Catalog returns the built-in themes with the scene's themes added. Parsed
// scenes share one catalog, which callers must not modify.
func (s *Scene) Catalog() (theme.Catalog, error) {
	if s.catalog != nil {
		return s.catalog, nil
	}
	return s.buildCatalog()
}

func (s *Scene) buildCatalog() (theme.Catalog, error) {
	cat := theme.Builtin()
	extra, err := theme.Build(s.Themes)
	if err != nil {
		return nil, err
	}
	for name, p := range extra {
		cat[name] = p
	}
	return cat, nil
}

// Palette resolves name, or the scene's theme when name is empty.
func (s *Scene) Palette(name string) (theme.Palette, error) {
	if name == "" {
		name = s.Theme
	}
	if name == "" {
		name = "glass/dark"
	}
	cat, err := s.Catalog()
	if err != nil {
		return theme.Palette{}, err
	}
	return cat.Get(name)
}

// Backdrop finds a preset by name, or the first preset of a variant.
func (s *Scene) Backdrop(name string) (Backdrop, bool) {
	for _, b := range s.Backdrops {
		if b.Name == name {
			return b, true
		}
	}
	for _, b := range s.Backdrops {
		if b.Variant == name {
			return b, true
		}
	}
	return Backdrop{}, false
}

// Options converts the preset into renderer options.
func (b Backdrop) Options() (particles.Variant, particles.Options, error) {
	v, err := particles.ParseVariant(b.Variant)
	if err != nil {
		return "", particles.Options{}, err
	}
	if b.Speed < 0 || b.Opacity < 0 || b.Opacity > 1 || b.FontSize < 0 || b.IntervalMS < 0 {
		return "", particles.Options{}, errors.New("speed, opacity, font_size and interval_ms must not be negative, opacity at most 1")
	}
	if b.Count != nil && *b.Count < 0 {
		return "", particles.Options{}, fmt.Errorf("count %d: must not be negative", *b.Count)
	}

	opts := particles.DefaultOptions(v)
	if b.Count != nil {
		opts.Count = *b.Count
	}
	if b.Speed > 0 {
		opts.Speed = b.Speed
	}
	if b.Opacity > 0 {
		opts.Opacity = b.Opacity
	}
	if b.FontSize > 0 {
		opts.FontSize = b.FontSize
	}
	if b.IntervalMS > 0 {
		opts.Interval = time.Duration(b.IntervalMS) * time.Millisecond
	}
	if b.Charset != "" {
		opts.Charset = b.Charset
	}
	opts.Interactive = b.Interactive
	return v, opts, nil
}
