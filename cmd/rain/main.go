// Command rain draws a portfolio backdrop in the terminal. Press q or Esc
// to quit.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/particles"
	"github.com/Zachkp/portfolio/internal/termview"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "rain: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()
	scenePath := flag.String("scene", cfg.SceneFile, "scene file (empty for the built-in scene)")
	themeName := flag.String("theme", "", "theme name (default: the scene's theme)")
	name := flag.String("backdrop", "matrix", "backdrop preset or variant (neural, particles, matrix)")
	fps := flag.Int("fps", 30, "frames per second")
	flag.Parse()

	scene, err := config.LoadScene(*scenePath)
	if err != nil {
		return err
	}
	pal, err := scene.Palette(*themeName)
	if err != nil {
		return err
	}
	preset, ok := scene.Backdrop(*name)
	if !ok {
		preset = config.Backdrop{Name: *name, Variant: *name}
	}
	variant, opts, err := preset.Options()
	if err != nil {
		return err
	}
	if variant == particles.VariantMatrix {
		// One glyph row per terminal row.
		opts.FontSize = termview.CellHeight
	}
	sim, err := particles.NewSimulation(variant, opts, pal)
	if err != nil {
		return err
	}
	if *fps <= 0 {
		*fps = 30
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return termview.Run(ctx, screen, sim, pal, termview.Config{
		FrameInterval: time.Second / time.Duration(*fps),
		Mouse:         sim.Interactive(),
	})
}
