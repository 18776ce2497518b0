package termview

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/Zachkp/portfolio/internal/particles"
	"github.com/Zachkp/portfolio/internal/theme"
)

// Config controls the terminal loop.
type Config struct {
	// FrameInterval is the ticker period; zero means 60 FPS.
	FrameInterval time.Duration
	// Mouse enables pointer tracking for interactive simulations.
	Mouse bool
}

// Run mounts sim on a canvas covering the whole screen and draws it until
// ctx is done or the user presses q, Esc or Ctrl-C. The screen must already
// be initialised; the caller owns Fini, which also ends the event reader.
func Run(ctx context.Context, screen tcell.Screen, sim particles.Simulation, pal theme.Palette, cfg Config) error {
	interval := cfg.FrameInterval
	if interval <= 0 {
		interval = particles.DefaultFrameInterval
	}
	if cfg.Mouse {
		screen.EnableMouse()
		defer screen.DisableMouse()
	}
	screen.SetStyle(tcell.StyleDefault.Background(tcellColor(pal.Background)))
	screen.Clear()

	cols, rows := screen.Size()
	canvas := NewCanvas(pal)
	window := particles.NewWindow(cols*CellWidth, rows*CellHeight)
	queue := particles.NewFrameQueue(interval)
	r := particles.New(sim, canvas, queue, window)
	r.Start()
	defer r.Stop()

	done := make(chan struct{})
	defer close(done)
	events := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if quitKey(ev) {
					return nil
				}
			case *tcell.EventResize:
				screen.Sync()
				w, h := ev.Size()
				window.Resize(w*CellWidth, h*CellHeight)
			case *tcell.EventMouse:
				x, y := ev.Position()
				window.MovePointer(float64(x*CellWidth+CellWidth/2), float64(y*CellHeight+CellHeight/2))
			}

		case <-ticker.C:
			queue.Tick()
			canvas.Show(screen)
			screen.Show()
		}
	}
}

func quitKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q' || ev.Rune() == 'Q'
	}
	return false
}
