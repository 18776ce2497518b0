package preview

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/Zachkp/portfolio/internal/particles"
	"github.com/Zachkp/portfolio/internal/scroll"
	"github.com/Zachkp/portfolio/internal/theme"
)

const (
	// wheelStep is the scroll progress moved per wheel notch.
	wheelStep = 0.05
	// minOpacity is how far the backdrop fades at the bottom of the page.
	minOpacity = 0.2
)

// LayerSpec describes one backdrop to mount in the window.
type LayerSpec struct {
	Name    string
	Variant particles.Variant
	Options particles.Options
}

// Game is the ebiten game showing a stack of backdrops. The mouse wheel
// stands in for page scroll and fades the backdrops out the further down the
// "page" you are.
type Game struct {
	stack    *Stack
	canvases []*Canvas
	palette  theme.Palette

	tracker *scroll.Tracker
	opacity float64
	unbind  func()

	cursorX, cursorY int
	showHelp         bool
}

// NewGame builds every layer and starts them.
func NewGame(pal theme.Palette, specs []LayerSpec, w, h int) (*Game, error) {
	if len(specs) == 0 {
		return nil, errors.New("preview needs at least one backdrop")
	}
	g := &Game{
		stack:    NewStack(w, h),
		palette:  pal,
		tracker:  scroll.NewTracker(),
		showHelp: true,
		cursorX:  -1,
		cursorY:  -1,
	}
	for _, spec := range specs {
		sim, err := particles.NewSimulation(spec.Variant, spec.Options, pal)
		if err != nil {
			return nil, fmt.Errorf("backdrop %q: %w", spec.Name, err)
		}
		c, err := NewCanvas()
		if err != nil {
			return nil, err
		}
		g.canvases = append(g.canvases, c)
		g.stack.Add(spec.Name, sim, c)
	}
	g.unbind = scroll.Bind(g.tracker, scroll.Fade(0, 1, 1, minOpacity), func(v float64) {
		g.opacity = v
	})
	g.stack.StartAll()
	return g, nil
}

// Close unmounts every layer.
func (g *Game) Close() {
	g.stack.StopAll()
	if g.unbind != nil {
		g.unbind()
		g.unbind = nil
	}
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.showHelp = !g.showHelp
	}
	for i, key := range []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5} {
		if inpututil.IsKeyJustPressed(key) {
			g.stack.Toggle(i)
		}
	}

	if _, dy := ebiten.Wheel(); dy != 0 {
		g.tracker.Scroll(-dy * wheelStep)
	}

	x, y := ebiten.CursorPosition()
	if x != g.cursorX || y != g.cursorY {
		g.cursorX, g.cursorY = x, y
		g.stack.MovePointer(float64(x), float64(y))
	}

	g.stack.Tick()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.palette.Background)
	for i, l := range g.stack.Layers() {
		img := g.canvases[i].Image()
		if img == nil || !l.Renderer.Running() {
			continue
		}
		op := &ebiten.DrawImageOptions{}
		op.ColorScale.ScaleAlpha(float32(g.opacity))
		screen.DrawImage(img, op)
	}
	if g.showHelp {
		ebitenutil.DebugPrintAt(screen, g.help(), 8, 8)
	}
}

func (g *Game) help() string {
	var b strings.Builder
	fmt.Fprintf(&b, "scroll %.0f%%  opacity %.2f  fps %.0f\n", g.tracker.Progress()*100, g.opacity, ebiten.ActualFPS())
	for i, l := range g.stack.Layers() {
		state := "off"
		if l.Renderer.Running() {
			state = "on"
		}
		fmt.Fprintf(&b, "[%d] %s: %s\n", i+1, l.Name, state)
	}
	b.WriteString("wheel: scroll  h: help  q: quit")
	return b.String()
}

// Layout resizes the shared window to the outside size, so every running
// renderer resizes its canvas in the same frame.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.stack.Resize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

// Run opens the window and blocks until it is closed.
func Run(g *Game, title string) error {
	w, h := g.stack.Size()
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	defer g.Close()
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
