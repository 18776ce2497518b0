// Package termview draws backdrop renderers into a terminal with tcell.
//
// Renderers keep working in pixels. The canvas maps them onto character
// cells of CellWidth×CellHeight pixels and keeps one glyph per cell.
package termview

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/Zachkp/portfolio/internal/theme"
)

const (
	CellWidth  = 8
	CellHeight = 16

	// minStrength is where a fading cell is dropped.
	minStrength = 0.06
)

// Cell is one character cell: a glyph in a base colour shown at a strength
// between 0 (background) and 1 (full colour).
type Cell struct {
	Rune     rune
	Color    color.NRGBA
	Strength float64
}

// Canvas is a particles.Canvas backed by a cell buffer.
type Canvas struct {
	palette    theme.Palette
	w, h       int
	cols, rows int
	cells      []Cell
}

func NewCanvas(pal theme.Palette) *Canvas {
	return &Canvas{palette: pal}
}

func (c *Canvas) Size() (int, int) { return c.w, c.h }

// Grid is the canvas size in cells.
func (c *Canvas) Grid() (cols, rows int) { return c.cols, c.rows }

// Cell returns the cell at column x, row y. Out of range cells are empty.
func (c *Canvas) Cell(x, y int) Cell {
	if x < 0 || y < 0 || x >= c.cols || y >= c.rows {
		return Cell{}
	}
	return c.cells[y*c.cols+x]
}

func (c *Canvas) Resize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	cols := (w + CellWidth - 1) / CellWidth
	rows := (h + CellHeight - 1) / CellHeight
	next := make([]Cell, cols*rows)
	for y := 0; y < rows && y < c.rows; y++ {
		for x := 0; x < cols && x < c.cols; x++ {
			next[y*cols+x] = c.cells[y*c.cols+x]
		}
	}
	c.w, c.h = w, h
	c.cols, c.rows = cols, rows
	c.cells = next
}

func (c *Canvas) Clear() {
	for i := range c.cells {
		c.cells[i] = Cell{}
	}
}

// Fade weakens every cell by the colour's alpha, the cell equivalent of
// painting a translucent background over the whole surface.
func (c *Canvas) Fade(col color.NRGBA) {
	keep := 1 - float64(col.A)/255
	for i := range c.cells {
		cell := &c.cells[i]
		if cell.Rune == 0 {
			continue
		}
		cell.Strength *= keep
		if cell.Strength < minStrength {
			*cell = Cell{}
		}
	}
}

func (c *Canvas) FillCircle(x, y, r float64, col color.NRGBA) {
	glyph := '•'
	if r >= CellWidth/2 {
		glyph = '●'
	}
	cx, cy := c.cellAt(x, y)
	c.put(cx, cy, glyph, col)
}

func (c *Canvas) FillRect(x, y, w, h float64, col color.NRGBA) {
	x0, y0 := c.cellAt(x, y)
	x1, y1 := c.cellAt(x+w-1, y+h-1)
	x0, y0 = max(x0, 0), max(y0, 0)
	x1, y1 = min(x1, c.cols-1), min(y1, c.rows-1)
	for cy := y0; cy <= y1; cy++ {
		for cx := x0; cx <= x1; cx++ {
			c.put(cx, cy, '■', col)
		}
	}
}

func (c *Canvas) FillTriangle(x1, y1, x2, y2, x3, y3 float64, col color.NRGBA) {
	cx, cy := c.cellAt((x1+x2+x3)/3, (y1+y2+y3)/3)
	c.put(cx, cy, '▲', col)
}

// StrokeLine walks the cells between both ends. Lines never overwrite a
// stronger glyph, so nodes stay on top of their links.
func (c *Canvas) StrokeLine(x1, y1, x2, y2, _ float64, col color.NRGBA) {
	glyph := lineGlyph(x2-x1, y2-y1)
	ax, ay := c.cellAt(x1, y1)
	bx, by := c.cellAt(x2, y2)

	dx, dy := abs(bx-ax), -abs(by-ay)
	sx, sy := 1, 1
	if ax > bx {
		sx = -1
	}
	if ay > by {
		sy = -1
	}
	e := dx + dy
	for {
		strength := float64(col.A) / 255
		if cur := c.Cell(ax, ay); cur.Rune == 0 || cur.Strength < strength {
			c.put(ax, ay, glyph, col)
		}
		if ax == bx && ay == by {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			ax += sx
		}
		if e2 <= dx {
			e += dx
			ay += sy
		}
	}
}

// DrawGlyph puts r in the cell whose row contains the baseline's pixel row.
func (c *Canvas) DrawGlyph(r rune, x, y, _ float64, col color.NRGBA) {
	cx, cy := c.cellAt(x, y-1)
	c.put(cx, cy, r, col)
}

// Style returns the screen style of a cell.
func (c *Canvas) Style(cell Cell) tcell.Style {
	bg := tcellColor(c.palette.Background)
	st := tcell.StyleDefault.Background(bg)
	if cell.Rune == 0 {
		return st
	}
	fg := theme.Blend(c.palette.Background, cell.Color, cell.Strength)
	return st.Foreground(tcellColor(fg))
}

// Show copies the cell buffer to the screen. Wide glyphs cover the cell to
// their right. The caller calls screen.Show.
func (c *Canvas) Show(s tcell.Screen) {
	for y := 0; y < c.rows; y++ {
		for x := 0; x < c.cols; x++ {
			cell := c.cells[y*c.cols+x]
			r := cell.Rune
			if r == 0 {
				r = ' '
			}
			s.SetContent(x, y, r, nil, c.Style(cell))
			if runewidth.RuneWidth(r) == 2 {
				x++
			}
		}
	}
}

func (c *Canvas) cellAt(x, y float64) (int, int) {
	if math.IsNaN(x) || math.IsNaN(y) {
		return -1, -1
	}
	return int(math.Floor(x / CellWidth)), int(math.Floor(y / CellHeight))
}

func (c *Canvas) put(x, y int, r rune, col color.NRGBA) {
	if x < 0 || y < 0 || x >= c.cols || y >= c.rows {
		return
	}
	c.cells[y*c.cols+x] = Cell{
		Rune:     r,
		Color:    color.NRGBA{R: col.R, G: col.G, B: col.B, A: 255},
		Strength: float64(col.A) / 255,
	}
}

func lineGlyph(dx, dy float64) rune {
	angle := math.Atan2(dy, dx) * 180 / math.Pi
	if angle < 0 {
		angle += 180
	}
	switch {
	case angle < 22.5 || angle >= 157.5:
		return '─'
	case angle < 67.5:
		return '╲'
	case angle < 112.5:
		return '│'
	default:
		return '╱'
	}
}

func tcellColor(c color.NRGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
