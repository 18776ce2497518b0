// Package preview runs backdrop renderers in an ebiten window, layered the
// way the portfolio page stacks them behind its content.
package preview

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"
)

// Canvas is a particles.Canvas drawing into an offscreen ebiten image. The
// image persists between frames so fading trails accumulate.
type Canvas struct {
	img   *ebiten.Image
	white *ebiten.Image
	src   *text.GoTextFaceSource
	faces map[float64]*text.GoTextFace
	w, h  int
}

// NewCanvas loads the glyph face and returns an empty canvas. Call Resize
// before drawing.
func NewCanvas() (*Canvas, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("load glyph face: %w", err)
	}
	base := ebiten.NewImage(3, 3)
	base.Fill(color.White)
	return &Canvas{
		white: base.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image),
		src:   src,
		faces: make(map[float64]*text.GoTextFace),
	}, nil
}

// Image is the offscreen layer to composite onto the screen.
func (c *Canvas) Image() *ebiten.Image { return c.img }

func (c *Canvas) Size() (int, int) { return c.w, c.h }

func (c *Canvas) Resize(w, h int) {
	if w == c.w && h == c.h && c.img != nil {
		return
	}
	if c.img != nil {
		c.img.Deallocate()
	}
	c.w, c.h = w, h
	if w <= 0 || h <= 0 {
		c.img = nil
		return
	}
	c.img = ebiten.NewImage(w, h)
}

func (c *Canvas) Clear() {
	if c.img != nil {
		c.img.Clear()
	}
}

func (c *Canvas) Fade(col color.NRGBA) {
	if c.img == nil {
		return
	}
	vector.FillRect(c.img, 0, 0, float32(c.w), float32(c.h), col, false)
}

func (c *Canvas) FillCircle(x, y, r float64, col color.NRGBA) {
	if c.img == nil {
		return
	}
	vector.FillCircle(c.img, float32(x), float32(y), float32(r), col, true)
}

func (c *Canvas) FillRect(x, y, w, h float64, col color.NRGBA) {
	if c.img == nil {
		return
	}
	vector.FillRect(c.img, float32(x), float32(y), float32(w), float32(h), col, false)
}

func (c *Canvas) FillTriangle(x1, y1, x2, y2, x3, y3 float64, col color.NRGBA) {
	if c.img == nil {
		return
	}
	r, g, b, a := float32(col.R)/255, float32(col.G)/255, float32(col.B)/255, float32(col.A)/255
	vs := []ebiten.Vertex{
		{DstX: float32(x1), DstY: float32(y1), SrcX: 1, SrcY: 1, ColorR: r, ColorG: g, ColorB: b, ColorA: a},
		{DstX: float32(x2), DstY: float32(y2), SrcX: 1, SrcY: 1, ColorR: r, ColorG: g, ColorB: b, ColorA: a},
		{DstX: float32(x3), DstY: float32(y3), SrcX: 1, SrcY: 1, ColorR: r, ColorG: g, ColorB: b, ColorA: a},
	}
	op := &ebiten.DrawTrianglesOptions{AntiAlias: true}
	c.img.DrawTriangles(vs, []uint16{0, 1, 2}, c.white, op)
}

func (c *Canvas) StrokeLine(x1, y1, x2, y2, width float64, col color.NRGBA) {
	if c.img == nil {
		return
	}
	vector.StrokeLine(c.img, float32(x1), float32(y1), float32(x2), float32(y2), float32(width), col, true)
}

// DrawGlyph places the glyph's baseline at y.
func (c *Canvas) DrawGlyph(r rune, x, y, size float64, col color.NRGBA) {
	if c.img == nil {
		return
	}
	face := c.face(size)
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y-face.Metrics().HAscent)
	op.ColorScale.ScaleWithColor(col)
	text.Draw(c.img, string(r), face, op)
}

func (c *Canvas) face(size float64) *text.GoTextFace {
	f, ok := c.faces[size]
	if !ok {
		f = &text.GoTextFace{Source: c.src, Size: size}
		c.faces[size] = f
	}
	return f
}
