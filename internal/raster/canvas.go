// Package raster draws renderer frames into an in-memory image so the server
// can hand out backdrop snapshots as PNGs.
package raster

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// circleKappa places cubic control points so four curves approximate a circle.
const circleKappa = 0.5522847498

var glyphFont = mustParseFont(goregular.TTF)

func mustParseFont(ttf []byte) *opentype.Font {
	f, err := opentype.Parse(ttf)
	if err != nil {
		panic(err)
	}
	return f
}

// Canvas is a particles.Canvas backed by an *image.RGBA.
type Canvas struct {
	img   *image.RGBA
	ras   *vector.Rasterizer
	faces map[int]font.Face
	buf   sfnt.Buffer
}

// NewCanvas returns a transparent w×h canvas.
func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		ras:   vector.NewRasterizer(1, 1),
		faces: make(map[int]font.Face),
	}
	c.Resize(w, h)
	return c
}

// Image is the backing image. It is replaced on Resize.
func (c *Canvas) Image() *image.RGBA { return c.img }

func (c *Canvas) Size() (int, int) {
	b := c.img.Bounds()
	return b.Dx(), b.Dy()
}

func (c *Canvas) Resize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	c.img = image.NewRGBA(image.Rect(0, 0, w, h))
}

func (c *Canvas) Clear() {
	draw.Draw(c.img, c.img.Bounds(), image.Transparent, image.Point{}, draw.Src)
}

func (c *Canvas) Fade(col color.NRGBA) {
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(col), image.Point{}, draw.Over)
}

func (c *Canvas) FillRect(x, y, w, h float64, col color.NRGBA) {
	r := image.Rect(
		int(math.Floor(x)), int(math.Floor(y)),
		int(math.Ceil(x+w)), int(math.Ceil(y+h)),
	).Intersect(c.img.Bounds())
	if r.Empty() {
		return
	}
	draw.Draw(c.img, r, image.NewUniform(col), image.Point{}, draw.Over)
}

func (c *Canvas) FillCircle(x, y, r float64, col color.NRGBA) {
	if r <= 0 {
		return
	}
	k := r * circleKappa
	c.fill(x-r, y-r, x+r, y+r, col, func(ox, oy float64) {
		cx, cy := float32(x-ox), float32(y-oy)
		rr, kk := float32(r), float32(k)
		c.ras.MoveTo(cx+rr, cy)
		c.ras.CubeTo(cx+rr, cy+kk, cx+kk, cy+rr, cx, cy+rr)
		c.ras.CubeTo(cx-kk, cy+rr, cx-rr, cy+kk, cx-rr, cy)
		c.ras.CubeTo(cx-rr, cy-kk, cx-kk, cy-rr, cx, cy-rr)
		c.ras.CubeTo(cx+kk, cy-rr, cx+rr, cy-kk, cx+rr, cy)
		c.ras.ClosePath()
	})
}

func (c *Canvas) FillTriangle(x1, y1, x2, y2, x3, y3 float64, col color.NRGBA) {
	minX := math.Min(x1, math.Min(x2, x3))
	minY := math.Min(y1, math.Min(y2, y3))
	maxX := math.Max(x1, math.Max(x2, x3))
	maxY := math.Max(y1, math.Max(y2, y3))
	c.fill(minX, minY, maxX, maxY, col, func(ox, oy float64) {
		c.ras.MoveTo(float32(x1-ox), float32(y1-oy))
		c.ras.LineTo(float32(x2-ox), float32(y2-oy))
		c.ras.LineTo(float32(x3-ox), float32(y3-oy))
		c.ras.ClosePath()
	})
}

// StrokeLine fills the quad around the segment. Widths under one pixel are
// widened to one so hairlines stay visible.
func (c *Canvas) StrokeLine(x1, y1, x2, y2, width float64, col color.NRGBA) {
	dx, dy := x2-x1, y2-y1
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}
	half := math.Max(width, 1) / 2
	nx, ny := -dy/length*half, dx/length*half

	minX := math.Min(x1, x2) - half
	minY := math.Min(y1, y2) - half
	maxX := math.Max(x1, x2) + half
	maxY := math.Max(y1, y2) + half
	c.fill(minX, minY, maxX, maxY, col, func(ox, oy float64) {
		c.ras.MoveTo(float32(x1+nx-ox), float32(y1+ny-oy))
		c.ras.LineTo(float32(x2+nx-ox), float32(y2+ny-oy))
		c.ras.LineTo(float32(x2-nx-ox), float32(y2-ny-oy))
		c.ras.LineTo(float32(x1-nx-ox), float32(y1-ny-oy))
		c.ras.ClosePath()
	})
}

// DrawGlyph draws r with its baseline at y, sized to the nearest pixel.
// Runes the font does not cover are skipped.
func (c *Canvas) DrawGlyph(r rune, x, y, size float64, col color.NRGBA) {
	if !c.covers(r) {
		return
	}
	face, err := c.face(size)
	if err != nil {
		return
	}
	d := &font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(int(math.Round(x)), int(math.Round(y))),
	}
	d.DrawString(string(r))
}

// covers reports whether the font has a real glyph for r. Index 0 is the
// font's missing-glyph box.
func (c *Canvas) covers(r rune) bool {
	idx, err := glyphFont.GlyphIndex(&c.buf, r)
	return err == nil && idx != 0
}

func (c *Canvas) face(size float64) (font.Face, error) {
	px := max(int(math.Round(size)), 1)
	if f, ok := c.faces[px]; ok {
		return f, nil
	}
	f, err := opentype.NewFace(glyphFont, &opentype.FaceOptions{
		Size:    float64(px),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, err
	}
	c.faces[px] = f
	return f, nil
}

// fill rasterizes a path confined to the given bounding box. The path
// callback receives the box origin and must emit coordinates relative to it,
// so each shape only costs its own area.
func (c *Canvas) fill(minX, minY, maxX, maxY float64, col color.NRGBA, path func(ox, oy float64)) {
	box := image.Rect(
		int(math.Floor(minX)), int(math.Floor(minY)),
		int(math.Ceil(maxX))+1, int(math.Ceil(maxY))+1,
	)
	clipped := box.Intersect(c.img.Bounds())
	if clipped.Empty() {
		return
	}
	c.ras.Reset(box.Dx(), box.Dy())
	c.ras.DrawOp = draw.Over
	path(float64(box.Min.X), float64(box.Min.Y))

	if clipped != box {
		c.drawClipped(box, clipped, col)
		return
	}
	c.ras.Draw(c.img, box, image.NewUniform(col), image.Point{})
}

// drawClipped renders a box that hangs off the canvas through a scratch image.
func (c *Canvas) drawClipped(box, clipped image.Rectangle, col color.NRGBA) {
	scratch := image.NewAlpha(image.Rect(0, 0, box.Dx(), box.Dy()))
	c.ras.DrawOp = draw.Src
	c.ras.Draw(scratch, scratch.Bounds(), image.Opaque, image.Point{})
	draw.DrawMask(c.img, clipped, image.NewUniform(col), image.Point{},
		scratch, clipped.Min.Sub(box.Min), draw.Over)
}
