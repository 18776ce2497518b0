package particles

import "image/color"

// Canvas is the 2D drawing surface a renderer owns for its lifetime.
//
// Coordinates are floating-point pixels with the origin in the top-left
// corner. DrawGlyph places the glyph's baseline at y, like a canvas fillText.
type Canvas interface {
	Size() (w, h int)
	Resize(w, h int)

	Clear()
	// Fade paints c over the whole surface using c's alpha, leaving a trail.
	Fade(c color.NRGBA)

	FillCircle(x, y, r float64, c color.NRGBA)
	FillRect(x, y, w, h float64, c color.NRGBA)
	FillTriangle(x1, y1, x2, y2, x3, y3 float64, c color.NRGBA)
	StrokeLine(x1, y1, x2, y2, width float64, c color.NRGBA)
	DrawGlyph(r rune, x, y, size float64, c color.NRGBA)
}
