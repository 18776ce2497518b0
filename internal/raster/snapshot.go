package raster

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"

	"github.com/Zachkp/portfolio/internal/particles"
	"github.com/Zachkp/portfolio/internal/theme"
)

const (
	MaxSide   = 2560
	MaxFrames = 600
)

// Snapshot describes one offline render of a backdrop.
type Snapshot struct {
	Width, Height int
	Frames        int
	// Pointer, when set, is moved to before the first frame.
	Pointer *particles.Pointer
	Palette theme.Palette
	// Transparent skips compositing over the palette background.
	Transparent bool
}

func (s Snapshot) validate() error {
	if s.Width <= 0 || s.Height <= 0 || s.Width > MaxSide || s.Height > MaxSide {
		return fmt.Errorf("snapshot size %dx%d: each side must be within 1..%d", s.Width, s.Height, MaxSide)
	}
	if s.Frames < 0 || s.Frames > MaxFrames {
		return fmt.Errorf("snapshot frames %d: must be within 0..%d", s.Frames, MaxFrames)
	}
	return nil
}

// Render mounts sim on a fresh canvas, advances it s.Frames frames and
// unmounts it again. The renderer never outlives the call.
func Render(sim particles.Simulation, s Snapshot) (*image.RGBA, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}

	canvas := NewCanvas(s.Width, s.Height)
	queue := particles.NewFrameQueue(particles.DefaultFrameInterval)
	window := particles.NewWindow(s.Width, s.Height)
	r := particles.New(sim, canvas, queue, window)

	r.Start()
	if s.Pointer != nil && s.Pointer.Valid {
		window.MovePointer(s.Pointer.X, s.Pointer.Y)
	}
	queue.Advance(s.Frames)
	r.Stop()

	if s.Transparent {
		return canvas.Image(), nil
	}
	out := image.NewRGBA(canvas.Image().Bounds())
	draw.Draw(out, out.Bounds(), image.NewUniform(s.Palette.Background), image.Point{}, draw.Src)
	draw.Draw(out, out.Bounds(), canvas.Image(), image.Point{}, draw.Over)
	return out, nil
}

// EncodePNG writes img with the fastest compression; snapshots are served
// on request, not archived.
func EncodePNG(w io.Writer, img image.Image) error {
	enc := png.Encoder{CompressionLevel: png.BestSpeed}
	if err := enc.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}
