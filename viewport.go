package rendergraph

import "math"

// Viewport is a rectangle of the render target with a depth range.
type Viewport struct {
	X, Y          float32
	Width, Height float32
	MinDepth      float32
	MaxDepth      float32
}

// NewViewport returns a full-depth viewport of the given size at the origin.
func NewViewport(width, height uint32) Viewport {
	return Viewport{Width: float32(width), Height: float32(height), MaxDepth: 1}
}

// Size returns the viewport extent rounded to whole pixels, at least 1x1.
func (v Viewport) Size() (width, height uint32) {
	return pixels(v.Width), pixels(v.Height)
}

// AspectRatio returns width divided by height, or 1 for an empty viewport.
func (v Viewport) AspectRatio() float32 {
	if v.Height == 0 {
		return 1
	}
	return v.Width / v.Height
}

// Scaled returns the viewport with position and extent multiplied by s.
func (v Viewport) Scaled(s float32) Viewport {
	v.X *= s
	v.Y *= s
	v.Width *= s
	v.Height *= s
	return v
}

func pixels(f float32) uint32 {
	if f < 1 {
		return 1
	}
	return uint32(math.Round(float64(f)))
}
