package raster

import (
	"image"
	"math"
)

// FrameBuffer is a square RGBA target with a depth buffer. Larger Z is
// closer to the viewer.
type FrameBuffer struct {
	Size  int
	Color []uint8   // RGBA interleaved, len = Size*Size*4
	Depth []float64 // len = Size*Size, cleared to -inf
}

// NewFrameBuffer allocates a transparent buffer of size×size pixels.
func NewFrameBuffer(size int) *FrameBuffer {
	depth := make([]float64, size*size)
	for i := range depth {
		depth[i] = math.Inf(-1)
	}
	return &FrameBuffer{
		Size:  size,
		Color: make([]uint8, size*size*4),
		Depth: depth,
	}
}

// Image wraps the color buffer without copying.
func (fb *FrameBuffer) Image() *image.NRGBA {
	return &image.NRGBA{
		Pix:    fb.Color,
		Stride: fb.Size * 4,
		Rect:   image.Rect(0, 0, fb.Size, fb.Size),
	}
}
