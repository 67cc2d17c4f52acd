package raster

import (
	"image"
	"math"
)

// Color is an RGBA color with 8-bit channels.
type Color struct {
	R, G, B, A uint8
}

// FrameBuffer holds the rendering target as flat slices for cache locality.
type FrameBuffer struct {
	Width  int
	Height int
	Color  []uint8   // RGBA interleaved, len = W*H*4
	ZBuf   []float64 // depth per pixel, len = W*H, initialized to +inf
}

// NewFrameBuffer allocates a zeroed color buffer and +inf z-buffer
// (smaller depth wins, matching NDC depth after projection).
func NewFrameBuffer(w, h int) *FrameBuffer {
	n := w * h
	zbuf := make([]float64, n)
	for i := range zbuf {
		zbuf[i] = math.Inf(1)
	}
	return &FrameBuffer{
		Width:  w,
		Height: h,
		Color:  make([]uint8, n*4),
		ZBuf:   zbuf,
	}
}

// Fill floods the color buffer with one color and resets no depth.
func (fb *FrameBuffer) Fill(c Color) {
	for i := 0; i < len(fb.Color); i += 4 {
		fb.Color[i] = c.R
		fb.Color[i+1] = c.G
		fb.Color[i+2] = c.B
		fb.Color[i+3] = c.A
	}
}

// SetPixel writes a depth-tested pixel. Out-of-bounds writes are dropped.
func (fb *FrameBuffer) SetPixel(x, y int, z float64, c Color) {
	if x < 0 || y < 0 || x >= fb.Width || y >= fb.Height {
		return
	}
	i := y*fb.Width + x
	if z > fb.ZBuf[i] {
		return
	}
	fb.ZBuf[i] = z
	ci := i * 4
	fb.Color[ci] = c.R
	fb.Color[ci+1] = c.G
	fb.Color[ci+2] = c.B
	fb.Color[ci+3] = c.A
}

// Image copies the color buffer into an NRGBA image.
func (fb *FrameBuffer) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	copy(img.Pix, fb.Color)
	return img
}
