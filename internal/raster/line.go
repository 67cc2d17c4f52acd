package raster

import (
	"math"

	"hmd-optics/internal/mathutil"
)

// DrawLine3D projects both endpoints through the camera and rasterizes a
// depth-tested line between them. Segments entirely behind the camera are
// dropped; partially-behind segments are dropped too rather than clipped,
// which is fine for a diagram-style scene where the observer stands well
// back.
func (fb *FrameBuffer) DrawLine3D(cam *Camera, a, b mathutil.Vec3, c Color) {
	x1, y1, z1, v1 := cam.WorldToScreen(a, fb.Width, fb.Height)
	x2, y2, z2, v2 := cam.WorldToScreen(b, fb.Width, fb.Height)
	if !v1 || !v2 {
		return
	}
	fb.drawLine(x1, y1, z1, x2, y2, z2, c)
}

// drawLine is a DDA rasteriser with linear depth interpolation.
func (fb *FrameBuffer) drawLine(x1, y1, z1, x2, y2, z2 float64, c Color) {
	dx := x2 - x1
	dy := y2 - y1
	steps := math.Max(math.Abs(dx), math.Abs(dy))
	if steps < 1 {
		fb.SetPixel(int(x1+0.5), int(y1+0.5), math.Min(z1, z2), c)
		return
	}
	// Skip lines that never touch the viewport.
	if (x1 < 0 && x2 < 0) || (y1 < 0 && y2 < 0) ||
		(x1 >= float64(fb.Width) && x2 >= float64(fb.Width)) ||
		(y1 >= float64(fb.Height) && y2 >= float64(fb.Height)) {
		return
	}
	n := int(steps)
	for i := 0; i <= n; i++ {
		t := float64(i) / steps
		x := x1 + dx*t
		y := y1 + dy*t
		z := z1 + (z2-z1)*t
		fb.SetPixel(int(x+0.5), int(y+0.5), z, c)
	}
}
