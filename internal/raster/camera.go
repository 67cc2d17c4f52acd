package raster

import (
	"hmd-optics/internal/mathutil"
	"hmd-optics/internal/projection"
)

// Camera is the external observer looking at the rig. It reuses the same
// projection builder and view convention as the simulated eyes, so the
// whole pipeline shares one handedness.
type Camera struct {
	viewProj mathutil.Mat4
}

// NewCamera builds an observer with a symmetric perspective projection.
func NewCamera(eye, target mathutil.Vec3, fovyDeg, aspect, near, far float64) *Camera {
	view := mathutil.LookAtLH(eye, target, mathutil.Vec3{0, 1, 0})
	proj := projection.Symmetric(fovyDeg, aspect, near, far)
	return &Camera{viewProj: mathutil.Mat4Mul(proj, view)}
}

// WorldToScreen projects a world point to pixel coordinates plus NDC
// depth. visible is false for points at or behind the camera plane; the
// returned coordinates may still lie outside the viewport.
func (c *Camera) WorldToScreen(p mathutil.Vec3, w, h int) (x, y, depth float64, visible bool) {
	clip := c.viewProj.MulVec4(mathutil.FromVec3(p))
	if clip[3] <= 1e-9 {
		return 0, 0, 0, false
	}
	ndc := clip.Divide()
	x = (ndc[0] + 1) / 2 * float64(w)
	y = (1 - ndc[1]) / 2 * float64(h)
	return x, y, ndc[2], true
}
