// Package projection builds 4×4 perspective projection matrices for the
// left-handed, row-major convention used across the rig: +Z forward,
// matrices applied to column vectors, clip-space depth in [-1, 1].
package projection

import (
	"errors"
	"math"

	"hmd-optics/internal/mathutil"
	"hmd-optics/internal/optics"
)

// ErrDegenerate is returned when the derived optical state carries
// unbounded extents (magnification at the thin-lens singularity). The
// caller should skip rendering the frustum rather than draw from an
// infinite matrix.
var ErrDegenerate = errors.New("projection: degenerate optical state, frustum unbounded")

// OffAxis builds an asymmetric-frustum perspective matrix from the near
// plane extents. left/right/top/bottom are measured on the near plane
// around the eye's forward axis and need not be symmetric.
func OffAxis(left, right, top, bottom, near, far float64) mathutil.Mat4 {
	x := 2 * near / (right - left)
	y := 2 * near / (top - bottom)
	// Column-vector form: clip x = x·X + z·a with w = z, so the
	// off-center terms carry the opposite sign from the row-vector
	// D3D layout.
	a := (left + right) / (left - right)
	b := (bottom + top) / (bottom - top)
	c := (far + near) / (far - near)
	d := -2 * far * near / (far - near)

	return mathutil.Mat4{
		x, 0, a, 0,
		0, y, b, 0,
		0, 0, c, d,
		0, 0, 1, 0,
	}
}

// Symmetric builds the ordinary centered perspective matrix. fovyDeg is
// the full vertical field of view in degrees.
func Symmetric(fovyDeg, aspect, near, far float64) mathutil.Mat4 {
	t := near * math.Tan(mathutil.Deg2Rad(fovyDeg)/2)
	r := t * aspect
	return OffAxis(-r, r, t, -t, near, far)
}

// Eyes builds the per-eye projection pair from a derived optical state.
// The two matrices share near, far, top and bottom; only the horizontal
// bounds differ. A degenerate state returns ErrDegenerate and zero
// matrices.
func Eyes(d optics.Derived) (left, right mathutil.Mat4, err error) {
	if d.Degenerate || !d.Finite() {
		return mathutil.Mat4{}, mathutil.Mat4{}, ErrDegenerate
	}
	left = OffAxis(d.LeftEye.Left, d.LeftEye.Right, d.Top, d.Bottom, d.Near, d.Far)
	right = OffAxis(d.RightEye.Left, d.RightEye.Right, d.Top, d.Bottom, d.Near, d.Far)
	return left, right, nil
}
