// Package frustum recovers the world-space geometry of a perspective
// frustum from its projection and view matrices alone. It knows nothing
// about how the projection was built, so it works equally for the
// asymmetric HMD eyes and for an ordinary symmetric camera.
package frustum

import (
	"errors"

	"hmd-optics/internal/mathutil"
)

// ErrSingular is returned when the projection or view matrix cannot be
// inverted. The failure is local to that call; callers keep whatever
// corners they had before.
var ErrSingular = errors.New("frustum: singular matrix, cannot reconstruct corners")

// clipCorners are the 8 canonical clip-space corners of the NDC cube
// before the perspective divide: near plane z=-1 first, far plane z=+1.
// Order within a plane: (-,-), (+,-), (+,+), (-,+) — counterclockwise
// starting at bottom-left.
var clipCorners = [8]mathutil.Vec3{
	{-1, -1, -1},
	{+1, -1, -1},
	{+1, +1, -1},
	{-1, +1, -1},
	{-1, -1, +1},
	{+1, -1, +1},
	{+1, +1, +1},
	{-1, +1, +1},
}

// Corners inverts the forward pipeline clip = P × V × world for the 8
// canonical clip corners: inverse projection (with perspective divide)
// takes clip space to view space, inverse view takes view space to world
// space. The world transform is deliberately not involved — the view
// matrix already maps from world space, and applying an inverse world
// transform on top would double-count the pose.
func Corners(proj, view mathutil.Mat4) ([8]mathutil.Vec3, error) {
	var out [8]mathutil.Vec3

	invProj, ok := proj.Inverse()
	if !ok {
		return out, ErrSingular
	}
	invView, ok := view.Inverse()
	if !ok {
		return out, ErrSingular
	}

	for i, c := range clipCorners {
		v := invProj.MulVec4(mathutil.FromVec3(c)).Divide()
		out[i] = invView.MulPoint(v)
	}
	return out, nil
}
