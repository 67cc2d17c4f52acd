package frustum

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"hmd-optics/internal/mathutil"
	"hmd-optics/internal/optics"
	"hmd-optics/internal/projection"
)

func testMatrices(t *testing.T) (proj, view mathutil.Mat4) {
	t.Helper()
	d := optics.Compute(optics.DefaultParameters(), optics.DefaultFarMargin)
	proj, _, err := projection.Eyes(d)
	assert.NoError(t, err)
	eye := mathutil.Vec3{-0.34, 0, -0.57}
	view = mathutil.LookAtLH(eye, eye.Add(mathutil.Vec3{0, 0, 1}), mathutil.Vec3{0, 1, 0})
	return proj, view
}

func TestRoundTrip(t *testing.T) {
	proj, view := testMatrices(t)
	corners, err := Corners(proj, view)
	assert.NoError(t, err)

	// Forward through View then Projection recovers the canonical clip
	// corners after the divide.
	vp := mathutil.Mat4Mul(proj, view)
	for i, c := range corners {
		clip := vp.MulVec4(mathutil.FromVec3(c)).Divide()
		for k := 0; k < 3; k++ {
			assert.InDelta(t, clipCorners[i][k], clip[k], 1e-5,
				"corner %d axis %d", i, k)
		}
	}
}

func TestCornersDepths(t *testing.T) {
	d := optics.Compute(optics.DefaultParameters(), optics.DefaultFarMargin)
	proj, _, err := projection.Eyes(d)
	assert.NoError(t, err)

	// Identity view: world space is eye space, forward is +Z.
	corners, err := Corners(proj, mathutil.Mat4Identity())
	assert.NoError(t, err)

	for i := 0; i < 4; i++ {
		assert.InDelta(t, d.Near, corners[i][2], 1e-9, "near corner %d", i)
	}
	for i := 4; i < 8; i++ {
		assert.InDelta(t, d.Far, corners[i][2], 1e-9, "far corner %d", i)
	}

	// Near-plane extents match the derived bounds.
	assert.InDelta(t, d.LeftEye.Left, corners[0][0], 1e-9)
	assert.InDelta(t, d.LeftEye.Right, corners[1][0], 1e-9)
	assert.InDelta(t, d.Bottom, corners[0][1], 1e-9)
	assert.InDelta(t, d.Top, corners[2][1], 1e-9)

	// Far-plane extents scale by far/near.
	s := d.Far / d.Near
	assert.InDelta(t, d.LeftEye.Left*s, corners[4][0], 1e-9)
	assert.InDelta(t, d.Top*s, corners[6][1], 1e-9)
}

func TestSingularMatrix(t *testing.T) {
	proj, view := testMatrices(t)

	var zero mathutil.Mat4
	_, err := Corners(zero, view)
	assert.ErrorIs(t, err, ErrSingular)
	_, err = Corners(proj, zero)
	assert.ErrorIs(t, err, ErrSingular)
}

func TestLineMeshUpdate(t *testing.T) {
	proj, view := testMatrices(t)

	lm := NewLineMesh()
	assert.True(t, lm.Visible)
	assert.False(t, lm.Valid())
	assert.NoError(t, lm.Update(proj, view))
	assert.True(t, lm.Valid())

	corners := lm.Corners()

	// Fixed topology: every edge endpoint is one of the 8 corners, and
	// each corner feeds exactly 3 edges of the box.
	uses := map[mathutil.Vec3]int{}
	for i := 0; i < EdgeCount(); i++ {
		a, b := lm.Segment(i)
		uses[a]++
		uses[b]++
	}
	for _, c := range corners {
		assert.Equal(t, 3, uses[c], "corner %v", c)
	}

	// A failed update keeps the previous geometry.
	var zero mathutil.Mat4
	assert.ErrorIs(t, lm.Update(zero, view), ErrSingular)
	assert.Equal(t, corners, lm.Corners())
	assert.True(t, lm.Valid())
}

func TestVisibleToggleLeavesGeometry(t *testing.T) {
	proj, view := testMatrices(t)
	lm := NewLineMesh()
	assert.NoError(t, lm.Update(proj, view))
	before := lm.Corners()
	lm.Visible = false
	assert.Equal(t, before, lm.Corners())
}
