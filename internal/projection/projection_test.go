package projection

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"hmd-optics/internal/mathutil"
	"hmd-optics/internal/optics"
)

func TestOffAxisReducesToSymmetric(t *testing.T) {
	// With left = -right and bottom = -top the off-axis terms vanish and
	// the matrix is the standard centered perspective.
	near, far := 0.5, 20.0
	tp, r := 0.3, 0.42
	m := OffAxis(-r, r, tp, -tp, near, far)

	assert.Equal(t, 0.0, m[2])
	assert.Equal(t, 0.0, m[6])
	assert.InDelta(t, near/r, m[0], 1e-15)
	assert.InDelta(t, near/tp, m[5], 1e-15)

	fovy := 2 * mathutil.Rad2Deg(math.Atan2(tp, near))
	sym := Symmetric(fovy, r/tp, near, far)
	for i := range m {
		assert.InDelta(t, m[i], sym[i], 1e-9, "element %d", i)
	}
}

func TestOffAxisDepthRange(t *testing.T) {
	near, far := 0.57, 10.57
	m := OffAxis(-0.4, 0.6, 0.3, -0.3, near, far)

	// Points on the near/far planes land on NDC z = -1 / +1.
	pn := m.MulVec4(mathutil.Vec4{0, 0, near, 1}).Divide()
	pf := m.MulVec4(mathutil.Vec4{0, 0, far, 1}).Divide()
	assert.InDelta(t, -1.0, pn[2], 1e-12)
	assert.InDelta(t, 1.0, pf[2], 1e-12)

	// The near-plane corner (right, top, near) maps to NDC (+1, +1, -1).
	pc := m.MulVec4(mathutil.Vec4{0.6, 0.3, near, 1}).Divide()
	assert.InDelta(t, 1.0, pc[0], 1e-12)
	assert.InDelta(t, 1.0, pc[1], 1e-12)

	// Asymmetry: the frustum center line (left+right)/2 maps to NDC x = 0.
	pm := m.MulVec4(mathutil.Vec4{0.1, 0, near, 1}).Divide()
	assert.InDelta(t, 0.0, pm[0], 1e-12)
}

func TestOffAxisEdgeMapping(t *testing.T) {
	// Each near-plane bound maps to its own NDC edge, not the mirrored
	// one: x = left lands on -1 and x = right on +1 even when the
	// frustum is asymmetric.
	l, r, tp, b := -0.4, 0.6, 0.3, -0.2
	near, far := 0.57, 10.57
	m := OffAxis(l, r, tp, b, near, far)

	pl := m.MulVec4(mathutil.Vec4{l, 0, near, 1}).Divide()
	pr := m.MulVec4(mathutil.Vec4{r, 0, near, 1}).Divide()
	assert.InDelta(t, -1.0, pl[0], 1e-12)
	assert.InDelta(t, 1.0, pr[0], 1e-12)

	pb := m.MulVec4(mathutil.Vec4{0, b, near, 1}).Divide()
	pt := m.MulVec4(mathutil.Vec4{0, tp, near, 1}).Divide()
	assert.InDelta(t, -1.0, pb[1], 1e-12)
	assert.InDelta(t, 1.0, pt[1], 1e-12)

	// The same bounds scaled to the far plane hit the same edges.
	s := far / near
	fl := m.MulVec4(mathutil.Vec4{l * s, 0, far, 1}).Divide()
	assert.InDelta(t, -1.0, fl[0], 1e-12)
	assert.InDelta(t, 1.0, fl[2], 1e-12)
}

func TestEyesShareVerticalBounds(t *testing.T) {
	d := optics.Compute(optics.DefaultParameters(), optics.DefaultFarMargin)
	left, right, err := Eyes(d)
	assert.NoError(t, err)

	// Vertical scale, depth terms identical; horizontal terms differ.
	assert.Equal(t, left[5], right[5])
	assert.Equal(t, left[10], right[10])
	assert.Equal(t, left[11], right[11])
	assert.Equal(t, left[0], right[0]) // widths mirror, spans match
	assert.Equal(t, left[2], -right[2])
	assert.NotEqual(t, left[2], right[2])
}

func TestEyesDegenerate(t *testing.T) {
	p := optics.DefaultParameters()
	p.FocalLength = p.LensToDisplay
	d := optics.Compute(p, optics.DefaultFarMargin)

	_, _, err := Eyes(d)
	assert.ErrorIs(t, err, ErrDegenerate)
}
