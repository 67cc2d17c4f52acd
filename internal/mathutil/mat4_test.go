package mathutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func assertVec3Near(t *testing.T, want, got Vec3, tol float64) {
	t.Helper()
	for i := 0; i < 3; i++ {
		assert.InDelta(t, want[i], got[i], tol)
	}
}

func TestMat4MulIdentity(t *testing.T) {
	m := FromMat3Translation(RotY(Deg2Rad(37)), Vec3{1, -2, 3})
	assert.Equal(t, m, Mat4Mul(m, Mat4Identity()))
	assert.Equal(t, m, Mat4Mul(Mat4Identity(), m))
}

func TestMat4InverseRoundTrip(t *testing.T) {
	m := FromMat3Translation(Mat3Mul(RotY(Deg2Rad(25)), RotX(Deg2Rad(-40))), Vec3{0.3, 1.1, -2.5})
	inv, ok := m.Inverse()
	assert.True(t, ok)
	assert.True(t, Mat4Mul(m, inv).IsIdentity())
	assert.True(t, Mat4Mul(inv, m).IsIdentity())
}

func TestMat4InverseSingular(t *testing.T) {
	var zero Mat4
	_, ok := zero.Inverse()
	assert.False(t, ok)

	// Rank-deficient: two identical rows.
	m := Mat4Identity()
	m[4], m[5], m[6], m[7] = m[0], m[1], m[2], m[3]
	_, ok = m.Inverse()
	assert.False(t, ok)
}

func TestLookAtLH(t *testing.T) {
	eye := Vec3{0, 0, -5}
	view := LookAtLH(eye, Vec3{0, 0, 1}, Vec3{0, 1, 0})

	// The eye maps to the view-space origin.
	assertVec3Near(t, Vec3{0, 0, 0}, view.MulPoint(eye), 1e-12)
	// A point straight ahead lands on +Z at its distance.
	assertVec3Near(t, Vec3{0, 0, 5}, view.MulPoint(Vec3{0, 0, 0}), 1e-12)
	// World +X stays to the right, +Y stays up.
	assertVec3Near(t, Vec3{1, 0, 5}, view.MulPoint(Vec3{1, 0, 0}), 1e-12)
	assertVec3Near(t, Vec3{0, 1, 5}, view.MulPoint(Vec3{0, 1, 0}), 1e-12)
}

func TestVec4Divide(t *testing.T) {
	v := Vec4{2, 4, 6, 2}
	assert.Equal(t, Vec3{1, 2, 3}, v.Divide())
}

func TestMat3Column(t *testing.T) {
	m := Mat3{
		1, 2, 3,
		4, 5, 6,
		7, 8, 9,
	}
	assert.Equal(t, Vec3{1, 4, 7}, m.Column(0))
	assert.Equal(t, Vec3{3, 6, 9}, m.Column(2))
}
