package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"hmd-optics/internal/frustum"
	"hmd-optics/internal/hmd"
	"hmd-optics/internal/optics"
	"hmd-optics/internal/raster"
)

func buildRig(t *testing.T) (*hmd.HMD, *frustum.LineMesh, *frustum.LineMesh) {
	t.Helper()
	rig := hmd.New(optics.DefaultParameters(), optics.DefaultFarMargin)
	left, right := frustum.NewLineMesh(), frustum.NewLineMesh()
	for eye, lm := range map[hmd.Eye]*frustum.LineMesh{hmd.Left: left, hmd.Right: right} {
		proj, err := rig.Projection(eye)
		assert.NoError(t, err)
		assert.NoError(t, lm.Update(proj, rig.Pose(eye).View()))
	}
	return rig, left, right
}

func countLit(pix []uint8, background uint8) int {
	n := 0
	for i := 0; i < len(pix); i += 4 {
		if pix[i] != background {
			n++
		}
	}
	return n
}

func TestRenderProducesWireframe(t *testing.T) {
	rig, left, right := buildRig(t)

	opts := DefaultOptions()
	opts.Size = 128
	opts.Supersample = 1
	img := Render(rig, left, right, opts)

	assert.Equal(t, 128, img.Bounds().Dx())
	assert.Equal(t, 128, img.Bounds().Dy())
	assert.Greater(t, countLit(img.Pix, colBackground.R), 200,
		"wireframe should light a meaningful number of pixels")
}

func TestRenderDegenerateSkipsFrustums(t *testing.T) {
	rig, left, right := buildRig(t)
	assert.NoError(t, rig.SetParameter(optics.FocalLength, rig.Parameters().LensToDisplay))
	assert.False(t, rig.Renderable())

	opts := DefaultOptions()
	opts.Size = 128
	opts.Supersample = 1

	// Must not panic and must not paint frustum colors.
	img := Render(rig, left, right, opts)
	assert.Zero(t, countColor(img.Pix, colLeftEye))
	assert.Zero(t, countColor(img.Pix, colRightEye))
}

func countColor(pix []uint8, c raster.Color) int {
	n := 0
	for i := 0; i < len(pix); i += 4 {
		if pix[i] == c.R && pix[i+1] == c.G && pix[i+2] == c.B {
			n++
		}
	}
	return n
}

func TestHiddenMeshNotDrawn(t *testing.T) {
	rig, left, right := buildRig(t)
	left.Visible = false
	right.Visible = false

	opts := DefaultOptions()
	opts.Size = 128
	opts.Supersample = 1
	img := Render(rig, left, right, opts)
	assert.Zero(t, countColor(img.Pix, colLeftEye))
	assert.Zero(t, countColor(img.Pix, colRightEye))

	// Geometry untouched by the toggle.
	assert.True(t, left.Valid())
}
