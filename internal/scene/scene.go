// Package scene draws the headset rig as a wireframe diagram seen by an
// external observer: display panel, lenses, eye sockets, the magnified
// virtual image and the two reconstructed eye frustums.
package scene

import (
	"image"
	"math"

	"hmd-optics/internal/frustum"
	"hmd-optics/internal/hmd"
	"hmd-optics/internal/mathutil"
	"hmd-optics/internal/raster"
)

// Options controls framing and output size.
type Options struct {
	Size        int     // output is Size×Size pixels
	Supersample int     // render at Size*Supersample, caller downsamples
	OrbitYawDeg float64 // observer orbit around the rig
	OrbitPitDeg float64
	GroundY     float64 // height of the reference grid
}

// DefaultOptions frames the rig from a three-quarter view.
func DefaultOptions() Options {
	return Options{
		Size:        512,
		Supersample: 2,
		OrbitYawDeg: 35,
		OrbitPitDeg: 20,
		GroundY:     -1,
	}
}

var (
	colBackground = raster.Color{R: 18, G: 18, B: 24, A: 255}
	colGrid       = raster.Color{R: 55, G: 55, B: 65, A: 255}
	colDisplay    = raster.Color{R: 80, G: 200, B: 255, A: 255}
	colLens       = raster.Color{R: 255, G: 210, B: 80, A: 255}
	colEye        = raster.Color{R: 230, G: 230, B: 230, A: 255}
	colImage      = raster.Color{R: 255, G: 110, B: 220, A: 255}
	colLeftEye    = raster.Color{R: 110, G: 255, B: 130, A: 255}
	colRightEye   = raster.Color{R: 255, G: 120, B: 110, A: 255}
)

// Render draws one frame. The line meshes are the caller's frustum
// visualizations (already in world space); nil or hidden meshes are
// skipped, as are the frustums and virtual image while the optics are
// degenerate.
func Render(rig *hmd.HMD, left, right *frustum.LineMesh, opts Options) *image.NRGBA {
	if opts.Size <= 0 {
		opts.Size = 512
	}
	if opts.Supersample <= 0 {
		opts.Supersample = 1
	}
	px := opts.Size * opts.Supersample

	fb := raster.NewFrameBuffer(px, px)
	fb.Fill(colBackground)

	cam := observerCamera(rig, opts)

	drawGrid(fb, cam, rig.Position(), opts.GroundY)
	drawRig(fb, cam, rig)

	if rig.Renderable() {
		drawMesh(fb, cam, left, colLeftEye)
		drawMesh(fb, cam, right, colRightEye)
	}

	return fb.Image()
}

func observerCamera(rig *hmd.HMD, opts Options) *raster.Camera {
	d := rig.Derived()
	reach := d.Far
	if math.IsInf(reach, 0) || reach <= 0 {
		reach = 10
	}

	target := rig.Position().Add(mathutil.Vec3{0, 0, reach * 0.35})
	dist := reach * 1.6

	yaw := mathutil.Deg2Rad(opts.OrbitYawDeg)
	pitch := mathutil.Deg2Rad(opts.OrbitPitDeg)
	offset := mathutil.Vec3{
		math.Sin(yaw) * math.Cos(pitch),
		math.Sin(pitch),
		-math.Cos(yaw) * math.Cos(pitch),
	}.Scale(dist)

	return raster.NewCamera(target.Add(offset), target, 50, 1, dist*0.01, dist*10)
}

func drawMesh(fb *raster.FrameBuffer, cam *raster.Camera, lm *frustum.LineMesh, c raster.Color) {
	if lm == nil || !lm.Visible || !lm.Valid() {
		return
	}
	for i := 0; i < frustum.EdgeCount(); i++ {
		a, b := lm.Segment(i)
		fb.DrawLine3D(cam, a, b, c)
	}
}

func drawGrid(fb *raster.FrameBuffer, cam *raster.Camera, center mathutil.Vec3, y float64) {
	const half = 8
	const step = 1.0
	for i := -half; i <= half; i++ {
		v := float64(i) * step
		fb.DrawLine3D(cam,
			mathutil.Vec3{center[0] + v, y, center[2] - half},
			mathutil.Vec3{center[0] + v, y, center[2] + half}, colGrid)
		fb.DrawLine3D(cam,
			mathutil.Vec3{center[0] - half, y, center[2] + v},
			mathutil.Vec3{center[0] + half, y, center[2] + v}, colGrid)
	}
}

// drawRig draws the physical mockup in the headset's local frame: origin
// at the display center, eyes behind it along -Z.
func drawRig(fb *raster.FrameBuffer, cam *raster.Camera, rig *hmd.HMD) {
	p := rig.Parameters()
	d := rig.Derived()

	// Display panel: a flat box DisplayWidth × DisplayHeight ×
	// DisplayThickness at the local origin.
	drawBox(fb, cam, rig, mathutil.Vec3{0, 0, p.DisplayThickness / 2},
		p.DisplayWidth, p.DisplayHeight, p.DisplayThickness, colDisplay)

	// Lenses and eye sockets.
	for _, side := range []float64{-1, 1} {
		drawCircle(fb, cam, rig,
			mathutil.Vec3{side * p.IPD / 2, 0, -p.LensToDisplay},
			p.LensDiameter/2, colLens)
		drawCircle(fb, cam, rig,
			mathutil.Vec3{side * p.IPD / 2, 0, -d.EyeToDisplay},
			p.EyeSocketDiameter/2, colEye)
	}

	// Virtual image plane. The signed thin-lens distance points away from
	// the eye side, so the image sits at -lensToDisplay - virtualImageDist
	// in local Z (beyond the display for the magnified virtual image).
	if rig.Renderable() {
		z := -p.LensToDisplay - d.VirtualImageDist
		drawRect(fb, cam, rig, mathutil.Vec3{0, 0, z},
			math.Abs(d.VirtualImageWidth), math.Abs(d.VirtualImageHeight), colImage)
	}
}

func toWorld(rig *hmd.HMD, local mathutil.Vec3) mathutil.Vec3 {
	return rig.Position().Add(rig.Orientation().MulVec3(local))
}

func drawRect(fb *raster.FrameBuffer, cam *raster.Camera, rig *hmd.HMD, center mathutil.Vec3, w, h float64, c raster.Color) {
	hw, hh := w/2, h/2
	corners := [4]mathutil.Vec3{
		{center[0] - hw, center[1] - hh, center[2]},
		{center[0] + hw, center[1] - hh, center[2]},
		{center[0] + hw, center[1] + hh, center[2]},
		{center[0] - hw, center[1] + hh, center[2]},
	}
	for i := range corners {
		a := toWorld(rig, corners[i])
		b := toWorld(rig, corners[(i+1)%4])
		fb.DrawLine3D(cam, a, b, c)
	}
}

func drawBox(fb *raster.FrameBuffer, cam *raster.Camera, rig *hmd.HMD, center mathutil.Vec3, w, h, depth float64, c raster.Color) {
	front := mathutil.Vec3{center[0], center[1], center[2] - depth/2}
	back := mathutil.Vec3{center[0], center[1], center[2] + depth/2}
	drawRect(fb, cam, rig, front, w, h, c)
	drawRect(fb, cam, rig, back, w, h, c)
	hw, hh := w/2, h/2
	for _, sx := range []float64{-1, 1} {
		for _, sy := range []float64{-1, 1} {
			a := toWorld(rig, mathutil.Vec3{center[0] + sx*hw, center[1] + sy*hh, front[2]})
			b := toWorld(rig, mathutil.Vec3{center[0] + sx*hw, center[1] + sy*hh, back[2]})
			fb.DrawLine3D(cam, a, b, c)
		}
	}
}

func drawCircle(fb *raster.FrameBuffer, cam *raster.Camera, rig *hmd.HMD, center mathutil.Vec3, r float64, c raster.Color) {
	const segments = 32
	prev := mathutil.Vec3{center[0] + r, center[1], center[2]}
	for i := 1; i <= segments; i++ {
		a := 2 * math.Pi * float64(i) / segments
		next := mathutil.Vec3{center[0] + r*math.Cos(a), center[1] + r*math.Sin(a), center[2]}
		fb.DrawLine3D(cam, toWorld(rig, prev), toWorld(rig, next), c)
		prev = next
	}
}
