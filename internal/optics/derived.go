package optics

import (
	"math"

	"hmd-optics/internal/mathutil"
)

// DefaultFarMargin is the distance added beyond the near plane to place the
// far plane. It is not physically derived; it just has to enclose the demo
// scene.
const DefaultFarMargin = 10.0

// Derived is the full bundle of quantities computed from Parameters by the
// thin-lens model. It is recomputed from scratch on every parameter change;
// every field depends on every input through the magnification term, so
// there is no valid partial update.
type Derived struct {
	// Magnification is signed: positive while the display sits inside the
	// focal length (virtual, magnified image), negative past it. The sign
	// flip across focalLength == lensToDisplayDistance is intentional.
	Magnification float64

	// VirtualImageDist is the signed lens-to-image distance from the
	// thin-lens equation. Negative means the image forms on the display
	// side of the lens (the magnifying-glass case); the magnitude is what
	// feeds the frustum geometry.
	VirtualImageDist float64

	EyeToDisplay      float64
	EyeToVirtualImage float64

	VirtualImageWidth  float64
	VirtualImageHeight float64

	Near float64
	Far  float64

	// Shared vertical half-extents at the near plane.
	Top    float64
	Bottom float64

	// Per-eye horizontal bounds at the near plane. Each eye's nasal side
	// faces the other eye, so nasal and temporal swap between the two.
	LeftEye  EyeBounds
	RightEye EyeBounds

	// Informational field of view, degrees. Display only; the matrices are
	// built from the linear extents above.
	FOVVerticalDeg   float64
	FOVHorizontalDeg float64

	// Degenerate is set when focalLength equals lensToDisplayDistance and
	// the magnification is unbounded. The extents are then signed
	// infinities; callers must not build a finite frustum from them.
	Degenerate bool
}

// EyeBounds are the asymmetric left/right extents of one eye's frustum at
// the near plane.
type EyeBounds struct {
	Left  float64
	Right float64
}

// Compute runs the thin-lens model. Pure: no state, no I/O; identical
// inputs produce bit-identical outputs.
func Compute(p Parameters, farMargin float64) Derived {
	var d Derived

	f := p.FocalLength
	dist := p.LensToDisplay

	d.EyeToDisplay = p.EyeRelief + dist
	d.Near = d.EyeToDisplay
	d.Far = d.Near + farMargin

	if f == dist {
		// Image at infinity. Flag it and leave the extents unbounded so a
		// renderer cannot mistake this for finite geometry.
		d.Degenerate = true
		d.Magnification = math.Inf(1)
		d.VirtualImageDist = math.Inf(1)
		d.EyeToVirtualImage = math.Inf(1)
		d.VirtualImageWidth = math.Inf(1)
		d.VirtualImageHeight = math.Inf(1)
		d.Top = math.Inf(1)
		d.Bottom = math.Inf(-1)
		d.LeftEye = EyeBounds{Left: math.Inf(-1), Right: math.Inf(1)}
		d.RightEye = d.LeftEye
		d.FOVVerticalDeg = 180
		d.FOVHorizontalDeg = 180
		return d
	}

	d.Magnification = f / (f - dist)
	d.VirtualImageDist = 1 / (1/f - 1/dist)
	d.EyeToVirtualImage = p.EyeRelief + math.Abs(d.VirtualImageDist)

	d.VirtualImageWidth = p.DisplayWidth * d.Magnification
	d.VirtualImageHeight = p.DisplayHeight * d.Magnification

	d.Top = d.Near * d.VirtualImageHeight / (2 * d.EyeToVirtualImage)
	d.Bottom = -d.Top

	// Half-widths of the virtual image on either side of an eye's optical
	// axis: the nasal portion covers ipd/2 of display, the temporal portion
	// the rest. Scaled back to the near plane.
	scale := d.Near / d.EyeToVirtualImage
	nasal := d.Magnification * p.IPD / 2 * scale
	temporal := d.Magnification * (p.DisplayWidth - p.IPD) / 2 * scale

	// Left eye: nasal side is on its right. Right eye: mirrored.
	d.LeftEye = EyeBounds{Left: -temporal, Right: nasal}
	d.RightEye = EyeBounds{Left: -nasal, Right: temporal}

	d.FOVVerticalDeg = mathutil.Rad2Deg(2 * math.Atan2(math.Abs(d.VirtualImageHeight)/2, d.EyeToVirtualImage))
	d.FOVHorizontalDeg = mathutil.Rad2Deg(2 * math.Atan2(math.Abs(d.VirtualImageWidth)/2, d.EyeToVirtualImage))

	return d
}
