package optics

import "math"

// SliderSpec describes the control range for one adjustable parameter.
// Purely descriptive metadata for an external UI; nothing in this package
// renders controls.
type SliderSpec struct {
	Param Param
	Name  string
	Min   float64
	Max   float64
	Step  float64
}

// SliderSpecs returns the control descriptors for every adjustable
// parameter, primary parameters first.
func SliderSpecs() []SliderSpec {
	return []SliderSpec{
		{FocalLength, FocalLength.String(), 0.1, 1.0, 0.01},
		{IPD, IPD.String(), 0.3, 1.2, 0.01},
		{EyeRelief, EyeRelief.String(), 0.05, 0.5, 0.01},
		{LensToDisplay, LensToDisplay.String(), 0.1, 1.0, 0.01},
		{DisplayWidth, DisplayWidth.String(), 0.5, 2.0, 0.01},
		{DisplayHeight, DisplayHeight.String(), 0.3, 1.5, 0.01},
		{LensDiameter, LensDiameter.String(), 0.1, 0.6, 0.01},
		{EyeSocketDiameter, EyeSocketDiameter.String(), 0.2, 0.6, 0.01},
		{DisplayThickness, DisplayThickness.String(), 0.005, 0.1, 0.005},
	}
}

// Display is one named numeric readout, either an input parameter or a
// derived quantity.
type Display struct {
	Name  string
	Value float64
}

// Displays flattens the inputs and the derived state into readouts for an
// external UI. Infinities from a degenerate state pass through unclamped.
func Displays(p Parameters, d Derived) []Display {
	out := make([]Display, 0, int(numParams)+12)
	for i := Param(0); i < numParams; i++ {
		out = append(out, Display{i.String(), p.Get(i)})
	}
	out = append(out,
		Display{"magnification", d.Magnification},
		Display{"virtualImageDistance", d.VirtualImageDist},
		Display{"eyeToDisplayDistance", d.EyeToDisplay},
		Display{"eyeToVirtualImageDistance", d.EyeToVirtualImage},
		Display{"virtualImageWidth", d.VirtualImageWidth},
		Display{"virtualImageHeight", d.VirtualImageHeight},
		Display{"near", d.Near},
		Display{"far", d.Far},
		Display{"fovVerticalDeg", d.FOVVerticalDeg},
		Display{"fovHorizontalDeg", d.FOVHorizontalDeg},
		Display{"degenerate", boolValue(d.Degenerate)},
	)
	return out
}

func boolValue(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// Finite reports whether every frustum extent in the derived state is a
// normal finite number, i.e. safe to hand to the projection builder.
func (d Derived) Finite() bool {
	for _, v := range []float64{
		d.Near, d.Far, d.Top, d.Bottom,
		d.LeftEye.Left, d.LeftEye.Right,
		d.RightEye.Left, d.RightEye.Right,
	} {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return false
		}
	}
	return true
}
