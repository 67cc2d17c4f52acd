package optics

import "fmt"

// Param identifies one adjustable physical parameter of the headset. The
// set is closed so updates coming in as (name, value) pairs from a UI can
// be matched exhaustively instead of indexing a loose map.
type Param int

const (
	FocalLength Param = iota
	IPD
	EyeRelief
	LensToDisplay
	DisplayWidth
	DisplayHeight

	// Mockup-only extents. They shape the rendered rig but have no effect
	// on the projection math, so changing them does not trigger an optics
	// recompute.
	LensDiameter
	EyeSocketDiameter
	DisplayThickness

	numParams
)

var paramNames = [numParams]string{
	FocalLength:       "focalLength",
	IPD:               "ipd",
	EyeRelief:         "eyeRelief",
	LensToDisplay:     "lensToDisplayDistance",
	DisplayWidth:      "displayWidth",
	DisplayHeight:     "displayHeight",
	LensDiameter:      "lensDiameter",
	EyeSocketDiameter: "eyeSocketDiameter",
	DisplayThickness:  "displayThickness",
}

func (p Param) String() string {
	if p < 0 || p >= numParams {
		return fmt.Sprintf("Param(%d)", int(p))
	}
	return paramNames[p]
}

// Primary reports whether the parameter feeds the projection math.
func (p Param) Primary() bool {
	return p >= FocalLength && p <= DisplayHeight
}

// ParseParam resolves a parameter name as used by slider descriptors and
// key/value updates.
func ParseParam(name string) (Param, error) {
	for i, n := range paramNames {
		if n == name {
			return Param(i), nil
		}
	}
	return 0, fmt.Errorf("optics: unknown parameter %q", name)
}

// Parameters holds the physical lens/display configuration of the headset.
// All values are strictly positive scene units. Mutate through Set so the
// positivity invariant holds; a rejected update leaves the previous state
// untouched.
type Parameters struct {
	FocalLength   float64
	IPD           float64
	EyeRelief     float64
	LensToDisplay float64
	DisplayWidth  float64
	DisplayHeight float64

	LensDiameter      float64
	EyeSocketDiameter float64
	DisplayThickness  float64
}

// DefaultParameters returns the Cardboard-like baseline configuration.
func DefaultParameters() Parameters {
	return Parameters{
		FocalLength:   0.4,
		IPD:           0.68,
		EyeRelief:     0.18,
		LensToDisplay: 0.39,
		DisplayWidth:  1.2096,
		DisplayHeight: 0.6803,

		LensDiameter:      0.3,
		EyeSocketDiameter: 0.38,
		DisplayThickness:  0.02,
	}
}

// Get returns the current value of a parameter.
func (ps *Parameters) Get(p Param) float64 {
	switch p {
	case FocalLength:
		return ps.FocalLength
	case IPD:
		return ps.IPD
	case EyeRelief:
		return ps.EyeRelief
	case LensToDisplay:
		return ps.LensToDisplay
	case DisplayWidth:
		return ps.DisplayWidth
	case DisplayHeight:
		return ps.DisplayHeight
	case LensDiameter:
		return ps.LensDiameter
	case EyeSocketDiameter:
		return ps.EyeSocketDiameter
	case DisplayThickness:
		return ps.DisplayThickness
	}
	return 0
}

// Set validates and stores a parameter value. Non-positive values are
// rejected before any mutation. FocalLength is deliberately not clamped
// away from LensToDisplay: crossing the singularity is part of the
// simulation and shows up as a degenerate Derived state, not an error.
func (ps *Parameters) Set(p Param, v float64) error {
	if v <= 0 {
		return fmt.Errorf("optics: %s must be > 0, got %v", p, v)
	}
	switch p {
	case FocalLength:
		ps.FocalLength = v
	case IPD:
		ps.IPD = v
	case EyeRelief:
		ps.EyeRelief = v
	case LensToDisplay:
		ps.LensToDisplay = v
	case DisplayWidth:
		ps.DisplayWidth = v
	case DisplayHeight:
		ps.DisplayHeight = v
	case LensDiameter:
		ps.LensDiameter = v
	case EyeSocketDiameter:
		ps.EyeSocketDiameter = v
	case DisplayThickness:
		ps.DisplayThickness = v
	default:
		return fmt.Errorf("optics: unknown parameter %d", int(p))
	}
	return nil
}
