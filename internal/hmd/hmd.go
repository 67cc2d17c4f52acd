// Package hmd owns the simulated headset: the physical parameters, the
// derived optical state, the two eye poses and the cached per-eye
// projection matrices. All mutation funnels through a handful of setters
// that recompute and re-cache in one step, so consumers only ever see
// consistent snapshots.
package hmd

import (
	"fmt"

	"hmd-optics/internal/mathutil"
	"hmd-optics/internal/optics"
	"hmd-optics/internal/projection"
)

// Eye selects one of the two eyes.
type Eye int

const (
	Left Eye = iota
	Right
)

// EyePose is the world-space placement of one eye: offset half an IPD
// laterally from the headset position and pulled back by the eye-to-display
// distance along the headset's forward axis, looking straight ahead.
type EyePose struct {
	Position mathutil.Vec3
	Forward  mathutil.Vec3
	Up       mathutil.Vec3
}

// View returns the left-handed world→eye view matrix for the pose.
func (p EyePose) View() mathutil.Mat4 {
	return mathutil.LookAtLH(p.Position, p.Position.Add(p.Forward), p.Up)
}

// HMD is the headset rig. Not safe for concurrent use; the whole
// simulation is single-threaded and frame-driven.
type HMD struct {
	params    optics.Parameters
	derived   optics.Derived
	farMargin float64

	position    mathutil.Vec3
	orientation mathutil.Mat3

	poses [2]EyePose
	projs [2]mathutil.Mat4

	renderable bool
	version    uint64
}

// New builds a rig at the world origin, facing +Z, with everything
// derived and cached.
func New(params optics.Parameters, farMargin float64) *HMD {
	h := &HMD{
		params:      params,
		farMargin:   farMargin,
		orientation: mathutil.Mat3Identity(),
	}
	h.recomputeOptics()
	h.recomputePoses()
	return h
}

// SetParameter validates and applies one parameter update. This is the
// single rebuild-and-propagate point: a primary parameter recomputes the
// derived state, both projections and both eye poses before returning.
// A rejected value leaves every cached product untouched.
func (h *HMD) SetParameter(p optics.Param, v float64) error {
	if err := h.params.Set(p, v); err != nil {
		return err
	}
	if p.Primary() {
		h.recomputeOptics()
		h.recomputePoses()
	}
	h.version++
	return nil
}

// SetNamedParameter applies a (name, value) update as delivered by an
// external UI.
func (h *HMD) SetNamedParameter(name string, v float64) error {
	p, err := optics.ParseParam(name)
	if err != nil {
		return err
	}
	if err := h.SetParameter(p, v); err != nil {
		return fmt.Errorf("hmd: set %s: %w", name, err)
	}
	return nil
}

// SetPosition moves the headset in world space and refreshes the eye
// poses. The optics are untouched.
func (h *HMD) SetPosition(pos mathutil.Vec3) {
	h.position = pos
	h.recomputePoses()
	h.version++
}

// SetYaw rotates the headset around the world Y axis, degrees.
func (h *HMD) SetYaw(deg float64) {
	h.orientation = mathutil.RotY(mathutil.Deg2Rad(deg))
	h.recomputePoses()
	h.version++
}

// Version is a change counter bumped on every committed mutation.
// Consumers poll it once per frame to know whether to resynchronize.
func (h *HMD) Version() uint64 { return h.version }

// Parameters returns a copy of the current parameter set.
func (h *HMD) Parameters() optics.Parameters { return h.params }

// Derived returns the current derived optical state.
func (h *HMD) Derived() optics.Derived { return h.derived }

// Position returns the headset world position.
func (h *HMD) Position() mathutil.Vec3 { return h.position }

// Orientation returns the headset world rotation.
func (h *HMD) Orientation() mathutil.Mat3 { return h.orientation }

// Renderable reports whether the cached projections are finite. At the
// thin-lens singularity this is false and the frustums must not be drawn.
func (h *HMD) Renderable() bool { return h.renderable }

// Projection returns the cached projection matrix for one eye. It is
// recomputed only when a primary parameter changes, never per frame.
// Degenerate optics surface as projection.ErrDegenerate.
func (h *HMD) Projection(e Eye) (mathutil.Mat4, error) {
	if !h.renderable {
		return mathutil.Mat4{}, projection.ErrDegenerate
	}
	return h.projs[e], nil
}

// Pose returns the world pose of one eye.
func (h *HMD) Pose(e Eye) EyePose { return h.poses[e] }

func (h *HMD) recomputeOptics() {
	h.derived = optics.Compute(h.params, h.farMargin)
	left, right, err := projection.Eyes(h.derived)
	if err != nil {
		h.renderable = false
		return
	}
	h.projs[Left], h.projs[Right] = left, right
	h.renderable = true
}

func (h *HMD) recomputePoses() {
	rightAxis := h.orientation.Column(0)
	upAxis := h.orientation.Column(1)
	forward := h.orientation.Column(2)

	back := forward.Scale(h.derived.EyeToDisplay)
	for e, sign := range [2]float64{Left: -1, Right: 1} {
		h.poses[e] = EyePose{
			Position: h.position.Add(rightAxis.Scale(sign * h.params.IPD / 2)).Sub(back),
			Forward:  forward,
			Up:       upAxis,
		}
	}
}
