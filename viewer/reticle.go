package viewer

import "arview/xr"

// Reticle is the surface indicator: a pose plus a visibility flag. It is
// created once and never destroyed; frames with no surface hit hide it. The
// pose is stale while hidden and must not be read.
type Reticle struct {
	pose    xr.Pose
	visible bool
}

// NewReticle returns a hidden reticle.
func NewReticle() *Reticle {
	return &Reticle{pose: xr.PoseIdentity()}
}

// Update applies this frame's sample: on a hit the pose is copied and the
// reticle shown, otherwise it is hidden.
func (r *Reticle) Update(pose xr.Pose, hit bool) {
	if !hit {
		r.visible = false
		return
	}
	r.pose = pose
	r.visible = true
}

// Hide makes the reticle invisible.
func (r *Reticle) Hide() {
	r.visible = false
}

// Visible reports whether the reticle marks a surface this frame.
func (r *Reticle) Visible() bool {
	return r.visible
}

// Pose returns the last hit pose. Valid only while Visible.
func (r *Reticle) Pose() xr.Pose {
	return r.pose
}
