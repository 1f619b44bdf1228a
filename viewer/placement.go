package viewer

// PlacementPolicy selects how much of the reticle pose a placement commit
// copies onto the asset.
type PlacementPolicy uint8

const (
	// PolicyPositionOnly copies the reticle position and keeps the asset
	// upright. Default.
	PolicyPositionOnly PlacementPolicy = iota
	// PolicyFullPose copies position and orientation.
	PolicyFullPose
)

// Placement commits the reticle's pose onto the asset on user select. It
// owns no state beyond the policy; an attempt with no visible reticle or no
// loaded asset is a silent no-op.
type Placement struct {
	policy PlacementPolicy
}

// NewPlacement returns a controller with the given policy.
func NewPlacement(policy PlacementPolicy) *Placement {
	return &Placement{policy: policy}
}

// Commit places the asset at the reticle. It reports whether a placement
// happened; false means the reticle was hidden or nothing is loaded.
func (p *Placement) Commit(reticle *Reticle, asset *Asset) bool {
	if !reticle.Visible() {
		return false
	}
	r := asset.Renderable()
	if r == nil {
		return false
	}
	pose := reticle.Pose()
	r.SetVisible(true)
	r.SetPosition(pose.Position)
	if p.policy == PolicyFullPose {
		r.SetOrientation(pose.Orientation)
	}
	return true
}
