// Package viewer implements the AR placement core: a two-mode state machine
// that shows a loaded asset under an orbit camera, and in an AR session lets
// the user commit the asset onto a detected real-world surface.
//
// Everything is driven by one per-frame entry point (Frame) plus one user
// input entry point (Select); the host render loop calls both from a single
// goroutine. The only asynchronous work is the hit-test acquisition chain and
// the asset load, both of which re-enter the core through identity-checked
// commits.
package viewer

import (
	"go.uber.org/zap"

	"arview/xr"
)

// Mode is the top-level viewing mode.
type Mode uint8

const (
	// ModeInspection shows the asset under manual orbit controls.
	ModeInspection Mode = iota
	// ModeAR hides the asset until it is placed on a detected surface.
	ModeAR
)

func (m Mode) String() string {
	if m == ModeAR {
		return "ar"
	}
	return "inspection"
}

// Config tunes the viewer core.
type Config struct {
	// Policy selects what a placement commit copies from the reticle.
	Policy PlacementPolicy
	// Logger may be nil for no logging.
	Logger *zap.Logger
}

// Viewer is the mode coordinator. It owns the live session reference and
// orchestrates the reset of all AR-dependent state on every transition.
type Viewer struct {
	log *zap.Logger

	mode    Mode
	session xr.Session // non-nil only in ModeAR

	orbit     xr.OrbitControls
	asset     *Asset
	reticle   *Reticle
	hits      *HitTest
	placement *Placement

	lastFrame float64 // seconds; <0 before the first frame
}

// New wires a viewer core around its collaborators.
func New(provider xr.AssetProvider, orbit xr.OrbitControls, cfg Config) *Viewer {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Viewer{
		log:       log,
		orbit:     orbit,
		asset:     NewAsset(provider, log),
		reticle:   NewReticle(),
		hits:      NewHitTest(log),
		placement: NewPlacement(cfg.Policy),
		lastFrame: -1,
	}
}

// Asset returns the placeable asset handle.
func (v *Viewer) Asset() *Asset { return v.asset }

// Reticle returns the surface indicator.
func (v *Viewer) Reticle() *Reticle { return v.reticle }

// Mode returns the current viewing mode.
func (v *Viewer) Mode() Mode { return v.mode }

// SessionStarted moves the viewer into AR mode: orbit controls are disabled
// and the asset hidden until placed. Position and scale are left untouched;
// a successful placement overwrites them.
func (v *Viewer) SessionStarted(s xr.Session) {
	v.mode = ModeAR
	v.session = s
	v.orbit.SetEnabled(false)
	v.asset.SetDefaultVisible(false)
	v.reticle.Hide()
	v.log.Info("entered ar mode", zap.String("session", s.ID().String()))
}

// SessionEnded returns the viewer to inspection mode and resets every piece
// of AR-dependent state: orbit controls re-enabled, asset shown at the
// resting transform, hit-test source and requested flag cleared, reticle
// hidden. Idempotent.
func (v *Viewer) SessionEnded() {
	v.mode = ModeInspection
	v.session = nil
	v.orbit.SetEnabled(true)
	v.asset.SetDefaultVisible(true)
	v.asset.ResetTransform()
	v.hits.Reset()
	v.reticle.Hide()
	v.log.Info("entered inspection mode")
}

// Frame is the single per-frame entry point. now is the frame timestamp in
// seconds; data carries device frame data when an AR session is rendering,
// and is nil otherwise. Mode is the source of truth: device data arriving
// outside AR mode is dropped rather than acted on.
func (v *Viewer) Frame(now float64, data *xr.FrameData) {
	dt := 0.0
	if v.lastFrame >= 0 && now > v.lastFrame {
		dt = now - v.lastFrame
	}
	v.lastFrame = now

	if data == nil {
		v.orbit.Update(dt)
		return
	}
	if v.mode != ModeAR || v.session == nil {
		v.log.Debug("device frame outside ar mode, ignoring")
		return
	}

	v.hits.EnsureSource(v.session)
	pose, hit := v.hits.Sample(data.Frame, data.Space)
	v.reticle.Update(pose, hit)
}

// Select is the single user input entry point. In AR mode with a visible
// reticle and a loaded asset it commits the placement; in every other case
// it is a silent no-op.
func (v *Viewer) Select() {
	if v.mode != ModeAR {
		return
	}
	if v.placement.Commit(v.reticle, v.asset) {
		p := v.reticle.Pose().Position
		v.log.Info("asset placed",
			zap.Float32("x", p.X()), zap.Float32("y", p.Y()), zap.Float32("z", p.Z()))
	}
}
