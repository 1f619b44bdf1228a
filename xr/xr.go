// Package xr defines the contracts the viewer core consumes from its host:
// the AR session, per-frame device data, hit testing, renderable assets, and
// camera controls. The core never constructs any of these; it only drives
// them through the interfaces below.
package xr

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

var (
	// ErrHitTestUnsupported is reported by sessions that decline hit testing.
	ErrHitTestUnsupported = errors.New("hit testing not supported")
	// ErrSessionEnded is reported by requests issued against an ended session.
	ErrSessionEnded = errors.New("session ended")
)

// ReferenceSpaceKind selects the coordinate frame a pose is expressed in.
type ReferenceSpaceKind uint8

const (
	// SpaceViewer tracks the device; hit-test rays originate here.
	SpaceViewer ReferenceSpaceKind = iota + 1
	// SpaceLocal is the world-stationary frame assets are placed in.
	SpaceLocal
)

// ReferenceSpace is an opaque coordinate frame handle owned by a session.
type ReferenceSpace interface {
	Kind() ReferenceSpaceKind
}

// HitTestSource yields surface intersections for the session that created it.
// It is valid only for that session.
type HitTestSource interface {
	// Cancel releases the source. Further sampling yields no results.
	Cancel()
}

// HitResult is one surface intersection found in a frame.
type HitResult interface {
	// Pose returns the intersection pose in the given space. ok is false if
	// the pose could not be resolved this frame.
	Pose(space ReferenceSpace) (p Pose, ok bool)
}

// Frame is one frame of device data, valid only during the frame callback
// that delivered it.
type Frame interface {
	// ViewerPose returns the device pose in the given space.
	ViewerPose(space ReferenceSpace) (p Pose, ok bool)
	// HitTestResults returns this frame's intersections for a source,
	// nearest first. Empty when no surface was found.
	HitTestResults(src HitTestSource) []HitResult
}

// Session is one AR session. Request methods complete asynchronously through
// their done callback, which may run on any goroutine; callers must guard
// their own state. A session that has ended fails all further requests with
// ErrSessionEnded.
type Session interface {
	// ID identifies this session for the whole of its life. No two sessions
	// share an ID.
	ID() uuid.UUID
	// RequestReferenceSpace resolves a reference space of the given kind.
	RequestReferenceSpace(kind ReferenceSpaceKind, done func(ReferenceSpace, error))
	// RequestHitTestSource resolves a hit-test source anchored to space.
	RequestHitTestSource(space ReferenceSpace, done func(HitTestSource, error))
	// OnEnd registers a listener fired exactly once when the session ends,
	// including while requests are still pending.
	OnEnd(fn func())
	// End terminates the session. Idempotent.
	End()
}

// FrameData is the optional device payload of one per-frame step. Present
// only while an AR session is running.
type FrameData struct {
	Frame Frame
	Space ReferenceSpace // local space for pose queries and placement
}

// Renderable is a loaded asset attached to the host scene.
type Renderable interface {
	SetVisible(bool)
	Visible() bool
	SetPosition(mgl32.Vec3)
	Position() mgl32.Vec3
	SetOrientation(mgl32.Quat)
	Orientation() mgl32.Quat
	SetScale(mgl32.Vec3)
	Scale() mgl32.Vec3
	// Dispose detaches from the scene and releases resources. Idempotent.
	Dispose()
}

// AssetProvider turns an asset source into a renderable, asynchronously.
// Exactly one of ready or failed is called, at most once, on any goroutine.
type AssetProvider interface {
	Load(src AssetSource, ready func(Renderable), failed func(error))
}

// OrbitControls is the non-AR camera rig.
type OrbitControls interface {
	SetEnabled(bool)
	// Update advances the rig by dt seconds. No-op while disabled.
	Update(dt float64)
}
