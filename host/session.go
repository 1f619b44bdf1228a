package host

import (
	"math"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"

	"arview/xr"
)

// simSession is a device-free AR session: requests resolve after a fixed
// latency on timer goroutines, and hit testing intersects the simulated
// device ray with the ground plane y = 0.
type simSession struct {
	id      uuid.UUID
	latency time.Duration
	deny    bool

	mu     sync.Mutex
	ended  bool
	endFns []func()
}

func newSimSession(latency time.Duration, deny bool) *simSession {
	return &simSession{id: uuid.New(), latency: latency, deny: deny}
}

func (s *simSession) ID() uuid.UUID { return s.id }

func (s *simSession) isEnded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ended
}

func (s *simSession) RequestReferenceSpace(kind xr.ReferenceSpaceKind, done func(xr.ReferenceSpace, error)) {
	time.AfterFunc(s.latency, func() {
		if s.isEnded() {
			done(nil, xr.ErrSessionEnded)
			return
		}
		done(simSpace{kind: kind}, nil)
	})
}

func (s *simSession) RequestHitTestSource(space xr.ReferenceSpace, done func(xr.HitTestSource, error)) {
	time.AfterFunc(s.latency, func() {
		switch {
		case s.isEnded():
			done(nil, xr.ErrSessionEnded)
		case s.deny:
			done(nil, xr.ErrHitTestUnsupported)
		default:
			done(&simSource{}, nil)
		}
	})
}

func (s *simSession) OnEnd(fn func()) {
	s.mu.Lock()
	if s.ended {
		s.mu.Unlock()
		fn()
		return
	}
	s.endFns = append(s.endFns, fn)
	s.mu.Unlock()
}

func (s *simSession) End() {
	s.mu.Lock()
	if s.ended {
		s.mu.Unlock()
		return
	}
	s.ended = true
	fns := s.endFns
	s.endFns = nil
	s.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

type simSpace struct {
	kind xr.ReferenceSpaceKind
}

func (s simSpace) Kind() xr.ReferenceSpaceKind { return s.kind }

type simSource struct {
	mu   sync.Mutex
	dead bool
}

func (s *simSource) Cancel() {
	s.mu.Lock()
	s.dead = true
	s.mu.Unlock()
}

func (s *simSource) alive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.dead
}

// simFrame carries one frame of simulated device data.
type simFrame struct {
	device xr.Pose
}

func newSimFrame(device xr.Pose) *simFrame {
	return &simFrame{device: device}
}

func (f *simFrame) ViewerPose(xr.ReferenceSpace) (xr.Pose, bool) {
	return f.device, true
}

func (f *simFrame) HitTestResults(src xr.HitTestSource) []xr.HitResult {
	s, ok := src.(*simSource)
	if !ok || !s.alive() {
		return nil
	}
	pose, ok := intersectGround(f.device)
	if !ok {
		return nil
	}
	return []xr.HitResult{simHitResult{pose: pose}}
}

type simHitResult struct {
	pose xr.Pose
}

func (r simHitResult) Pose(xr.ReferenceSpace) (xr.Pose, bool) {
	return r.pose, true
}

// devicePose simulates a handheld device scanning the floor: standing back
// from the origin, pitched down, with a slow yaw sweep.
func devicePose(now float64) xr.Pose {
	yaw := float32(0.45 * math.Sin(0.35*now))
	pitch := float32(-0.55 + 0.08*math.Sin(0.21*now))
	q := mgl32.QuatRotate(yaw, mgl32.Vec3{0, 1, 0}).
		Mul(mgl32.QuatRotate(pitch, mgl32.Vec3{1, 0, 0}))
	return xr.Pose{
		Position:    mgl32.Vec3{0, 1.5, 2.2},
		Orientation: q,
	}
}

// intersectGround casts the device's forward ray onto the plane y = 0. The
// hit pose is upright, yawed to face the device.
func intersectGround(device xr.Pose) (xr.Pose, bool) {
	o := device.Position
	d := device.Forward()
	if d.Y() >= -1e-4 {
		return xr.Pose{}, false
	}
	t := -o.Y() / d.Y()
	if t <= 0 {
		return xr.Pose{}, false
	}
	p := o.Add(d.Mul(t))
	yaw := float32(math.Atan2(float64(o.X()-p.X()), float64(o.Z()-p.Z())))
	return xr.Pose{
		Position:    p,
		Orientation: mgl32.QuatRotate(yaw, mgl32.Vec3{0, 1, 0}),
	}, true
}
