package viewer

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"

	"arview/xr"
)

type fakeSpace struct {
	kind xr.ReferenceSpaceKind
}

func (s fakeSpace) Kind() xr.ReferenceSpaceKind { return s.kind }

type fakeSource struct {
	cancelled int
}

func (s *fakeSource) Cancel() { s.cancelled++ }

type fakeHitResult struct {
	pose xr.Pose
}

func (r fakeHitResult) Pose(xr.ReferenceSpace) (xr.Pose, bool) { return r.pose, true }

type fakeFrame struct {
	hits []xr.HitResult
}

func (f *fakeFrame) ViewerPose(xr.ReferenceSpace) (xr.Pose, bool) {
	return xr.PoseIdentity(), true
}

func (f *fakeFrame) HitTestResults(xr.HitTestSource) []xr.HitResult { return f.hits }

// fakeSession records requests for manual resolution. With autoResolve set,
// requests resolve synchronously inside the call (spaceErr/sourceErr inject
// failures).
type fakeSession struct {
	id          uuid.UUID
	ended       bool
	endFns      []func()
	autoResolve bool
	spaceErr    error
	sourceErr   error

	spaceReqs  []func(xr.ReferenceSpace, error)
	sourceReqs []func(xr.HitTestSource, error)
}

func newFakeSession() *fakeSession {
	return &fakeSession{id: uuid.New()}
}

func (s *fakeSession) ID() uuid.UUID { return s.id }

func (s *fakeSession) RequestReferenceSpace(kind xr.ReferenceSpaceKind, done func(xr.ReferenceSpace, error)) {
	if s.autoResolve {
		if s.spaceErr != nil {
			done(nil, s.spaceErr)
			return
		}
		done(fakeSpace{kind: kind}, nil)
		return
	}
	s.spaceReqs = append(s.spaceReqs, done)
}

func (s *fakeSession) RequestHitTestSource(space xr.ReferenceSpace, done func(xr.HitTestSource, error)) {
	if s.autoResolve {
		if s.sourceErr != nil {
			done(nil, s.sourceErr)
			return
		}
		done(&fakeSource{}, nil)
		return
	}
	s.sourceReqs = append(s.sourceReqs, done)
}

func (s *fakeSession) OnEnd(fn func()) {
	s.endFns = append(s.endFns, fn)
}

func (s *fakeSession) End() {
	if s.ended {
		return
	}
	s.ended = true
	for _, fn := range s.endFns {
		fn()
	}
	s.endFns = nil
}

func (s *fakeSession) resolveSpace(t *testing.T) {
	t.Helper()
	if len(s.spaceReqs) == 0 {
		t.Fatal("no pending reference space request")
	}
	done := s.spaceReqs[0]
	s.spaceReqs = s.spaceReqs[1:]
	done(fakeSpace{kind: xr.SpaceViewer}, nil)
}

func (s *fakeSession) resolveSource(t *testing.T, src xr.HitTestSource) {
	t.Helper()
	if len(s.sourceReqs) == 0 {
		t.Fatal("no pending hit-test source request")
	}
	done := s.sourceReqs[0]
	s.sourceReqs = s.sourceReqs[1:]
	done(src, nil)
}

type fakeRenderable struct {
	visible  bool
	pos      mgl32.Vec3
	orient   mgl32.Quat
	scale    mgl32.Vec3
	disposed int
}

func newFakeRenderable() *fakeRenderable {
	return &fakeRenderable{orient: mgl32.QuatIdent(), scale: mgl32.Vec3{1, 1, 1}}
}

func (r *fakeRenderable) SetVisible(v bool)           { r.visible = v }
func (r *fakeRenderable) Visible() bool               { return r.visible }
func (r *fakeRenderable) SetPosition(p mgl32.Vec3)    { r.pos = p }
func (r *fakeRenderable) Position() mgl32.Vec3        { return r.pos }
func (r *fakeRenderable) SetOrientation(q mgl32.Quat) { r.orient = q }
func (r *fakeRenderable) Orientation() mgl32.Quat     { return r.orient }
func (r *fakeRenderable) SetScale(s mgl32.Vec3)       { r.scale = s }
func (r *fakeRenderable) Scale() mgl32.Vec3           { return r.scale }
func (r *fakeRenderable) Dispose()                    { r.disposed++ }

type providerLoad struct {
	src    xr.AssetSource
	ready  func(xr.Renderable)
	failed func(error)
}

type fakeProvider struct {
	loads []providerLoad
}

func (p *fakeProvider) Load(src xr.AssetSource, ready func(xr.Renderable), failed func(error)) {
	p.loads = append(p.loads, providerLoad{src: src, ready: ready, failed: failed})
}

// succeed resolves load i with a fresh renderable.
func (p *fakeProvider) succeed(t *testing.T, i int) *fakeRenderable {
	t.Helper()
	if i >= len(p.loads) {
		t.Fatalf("no load %d, have %d", i, len(p.loads))
	}
	r := newFakeRenderable()
	p.loads[i].ready(r)
	return r
}

func (p *fakeProvider) fail(t *testing.T, i int, err error) {
	t.Helper()
	if i >= len(p.loads) {
		t.Fatalf("no load %d, have %d", i, len(p.loads))
	}
	p.loads[i].failed(err)
}

type fakeOrbit struct {
	enabled bool
	updates int
}

func (o *fakeOrbit) SetEnabled(v bool) { o.enabled = v }
func (o *fakeOrbit) Update(float64)    { o.updates++ }
