package host

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

// scene is the set of renderables currently attached for drawing. Meshes
// attach on creation and detach on Dispose; the render loop snapshots it
// each Draw.
type scene struct {
	mu    sync.Mutex
	items map[*Mesh]struct{}
}

func newScene() *scene {
	return &scene{items: make(map[*Mesh]struct{})}
}

func (s *scene) attach(m *Mesh) {
	s.mu.Lock()
	s.items[m] = struct{}{}
	s.mu.Unlock()
}

func (s *scene) detach(m *Mesh) {
	s.mu.Lock()
	delete(s.items, m)
	s.mu.Unlock()
}

func (s *scene) snapshot() []*Mesh {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Mesh, 0, len(s.items))
	for m := range s.items {
		out = append(out, m)
	}
	return out
}

// Len returns the number of attached meshes.
func (s *scene) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Mesh is a wireframe renderable: vertices plus edge indices, with the
// transform and visibility the viewer core mutates.
type Mesh struct {
	sc    *scene
	verts []mgl32.Vec3
	edges [][2]int

	mu       sync.Mutex
	visible  bool
	pos      mgl32.Vec3
	orient   mgl32.Quat
	scale    mgl32.Vec3
	disposed bool
}

func newMesh(sc *scene, verts []mgl32.Vec3, edges [][2]int) *Mesh {
	m := &Mesh{
		sc:      sc,
		verts:   verts,
		edges:   edges,
		visible: true,
		orient:  mgl32.QuatIdent(),
		scale:   mgl32.Vec3{1, 1, 1},
	}
	sc.attach(m)
	return m
}

func (m *Mesh) SetVisible(v bool) {
	m.mu.Lock()
	m.visible = v
	m.mu.Unlock()
}

func (m *Mesh) Visible() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.visible
}

func (m *Mesh) SetPosition(p mgl32.Vec3) {
	m.mu.Lock()
	m.pos = p
	m.mu.Unlock()
}

func (m *Mesh) Position() mgl32.Vec3 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pos
}

func (m *Mesh) SetOrientation(q mgl32.Quat) {
	m.mu.Lock()
	m.orient = q
	m.mu.Unlock()
}

func (m *Mesh) Orientation() mgl32.Quat {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.orient
}

func (m *Mesh) SetScale(s mgl32.Vec3) {
	m.mu.Lock()
	m.scale = s
	m.mu.Unlock()
}

func (m *Mesh) Scale() mgl32.Vec3 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.scale
}

// Dispose detaches the mesh from the scene. Idempotent.
func (m *Mesh) Dispose() {
	m.mu.Lock()
	if m.disposed {
		m.mu.Unlock()
		return
	}
	m.disposed = true
	m.mu.Unlock()
	m.sc.detach(m)
}

// model returns the mesh's model matrix.
func (m *Mesh) model() mgl32.Mat4 {
	m.mu.Lock()
	pos, orient, scale := m.pos, m.orient, m.scale
	m.mu.Unlock()
	t := mgl32.Translate3D(pos.X(), pos.Y(), pos.Z())
	return t.Mul4(orient.Mat4()).Mul4(mgl32.Scale3D(scale.X(), scale.Y(), scale.Z()))
}
