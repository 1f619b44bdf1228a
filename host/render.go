package host

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"arview/xr"
)

var (
	colorAsset   = color.RGBA{0x7f, 0xd4, 0xff, 0xff}
	colorGrid    = color.RGBA{0x3a, 0x3f, 0x4a, 0xff}
	colorReticle = color.RGBA{0x6f, 0xff, 0x9f, 0xff}
)

// viewProj builds the frame's view-projection matrix for a camera pose or
// the orbit rig.
func perspective(w, h int) mgl32.Mat4 {
	aspect := float32(w) / float32(h)
	return mgl32.Perspective(mgl32.DegToRad(55), aspect, 0.05, 100)
}

// viewFromPose inverts a camera pose into a view matrix.
func viewFromPose(p xr.Pose) mgl32.Mat4 {
	return p.Mat4().Inv()
}

// project maps a world point to screen coordinates. ok is false behind the
// near plane.
func project(vp mgl32.Mat4, v mgl32.Vec3, w, h int) (float32, float32, bool) {
	clip := vp.Mul4x1(v.Vec4(1))
	if clip.W() <= 1e-5 {
		return 0, 0, false
	}
	ndcX := clip.X() / clip.W()
	ndcY := clip.Y() / clip.W()
	x := (ndcX + 1) * 0.5 * float32(w)
	y := (1 - ndcY) * 0.5 * float32(h)
	return x, y, true
}

func strokeWorldLine(dst *ebiten.Image, vp mgl32.Mat4, a, b mgl32.Vec3, clr color.Color) {
	w, h := dst.Bounds().Dx(), dst.Bounds().Dy()
	x0, y0, ok0 := project(vp, a, w, h)
	x1, y1, ok1 := project(vp, b, w, h)
	if !ok0 || !ok1 {
		return
	}
	vector.StrokeLine(dst, x0, y0, x1, y1, 1, clr, true)
}

func drawMesh(dst *ebiten.Image, vp mgl32.Mat4, m *Mesh, clr color.Color) {
	if !m.Visible() {
		return
	}
	mvp := vp.Mul4(m.model())
	w, h := dst.Bounds().Dx(), dst.Bounds().Dy()
	for _, e := range m.edges {
		x0, y0, ok0 := project(mvp, m.verts[e[0]], w, h)
		x1, y1, ok1 := project(mvp, m.verts[e[1]], w, h)
		if !ok0 || !ok1 {
			continue
		}
		vector.StrokeLine(dst, x0, y0, x1, y1, 1, clr, true)
	}
}

// drawGrid draws the ground plane y = 0 as a line grid.
func drawGrid(dst *ebiten.Image, vp mgl32.Mat4) {
	const ext = 4
	for i := -ext; i <= ext; i++ {
		fi := float32(i)
		strokeWorldLine(dst, vp, mgl32.Vec3{fi, 0, -ext}, mgl32.Vec3{fi, 0, ext}, colorGrid)
		strokeWorldLine(dst, vp, mgl32.Vec3{-ext, 0, fi}, mgl32.Vec3{ext, 0, fi}, colorGrid)
	}
}

// drawReticle draws the surface indicator as a ring lying in the hit plane.
func drawReticle(dst *ebiten.Image, vp mgl32.Mat4, pose xr.Pose) {
	const (
		segments = 24
		radius   = 0.15
	)
	m := pose.Mat4()
	prev := mgl32.Vec3{}
	for i := 0; i <= segments; i++ {
		a := 2 * math.Pi * float64(i) / segments
		local := mgl32.Vec3{float32(radius * math.Cos(a)), 0, float32(radius * math.Sin(a))}
		pt := mgl32.TransformCoordinate(local, m)
		if i > 0 {
			strokeWorldLine(dst, vp, prev, pt, colorReticle)
		}
		prev = pt
	}
	center := pose.Position
	strokeWorldLine(dst, vp, center.Add(mgl32.Vec3{-0.03, 0, 0}), center.Add(mgl32.Vec3{0.03, 0, 0}), colorReticle)
	strokeWorldLine(dst, vp, center.Add(mgl32.Vec3{0, 0, -0.03}), center.Add(mgl32.Vec3{0, 0, 0.03}), colorReticle)
}
