package xr

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

const poseEps = 1e-5

func vec3Near(a, b mgl32.Vec3) bool {
	return a.Sub(b).Len() < poseEps
}

func TestPoseFromMat4Translation(t *testing.T) {
	m := mgl32.Translate3D(1, 2, 3)

	p := PoseFromMat4(m)

	if want := (mgl32.Vec3{1, 2, 3}); !vec3Near(p.Position, want) {
		t.Fatalf("Position = %v, want %v", p.Position, want)
	}
	if !vec3Near(p.Orientation.Rotate(mgl32.Vec3{0, 0, 1}), mgl32.Vec3{0, 0, 1}) {
		t.Fatalf("Orientation = %v, want identity", p.Orientation)
	}
}

func TestPoseFromMat4Rotation(t *testing.T) {
	// 90 degrees about Y: +Z maps to +X.
	m := mgl32.Translate3D(0, 1, 0).Mul4(mgl32.HomogRotate3DY(float32(math.Pi / 2)))

	p := PoseFromMat4(m)

	got := p.Orientation.Rotate(mgl32.Vec3{0, 0, 1})
	if want := (mgl32.Vec3{1, 0, 0}); !vec3Near(got, want) {
		t.Fatalf("rotated +Z = %v, want %v", got, want)
	}
}

func TestPoseMat4RoundTrip(t *testing.T) {
	orig := Pose{
		Position:    mgl32.Vec3{-2, 0.5, 4},
		Orientation: mgl32.QuatRotate(float32(math.Pi/3), mgl32.Vec3{0, 1, 0}),
	}

	p := PoseFromMat4(orig.Mat4())

	if !vec3Near(p.Position, orig.Position) {
		t.Fatalf("Position = %v, want %v", p.Position, orig.Position)
	}
	for _, axis := range []mgl32.Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}} {
		if !vec3Near(p.Orientation.Rotate(axis), orig.Orientation.Rotate(axis)) {
			t.Fatalf("Orientation rotates %v to %v, want %v",
				axis, p.Orientation.Rotate(axis), orig.Orientation.Rotate(axis))
		}
	}
}

func TestPoseForward(t *testing.T) {
	p := PoseIdentity()
	if want := (mgl32.Vec3{0, 0, -1}); !vec3Near(p.Forward(), want) {
		t.Fatalf("Forward() = %v, want %v", p.Forward(), want)
	}

	p.Orientation = mgl32.QuatRotate(float32(math.Pi/2), mgl32.Vec3{0, 1, 0})
	if want := (mgl32.Vec3{-1, 0, 0}); !vec3Near(p.Forward(), want) {
		t.Fatalf("Forward() after yaw = %v, want %v", p.Forward(), want)
	}
}
