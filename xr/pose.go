package xr

import "github.com/go-gl/mathgl/mgl32"

// Pose is a rigid transform: position plus orientation, no scale.
type Pose struct {
	Position    mgl32.Vec3
	Orientation mgl32.Quat
}

// PoseIdentity returns the origin pose with identity orientation.
func PoseIdentity() Pose {
	return Pose{Orientation: mgl32.QuatIdent()}
}

// PoseFromMat4 decomposes a column-major 4x4 transform with identity scale
// into position and orientation.
func PoseFromMat4(m mgl32.Mat4) Pose {
	return Pose{
		Position:    m.Col(3).Vec3(),
		Orientation: mgl32.Mat4ToQuat(m),
	}
}

// Mat4 recomposes the pose into a 4x4 transform.
func (p Pose) Mat4() mgl32.Mat4 {
	t := mgl32.Translate3D(p.Position.X(), p.Position.Y(), p.Position.Z())
	return t.Mul4(p.Orientation.Mat4())
}

// Forward returns the pose's -Z axis in world space, the direction the pose
// is facing.
func (p Pose) Forward() mgl32.Vec3 {
	return p.Orientation.Rotate(mgl32.Vec3{0, 0, -1})
}
