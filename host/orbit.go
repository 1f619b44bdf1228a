package host

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	orbitMinPitch = -1.45
	orbitMaxPitch = 1.45
	orbitMinDist  = 1.0
	orbitMaxDist  = 12.0
	// orbitDamping is the per-second decay of accumulated pointer input.
	orbitDamping = 12.0
)

// Orbit is the inspection-mode camera rig: yaw/pitch around a target point
// plus a dolly distance. Pointer input accumulates deltas; Update applies
// them with damping once per frame. Disabled while an AR session runs.
type Orbit struct {
	enabled bool

	yaw, pitch float64
	dist       float64
	target     mgl32.Vec3

	dragging     bool
	lastX, lastY int
	dYaw, dPitch float64
	dDist        float64
}

// NewOrbit returns an enabled rig looking at the asset resting point.
func NewOrbit() *Orbit {
	return &Orbit{
		enabled: true,
		yaw:     0.6,
		pitch:   0.35,
		dist:    3.5,
		target:  mgl32.Vec3{0, 0.5, 0},
	}
}

// SetEnabled turns the rig on or off. Disabling drops any in-progress drag.
func (o *Orbit) SetEnabled(v bool) {
	o.enabled = v
	if !v {
		o.dragging = false
		o.dYaw, o.dPitch, o.dDist = 0, 0, 0
	}
}

// Enabled reports whether the rig reacts to input.
func (o *Orbit) Enabled() bool { return o.enabled }

// Pointer feeds the current pointer position and button state.
func (o *Orbit) Pointer(x, y int, down bool) {
	if !o.enabled {
		return
	}
	if down && o.dragging {
		o.dYaw += float64(x-o.lastX) * 0.008
		o.dPitch += float64(y-o.lastY) * 0.008
	}
	o.dragging = down
	o.lastX, o.lastY = x, y
}

// Dolly feeds wheel scroll: positive moves the camera closer.
func (o *Orbit) Dolly(dy float64) {
	if !o.enabled {
		return
	}
	o.dDist -= dy * 0.3
}

// Update applies accumulated input with damping. No-op while disabled.
func (o *Orbit) Update(dt float64) {
	if !o.enabled {
		return
	}
	k := 1.0
	if dt > 0 {
		k = 1 - math.Exp(-orbitDamping*dt)
	}
	o.yaw += o.dYaw * k
	o.pitch = clamp(o.pitch+o.dPitch*k, orbitMinPitch, orbitMaxPitch)
	o.dist = clamp(o.dist+o.dDist*k, orbitMinDist, orbitMaxDist)
	o.dYaw -= o.dYaw * k
	o.dPitch -= o.dPitch * k
	o.dDist -= o.dDist * k
}

// Eye returns the camera position.
func (o *Orbit) Eye() mgl32.Vec3 {
	cp := math.Cos(o.pitch)
	return o.target.Add(mgl32.Vec3{
		float32(o.dist * cp * math.Sin(o.yaw)),
		float32(o.dist * math.Sin(o.pitch)),
		float32(o.dist * cp * math.Cos(o.yaw)),
	})
}

// View returns the rig's view matrix.
func (o *Orbit) View() mgl32.Mat4 {
	return mgl32.LookAtV(o.Eye(), o.target, mgl32.Vec3{0, 1, 0})
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
