package culling

import (
	"math"

	"github.com/lixenwraith/echomaze/parameter"
	"github.com/lixenwraith/echomaze/vmath"
)

// Camera describes a perspective view
type Camera struct {
	Position    vmath.Vec3F
	Yaw, Pitch  float64
	Aspect      float64 // width / height
	Near, Far   float64
	TanHalfFovY float64
}

// NewCamera builds a camera with the default clip planes for a vertical fov in radians
func NewCamera(pos vmath.Vec3F, yaw, pitch, aspect, fovY float64) Camera {
	return Camera{
		Position:    pos,
		Yaw:         yaw,
		Pitch:       pitch,
		Aspect:      aspect,
		Near:        parameter.CameraNear,
		Far:         parameter.CameraFar,
		TanHalfFovY: math.Tan(0.5 * fovY),
	}
}

// FrustumContains is a conservative sphere test against the view frustum
// It may keep some spheres outside the frustum but never drops one inside it
func FrustumContains(b *Bounds, cam *Camera) bool {
	return frustumContains(b, cam, vmath.CameraBasis(cam.Yaw, cam.Pitch))
}

func frustumContains(b *Bounds, cam *Camera, basis vmath.Basis) bool {
	rel := vmath.V3FSub(b.Center, cam.Position)
	r := b.Radius
	z := vmath.V3FDot(rel, basis.Forward)
	if z+r < cam.Near || z-r > cam.Far {
		return false
	}
	if z+r <= 0 {
		return false
	}
	x := vmath.V3FDot(rel, basis.Right)
	y := vmath.V3FDot(rel, basis.Up)
	if math.Abs(x) > r+(z+r)*cam.TanHalfFovY*cam.Aspect {
		return false
	}
	if math.Abs(y) > r+(z+r)*cam.TanHalfFovY {
		return false
	}
	return true
}
