package vmath

import "math"

// XZ is a point or direction on the ground plane
type XZ struct {
	X, Z float64
}

func XZSub(a, b XZ) XZ {
	return XZ{a.X - b.X, a.Z - b.Z}
}

func XZDot(a, b XZ) float64 {
	return a.X*b.X + a.Z*b.Z
}

// XZDist returns the planar distance between a and b
func XZDist(a, b XZ) float64 {
	return math.Hypot(a.X-b.X, a.Z-b.Z)
}

// At lifts the point to 3D at height y
func (p XZ) At(y float64) Vec3F {
	return Vec3F{p.X, y, p.Z}
}
