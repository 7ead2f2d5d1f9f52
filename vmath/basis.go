package vmath

import "math"

// Basis is the orthonormal camera frame for a yaw/pitch orientation
// Yaw 0 looks down -Z, positive yaw turns toward +X
type Basis struct {
	Forward, Right, Up Vec3F
}

// CameraBasis builds the camera frame from yaw and pitch in radians
func CameraBasis(yaw, pitch float64) Basis {
	sy, cy := math.Sincos(yaw)
	sp, cp := math.Sincos(pitch)
	return Basis{
		Forward: Vec3F{sy * cp, sp, -cy * cp},
		Right:   Vec3F{cy, 0, sy},
		Up:      Vec3F{-sy * sp, cp, cy * sp},
	}
}

// RightAxis is the listener's horizontal right vector for a yaw
func RightAxis(yaw float64) XZ {
	s, c := math.Sincos(yaw)
	return XZ{c, s}
}

// ForwardAxis is the horizontal facing direction for a yaw
func ForwardAxis(yaw float64) XZ {
	s, c := math.Sincos(yaw)
	return XZ{s, -c}
}
