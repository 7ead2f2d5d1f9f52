// Package physics moves the first-person listener through the maze
package physics

import (
	"math"

	"github.com/lixenwraith/echomaze/parameter"
	"github.com/lixenwraith/echomaze/vmath"
)

// Input is one frame of held movement keys
type Input struct {
	Forward, Backward bool
	Left, Right       bool
	Running           bool
}

// ControllerConfig holds speeds in units/sec and look sensitivities in radians/pixel
type ControllerConfig struct {
	WalkSpeed        float64
	RunSpeed         float64
	YawSensitivity   float64
	PitchSensitivity float64
	MaxPitch         float64
}

// DefaultControllerConfig returns the stock tuning
func DefaultControllerConfig() ControllerConfig {
	return ControllerConfig{
		WalkSpeed:        parameter.PlayerWalkSpeed,
		RunSpeed:         parameter.PlayerRunSpeed,
		YawSensitivity:   parameter.PlayerYawSensitivity,
		PitchSensitivity: parameter.PlayerPitchSensitivity,
		MaxPitch:         parameter.PlayerMaxPitch,
	}
}

// Controller is the listener's position and orientation
type Controller struct {
	Config   ControllerConfig
	Position vmath.Vec3F
	Yaw      float64
	Pitch    float64
	Rotating bool
}

// NewController places a controller at pos facing -Z
func NewController(cfg ControllerConfig, pos vmath.Vec3F) *Controller {
	return &Controller{Config: cfg, Position: pos}
}

// SetRotating enables or disables mouse look
func (c *Controller) SetRotating(on bool) {
	c.Rotating = on
}

// SetOrientation wraps yaw and clamps pitch to the configured limit
func (c *Controller) SetOrientation(yaw, pitch float64) {
	c.Yaw = vmath.WrapAngle(yaw)
	c.Pitch = vmath.Clamp(pitch, -c.Config.MaxPitch, c.Config.MaxPitch)
}

// ApplyLookDelta turns by a pointer delta in pixels, ignored while not rotating
func (c *Controller) ApplyLookDelta(dx, dy float64) {
	if !c.Rotating {
		return
	}
	c.SetOrientation(c.Yaw+dx*c.Config.YawSensitivity, c.Pitch-dy*c.Config.PitchSensitivity)
}

// MovementDelta returns the desired ground-plane displacement for dt seconds
// Diagonals are normalised so strafing never outruns straight movement
func (c *Controller) MovementDelta(in Input, dt float64) (dx, dz float64) {
	fwd := vmath.ForwardAxis(c.Yaw)
	right := vmath.RightAxis(c.Yaw)

	var vx, vz float64
	if in.Forward {
		vx += fwd.X
		vz += fwd.Z
	}
	if in.Backward {
		vx -= fwd.X
		vz -= fwd.Z
	}
	if in.Left {
		vx -= right.X
		vz -= right.Z
	}
	if in.Right {
		vx += right.X
		vz += right.Z
	}
	if mag := math.Hypot(vx, vz); mag > 0 {
		vx /= mag
		vz /= mag
	}

	speed := c.Config.WalkSpeed
	if in.Running {
		speed = c.Config.RunSpeed
	}
	return vx * speed * dt, vz * speed * dt
}

// RightAxis is the listener's right vector for stereo panning
func (c *Controller) RightAxis() vmath.XZ {
	return vmath.RightAxis(c.Yaw)
}
