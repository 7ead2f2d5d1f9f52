package parameter

import "math"

// Player controller defaults
const (
	PlayerWalkSpeed        = 3.0
	PlayerRunSpeed         = 5.0
	PlayerYawSensitivity   = 0.0025
	PlayerPitchSensitivity = 0.002
	PlayerMaxPitch         = math.Pi/2 - 0.001

	// PlayerRadius is the collision circle radius on the ground plane
	PlayerRadius = 0.25
)

// Ping history
const (
	// MaxPings is the ping history capacity
	MaxPings = 10

	// PingDefaultStrength is used when a caller passes no strength
	PingDefaultStrength = 1.0
)
