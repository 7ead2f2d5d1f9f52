package parameter

import "time"

// Beacon cue shaping
const (
	// BeaconReachCells is the default audible reach in cells
	BeaconReachCells = 4.0

	// BeaconMinStrength drops cues at or below this strength
	BeaconMinStrength = 0.05

	// BeaconOcclusionBase and BeaconOcclusionScale blend occlusion into strength
	BeaconOcclusionBase  = 0.55
	BeaconOcclusionScale = 0.45

	// BeaconBrightBase and BeaconBrightScale map nearness to glow
	BeaconBrightBase  = 0.2
	BeaconBrightScale = 0.5

	// PanMinDistance avoids division by zero for coincident positions
	PanMinDistance = 1e-4

	// BeaconChimeInterval is the minimum time between chimes for one beacon
	BeaconChimeInterval = 4500 * time.Millisecond

	// ExitKnockInterval is the minimum time between exit door knocks
	ExitKnockInterval = 3500 * time.Millisecond

	// ExitKnockReachCells is the audible reach of the exit knock in cells
	ExitKnockReachCells = 6.0
)

// Pickup and door reach, each the larger of a floor and a CellSize fraction
const (
	KeyPickupMin         = 0.35
	KeyPickupFactor      = 0.32
	BeaconPickupMin      = 0.5
	BeaconPickupFactor   = 0.42
	DoorReachFactor      = 0.45
	DoorReachWidthFactor = 0.6
)

// Ping strengths for marker waves
const (
	PingStrengthKey         = 0.6
	PingStrengthBeaconLight = 0.45
	PingStrengthBeaconChime = 0.4
	PingWaveMul             = 1.5
)

// Ping recharge
const (
	PingChargesMax     = 10
	PingChargeCooldown = 10 * time.Second
)

// Echo model
const (
	// SpeedOfSound in meters per second
	SpeedOfSound = 343.0

	// VisualWaveSpeed is the propagation speed of the visual ping wave, world units per second
	VisualWaveSpeed = 12.0

	// EchoBaseGain scales every echo tap
	EchoBaseGain = 0.35

	// EchoLowpassTop is the low-pass cutoff for a zero-distance echo
	EchoLowpassTop = 8000.0

	// EchoMinDistance guards the direction normalisation
	EchoMinDistance = 1e-6

	// MaxEchoTaps is one image per axis direction
	MaxEchoTaps = 4
)

// Echo tuning defaults
const (
	EchoGainMul    = 1.0
	EchoDistK      = 0.05
	EchoLPK        = 0.06
	EchoLPBase     = 800.0
	EchoUnitMeters = 3.0
	EchoAVSync     = true
	EchoFrequency  = 1400.0
	EchoMaster     = 0.9
	PingClick      = 0.6
)
