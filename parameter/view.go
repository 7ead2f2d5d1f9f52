package parameter

import "time"

// Top-down map view
const (
	// ViewCellColumns is the terminal columns drawn per maze cell
	ViewCellColumns = 2

	// PingRevealDuration is how long a ping keeps surfaces visible
	PingRevealDuration = 2500 * time.Millisecond

	// PingRevealCells is the reveal radius in cells at strength 1
	PingRevealCells = 4.0

	// ViewFrustumTint blends frustum-visible cells toward their seen color
	ViewFrustumTint = 0.35

	// ViewLookStep is the yaw change per turn key press in radians
	ViewLookStep = 0.12

	// ViewTurnSpeed is the keyboard turn rate in radians per second
	ViewTurnSpeed = 2.4

	// ViewInputHold keeps a movement key active after a terminal press, terminals report no key-up
	ViewInputHold = 140 * time.Millisecond
)

// Frontend loop
const (
	FrameInterval = 16 * time.Millisecond
	WindowCellPx  = 12
)
