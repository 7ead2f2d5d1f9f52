package cue

import (
	"math"

	"github.com/lixenwraith/echomaze/parameter"
	"github.com/lixenwraith/echomaze/vmath"
)

// DefaultKnockReach is the audible reach of the exit knock in world units
const DefaultKnockReach = parameter.CellSize * parameter.ExitKnockReachCells

// KnockCue locates the exit door by sound
type KnockCue struct {
	Pan       float64
	Intensity float64 // 0..1
}

// ExitKnock shapes the door knock like a beacon chime but without a strength floor
func ExitKnock(listener, right, door vmath.XZ, reach float64, occ Occluder) (KnockCue, bool) {
	if !(reach > 0) {
		return KnockCue{}, false
	}
	dx := door.X - listener.X
	dz := door.Z - listener.Z
	dist := math.Hypot(dx, dz)
	if dist > reach {
		return KnockCue{}, false
	}
	near := math.Max(0, 1-dist/reach)
	gain := 1.0
	if occ != nil {
		gain = occ.Occlusion(listener, door).GainMul
	}
	return KnockCue{
		Pan:       vmath.ClampPan((dx*right.X + dz*right.Z) / math.Max(dist, parameter.PanMinDistance)),
		Intensity: near * (parameter.BeaconOcclusionBase + parameter.BeaconOcclusionScale*vmath.Clamp01(gain)),
	}, true
}
