// Package cue turns listener-relative geometry into audio/visual cue parameters
package cue

import (
	"math"

	"github.com/lixenwraith/echomaze/parameter"
	"github.com/lixenwraith/echomaze/vmath"
	"github.com/lixenwraith/echomaze/world"
)

// DefaultBeaconReach is the audible reach of a beacon in world units
const DefaultBeaconReach = parameter.CellSize * parameter.BeaconReachCells

// Occluder attenuates a line of sight; *world.Geometry implements it
type Occluder interface {
	Occlusion(listener, target vmath.XZ) world.Occlusion
}

// BeaconCue is the stereo chime and glow for one beacon
type BeaconCue struct {
	Pan      float64 // -1 left .. 1 right
	Strength float64 // (0.05, 1]
	Bright   float64 // glow, [0.2, 0.7]
}

// CalcBeaconCue computes the cue heard at listener, whose right vector is right
// ok is false when reach is non-positive, the beacon is out of reach, or the
// cue is too faint; a nil occluder means a clear line
func CalcBeaconCue(listener, right, beacon vmath.XZ, reach float64, occ Occluder) (cue BeaconCue, ok bool) {
	if !(reach > 0) {
		return cue, false
	}
	dx := beacon.X - listener.X
	dz := beacon.Z - listener.Z
	dist := math.Hypot(dx, dz)
	if dist > reach {
		return cue, false
	}

	pan := vmath.ClampPan((dx*right.X + dz*right.Z) / math.Max(dist, parameter.PanMinDistance))
	near := math.Max(0, 1-dist/reach)

	gain := 1.0
	if occ != nil {
		gain = occ.Occlusion(listener, beacon).GainMul
	}
	mix := parameter.BeaconOcclusionBase + parameter.BeaconOcclusionScale*vmath.Clamp01(gain)
	strength := near * mix
	if strength <= parameter.BeaconMinStrength {
		return cue, false
	}

	return BeaconCue{
		Pan:      pan,
		Strength: strength,
		Bright:   parameter.BeaconBrightBase + parameter.BeaconBrightScale*near,
	}, true
}
