package world

import (
	"math"

	"github.com/lixenwraith/echomaze/parameter"
	"github.com/lixenwraith/echomaze/vmath"
)

// Occlusion summarises the walls between two points
type Occlusion struct {
	Hits    int
	GainMul float64
	LPMul   float64
}

// Unoccluded is the result for a clear line
var Unoccluded = Occlusion{Hits: 0, GainMul: 1, LPMul: 1}

// SegIntersectsAABB reports whether segment a→b passes through the wall footprint
// Contacts within SegmentEpsilon of either endpoint, grazing touches and zero-length segments do not count
func SegIntersectsAABB(a, b vmath.XZ, w *Wall) bool {
	tmin, tmax := 0.0, 1.0

	var ok bool
	if tmin, tmax, ok = clipSlab(a.X, b.X-a.X, w.MinX(), w.MaxX(), tmin, tmax); !ok {
		return false
	}
	if tmin, tmax, ok = clipSlab(a.Z, b.Z-a.Z, w.MinZ(), w.MaxZ(), tmin, tmax); !ok {
		return false
	}
	return tmin < tmax && tmin > parameter.SegmentEpsilon && tmax < 1-parameter.SegmentEpsilon
}

// clipSlab narrows [tmin, tmax] to the parameter range inside [lo, hi] on one axis
func clipSlab(origin, d, lo, hi, tmin, tmax float64) (float64, float64, bool) {
	if math.Abs(d) < parameter.ParallelEpsilon {
		if origin < lo || origin > hi {
			return tmin, tmax, false
		}
		return tmin, tmax, true
	}
	inv := 1 / d
	t1 := (lo - origin) * inv
	t2 := (hi - origin) * inv
	if t1 > t2 {
		t1, t2 = t2, t1
	}
	tmin = math.Max(tmin, t1)
	tmax = math.Min(tmax, t2)
	return tmin, tmax, tmin <= tmax
}

// OcclusionAmong attenuates a line of sight by the walls it crosses
func OcclusionAmong(walls []Wall, listener, target vmath.XZ) Occlusion {
	hits := 0
	absorb := 0.0
	for i := range walls {
		if SegIntersectsAABB(listener, target, &walls[i]) {
			hits++
			absorb += walls[i].absorb()
		}
	}
	if hits == 0 {
		return Unoccluded
	}
	return Occlusion{
		Hits:    hits,
		GainMul: math.Pow(parameter.OcclusionGainStep, float64(min(hits, parameter.OcclusionMaxHits))),
		LPMul:   math.Max(parameter.OcclusionMinLowpass, 1-0.5*absorb),
	}
}

// Occlusion attenuates the line listener→target against this level's walls
func (g *Geometry) Occlusion(listener, target vmath.XZ) Occlusion {
	if g == nil {
		return Unoccluded
	}
	return OcclusionAmong(g.Walls, listener, target)
}
