package world

import (
	"math"

	"github.com/lixenwraith/echomaze/parameter"
	"github.com/lixenwraith/echomaze/vmath"
)

// Wall is an axis-aligned box; only its X/Z footprint matters to queries
type Wall struct {
	Center   vmath.Vec3F
	Half     vmath.Vec3F
	Material Material // zero ID means none
	Border   bool
}

func (w *Wall) MinX() float64 { return w.Center.X - w.Half.X }
func (w *Wall) MaxX() float64 { return w.Center.X + w.Half.X }
func (w *Wall) MinZ() float64 { return w.Center.Z - w.Half.Z }
func (w *Wall) MaxZ() float64 { return w.Center.Z + w.Half.Z }

func (w *Wall) reflect() float64 {
	if w.Material.ID == MatNone {
		return parameter.DefaultReflect
	}
	return w.Material.Reflect
}

func (w *Wall) absorb() float64 {
	if w.Material.ID == MatNone {
		return parameter.OcclusionDefaultAbsorb
	}
	return w.Material.AbsorbHF
}

// Bounds is a planar AABB
type Bounds struct {
	MinX, MaxX, MinZ, MaxZ float64
}

// EmptyBounds is the identity for Extend
func EmptyBounds() Bounds {
	return Bounds{MinX: math.Inf(1), MaxX: math.Inf(-1), MinZ: math.Inf(1), MaxZ: math.Inf(-1)}
}

func (b Bounds) Empty() bool {
	return b.MinX > b.MaxX || b.MinZ > b.MaxZ
}

// Extend grows b to include the wall footprint
func (b Bounds) Extend(w *Wall) Bounds {
	return Bounds{
		MinX: math.Min(b.MinX, w.MinX()),
		MaxX: math.Max(b.MaxX, w.MaxX()),
		MinZ: math.Min(b.MinZ, w.MinZ()),
		MaxZ: math.Max(b.MaxZ, w.MaxZ()),
	}
}

// Inflate returns b expanded by m on every side
func (b Bounds) Inflate(m float64) Bounds {
	return Bounds{MinX: b.MinX - m, MaxX: b.MaxX + m, MinZ: b.MinZ - m, MaxZ: b.MaxZ + m}
}

func (b Bounds) Center() vmath.XZ {
	return vmath.XZ{X: 0.5 * (b.MinX + b.MaxX), Z: 0.5 * (b.MinZ + b.MaxZ)}
}

func (b Bounds) Contains(p vmath.XZ) bool {
	return p.X >= b.MinX && p.X <= b.MaxX && p.Z >= b.MinZ && p.Z <= b.MaxZ
}

// WallBounds returns the tight bounds of all walls, or zero bounds when there are none
func WallBounds(walls []Wall) Bounds {
	if len(walls) == 0 {
		return Bounds{}
	}
	b := EmptyBounds()
	for i := range walls {
		b = b.Extend(&walls[i])
	}
	return b
}
