// Package culling selects the instances a camera can see using a coarse spatial grid
package culling

import (
	"math"

	"github.com/lixenwraith/echomaze/vmath"
)

// Bounds is the immutable spatial footprint of one renderable instance
type Bounds struct {
	Center        vmath.Vec3F
	Half          vmath.Vec3F
	Radius        float64 // bounding sphere, >= |Half|
	AlwaysVisible bool
	Pivot         *vmath.Vec3F // rotation pivot, nil means Center
}

// Attr holds the per-frame mutable render state of one instance
// Changing it never touches grid membership
type Attr struct {
	MaterialID int
	Disabled   bool
}

// BoxBounds builds bounds for a box with the tight bounding sphere
func BoxBounds(center, half vmath.Vec3F) Bounds {
	return Bounds{
		Center: center,
		Half:   half,
		Radius: math.Sqrt(half.X*half.X + half.Y*half.Y + half.Z*half.Z),
	}
}

// PivotOrCenter returns the rotation pivot
func (b *Bounds) PivotOrCenter() vmath.Vec3F {
	if b.Pivot != nil {
		return *b.Pivot
	}
	return b.Center
}
