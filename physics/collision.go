package physics

import (
	"math"

	"github.com/lixenwraith/echomaze/parameter"
	"github.com/lixenwraith/echomaze/vmath"
	"github.com/lixenwraith/echomaze/world"
)

// collideCircle pushes a circle at (x, z) out of every wall footprint
func collideCircle(walls []world.Wall, x, z, r float64) (float64, float64) {
	for i := range walls {
		w := &walls[i]
		nx := vmath.Clamp(x, w.MinX(), w.MaxX())
		nz := vmath.Clamp(z, w.MinZ(), w.MaxZ())
		dx, dz := x-nx, z-nz
		d2 := dx*dx + dz*dz
		if d2 >= r*r {
			continue
		}
		if d2 > 0 {
			d := math.Sqrt(d2)
			x = nx + dx/d*r
			z = nz + dz/d*r
			continue
		}
		// Center inside the box: leave through the nearest face
		left, right := x-w.MinX(), w.MaxX()-x
		near, far := z-w.MinZ(), w.MaxZ()-z
		switch math.Min(math.Min(left, right), math.Min(near, far)) {
		case left:
			x = w.MinX() - r
		case right:
			x = w.MaxX() + r
		case near:
			z = w.MinZ() - r
		default:
			z = w.MaxZ() + r
		}
	}
	return x, z
}

// MoveWithCollisions applies (dx, dz) to pos one axis at a time so the player slides along walls
// Returns the displacement actually applied
func MoveWithCollisions(walls []world.Wall, pos *vmath.Vec3F, dx, dz float64) (float64, float64) {
	r := parameter.PlayerRadius
	px, pz := pos.X, pos.Z

	x, z := collideCircle(walls, px+dx, pz, r)
	x, z = collideCircle(walls, x, z+dz, r)

	pos.X, pos.Z = x, z
	return x - px, z - pz
}

// Move integrates one frame of input for the controller against the walls
func (c *Controller) Move(walls []world.Wall, in Input, dt float64) (float64, float64) {
	dx, dz := c.MovementDelta(in, dt)
	return MoveWithCollisions(walls, &c.Position, dx, dz)
}
