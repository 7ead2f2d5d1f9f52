package world

import (
	"math"

	"github.com/lixenwraith/echomaze/parameter"
	"github.com/lixenwraith/echomaze/vmath"
)

// ReflectionImage is a first-order mirror source
type ReflectionImage struct {
	Pos      vmath.Vec3F
	Reflect  float64
	Distance float64 // source to mirror plane
}

type reflectionPlane struct {
	pos          float64
	span0, span1 float64
	reflect      float64
}

// ReflectionPlanes holds the wall faces perpendicular to each axis
type ReflectionPlanes struct {
	x []reflectionPlane // planes at constant X, spanning Z
	z []reflectionPlane // planes at constant Z, spanning X
}

// Rebuild replaces the planes with the faces of walls
func (p *ReflectionPlanes) Rebuild(walls []Wall) {
	p.x = p.x[:0]
	p.z = p.z[:0]
	for i := range walls {
		w := &walls[i]
		r := w.reflect()
		p.x = append(p.x,
			reflectionPlane{pos: w.MinX(), span0: w.MinZ(), span1: w.MaxZ(), reflect: r},
			reflectionPlane{pos: w.MaxX(), span0: w.MinZ(), span1: w.MaxZ(), reflect: r},
		)
		p.z = append(p.z,
			reflectionPlane{pos: w.MinZ(), span0: w.MinX(), span1: w.MaxX(), reflect: r},
			reflectionPlane{pos: w.MaxZ(), span0: w.MinX(), span1: w.MaxX(), reflect: r},
		)
	}
}

// Len returns the total plane count
func (p *ReflectionPlanes) Len() int {
	return len(p.x) + len(p.z)
}

// nearest returns the closest plane strictly ahead of coord along dir whose span covers ortho
func nearest(planes []reflectionPlane, coord, ortho, dir float64) (pos, reflect, dist float64, ok bool) {
	for i := range planes {
		pl := &planes[i]
		if ortho < pl.span0-parameter.PlaneEpsilon || ortho > pl.span1+parameter.PlaneEpsilon {
			continue
		}
		d := coord - pl.pos
		if dir > 0 {
			d = pl.pos - coord
		}
		if d <= parameter.PlaneEpsilon {
			continue
		}
		if !ok || d < dist {
			pos, reflect, dist, ok = pl.pos, pl.reflect, d, true
		}
	}
	return pos, reflect, dist, ok
}

// GatherReflectionImages writes up to four mirror images of src, one per axis
// direction in the order +X, -X, +Z, -Z, into out and returns the count
// A direction without a plane falls back to the bounds edge with outerReflect
func GatherReflectionImages(planes *ReflectionPlanes, src vmath.Vec3F, bounds Bounds, outerReflect float64, out []ReflectionImage) int {
	dirs := [4]struct {
		onX      bool
		dir      float64
		fallback float64
	}{
		{true, 1, bounds.MaxX},
		{true, -1, bounds.MinX},
		{false, 1, bounds.MaxZ},
		{false, -1, bounds.MinZ},
	}

	count := 0
	for _, d := range dirs {
		if count >= len(out) {
			break
		}
		coord, ortho, set := src.Z, src.X, planes.z
		if d.onX {
			coord, ortho, set = src.X, src.Z, planes.x
		}
		pos, reflect, dist, ok := nearest(set, coord, ortho, d.dir)
		if !ok {
			pos, reflect, dist = d.fallback, outerReflect, math.Abs(d.fallback-coord)
		}
		img := vmath.Vec3F{X: src.X, Y: src.Y, Z: src.Z}
		if d.onX {
			img.X = 2*pos - src.X
		} else {
			img.Z = 2*pos - src.Z
		}
		out[count] = ReflectionImage{Pos: img, Reflect: reflect, Distance: dist}
		count++
	}
	return count
}

// GatherReflectionImages mirrors src in this level's walls, falling back to the level bounds
func (g *Geometry) GatherReflectionImages(src vmath.Vec3F, outerReflect float64, out []ReflectionImage) int {
	return GatherReflectionImages(&g.planes, src, g.Bounds, outerReflect, out)
}
