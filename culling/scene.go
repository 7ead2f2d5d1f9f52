package culling

import (
	"math"

	"github.com/lixenwraith/echomaze/parameter"
	"github.com/lixenwraith/echomaze/vmath"
	"github.com/lixenwraith/echomaze/world"
)

// Decorations are the per-level props placed on top of the wall geometry
type Decorations struct {
	Key     *vmath.Vec3F
	Beacons []vmath.Vec3F
}

// Scene is the full instance set of a level with its culling grid
// Bounds and Grid are fixed; Attrs change as the level is played
type Scene struct {
	Bounds []Bounds
	Attrs  []Attr
	Grid   *Grid

	Floor, Ceiling int
	Door, Handle   int
	KeyParts       []int
	BeaconPoles    []int
	BeaconCaps     []int
}

func (s *Scene) push(b Bounds, mat int) int {
	s.Bounds = append(s.Bounds, b)
	s.Attrs = append(s.Attrs, Attr{MaterialID: mat})
	return len(s.Bounds) - 1
}

// BuildScene lays out walls, floor, ceiling, exit door, key and beacons and buckets them
func BuildScene(geo *world.Geometry, deco Decorations) *Scene {
	s := &Scene{}
	cs := geo.CellSize

	for i := range geo.Walls {
		w := &geo.Walls[i]
		mat := world.MatInner
		if w.Material.ID != world.MatNone {
			mat = w.Material.ID
		}
		s.push(BoxBounds(w.Center, w.Half), mat)
	}

	slab := geo.Bounds.Inflate(parameter.FloorMargin)
	c := slab.Center()
	slabHalf := vmath.Vec3F{X: 0.5 * (slab.MaxX - slab.MinX), Y: parameter.FloorHalfY, Z: 0.5 * (slab.MaxZ - slab.MinZ)}

	floor := BoxBounds(vmath.Vec3F{X: c.X, Y: parameter.FloorY, Z: c.Z}, slabHalf)
	floor.AlwaysVisible = true
	s.Floor = s.push(floor, world.MatNone)

	s.pushDoor(geo.ExitDoor, cs)

	ceiling := BoxBounds(vmath.Vec3F{X: c.X, Y: parameter.CeilingY, Z: c.Z}, slabHalf)
	ceiling.AlwaysVisible = true
	s.Ceiling = s.push(ceiling, world.MatNone)

	if deco.Key != nil {
		s.pushKey(*deco.Key, cs)
	}
	for _, b := range deco.Beacons {
		s.pushBeacon(b, cs)
	}

	cell := math.Max(parameter.SceneGridMinCell, cs*parameter.SceneGridCellFactor)
	s.Grid = BuildGrid(s.Bounds, cell, geo.Bounds)
	return s
}

func (s *Scene) pushDoor(d world.ExitDoor, cs float64) {
	acrossX := math.Abs(d.Normal.X) > 0.5
	half := vmath.Vec3F{X: 0.5 * d.Width, Y: parameter.WallHalfHeight, Z: 0.5 * d.Depth}
	if acrossX {
		half.X, half.Z = half.Z, half.X
	}
	center := vmath.Vec3F{X: d.Position.X, Y: d.Position.Y + 0.1, Z: d.Position.Z}
	s.Door = s.push(BoxBounds(center, half), world.MatDoor)

	hw, hd := 0.5*cs*0.08, 0.5*cs*0.05
	handleHalf := vmath.Vec3F{X: hw, Y: 0.08, Z: hd}
	offsetN := half.Z + hd
	if acrossX {
		handleHalf.X, handleHalf.Z = hd, hw
		offsetN = half.X + hd
	}
	offsetN += 0.02
	offsetT := math.Max(0.12, cs*0.18)
	tangent := vmath.XZ{X: -d.Normal.Z, Z: d.Normal.X}
	handle := vmath.Vec3F{
		X: d.Position.X + d.Normal.X*offsetN + tangent.X*offsetT,
		Y: d.Position.Y + 0.1 - handleHalf.Y,
		Z: d.Position.Z + d.Normal.Z*offsetN + tangent.Z*offsetT,
	}
	s.Handle = s.push(BoxBounds(handle, handleHalf), world.MatMetal)
}

// pushKey builds a side-view key silhouette from flat boxes sharing one pivot:
// two short bow rows, the shaft, then two rows of bow plus three teeth
func (s *Scene) pushKey(k vmath.Vec3F, cs float64) {
	pivot := &vmath.Vec3F{X: k.X, Y: 0.9, Z: k.Z}
	thick := math.Max(0.006, cs*0.045)
	rowH := cs * 0.05
	baseLen := cs * 0.34
	short, long := baseLen*0.45, baseLen*1.1
	tooth, gap := baseLen*0.15, baseLen*0.08
	x0 := k.X - baseLen*0.55
	rowY := func(r int) float64 { return pivot.Y + float64(2-r)*rowH }

	part := func(cx, cy, hx float64) {
		b := BoxBounds(vmath.Vec3F{X: cx, Y: cy, Z: pivot.Z}, vmath.Vec3F{X: hx, Y: 0.5 * rowH, Z: 0.5 * thick})
		b.Pivot = pivot
		s.KeyParts = append(s.KeyParts, s.push(b, world.MatKey))
	}

	for r := 0; r < 2; r++ {
		part(x0+0.5*short, rowY(r), 0.5*short)
	}
	part(x0+0.5*long, rowY(2), 0.5*long)
	for r := 3; r < 5; r++ {
		part(x0+0.5*short, rowY(r), 0.5*short)
		t0 := x0 + short + gap + 0.5*tooth
		for i := 0; i < 3; i++ {
			part(t0+float64(i)*(tooth+gap), rowY(r), 0.5*tooth)
		}
	}
}

func (s *Scene) pushBeacon(p vmath.Vec3F, cs float64) {
	ground := parameter.EyeHeight
	pole := vmath.Vec3F{X: cs * 0.06, Y: 0.9, Z: cs * 0.06}
	s.BeaconPoles = append(s.BeaconPoles,
		s.push(BoxBounds(vmath.Vec3F{X: p.X, Y: ground + pole.Y, Z: p.Z}, pole), world.MatMetal))

	capHalf := vmath.Vec3F{X: cs * 0.18, Y: 0.05, Z: cs * 0.18}
	s.BeaconCaps = append(s.BeaconCaps,
		s.push(BoxBounds(vmath.Vec3F{X: p.X, Y: ground + 2*pole.Y + 0.5*capHalf.Y, Z: p.Z}, capHalf), world.MatBeaconDark))
}

// SetKeyHidden disables the key parts once collected
func (s *Scene) SetKeyHidden(hidden bool) {
	for _, i := range s.KeyParts {
		s.Attrs[i].Disabled = hidden
		if hidden {
			s.Attrs[i].MaterialID = world.MatNone
		} else {
			s.Attrs[i].MaterialID = world.MatKey
		}
	}
}

// SetBeaconLit switches a beacon cap between its dark and lit materials
func (s *Scene) SetBeaconLit(beacon int, lit bool) {
	if beacon < 0 || beacon >= len(s.BeaconCaps) {
		return
	}
	i := s.BeaconCaps[beacon]
	s.Attrs[i].Disabled = false
	if lit {
		s.Attrs[i].MaterialID = world.MatBeaconLit
	} else {
		s.Attrs[i].MaterialID = world.MatBeaconDark
	}
}

// Visible runs the culling query for this scene
func (s *Scene) Visible(cam *Camera, scratch *Scratch) []int32 {
	return GatherVisible(s.Grid, s.Bounds, s.Attrs, cam, scratch)
}

// NewScratch sizes a scratch for this scene
func (s *Scene) NewScratch() *Scratch {
	return NewScratch(len(s.Bounds), s.Grid)
}
