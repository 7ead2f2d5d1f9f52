package level

import (
	"fmt"
	"log"
	"math"

	"github.com/lixenwraith/echomaze/culling"
	"github.com/lixenwraith/echomaze/maze"
	"github.com/lixenwraith/echomaze/vmath"
	"github.com/lixenwraith/echomaze/world"
)

// Item is a placed pickup
type Item struct {
	Cell maze.Point
	Pos  vmath.Vec3F
}

// Beacon is a placed beacon with a stable display ID
type Beacon struct {
	ID string
	Item
}

// Level is a built, immutable level ready to play
type Level struct {
	Spec        Spec
	Geometry    *world.Geometry
	SizeLabel   string
	RequiresKey bool
	Key         *Item
	Beacons     []Beacon
}

// Build constructs the grid and geometry of a level and places its key and beacons
// Layout markers take precedence over hints
func Build(spec Spec, cellSize float64) (*Level, error) {
	var (
		grid    maze.Grid
		keys    []maze.Point
		beacons []maze.Point
	)

	switch {
	case len(spec.Layout) > 0:
		lay, err := maze.ParseLayout(spec.Layout)
		if err != nil {
			return nil, fmt.Errorf("level %d layout: %w", spec.ID, err)
		}
		grid, keys, beacons = lay.Grid, lay.Keys, lay.Beacons
	case spec.Generator != nil:
		gen := spec.Generator
		res := maze.Generate(maze.Config{
			Cols:            gen.Cols,
			Rows:            gen.Rows,
			KeepEven:        gen.ForceOdd != nil && !*gen.ForceOdd,
			ExtraConnectors: gen.ExtraConnectors,
			Seed:            gen.Seed,
		})
		grid = res.Grid
	default:
		return nil, fmt.Errorf("level %d: %w", spec.ID, ErrNoLayout)
	}

	geo, err := world.Build(grid, cellSize)
	if err != nil {
		return nil, fmt.Errorf("level %d: %w", spec.ID, err)
	}

	if len(keys) == 0 && spec.KeyHint != nil {
		keys = append(keys, resolveHint(grid, *spec.KeyHint))
	}
	if len(beacons) == 0 {
		for _, h := range spec.BeaconHints {
			beacons = append(beacons, resolveHint(grid, h))
		}
	}

	lvl := &Level{
		Spec:        spec,
		Geometry:    geo,
		SizeLabel:   spec.SizeLabel,
		RequiresKey: len(keys) > 0,
	}
	if lvl.SizeLabel == "" {
		lvl.SizeLabel = fmt.Sprintf("%dx%d", grid.Cols(), grid.Height())
	}
	if spec.RequiresKey != nil {
		lvl.RequiresKey = *spec.RequiresKey
	}
	if lvl.RequiresKey && len(keys) == 0 {
		return nil, fmt.Errorf("level %d: %w", spec.ID, ErrNoKey)
	}
	if len(keys) > 0 {
		lvl.Key = &Item{Cell: keys[0], Pos: geo.CellPosition(keys[0])}
	}
	for i, c := range beacons {
		lvl.Beacons = append(lvl.Beacons, Beacon{
			ID:   fmt.Sprintf("B%d-%d", spec.ID, i+1),
			Item: Item{Cell: c, Pos: geo.CellPosition(c)},
		})
	}

	log.Printf("level %d %q built: %s, %d walls, key=%v, %d beacons",
		spec.ID, spec.Name, lvl.SizeLabel, len(geo.Walls), lvl.Key != nil, len(lvl.Beacons))
	return lvl, nil
}

// resolveHint maps a hint to the nearest open cell
func resolveHint(g maze.Grid, h Hint) maze.Point {
	target := maze.Point{X: h.Col, Y: h.Row}
	if h.FracCol != nil || h.FracRow != nil {
		var fc, fr float64
		if h.FracCol != nil {
			fc = *h.FracCol
		}
		if h.FracRow != nil {
			fr = *h.FracRow
		}
		target = maze.Point{
			X: int(math.Round(float64(g.Cols()-1) * fc)),
			Y: int(math.Round(float64(g.Height()-1) * fr)),
		}
	}
	return maze.NearestOpen(g, target)
}

// Decorations returns the key and beacon props for scene building
func (l *Level) Decorations() culling.Decorations {
	var d culling.Decorations
	if l.Key != nil {
		k := l.Key.Pos
		d.Key = &k
	}
	for _, b := range l.Beacons {
		d.Beacons = append(d.Beacons, b.Pos)
	}
	return d
}

// StartYaw is the initial facing: toward the exit door when the level asks for it, else -Z
func (l *Level) StartYaw() float64 {
	if !l.Spec.FaceExit {
		return 0
	}
	d := vmath.XZSub(l.Geometry.ExitDoor.Position.XZ(), l.Geometry.Start.XZ())
	if d.X == 0 && d.Z == 0 {
		return 0
	}
	return math.Atan2(d.X, -d.Z)
}
