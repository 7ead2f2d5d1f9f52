package world

import (
	"errors"
	"fmt"

	"github.com/lixenwraith/echomaze/maze"
	"github.com/lixenwraith/echomaze/parameter"
	"github.com/lixenwraith/echomaze/vmath"
)

var ErrBadCellSize = errors.New("cell size must be positive")

// Geometry is the immutable world context for one level
// It is built once per level and replaced wholesale on level change
type Geometry struct {
	Grid     maze.Grid
	CellSize float64
	Walls    []Wall
	Bounds   Bounds
	Start    vmath.Vec3F
	Exit     vmath.Vec3F
	ExitCell maze.Point
	ExitDoor ExitDoor

	planes ReflectionPlanes
}

// Build compresses the grid walls into boxes and derives every per-level structure
func Build(grid maze.Grid, cellSize float64) (*Geometry, error) {
	if !(cellSize > 0) {
		return nil, ErrBadCellSize
	}
	if err := grid.Validate(); err != nil {
		return nil, fmt.Errorf("building geometry: %w", err)
	}

	cols, rows := grid.Cols(), grid.Height()
	rects := maze.CompressRuns(grid)
	walls := make([]Wall, 0, len(rects))
	x0 := -0.5 * float64(cols) * cellSize
	z0 := -0.5 * float64(rows) * cellSize

	for _, r := range rects {
		width := float64(r.C1-r.C0+1) * cellSize
		depth := float64(r.R1-r.R0) * cellSize
		border := r.Border(cols, rows)
		mat := catalog[MatInner]
		if border {
			mat = catalog[MatOuter]
		}
		walls = append(walls, Wall{
			Center: vmath.Vec3F{
				X: x0 + float64(r.C0)*cellSize + 0.5*width,
				Y: parameter.WallHalfHeight,
				Z: z0 + float64(r.R0)*cellSize + 0.5*depth,
			},
			Half:     vmath.Vec3F{X: 0.5 * width, Y: parameter.WallHalfHeight, Z: 0.5 * depth},
			Material: mat,
			Border:   border,
		})
	}

	g := &Geometry{
		Grid:     grid,
		CellSize: cellSize,
		Walls:    walls,
		Bounds:   WallBounds(walls),
	}

	start, _ := grid.Find(maze.CellStart)
	exit, _ := grid.Find(maze.CellExit)
	g.Start = g.CellPosition(start)
	g.Exit = g.CellPosition(exit)
	g.ExitCell = exit
	g.ExitDoor = computeExitDoor(grid, exit, g.Exit, cellSize)
	g.planes.Rebuild(walls)

	return g, nil
}

// NewGeometry wraps prebuilt walls, deriving bounds and reflection planes
func NewGeometry(walls []Wall) *Geometry {
	g := &Geometry{Walls: walls, Bounds: WallBounds(walls)}
	g.planes.Rebuild(walls)
	return g
}

// CellPosition maps a grid cell to its world center at eye height
func (g *Geometry) CellPosition(p maze.Point) vmath.Vec3F {
	x, z := g.Grid.CellCenter(p.X, p.Y, g.CellSize)
	return vmath.Vec3F{X: x, Y: parameter.EyeHeight, Z: z}
}

// CellAt returns the grid cell under a world position, clamped to the grid
func (g *Geometry) CellAt(p vmath.XZ) maze.Point {
	x, y := g.Grid.WorldToCell(p.X, p.Z, g.CellSize)
	return maze.Point{
		X: vmath.ClampInt(x, 0, g.Grid.Cols()-1),
		Y: vmath.ClampInt(y, 0, g.Grid.Height()-1),
	}
}

// Planes exposes the derived reflection planes
func (g *Geometry) Planes() *ReflectionPlanes {
	return &g.planes
}
