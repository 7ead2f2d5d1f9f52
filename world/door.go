package world

import (
	"math"

	"github.com/lixenwraith/echomaze/maze"
	"github.com/lixenwraith/echomaze/parameter"
	"github.com/lixenwraith/echomaze/vmath"
)

// ExitDoor is the door slab placed at the exit, facing its open neighbour
type ExitDoor struct {
	Position vmath.Vec3F
	Normal   vmath.XZ
	Yaw      float64
	Width    float64
	Depth    float64
}

var doorDirs = [4]struct {
	dc, dr int
	normal vmath.XZ
}{
	{0, -1, vmath.XZ{X: 0, Z: -1}},
	{1, 0, vmath.XZ{X: 1, Z: 0}},
	{0, 1, vmath.XZ{X: 0, Z: 1}},
	{-1, 0, vmath.XZ{X: -1, Z: 0}},
}

// computeExitDoor picks the open side of the exit cell, preferring one with walls on the other three sides
func computeExitDoor(grid maze.Grid, cell maze.Point, exit vmath.Vec3F, cellSize float64) ExitDoor {
	cols, rows := grid.Cols(), grid.Height()
	best, strict := 0, -1
	bestScore, strictScore := math.MinInt, math.MinInt

	for i, d := range doorDirs {
		nc, nr := cell.X+d.dc, cell.Y+d.dr
		if nr < 0 || nc < 0 || nr >= rows || nc >= cols {
			continue
		}
		if grid.IsWall(nc, nr) {
			continue
		}
		walls := 0
		if grid.IsWall(cell.X-d.dr, cell.Y+d.dc) {
			walls++
		}
		if grid.IsWall(cell.X+d.dr, cell.Y-d.dc) {
			walls++
		}
		if grid.IsWall(cell.X-d.dc, cell.Y-d.dr) {
			walls++
		}
		score := walls * 10
		if nr > 0 && nc > 0 && nr < rows-1 && nc < cols-1 {
			score++
		}
		if walls == 3 && score > strictScore {
			strict, strictScore = i, score
		}
		if score > bestScore {
			best, bestScore = i, score
		}
	}
	if strict >= 0 {
		best = strict
	}

	n := doorDirs[best].normal
	depth := cellSize * parameter.DoorDepthFactor
	offset := 0.5*cellSize - 0.5*depth - parameter.DoorInset
	return ExitDoor{
		Position: vmath.Vec3F{X: exit.X - n.X*offset, Y: exit.Y, Z: exit.Z - n.Z*offset},
		Normal:   n,
		Yaw:      math.Atan2(n.X, -n.Z),
		Width:    cellSize * parameter.DoorWidthFactor,
		Depth:    depth,
	}
}
