package culling

import (
	"math"

	"github.com/lixenwraith/echomaze/parameter"
	"github.com/lixenwraith/echomaze/vmath"
	"github.com/lixenwraith/echomaze/world"
)

// Grid buckets non-always-visible instances by X/Z footprint
// Cells are packed: the members of cell i are items[start[i]:start[i+1]], index = z*Cols + x
// Membership is fixed at build time
type Grid struct {
	CellSize   float64
	MinX, MinZ float64
	Cols, Rows int
	MaxRadius  float64

	start []int32
	items []int32
}

// BuildGrid assigns every instance to the cells its footprint overlaps, clamped to the grid
func BuildGrid(bounds []Bounds, cellSize float64, extent world.Bounds) *Grid {
	size := math.Max(parameter.CullMinCellSize, cellSize)
	width := math.Max(extent.MaxX-extent.MinX, size)
	depth := math.Max(extent.MaxZ-extent.MinZ, size)

	g := &Grid{
		CellSize: size,
		MinX:     extent.MinX,
		MinZ:     extent.MinZ,
		Cols:     max(1, int(math.Ceil(width/size))),
		Rows:     max(1, int(math.Ceil(depth/size))),
	}
	n := g.Cols * g.Rows
	counts := make([]int32, n+1)

	// pass 1: count, pass 2: fill
	for i := range bounds {
		b := &bounds[i]
		g.MaxRadius = math.Max(g.MaxRadius, b.Radius)
		if b.AlwaysVisible {
			continue
		}
		x0, x1, z0, z1 := g.footprint(b)
		for z := z0; z <= z1; z++ {
			for x := x0; x <= x1; x++ {
				counts[z*g.Cols+x+1]++
			}
		}
	}
	for i := 1; i <= n; i++ {
		counts[i] += counts[i-1]
	}
	g.start = counts
	g.items = make([]int32, counts[n])

	fill := make([]int32, n)
	copy(fill, counts[:n])
	for i := range bounds {
		b := &bounds[i]
		if b.AlwaysVisible {
			continue
		}
		x0, x1, z0, z1 := g.footprint(b)
		for z := z0; z <= z1; z++ {
			for x := x0; x <= x1; x++ {
				ci := z*g.Cols + x
				g.items[fill[ci]] = int32(i)
				fill[ci]++
			}
		}
	}
	return g
}

func (g *Grid) footprint(b *Bounds) (x0, x1, z0, z1 int) {
	x0 = g.clampX(math.Floor((b.Center.X - b.Half.X - g.MinX) / g.CellSize))
	x1 = g.clampX(math.Floor((b.Center.X + b.Half.X - g.MinX) / g.CellSize))
	z0 = g.clampZ(math.Floor((b.Center.Z - b.Half.Z - g.MinZ) / g.CellSize))
	z1 = g.clampZ(math.Floor((b.Center.Z + b.Half.Z - g.MinZ) / g.CellSize))
	return
}

func (g *Grid) clampX(f float64) int {
	return clampCell(f, g.Cols-1)
}

func (g *Grid) clampZ(f float64) int {
	return clampCell(f, g.Rows-1)
}

func clampCell(f float64, hi int) int {
	if f <= 0 || math.IsNaN(f) {
		return 0
	}
	if f >= float64(hi) {
		return hi
	}
	return int(f)
}

// CellOf returns the clamped cell containing a world position
func (g *Grid) CellOf(p vmath.XZ) (x, z int) {
	return g.clampX(math.Floor((p.X - g.MinX) / g.CellSize)), g.clampZ(math.Floor((p.Z - g.MinZ) / g.CellSize))
}

// Cell returns a read-only view of the instances in cell (x, z), nil when out of bounds
func (g *Grid) Cell(x, z int) []int32 {
	if x < 0 || x >= g.Cols || z < 0 || z >= g.Rows {
		return nil
	}
	i := z*g.Cols + x
	return g.items[g.start[i]:g.start[i+1]]
}

// CellCount returns the number of cells
func (g *Grid) CellCount() int {
	return g.Cols * g.Rows
}
