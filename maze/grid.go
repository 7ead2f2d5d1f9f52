package maze

import (
	"errors"
	"fmt"
)

// Cell codes as stored in grid rows
const (
	CellEmpty byte = '0'
	CellWall  byte = '1'
	CellStart byte = '2'
	CellExit  byte = '3'
)

// Sentinel errors
var (
	ErrEmptyGrid  = errors.New("maze grid is empty")
	ErrRaggedGrid = errors.New("maze grid rows differ in width")
	ErrNoStart    = errors.New("maze has no start cell")
	ErrNoExit     = errors.New("maze has no exit cell")
)

type Point struct {
	X, Y int
}

// Grid is a rectangular cell map, one string per row, read-only after construction
type Grid struct {
	Rows []string
}

func (g Grid) Cols() int {
	if len(g.Rows) == 0 {
		return 0
	}
	return len(g.Rows[0])
}

func (g Grid) Height() int {
	return len(g.Rows)
}

// At returns the cell code, or CellWall outside the grid
func (g Grid) At(x, y int) byte {
	if y < 0 || y >= len(g.Rows) || x < 0 || x >= len(g.Rows[y]) {
		return CellWall
	}
	return g.Rows[y][x]
}

func (g Grid) IsWall(x, y int) bool {
	return g.At(x, y) == CellWall
}

// Find returns the first cell holding code in row-major order
func (g Grid) Find(code byte) (Point, bool) {
	for y, row := range g.Rows {
		for x := 0; x < len(row); x++ {
			if row[x] == code {
				return Point{x, y}, true
			}
		}
	}
	return Point{}, false
}

// Validate checks shape and the presence of start and exit
func (g Grid) Validate() error {
	if len(g.Rows) == 0 || len(g.Rows[0]) == 0 {
		return ErrEmptyGrid
	}
	w := len(g.Rows[0])
	for i, row := range g.Rows {
		if len(row) != w {
			return fmt.Errorf("row %d has width %d, expected %d: %w", i, len(row), w, ErrRaggedGrid)
		}
	}
	if _, ok := g.Find(CellStart); !ok {
		return ErrNoStart
	}
	if _, ok := g.Find(CellExit); !ok {
		return ErrNoExit
	}
	return nil
}

// CellCenter maps a cell to world X/Z with the grid centered on the origin
func (g Grid) CellCenter(x, y int, cellSize float64) (wx, wz float64) {
	wx = -0.5*float64(g.Cols())*cellSize + float64(x)*cellSize + 0.5*cellSize
	wz = -0.5*float64(g.Height())*cellSize + float64(y)*cellSize + 0.5*cellSize
	return wx, wz
}

// WorldToCell maps a world X/Z position to the cell containing it, unclamped
func (g Grid) WorldToCell(wx, wz, cellSize float64) (x, y int) {
	fx := (wx + 0.5*float64(g.Cols())*cellSize) / cellSize
	fz := (wz + 0.5*float64(g.Height())*cellSize) / cellSize
	return floorInt(fx), floorInt(fz)
}

func floorInt(f float64) int {
	i := int(f)
	if f < 0 && float64(i) != f {
		i--
	}
	return i
}

// String renders the grid one row per line
func (g Grid) String() string {
	n := 0
	for _, r := range g.Rows {
		n += len(r) + 1
	}
	buf := make([]byte, 0, n)
	for _, r := range g.Rows {
		buf = append(buf, r...)
		buf = append(buf, '\n')
	}
	return string(buf)
}
