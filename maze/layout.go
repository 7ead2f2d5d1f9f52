package maze

import (
	"fmt"
	"strings"
)

// Layout is a parsed ASCII level with its marker cells
type Layout struct {
	Grid    Grid
	Keys    []Point
	Beacons []Point
}

// ParseLayout converts an ASCII layout into a cell grid
// '#' and '1' are walls, 'S' start, 'E' exit, 'K' and 'B' mark key and
// beacon cells on open floor; anything else is open floor
func ParseLayout(lines []string) (Layout, error) {
	var out Layout
	if len(lines) == 0 {
		return out, ErrEmptyGrid
	}
	startFound, exitFound := false, false
	out.Grid.Rows = make([]string, len(lines))

	var sb strings.Builder
	for r, line := range lines {
		sb.Reset()
		for c := 0; c < len(line); c++ {
			switch line[c] {
			case '#', '1':
				sb.WriteByte(CellWall)
			case 'S':
				startFound = true
				sb.WriteByte(CellStart)
			case 'E':
				exitFound = true
				sb.WriteByte(CellExit)
			case 'K':
				out.Keys = append(out.Keys, Point{c, r})
				sb.WriteByte(CellEmpty)
			case 'B':
				out.Beacons = append(out.Beacons, Point{c, r})
				sb.WriteByte(CellEmpty)
			default:
				sb.WriteByte(CellEmpty)
			}
		}
		out.Grid.Rows[r] = sb.String()
	}

	if !startFound {
		return out, ErrNoStart
	}
	if !exitFound {
		return out, ErrNoExit
	}
	if err := out.Grid.Validate(); err != nil {
		return out, fmt.Errorf("layout: %w", err)
	}
	return out, nil
}

// NearestOpen returns the non-wall cell closest to target in Manhattan rings,
// scanning rows top to bottom within each ring; target is clamped to the grid first
func NearestOpen(g Grid, target Point) Point {
	cols, rows := g.Cols(), g.Height()
	base := Point{
		X: min(cols-1, max(0, target.X)),
		Y: min(rows-1, max(0, target.Y)),
	}
	maxRad := max(cols, rows)
	for rad := 0; rad < maxRad; rad++ {
		for dr := -rad; dr <= rad; dr++ {
			y := base.Y + dr
			if y < 0 || y >= rows {
				continue
			}
			dc := rad - abs(dr)
			if !g.IsWall(base.X-dc, y) {
				return Point{base.X - dc, y}
			}
			if dc != 0 && !g.IsWall(base.X+dc, y) {
				return Point{base.X + dc, y}
			}
		}
	}
	return base
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
