package maze

// Rect is an axis-aligned block of wall cells
// Columns C0..C1 are inclusive, rows R0..R1 are half-open
type Rect struct {
	C0, C1 int
	R0, R1 int
}

// Border reports whether the rectangle touches the outer edge of a cols x rows grid
func (r Rect) Border(cols, rows int) bool {
	return r.R0 == 0 || r.R1 == rows || r.C0 == 0 || r.C1 == cols-1
}

type run struct {
	c0, c1   int
	consumed bool
}

// CompressRuns covers every wall cell with disjoint rectangles
// Each row is split into maximal horizontal wall runs; an unconsumed run
// grows downward while the next row holds an unconsumed run with the same span
func CompressRuns(g Grid) []Rect {
	rows := g.Height()
	cols := g.Cols()
	if rows == 0 || cols == 0 {
		return nil
	}

	runs := make([][]run, rows)
	for r, line := range g.Rows {
		c := 0
		for c < cols {
			if line[c] != CellWall {
				c++
				continue
			}
			start := c
			for c < cols && line[c] == CellWall {
				c++
			}
			runs[r] = append(runs[r], run{c0: start, c1: c - 1})
		}
	}

	rects := make([]Rect, 0, rows)
	for r := 0; r < rows; r++ {
		for i := range runs[r] {
			cur := &runs[r][i]
			if cur.consumed {
				continue
			}
			cur.consumed = true
			r2 := r + 1
			for r2 < rows {
				j := findRun(runs[r2], cur.c0, cur.c1)
				if j < 0 {
					break
				}
				runs[r2][j].consumed = true
				r2++
			}
			rects = append(rects, Rect{C0: cur.c0, C1: cur.c1, R0: r, R1: r2})
		}
	}
	return rects
}

func findRun(row []run, c0, c1 int) int {
	for i := range row {
		if !row[i].consumed && row[i].c0 == c0 && row[i].c1 == c1 {
			return i
		}
	}
	return -1
}
