package maze

import (
	"math/rand"
	"time"

	"github.com/lixenwraith/echomaze/parameter"
)

type Config struct {
	Cols, Rows int

	// KeepEven disables rounding dimensions up to odd values
	KeepEven bool

	// ExtraConnectors opens this many additional wall cells between corridors, creating loops
	ExtraConnectors int

	// Braiding: 0.0 (Perfect Maze/Tree) to 1.0 (No dead ends/Graph).
	// Applied after connectors. Constraints (No Plazas/Pillars) take precedence.
	Braiding float64

	Seed int64 // Optional (0 = Random)
}

type Result struct {
	Grid         Grid
	Start, Exit  Point
	SolutionPath []Point
}

// Generate carves a maze with start at (1,1) and the exit on the cell farthest from it
func Generate(cfg Config) Result {
	// 1. Setup Topology
	cols := max(parameter.MazeMinDim, orDefault(cfg.Cols, parameter.MazeDefaultCols))
	rows := max(parameter.MazeMinDim, orDefault(cfg.Rows, parameter.MazeDefaultRows))
	if !cfg.KeepEven {
		cols |= 1
		rows |= 1
	}

	// 2. Initialize Grid (Filled with Walls)
	cells := make([][]byte, rows)
	for i := range cells {
		cells[i] = make([]byte, cols)
		for j := range cells[i] {
			cells[i][j] = CellWall
		}
	}

	// 3. RNG Setup
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	// 4. Core Generation (Recursive Backtracker)
	start := Point{1, 1}
	recursiveBacktracker(cells, start, rng)

	// 5. Exit on the farthest reachable cell, measured before loops are added
	exit := farthestCell(cells, start)

	// 6. Loops
	openConnectors(cells, cfg.ExtraConnectors, rng)
	if cfg.Braiding > 0 {
		applySmartBraiding(cells, cfg.Braiding, rng)
	}

	cells[start.Y][start.X] = CellStart
	cells[exit.Y][exit.X] = CellExit

	grid := Grid{Rows: make([]string, rows)}
	for i, row := range cells {
		grid.Rows[i] = string(row)
	}

	return Result{
		Grid:         grid,
		Start:        start,
		Exit:         exit,
		SolutionPath: SolvePath(grid, start, exit),
	}
}

// --- Core Algorithms ---

func recursiveBacktracker(cells [][]byte, start Point, rng *rand.Rand) {
	rows, cols := len(cells), len(cells[0])

	stack := []Point{start}
	cells[start.Y][start.X] = CellEmpty

	dirs := []Point{{0, -2}, {2, 0}, {0, 2}, {-2, 0}}
	candidates := make([]Point, 0, 4)

	for len(stack) > 0 {
		curr := stack[len(stack)-1]
		candidates = candidates[:0]

		for _, d := range dirs {
			nx, ny := curr.X+d.X, curr.Y+d.Y
			// Check Bounds (Leave 1 cell border for walls)
			if nx > 0 && nx < cols-1 && ny > 0 && ny < rows-1 {
				if cells[ny][nx] == CellWall {
					candidates = append(candidates, d)
				}
			}
		}

		if len(candidates) > 0 {
			d := candidates[rng.Intn(len(candidates))]
			cells[curr.Y+d.Y/2][curr.X+d.X/2] = CellEmpty
			cells[curr.Y+d.Y][curr.X+d.X] = CellEmpty
			stack = append(stack, Point{curr.X + d.X, curr.Y + d.Y})
		} else {
			stack = stack[:len(stack)-1]
		}
	}
}

// farthestCell runs BFS over interior open cells and returns the first cell reached at maximum depth
func farthestCell(cells [][]byte, start Point) Point {
	rows, cols := len(cells), len(cells[0])
	dist := make([]int, rows*cols)
	for i := range dist {
		dist[i] = -1
	}
	dist[start.Y*cols+start.X] = 0

	queue := []Point{start}
	far, farD := start, 0
	dirs := []Point{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}

	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		d := dist[curr.Y*cols+curr.X]
		if d > farD {
			far, farD = curr, d
		}
		for _, dd := range dirs {
			nx, ny := curr.X+dd.X, curr.Y+dd.Y
			if nx <= 0 || nx >= cols-1 || ny <= 0 || ny >= rows-1 {
				continue
			}
			if cells[ny][nx] != CellEmpty || dist[ny*cols+nx] >= 0 {
				continue
			}
			dist[ny*cols+nx] = d + 1
			queue = append(queue, Point{nx, ny})
		}
	}
	return far
}

// openConnectors knocks out wall cells that separate two corridors in a straight line
func openConnectors(cells [][]byte, count int, rng *rand.Rand) {
	if count <= 0 {
		return
	}
	rows, cols := len(cells), len(cells[0])
	opened, attempts := 0, 0
	limit := count * parameter.MazeConnectorAttemptFactor

	for opened < count && attempts < limit {
		attempts++
		x := 1 + rng.Intn(cols-2)
		y := 1 + rng.Intn(rows-2)
		if cells[y][x] != CellWall {
			continue
		}
		evenX, evenY := x%2 == 0, y%2 == 0
		if evenX == evenY {
			continue
		}
		horiz := evenX && cells[y][x-1] != CellWall && cells[y][x+1] != CellWall
		vert := evenY && cells[y-1][x] != CellWall && cells[y+1][x] != CellWall
		if !horiz && !vert {
			continue
		}
		cells[y][x] = CellEmpty
		opened++
	}
}

func applySmartBraiding(cells [][]byte, probability float64, rng *rand.Rand) {
	rows, cols := len(cells), len(cells[0])

	checkDirs := []Point{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}
	jumpDirs := []Point{{0, -2}, {0, 2}, {-2, 0}, {2, 0}}

	// Iterate over odd nodes (Rooms)
	for y := 1; y < rows-1; y += 2 {
		for x := 1; x < cols-1; x += 2 {
			if cells[y][x] == CellWall {
				continue
			}

			// 1. Identify Dead End
			exits := 0
			for _, d := range checkDirs {
				if cells[y+d.Y][x+d.X] != CellWall {
					exits++
				}
			}

			if exits == 1 && rng.Float64() < probability {
				// 2. Find valid walls to remove to create a loop
				candidates := make([]Point, 0, 4)
				for _, jd := range jumpDirs {
					nx, ny := x+jd.X, y+jd.Y
					wx, wy := x+jd.X/2, y+jd.Y/2

					if nx > 0 && nx < cols-1 && ny > 0 && ny < rows-1 {
						if cells[ny][nx] != CellWall && cells[wy][wx] == CellWall {
							// 3. TOPOLOGY CHECK: Plazas & Pillars
							if canSafelyRemoveWall(cells, wx, wy) {
								candidates = append(candidates, Point{wx, wy})
							}
						}
					}
				}

				if len(candidates) > 0 {
					c := candidates[rng.Intn(len(candidates))]
					cells[c.Y][c.X] = CellEmpty
				}
			}
		}
	}
}

// canSafelyRemoveWall checks if opening (x,y) creates a 2x2 open plaza or an isolated wall pillar
func canSafelyRemoveWall(cells [][]byte, x, y int) bool {
	rows, cols := len(cells), len(cells[0])

	isOpen := func(tx, ty int) bool {
		if tx < 0 || tx >= cols || ty < 0 || ty >= rows {
			return false
		}
		return cells[ty][tx] != CellWall
	}

	// No Plazas
	if isOpen(x-1, y-1) && isOpen(x, y-1) && isOpen(x-1, y) {
		return false
	}
	if isOpen(x, y-1) && isOpen(x+1, y-1) && isOpen(x+1, y) {
		return false
	}
	if isOpen(x-1, y) && isOpen(x-1, y+1) && isOpen(x, y+1) {
		return false
	}
	if isOpen(x+1, y) && isOpen(x, y+1) && isOpen(x+1, y+1) {
		return false
	}

	// No Pillars
	ortho := []Point{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}
	for _, d := range ortho {
		nx, ny := x+d.X, y+d.Y
		if nx < 0 || nx >= cols || ny < 0 || ny >= rows || cells[ny][nx] != CellWall {
			continue
		}
		wallConnections := 0
		for _, d2 := range ortho {
			nnx, nny := nx+d2.X, ny+d2.Y
			// (x,y) is about to become open
			if nnx == x && nny == y {
				continue
			}
			if nnx >= 0 && nnx < cols && nny >= 0 && nny < rows && cells[nny][nnx] == CellWall {
				wallConnections++
			}
		}
		if wallConnections == 0 {
			return false
		}
	}

	return true
}

// SolvePath returns the shortest open-cell path from start to end, or nil when unreachable
func SolvePath(g Grid, start, end Point) []Point {
	rows, cols := g.Height(), g.Cols()
	if g.IsWall(start.X, start.Y) || g.IsWall(end.X, end.Y) {
		return nil
	}

	queue := []Point{start}
	cameFrom := make(map[Point]Point)
	visited := make(map[Point]bool)
	visited[start] = true
	dirs := []Point{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}

	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]

		if curr == end {
			path := []Point{}
			for curr != start {
				path = append(path, curr)
				curr = cameFrom[curr]
			}
			path = append(path, start)
			for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
				path[i], path[j] = path[j], path[i]
			}
			return path
		}

		for _, d := range dirs {
			next := Point{curr.X + d.X, curr.Y + d.Y}
			if next.X >= 0 && next.X < cols && next.Y >= 0 && next.Y < rows {
				if !g.IsWall(next.X, next.Y) && !visited[next] {
					visited[next] = true
					cameFrom[next] = curr
					queue = append(queue, next)
				}
			}
		}
	}
	return nil
}

// --- Helpers ---

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
