package culling

import (
	"cmp"
	"math"
	"slices"

	"github.com/lixenwraith/echomaze/parameter"
	"github.com/lixenwraith/echomaze/vmath"
)

// Scratch holds reusable buffers for GatherVisible
// Seen and visited flags are generation stamps: bumping gen clears them in O(1)
type Scratch struct {
	visible []int32
	depth   []float64
	seen    []uint32
	visited []uint32
	queue   []int32 // cell indices
	queueD  []int32 // BFS step of each queued cell
	gen     uint32
}

// NewScratch sizes buffers for n instances over grid
func NewScratch(n int, grid *Grid) *Scratch {
	s := &Scratch{}
	s.ensure(n, grid.CellCount())
	return s
}

func (s *Scratch) ensure(n, cells int) {
	if len(s.seen) < n {
		s.seen = make([]uint32, n)
		s.depth = make([]float64, n)
	}
	if len(s.visited) < cells {
		s.visited = make([]uint32, cells)
	}
	if cap(s.visible) < n {
		s.visible = make([]int32, 0, n)
	}
}

// reset starts a new query
func (s *Scratch) reset() {
	s.visible = s.visible[:0]
	s.queue = s.queue[:0]
	s.queueD = s.queueD[:0]
	s.gen++
	if s.gen == 0 {
		clear(s.seen)
		clear(s.visited)
		s.gen = 1
	}
}

// GatherVisible returns the indices of enabled instances the camera may see, nearest first by
// forward depth; always-visible instances are included without a frustum test
// Cells are walked breadth-first from the camera cell up to a step and queue budget
// The result aliases scratch and is valid until its next use; a nil scratch allocates
func GatherVisible(grid *Grid, bounds []Bounds, attrs []Attr, cam *Camera, scratch *Scratch) []int32 {
	if scratch == nil {
		scratch = &Scratch{}
	}
	scratch.ensure(len(bounds), grid.CellCount())
	scratch.reset()

	basis := vmath.CameraBasis(cam.Yaw, cam.Pitch)
	gen := scratch.gen
	disabled := func(i int) bool {
		return i < len(attrs) && attrs[i].Disabled
	}
	accept := func(i int) {
		scratch.visible = append(scratch.visible, int32(i))
		scratch.seen[i] = gen
		scratch.depth[i] = vmath.V3FDot(vmath.V3FSub(bounds[i].Center, cam.Position), basis.Forward)
	}

	for i := range bounds {
		if bounds[i].AlwaysVisible && !disabled(i) {
			accept(i)
		}
	}

	cx, cz := grid.CellOf(cam.Position.XZ())
	startCell := int32(cz*grid.Cols + cx)
	scratch.queue = append(scratch.queue, startCell)
	scratch.queueD = append(scratch.queueD, 0)
	scratch.visited[startCell] = gen

	maxSteps := int32(min(int(math.Ceil((cam.Far+grid.MaxRadius)/grid.CellSize))+1, parameter.CullMaxSteps))

	push := func(x, z int, d int32) {
		if x < 0 || z < 0 || x >= grid.Cols || z >= grid.Rows {
			return
		}
		ci := int32(z*grid.Cols + x)
		if scratch.visited[ci] == gen {
			return
		}
		scratch.visited[ci] = gen
		scratch.queue = append(scratch.queue, ci)
		scratch.queueD = append(scratch.queueD, d)
	}

	for qi := 0; qi < len(scratch.queue); qi++ {
		ci := int(scratch.queue[qi])
		dist := scratch.queueD[qi]
		if dist > maxSteps {
			continue
		}
		x, z := ci%grid.Cols, ci/grid.Cols
		for _, idx := range grid.Cell(x, z) {
			i := int(idx)
			if disabled(i) || scratch.seen[i] == gen {
				continue
			}
			if !frustumContains(&bounds[i], cam, basis) {
				continue
			}
			accept(i)
		}
		if dist >= maxSteps {
			continue
		}
		push(x+1, z, dist+1)
		push(x-1, z, dist+1)
		push(x, z+1, dist+1)
		push(x, z-1, dist+1)
		if len(scratch.queue) > parameter.CullMaxQueue {
			break
		}
	}

	depth := scratch.depth
	slices.SortStableFunc(scratch.visible, func(a, b int32) int {
		return cmp.Compare(depth[a], depth[b])
	})
	return scratch.visible
}
