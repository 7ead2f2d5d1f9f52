package culling

import (
	"math"
	"slices"
	"testing"

	"github.com/lixenwraith/echomaze/maze"
	"github.com/lixenwraith/echomaze/parameter"
	"github.com/lixenwraith/echomaze/vmath"
	"github.com/lixenwraith/echomaze/world"
)

func baseView() Camera {
	return NewCamera(vmath.Vec3F{X: 0, Y: 1, Z: 0}, 0, 0, 1, parameter.CameraFovY)
}

var unitHalf = vmath.Vec3F{X: 0.5, Y: 0.5, Z: 0.5}

func testInstances() []Bounds {
	return []Bounds{
		BoxBounds(vmath.Vec3F{X: 0, Y: 0, Z: -2}, unitHalf),
		BoxBounds(vmath.Vec3F{X: 0, Y: 0, Z: -6}, unitHalf),
		BoxBounds(vmath.Vec3F{X: 5, Y: 0, Z: -2}, unitHalf),
	}
}

var testExtent = world.Bounds{MinX: -1, MaxX: 6, MinZ: -7, MaxZ: 1}

// TestFrustumRejectsBehind verifies spheres behind the camera are dropped and ones ahead are kept
func TestFrustumRejectsBehind(t *testing.T) {
	cam := baseView()
	behind := BoxBounds(vmath.Vec3F{X: 0, Y: 1, Z: 3}, vmath.Vec3F{X: 0.2, Y: 0.2, Z: 0.2})
	if FrustumContains(&behind, &cam) {
		t.Errorf("Expected sphere behind camera to be culled")
	}
	ahead := BoxBounds(vmath.Vec3F{X: 0, Y: 0.2, Z: -3}, vmath.Vec3F{X: 0.75, Y: 0.5, Z: 0.75})
	if !FrustumContains(&ahead, &cam) {
		t.Errorf("Expected sphere ahead of camera to be kept")
	}
	far := BoxBounds(vmath.Vec3F{X: 0, Y: 1, Z: -200}, unitHalf)
	if FrustumContains(&far, &cam) {
		t.Errorf("Expected sphere past far plane to be culled")
	}
}

// TestBoxBoundsRadius verifies the sphere encloses the box
func TestBoxBoundsRadius(t *testing.T) {
	b := BoxBounds(vmath.Vec3F{}, vmath.Vec3F{X: 1, Y: 2, Z: 2})
	if math.Abs(b.Radius-3) > 1e-12 {
		t.Errorf("Expected radius 3, got %f", b.Radius)
	}
	if b.PivotOrCenter() != b.Center {
		t.Errorf("Expected pivot to default to center")
	}
}

// TestGridMembership verifies instances land in every cell they overlap
func TestGridMembership(t *testing.T) {
	bounds := []Bounds{BoxBounds(vmath.Vec3F{X: 1, Y: 0, Z: -2}, vmath.Vec3F{X: 1, Y: 0.5, Z: 0.25})}
	g := BuildGrid(bounds, 1.0, testExtent)
	if g.Cols != 7 || g.Rows != 8 {
		t.Fatalf("Expected 7x8 grid, got %dx%d", g.Cols, g.Rows)
	}
	// x spans [0,2] -> cells 1..3, z spans [-2.25,-1.75] -> cells 4..5
	count := 0
	for z := 0; z < g.Rows; z++ {
		for x := 0; x < g.Cols; x++ {
			if len(g.Cell(x, z)) > 0 {
				count++
			}
		}
	}
	if count != 6 {
		t.Errorf("Expected instance in 6 cells, got %d", count)
	}
	if g.Cell(-1, 0) != nil || g.Cell(0, g.Rows) != nil {
		t.Errorf("Expected nil for out of range cells")
	}
}

// TestGatherVisible verifies the frustum filter and depth ordering
func TestGatherVisible(t *testing.T) {
	bounds := testInstances()
	grid := BuildGrid(bounds, 1.0, testExtent)
	cam := baseView()

	got := GatherVisible(grid, bounds, nil, &cam, nil)
	if !slices.Equal(got, []int32{0, 1}) {
		t.Errorf("Expected [0 1], got %v", got)
	}
}

// TestGatherScratchReuse verifies a reused scratch gives identical results
func TestGatherScratchReuse(t *testing.T) {
	bounds := testInstances()
	grid := BuildGrid(bounds, 1.0, testExtent)
	cam := baseView()
	scratch := NewScratch(len(bounds), grid)

	first := slices.Clone(GatherVisible(grid, bounds, nil, &cam, scratch))
	for i := 0; i < 5; i++ {
		again := GatherVisible(grid, bounds, nil, &cam, scratch)
		if !slices.Equal(first, again) {
			t.Fatalf("Expected %v on reuse %d, got %v", first, i, again)
		}
	}
}

// TestGatherScratchAfterMisuse verifies a scratch sized for a larger scene, whose result the caller
// overwrote and appended to, still matches a fresh gather on a smaller scene, including across a stamp wrap
func TestGatherScratchAfterMisuse(t *testing.T) {
	var big []Bounds
	for i := 0; i < 200; i++ {
		c := vmath.Vec3F{X: float64(i%20) - 10, Y: 0, Z: -2 - float64(i/20)*2}
		big = append(big, BoxBounds(c, unitHalf))
	}
	bigGrid := BuildGrid(big, 1.0, world.Bounds{MinX: -11, MaxX: 11, MinZ: -21, MaxZ: 1})
	cam := baseView()
	scratch := NewScratch(len(big), bigGrid)

	got := GatherVisible(bigGrid, big, nil, &cam, scratch)
	if len(got) == 0 {
		t.Fatalf("Expected visible instances in the large scene")
	}
	for i := range got {
		got[i] = 199
	}
	_ = append(got, 7, 7, 7)

	small := testInstances()
	smallGrid := BuildGrid(small, 1.0, testExtent)
	fresh := slices.Clone(GatherVisible(smallGrid, small, nil, &cam, nil))
	reused := GatherVisible(smallGrid, small, nil, &cam, scratch)
	if !slices.Equal(fresh, reused) {
		t.Errorf("Expected %v from reused scratch, got %v", fresh, reused)
	}

	scratch.gen = ^uint32(0)
	a := slices.Clone(GatherVisible(smallGrid, small, nil, &cam, scratch))
	if scratch.gen != 1 {
		t.Errorf("Expected generation to restart at 1 after wrap, got %d", scratch.gen)
	}
	b := GatherVisible(smallGrid, small, nil, &cam, scratch)
	if !slices.Equal(fresh, a) || !slices.Equal(fresh, b) {
		t.Errorf("Expected %v across the wrap, got %v then %v", fresh, a, b)
	}
}

// TestGatherAlwaysVisible verifies always-visible instances bypass the frustum
func TestGatherAlwaysVisible(t *testing.T) {
	bounds := testInstances()
	floor := BoxBounds(vmath.Vec3F{X: 0, Y: 0, Z: 20}, unitHalf)
	floor.AlwaysVisible = true
	bounds = append(bounds, floor)
	grid := BuildGrid(bounds, 1.0, testExtent)
	cam := baseView()

	got := GatherVisible(grid, bounds, nil, &cam, nil)
	if !slices.Contains(got, 3) {
		t.Errorf("Expected always-visible instance in %v", got)
	}
	// depth -20 sorts first
	if got[0] != 3 {
		t.Errorf("Expected behind-camera floor first by depth, got %v", got)
	}
}

// TestGatherSkipsDisabled verifies disabled instances are never returned
func TestGatherSkipsDisabled(t *testing.T) {
	bounds := testInstances()
	grid := BuildGrid(bounds, 1.0, testExtent)
	cam := baseView()
	attrs := make([]Attr, len(bounds))
	attrs[0].Disabled = true

	got := GatherVisible(grid, bounds, attrs, &cam, nil)
	if !slices.Equal(got, []int32{1}) {
		t.Errorf("Expected [1], got %v", got)
	}
}

var sceneLayout = maze.Grid{Rows: []string{
	"11111",
	"12001",
	"10101",
	"10031",
	"11111",
}}

func testScene(t *testing.T) (*world.Geometry, *Scene) {
	t.Helper()
	geo, err := world.Build(sceneLayout, parameter.CellSize)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	key := geo.CellPosition(maze.Point{X: 3, Y: 1})
	s := BuildScene(geo, Decorations{
		Key:     &key,
		Beacons: []vmath.Vec3F{geo.CellPosition(maze.Point{X: 1, Y: 3}), geo.CellPosition(maze.Point{X: 2, Y: 1})},
	})
	return geo, s
}

// TestBuildSceneLayout verifies instance order and counts
func TestBuildSceneLayout(t *testing.T) {
	geo, s := testScene(t)
	walls := len(geo.Walls)
	if s.Floor != walls || s.Door != walls+1 || s.Handle != walls+2 || s.Ceiling != walls+3 {
		t.Errorf("Expected floor, door, handle, ceiling after walls, got %d %d %d %d", s.Floor, s.Door, s.Handle, s.Ceiling)
	}
	if len(s.KeyParts) != 11 {
		t.Errorf("Expected 11 key parts, got %d", len(s.KeyParts))
	}
	if len(s.BeaconPoles) != 2 || len(s.BeaconCaps) != 2 {
		t.Errorf("Expected 2 beacon poles and caps, got %d %d", len(s.BeaconPoles), len(s.BeaconCaps))
	}
	if want := walls + 4 + 11 + 4; len(s.Bounds) != want || len(s.Attrs) != want {
		t.Errorf("Expected %d instances, got %d bounds %d attrs", want, len(s.Bounds), len(s.Attrs))
	}
	if !s.Bounds[s.Floor].AlwaysVisible || !s.Bounds[s.Ceiling].AlwaysVisible {
		t.Errorf("Expected floor and ceiling always visible")
	}
	if s.Attrs[s.Door].MaterialID != world.MatDoor || s.Attrs[s.Handle].MaterialID != world.MatMetal {
		t.Errorf("Expected door and metal handle materials")
	}
	for _, i := range s.KeyParts {
		if s.Bounds[i].Pivot == nil || s.Bounds[i].Pivot.Y != 0.9 {
			t.Fatalf("Expected key parts to share pivot at y 0.9")
		}
	}
	if s.Bounds[s.BeaconCaps[0]].Center.Y <= s.Bounds[s.BeaconPoles[0]].Center.Y {
		t.Errorf("Expected cap above pole")
	}
}

// TestSceneKeyAndBeaconState verifies per-frame attribute updates
func TestSceneKeyAndBeaconState(t *testing.T) {
	geo, s := testScene(t)
	s.SetKeyHidden(true)
	for _, i := range s.KeyParts {
		if !s.Attrs[i].Disabled || s.Attrs[i].MaterialID != world.MatNone {
			t.Fatalf("Expected hidden key part disabled with no material")
		}
	}

	cam := NewCamera(geo.Start, 0, 0, 1, parameter.CameraFovY)
	vis := s.Visible(&cam, s.NewScratch())
	for _, i := range s.KeyParts {
		if slices.Contains(vis, int32(i)) {
			t.Errorf("Expected hidden key part %d to be culled", i)
		}
	}
	if !slices.Contains(vis, int32(s.Floor)) || !slices.Contains(vis, int32(s.Ceiling)) {
		t.Errorf("Expected floor and ceiling in visible set")
	}

	s.SetKeyHidden(false)
	if s.Attrs[s.KeyParts[0]].Disabled || s.Attrs[s.KeyParts[0]].MaterialID != world.MatKey {
		t.Errorf("Expected key part restored")
	}

	s.SetBeaconLit(1, true)
	if s.Attrs[s.BeaconCaps[1]].MaterialID != world.MatBeaconLit {
		t.Errorf("Expected lit cap material")
	}
	if s.Attrs[s.BeaconCaps[0]].MaterialID != world.MatBeaconDark {
		t.Errorf("Expected other cap to stay dark")
	}
	s.SetBeaconLit(5, true)
}
