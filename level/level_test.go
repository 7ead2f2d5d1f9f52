package level

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/lixenwraith/echomaze/culling"
	"github.com/lixenwraith/echomaze/maze"
	"github.com/lixenwraith/echomaze/parameter"
	"github.com/lixenwraith/echomaze/vmath"
	"github.com/lixenwraith/echomaze/world"
)

func buildDefault(t *testing.T) []*Level {
	t.Helper()
	pack, err := DefaultPack()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	out := make([]*Level, 0, pack.Len())
	for i := 0; i < pack.Len(); i++ {
		lvl, err := Build(pack.Level(i), parameter.CellSize)
		if err != nil {
			t.Fatalf("Level %d failed to build: %v", i+1, err)
		}
		out = append(out, lvl)
	}
	return out
}

// TestDefaultPackProgression verifies the built-in progression introduces key then beacons
func TestDefaultPackProgression(t *testing.T) {
	levels := buildDefault(t)
	if len(levels) != 7 {
		t.Fatalf("Expected 7 levels, got %d", len(levels))
	}

	intro := levels[0]
	if intro.SizeLabel != "4x4" || intro.RequiresKey || len(intro.Beacons) != 0 {
		t.Errorf("Expected plain 4x4 intro, got %s key=%v beacons=%d", intro.SizeLabel, intro.RequiresKey, len(intro.Beacons))
	}

	keep := levels[3]
	if !keep.RequiresKey || keep.Key == nil || len(keep.Beacons) != 0 {
		t.Errorf("Expected key-only level 4, got key=%v beacons=%d", keep.Key != nil, len(keep.Beacons))
	}
	passages := levels[4]
	if !passages.RequiresKey || passages.Key == nil || len(passages.Beacons) != 1 {
		t.Errorf("Expected key and one beacon on level 5, got beacons=%d", len(passages.Beacons))
	}
	if !levels[5].RequiresKey || len(levels[5].Beacons) == 0 {
		t.Errorf("Expected key and beacons on level 6")
	}

	bonus := levels[6]
	if !bonus.Spec.IsBonus || !bonus.RequiresKey || len(bonus.Beacons) != 3 {
		t.Errorf("Expected bonus level with key and 3 beacons")
	}
	if bonus.Spec.TimeLimit != 120 || bonus.Spec.PingLimit != 12 || bonus.SizeLabel != "25x25" {
		t.Errorf("Expected 120s, 12 pings, 25x25, got %v %d %s", bonus.Spec.TimeLimit, bonus.Spec.PingLimit, bonus.SizeLabel)
	}
	if bonus.Beacons[0].ID != "B7-1" {
		t.Errorf("Expected beacon ID B7-1, got %s", bonus.Beacons[0].ID)
	}
}

// TestPlacementsOnOpenCells verifies every key and beacon sits on floor
func TestPlacementsOnOpenCells(t *testing.T) {
	for _, lvl := range buildDefault(t) {
		g := lvl.Geometry.Grid
		if lvl.Key != nil && g.IsWall(lvl.Key.Cell.X, lvl.Key.Cell.Y) {
			t.Errorf("Level %d key on wall at %+v", lvl.Spec.ID, lvl.Key.Cell)
		}
		for _, b := range lvl.Beacons {
			if g.IsWall(b.Cell.X, b.Cell.Y) {
				t.Errorf("Level %d beacon %s on wall at %+v", lvl.Spec.ID, b.ID, b.Cell)
			}
		}
	}
}

// TestForceOddDefault verifies generated dimensions round up to odd unless disabled
func TestForceOddDefault(t *testing.T) {
	levels := buildDefault(t)
	if levels[4].SizeLabel != "19x19" {
		t.Errorf("Expected 18x18 spec to build 19x19, got %s", levels[4].SizeLabel)
	}
	off := false
	lvl, err := Build(Spec{ID: 9, Generator: &GeneratorSpec{Cols: 12, Rows: 12, Seed: 1, ForceOdd: &off}}, parameter.CellSize)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if lvl.SizeLabel != "12x12" {
		t.Errorf("Expected 12x12 with force_odd false, got %s", lvl.SizeLabel)
	}
}

// TestStartYawFacesExit verifies face_exit orients the player toward the door
func TestStartYawFacesExit(t *testing.T) {
	intro := buildDefault(t)[0]
	yaw := intro.StartYaw()
	d := vmath.XZSub(intro.Geometry.ExitDoor.Position.XZ(), intro.Geometry.Start.XZ())
	f := vmath.ForwardAxis(yaw)
	if cos := vmath.XZDot(f, d) / math.Hypot(d.X, d.Z); math.Abs(cos-1) > 1e-9 {
		t.Errorf("Expected forward to point at door, cos=%f", cos)
	}
}

// TestBuildErrors verifies content errors are fatal at build time
func TestBuildErrors(t *testing.T) {
	if _, err := Build(Spec{ID: 1}, parameter.CellSize); !errors.Is(err, ErrNoLayout) {
		t.Errorf("Expected ErrNoLayout, got %v", err)
	}
	if _, err := Build(Spec{ID: 2, Layout: []string{"###", "#.#", "#E#"}}, parameter.CellSize); !errors.Is(err, maze.ErrNoStart) {
		t.Errorf("Expected ErrNoStart, got %v", err)
	}
	if _, err := Build(Spec{ID: 3, Layout: []string{"####", "#S.#", "####"}}, parameter.CellSize); !errors.Is(err, maze.ErrNoExit) {
		t.Errorf("Expected ErrNoExit, got %v", err)
	}
	locked := true
	noKey := Spec{ID: 4, Layout: []string{"#####", "#S.E#", "#####"}, RequiresKey: &locked}
	if _, err := Build(noKey, parameter.CellSize); !errors.Is(err, ErrNoKey) {
		t.Errorf("Expected ErrNoKey, got %v", err)
	}
	noKey.KeyHint = &Hint{Col: 2, Row: 1}
	lvl, err := Build(noKey, parameter.CellSize)
	if err != nil {
		t.Fatalf("Expected key hint to satisfy requires_key, got %v", err)
	}
	if lvl.Key == nil || !lvl.RequiresKey {
		t.Errorf("Expected placed key, got %+v", lvl.Key)
	}
}

// TestLoadPack verifies packs load from disk and bad input is rejected
func TestLoadPack(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pack.yaml")
	data := []byte("levels:\n  - id: 1\n    name: Tiny\n    layout: [\"####\", \"#SE#\", \"####\"]\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	pack, err := LoadPack(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if pack.Len() != 1 || pack.Level(5).Name != "Tiny" {
		t.Errorf("Expected one clamped level named Tiny")
	}

	if _, err := LoadPack(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Errorf("Expected error for missing pack")
	}
	if _, err := ParsePack([]byte("levels: []\n")); !errors.Is(err, ErrEmptyPack) {
		t.Errorf("Expected ErrEmptyPack, got %v", err)
	}
}

var markerSpec = Spec{
	ID: 8,
	Layout: []string{
		"#######",
		"#S.K..#",
		"#.....#",
		"#..B.E#",
		"#######",
	},
}

func buildMarker(t *testing.T, spec Spec) *Level {
	t.Helper()
	lvl, err := Build(spec, parameter.CellSize)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	return lvl
}

// TestLayoutMarkers verifies K and B markers place the key and beacons
func TestLayoutMarkers(t *testing.T) {
	lvl := buildMarker(t, markerSpec)
	if lvl.Key == nil || lvl.Key.Cell != (maze.Point{X: 3, Y: 1}) {
		t.Fatalf("Expected key at (3,1), got %+v", lvl.Key)
	}
	if !lvl.RequiresKey {
		t.Errorf("Expected key marker to imply requires_key")
	}
	if len(lvl.Beacons) != 1 || lvl.Beacons[0].Cell != (maze.Point{X: 3, Y: 3}) {
		t.Errorf("Expected beacon at (3,3), got %+v", lvl.Beacons)
	}
	if lvl.Key.Pos != lvl.Geometry.CellPosition(lvl.Key.Cell) {
		t.Errorf("Expected key world position at cell center")
	}
	d := lvl.Decorations()
	if d.Key == nil || len(d.Beacons) != 1 {
		t.Errorf("Expected decorations for key and beacon")
	}
}

// TestRuntimePickups verifies key and beacon activation happen once within reach
func TestRuntimePickups(t *testing.T) {
	lvl := buildMarker(t, markerSpec)
	r := NewRuntime(lvl)

	if r.CollectKey(lvl.Geometry.Start.XZ()) {
		t.Errorf("Expected key out of reach from start")
	}
	if !r.CollectKey(lvl.Key.Pos.XZ()) {
		t.Errorf("Expected key pickup at key position")
	}
	if r.CollectKey(lvl.Key.Pos.XZ()) {
		t.Errorf("Expected key pickup only once")
	}

	lit := r.ActivateBeacons(lvl.Beacons[0].Pos.XZ(), nil)
	if len(lit) != 1 || lit[0] != 0 || r.LitCount() != 1 {
		t.Errorf("Expected beacon 0 activated, got %v", lit)
	}
	if lit = r.ActivateBeacons(lvl.Beacons[0].Pos.XZ(), lit[:0]); len(lit) != 0 {
		t.Errorf("Expected no re-activation, got %v", lit)
	}
}

// TestRuntimeDoor verifies the door stays shut without the key and plays the blocked cue once
func TestRuntimeDoor(t *testing.T) {
	lvl := buildMarker(t, markerSpec)
	r := NewRuntime(lvl)
	door := lvl.Geometry.ExitDoor.Position.XZ()

	if got := r.CheckDoor(lvl.Geometry.Start.XZ(), 0); got != DoorAway {
		t.Errorf("Expected DoorAway from start, got %d", got)
	}
	if got := r.CheckDoor(door, 1); got != DoorBlockedCue {
		t.Errorf("Expected DoorBlockedCue, got %d", got)
	}
	if got := r.CheckDoor(door, 2); got != DoorBlocked {
		t.Errorf("Expected DoorBlocked, got %d", got)
	}
	if r.KnockDue(2) {
		t.Errorf("Expected knock suppressed right after blocked cue")
	}
	r.CollectKey(lvl.Key.Pos.XZ())
	if got := r.CheckDoor(door, 3); got != DoorOpened {
		t.Errorf("Expected DoorOpened with key, got %d", got)
	}
}

// TestRuntimePingBudget verifies the ping limit and the recharge pool
func TestRuntimePingBudget(t *testing.T) {
	spec := markerSpec
	spec.PingLimit = 2
	r := NewRuntime(buildMarker(t, spec))
	for i := 0; i < 2; i++ {
		if v, _ := r.TryPing(float64(i)); v != PingAllowed {
			t.Fatalf("Expected ping %d allowed, got %d", i, v)
		}
	}
	if v, _ := r.TryPing(3); v != PingLimitReached {
		t.Errorf("Expected PingLimitReached, got %d", v)
	}
	if r.PingsLeft() != 0 {
		t.Errorf("Expected 0 pings left, got %d", r.PingsLeft())
	}

	r = NewRuntime(buildMarker(t, markerSpec))
	r.Recharge.Charges = 0
	if v, cue := r.TryPing(0); v != PingDepleted || !cue {
		t.Errorf("Expected first depleted ping to request the cue")
	}
	if v, cue := r.TryPing(1); v != PingDepleted || cue {
		t.Errorf("Expected repeated depleted ping to stay silent")
	}
	r.Recharge.Update(parameter.PingChargeCooldown.Seconds())
	if r.Recharge.Charges != 1 {
		t.Fatalf("Expected one charge after cooldown, got %d", r.Recharge.Charges)
	}
	if v, _ := r.TryPing(10); v != PingAllowed {
		t.Errorf("Expected ping allowed after recharge, got %d", v)
	}
	if r.PingsLeft() != -1 {
		t.Errorf("Expected unlimited pings, got %d", r.PingsLeft())
	}
}

// TestRuntimeTimer verifies expiry against the time limit
func TestRuntimeTimer(t *testing.T) {
	spec := markerSpec
	spec.TimeLimit = 5
	r := NewRuntime(buildMarker(t, spec))
	if r.CheckTimer(4) {
		t.Errorf("Expected timer running at 4s")
	}
	if r.TimeLeft(3) != 2 {
		t.Errorf("Expected 2s left, got %f", r.TimeLeft(3))
	}
	if !r.CheckTimer(5) || !r.TimerExpired {
		t.Errorf("Expected timer expired at 5s")
	}
}

// TestRuntimeChimeSchedule verifies chimes wait for a lit beacon and the interval
func TestRuntimeChimeSchedule(t *testing.T) {
	lvl := buildMarker(t, markerSpec)
	r := NewRuntime(lvl)
	if r.ChimeDue(100) {
		t.Errorf("Expected no chime without lit beacons")
	}
	r.ActivateBeacons(lvl.Beacons[0].Pos.XZ(), nil)
	if !r.ChimeDue(0) {
		t.Errorf("Expected first chime due immediately")
	}
	r.MarkChimed(0)
	if r.ChimeDue(4.5) || !r.ChimeDue(4.6) {
		t.Errorf("Expected chime due strictly after 4.5s")
	}
}

// TestRuntimeSync verifies progress is mirrored into scene attributes
func TestRuntimeSync(t *testing.T) {
	lvl := buildMarker(t, markerSpec)
	scene := culling.BuildScene(lvl.Geometry, lvl.Decorations())
	r := NewRuntime(lvl)

	r.Sync(scene)
	if scene.Attrs[scene.KeyParts[0]].Disabled {
		t.Errorf("Expected key visible before pickup")
	}
	r.CollectKey(lvl.Key.Pos.XZ())
	r.ActivateBeacons(lvl.Beacons[0].Pos.XZ(), nil)
	r.Sync(scene)
	if !scene.Attrs[scene.KeyParts[0]].Disabled {
		t.Errorf("Expected key hidden after pickup")
	}
	if scene.Attrs[scene.BeaconCaps[0]].MaterialID != world.MatBeaconLit {
		t.Errorf("Expected lit beacon cap")
	}
}
