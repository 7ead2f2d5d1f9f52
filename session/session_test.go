package session

import (
	"slices"
	"testing"

	"github.com/lixenwraith/echomaze/audio"
	"github.com/lixenwraith/echomaze/cue"
	"github.com/lixenwraith/echomaze/level"
	"github.com/lixenwraith/echomaze/parameter"
	"github.com/lixenwraith/echomaze/physics"
	"github.com/lixenwraith/echomaze/world"
)

type recordingPlayer struct {
	sounds []audio.SoundType
	echoes [][]cue.EchoTap
	chimes []cue.BeaconCue
	knocks []cue.KnockCue
}

func (p *recordingPlayer) Play(st audio.SoundType) { p.sounds = append(p.sounds, st) }
func (p *recordingPlayer) PlayEchoTaps(taps []cue.EchoTap) {
	p.echoes = append(p.echoes, slices.Clone(taps))
}
func (p *recordingPlayer) PlayBeaconChime(c cue.BeaconCue) { p.chimes = append(p.chimes, c) }
func (p *recordingPlayer) PlayKnock(k cue.KnockCue)        { p.knocks = append(p.knocks, k) }
func (p *recordingPlayer) Close()                          {}

func (p *recordingPlayer) count(st audio.SoundType) int {
	n := 0
	for _, s := range p.sounds {
		if s == st {
			n++
		}
	}
	return n
}

var testSpec = level.Spec{
	ID:   1,
	Name: "Test",
	Layout: []string{
		"#######",
		"#S.K..#",
		"#.....#",
		"#..B.E#",
		"#######",
	},
}

func newSession(t *testing.T, spec level.Spec) (*Session, *recordingPlayer) {
	t.Helper()
	lvl, err := level.Build(spec, parameter.CellSize)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	p := &recordingPlayer{}
	s := New(p, cue.DefaultEchoParams())
	s.Load(lvl, 100)
	return s, p
}

// TestLoadPlacesPlayer verifies a load resets the player and builds the scene
func TestLoadPlacesPlayer(t *testing.T) {
	s, _ := newSession(t, testSpec)
	if s.Controller.Position != s.Geometry.Start {
		t.Errorf("Expected player at start %+v, got %+v", s.Geometry.Start, s.Controller.Position)
	}
	if s.Scene == nil || len(s.Scene.KeyParts) != 11 || len(s.Scene.BeaconCaps) != 1 {
		t.Fatalf("Expected scene with key and one beacon")
	}
	if s.Elapsed(101.5) != 1.5 {
		t.Errorf("Expected elapsed 1.5, got %f", s.Elapsed(101.5))
	}
}

// TestPingRecordsAndEchoes verifies a ping lands in history and drives the player
func TestPingRecordsAndEchoes(t *testing.T) {
	s, p := newSession(t, testSpec)
	if !s.Ping(101) {
		t.Fatalf("Expected ping to be emitted")
	}
	e, ok := s.Pings.Newest()
	if !ok || e.Time != 1 || e.Strength != parameter.PingWaveMul || e.Pos != s.Controller.Position {
		t.Errorf("Expected ping at player t=1 strength %f, got %+v", parameter.PingWaveMul, e)
	}
	if p.count(audio.SoundPing) != 1 {
		t.Errorf("Expected one ping sound, got %d", p.count(audio.SoundPing))
	}
	if len(p.echoes) != 1 || len(p.echoes[0]) == 0 || len(p.echoes[0]) > parameter.MaxEchoTaps {
		t.Fatalf("Expected one echo batch of 1..%d taps, got %v", parameter.MaxEchoTaps, p.echoes)
	}
	if s.Runtime.PingsUsed != 1 || s.Runtime.Recharge.Charges != parameter.PingChargesMax-1 {
		t.Errorf("Expected one ping used and one charge spent")
	}

	s.SetEcho(false)
	s.Ping(102)
	if len(p.echoes) != 1 {
		t.Errorf("Expected no echo with echo disabled")
	}
}

// TestPingDepletedAndLimit verifies the cooldown tick and the budget failure sound
func TestPingDepletedAndLimit(t *testing.T) {
	s, p := newSession(t, testSpec)
	s.Runtime.Recharge.Charges = 0
	if s.Ping(100) || s.Ping(100.5) {
		t.Errorf("Expected pings blocked without charges")
	}
	if p.count(audio.SoundCooldownTick) != 1 {
		t.Errorf("Expected one cooldown tick, got %d", p.count(audio.SoundCooldownTick))
	}
	if s.Pings.Count() != 0 {
		t.Errorf("Expected no pings recorded")
	}

	spec := testSpec
	spec.PingLimit = 1
	s, p = newSession(t, spec)
	if !s.Ping(100) {
		t.Fatalf("Expected first ping within budget")
	}
	if s.Ping(101) {
		t.Errorf("Expected second ping over budget to fail")
	}
	if p.count(audio.SoundFail) != 1 {
		t.Errorf("Expected fail sound, got %d", p.count(audio.SoundFail))
	}
}

// TestTickCollectsKey verifies pickup, ping drop and scene update
func TestTickCollectsKey(t *testing.T) {
	s, p := newSession(t, testSpec)
	s.Controller.Position = s.Level.Key.Pos

	ev := s.Tick(physics.Input{}, 0, 100.5)
	if !ev.KeyCollected || !s.Runtime.KeyCollected {
		t.Fatalf("Expected key collected")
	}
	if p.count(audio.SoundKeyPickup) != 1 {
		t.Errorf("Expected key pickup sound")
	}
	if e, _ := s.Pings.Newest(); e.Strength != parameter.PingStrengthKey || e.Pos != s.Level.Key.Pos {
		t.Errorf("Expected key ping, got %+v", e)
	}
	if !s.Scene.Attrs[s.Scene.KeyParts[0]].Disabled {
		t.Errorf("Expected key hidden in scene")
	}
	for _, i := range s.Visible(1) {
		if slices.Contains(s.Scene.KeyParts, int(i)) {
			t.Fatalf("Expected collected key to be culled")
		}
	}
}

// TestTickLightsBeacon verifies activation chimes and starts the periodic chime
func TestTickLightsBeacon(t *testing.T) {
	s, p := newSession(t, testSpec)
	s.Controller.Position = s.Level.Beacons[0].Pos

	ev := s.Tick(physics.Input{}, 0, 101)
	if !slices.Equal(ev.BeaconsLit, []int{0}) {
		t.Fatalf("Expected beacon 0 lit, got %v", ev.BeaconsLit)
	}
	if !ev.Chimed || len(p.chimes) < 2 {
		t.Errorf("Expected activation chime plus periodic chime, got %d chimes", len(p.chimes))
	}
	if s.Scene.Attrs[s.Scene.BeaconCaps[0]].MaterialID != world.MatBeaconLit {
		t.Errorf("Expected lit beacon cap")
	}

	before := len(p.chimes)
	if ev = s.Tick(physics.Input{}, 0, 102); ev.Chimed || len(p.chimes) != before {
		t.Errorf("Expected no chime inside the interval")
	}
	if ev = s.Tick(physics.Input{}, 0, 106); !ev.Chimed {
		t.Errorf("Expected chime after the interval")
	}
}

// TestTickDoor verifies the locked door cue and level completion
func TestTickDoor(t *testing.T) {
	s, p := newSession(t, testSpec)
	s.Controller.Position = s.Geometry.ExitDoor.Position

	ev := s.Tick(physics.Input{}, 0, 101)
	if !ev.DoorBlocked || ev.Completed {
		t.Fatalf("Expected blocked door without key, got %+v", ev)
	}
	if p.count(audio.SoundDoorBlocked) != 1 {
		t.Errorf("Expected blocked sound once")
	}
	s.Tick(physics.Input{}, 0, 101.1)
	if p.count(audio.SoundDoorBlocked) != 1 {
		t.Errorf("Expected blocked sound not repeated")
	}

	s.Runtime.KeyCollected = true
	ev = s.Tick(physics.Input{}, 0, 101.2)
	if !ev.Completed || !s.Completed || p.count(audio.SoundDoorOpen) != 1 {
		t.Fatalf("Expected completion with key, got %+v", ev)
	}
	if ev = s.Tick(physics.Input{}, 0, 101.3); ev.Completed || ev.DoorBlocked || ev.Knocked {
		t.Errorf("Expected no events after completion, got %+v", ev)
	}
	if s.Ping(101.4) {
		t.Errorf("Expected no ping after completion")
	}
}

// TestTickKnocksNearExit verifies the knock repeats on its interval
func TestTickKnocksNearExit(t *testing.T) {
	s, p := newSession(t, testSpec)
	s.Tick(physics.Input{}, 0, 100)
	if len(p.knocks) != 1 {
		t.Fatalf("Expected knock from start, got %d", len(p.knocks))
	}
	s.Tick(physics.Input{}, 0, 101)
	if len(p.knocks) != 1 {
		t.Errorf("Expected no knock inside interval")
	}
	s.Tick(physics.Input{}, 0, 103.5)
	if len(p.knocks) != 2 {
		t.Errorf("Expected second knock after 3.5s, got %d", len(p.knocks))
	}
}

// TestTickTimerAndMovement verifies movement and timer expiry
func TestTickTimerAndMovement(t *testing.T) {
	spec := testSpec
	spec.TimeLimit = 2
	s, _ := newSession(t, spec)

	start := s.Controller.Position
	s.Controller.SetOrientation(1.5707963267948966, 0)
	s.Tick(physics.Input{Forward: true}, 0.1, 100.1)
	if s.Controller.Position.X <= start.X {
		t.Errorf("Expected movement toward +X, got %+v", s.Controller.Position)
	}

	if ev := s.Tick(physics.Input{}, 0, 102); !ev.TimerExpired {
		t.Errorf("Expected timer expiry")
	}
}

// TestNilPlayer verifies a nil player falls back to silence
func TestNilPlayer(t *testing.T) {
	lvl, err := level.Build(testSpec, parameter.CellSize)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	s := New(nil, cue.DefaultEchoParams())
	s.Load(lvl, 0)
	if !s.Ping(0.5) {
		t.Errorf("Expected ping with null player")
	}
	if len(s.Visible(16.0/9.0)) == 0 {
		t.Errorf("Expected visible instances")
	}
}
