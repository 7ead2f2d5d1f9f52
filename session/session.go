// Package session runs one player through a level: movement, pickups, cues and pings
package session

import (
	"log"
	"math"

	"github.com/lixenwraith/echomaze/audio"
	"github.com/lixenwraith/echomaze/cue"
	"github.com/lixenwraith/echomaze/culling"
	"github.com/lixenwraith/echomaze/level"
	"github.com/lixenwraith/echomaze/parameter"
	"github.com/lixenwraith/echomaze/physics"
	"github.com/lixenwraith/echomaze/ping"
	"github.com/lixenwraith/echomaze/vmath"
	"github.com/lixenwraith/echomaze/world"
)

// Events reports what happened during one Tick
type Events struct {
	KeyCollected bool
	BeaconsLit   []int // aliases session scratch
	Chimed       bool
	Knocked      bool
	DoorBlocked  bool
	Completed    bool
	TimerExpired bool
}

// Session owns the per-level world and the player state
// It is single-threaded: all calls must come from the frame loop
type Session struct {
	Level      *level.Level
	Geometry   *world.Geometry
	Scene      *culling.Scene
	Runtime    *level.Runtime
	Controller *physics.Controller
	Pings      ping.History
	Echo       cue.EchoParams
	FovY       float64
	Completed  bool

	player  audio.Player
	emitter ping.Emitter
	start   float64 // clock time the level began

	images  []world.ReflectionImage
	taps    []cue.EchoTap
	scratch *culling.Scratch
	lit     []int
}

// New creates an empty session; a nil player is replaced by audio.Null
func New(player audio.Player, echo cue.EchoParams) *Session {
	if player == nil {
		player = audio.Null{}
	}
	s := &Session{
		Echo:       echo,
		FovY:       parameter.CameraFovY,
		Controller: physics.NewController(physics.DefaultControllerConfig(), vmath.Vec3F{}),
		player:     player,
		images:     make([]world.ReflectionImage, parameter.MaxEchoTaps),
		taps:       make([]cue.EchoTap, 0, parameter.MaxEchoTaps),
	}
	s.emitter = ping.Emitter{
		History:    &s.Pings,
		Sink:       sink{s},
		Position:   func() vmath.Vec3F { return s.Controller.Position },
		BeforeEmit: s.beforePing,
		AfterEmit:  s.afterPing,
		WaveMul:    parameter.PingWaveMul,
		Echo:       true,
	}
	return s
}

// Load replaces the current world with lvl; now is the caller's clock in seconds
func (s *Session) Load(lvl *level.Level, now float64) {
	s.Level = lvl
	s.Geometry = lvl.Geometry
	s.Scene = culling.BuildScene(lvl.Geometry, lvl.Decorations())
	s.scratch = s.Scene.NewScratch()
	s.Runtime = level.NewRuntime(lvl)
	s.Runtime.Sync(s.Scene)
	s.Pings.Reset()
	s.Completed = false
	s.start = now

	s.Controller.Position = lvl.Geometry.Start
	s.Controller.SetOrientation(lvl.StartYaw(), 0)

	log.Printf("session: loaded level %d %q, %d instances, grid %dx%d",
		lvl.Spec.ID, lvl.Spec.Name, len(s.Scene.Bounds), s.Scene.Grid.Cols, s.Scene.Grid.Rows)
}

// Elapsed returns seconds since the level began
func (s *Session) Elapsed(now float64) float64 {
	return now - s.start
}

// SetEcho toggles the echo voice for pings
func (s *Session) SetEcho(on bool) {
	s.emitter.Echo = on
}

// Tick advances the level by dt seconds of input at clock time now
func (s *Session) Tick(in physics.Input, dt, now float64) Events {
	var ev Events
	if s.Level == nil || s.Completed {
		return ev
	}
	t := s.Elapsed(now)
	rt := s.Runtime
	rt.Recharge.Update(t)

	if rt.CheckTimer(t) {
		ev.TimerExpired = true
		return ev
	}

	s.Controller.Move(s.Geometry.Walls, in, dt)
	pos := s.Controller.Position.XZ()
	right := s.Controller.RightAxis()

	if rt.CollectKey(pos) {
		ev.KeyCollected = true
		s.player.Play(audio.SoundKeyPickup)
		s.Pings.Add(s.Level.Key.Pos, t, parameter.PingStrengthKey)
	}

	s.lit = rt.ActivateBeacons(pos, s.lit[:0])
	ev.BeaconsLit = s.lit
	for _, i := range s.lit {
		b := s.Level.Beacons[i].Pos
		s.player.PlayBeaconChime(cue.BeaconCue{Pan: panToward(pos, right, b.XZ()), Strength: 1, Bright: 1})
		s.Pings.Add(b, t, parameter.PingStrengthBeaconLight)
	}

	if rt.ChimeDue(t) && s.chimeLit(pos, right, t) {
		rt.MarkChimed(t)
		ev.Chimed = true
	}

	door := s.Geometry.ExitDoor.Position.XZ()
	if rt.KnockDue(t) {
		if k, ok := cue.ExitKnock(pos, right, door, cue.DefaultKnockReach, s.Geometry); ok {
			s.player.PlayKnock(k)
			rt.MarkKnocked(t)
			ev.Knocked = true
		}
	}

	switch rt.CheckDoor(pos, t) {
	case level.DoorOpened:
		s.player.Play(audio.SoundDoorOpen)
		s.Completed = true
		ev.Completed = true
	case level.DoorBlockedCue:
		s.player.Play(audio.SoundDoorBlocked)
		ev.DoorBlocked = true
	case level.DoorBlocked:
		ev.DoorBlocked = true
	}

	rt.Sync(s.Scene)
	return ev
}

// chimeLit plays the positional chime of every lit beacon in reach and drops a ping on each
func (s *Session) chimeLit(pos, right vmath.XZ, t float64) bool {
	chimed := false
	for i, on := range s.Runtime.Activated {
		if !on {
			continue
		}
		b := s.Level.Beacons[i].Pos
		c, ok := cue.CalcBeaconCue(pos, right, b.XZ(), cue.DefaultBeaconReach, s.Geometry)
		if !ok {
			continue
		}
		s.player.PlayBeaconChime(c)
		s.Pings.Add(b, t, parameter.PingStrengthBeaconChime)
		chimed = true
	}
	return chimed
}

// Ping emits a listener ping at clock time now, subject to charges and the level budget
func (s *Session) Ping(now float64) bool {
	if s.Level == nil || s.Completed {
		return false
	}
	return s.emitter.Emit(s.Elapsed(now), parameter.PingDefaultStrength)
}

func (s *Session) beforePing(t float64) bool {
	verdict, cueDepleted := s.Runtime.TryPing(t)
	switch verdict {
	case level.PingDepleted:
		if cueDepleted {
			s.player.Play(audio.SoundCooldownTick)
		}
		return false
	case level.PingLimitReached:
		s.player.Play(audio.SoundFail)
		return false
	}
	return true
}

func (s *Session) afterPing(t float64) {
	s.chimeLit(s.Controller.Position.XZ(), s.Controller.RightAxis(), t)
}

// Visible returns the depth-ordered instances the camera sees for a viewport aspect
// The slice aliases session scratch and is valid until the next call
func (s *Session) Visible(aspect float64) []int32 {
	if s.Scene == nil {
		return nil
	}
	cam := s.Camera(aspect)
	return s.Scene.Visible(&cam, s.scratch)
}

// Camera returns the listener's view
func (s *Session) Camera(aspect float64) culling.Camera {
	return culling.NewCamera(s.Controller.Position, s.Controller.Yaw, s.Controller.Pitch, aspect, s.FovY)
}

// sink routes emitter audio to the player
type sink struct{ s *Session }

func (k sink) PlayPing() {
	k.s.player.Play(audio.SoundPing)
}

func (k sink) PlayEcho(src vmath.Vec3F) {
	s := k.s
	s.taps = cue.ComputeEchoTaps(s.Geometry, s.Controller.Position, s.Controller.Yaw, src, s.Echo, s.images, s.taps)
	for i := range s.taps {
		s.taps[i].Gain *= s.Echo.Master
	}
	s.player.PlayEchoTaps(s.taps)
}

// panToward returns the stereo pan of target for a listener at pos facing with right vector right
func panToward(pos, right, target vmath.XZ) float64 {
	d := vmath.XZSub(target, pos)
	dist := math.Hypot(d.X, d.Z)
	if dist < parameter.PanMinDistance {
		dist = 1
	}
	return vmath.ClampPan(vmath.XZDot(d, right) / dist)
}
