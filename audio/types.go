package audio

import (
	"errors"

	"github.com/lixenwraith/echomaze/cue"
)

// SoundType identifies a fixed, position-independent sound
type SoundType int

const (
	SoundPing         SoundType = iota // Listener ping
	SoundKeyPickup                     // Key collected
	SoundDoorBlocked                   // Locked exit reached
	SoundDoorOpen                      // Level complete
	SoundFail                          // Ping budget spent
	SoundCooldownTick                  // Out of ping charges
	soundTypeCount
)

var soundNames = [soundTypeCount]string{"ping", "key", "blocked", "open", "fail", "cooldown"}

// String returns the config key of a sound
func (s SoundType) String() string {
	if s < 0 || s >= soundTypeCount {
		return "unknown"
	}
	return soundNames[s]
}

// Sentinel errors
var (
	ErrAudioDisabled = errors.New("audio disabled by configuration")
)

// Player is the game's audio output
// Implementations must tolerate calls from the frame loop without blocking
type Player interface {
	Play(SoundType)
	PlayEchoTaps(taps []cue.EchoTap)
	PlayBeaconChime(c cue.BeaconCue)
	PlayKnock(k cue.KnockCue)
	Close()
}

// Null discards every sound, used when no device is available
type Null struct{}

func (Null) Play(SoundType)                {}
func (Null) PlayEchoTaps([]cue.EchoTap)    {}
func (Null) PlayBeaconChime(cue.BeaconCue) {}
func (Null) PlayKnock(cue.KnockCue)        {}
func (Null) Close()                        {}
