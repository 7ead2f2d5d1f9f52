package audio

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/echomaze/cue"
)

// SpeakerPlayer renders cues through the system audio device
type SpeakerPlayer struct {
	mu          sync.Mutex
	cfg         *AudioConfig
	rate        beep.SampleRate
	mixer       *beep.Mixer
	cache       *soundCache
	initialized bool
}

// NewSpeakerPlayer opens the audio device
// On failure it returns a Null player with the error; audio is then unavailable but the game runs
func NewSpeakerPlayer(cfg *AudioConfig) (Player, error) {
	if cfg == nil {
		cfg = DefaultAudioConfig()
	}
	if !cfg.Enabled {
		return Null{}, ErrAudioDisabled
	}

	rate := beep.SampleRate(cfg.SampleRate)
	p := &SpeakerPlayer{
		cfg:   cfg,
		rate:  rate,
		mixer: &beep.Mixer{},
		cache: newSoundCache(rate),
	}

	// Initialize speaker with sample rate and buffer size
	if err := speaker.Init(rate, rate.N(time.Millisecond*100)); err != nil {
		return Null{}, fmt.Errorf("initializing speaker: %w", err)
	}
	p.cache.preload()
	speaker.Play(p.mixer)
	p.initialized = true
	log.Printf("audio: speaker ready at %d Hz", cfg.SampleRate)
	return p, nil
}

// add queues a streamer on the mixer at master volume
func (p *SpeakerPlayer) add(s beep.Streamer, vol float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized || s == nil {
		return
	}
	speaker.Lock()
	p.mixer.Add(newVolume(s, vol*p.cfg.MasterVolume))
	speaker.Unlock()
}

// Play plays a fixed sound at its configured volume
func (p *SpeakerPlayer) Play(st SoundType) {
	buf := p.cache.get(st)
	if buf == nil {
		return
	}
	p.add(buf.Streamer(0, buf.Len()), p.cfg.EffectVolumes[st])
}

// PlayEchoTaps schedules one delayed voice per tap
func (p *SpeakerPlayer) PlayEchoTaps(taps []cue.EchoTap) {
	if len(taps) == 0 {
		return
	}
	voices := make([]beep.Streamer, len(taps))
	for i, t := range taps {
		voices[i] = CreateEchoVoice(t, p.cfg.EchoFrequency, p.rate)
	}
	p.add(beep.Mix(voices...), 1)
}

// PlayBeaconChime plays a beacon chime
func (p *SpeakerPlayer) PlayBeaconChime(c cue.BeaconCue) {
	p.add(CreateBeaconChime(c, p.rate), 1)
}

// PlayKnock plays the exit knock
func (p *SpeakerPlayer) PlayKnock(k cue.KnockCue) {
	p.add(CreateKnock(k, p.rate), 1)
}

// Close stops all sounds and releases the device
func (p *SpeakerPlayer) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	p.initialized = false
}
