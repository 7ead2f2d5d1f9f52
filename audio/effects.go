package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"

	"github.com/lixenwraith/echomaze/cue"
	"github.com/lixenwraith/echomaze/vmath"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveTriangle
	WaveNoise
)

// oscillator generates raw audio waves, gliding linearly from freq to freqEnd
type oscillator struct {
	freq     float64
	freqEnd  float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a new oscillator for wave generation
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewGlide(freq, freq, duration, wave, rate)
}

// NewGlide creates an oscillator sweeping from one frequency to another over its duration
func NewGlide(from, to float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     from,
		freqEnd:  to,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveTriangle:
			val = 1 - 4*math.Abs(o.phase-0.5)
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		freq := o.freq
		if o.freqEnd != o.freq && o.duration > 0 {
			freq += (o.freqEnd - o.freq) * float64(o.position) / float64(o.duration)
		}
		o.phase += freq / float64(o.rate)
		o.phase = o.phase - math.Floor(o.phase) // Keep in [0, 1)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

// NewEnvelope creates an ADSR envelope (simplified to just attack/release)
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	sus := total - att - rel
	if sus < 0 {
		sus = 0
	}

	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		sustainSamples: sus,
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		var vol float64 = 1.0

		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.attackSamples + e.sustainSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			remaining := e.totalSamples - e.position
			vol = float64(remaining) / float64(e.releaseSamples)
			if vol < 0 {
				vol = 0
			}
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// decayFloor is the level an exponential decay reaches at its end, -80 dB
const decayFloor = 1e-4

// decay ramps linearly to peak over attack then falls exponentially to decayFloor at decayEnd
// The stream is cut at total samples
type decay struct {
	streamer beep.Streamer
	peak     float64
	attack   int
	total    int
	k        float64
	position int
}

// NewDecay shapes s into a percussive hit
func NewDecay(s beep.Streamer, peak float64, attack, decayEnd, total time.Duration, rate beep.SampleRate) beep.Streamer {
	att := rate.N(attack)
	fall := max(1, rate.N(decayEnd)-att)
	return &decay{
		streamer: s,
		peak:     peak,
		attack:   att,
		total:    rate.N(total),
		k:        -math.Log(decayFloor) / float64(fall),
	}
}

func (d *decay) Stream(samples [][2]float64) (n int, ok bool) {
	if d.position >= d.total {
		return 0, false
	}
	if rest := d.total - d.position; len(samples) > rest {
		samples = samples[:rest]
	}
	n, ok = d.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		var vol float64
		if d.position < d.attack {
			vol = d.peak * float64(d.position) / float64(d.attack)
		} else {
			vol = d.peak * math.Exp(-d.k*float64(d.position-d.attack))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		d.position++
	}
	return n, ok
}

func (d *decay) Err() error { return d.streamer.Err() }

// lowpass is a one-pole low-pass filter
type lowpass struct {
	streamer beep.Streamer
	alpha    float64
	y        [2]float64
}

// NewLowpass filters s with a cutoff in Hz
func NewLowpass(s beep.Streamer, cutoff float64, rate beep.SampleRate) beep.Streamer {
	return &lowpass{
		streamer: s,
		alpha:    1 - math.Exp(-2*math.Pi*cutoff/float64(rate)),
	}
}

func (l *lowpass) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = l.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		for c := 0; c < 2; c++ {
			l.y[c] += l.alpha * (samples[i][c] - l.y[c])
			samples[i][c] = l.y[c]
		}
	}
	return n, ok
}

func (l *lowpass) Err() error { return l.streamer.Err() }

// Helper to create a volume effect safely
// math.Log2(0) is -Inf, so we handle 0 volume by making it silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// newPan places s in the stereo field, -1 left to +1 right
func newPan(s beep.Streamer, pan float64) beep.Streamer {
	return &effects.Pan{Streamer: s, Pan: vmath.ClampPan(pan)}
}

// delayed prepends silence to s
func delayed(s beep.Streamer, d time.Duration, rate beep.SampleRate) beep.Streamer {
	if n := rate.N(d); n > 0 {
		return beep.Seq(beep.Silence(n), s)
	}
	return s
}

// Sound timing
const (
	hitAttack       = 10 * time.Millisecond
	pingHighDecay   = 220 * time.Millisecond
	pingLowDecay    = 180 * time.Millisecond
	pingClickLength = 30 * time.Millisecond
	echoLength      = 220 * time.Millisecond
	echoMinDelay    = time.Millisecond
	chimeDecay      = 420 * time.Millisecond
	chimeLength     = 380 * time.Millisecond
	knockDecay      = 320 * time.Millisecond
	knockLength     = 340 * time.Millisecond
	knockGap        = 140 * time.Millisecond
	knockNoise      = 40 * time.Millisecond
)

// CreatePingSound generates the two-tone ping with a short noise click
func CreatePingSound(rate beep.SampleRate) beep.Streamer {
	high := NewDecay(NewOscillator(1600, pingHighDecay, WaveSine, rate), 1.0, hitAttack, pingHighDecay, pingHighDecay, rate)
	low := NewDecay(NewOscillator(900, pingLowDecay, WaveSine, rate), 0.6, hitAttack, pingLowDecay, pingLowDecay, rate)
	click := NewDecay(NewOscillator(0, pingClickLength, WaveNoise, rate), 0.6, 0, pingClickLength, pingClickLength, rate)
	return beep.Mix(high, low, click)
}

// CreateEchoVoice generates one reflected tap: a short filtered sine placed by delay and pan
func CreateEchoVoice(tap cue.EchoTap, freq float64, rate beep.SampleRate) beep.Streamer {
	freq = vmath.Clamp(freq, 200, 6000)
	gain := vmath.Clamp01(tap.Gain)
	cutoff := math.Max(300, tap.LowpassHz)

	voice := NewOscillator(freq, echoLength, WaveSine, rate)
	voice = NewLowpass(voice, cutoff, rate)
	voice = NewDecay(voice, gain, hitAttack, echoLength, echoLength, rate)
	return delayed(newPan(voice, tap.Pan), max(echoMinDelay, tap.Delay), rate)
}

// CreateBeaconChime generates the beacon bell, pitched up by brightness
func CreateBeaconChime(c cue.BeaconCue, rate beep.SampleRate) beep.Streamer {
	peak := math.Max(0.04, 0.5*vmath.Clamp01(c.Strength))
	osc := NewOscillator(780+260*c.Bright, chimeLength, WaveTriangle, rate)
	return newPan(NewDecay(osc, peak, hitAttack, chimeDecay, chimeLength, rate), c.Pan)
}

// CreateKnock generates a double knock on the exit door
func CreateKnock(k cue.KnockCue, rate beep.SampleRate) beep.Streamer {
	hit := func(gainMul float64) beep.Streamer {
		peak := math.Max(0.05, 0.22*k.Intensity*gainMul)
		tone := NewOscillator(180+80*k.Intensity, knockLength, WaveTriangle, rate)
		tone = NewDecay(NewLowpass(tone, 900+1200*k.Intensity, rate), peak, hitAttack, knockDecay, knockLength, rate)
		noise := NewDecay(NewOscillator(0, knockNoise, WaveNoise, rate), peak*0.6, 0, knockNoise, knockNoise, rate)
		return beep.Mix(tone, noise)
	}
	return newPan(beep.Mix(hit(1.0), delayed(hit(0.7), knockGap, rate)), k.Pan)
}

// CreateKeyPickupSound generates a rising two-voice sparkle
func CreateKeyPickupSound(rate beep.SampleRate) beep.Streamer {
	d := 700 * time.Millisecond
	a := NewGlide(880, 1320, 250*time.Millisecond, WaveSine, rate)
	b := NewGlide(660, 990, 220*time.Millisecond, WaveSine, rate)
	tail := NewOscillator(1320, d, WaveSine, rate)
	return NewDecay(beep.Mix(beep.Seq(a, tail), newVolume(b, 0.6)), 0.85, 20*time.Millisecond, d, d, rate)
}

// CreateDoorBlockedSound generates a falling muffled thud
func CreateDoorBlockedSound(rate beep.SampleRate) beep.Streamer {
	d := 550 * time.Millisecond
	tone := NewLowpass(NewGlide(180, 80, d, WaveSaw, rate), 240, rate)
	return NewDecay(tone, 0.5, 20*time.Millisecond, d, d, rate)
}

// CreateDoorOpenSound generates a swelling major chord
func CreateDoorOpenSound(rate beep.SampleRate) beep.Streamer {
	d := time.Second
	var voices []beep.Streamer
	for i, f := range []float64{523.25, 659.25, 783.99} {
		osc := NewGlide(f*0.94, f*1.05, d, WaveSine, rate)
		voices = append(voices, delayed(NewDecay(osc, 0.32, 50*time.Millisecond, d, d, rate), time.Duration(i)*60*time.Millisecond, rate))
	}
	return beep.Mix(voices...)
}

// CreateFailSound generates a falling square buzz
func CreateFailSound(rate beep.SampleRate) beep.Streamer {
	d := 360 * time.Millisecond
	return NewDecay(NewGlide(420, 240, d, WaveSquare, rate), 0.5, hitAttack, d, 400*time.Millisecond, rate)
}

// CreateCooldownTick generates a soft low tick
func CreateCooldownTick(rate beep.SampleRate) beep.Streamer {
	d := 200 * time.Millisecond
	length := 340 * time.Millisecond
	var src beep.Streamer
	if sine, err := generators.SineTone(rate, 320); err == nil {
		src = beep.Take(rate.N(length), sine)
	} else {
		src = NewOscillator(320, length, WaveSine, rate)
	}
	return NewDecay(NewLowpass(src, 520, rate), 0.3, hitAttack, d, length, rate)
}

// GetSoundEffect returns the unity-gain streamer for a fixed sound
func GetSoundEffect(soundType SoundType, rate beep.SampleRate) beep.Streamer {
	switch soundType {
	case SoundPing:
		return CreatePingSound(rate)
	case SoundKeyPickup:
		return CreateKeyPickupSound(rate)
	case SoundDoorBlocked:
		return CreateDoorBlockedSound(rate)
	case SoundDoorOpen:
		return CreateDoorOpenSound(rate)
	case SoundFail:
		return CreateFailSound(rate)
	case SoundCooldownTick:
		return CreateCooldownTick(rate)
	default:
		return nil
	}
}
