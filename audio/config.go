package audio

import (
	"encoding/json"
	"os"
	"strconv"
)

// AudioConfig holds device and mix settings
type AudioConfig struct {
	Enabled       bool
	MasterVolume  float64 // 0..1
	SampleRate    int
	EchoFrequency float64 // echo voice pitch in Hz, clamped to 200..6000
	EffectVolumes map[SoundType]float64
}

// DefaultAudioConfig returns the stock mix
func DefaultAudioConfig() *AudioConfig {
	return &AudioConfig{
		Enabled:       true,
		MasterVolume:  0.9,
		SampleRate:    44100,
		EchoFrequency: 1400,
		EffectVolumes: map[SoundType]float64{
			SoundPing:         1.0,
			SoundKeyPickup:    0.85,
			SoundDoorBlocked:  0.5,
			SoundDoorOpen:     0.85,
			SoundFail:         0.5,
			SoundCooldownTick: 0.3,
		},
	}
}

// LoadAudioConfig loads audio configuration from environment variables
func LoadAudioConfig() *AudioConfig {
	cfg := DefaultAudioConfig()

	if enabled := os.Getenv("ECHOMAZE_AUDIO_ENABLED"); enabled != "" {
		if val, err := strconv.ParseBool(enabled); err == nil {
			cfg.Enabled = val
		}
	}

	// Master volume as 0-100
	if volume := os.Getenv("ECHOMAZE_MASTER_VOLUME"); volume != "" {
		if val, err := strconv.Atoi(volume); err == nil {
			cfg.MasterVolume = float64(val) / 100.0
			if cfg.MasterVolume < 0 {
				cfg.MasterVolume = 0
			}
			if cfg.MasterVolume > 1 {
				cfg.MasterVolume = 1
			}
		}
	}

	// Per-sound volumes as a JSON object keyed by sound name
	if effectVols := os.Getenv("ECHOMAZE_SFX_VOLUMES"); effectVols != "" {
		var volumes map[string]float64
		if err := json.Unmarshal([]byte(effectVols), &volumes); err == nil {
			for st := SoundType(0); st < soundTypeCount; st++ {
				if v, ok := volumes[st.String()]; ok {
					cfg.EffectVolumes[st] = v
				}
			}
		}
	}

	if sampleRate := os.Getenv("ECHOMAZE_SAMPLE_RATE"); sampleRate != "" {
		if val, err := strconv.Atoi(sampleRate); err == nil && val > 0 {
			cfg.SampleRate = val
		}
	}

	if freq := os.Getenv("ECHOMAZE_ECHO_FREQ"); freq != "" {
		if val, err := strconv.ParseFloat(freq, 64); err == nil && val > 0 {
			cfg.EchoFrequency = val
		}
	}

	return cfg
}
