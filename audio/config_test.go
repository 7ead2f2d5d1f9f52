package audio

import (
	"os"
	"testing"
)

func clearAudioEnv() {
	os.Unsetenv("ECHOMAZE_AUDIO_ENABLED")
	os.Unsetenv("ECHOMAZE_MASTER_VOLUME")
	os.Unsetenv("ECHOMAZE_SFX_VOLUMES")
	os.Unsetenv("ECHOMAZE_SAMPLE_RATE")
	os.Unsetenv("ECHOMAZE_ECHO_FREQ")
}

// TestDefaultAudioConfig verifies default configuration
func TestDefaultAudioConfig(t *testing.T) {
	cfg := DefaultAudioConfig()

	if cfg == nil {
		t.Fatal("Expected non-nil default config")
	}
	if !cfg.Enabled {
		t.Error("Expected default config to have Enabled=true")
	}
	if cfg.MasterVolume != 0.9 {
		t.Errorf("Expected default master volume 0.9, got %f", cfg.MasterVolume)
	}
	if cfg.SampleRate != 44100 {
		t.Errorf("Expected default sample rate 44100, got %d", cfg.SampleRate)
	}
	if cfg.EchoFrequency != 1400 {
		t.Errorf("Expected default echo frequency 1400, got %f", cfg.EchoFrequency)
	}

	for st := SoundType(0); st < soundTypeCount; st++ {
		if vol, ok := cfg.EffectVolumes[st]; !ok || vol <= 0 {
			t.Errorf("Expected positive volume for %s, got %f (set=%v)", st, vol, ok)
		}
	}
}

// TestLoadAudioConfigDefaults verifies loading with no env vars
func TestLoadAudioConfigDefaults(t *testing.T) {
	clearAudioEnv()

	cfg := LoadAudioConfig()
	defaultCfg := DefaultAudioConfig()

	if cfg.Enabled != defaultCfg.Enabled {
		t.Errorf("Expected Enabled=%v, got %v", defaultCfg.Enabled, cfg.Enabled)
	}
	if cfg.MasterVolume != defaultCfg.MasterVolume {
		t.Errorf("Expected MasterVolume=%f, got %f", defaultCfg.MasterVolume, cfg.MasterVolume)
	}
	if cfg.SampleRate != defaultCfg.SampleRate {
		t.Errorf("Expected SampleRate=%d, got %d", defaultCfg.SampleRate, cfg.SampleRate)
	}
}

// TestLoadAudioConfigEnabled verifies loading enabled flag
func TestLoadAudioConfigEnabled(t *testing.T) {
	defer os.Unsetenv("ECHOMAZE_AUDIO_ENABLED")

	testCases := []struct {
		value    string
		expected bool
	}{
		{"true", true},
		{"false", false},
		{"1", true},
		{"0", false},
		{"garbage", true},
	}

	for _, tc := range testCases {
		t.Run(tc.value, func(t *testing.T) {
			os.Setenv("ECHOMAZE_AUDIO_ENABLED", tc.value)
			cfg := LoadAudioConfig()

			if cfg.Enabled != tc.expected {
				t.Errorf("Expected Enabled=%v for value %s, got %v", tc.expected, tc.value, cfg.Enabled)
			}
		})
	}
}

// TestLoadAudioConfigMasterVolume verifies percent parsing and clamping
func TestLoadAudioConfigMasterVolume(t *testing.T) {
	defer os.Unsetenv("ECHOMAZE_MASTER_VOLUME")

	testCases := []struct {
		value    string
		expected float64
	}{
		{"0", 0.0},
		{"50", 0.5},
		{"100", 1.0},
		{"-50", 0.0},
		{"150", 1.0},
	}

	for _, tc := range testCases {
		t.Run(tc.value, func(t *testing.T) {
			os.Setenv("ECHOMAZE_MASTER_VOLUME", tc.value)
			cfg := LoadAudioConfig()

			if cfg.MasterVolume != tc.expected {
				t.Errorf("Expected MasterVolume=%f for value %s, got %f", tc.expected, tc.value, cfg.MasterVolume)
			}
		})
	}
}

// TestLoadAudioConfigSampleRate verifies valid and invalid sample rates
func TestLoadAudioConfigSampleRate(t *testing.T) {
	defer os.Unsetenv("ECHOMAZE_SAMPLE_RATE")
	defaultRate := DefaultAudioConfig().SampleRate

	testCases := []struct {
		value    string
		expected int
	}{
		{"22050", 22050},
		{"48000", 48000},
		{"invalid", defaultRate},
		{"-1000", defaultRate},
		{"0", defaultRate},
	}

	for _, tc := range testCases {
		t.Run(tc.value, func(t *testing.T) {
			os.Setenv("ECHOMAZE_SAMPLE_RATE", tc.value)
			cfg := LoadAudioConfig()

			if cfg.SampleRate != tc.expected {
				t.Errorf("Expected SampleRate=%d for value %s, got %d", tc.expected, tc.value, cfg.SampleRate)
			}
		})
	}
}

// TestLoadAudioConfigEchoFrequency verifies the echo pitch override
func TestLoadAudioConfigEchoFrequency(t *testing.T) {
	defer os.Unsetenv("ECHOMAZE_ECHO_FREQ")

	os.Setenv("ECHOMAZE_ECHO_FREQ", "2200.5")
	if cfg := LoadAudioConfig(); cfg.EchoFrequency != 2200.5 {
		t.Errorf("Expected echo frequency 2200.5, got %f", cfg.EchoFrequency)
	}
	os.Setenv("ECHOMAZE_ECHO_FREQ", "-3")
	if cfg := LoadAudioConfig(); cfg.EchoFrequency != 1400 {
		t.Errorf("Expected default echo frequency for negative value, got %f", cfg.EchoFrequency)
	}
}

// TestLoadAudioConfigEffectVolumes verifies per-sound volumes from JSON
func TestLoadAudioConfigEffectVolumes(t *testing.T) {
	defer os.Unsetenv("ECHOMAZE_SFX_VOLUMES")

	os.Setenv("ECHOMAZE_SFX_VOLUMES", `{"ping": 0.4, "key": 0.3, "unknown": 0.9}`)
	cfg := LoadAudioConfig()
	if cfg.EffectVolumes[SoundPing] != 0.4 || cfg.EffectVolumes[SoundKeyPickup] != 0.3 {
		t.Errorf("Expected ping 0.4 and key 0.3, got %f %f", cfg.EffectVolumes[SoundPing], cfg.EffectVolumes[SoundKeyPickup])
	}
	if cfg.EffectVolumes[SoundFail] != DefaultAudioConfig().EffectVolumes[SoundFail] {
		t.Errorf("Expected unspecified volumes to keep defaults")
	}

	os.Setenv("ECHOMAZE_SFX_VOLUMES", `{not json`)
	cfg = LoadAudioConfig()
	if cfg.EffectVolumes[SoundPing] != DefaultAudioConfig().EffectVolumes[SoundPing] {
		t.Errorf("Expected defaults for invalid JSON")
	}
}
