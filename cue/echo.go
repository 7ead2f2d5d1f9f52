package cue

import (
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/echomaze/parameter"
	"github.com/lixenwraith/echomaze/vmath"
	"github.com/lixenwraith/echomaze/world"
)

// EchoParams tunes the echo model
type EchoParams struct {
	GainMul    float64       `yaml:"gain_mul"`
	DistK      float64       `yaml:"dist_k"`      // gain decay per meter
	LPK        float64       `yaml:"lp_k"`        // cutoff decay per meter
	LPBase     float64       `yaml:"lp_base"`     // cutoff floor, Hz
	UnitMeters float64       `yaml:"unit_meters"` // meters per world unit
	AVSync     bool          `yaml:"av_sync"`     // delay follows the visual wave instead of sound speed
	DelayBias  time.Duration `yaml:"delay_bias"`
	Frequency  float64       `yaml:"frequency"` // echo tone, Hz
	Master     float64       `yaml:"master"`
	PingClick  float64       `yaml:"ping_click"`
}

// DefaultEchoParams returns the stock tuning
func DefaultEchoParams() EchoParams {
	return EchoParams{
		GainMul:    parameter.EchoGainMul,
		DistK:      parameter.EchoDistK,
		LPK:        parameter.EchoLPK,
		LPBase:     parameter.EchoLPBase,
		UnitMeters: parameter.EchoUnitMeters,
		AVSync:     parameter.EchoAVSync,
		Frequency:  parameter.EchoFrequency,
		Master:     parameter.EchoMaster,
		PingClick:  parameter.PingClick,
	}
}

// LoadEchoParams reads a YAML tuning file over the defaults
// A missing file yields the defaults
func LoadEchoParams(path string) (EchoParams, error) {
	p := DefaultEchoParams()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return p, nil
		}
		return p, fmt.Errorf("reading echo tuning %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return DefaultEchoParams(), fmt.Errorf("parsing echo tuning %s: %w", path, err)
	}
	return p, nil
}

// EchoTap is one delayed, panned, filtered echo voice
type EchoTap struct {
	Delay     time.Duration
	Pan       float64
	Gain      float64
	LowpassHz float64
	OccHits   int
}

// EchoSpace provides reflection images and occlusion; *world.Geometry implements it
type EchoSpace interface {
	Occluder
	GatherReflectionImages(src vmath.Vec3F, outerReflect float64, out []world.ReflectionImage) int
}

// ComputeEchoTaps mirrors the ping source src in the nearest walls and derives one tap per image
// scratch holds the images and bounds the tap count; taps are appended to dst[:0]
func ComputeEchoTaps(space EchoSpace, listener vmath.Vec3F, yaw float64, src vmath.Vec3F, p EchoParams, scratch []world.ReflectionImage, dst []EchoTap) []EchoTap {
	dst = dst[:0]
	if space == nil {
		return dst
	}
	outer, _ := world.MaterialByID(world.MatOuter)
	n := space.GatherReflectionImages(src, outer.Reflect, scratch)
	right := vmath.RightAxis(yaw)
	lis := listener.XZ()

	for i := 0; i < n; i++ {
		im := &scratch[i]
		dx := im.Pos.X - listener.X
		dz := im.Pos.Z - listener.Z
		du := math.Hypot(dx, dz)
		if du == 0 {
			du = parameter.EchoMinDistance
		}
		distM := du * p.UnitMeters

		delaySec := distM / parameter.SpeedOfSound
		if p.AVSync {
			delaySec = du / parameter.VisualWaveSpeed
		}
		delay := time.Duration(delaySec*float64(time.Second)) + p.DelayBias
		if delay < 0 {
			delay = 0
		}

		occ := space.Occlusion(lis, im.Pos.XZ())
		base := parameter.EchoBaseGain * p.GainMul * math.Exp(-distM*p.DistK)

		dst = append(dst, EchoTap{
			Delay:     delay,
			Pan:       vmath.ClampPan((dx*right.X + dz*right.Z) / du),
			Gain:      base * im.Reflect * occ.GainMul,
			LowpassHz: (parameter.EchoLowpassTop*math.Exp(-distM*p.LPK) + p.LPBase) * occ.LPMul,
			OccHits:   occ.Hits,
		})
	}
	return dst
}
