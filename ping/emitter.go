package ping

import (
	"math"

	"github.com/lixenwraith/echomaze/parameter"
	"github.com/lixenwraith/echomaze/vmath"
)

// Sink receives the audio side of an emitted ping
type Sink interface {
	PlayPing()
	PlayEcho(src vmath.Vec3F)
}

// Emitter records pings at the listener position and forwards them to a sink
type Emitter struct {
	History *History
	Sink    Sink

	// Position reports the listener position at emit time
	Position func() vmath.Vec3F

	// BeforeEmit gates emission; returning false drops the ping
	BeforeEmit func(now float64) bool
	// AfterEmit runs once the ping was recorded and played
	AfterEmit func(now float64)

	// WaveMul scales every ping strength, clamped at 0
	WaveMul float64
	// Echo enables the echo voice for each ping
	Echo bool
}

// Emit fires one ping at time now, a non-positive strength uses the default
// Returns false when gated
func (e *Emitter) Emit(now, strength float64) bool {
	if strength <= 0 {
		strength = parameter.PingDefaultStrength
	}
	if e.BeforeEmit != nil && !e.BeforeEmit(now) {
		return false
	}
	var p vmath.Vec3F
	if e.Position != nil {
		p = e.Position()
	}
	e.History.Add(p, now, strength*math.Max(0, e.WaveMul))
	if e.Sink != nil {
		e.Sink.PlayPing()
		if e.Echo {
			e.Sink.PlayEcho(p)
		}
	}
	if e.AfterEmit != nil {
		e.AfterEmit(now)
	}
	return true
}
