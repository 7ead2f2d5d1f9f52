// Package ping keeps the recent ping history and emits new pings
package ping

import (
	"github.com/lixenwraith/echomaze/parameter"
	"github.com/lixenwraith/echomaze/vmath"
)

// Entry is one recorded ping, Time in seconds since level start
type Entry struct {
	Pos      vmath.Vec3F
	Time     float64
	Strength float64
}

// History is a fixed-capacity newest-first ring of pings
// Adding to a full history evicts the oldest entry
type History struct {
	entries [parameter.MaxPings]Entry
	head    int // slot of the newest entry
	count   int
}

// Add records a ping as the newest entry
func (h *History) Add(pos vmath.Vec3F, t, strength float64) {
	h.head = (h.head + len(h.entries) - 1) % len(h.entries)
	h.entries[h.head] = Entry{Pos: pos, Time: t, Strength: strength}
	if h.count < len(h.entries) {
		h.count++
	}
}

// Count returns the number of stored pings
func (h *History) Count() int {
	return h.count
}

// Cap returns the history capacity
func (h *History) Cap() int {
	return len(h.entries)
}

// At returns entry i, 0 being the newest; ok is false out of range
func (h *History) At(i int) (Entry, bool) {
	if i < 0 || i >= h.count {
		return Entry{}, false
	}
	return h.entries[(h.head+i)%len(h.entries)], true
}

// Newest returns the most recent ping
func (h *History) Newest() (Entry, bool) {
	return h.At(0)
}

// Snapshot copies entries newest-first into dst and returns it
func (h *History) Snapshot(dst []Entry) []Entry {
	dst = dst[:0]
	for i := 0; i < h.count; i++ {
		e, _ := h.At(i)
		dst = append(dst, e)
	}
	return dst
}

// Reset drops all pings
func (h *History) Reset() {
	h.head, h.count = 0, 0
}
