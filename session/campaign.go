package session

import (
	"errors"
	"fmt"
	"log"

	"github.com/lixenwraith/echomaze/audio"
	"github.com/lixenwraith/echomaze/level"
)

var ErrRunFinished = errors.New("run finished, no next level")

// Result records one completed level
type Result struct {
	ID           int
	Name         string
	Time         float64
	Pings        int
	Beacons      int
	KeyCollected bool
	Bonus        bool
}

// Campaign walks a session through a level pack
// Completing a level pauses on a finish state until Continue or Restart
type Campaign struct {
	Pack     *level.Pack
	Session  *Session
	Index    int
	Results  []Result
	Finished bool // last level of the pack completed
	Pending  bool // finish state shown, waiting for Continue

	cellSize float64
	built    map[int]*level.Level
}

func NewCampaign(pack *level.Pack, s *Session, cellSize float64) *Campaign {
	return &Campaign{
		Pack:     pack,
		Session:  s,
		cellSize: cellSize,
		built:    make(map[int]*level.Level),
	}
}

// Start loads level i of the pack, clamped to the pack range
func (c *Campaign) Start(i int, now float64) error {
	i = max(0, min(i, c.Pack.Len()-1))
	lvl, ok := c.built[i]
	if !ok {
		var err error
		lvl, err = level.Build(c.Pack.Level(i), c.cellSize)
		if err != nil {
			return fmt.Errorf("level %d: %w", i+1, err)
		}
		c.built[i] = lvl
	}
	c.Index = i
	c.Pending = false
	c.Finished = false
	c.Session.Load(lvl, now)
	return nil
}

// Update applies the outcome of one session tick
func (c *Campaign) Update(ev Events, now float64) error {
	switch {
	case ev.Completed:
		rt := c.Session.Runtime
		c.Results = append(c.Results, Result{
			ID:           c.Session.Level.Spec.ID,
			Name:         c.Session.Level.Spec.Name,
			Time:         c.Session.Elapsed(now),
			Pings:        rt.PingsUsed,
			Beacons:      rt.LitCount(),
			KeyCollected: rt.KeyCollected,
			Bonus:        c.Session.Level.Spec.IsBonus,
		})
		c.Pending = true
		c.Finished = c.Index+1 >= c.Pack.Len()
		log.Printf("campaign: level %d complete in %.1fs, %d pings", c.Index+1, c.Session.Elapsed(now), rt.PingsUsed)
	case ev.TimerExpired:
		c.Session.player.Play(audio.SoundFail)
		log.Printf("campaign: level %d timer expired, restarting", c.Index+1)
		return c.Start(c.Index, now)
	}
	return nil
}

// Continue advances to the next level after a completion
func (c *Campaign) Continue(now float64) error {
	if !c.Pending {
		return nil
	}
	if c.Finished {
		return ErrRunFinished
	}
	return c.Start(c.Index+1, now)
}

// Restart replays the current level, or the whole run once finished
// A completed level's result is dropped when it is replayed
func (c *Campaign) Restart(now float64) error {
	if c.Finished {
		c.Results = c.Results[:0]
		return c.Start(0, now)
	}
	if c.Pending && len(c.Results) > 0 {
		c.Results = c.Results[:len(c.Results)-1]
	}
	return c.Start(c.Index, now)
}

// TotalTime sums completed level times
func (c *Campaign) TotalTime() float64 {
	var t float64
	for _, r := range c.Results {
		t += r.Time
	}
	return t
}
