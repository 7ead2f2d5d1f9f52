package main

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/echomaze/parameter"
	"github.com/lixenwraith/echomaze/render"
	"github.com/lixenwraith/echomaze/session"
)

// terminalAspect corrects for character cells being about twice as tall as wide
const terminalAspect = 0.5

type game struct {
	screen tcell.Screen
	camp   *session.Campaign
	view   *render.MapView
	buf    *render.Buffer
	keys   heldKeys
	start  time.Time
	last   time.Time
	tools  bool // digit keys jump levels
	echoOn bool
}

func newGame(screen tcell.Screen, camp *session.Campaign, tools bool) *game {
	w, h := screen.Size()
	now := time.Now()
	return &game{
		screen: screen,
		camp:   camp,
		view:   render.NewMapView(),
		buf:    render.NewBuffer(w, h),
		keys:   heldKeys{hold: parameter.ViewInputHold},
		start:  now,
		last:   now,
		tools:  tools,
		echoOn: true,
	}
}

// clock returns seconds since the viewer started
func (g *game) clock(t time.Time) float64 {
	return t.Sub(g.start).Seconds()
}

// handle applies one terminal event, false ends the game
func (g *game) handle(ev tcell.Event) (bool, error) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		w, h := ev.Size()
		g.buf.Resize(w, h)
		g.screen.Sync()
	case *tcell.EventKey:
		now := time.Now()
		b := bindKey(ev.Key(), ev.Rune())
		if b.hasMove {
			g.keys.press(b.move, b.run, now)
			return true, nil
		}
		return g.command(b, now)
	}
	return true, nil
}

func (g *game) command(b keyBinding, now time.Time) (bool, error) {
	s := g.camp.Session
	t := g.clock(now)
	switch b.cmd {
	case cmdQuit:
		return false, nil
	case cmdPing:
		s.Ping(t)
	case cmdTurnLeft:
		s.Controller.SetOrientation(s.Controller.Yaw-parameter.ViewLookStep, s.Controller.Pitch)
	case cmdTurnRight:
		s.Controller.SetOrientation(s.Controller.Yaw+parameter.ViewLookStep, s.Controller.Pitch)
	case cmdToggleEcho:
		g.echoOn = !g.echoOn
		s.SetEcho(g.echoOn)
	case cmdContinue:
		if err := g.camp.Continue(t); err != nil && !errors.Is(err, session.ErrRunFinished) {
			return false, err
		}
		g.keys.reset()
	case cmdRestart:
		g.keys.reset()
		return true, g.camp.Restart(t)
	case cmdJump:
		if !g.tools {
			return true, nil
		}
		g.keys.reset()
		g.camp.Results = g.camp.Results[:0]
		return true, g.camp.Start(b.level, t)
	}
	return true, nil
}

// frame advances the session and redraws
func (g *game) frame(now time.Time) error {
	dt := now.Sub(g.last).Seconds()
	g.last = now
	t := g.clock(now)

	if !g.camp.Pending {
		ev := g.camp.Session.Tick(g.keys.input(now), dt, t)
		if err := g.camp.Update(ev, t); err != nil {
			return err
		}
	}
	g.draw(t)
	return nil
}

func (g *game) draw(t float64) {
	s := g.camp.Session
	w, h := g.buf.Width(), g.buf.Height()
	aspect := terminalAspect * float64(w) / float64(max(1, h))
	g.view.Draw(g.buf, s, t, aspect)
	render.DrawHUD(g.buf, s, t)

	switch {
	case g.camp.Finished:
		render.Banner(g.buf, fmt.Sprintf("Run complete in %.1fs. r restarts, Esc quits", g.camp.TotalTime()), render.ColorDoorOpen)
	case g.camp.Pending:
		last := g.camp.Results[len(g.camp.Results)-1]
		render.Banner(g.buf, fmt.Sprintf("%s complete in %.1fs, %d pings. Enter continues", last.Name, last.Time, last.Pings), render.ColorDoorOpen)
	}
	g.flush()
}

// flush copies the cell buffer to the terminal
func (g *game) flush() {
	for y := 0; y < g.buf.Height(); y++ {
		for x := 0; x < g.buf.Width(); x++ {
			c := g.buf.At(x, y)
			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(c.Fg.R), int32(c.Fg.G), int32(c.Fg.B))).
				Background(tcell.NewRGBColor(int32(c.Bg.R), int32(c.Bg.G), int32(c.Bg.B)))
			g.screen.SetContent(x, y, c.Rune, nil, style)
		}
	}
	g.screen.Show()
}

func (g *game) logSummary() {
	for i, r := range g.camp.Results {
		log.Printf("result %d: level %d %q %.1fs pings=%d beacons=%d key=%v", i+1, r.ID, r.Name, r.Time, r.Pings, r.Beacons, r.KeyCollected)
	}
}
