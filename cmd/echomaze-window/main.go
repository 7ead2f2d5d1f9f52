package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/lixenwraith/echomaze/audio"
	"github.com/lixenwraith/echomaze/cue"
	"github.com/lixenwraith/echomaze/level"
	"github.com/lixenwraith/echomaze/parameter"
	"github.com/lixenwraith/echomaze/physics"
	"github.com/lixenwraith/echomaze/render"
	"github.com/lixenwraith/echomaze/session"
)

const (
	cols, rows = 80, 56
	w, h       = cols * parameter.WindowCellPx, rows * parameter.WindowCellPx
)

var (
	levelFlag = flag.Int("level", 1, "Starting level, 1-based")
	packFlag  = flag.String("pack", "", "YAML level pack, built-in progression when empty")
	echoFlag  = flag.String("echo", "echo.yaml", "YAML echo tuning file, defaults when missing")
	debugFlag = flag.Bool("debug", false, "Log to stderr and enable level jump keys")
	audioFlag = flag.Bool("audio", true, "Enable audio output")
	fovFlag   = flag.Float64("fov", 70, "Vertical field of view in degrees")
	scaleFlag = flag.Float64("scale", 1, "Window scale")
)

type Game struct {
	camp   *session.Campaign
	view   *render.MapView
	buf    *render.Buffer
	pixels []byte
	start  time.Time
	last   time.Time
	echoOn bool

	lookX, lookY int
	looking      bool
}

func (g *Game) clock(t time.Time) float64 { return t.Sub(g.start).Seconds() }

func (g *Game) Update() error {
	now := time.Now()
	dt := now.Sub(g.last).Seconds()
	g.last = now
	t := g.clock(now)
	s := g.camp.Session

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if err := g.commands(t); err != nil {
		return err
	}
	if g.camp.Pending {
		return nil
	}

	g.look(s.Controller)
	turn := 0.0
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyQ) {
		turn--
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyE) {
		turn++
	}
	if turn != 0 {
		s.Controller.SetOrientation(s.Controller.Yaw+turn*parameter.ViewTurnSpeed*dt, s.Controller.Pitch)
	}

	in := physics.Input{
		Forward:  ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp),
		Backward: ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown),
		Left:     ebiten.IsKeyPressed(ebiten.KeyA),
		Right:    ebiten.IsKeyPressed(ebiten.KeyD),
		Running:  ebiten.IsKeyPressed(ebiten.KeyShift),
	}
	return g.camp.Update(s.Tick(in, dt, t), t)
}

// look turns the view while the right mouse button is held
func (g *Game) look(c *physics.Controller) {
	held := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	x, y := ebiten.CursorPosition()
	if held && !g.looking {
		g.lookX, g.lookY = x, y
	}
	g.looking = held
	c.SetRotating(held)
	c.ApplyLookDelta(float64(x-g.lookX), float64(y-g.lookY))
	g.lookX, g.lookY = x, y
}

func (g *Game) commands(t float64) error {
	s := g.camp.Session
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		s.Ping(t)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyX) {
		g.echoOn = !g.echoOn
		s.SetEcho(g.echoOn)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		if err := g.camp.Continue(t); err != nil && !errors.Is(err, session.ErrRunFinished) {
			return err
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		return g.camp.Restart(t)
	}
	if *debugFlag {
		for k := ebiten.KeyDigit1; k <= ebiten.KeyDigit9; k++ {
			if inpututil.IsKeyJustPressed(k) {
				g.camp.Results = g.camp.Results[:0]
				return g.camp.Start(int(k-ebiten.KeyDigit1), t)
			}
		}
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	t := g.clock(time.Now())
	s := g.camp.Session
	g.view.Draw(g.buf, s, t, float64(w)/float64(h))
	g.buf.WriteRGBA(g.pixels, parameter.WindowCellPx, parameter.WindowCellPx)
	screen.WritePixels(g.pixels)

	msg := render.HUD(s, t)
	switch {
	case g.camp.Finished:
		msg += fmt.Sprintf("\nRun complete in %.1fs. R restarts, Esc quits", g.camp.TotalTime())
	case g.camp.Pending:
		last := g.camp.Results[len(g.camp.Results)-1]
		msg += fmt.Sprintf("\n%s complete in %.1fs, %d pings. Enter continues", last.Name, last.Time, last.Pings)
	}
	if *debugFlag {
		msg += fmt.Sprintf("\nFPS: %.1f TPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS())
	}
	ebitenutil.DebugPrint(screen, msg)
}

// Layout reports the logical screen size used by Ebiten.
func (g *Game) Layout(_, _ int) (int, int) { return w, h }

func main() {
	flag.Parse()
	if *debugFlag {
		log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	} else {
		log.SetOutput(io.Discard)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "echomaze-window: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		pack *level.Pack
		err  error
	)
	if *packFlag == "" {
		pack, err = level.DefaultPack()
	} else {
		pack, err = level.LoadPack(*packFlag)
	}
	if err != nil {
		return err
	}
	echo, err := cue.LoadEchoParams(*echoFlag)
	if err != nil {
		log.Printf("echo tuning: %v, using defaults", err)
	}

	cfg := audio.LoadAudioConfig()
	if !*audioFlag {
		cfg.Enabled = false
	}
	player, err := audio.NewSpeakerPlayer(cfg)
	if err != nil {
		log.Printf("audio unavailable: %v", err)
	}
	defer player.Close()

	sess := session.New(player, echo)
	sess.FovY = *fovFlag * math.Pi / 180

	view := render.NewMapView()
	view.CellW = 1
	now := time.Now()
	g := &Game{
		camp:   session.NewCampaign(pack, sess, parameter.CellSize),
		view:   view,
		buf:    render.NewBuffer(cols, rows),
		pixels: make([]byte, w*h*4),
		start:  now,
		last:   now,
		echoOn: true,
	}
	if err := g.camp.Start(*levelFlag-1, 0); err != nil {
		return err
	}

	ebiten.SetWindowSize(int(float64(w)**scaleFlag), int(float64(h)**scaleFlag))
	ebiten.SetWindowTitle("echomaze")
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
