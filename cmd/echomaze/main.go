package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/echomaze/audio"
	"github.com/lixenwraith/echomaze/cue"
	"github.com/lixenwraith/echomaze/level"
	"github.com/lixenwraith/echomaze/parameter"
	"github.com/lixenwraith/echomaze/session"
)

var (
	levelFlag = flag.Int("level", 1, "Starting level, 1-based")
	packFlag  = flag.String("pack", "", "YAML level pack, built-in progression when empty")
	echoFlag  = flag.String("echo", "echo.yaml", "YAML echo tuning file, defaults when missing")
	debugFlag = flag.Bool("debug", false, "Write logs/echomaze.log and enable level jump keys")
	audioFlag = flag.Bool("audio", true, "Enable audio output")
	fovFlag   = flag.Float64("fov", 70, "Vertical field of view in degrees")
)

func main() {
	flag.Parse()

	logFile := setupLogging(*debugFlag)
	if logFile != nil {
		defer logFile.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx)
	stop()
	if err != nil {
		log.Printf("fatal: %v", err)
		fmt.Fprintf(os.Stderr, "echomaze: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	pack, err := loadPack(*packFlag)
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
		// Non-fatal, the game runs silent
		log.Printf("audio unavailable: %v", err)
	}
	defer player.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}

	sess := session.New(player, echo)
	sess.FovY = *fovFlag * math.Pi / 180
	camp := session.NewCampaign(pack, sess, parameter.CellSize)
	g := newGame(screen, camp, *debugFlag)
	if err := camp.Start(*levelFlag-1, g.clock(time.Now())); err != nil {
		screen.Fini()
		return err
	}

	events := make(chan tcell.Event, 100)
	eg, gctx := errgroup.WithContext(ctx)

	// PollEvent returns nil once the screen is finalized
	eg.Go(func() error {
		defer crashGuard(screen)
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return nil
			}
			select {
			case events <- ev:
			case <-gctx.Done():
				return nil
			}
		}
	})

	eg.Go(func() error {
		defer crashGuard(screen)
		defer screen.Fini()
		ticker := time.NewTicker(parameter.FrameInterval)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case ev := <-events:
				ok, err := g.handle(ev)
				if err != nil {
					return err
				}
				if !ok {
					g.logSummary()
					return nil
				}
			case now := <-ticker.C:
				if err := g.frame(now); err != nil {
					return err
				}
			}
		}
	})

	return eg.Wait()
}

// crashGuard restores the terminal before reporting a panic
func crashGuard(screen tcell.Screen) {
	if r := recover(); r != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "\r\nECHOMAZE CRASHED: %v\r\nStack Trace:\r\n%s\r\n", r, debug.Stack())
		os.Exit(1)
	}
}

func loadPack(path string) (*level.Pack, error) {
	if path == "" {
		return level.DefaultPack()
	}
	return level.LoadPack(path)
}
