package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/alecthomas/kong"
	_ "github.com/silbinarywolf/preferdiscretegpu"
	"github.com/sudorandom/urg-viewer/pkg/display"
	"github.com/sudorandom/urg-viewer/pkg/scanview"
	"github.com/sudorandom/urg-viewer/pkg/urglog"
)

type CLI struct {
	Log        string  `arg:"" optional:"" default:"urglog" help:"Scan log to replay."`
	Width      int     `default:"800" help:"Image width in pixels."`
	Height     int     `default:"800" help:"Image height in pixels."`
	CellSize   float64 `default:"0.05" help:"Meters per pixel."`
	RingRadius float64 `default:"0.5" help:"Radius in meters of the reference ring."`
	TPS        int     `name:"tps" default:"30" help:"Frames per second."`
	CaptureDir string  `help:"Write every frame as PNG into this directory."`
	Headless   bool    `help:"Do not open a window; requires --capture-dir."`
	Dump       bool    `help:"Print every decoded record before playback."`
	Title      string  `default:"Image with Plots" help:"Window title."`
}

func (c *CLI) Validate() error {
	if c.Headless && c.CaptureDir == "" {
		return errors.New("--headless requires --capture-dir")
	}
	if c.TPS <= 0 {
		return errors.New("--tps must be positive")
	}
	return nil
}

func main() {
	var cli CLI
	kong.Parse(&cli,
		kong.Name("urg-viewer"),
		kong.Description("Replay a laser range-finder scan log as a top-down animation."),
		kong.UsageOnError(),
	)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	if err := run(&cli); err != nil {
		log.Fatalf("urg-viewer: %v", err)
	}
}

func run(cli *CLI) error {
	scans, err := urglog.ReadFile(cli.Log)
	if err != nil {
		return err
	}
	if cli.Dump {
		for _, s := range scans {
			if err := s.Dump(os.Stdout); err != nil {
				return err
			}
		}
	}

	cfg := scanview.DefaultConfig()
	cfg.Width, cfg.Height = cli.Width, cli.Height
	cfg.CellSize, cfg.RingRadius = cli.CellSize, cli.RingRadius
	scene, err := scanview.NewScene(cfg)
	if err != nil {
		return fmt.Errorf("invalid scene: %w", err)
	}
	player := scanview.NewPlayer(scene, scans)

	var capture scanview.Sink
	if cli.CaptureDir != "" {
		c, err := scanview.NewCaptureSink(cli.CaptureDir)
		if err != nil {
			return err
		}
		capture = c
		defer func() { log.Printf("[capture] Wrote %d frames to %s", c.Frames(), c.Dir) }()
	}

	if cli.Headless {
		log.Println("Running in HEADLESS mode (capture only).")
		return player.Run(capture)
	}

	win := display.NewWindow(cfg.Width, cfg.Height)
	var sink scanview.Sink = win
	if capture != nil {
		sink = scanview.Tee(win, capture)
	}

	replayErr := make(chan error, 1)
	go func() {
		err := player.Run(sink)
		win.Finish()
		replayErr <- err
	}()

	if err := win.Run(cli.Title, cli.TPS); err != nil {
		return err
	}
	if err := <-replayErr; err != nil && !errors.Is(err, display.ErrClosed) {
		return err
	}
	return nil
}
