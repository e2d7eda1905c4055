package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/sync/errgroup"

	b2rope "github.com/Alexander-r/b2rope.go"
	"github.com/Alexander-r/b2rope.go/internal/config"
)

const DefaultConfigPath = "config/ropedemo.yaml"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfgPath := DefaultConfigPath
	if p := os.Getenv("B2ROPE_CONFIG"); p != "" {
		cfgPath = p
	}
	flag.StringVar(&cfgPath, "config", cfgPath, "path to the demo YAML config")
	headless := flag.Int("headless", 0, "run this many fixed steps without a terminal and log the rope")
	flag.Parse()

	cfg, err := config.LoadDemo(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logOut, closeLog, err := openLog(cfg.LogFile, *headless > 0)
	if err != nil {
		return err
	}
	defer closeLog()

	slog.SetDefault(slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))

	sim, err := newSimulation(cfg)
	if err != nil {
		return fmt.Errorf("creating simulation: %w", err)
	}

	slog.Info("rope demo starting",
		"config", cfgPath,
		"nodes", cfg.Rope.Nodes,
		"obstacles", len(cfg.Obstacles),
		"tick_rate", cfg.TickRate)

	if *headless > 0 {
		return runHeadless(sim, *headless)
	}

	return runTerminal(ctx, cfg, sim)
}

// The terminal belongs to tcell while the demo runs, so logs go to a file or
// nowhere. Headless runs log to stderr.
func openLog(path string, headless bool) (io.Writer, func(), error) {
	if headless {
		return os.Stderr, func() {}, nil
	}
	if path == "" {
		return io.Discard, func() {}, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file %s: %w", path, err)
	}
	return f, func() { _ = f.Close() }, nil
}

func runHeadless(sim *simulation, steps int) error {
	for i := 0; i < steps; i++ {
		sim.rope.Step(sim.stepper.Dt)
	}

	line := b2rope.MakeB2RopeLine()
	sim.rope.ExportLine(&line)

	var bounds b2rope.B2AABB
	line.ComputeBounds(&bounds)

	tail := sim.rope.GetNode(sim.rope.GetNodeCount() - 1).Position
	center := bounds.GetCenter()
	slog.Info("headless run finished",
		"steps", steps,
		"length", line.GetLength(),
		"max_stretch", sim.rope.GetMaxStretch(),
		"tail_x", tail.X,
		"tail_y", tail.Y,
		"bounds_lower", fmt.Sprintf("%.3f,%.3f", bounds.LowerBound.X, bounds.LowerBound.Y),
		"bounds_upper", fmt.Sprintf("%.3f,%.3f", bounds.UpperBound.X, bounds.UpperBound.Y),
		"bounds_center", fmt.Sprintf("%.3f,%.3f", center.X, center.Y))
	return nil
}

func runTerminal(ctx context.Context, cfg config.Demo, sim *simulation) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	screen.EnableMouse()

	clicks, err := newClicker(cfg.Sound)
	if err != nil {
		// Non-fatal, the demo can run without sound
		slog.Warn("audio initialization failed", "err", err)
	}
	defer clicks.Close()

	d := newDemo(cfg, sim, screen, clicks)

	events := make(chan tcell.Event, 100)

	ctx, stop := context.WithCancel(ctx)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		// PollEvent returns nil once the screen is finalized.
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
	g.Go(func() error {
		defer stop()
		defer screen.Fini()
		return d.run(gctx, events)
	})

	err = g.Wait()
	slog.Info("rope demo stopped", "steps", d.steps)
	return err
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
