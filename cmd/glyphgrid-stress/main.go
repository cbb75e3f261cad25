// Command glyphgrid-stress drives a headless screen with random walkers and
// prints a report of resolve timings and action outcomes.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"go.uber.org/zap"

	"github.com/plus3/glyphgrid/internal/cli"
	"github.com/plus3/glyphgrid/screen"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "TOML or YAML config file.")
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	walkers := flag.Int("walkers", 500, "The number of items moving around the grid.")
	walls := flag.Int("walls", 200, "The number of static auto-walls placed before the run.")
	seed := flag.Uint64("seed", 1, "Random seed.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	cfg, err := cli.Load(*configPath)
	if err != nil {
		return err
	}
	log, err := cli.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	s, err := screen.New(cfg.Screen, screen.WithLogger(log))
	if err != nil {
		return err
	}

	rng := rand.New(rand.NewPCG(*seed, *seed^0x9e3779b97f4a7c15))
	sim := newSimulation(s, rng)

	log.Info("populating screen",
		zap.Int("width", cfg.Screen.Width),
		zap.Int("height", cfg.Screen.Height),
		zap.Int("walkers", *walkers),
		zap.Int("walls", *walls),
	)
	if err := sim.populate(*walls, *walkers); err != nil {
		return err
	}

	report := &Report{
		Duration:       *duration,
		Width:          cfg.Screen.Width,
		Height:         cfg.Screen.Height,
		Walkers:        *walkers,
		Walls:          *walls,
		GCPauseMetrics: *gcPauseMetrics,
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	log.Info("running simulation", zap.Duration("duration", *duration))
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()
Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			if err := sim.step(); err != nil {
				return err
			}
			frameStart := time.Now()
			if err := s.Render(sim); err != nil {
				return err
			}
			report.FrameTime.Samples = append(report.FrameTime.Samples, time.Since(frameStart))
		}
	}

	report.TotalTime = time.Since(startTime)
	report.FrameTime.Finalize()
	report.Screen = s.Stats()
	report.Drawn = sim.drawn
	report.Bumps = sim.bumps
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Info("simulation finished", zap.Int64("frames", report.Screen.Batches))

	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		return fmt.Errorf("generate report: %w", err)
	}
	fmt.Println("--- End of Report ---")
	return nil
}
