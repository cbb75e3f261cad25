package main

import (
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/glyphgrid/screen"
)

func TestSimulationReport(t *testing.T) {
	cfg := screen.DefaultConfig()
	cfg.Width, cfg.Height = 30, 10
	cfg.Debug = true
	s, err := screen.New(cfg)
	require.NoError(t, err)

	sim := newSimulation(s, rand.New(rand.NewPCG(7, 11)))
	require.NoError(t, sim.populate(20, 40))

	report := &Report{Width: 30, Height: 10, Walkers: 40, Walls: 20}
	for range 50 {
		require.NoError(t, sim.step())
		start := time.Now()
		require.NoError(t, s.Render(sim))
		report.FrameTime.Samples = append(report.FrameTime.Samples, time.Since(start))
	}
	report.FrameTime.Finalize()
	report.Screen = s.Stats()
	report.Drawn = sim.drawn
	report.Bumps = sim.bumps

	assert.EqualValues(t, 51, report.Screen.Batches)
	assert.Positive(t, report.Drawn)
	assert.LessOrEqual(t, report.FrameTime.Min, report.FrameTime.Avg)
	assert.LessOrEqual(t, report.FrameTime.Avg, report.FrameTime.Max)

	var out strings.Builder
	require.NoError(t, report.Generate(&out))
	assert.Contains(t, out.String(), "- **Frames:** 51")
	assert.Contains(t, out.String(), "| move |")
	assert.Contains(t, out.String(), "- play: ")
}

func TestStatsFinalizeEmpty(t *testing.T) {
	var s Stats
	s.Finalize()
	assert.Zero(t, s.Avg)
}
