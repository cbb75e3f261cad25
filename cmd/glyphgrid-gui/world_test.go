package main

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/glyphgrid/screen"
)

func newTestWorld(t *testing.T, walkers int) (*screen.Screen, *world) {
	t.Helper()
	cfg := screen.DefaultConfig()
	cfg.Width, cfg.Height = 40, 20
	cfg.Debug = true
	s, err := screen.New(cfg)
	require.NoError(t, err)

	w, err := newWorld(s, rand.New(rand.NewPCG(3, 4)), walkers)
	require.NoError(t, err)
	return s, w
}

func TestWorldStep(t *testing.T) {
	s, w := newTestWorld(t, 12)

	r := screen.RenderFuncs{OnFailure: w.onFailure}
	require.NoError(t, s.Render(r))
	for range 200 {
		require.NoError(t, w.step())
		require.NoError(t, s.Render(r))
	}

	require.NotEmpty(t, w.walkers)
	steps := 0
	for _, wk := range w.walkers {
		assert.True(t, wk.h.Valid())
		steps += wk.data.Steps
		assert.LessOrEqual(t, wk.data.Bumps, wk.data.Steps)
	}
	assert.Positive(t, steps)
}

func TestWorldPlayer(t *testing.T) {
	s, w := newTestWorld(t, 0)
	require.NoError(t, s.Render(nil))
	if !w.player.Valid() || w.player.W() == 0 {
		t.Skip("player spawn was blocked by terrain")
	}
	start := w.player.Rect()

	require.NoError(t, w.movePlayer(1, 0))
	require.NoError(t, s.Render(screen.RenderFuncs{OnFailure: w.onFailure}))

	data := w.player.UserData().(*Walker)
	if data.Bumps == 0 {
		assert.Equal(t, start.X+1, w.player.X())
	} else {
		assert.Equal(t, start, w.player.Rect())
	}

	w.follow()
	view := s.View()
	assert.Equal(t, screen.Camera{X: w.player.X() - view.W/2, Y: w.player.Y() - view.H/2}, s.Camera())
}
