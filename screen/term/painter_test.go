package term_test

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/glyphgrid/screen"
	"github.com/plus3/glyphgrid/screen/term"
)

func newSim(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	sim := tcell.NewSimulationScreen("")
	require.NoError(t, sim.Init())
	sim.SetSize(w, h)
	t.Cleanup(sim.Fini)
	return sim
}

func runeAt(scr tcell.Screen, x, y int) rune {
	r, _, _, _ := scr.GetContent(x, y)
	return r
}

func TestPainter(t *testing.T) {
	sim := newSim(t, 12, 6)

	cfg := screen.DefaultConfig()
	cfg.Width, cfg.Height = 20, 20
	cfg.Debug = true
	term.Configure(&cfg, sim)
	assert.Equal(t, 12, cfg.CharactersDrawnX)

	s, err := screen.New(cfg)
	require.NoError(t, err)

	_, err = s.Place(screen.MustGlyph('@'), 2, 1, screen.WithColors(tcell.ColorRed, tcell.ColorBlack))
	require.NoError(t, err)
	_, err = s.Place(screen.GlyphBlock, 10, 4, screen.WithSize(3, 3))
	require.NoError(t, err)
	_, err = s.Place(screen.MustGlyph('x'), 2, 1)
	require.NoError(t, err)

	p := term.NewPainter(sim, s.CellSize())
	var failed []screen.ActionFailure
	p.OnFailure = func(f screen.ActionFailure) { failed = append(failed, f) }
	require.NoError(t, p.Frame(s))

	assert.Len(t, failed, 1)
	assert.Equal(t, '@', runeAt(sim, 2, 1))
	_, _, style, _ := sim.GetContent(2, 1)
	fg, _, _ := style.Decompose()
	assert.Equal(t, tcell.ColorRed, fg)

	// The 3×3 block is clipped at the terminal edge.
	assert.Equal(t, '█', runeAt(sim, 10, 4))
	assert.Equal(t, '█', runeAt(sim, 11, 5))

	t.Run("camera", func(t *testing.T) {
		s.SetCamera(1, 1)
		require.NoError(t, p.Frame(s))
		assert.Equal(t, '@', runeAt(sim, 1, 0))
		assert.Equal(t, ' ', runeAt(sim, 2, 1))
	})

	t.Run("bottom border underlines the last row", func(t *testing.T) {
		s.SetCamera(0, 0)
		_, err := s.Place(screen.MustGlyph('#'), 5, 2, screen.WithSize(2, 2),
			screen.WithAttributes(screen.Attributes{Flags: screen.AttrBorderBottom}))
		require.NoError(t, err)
		require.NoError(t, p.Frame(s))

		for _, c := range [][2]int{{5, 2}, {6, 2}, {5, 3}, {6, 3}} {
			assert.Equal(t, '#', runeAt(sim, c[0], c[1]))
			_, _, style, _ := sim.GetContent(c[0], c[1])
			_, _, attrs := style.Decompose()
			assert.Equal(t, c[1] == 3, attrs&tcell.AttrUnderline != 0, "cell (%d,%d)", c[0], c[1])
		}
	})

	t.Run("blink", func(t *testing.T) {
		s.SetCamera(0, 0)
		_, err := s.Place(screen.MustGlyph('!'), 0, 0, screen.WithAttributes(screen.Attributes{
			Flags:     screen.AttrBlinking,
			BlinkRate: 500 * time.Millisecond,
		}))
		require.NoError(t, err)

		p.Elapsed = func() time.Duration { return 100 * time.Millisecond }
		require.NoError(t, p.Frame(s))
		assert.Equal(t, '!', runeAt(sim, 0, 0))

		p.Elapsed = func() time.Duration { return 700 * time.Millisecond }
		require.NoError(t, p.Frame(s))
		assert.Equal(t, ' ', runeAt(sim, 0, 0))
	})
}

func TestResize(t *testing.T) {
	sim := newSim(t, 30, 10)
	s, err := screen.New(screen.DefaultConfig())
	require.NoError(t, err)
	require.NoError(t, term.Resize(s, sim))
	assert.Equal(t, screen.Rect{W: 30, H: 10}, s.View())
	assert.Equal(t, screen.CellSize{W: 1, H: 1}, s.CellSize())
}
