package screen_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/plus3/glyphgrid/screen"
)

// recorder collects everything a render hands out.
type recorder struct {
	draws    []screen.DrawData
	failures []screen.ActionFailure
}

func (r *recorder) Render(d screen.DrawData) {
	r.draws = append(r.draws, d)
}

func (r *recorder) ActionFailure(f screen.ActionFailure) {
	r.failures = append(r.failures, f)
}

func (r *recorder) reset() {
	r.draws = r.draws[:0]
	r.failures = r.failures[:0]
}

// newScreen builds a debug-mode screen of w×h cells, 8×16 pixels each, with
// the whole grid in view.
func newScreen(t testing.TB, w, h int, mutate ...func(*screen.Config)) *screen.Screen {
	t.Helper()
	cfg := screen.DefaultConfig()
	cfg.Width, cfg.Height = w, h
	cfg.CharactersDrawnX, cfg.CharactersDrawnY = w, h
	cfg.WindowWidth, cfg.WindowHeight = w*8, h*16
	cfg.Debug = true
	for _, m := range mutate {
		m(&cfg)
	}
	s, err := screen.New(cfg)
	require.NoError(t, err)
	return s
}

func permissive(cfg *screen.Config) { cfg.Debug = false }

func uiOnly(cfg *screen.Config) { cfg.UIOnly = true }

func occupant(t testing.TB, s *screen.Screen, layer screen.Layer, x, y int) screen.ItemId {
	t.Helper()
	h, err := s.OccupantAt(layer, x, y)
	require.NoError(t, err)
	return h.Id()
}

func render(t testing.TB, s *screen.Screen, rec *recorder) {
	t.Helper()
	var h screen.RenderHandler
	if rec != nil {
		h = rec
	}
	require.NoError(t, s.Render(h))
}
