package main

import (
	"math/rand/v2"

	"github.com/gdamore/tcell/v2"

	"github.com/plus3/glyphgrid/screen"
)

var walkerGlyphs = []rune("@&%$abcdefghijklmnopqrstuvwxyz")

// simulation owns the walkers and is the render handler for every frame.
type simulation struct {
	s       *screen.Screen
	rng     *rand.Rand
	walkers []screen.Handle

	drawn int64
	bumps int64
}

func newSimulation(s *screen.Screen, rng *rand.Rand) *simulation {
	return &simulation{s: s, rng: rng}
}

func (sim *simulation) randomCell() (int, int) {
	cfg := sim.s.Config()
	return sim.rng.IntN(cfg.Width), sim.rng.IntN(cfg.Height)
}

func (sim *simulation) populate(walls, walkers int) error {
	for range walls {
		x, y := sim.randomCell()
		_, err := sim.s.Place(screen.GlyphWall, x, y,
			screen.WithAttributes(screen.Attributes{Flags: screen.AttrAutoWall}),
			screen.WithColors(tcell.ColorGray, tcell.ColorBlack),
		)
		if err != nil {
			return err
		}
	}
	for range walkers {
		if err := sim.spawn(); err != nil {
			return err
		}
	}
	return sim.s.Render(nil)
}

func (sim *simulation) spawn() error {
	x, y := sim.randomCell()
	g := screen.MustGlyph(walkerGlyphs[sim.rng.IntN(len(walkerGlyphs))])
	h, err := sim.s.Place(g, x, y, screen.WithColors(tcell.PaletteColor(sim.rng.IntN(256)), tcell.ColorBlack))
	if err != nil {
		return err
	}
	sim.walkers = append(sim.walkers, h)
	return nil
}

// step queues one frame of actions: most walkers take a step, a few change
// glyph or size, and a few are replaced by fresh ones.
func (sim *simulation) step() error {
	live := sim.walkers[:0]
	respawn := 0
	for _, h := range sim.walkers {
		if !h.Valid() {
			respawn++
			continue
		}
		live = append(live, h)

		var err error
		switch r := sim.rng.IntN(100); {
		case r < 80:
			err = h.Move(sim.rng.IntN(3)-1, sim.rng.IntN(3)-1)
		case r < 90:
			err = h.SetGlyph(screen.MustGlyph(walkerGlyphs[sim.rng.IntN(len(walkerGlyphs))]))
		case r < 95:
			if h.W() <= 1 {
				err = h.Resize(2, 2)
			} else {
				err = h.Resize(-2, -2)
			}
		case r < 97:
			err = h.Remove()
		}
		if err != nil {
			return err
		}
	}
	sim.walkers = live
	for range respawn {
		if err := sim.spawn(); err != nil {
			return err
		}
	}
	return nil
}

func (sim *simulation) Render(screen.DrawData) { sim.drawn++ }

func (sim *simulation) ActionFailure(screen.ActionFailure) { sim.bumps++ }
