package main

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/plus3/glyphgrid/screen"
)

var pastelColors = [][3]int32{
	{255, 179, 186},
	{179, 229, 252},
	{255, 223, 186},
	{186, 255, 201},
	{255, 200, 221},
	{186, 225, 255},
	{255, 255, 186},
	{217, 186, 255},
}

// Walker is the user data of every wandering item; the inspector shows it.
type Walker struct {
	Name  string
	Steps int
	Bumps int
}

type walker struct {
	h    screen.Handle
	data *Walker
	// every is how many ticks pass between steps.
	every int
}

// world is a field of blinking crystals and bordered huts with walkers
// wandering between them.
type world struct {
	s       *screen.Screen
	rng     *rand.Rand
	walkers []walker
	player  screen.Handle
	tick    int
}

func newWorld(s *screen.Screen, rng *rand.Rand, walkers int) (*world, error) {
	w := &world{s: s, rng: rng}
	cfg := s.Config()

	for i := range cfg.Width * cfg.Height / 40 {
		x, y := rng.IntN(cfg.Width), rng.IntN(cfg.Height)
		var err error
		if i%4 == 0 {
			_, err = s.Place(screen.MustGlyph('*'), x, y,
				screen.WithColors(tcell.ColorAqua, tcell.ColorBlack),
				screen.WithAttributes(screen.Attributes{Flags: screen.AttrBlinking, BlinkRate: 700 * time.Millisecond}),
			)
		} else {
			_, err = s.Place(screen.MustGlyph('^'), x, y, screen.WithSize(2, 2),
				screen.WithColors(tcell.ColorOlive, tcell.ColorBlack),
				screen.WithAttributes(screen.Attributes{
					Flags:       screen.AttrBorderAll,
					BorderColor: tcell.ColorGray,
				}),
			)
		}
		if err != nil {
			return nil, err
		}
	}

	for i := range walkers {
		c := pastelColors[i%len(pastelColors)]
		data := &Walker{Name: fmt.Sprintf("walker-%d", i)}
		h, err := s.Place(screen.MustGlyph('o'), rng.IntN(cfg.Width), rng.IntN(cfg.Height),
			screen.WithColors(tcell.NewRGBColor(c[0], c[1], c[2]), tcell.ColorBlack),
			screen.WithUserData(data),
		)
		if err != nil {
			return nil, err
		}
		w.walkers = append(w.walkers, walker{h: h, data: data, every: 10 + rng.IntN(30)})
	}

	var err error
	w.player, err = s.Place(screen.MustGlyph('@'), cfg.Width/2, cfg.Height/2,
		screen.WithColors(tcell.ColorYellow, tcell.ColorBlack),
		screen.WithAttributes(screen.Attributes{Flags: screen.AttrBorderBottom, BorderBottomColor: tcell.ColorYellow}),
		screen.WithUserData(&Walker{Name: "player"}),
	)
	if err != nil {
		return nil, err
	}
	return w, nil
}

// step queues the walkers' moves for this tick. Walkers whose placement
// failed are dropped once their handle goes stale.
func (w *world) step() error {
	w.tick++
	live := w.walkers[:0]
	for _, wk := range w.walkers {
		if !wk.h.Valid() {
			continue
		}
		live = append(live, wk)
		if w.tick%wk.every != 0 {
			continue
		}
		if err := wk.h.Move(w.rng.IntN(3)-1, w.rng.IntN(3)-1); err != nil {
			return err
		}
		wk.data.Steps++
	}
	w.walkers = live
	return nil
}

// movePlayer queues a player step and keeps the camera on it.
func (w *world) movePlayer(dx, dy int) error {
	if !w.player.Valid() {
		return nil
	}
	return w.player.Move(dx, dy)
}

func (w *world) follow() {
	if !w.player.Valid() {
		return
	}
	view := w.s.View()
	w.s.SetCamera(w.player.X()-view.W/2, w.player.Y()-view.H/2)
}

func (w *world) onFailure(f screen.ActionFailure) {
	if data, ok := f.Item.UserData().(*Walker); ok && f.Kind == screen.ActionMove {
		data.Bumps++
	}
}
