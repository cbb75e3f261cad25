package main

import (
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/plus3/glyphgrid/screen"
	"github.com/plus3/glyphgrid/screen/term"
)

type bumper interface {
	Bump()
}

// demo is a walled room with a player, a pillar and a bump counter on the
// UI layer.
type demo struct {
	s       *screen.Screen
	painter *term.Painter
	sound   bumper

	player  screen.Handle
	counter []screen.Handle
	bumps   int
	shown   int
}

func newDemo(s *screen.Screen, painter *term.Painter, snd *sound) (*demo, error) {
	cfg := s.Config()
	if cfg.Width < 8 || cfg.Height < 6 {
		return nil, fmt.Errorf("room needs at least 8x6 cells, got %dx%d", cfg.Width, cfg.Height)
	}

	d := &demo{s: s, painter: painter}
	if snd != nil {
		d.sound = snd
	}
	painter.OnFailure = d.onFailure

	w, h := cfg.Width, cfg.Height-1
	wall := func(x, y int) error {
		_, err := s.Place(screen.GlyphWall, x, y,
			screen.WithColors(tcell.ColorSilver, tcell.ColorBlack),
			screen.WithAttributes(screen.Attributes{Flags: screen.AttrAutoWall}),
		)
		return err
	}
	var errs []error
	for x := range w {
		errs = append(errs, wall(x, 0), wall(x, h-1))
	}
	for y := 1; y < h-1; y++ {
		errs = append(errs, wall(0, y), wall(w-1, y))
	}
	for y := 1; y < h/2-1; y++ {
		errs = append(errs, wall(w/4, y))
	}
	if !cfg.UIOnly {
		for y := 1; y < h-1; y++ {
			for x := 1; x < w-1; x++ {
				_, err := s.Place(screen.MustGlyph('·'), x, y,
					screen.WithLayer(screen.LayerBackground),
					screen.WithColors(tcell.ColorDimGray, tcell.ColorBlack),
				)
				errs = append(errs, err)
			}
		}
	}

	var err error
	d.player, err = s.Place(screen.MustGlyph('@'), w/2, h/2,
		screen.WithColors(tcell.ColorYellow, tcell.ColorBlack),
	)
	errs = append(errs, err)

	label := fmt.Sprintf("bumps:%03d", 0)
	for i, r := range label {
		hh, err := s.Place(screen.MustGlyph(r), i, cfg.Height-1, screen.WithLayer(screen.LayerUI))
		errs = append(errs, err)
		if r >= '0' && r <= '9' {
			d.counter = append(d.counter, hh)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("build room: %w", err)
	}
	return d, nil
}

func (d *demo) onFailure(f screen.ActionFailure) {
	if f.Item != d.player {
		return
	}
	d.bumps++
	if d.sound != nil {
		d.sound.Bump()
	}
}

// frame queues the counter update, points the camera at the player and
// draws.
func (d *demo) frame() error {
	if d.bumps != d.shown {
		digits := fmt.Sprintf("%03d", d.bumps%1000)
		for i, hh := range d.counter {
			if err := hh.SetGlyph(screen.MustGlyph(rune(digits[i]))); err != nil {
				return err
			}
		}
		d.shown = d.bumps
	}

	cfg, view := d.s.Config(), d.s.View()
	d.s.SetCamera(
		follow(d.player.X(), view.W, cfg.Width),
		follow(d.player.Y(), view.H, cfg.Height),
	)
	return d.painter.Frame(d.s)
}

// follow centres pos in a view of size n over a world of size total.
func follow(pos, n, total int) int {
	if total <= n {
		return 0
	}
	return max(0, min(pos-n/2, total-n))
}

// handleKey applies one key press and reports whether the demo should go on.
func (d *demo) handleKey(ev *tcell.EventKey) (bool, error) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false, nil
	case tcell.KeyLeft:
		return true, d.player.Move(-1, 0)
	case tcell.KeyRight:
		return true, d.player.Move(1, 0)
	case tcell.KeyUp:
		return true, d.player.Move(0, -1)
	case tcell.KeyDown:
		return true, d.player.Move(0, 1)
	case tcell.KeyRune:
	default:
		return true, nil
	}

	switch ev.Rune() {
	case 'q':
		return false, nil
	case 'h':
		return true, d.player.Move(-1, 0)
	case 'l':
		return true, d.player.Move(1, 0)
	case 'k':
		return true, d.player.Move(0, -1)
	case 'j':
		return true, d.player.Move(0, 1)
	case '+':
		return true, d.player.Resize(2, 2)
	case '-':
		return true, d.player.Resize(-2, -2)
	case 'u':
		_, err := d.s.RevertBatch()
		return true, err
	case 'r':
		_, err := d.s.ReapplyBatch()
		return true, err
	}
	return true, nil
}
