// Package term draws a screen.Screen into a terminal through tcell, one
// terminal cell per grid cell.
package term

import (
	"math"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/plus3/glyphgrid/screen"
)

// Configure sizes the projection of cfg to the terminal: the camera shows
// as many cells as the terminal has and every cell is one "pixel" wide.
func Configure(cfg *screen.Config, scr tcell.Screen) {
	w, h := scr.Size()
	cfg.CharactersDrawnX, cfg.CharactersDrawnY = w, h
	cfg.WindowWidth, cfg.WindowHeight = w, h
}

// Resize is Configure for a screen that already exists, after the terminal
// changed size.
func Resize(s *screen.Screen, scr tcell.Screen) error {
	w, h := scr.Size()
	if err := s.SetCharactersDrawn(w, h); err != nil {
		return err
	}
	return s.SetWindowSize(w, h)
}

// Painter is a screen.RenderHandler writing into a tcell.Screen.
type Painter struct {
	scr  tcell.Screen
	cell screen.CellSize

	// Elapsed drives blinking. It defaults to the time since the painter was
	// created.
	Elapsed func() time.Duration
	// OnFailure, if set, receives every failed action.
	OnFailure func(screen.ActionFailure)
}

func NewPainter(scr tcell.Screen, cell screen.CellSize) *Painter {
	start := time.Now()
	if cell.W <= 0 || cell.H <= 0 {
		cell = screen.CellSize{W: 1, H: 1}
	}
	return &Painter{
		scr:     scr,
		cell:    cell,
		Elapsed: func() time.Duration { return time.Since(start) },
	}
}

// Frame clears the terminal, renders s into it and shows the result.
func (p *Painter) Frame(s *screen.Screen) error {
	p.cell = s.CellSize()
	p.scr.Clear()
	if err := s.Render(p); err != nil {
		return err
	}
	p.scr.Show()
	return nil
}

func (p *Painter) Render(d screen.DrawData) {
	x := int(math.Round(d.X / p.cell.W))
	y := int(math.Round(d.Y / p.cell.H))
	sw, sh := p.scr.Size()
	if x < 0 || x >= sw || y < 0 || y >= sh {
		return
	}

	style := tcell.StyleDefault.Foreground(d.Fg).Background(d.Bg)
	// A terminal cell has no room for lines around it; the bottom border is
	// the one edge with an equivalent.
	for _, seg := range d.BorderSegments() {
		if seg.Edge == screen.EdgeBottom {
			style = style.Underline(true)
		}
	}
	r := d.Rune
	if !d.Visible(p.Elapsed()) {
		r = ' '
	}
	p.scr.SetContent(x, y, r, nil, style)
}

func (p *Painter) ActionFailure(f screen.ActionFailure) {
	if p.OnFailure != nil {
		p.OnFailure(f)
	}
}
