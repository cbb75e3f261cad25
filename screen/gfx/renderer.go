// Package gfx draws a screen.Screen onto an Ebiten image with the Go Mono
// font, one glyph per occupied cell. Borders are drawn as vector lines
// along the cell edges.
package gfx

import (
	"bytes"
	"image/color"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/plus3/glyphgrid/screen"
)

var (
	Black = color.RGBA{0x00, 0x00, 0x00, 0xff}
	White = color.RGBA{0xff, 0xff, 0xff, 0xff}
)

// monoAdvance is the advance of every Go Mono glyph in em.
const monoAdvance = 0.6

// NewMonoSource loads the embedded Go Mono face.
func NewMonoSource() (*text.GoTextFaceSource, error) {
	return text.NewGoTextFaceSource(bytes.NewReader(gomono.TTF))
}

// FaceSize is the largest font size whose glyphs fit in one cell.
func FaceSize(cell screen.CellSize) float64 {
	return math.Min(cell.H*0.9, cell.W/monoAdvance)
}

// RGBA converts a tcell color. Default and invalid colors become fallback.
func RGBA(c tcell.Color, fallback color.RGBA) color.RGBA {
	if !c.Valid() {
		return fallback
	}
	r, g, b := c.RGB()
	if r < 0 || g < 0 || b < 0 {
		return fallback
	}
	return color.RGBA{uint8(r), uint8(g), uint8(b), 0xff}
}

// Renderer is a screen.RenderHandler drawing onto the image passed to Frame.
type Renderer struct {
	src  *text.GoTextFaceSource
	face *text.GoTextFace
	cell screen.CellSize
	dst  *ebiten.Image

	// BorderWidth is the stroke width of border lines in pixels.
	BorderWidth float32
	// Elapsed drives blinking. It defaults to the time since the renderer was
	// created.
	Elapsed func() time.Duration
	// OnFailure, if set, receives every failed action.
	OnFailure func(screen.ActionFailure)
}

func New(src *text.GoTextFaceSource) *Renderer {
	start := time.Now()
	return &Renderer{
		src:         src,
		BorderWidth: 1,
		Elapsed:     func() time.Duration { return time.Since(start) },
	}
}

// Frame renders s into dst. It must be called from ebiten.Game.Draw.
func (r *Renderer) Frame(dst *ebiten.Image, s *screen.Screen) error {
	r.dst = dst
	defer func() { r.dst = nil }()

	if cell := s.CellSize(); cell != r.cell || r.face == nil {
		r.cell = cell
		r.face = &text.GoTextFace{Source: r.src, Size: FaceSize(cell)}
	}
	return s.Render(r)
}

func (r *Renderer) Render(d screen.DrawData) {
	if r.dst == nil {
		return
	}

	fg := RGBA(d.Fg, White)
	vector.DrawFilledRect(r.dst, float32(d.X), float32(d.Y), float32(d.W), float32(d.H), RGBA(d.Bg, Black), false)

	if d.Visible(r.Elapsed()) && d.Glyph != screen.GlyphSpace && d.Rune != 0 {
		op := &text.DrawOptions{}
		op.GeoM.Translate(d.X+d.W/2, d.Y+d.H/2)
		op.PrimaryAlign = text.AlignCenter
		op.SecondaryAlign = text.AlignCenter
		op.ColorScale.ScaleWithColor(fg)
		text.Draw(r.dst, string(d.Rune), r.face, op)
	}

	for _, seg := range d.BorderSegments() {
		vector.StrokeLine(r.dst,
			float32(seg.X0), float32(seg.Y0), float32(seg.X1), float32(seg.Y1),
			r.BorderWidth, RGBA(seg.Color, fg), false)
	}
}

func (r *Renderer) ActionFailure(f screen.ActionFailure) {
	if r.OnFailure != nil {
		r.OnFailure(f)
	}
}
