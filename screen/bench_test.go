package screen_test

import (
	"testing"

	"github.com/plus3/glyphgrid/screen"
)

func BenchmarkPlaceRender(b *testing.B) {
	s := newScreen(b, 80, 25)
	g := screen.MustGlyph('.')

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for y := range 25 {
			for x := range 80 {
				_, _ = s.Place(g, x, y, screen.WithLayer(screen.LayerBackground))
			}
		}
		_ = s.Render(nil)
		_ = s.Clear()
	}
}

func BenchmarkMoveRender(b *testing.B) {
	s := newScreen(b, 80, 25)
	handles := make([]screen.Handle, 0, 200)
	for i := range 200 {
		h, _ := s.Place(screen.MustGlyph('o'), (i%40)*2, i/40*2)
		handles = append(handles, h)
	}
	_ = s.Render(nil)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		d := 1 - 2*(i%2)
		for _, h := range handles {
			_ = h.Move(d, 0)
		}
		_ = s.Render(nil)
	}
}

func BenchmarkProject(b *testing.B) {
	s := newScreen(b, 80, 25)
	for y := range 25 {
		for x := range 80 {
			_, _ = s.Place(screen.GlyphBlock, x, y, screen.WithLayer(screen.LayerBackground))
		}
	}
	_ = s.Render(nil)
	var n int
	h := screen.RenderFuncs{OnRender: func(screen.DrawData) { n++ }}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = s.Render(h)
	}
}
