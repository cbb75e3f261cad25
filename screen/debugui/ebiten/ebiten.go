// Package ebiten provides Dear ImGui backend integration for the Ebiten game
// engine, for use with the screen inspector windows.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/plus3/glyphgrid/screen"
	"github.com/plus3/glyphgrid/screen/debugui"
)

// ImguiBackend wraps the Ebiten-specific Dear ImGui backend implementation.
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend
}

// NewImguiBackend creates the backend and its window. The ImGui ini file is
// disabled.
func NewImguiBackend(title string, width, height int) *ImguiBackend {
	b := ebitenbackend.NewEbitenBackend()
	b.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")
	return &ImguiBackend{EbitenBackend: b}
}

// Overlay draws an Inspector over a screen inside an Ebiten game loop.
type Overlay struct {
	Backend   *ImguiBackend
	Inspector *debugui.Inspector
}

// Update runs one ImGui frame. Call it from ebiten.Game.Update, before
// screen.Render, since the inspector may queue actions.
func (o *Overlay) Update(s *screen.Screen) {
	o.Backend.BeginFrame()
	o.Inspector.Render(s)
	o.Backend.EndFrame()
}

// Draw paints the ImGui frame on top of dst.
func (o *Overlay) Draw(dst *ebiten.Image) {
	o.Backend.Draw(dst)
}

func (o *Overlay) Layout(outsideWidth, outsideHeight int) {
	o.Backend.Layout(outsideWidth, outsideHeight)
}
