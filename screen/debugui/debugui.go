// Package debugui provides Dear ImGui inspector windows for a screen.Screen:
// a layer viewer, an item browser, an item inspector and resolve statistics.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/glyphgrid/screen"
)

// InputState tracks Dear ImGui's input capture state. Use it to decide
// whether game input should be ignored this frame.
type InputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// Inspector bundles every debug window. Render it between the ImGui
// backend's BeginFrame and EndFrame, outside screen.Render: the inspector
// queues actions.
type Inspector struct {
	Layers    LayerViewerComponent
	Browser   ItemBrowserComponent
	Item      ItemInspectorComponent
	Stats     ResolveStatsComponent
	Input     InputState
	Hidden    bool
	frameTime *FrameTimer
}

func NewInspector() *Inspector {
	return &Inspector{
		Layers:    NewLayerViewerComponent(),
		Browser:   NewItemBrowserComponent(100),
		Item:      NewItemInspectorComponent(),
		Stats:     NewResolveStatsComponent(120),
		frameTime: NewFrameTimer(),
	}
}

func (in *Inspector) Render(s *screen.Screen) {
	io := imgui.CurrentIO()
	in.Input.WantCaptureMouse = io.WantCaptureMouse()
	in.Input.WantCaptureKeyboard = io.WantCaptureKeyboard()

	dt := in.frameTime.GetDeltaTime()
	if in.Hidden {
		return
	}

	if layer := in.Layers.Render(s); layer != nil {
		in.Browser.filterLayer = layer
	}
	in.Browser.Render(s)
	in.Item.Render(s, in.Browser.Selected())
	in.Stats.Render(s, dt)
}
