package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/glyphgrid/screen"
)

func NewLayerViewerComponent() LayerViewerComponent {
	return LayerViewerComponent{showMap: true}
}

// Render draws the per-layer occupancy table and returns the layer clicked
// this frame, if any.
func (lv *LayerViewerComponent) Render(s *screen.Screen) *screen.Layer {
	if !imgui.BeginV("Layer Viewer", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return nil
	}

	stats := s.Stats()
	var clicked *screen.Layer

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if imgui.BeginTableV("LayerTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Layer")
		imgui.TableSetupColumn("Items")
		imgui.TableSetupColumn("Occupied")
		imgui.TableSetupColumn("Fill")
		imgui.TableHeadersRow()

		for _, ls := range stats.Layers {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			isSelected := lv.selectedLayer != nil && *lv.selectedLayer == ls.Layer
			if imgui.SelectableBoolV(ls.Layer.String(), isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				layer := ls.Layer
				clicked = &layer
				lv.selectedLayer = &layer
			}

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", ls.Items))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d / %d", ls.Occupied, ls.Cells))

			imgui.TableNextColumn()
			fill := fillRatio(ls)
			drawList := imgui.WindowDrawList()
			pos := imgui.CursorScreenPos()
			color := imgui.ColorU32Vec4(imgui.NewVec4(0.2, 0.6, 0.8, 0.6))
			drawList.AddRectFilled(pos, imgui.NewVec2(pos.X+fill*80, pos.Y+10), color)
			imgui.Text(fmt.Sprintf("%.1f%%", fill*100))
		}

		imgui.EndTable()
	}

	imgui.Checkbox("Occupancy map", &lv.showMap)
	if lv.showMap && lv.selectedLayer != nil {
		lv.renderMap(s, *lv.selectedLayer)
	}

	imgui.End()
	return clicked
}

// renderMap draws one small square per occupied cell of layer, tinted by
// the item's foreground color.
func (lv *LayerViewerComponent) renderMap(s *screen.Screen, layer screen.Layer) {
	cfg := s.Config()
	const cell = 4
	drawList := imgui.WindowDrawList()
	origin := imgui.CursorScreenPos()

	frame := imgui.ColorU32Vec4(imgui.NewVec4(0.5, 0.5, 0.5, 1))
	drawList.AddRect(origin, imgui.NewVec2(origin.X+float32(cfg.Width*cell), origin.Y+float32(cfg.Height*cell)), frame)

	for h, r := range s.Items(layer) {
		fg, _ := h.Colors()
		red, green, blue := fg.RGB()
		if red < 0 {
			red, green, blue = 0xff, 0xff, 0xff
		}
		color := imgui.ColorU32Vec4(imgui.NewVec4(float32(red)/255, float32(green)/255, float32(blue)/255, 1))
		lo := imgui.NewVec2(origin.X+float32(r.X*cell), origin.Y+float32(r.Y*cell))
		hi := imgui.NewVec2(lo.X+float32(r.W*cell), lo.Y+float32(r.H*cell))
		drawList.AddRectFilled(lo, hi, color)
	}

	imgui.Dummy(imgui.NewVec2(float32(cfg.Width*cell), float32(cfg.Height*cell)))
}

func fillRatio(ls screen.LayerStats) float32 {
	if ls.Cells == 0 {
		return 0
	}
	return float32(ls.Occupied) / float32(ls.Cells)
}
