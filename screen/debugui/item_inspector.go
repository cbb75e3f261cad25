package debugui

import (
	"fmt"
	"reflect"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/glyphgrid/screen"
)

func NewItemInspectorComponent() ItemInspectorComponent {
	return ItemInspectorComponent{}
}

// Render shows the committed state of selected. Edits are queued as
// actions and show up after the next render.
func (ii *ItemInspectorComponent) Render(s *screen.Screen, selected screen.Handle) {
	if !imgui.BeginV("Item Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	if selected != ii.selected {
		ii.selected = selected
		ii.glyph = selected.Glyph().String()
		ii.lastErr = nil
	}

	if selected.Id().IsZero() {
		imgui.Text("No item selected")
		imgui.End()
		return
	}
	if !selected.Valid() {
		imgui.Text(fmt.Sprintf("%s is gone (stale handle)", selected.Id()))
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Item: %s", selected.Id()))
	imgui.Text(fmt.Sprintf("Layer: %s", selected.Layer()))
	fg, bg := selected.Colors()
	imgui.Text(fmt.Sprintf("Colors: %s on %s", colorName(fg), colorName(bg)))
	imgui.Separator()

	x, y := int32(selected.X()), int32(selected.Y())
	movedX := inputInt("X", &x)
	movedY := inputInt("Y", &y)
	if movedX || movedY {
		ii.lastErr = selected.MoveAbsolute(int(x), int(y))
	}
	w, h := int32(selected.W()), int32(selected.H())
	sizedW := inputInt("W", &w)
	sizedH := inputInt("H", &h)
	if sizedW || sizedH {
		ii.lastErr = selected.ResizeAbsolute(int(w), int(h))
	}

	imgui.Text("Glyph:")
	imgui.SameLine()
	imgui.SetNextItemWidth(60)
	if imgui.InputTextWithHint("##glyph", "", &ii.glyph, imgui.InputTextFlagsNone, nil) {
		if g, ok := firstGlyph(ii.glyph); ok {
			ii.lastErr = selected.SetGlyph(g)
		}
	}

	if imgui.Button("Remove") {
		ii.lastErr = selected.Remove()
	}
	if ii.lastErr != nil {
		imgui.Text(fmt.Sprintf("error: %v", ii.lastErr))
	}

	if imgui.TreeNodeStr("Decorations") {
		renderValue("Decorations", reflect.ValueOf(selected.Decorations()))
		imgui.TreePop()
	}
	if data := selected.UserData(); data != nil && imgui.TreeNodeStr("User Data") {
		renderValue(reflect.TypeOf(data).String(), reflect.ValueOf(data))
		imgui.TreePop()
	}

	imgui.End()
}

func inputInt(name string, v *int32) bool {
	imgui.Text(fmt.Sprintf("%s:", name))
	imgui.SameLine()
	imgui.SetNextItemWidth(150)
	return imgui.InputInt(fmt.Sprintf("##%s", name), v)
}

// firstGlyph returns the glyph of the first rune of s that code page 437
// can draw.
func firstGlyph(s string) (screen.Glyph, bool) {
	for _, r := range s {
		if g, ok := screen.GlyphOf(r); ok {
			return g, true
		}
	}
	return 0, false
}
