package screen

// Layer is one of the ordered planes making up a screen. Layers are always
// drawn Background first and UI last.
type Layer uint8

const (
	LayerBackground Layer = iota
	LayerPlay
	LayerUI

	LayerCount // always last: number of layers on a full screen
)

func (l Layer) String() string {
	switch l {
	case LayerBackground:
		return "background"
	case LayerPlay:
		return "play"
	case LayerUI:
		return "ui"
	default:
		return "layer(?)"
	}
}

// Valid reports whether l names one of the three layers.
func (l Layer) Valid() bool {
	return l < LayerCount
}

// ParseLayer maps a layer name back to its Layer.
func ParseLayer(name string) (Layer, bool) {
	switch name {
	case "background", "bg":
		return LayerBackground, true
	case "play":
		return LayerPlay, true
	case "ui":
		return LayerUI, true
	}
	return 0, false
}
