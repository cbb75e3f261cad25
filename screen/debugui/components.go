package debugui

import (
	"github.com/plus3/glyphgrid/screen"
)

type ItemBrowserComponent struct {
	cache           *ItemBrowserCache
	selected        screen.Handle
	filterText      string
	filterLayer     *screen.Layer
	maxItemsPerPage int
	currentPage     int
}

type ItemInspectorComponent struct {
	selected screen.Handle
	glyph    string
	lastErr  error
}

type LayerViewerComponent struct {
	selectedLayer *screen.Layer
	showMap       bool
}

type ResolveStatsComponent struct {
	historyFrames int
	frameHistory  []float32
	pendingHist   []float32
	frameIndex    int
	lastErr       error
}
