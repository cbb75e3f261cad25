package debugui

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/glyphgrid/screen"
)

type ItemInfo struct {
	Handle      screen.Handle
	Id          screen.ItemId
	Layer       screen.Layer
	Rect        screen.Rect
	Glyph       screen.Glyph
	Decorations string
}

type ItemBrowserCache struct {
	items         []ItemInfo
	lastBatch     int64
	built         bool
	sortColumn    int
	sortAscending bool
}

func NewItemBrowserComponent(maxItemsPerPage int) ItemBrowserComponent {
	return ItemBrowserComponent{
		cache: &ItemBrowserCache{
			sortColumn:    0,
			sortAscending: true,
		},
		maxItemsPerPage: maxItemsPerPage,
	}
}

func (ib *ItemBrowserComponent) Render(s *screen.Screen) {
	if !imgui.BeginV("Item Browser", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	ib.rebuildCacheIfNeeded(s)

	imgui.InputTextWithHint("##search", "Search...", &ib.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		ib.filterText = ""
		ib.filterLayer = nil
	}
	if ib.filterLayer != nil {
		imgui.SameLine()
		imgui.Text(fmt.Sprintf("layer: %s", *ib.filterLayer))
	}

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("ItemTable", 5, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Item ID")
		imgui.TableSetupColumn("Layer")
		imgui.TableSetupColumn("Glyph")
		imgui.TableSetupColumn("Footprint")
		imgui.TableSetupColumn("Decorations")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			ib.cache.sortColumn = int(spec.ColumnIndex())
			ib.cache.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			ib.sortItems()
			sortSpecs.SetSpecsDirty(false)
		}

		filtered := ib.filteredItems()
		start, end := ib.page(len(filtered))
		for _, item := range filtered[start:end] {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			if imgui.SelectableBoolV(item.Id.String(), ib.selected == item.Handle, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				ib.selected = item.Handle
			}

			imgui.TableNextColumn()
			imgui.Text(item.Layer.String())

			imgui.TableNextColumn()
			imgui.Text(item.Glyph.String())

			imgui.TableNextColumn()
			imgui.Text(item.Rect.String())

			imgui.TableNextColumn()
			imgui.Text(item.Decorations)
		}

		imgui.EndTable()
	}

	filtered := ib.filteredItems()
	if len(filtered) > ib.maxItemsPerPage {
		totalPages := ib.pages(len(filtered))
		imgui.Text(fmt.Sprintf("Page %d / %d (%d items)", ib.currentPage+1, totalPages, len(filtered)))
		imgui.SameLine()
		if imgui.Button("Prev") && ib.currentPage > 0 {
			ib.currentPage--
		}
		imgui.SameLine()
		if imgui.Button("Next") && ib.currentPage < totalPages-1 {
			ib.currentPage++
		}
	} else {
		imgui.Text(fmt.Sprintf("Total: %d items", len(filtered)))
	}

	imgui.End()
}

// rebuildCacheIfNeeded re-reads the screen once per resolved batch; the
// committed state cannot change in between.
func (ib *ItemBrowserComponent) rebuildCacheIfNeeded(s *screen.Screen) {
	batches := s.Stats().Batches
	if ib.cache.built && ib.cache.lastBatch == batches {
		return
	}
	ib.cache.lastBatch = batches
	ib.cache.built = true
	ib.rebuildCache(s)
}

func (ib *ItemBrowserComponent) rebuildCache(s *screen.Screen) {
	ib.cache.items = ib.cache.items[:0]
	for _, ls := range s.Stats().Layers {
		for h, r := range s.Items(ls.Layer) {
			ib.cache.items = append(ib.cache.items, ItemInfo{
				Handle:      h,
				Id:          h.Id(),
				Layer:       ls.Layer,
				Rect:        r,
				Glyph:       h.Glyph(),
				Decorations: describeDecorations(h.Decorations()),
			})
		}
	}
	if !ib.selected.Valid() {
		ib.selected = screen.Handle{}
	}
	ib.sortItems()
}

func (ib *ItemBrowserComponent) sortItems() {
	slices.SortStableFunc(ib.cache.items, func(a, b ItemInfo) int {
		var c int
		switch ib.cache.sortColumn {
		case 1:
			c = cmp.Compare(a.Layer, b.Layer)
		case 2:
			c = cmp.Compare(a.Glyph, b.Glyph)
		case 3:
			c = cmp.Or(cmp.Compare(a.Rect.Y, b.Rect.Y), cmp.Compare(a.Rect.X, b.Rect.X))
		case 4:
			c = strings.Compare(a.Decorations, b.Decorations)
		default:
			c = cmp.Compare(a.Id.Index(), b.Id.Index())
		}
		if !ib.cache.sortAscending {
			return -c
		}
		return c
	})
}

func (ib *ItemBrowserComponent) filteredItems() []ItemInfo {
	if ib.filterText == "" && ib.filterLayer == nil {
		return ib.cache.items
	}

	filtered := make([]ItemInfo, 0, len(ib.cache.items))
	filterLower := strings.ToLower(ib.filterText)

	for _, item := range ib.cache.items {
		if ib.filterLayer != nil && item.Layer != *ib.filterLayer {
			continue
		}

		if ib.filterText != "" {
			if !strings.Contains(item.Id.String(), filterLower) &&
				!strings.Contains(item.Glyph.String(), ib.filterText) &&
				!strings.Contains(strings.ToLower(item.Decorations), filterLower) {
				continue
			}
		}

		filtered = append(filtered, item)
	}

	return filtered
}

func (ib *ItemBrowserComponent) pages(n int) int {
	return max(1, (n+ib.maxItemsPerPage-1)/ib.maxItemsPerPage)
}

// page clamps the current page to n items and returns its bounds.
func (ib *ItemBrowserComponent) page(n int) (int, int) {
	ib.currentPage = min(ib.currentPage, ib.pages(n)-1)
	start := ib.currentPage * ib.maxItemsPerPage
	return start, min(start+ib.maxItemsPerPage, n)
}

// Selected returns the item picked in the table, or the zero Handle.
func (ib *ItemBrowserComponent) Selected() screen.Handle {
	return ib.selected
}

// Select picks h as if it had been clicked.
func (ib *ItemBrowserComponent) Select(h screen.Handle) {
	ib.selected = h
}

func describeDecorations(d screen.Decorations) string {
	var parts []string
	if d.Blink {
		parts = append(parts, fmt.Sprintf("blink %s", d.BlinkRate))
	}
	var edges []string
	for e, b := range d.Borders {
		if b.Enabled {
			edges = append(edges, screen.Edge(e).String())
		}
	}
	if len(edges) > 0 {
		parts = append(parts, "border "+strings.Join(edges, "/"))
	}
	if d.Wall {
		parts = append(parts, "wall")
	}
	return strings.Join(parts, ", ")
}
