package debugui

import (
	"reflect"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/glyphgrid/screen"
)

func newTestScreen(t *testing.T) *screen.Screen {
	t.Helper()
	cfg := screen.DefaultConfig()
	cfg.Width, cfg.Height = 10, 5
	cfg.Debug = true
	s, err := screen.New(cfg)
	require.NoError(t, err)
	return s
}

func place(t *testing.T, s *screen.Screen, r rune, x, y int, opts ...screen.PlaceOption) screen.Handle {
	t.Helper()
	h, err := s.Place(screen.MustGlyph(r), x, y, opts...)
	require.NoError(t, err)
	return h
}

func TestItemBrowserCache(t *testing.T) {
	s := newTestScreen(t)
	a := place(t, s, 'x', 4, 0)
	place(t, s, 'b', 1, 2, screen.WithLayer(screen.LayerUI))
	place(t, s, '#', 0, 4, screen.WithAttributes(screen.Attributes{Flags: screen.AttrAutoWall | screen.AttrBorderTop}))
	require.NoError(t, s.Render(nil))

	ib := NewItemBrowserComponent(2)
	ib.rebuildCacheIfNeeded(s)
	require.Len(t, ib.cache.items, 3)
	assert.Equal(t, a, ib.cache.items[0].Handle, "sorted by item index")

	t.Run("cached until the next batch", func(t *testing.T) {
		require.NoError(t, a.Move(1, 0))
		ib.rebuildCacheIfNeeded(s)
		assert.Equal(t, 4, ib.cache.items[0].Rect.X)

		require.NoError(t, s.Render(nil))
		ib.rebuildCacheIfNeeded(s)
		assert.Equal(t, 5, ib.cache.items[0].Rect.X)
	})

	t.Run("filter by layer", func(t *testing.T) {
		ui := screen.LayerUI
		ib.filterLayer = &ui
		got := ib.filteredItems()
		require.Len(t, got, 1)
		assert.Equal(t, screen.MustGlyph('b'), got[0].Glyph)
		ib.filterLayer = nil
	})

	t.Run("filter by text", func(t *testing.T) {
		ib.filterText = "wall"
		got := ib.filteredItems()
		require.Len(t, got, 1)
		assert.Equal(t, "border top, wall", got[0].Decorations)

		ib.filterText = "x"
		got = ib.filteredItems()
		require.Len(t, got, 1)
		assert.Equal(t, a, got[0].Handle)
		ib.filterText = ""
	})

	t.Run("sort by footprint descending", func(t *testing.T) {
		ib.cache.sortColumn = 3
		ib.cache.sortAscending = false
		ib.sortItems()
		ys := []int{}
		for _, it := range ib.cache.items {
			ys = append(ys, it.Rect.Y)
		}
		assert.Equal(t, []int{4, 2, 0}, ys)
	})

	t.Run("paging", func(t *testing.T) {
		assert.Equal(t, 2, ib.pages(3))
		ib.currentPage = 5
		start, end := ib.page(3)
		assert.Equal(t, 1, ib.currentPage)
		assert.Equal(t, [2]int{2, 3}, [2]int{start, end})

		start, end = ib.page(0)
		assert.Equal(t, [2]int{0, 0}, [2]int{start, end})
	})

	t.Run("stale selection is dropped", func(t *testing.T) {
		ib.Select(a)
		require.NoError(t, a.Remove())
		require.NoError(t, s.Render(nil))
		ib.rebuildCacheIfNeeded(s)
		// Still alive: released at the next render.
		assert.Equal(t, a, ib.Selected())

		require.NoError(t, s.Render(nil))
		ib.rebuildCacheIfNeeded(s)
		assert.Equal(t, screen.Handle{}, ib.Selected())
		assert.Len(t, ib.cache.items, 2)
	})
}

func TestDescribeDecorations(t *testing.T) {
	assert.Empty(t, describeDecorations(screen.Decorations{}))

	d, issues := screen.BuildDecorations(screen.Attributes{
		Flags:     screen.AttrBlinking | screen.AttrBorderLeft | screen.AttrBorderRight,
		BlinkRate: 250 * time.Millisecond,
	}, tcell.ColorBlack)
	require.Empty(t, issues)
	assert.Equal(t, "blink 250ms, border right/left", describeDecorations(d))
}

func TestFirstGlyph(t *testing.T) {
	g, ok := firstGlyph("€@")
	require.True(t, ok)
	assert.Equal(t, screen.MustGlyph('@'), g)

	_, ok = firstGlyph("")
	assert.False(t, ok)
}

type userData struct {
	Name   string
	HP     int
	Tint   tcell.Color
	hidden bool
	Tags   []string
	Next   *userData
}

func TestReflectionCache(t *testing.T) {
	rc := NewReflectionCache()
	fields := rc.GetFields(reflect.TypeFor[userData]())

	names := []string{}
	for _, f := range fields {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"Name", "HP", "Tint", "Tags", "Next"}, names)
	assert.True(t, fields[4].IsPointer)

	again := rc.GetFields(reflect.TypeFor[userData]())
	assert.Equal(t, &fields[0], &again[0], "cached slice is reused")

	assert.Empty(t, rc.GetFields(reflect.TypeFor[int]()))
}

func TestFormatValue(t *testing.T) {
	u := userData{Name: "orc", HP: 7, Tint: tcell.ColorRed, Tags: []string{"a", "b"}}
	v := reflect.ValueOf(u)

	assert.Equal(t, "orc", formatValue(v.FieldByName("Name")))
	assert.Equal(t, "7", formatValue(v.FieldByName("HP")))
	assert.Equal(t, "red", formatValue(v.FieldByName("Tint")))
	assert.Equal(t, "[2 items]", formatValue(v.FieldByName("Tags")))
	assert.Equal(t, "nil", formatValue(v.FieldByName("Next")))
	assert.Equal(t, "<invalid>", formatValue(reflect.Value{}))
	assert.Equal(t, "default", colorName(tcell.ColorDefault))
}
