package screen

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// ItemId encodes both the slot generation (upper 32 bits) and the slot index (lower 32 bits).
// Generations start at 1, so the zero ItemId never names a live record.
type ItemId uint64

// NewItemId creates an ItemId from a slot index and generation
func NewItemId(index uint32, generation uint32) ItemId {
	return ItemId(uint64(generation)<<32 | uint64(index))
}

// Index extracts the pool slot index from the item ID
func (id ItemId) Index() uint32 {
	return uint32(id & 0xFFFFFFFF)
}

// Generation extracts the slot generation from the item ID
func (id ItemId) Generation() uint32 {
	return uint32(id >> 32)
}

// IsZero reports whether id is the empty-cell sentinel.
func (id ItemId) IsZero() bool { return id == 0 }

func (id ItemId) String() string {
	if id == 0 {
		return "item(none)"
	}
	return fmt.Sprintf("item(%d#%d)", id.Index(), id.Generation())
}

// Item is the mutable record behind every placed glyph. Records live in the
// ItemPool and are recycled; callers only ever see them through a Handle.
type Item struct {
	Glyph    Glyph
	X, Y     int
	W, H     int
	Fg, Bg   tcell.Color
	UserData any
	Decor    Decorations

	// next is the footprint the item will have once every action queued for
	// it this batch has run. Relative moves and resizes build on it.
	next Rect
}

// Rect returns the item's footprint.
func (it *Item) Rect() Rect {
	return Rect{X: it.X, Y: it.Y, W: it.W, H: it.H}
}

func (it *Item) setRect(r Rect) {
	it.X, it.Y, it.W, it.H = r.X, r.Y, r.W, r.H
}
