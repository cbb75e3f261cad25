package screen

import (
	"github.com/gdamore/tcell/v2"
)

// Handle is a weak reference to a placed item. It is a plain value: copies
// refer to the same item, and every copy goes stale together once the item
// is removed and its record recycled. Getters read the state committed by
// the last render; setters queue actions for the next one. The footprint of
// an item that is not on the grid, because its placement is still queued,
// failed or was removed, is the zero Rect.
type Handle struct {
	s     *Screen
	id    ItemId
	layer Layer
}

// Valid reports whether the handle still names a live record. A record
// whose placement failed or whose removal was applied stays live until the
// render after, so the batch can still be reverted; use Placed to ask
// whether the item is on the grid.
func (h Handle) Valid() bool {
	return h.s != nil && h.s.pool.Alive(h.id)
}

// Placed reports whether the item currently occupies cells on its layer.
func (h Handle) Placed() bool {
	return h.Valid() && h.s.grid.Present(h.layer, h.id)
}

// Id returns the item id the handle was issued for.
func (h Handle) Id() ItemId { return h.id }

// Layer returns the layer the item was placed on.
func (h Handle) Layer() Layer {
	if h.s == nil {
		return 0
	}
	return h.s.publicLayer(h.layer)
}

func (h Handle) get() *Item {
	if h.s == nil {
		return nil
	}
	it, _ := h.s.pool.Get(h.id)
	return it
}

// X returns the committed column of the item's top-left cell.
func (h Handle) X() int {
	if it := h.get(); it != nil {
		return it.X
	}
	return 0
}

// Y returns the committed row of the item's top-left cell.
func (h Handle) Y() int {
	if it := h.get(); it != nil {
		return it.Y
	}
	return 0
}

// W returns the committed width in cells.
func (h Handle) W() int {
	if it := h.get(); it != nil {
		return it.W
	}
	return 0
}

// H returns the committed height in cells.
func (h Handle) H() int {
	if it := h.get(); it != nil {
		return it.H
	}
	return 0
}

// Rect returns the committed footprint.
func (h Handle) Rect() Rect {
	if it := h.get(); it != nil {
		return it.Rect()
	}
	return Rect{}
}

func (h Handle) Glyph() Glyph {
	if it := h.get(); it != nil {
		return it.Glyph
	}
	return 0
}

func (h Handle) Colors() (fg, bg tcell.Color) {
	if it := h.get(); it != nil {
		return it.Fg, it.Bg
	}
	return tcell.ColorDefault, tcell.ColorDefault
}

func (h Handle) Decorations() Decorations {
	if it := h.get(); it != nil {
		return it.Decor
	}
	return Decorations{}
}

func (h Handle) UserData() any {
	if it := h.get(); it != nil {
		return it.UserData
	}
	return nil
}

// begin validates that an action may be queued through h. A nil record with
// a nil error means permissive mode swallowed a usage error.
func (h Handle) begin(op string) (*Item, error) {
	if h.s == nil {
		return nil, ErrStaleHandle
	}
	if h.s.resolving {
		return nil, h.s.usage(op, ErrResolving)
	}
	it, ok := h.s.pool.Get(h.id)
	if !ok {
		return nil, h.s.usage(op, ErrStaleHandle)
	}
	return it, nil
}

// MoveAbsolute queues a move of the top-left cell to (x, y).
func (h Handle) MoveAbsolute(x, y int) error {
	it, err := h.begin("move")
	if it == nil {
		return err
	}
	h.moveTo(it, x, y)
	return nil
}

// Move queues a move by (dx, dy) from where the item will be once the moves
// already queued this batch have run.
func (h Handle) Move(dx, dy int) error {
	it, err := h.begin("move")
	if it == nil {
		return err
	}
	h.moveTo(it, it.next.X+dx, it.next.Y+dy)
	return nil
}

// SetX queues an absolute move that changes only the column.
func (h Handle) SetX(x int) error {
	it, err := h.begin("move")
	if it == nil {
		return err
	}
	h.moveTo(it, x, it.next.Y)
	return nil
}

// SetY queues an absolute move that changes only the row.
func (h Handle) SetY(y int) error {
	it, err := h.begin("move")
	if it == nil {
		return err
	}
	h.moveTo(it, it.next.X, y)
	return nil
}

func (h Handle) moveTo(it *Item, x, y int) {
	h.s.queue.push(ActionMove, h.id, h.layer, Rect{X: x, Y: y})
	it.next.X, it.next.Y = x, y
	h.s.stats.queued(ActionMove)
}

// Resize queues a size change by (dw, dh). The footprint stays centred on
// the old one as described by ResizeRect.
func (h Handle) Resize(dw, dh int) error {
	it, err := h.begin("resize")
	if it == nil {
		return err
	}
	h.resizeBy(it, dw, dh)
	return nil
}

// ResizeAbsolute queues a size change to w × h.
func (h Handle) ResizeAbsolute(w, hh int) error {
	it, err := h.begin("resize")
	if it == nil {
		return err
	}
	h.resizeBy(it, w-it.next.W, hh-it.next.H)
	return nil
}

// SetW queues a relative resize by the difference to the current width.
func (h Handle) SetW(w int) error {
	it, err := h.begin("resize")
	if it == nil {
		return err
	}
	h.resizeBy(it, w-it.next.W, 0)
	return nil
}

// SetH queues a relative resize by the difference to the current height.
func (h Handle) SetH(hh int) error {
	it, err := h.begin("resize")
	if it == nil {
		return err
	}
	h.resizeBy(it, 0, hh-it.next.H)
	return nil
}

func (h Handle) resizeBy(it *Item, dw, dh int) {
	next := ResizeRect(it.next, dw, dh)
	h.s.queue.push(ActionResize, h.id, h.layer, Rect{W: next.W, H: next.H})
	it.next = next
	h.s.stats.queued(ActionResize)
}

// SetGlyph queues a glyph change.
func (h Handle) SetGlyph(g Glyph) error {
	it, err := h.begin("set glyph")
	if it == nil {
		return err
	}
	a := h.s.queue.push(ActionGlyphChange, h.id, h.layer, it.next)
	a.glyph = g
	h.s.stats.queued(ActionGlyphChange)
	return nil
}

// Remove queues removal of the item. The handle goes stale at the render
// after the one that applies the removal.
func (h Handle) Remove() error {
	it, err := h.begin("remove")
	if it == nil {
		return err
	}
	h.s.queue.push(ActionRemove, h.id, h.layer, it.next)
	h.s.stats.queued(ActionRemove)
	return nil
}
