package screen

import (
	"github.com/kamstrup/intmap"
)

// Grid stores, per layer, a dense row-major array of cell occupants. A
// multi-cell item writes its ItemId into every cell it covers. Alongside the
// cells each layer keeps a count of cells owned per item, so presence checks
// do not need to scan the layer.
type Grid struct {
	width  int
	height int
	cells  [][]ItemId
	counts []*intmap.Map[ItemId, int32]
}

// NewGrid allocates layers × width × height empty cells.
func NewGrid(width, height, layers int) *Grid {
	g := &Grid{
		width:  width,
		height: height,
		cells:  make([][]ItemId, layers),
		counts: make([]*intmap.Map[ItemId, int32], layers),
	}
	for i := range g.cells {
		g.cells[i] = make([]ItemId, width*height)
		g.counts[i] = intmap.New[ItemId, int32](256)
	}
	return g
}

// Width returns the number of cells left to right.
func (g *Grid) Width() int { return g.width }

// Height returns the number of cells top to bottom.
func (g *Grid) Height() int { return g.height }

// Layers returns how many layers the grid holds.
func (g *Grid) Layers() int { return len(g.cells) }

// Bounds returns the rect covering the whole grid.
func (g *Grid) Bounds() Rect {
	return Rect{W: g.width, H: g.height}
}

func (g *Grid) check(layer Layer, r Rect) error {
	if int(layer) >= len(g.cells) {
		return ErrLayer
	}
	if r.Empty() {
		return ErrInvalidSize
	}
	if r.X < 0 || r.Y < 0 || r.X+r.W > g.width || r.Y+r.H > g.height {
		return &BoundsError{Layer: layer, Rect: r, Width: g.width, Height: g.height}
	}
	return nil
}

func (g *Grid) set(layer Layer, x, y int, id ItemId) {
	idx := y*g.width + x
	cells := g.cells[layer]
	counts := g.counts[layer]

	if old := cells[idx]; !old.IsZero() {
		n, _ := counts.Get(old)
		if n <= 1 {
			counts.Del(old)
		} else {
			counts.Put(old, n-1)
		}
	}
	if !id.IsZero() {
		n, _ := counts.Get(id)
		counts.Put(id, n+1)
	}
	cells[idx] = id
}

// CanOccupy checks whether every cell of r is free on layer. Cells owned by
// ignore count as free, which lets a moving item overlap its old footprint.
// It returns the first competing occupant, or zero when r is free.
func (g *Grid) CanOccupy(layer Layer, r Rect, ignore ItemId) (ItemId, error) {
	if err := g.check(layer, r); err != nil {
		return 0, err
	}
	cells := g.cells[layer]
	for x, y := range r.Cells() {
		if occ := cells[y*g.width+x]; !occ.IsZero() && occ != ignore {
			return occ, nil
		}
	}
	return 0, nil
}

// TryOccupy writes id into every cell of r. It returns false and leaves the
// layer untouched if any cell is already taken.
func (g *Grid) TryOccupy(layer Layer, r Rect, id ItemId) (bool, error) {
	occ, err := g.CanOccupy(layer, r, 0)
	if err != nil {
		return false, err
	}
	if !occ.IsZero() {
		return false, nil
	}
	for x, y := range r.Cells() {
		g.set(layer, x, y, id)
	}
	return true, nil
}

// Vacate clears every cell of r and returns the previous occupant of each
// cell in row-major order.
func (g *Grid) Vacate(layer Layer, r Rect) ([]ItemId, error) {
	return g.VacateInto(layer, r, make([]ItemId, 0, r.Area()))
}

// VacateInto is Vacate appending the previous occupants to prev.
func (g *Grid) VacateInto(layer Layer, r Rect, prev []ItemId) ([]ItemId, error) {
	if err := g.check(layer, r); err != nil {
		return prev, err
	}
	cells := g.cells[layer]
	for x, y := range r.Cells() {
		prev = append(prev, cells[y*g.width+x])
		g.set(layer, x, y, 0)
	}
	return prev, nil
}

// Restore writes prev back into r, undoing a Vacate or an occupy. prev must
// come from a Vacate of the same rect.
func (g *Grid) Restore(layer Layer, r Rect, prev []ItemId) error {
	if err := g.check(layer, r); err != nil {
		return err
	}
	i := 0
	for x, y := range r.Cells() {
		var id ItemId
		if i < len(prev) {
			id = prev[i]
		}
		g.set(layer, x, y, id)
		i++
	}
	return nil
}

// OccupantAt returns the item in cell (x, y), or zero if the cell is empty.
func (g *Grid) OccupantAt(layer Layer, x, y int) (ItemId, error) {
	if err := g.check(layer, Rect{X: x, Y: y, W: 1, H: 1}); err != nil {
		return 0, err
	}
	return g.cells[layer][y*g.width+x], nil
}

// at is OccupantAt without checks, for callers that already clipped.
func (g *Grid) at(layer Layer, x, y int) ItemId {
	if x < 0 || y < 0 || x >= g.width || y >= g.height {
		return 0
	}
	return g.cells[layer][y*g.width+x]
}

// Present reports whether id owns at least one cell on layer.
func (g *Grid) Present(layer Layer, id ItemId) bool {
	if int(layer) >= len(g.counts) {
		return false
	}
	return g.counts[layer].Has(id)
}

// Referenced reports whether id owns a cell on any layer.
func (g *Grid) Referenced(id ItemId) bool {
	for _, counts := range g.counts {
		if counts.Has(id) {
			return true
		}
	}
	return false
}

// Occupied returns the number of non-empty cells on layer.
func (g *Grid) Occupied(layer Layer) int {
	if int(layer) >= len(g.counts) {
		return 0
	}
	total := 0
	g.counts[layer].ForEach(func(_ ItemId, n int32) bool {
		total += int(n)
		return true
	})
	return total
}

// ItemCount returns how many distinct items own cells on layer.
func (g *Grid) ItemCount(layer Layer) int {
	if int(layer) >= len(g.counts) {
		return 0
	}
	return g.counts[layer].Len()
}

// Clear empties every layer.
func (g *Grid) Clear() {
	for i := range g.cells {
		clear(g.cells[i])
		g.counts[i].Clear()
	}
}

// Each calls fn for every occupied cell of layer inside view, row-major.
func (g *Grid) Each(layer Layer, view Rect, fn func(x, y int, id ItemId) bool) {
	x0, y0 := max(view.X, 0), max(view.Y, 0)
	x1, y1 := min(view.X+view.W, g.width), min(view.Y+view.H, g.height)
	cells := g.cells[layer]
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			if id := cells[y*g.width+x]; !id.IsZero() {
				if !fn(x, y, id) {
					return
				}
			}
		}
	}
}
