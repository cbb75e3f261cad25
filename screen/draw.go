package screen

import (
	"time"

	"github.com/gdamore/tcell/v2"
)

// Camera is the grid cell shown at the top-left of the window.
type Camera struct {
	X, Y int
}

// CellSize is the pixel size of one grid cell.
type CellSize struct {
	W, H float64
}

// Segment is one border line in window pixel space.
type Segment struct {
	Edge           Edge
	X0, Y0, X1, Y1 float64
	Color          tcell.Color
}

// PixelRect is an area in window pixels.
type PixelRect struct {
	X, Y, W, H float64
}

// DrawData is everything a renderer needs to draw one occupied cell. It is
// a value with no references into engine memory apart from Handle and
// UserData, so handlers may keep it past the callback.
type DrawData struct {
	Handle Handle
	Layer  Layer

	// Glyph is the code to draw. For auto-walls it is already replaced by the
	// box-drawing code matching the wall's neighbours.
	Glyph Glyph
	Rune  rune

	// CellX and CellY are the grid cell this record is for; X, Y, W and H the
	// same cell in window pixels after the camera offset.
	CellX, CellY int
	X, Y, W, H   float64

	// Cells is the item's whole footprint in grid cells and Bounds the same
	// area in window pixels.
	Cells  Rect
	Bounds PixelRect

	Fg, Bg tcell.Color

	Blink     bool
	BlinkRate time.Duration

	Wall     bool
	WallMask WallMask
	WallLine WallLine

	// Borders holds the parts of the item's border lines that run along
	// this cell.
	Borders    [edgeCount]Segment
	NumBorders int

	UserData any

	outline    [edgeCount]Segment
	numOutline int
}

// BorderSegments returns the border lines to draw for this cell, in top,
// right, bottom, left order.
func (d *DrawData) BorderSegments() []Segment {
	return d.Borders[:d.NumBorders]
}

// Visible reports whether the item should be drawn at time t given its
// blink settings. The first half of every period is visible.
func (d *DrawData) Visible(t time.Duration) bool {
	if !d.Blink || d.BlinkRate <= 0 {
		return true
	}
	return t%(2*d.BlinkRate) < d.BlinkRate
}

// Project builds the draw record for the top-left cell of an item. It reads
// it and never writes to it. mask is the auto-wall neighbour mask, ignored
// for items that are not walls. Records for the other cells come from At.
func Project(it *Item, h Handle, layer Layer, cam Camera, cell CellSize, mask WallMask) DrawData {
	d := DrawData{
		Handle: h,
		Layer:  layer,
		Glyph:  it.Glyph,
		Cells:  it.Rect(),
		Bounds: PixelRect{
			X: float64(it.X-cam.X) * cell.W,
			Y: float64(it.Y-cam.Y) * cell.H,
			W: float64(it.W) * cell.W,
			H: float64(it.H) * cell.H,
		},
		Fg:        it.Fg,
		Bg:        it.Bg,
		Blink:     it.Decor.Blink,
		BlinkRate: it.Decor.BlinkRate,
		Wall:      it.Decor.Wall,
		WallLine:  it.Decor.WallLine,
		UserData:  it.UserData,
	}
	if d.Wall {
		d.WallMask = mask
		d.Glyph = WallGlyph(it.Glyph, mask, it.Decor.WallLine)
	}
	d.Rune = d.Glyph.Rune()

	b := d.Bounds
	x0, y0 := b.X, b.Y
	x1, y1 := b.X+b.W, b.Y+b.H
	for e := range edgeCount {
		border := it.Decor.Borders[e]
		if !border.Enabled {
			continue
		}
		seg := Segment{Edge: e, Color: border.Color}
		switch e {
		case EdgeTop:
			seg.X0, seg.Y0, seg.X1, seg.Y1 = x0, y0, x1, y0
		case EdgeRight:
			seg.X0, seg.Y0, seg.X1, seg.Y1 = x1, y0, x1, y1
		case EdgeBottom:
			seg.X0, seg.Y0, seg.X1, seg.Y1 = x0, y1, x1, y1
		case EdgeLeft:
			seg.X0, seg.Y0, seg.X1, seg.Y1 = x0, y0, x0, y1
		}
		d.outline[d.numOutline] = seg
		d.numOutline++
	}
	return d.At(it.X, it.Y, cell)
}

// At returns the record for grid cell (x, y) of the same item. Only the
// cell position, its pixel rect and its border pieces change.
func (d DrawData) At(x, y int, cell CellSize) DrawData {
	d.CellX, d.CellY = x, y
	d.X = d.Bounds.X + float64(x-d.Cells.X)*cell.W
	d.Y = d.Bounds.Y + float64(y-d.Cells.Y)*cell.H
	d.W, d.H = cell.W, cell.H

	d.NumBorders = 0
	for _, seg := range d.outline[:d.numOutline] {
		switch seg.Edge {
		case EdgeTop, EdgeBottom:
			if (seg.Edge == EdgeTop && y != d.Cells.Y) || (seg.Edge == EdgeBottom && y != d.Cells.Y+d.Cells.H-1) {
				continue
			}
			seg.X0, seg.X1 = d.X, d.X+d.W
		case EdgeLeft, EdgeRight:
			if (seg.Edge == EdgeLeft && x != d.Cells.X) || (seg.Edge == EdgeRight && x != d.Cells.X+d.Cells.W-1) {
				continue
			}
			seg.Y0, seg.Y1 = d.Y, d.Y+d.H
		}
		d.Borders[d.NumBorders] = seg
		d.NumBorders++
	}
	return d
}

// wallMask finds which sides of id's footprint touch another item it
// connects to. Auto-walls always connect to each other; with
// WallExtentBorderInclusive they also connect to bordered items.
func (s *Screen) wallMask(layer Layer, id ItemId, it *Item) WallMask {
	r := it.Rect()
	var mask WallMask
	connects := func(x, y int) bool {
		other := s.grid.at(layer, x, y)
		if other.IsZero() || other == id {
			return false
		}
		o, ok := s.pool.Get(other)
		if !ok {
			return false
		}
		return o.Decor.Wall || (it.Decor.WallExtent == WallExtentBorderInclusive && o.Decor.HasBorder())
	}
	for x := r.X; x < r.X+r.W; x++ {
		if connects(x, r.Y-1) {
			mask |= WallNorth
		}
		if connects(x, r.Y+r.H) {
			mask |= WallSouth
		}
	}
	for y := r.Y; y < r.Y+r.H; y++ {
		if connects(r.X-1, y) {
			mask |= WallWest
		}
		if connects(r.X+r.W, y) {
			mask |= WallEast
		}
	}
	return mask
}
