package screen

import "fmt"

// Rect is a cell footprint covering [X, X+W) × [Y, Y+H).
type Rect struct {
	X, Y int
	W, H int
}

func (r Rect) String() string {
	return fmt.Sprintf("%dx%d@(%d,%d)", r.W, r.H, r.X, r.Y)
}

// Empty reports whether the rect covers no cells.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Area returns the number of cells covered.
func (r Rect) Area() int {
	if r.Empty() {
		return 0
	}
	return r.W * r.H
}

// Contains reports whether cell (x, y) lies inside the rect.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Intersects reports whether the two rects share at least one cell.
func (r Rect) Intersects(o Rect) bool {
	if r.Empty() || o.Empty() {
		return false
	}
	return r.X < o.X+o.W && o.X < r.X+r.W && r.Y < o.Y+o.H && o.Y < r.Y+r.H
}

// Translate returns the rect moved by (dx, dy).
func (r Rect) Translate(dx, dy int) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// Cells iterates the rect row-major, top-left first.
func (r Rect) Cells() func(yield func(x, y int) bool) {
	return func(yield func(x, y int) bool) {
		for y := r.Y; y < r.Y+r.H; y++ {
			for x := r.X; x < r.X+r.W; x++ {
				if !yield(x, y) {
					return
				}
			}
		}
	}
}

// ResizeRect changes the rect's size by (dw, dh) keeping it centred on the old
// footprint. Each axis is handled independently: growing by d adds d/2 cells
// on the low side and the remainder on the high side, so an odd extra cell
// goes right or down. Shrinking is the exact inverse of growing by the same
// amount, so ResizeRect(ResizeRect(r, dw, dh), -dw, -dh) == r.
func ResizeRect(r Rect, dw, dh int) Rect {
	r.X, r.W = resizeAxis(r.X, r.W, dw)
	r.Y, r.H = resizeAxis(r.Y, r.H, dh)
	return r
}

func resizeAxis(pos, size, delta int) (int, int) {
	switch {
	case delta > 0:
		return pos - delta/2, size + delta
	case delta < 0:
		d := -delta
		return pos + d/2, size - d
	default:
		return pos, size
	}
}
