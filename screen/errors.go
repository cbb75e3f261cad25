package screen

import (
	"errors"
	"fmt"
)

var (
	// ErrStaleHandle is returned when a handle outlived the record it named.
	ErrStaleHandle = errors.New("screen: stale item handle")
	// ErrActionsQueued is returned by Clear and batch reversal while actions are pending.
	ErrActionsQueued = errors.New("screen: actions are queued")
	// ErrResolving is returned when an action is queued from inside a render pass.
	ErrResolving = errors.New("screen: cannot queue actions while resolving")
	// ErrActionState is returned when an action is run twice or undone before it ran.
	ErrActionState = errors.New("screen: invalid action state transition")
	// ErrLayer is returned for a layer the screen does not have.
	ErrLayer = errors.New("screen: invalid layer")
	// ErrReferenced is returned when releasing a record the grid still points at.
	ErrReferenced = errors.New("screen: item still referenced by the grid")
	// ErrInvalidSize is returned for footprints narrower or shorter than one cell.
	ErrInvalidSize = errors.New("screen: item size must be at least 1x1")
	// ErrOccupied is the failure cause for an action blocked by another item.
	ErrOccupied = errors.New("screen: destination occupied")
	// ErrNotPresent is the failure cause for removing an item that is not in the layer.
	ErrNotPresent = errors.New("screen: item not present in layer")
)

// BoundsError reports a footprint or cell outside the grid.
type BoundsError struct {
	Layer  Layer
	Rect   Rect
	Width  int
	Height int
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("screen: %s on %s layer is outside the %dx%d grid", e.Rect, e.Layer, e.Width, e.Height)
}

// AttributeError reports a rejected attribute argument in strict mode.
type AttributeError struct {
	Key      string
	Expected string
	Reason   string
}

func (e *AttributeError) Error() string {
	if e.Expected != "" {
		return fmt.Sprintf("screen: attribute %q: expected %s: %s", e.Key, e.Expected, e.Reason)
	}
	return fmt.Sprintf("screen: attribute %q: %s", e.Key, e.Reason)
}
