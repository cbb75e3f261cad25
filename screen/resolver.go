package screen

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// ActionFailure describes one queued action whose attempt failed during a
// render. The grid is left as if the action had never been queued.
type ActionFailure struct {
	Kind   ActionKind
	Item   Handle
	Layer  Layer
	Target Rect
	// Occupant is the item blocking the target, or the zero Handle when the
	// failure was not caused by another item.
	Occupant Handle
	Err      error
}

func (f ActionFailure) Error() string {
	if f.Occupant.Valid() {
		return fmt.Sprintf("%s %s to %s on %s layer: %v by %s", f.Kind, f.Item.Id(), f.Target, f.Layer, f.Err, f.Occupant.Id())
	}
	return fmt.Sprintf("%s %s to %s on %s layer: %v", f.Kind, f.Item.Id(), f.Target, f.Layer, f.Err)
}

func (f ActionFailure) Unwrap() error { return f.Err }

// destination is the footprint a Move or Resize would leave the item with,
// given where the item currently is.
func destination(a *action, it *Item) Rect {
	cur := it.Rect()
	switch a.kind {
	case ActionMove:
		cur.X, cur.Y = a.target.X, a.target.Y
		return cur
	case ActionResize:
		return ResizeRect(cur, a.target.W-cur.W, a.target.H-cur.H)
	case ActionRemove, ActionGlyphChange:
		return cur
	}
	return a.target
}

func blocked(occ ItemId, err error) (ItemId, error) {
	if err != nil {
		return 0, err
	}
	if !occ.IsZero() {
		return occ, ErrOccupied
	}
	return 0, nil
}

// attempt checks whether a could run against the current grid. It never
// mutates. When another item is in the way it is returned with ErrOccupied.
func (s *Screen) attempt(a *action) (ItemId, error) {
	it, ok := s.pool.Get(a.id)
	if !ok {
		return 0, ErrStaleHandle
	}
	switch a.kind {
	case ActionPlace:
		return blocked(s.grid.CanOccupy(a.layer, a.target, 0))
	case ActionRemove:
		if !s.grid.Present(a.layer, a.id) {
			return 0, ErrNotPresent
		}
		return 0, nil
	case ActionMove, ActionResize:
		if !s.grid.Present(a.layer, a.id) {
			return 0, ErrNotPresent
		}
		// The item's own cells count as free so it can slide over them.
		return blocked(s.grid.CanOccupy(a.layer, destination(a, it), a.id))
	case ActionGlyphChange:
		return 0, nil
	}
	return 0, fmt.Errorf("screen: unknown action kind %d", a.kind)
}

func (s *Screen) occupy(layer Layer, r Rect, id ItemId) error {
	ok, err := s.grid.TryOccupy(layer, r, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrOccupied
	}
	return nil
}

// run applies a, capturing what it overwrote so undo can put it back.
// Callers must have had attempt succeed against the same grid state.
func (s *Screen) run(a *action) error {
	if a.state != ActionPending && a.state != ActionReverted {
		return fmt.Errorf("%w: run %s in state %s", ErrActionState, a.kind, a.state)
	}
	it, ok := s.pool.Get(a.id)
	if !ok {
		return ErrStaleHandle
	}

	var err error
	switch a.kind {
	case ActionPlace:
		a.prevCells, err = s.grid.VacateInto(a.layer, a.target, a.prevCells[:0])
		if err != nil {
			return err
		}
		if err = s.occupy(a.layer, a.target, a.id); err != nil {
			_ = s.grid.Restore(a.layer, a.target, a.prevCells)
			return err
		}
		it.setRect(a.target)

	case ActionRemove:
		a.prevRect = it.Rect()
		a.prevCells, err = s.grid.VacateInto(a.layer, a.prevRect, a.prevCells[:0])
		if err != nil {
			return err
		}
		it.setRect(Rect{})

	case ActionMove, ActionResize:
		dest := destination(a, it)
		a.prevRect = it.Rect()
		a.prevCells, err = s.grid.VacateInto(a.layer, a.prevRect, a.prevCells[:0])
		if err != nil {
			return err
		}
		a.prevDest, err = s.grid.VacateInto(a.layer, dest, a.prevDest[:0])
		if err == nil {
			err = s.occupy(a.layer, dest, a.id)
		}
		if err != nil {
			if len(a.prevDest) == dest.Area() {
				_ = s.grid.Restore(a.layer, dest, a.prevDest)
			}
			_ = s.grid.Restore(a.layer, a.prevRect, a.prevCells)
			return err
		}
		it.setRect(dest)

	case ActionGlyphChange:
		a.prevGlyph = it.Glyph
		it.Glyph = a.glyph

	default:
		return fmt.Errorf("screen: unknown action kind %d", a.kind)
	}

	a.state = ActionApplied
	return nil
}

// undo reverses an applied action. Actions of one batch must be undone in
// reverse queue order.
func (s *Screen) undo(a *action) error {
	if a.state != ActionApplied {
		return fmt.Errorf("%w: undo %s in state %s", ErrActionState, a.kind, a.state)
	}
	it, ok := s.pool.Get(a.id)
	if !ok {
		return ErrStaleHandle
	}

	var err error
	switch a.kind {
	case ActionPlace:
		err = s.grid.Restore(a.layer, a.target, a.prevCells)
		it.setRect(Rect{})
	case ActionRemove:
		err = s.grid.Restore(a.layer, a.prevRect, a.prevCells)
		it.setRect(a.prevRect)
	case ActionMove, ActionResize:
		if err = s.grid.Restore(a.layer, it.Rect(), a.prevDest); err == nil {
			err = s.grid.Restore(a.layer, a.prevRect, a.prevCells)
		}
		it.setRect(a.prevRect)
	case ActionGlyphChange:
		it.Glyph = a.prevGlyph
	}
	if err != nil {
		return err
	}

	a.state = ActionReverted
	return nil
}

// resolve drains the pending queue in FIFO order. Every action either runs
// or is reported through h exactly once; the queue is empty afterwards.
func (s *Screen) resolve(h RenderHandler) {
	start := time.Now()

	for i := range s.queue.pending {
		a := &s.queue.pending[i]
		occ, err := s.attempt(a)
		if err == nil {
			err = s.run(a)
		}
		if err != nil {
			a.state = ActionFailed
			s.fail(h, a, occ, err)
			continue
		}
		s.stats.applied(a.kind)
	}

	n := len(s.queue.pending)
	s.queue.retire()
	s.syncProjected()

	s.stats.batch(n, time.Since(start))
}

func (s *Screen) fail(h RenderHandler, a *action, occ ItemId, err error) {
	s.stats.failed(a.kind)

	target := a.target
	if it, ok := s.pool.Get(a.id); ok {
		target = destination(a, it)
	}
	f := ActionFailure{
		Kind:   a.kind,
		Item:   s.handle(a.id, a.layer),
		Layer:  s.publicLayer(a.layer),
		Target: target,
		Err:    err,
	}
	if !occ.IsZero() {
		f.Occupant = s.handle(occ, a.layer)
	}

	s.log.Debug("action failed",
		zap.Stringer("kind", a.kind),
		zap.Stringer("item", a.id),
		zap.Stringer("layer", f.Layer),
		zap.Stringer("target", target),
		zap.Stringer("occupant", occ),
		zap.Error(err),
	)

	if h != nil {
		h.ActionFailure(f)
	}
}

// RevertBatch undoes every applied action of the last resolved batch in
// reverse order. It is only valid between renders with nothing queued.
func (s *Screen) RevertBatch() (int, error) {
	if ok, err := s.batchAllowed("revert batch"); !ok {
		return 0, err
	}
	n := 0
	hist := s.queue.history
	for i := len(hist) - 1; i >= 0; i-- {
		a := &hist[i]
		if a.state != ActionApplied {
			continue
		}
		if err := s.undo(a); err != nil {
			return n, fmt.Errorf("revert %s %s: %w", a.kind, a.id, err)
		}
		s.stats.reverted(a.kind)
		n++
	}
	s.syncProjected()
	return n, nil
}

// ReapplyBatch re-runs the reverted actions of the last batch in queue
// order. Actions whose attempt no longer succeeds are marked failed and
// skipped.
func (s *Screen) ReapplyBatch() (int, error) {
	if ok, err := s.batchAllowed("reapply batch"); !ok {
		return 0, err
	}
	n := 0
	for i := range s.queue.history {
		a := &s.queue.history[i]
		if a.state != ActionReverted {
			continue
		}
		occ, err := s.attempt(a)
		if err == nil {
			err = s.run(a)
		}
		if err != nil {
			a.state = ActionFailed
			s.stats.failed(a.kind)
			s.log.Debug("reapply failed",
				zap.Stringer("kind", a.kind),
				zap.Stringer("item", a.id),
				zap.Stringer("occupant", occ),
				zap.Error(err),
			)
			continue
		}
		s.stats.applied(a.kind)
		n++
	}
	s.syncProjected()
	return n, nil
}

func (s *Screen) batchAllowed(op string) (bool, error) {
	var err error
	switch {
	case s.resolving:
		err = ErrResolving
	case s.queue.Len() > 0:
		err = ErrActionsQueued
	default:
		return true, nil
	}
	return false, s.usage(op, err)
}

// syncProjected points the projected footprint of every item touched by the
// last batch back at its committed footprint.
func (s *Screen) syncProjected() {
	for i := range s.queue.history {
		if it, ok := s.pool.Get(s.queue.history[i].id); ok {
			it.next = it.Rect()
		}
	}
}
