package screen

// ActionKind tags the variant held by a queued action.
type ActionKind uint8

const (
	ActionPlace ActionKind = iota
	ActionRemove
	ActionMove
	ActionResize
	ActionGlyphChange

	actionKindCount
)

func (k ActionKind) String() string {
	switch k {
	case ActionPlace:
		return "place"
	case ActionRemove:
		return "remove"
	case ActionMove:
		return "move"
	case ActionResize:
		return "resize"
	case ActionGlyphChange:
		return "glyph"
	default:
		return "action(?)"
	}
}

// ActionState is where an action sits in its lifecycle. Pending actions
// either fail their attempt (Failed, terminal) or run (Applied). Applied
// actions can be undone (Reverted) and re-applied.
type ActionState uint8

const (
	ActionPending ActionState = iota
	ActionApplied
	ActionReverted
	ActionFailed
)

func (s ActionState) String() string {
	return [...]string{"pending", "applied", "reverted", "failed"}[s]
}

// action is the tagged union processed by the resolver. Which fields of
// target matter depends on kind: Place uses the whole rect, Move only X/Y and
// Resize only W/H. Both are absolute, resolved when the action was queued.
type action struct {
	kind   ActionKind
	state  ActionState
	id     ItemId
	layer  Layer
	target Rect
	glyph  Glyph

	// Undo state, captured when the action runs.
	prevRect  Rect
	prevCells []ItemId
	prevDest  []ItemId
	prevGlyph Glyph
}

// actionQueue is the FIFO buffer of deferred actions for the next render,
// plus the resolved batch from the previous render kept for reversal. The
// two backing arrays are swapped every batch so neither is reallocated in
// steady state.
type actionQueue struct {
	pending []action
	history []action
}

func newActionQueue(capacity int) *actionQueue {
	return &actionQueue{
		pending: make([]action, 0, capacity),
		history: make([]action, 0, capacity),
	}
}

// push appends a pending action, reusing the undo buffers of whatever
// action previously occupied the slot.
func (q *actionQueue) push(kind ActionKind, id ItemId, layer Layer, target Rect) *action {
	n := len(q.pending)
	if n < cap(q.pending) {
		q.pending = q.pending[:n+1]
	} else {
		q.pending = append(q.pending, action{})
	}
	a := &q.pending[n]
	*a = action{
		kind:      kind,
		id:        id,
		layer:     layer,
		target:    target,
		prevCells: a.prevCells[:0],
		prevDest:  a.prevDest[:0],
	}
	return a
}

// Len reports how many actions are waiting for the next render.
func (q *actionQueue) Len() int {
	return len(q.pending)
}

// retire moves the resolved pending batch into history.
func (q *actionQueue) retire() {
	q.history, q.pending = q.pending, q.history[:0]
}

// reset drops the pending batch and the history.
func (q *actionQueue) reset() {
	q.pending = q.pending[:0]
	q.history = q.history[:0]
}
