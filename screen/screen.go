package screen

import (
	"errors"
	"fmt"
	"iter"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/kamstrup/intmap"
	"go.uber.org/zap"
)

// RenderHandler receives the output of Render: one call to ActionFailure
// for every queued action that could not be applied, then one call to
// Render per occupied cell inside the view, row by row within each layer,
// Background layer first and UI last.
type RenderHandler interface {
	Render(d DrawData)
	ActionFailure(f ActionFailure)
}

// RenderFuncs adapts plain functions to RenderHandler. Nil fields are
// skipped.
type RenderFuncs struct {
	OnRender  func(DrawData)
	OnFailure func(ActionFailure)
}

func (f RenderFuncs) Render(d DrawData) {
	if f.OnRender != nil {
		f.OnRender(d)
	}
}

func (f RenderFuncs) ActionFailure(a ActionFailure) {
	if f.OnFailure != nil {
		f.OnFailure(a)
	}
}

// Screen owns a layered grid of items and the queue of actions waiting to
// change it. Placement and every handle operation only queue work; Render
// is the single point where queued actions are applied and become visible.
// A Screen must only be used from one goroutine.
type Screen struct {
	cfg   Config
	pool  *ItemPool
	grid  *Grid
	queue *actionQueue
	stats resolveStats
	log   *zap.Logger

	camera    Camera
	resolving bool

	drawn     []DrawData
	drawIndex *intmap.Map[ItemId, int32]
}

// Option configures a Screen at construction.
type Option func(*Screen)

// WithLogger sets the logger used for dropped usage errors and failed
// actions. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(s *Screen) {
		if l != nil {
			s.log = l.Named("screen")
		}
	}
}

// New creates a screen sized by cfg.
func New(cfg Config, opts ...Option) (*Screen, error) {
	if cfg.QueueCapacity == 0 {
		cfg.QueueCapacity = DefaultConfig().QueueCapacity
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Screen{
		cfg:   cfg,
		pool:  NewItemPool(cfg.PoolSize()),
		grid:  NewGrid(cfg.Width, cfg.Height, cfg.Layers()),
		queue: newActionQueue(cfg.QueueCapacity),
		stats: newResolveStats(),
		log:   zap.NewNop(),

		drawIndex: intmap.New[ItemId, int32](256),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log.Debug("screen created",
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Int("layers", cfg.Layers()),
		zap.Bool("debug", cfg.Debug),
	)
	return s, nil
}

// usage handles a caller mistake: returned in debug mode, logged and
// dropped otherwise.
func (s *Screen) usage(op string, err error) error {
	if s.cfg.Debug {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Warn("ignored invalid call", zap.String("op", op), zap.Error(err))
	return nil
}

func (s *Screen) handle(id ItemId, layer Layer) Handle {
	return Handle{s: s, id: id, layer: layer}
}

// publicLayer maps a storage layer index to the layer callers see.
func (s *Screen) publicLayer(l Layer) Layer {
	if s.cfg.UIOnly {
		return LayerUI
	}
	return l
}

// storageLayer maps a caller's layer to a storage index for lookups.
func (s *Screen) storageLayer(l Layer) (Layer, error) {
	if !l.Valid() {
		return 0, fmt.Errorf("%w: %d", ErrLayer, l)
	}
	if s.cfg.UIOnly {
		return 0, nil
	}
	return l, nil
}

// placementLayer picks the storage layer for a new item. A UI-only screen
// puts everything on its one layer; debug mode refuses an explicit request
// for any other layer.
func (s *Screen) placementLayer(l Layer, explicit bool) (Layer, error) {
	if !explicit {
		if s.cfg.UIOnly {
			return 0, nil
		}
		return LayerPlay, nil
	}
	if s.cfg.UIOnly {
		if l != LayerUI {
			if s.cfg.Debug {
				return 0, fmt.Errorf("place: %w: %s on a UI-only screen", ErrLayer, l)
			}
			s.log.Warn("coerced placement to the UI layer", zap.Stringer("requested", l))
		}
		return 0, nil
	}
	if !l.Valid() {
		if s.cfg.Debug {
			return 0, fmt.Errorf("place: %w: %d", ErrLayer, l)
		}
		s.log.Warn("unknown layer, placing on play", zap.Uint8("requested", uint8(l)))
		return LayerPlay, nil
	}
	return l, nil
}

// PlaceOption customises a placement.
type PlaceOption func(*placement)

type placement struct {
	w, h     int
	fg, bg   tcell.Color
	attrs    Attributes
	issues   []error
	layer    Layer
	layerSet bool
	userData any
}

// WithSize sets the footprint in cells. The default is 1×1.
func WithSize(w, h int) PlaceOption {
	return func(p *placement) { p.w, p.h = w, h }
}

// WithColors sets foreground and background. The default is white on black.
func WithColors(fg, bg tcell.Color) PlaceOption {
	return func(p *placement) { p.fg, p.bg = fg, bg }
}

// WithAttributes attaches decorations.
func WithAttributes(a Attributes) PlaceOption {
	return func(p *placement) { p.attrs = a }
}

// WithAttributeArgs attaches decorations given as a flag mask and a
// string-keyed argument map. See ParseAttributeArgs for the accepted keys.
func WithAttributeArgs(flags AttrFlags, args map[string]any) PlaceOption {
	return func(p *placement) {
		var issues []error
		p.attrs, issues = ParseAttributeArgs(flags, args)
		p.issues = append(p.issues, issues...)
	}
}

// WithLayer picks the layer. The default is Play, or UI on a UI-only screen.
func WithLayer(l Layer) PlaceOption {
	return func(p *placement) { p.layer, p.layerSet = l, true }
}

// WithUserData attaches a payload the screen hands back untouched.
func WithUserData(v any) PlaceOption {
	return func(p *placement) { p.userData = v }
}

// Place queues a new item with its top-left cell at (x, y) and returns a
// handle to it. Conflicts with other items, the grid bounds or an invalid
// size are not errors here: they are reported through ActionFailure when
// the next Render resolves the placement.
func (s *Screen) Place(g Glyph, x, y int, opts ...PlaceOption) (Handle, error) {
	if s.resolving {
		return Handle{}, s.usage("place", ErrResolving)
	}

	p := placement{w: 1, h: 1, fg: tcell.ColorWhite, bg: tcell.ColorBlack}
	for _, opt := range opts {
		opt(&p)
	}

	layer, err := s.placementLayer(p.layer, p.layerSet)
	if err != nil {
		return Handle{}, err
	}

	decor, issues := BuildDecorations(p.attrs, p.bg)
	issues = append(p.issues, issues...)
	if len(issues) > 0 {
		if s.cfg.Debug {
			return Handle{}, fmt.Errorf("place %q at (%d,%d): %w", g.Rune(), x, y, errors.Join(issues...))
		}
		for _, issue := range issues {
			s.log.Warn("dropped attribute argument", zap.Error(issue))
		}
	}

	grown := s.pool.Grown()
	id, it := s.pool.Acquire()
	if s.pool.Grown() > grown {
		s.log.Warn("item pool grew past its preallocation",
			zap.Int("live", s.pool.Len()),
			zap.Int("capacity", s.pool.Cap()),
		)
	}

	// The footprint stays zero until the placement is applied; the requested
	// one lives in the action and in next.
	*it = Item{
		Glyph:    g,
		Fg:       p.fg,
		Bg:       p.bg,
		UserData: p.userData,
		Decor:    decor,
		next:     Rect{X: x, Y: y, W: p.w, H: p.h},
	}

	s.queue.push(ActionPlace, id, layer, it.next)
	s.stats.queued(ActionPlace)
	return s.handle(id, layer), nil
}

// Render resolves every queued action in order, reports failures, then
// hands h one draw record per occupied cell visible through the camera. h
// may be nil to resolve without drawing. Queuing from inside h is an error.
func (s *Screen) Render(h RenderHandler) error {
	if s.resolving {
		return s.usage("render", ErrResolving)
	}
	s.resolving = true
	defer func() { s.resolving = false }()

	if err := s.releaseRetired(); err != nil {
		return err
	}
	s.resolve(h)
	if h != nil {
		s.project(h)
	}
	return nil
}

// releaseRetired returns to the pool the records of the previous batch that
// ended up outside the grid: removed items and placements that failed or
// were reverted. It runs once the batch can no longer be reverted.
func (s *Screen) releaseRetired() error {
	for i := range s.queue.history {
		a := &s.queue.history[i]
		if a.kind != ActionPlace && a.kind != ActionRemove {
			continue
		}
		if !s.pool.Alive(a.id) || s.grid.Referenced(a.id) {
			continue
		}
		if err := s.release(a.id); err != nil {
			return err
		}
	}
	return nil
}

func (s *Screen) release(id ItemId) error {
	if s.grid.Referenced(id) {
		if s.cfg.Debug {
			return fmt.Errorf("release %s: %w", id, ErrReferenced)
		}
		s.log.Warn("kept a record the grid still references", zap.Stringer("item", id))
		return nil
	}
	return s.pool.Release(id)
}

// project hands h one record per occupied cell inside the view. The item
// part of a record is built the first time one of the item's cells is met
// and reused for the rest of its footprint.
func (s *Screen) project(h RenderHandler) {
	view := s.View()
	cell := s.CellSize()
	s.drawn = s.drawn[:0]
	s.drawIndex.Clear()
	for l := range Layer(s.grid.Layers()) {
		s.grid.Each(l, view, func(x, y int, id ItemId) bool {
			i, ok := s.drawIndex.Get(id)
			if !ok {
				it, alive := s.pool.Get(id)
				if !alive {
					return true
				}
				var mask WallMask
				if it.Decor.Wall {
					mask = s.wallMask(l, id, it)
				}
				i = int32(len(s.drawn))
				s.drawn = append(s.drawn, Project(it, s.handle(id, l), s.publicLayer(l), s.camera, cell, mask))
				s.drawIndex.Put(id, i)
			}
			h.Render(s.drawn[i].At(x, y, cell))
			return true
		})
	}
}

// Clear empties every layer and returns every record to the pool. All
// outstanding handles go stale. It fails while actions are queued.
func (s *Screen) Clear() error {
	if s.resolving {
		return fmt.Errorf("clear: %w", ErrResolving)
	}
	if n := s.queue.Len(); n > 0 {
		s.log.Warn("refused to clear with actions queued", zap.Int("pending", n))
		return fmt.Errorf("clear: %w (%d pending)", ErrActionsQueued, n)
	}
	s.grid.Clear()
	s.pool.Reset()
	s.queue.reset()
	return nil
}

// Pending returns the number of actions waiting for the next render.
func (s *Screen) Pending() int {
	return s.queue.Len()
}

// Config returns the configuration the screen currently projects with.
func (s *Screen) Config() Config {
	return s.cfg
}

// SetCamera moves the top-left visible cell.
func (s *Screen) SetCamera(x, y int) {
	s.camera = Camera{X: x, Y: y}
}

func (s *Screen) Camera() Camera {
	return s.camera
}

// SetCharactersDrawn sets how many cells fit across and down the window.
func (s *Screen) SetCharactersDrawn(x, y int) error {
	if x <= 0 || y <= 0 {
		return fmt.Errorf("characters drawn %dx%d: %w", x, y, ErrInvalidSize)
	}
	s.cfg.CharactersDrawnX, s.cfg.CharactersDrawnY = x, y
	return nil
}

// SetWindowSize sets the pixel size of the window the grid is drawn into.
func (s *Screen) SetWindowSize(w, h int) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("window size %dx%d: %w", w, h, ErrInvalidSize)
	}
	s.cfg.WindowWidth, s.cfg.WindowHeight = w, h
	return nil
}

// View returns the grid cells visible through the camera.
func (s *Screen) View() Rect {
	return Rect{X: s.camera.X, Y: s.camera.Y, W: s.cfg.CharactersDrawnX, H: s.cfg.CharactersDrawnY}
}

// CellSize returns the pixel size of one cell.
func (s *Screen) CellSize() CellSize {
	return CellSize{
		W: float64(s.cfg.WindowWidth) / float64(s.cfg.CharactersDrawnX),
		H: float64(s.cfg.WindowHeight) / float64(s.cfg.CharactersDrawnY),
	}
}

// OccupantAt returns the committed occupant of cell (x, y). The zero
// Handle means the cell is empty.
func (s *Screen) OccupantAt(layer Layer, x, y int) (Handle, error) {
	l, err := s.storageLayer(layer)
	if err != nil {
		return Handle{}, err
	}
	id, err := s.grid.OccupantAt(l, x, y)
	if err != nil || id.IsZero() {
		return Handle{}, err
	}
	return s.handle(id, l), nil
}

// Items iterates the items committed to layer, ordered by the row-major
// position of their top-left cell.
func (s *Screen) Items(layer Layer) iter.Seq2[Handle, Rect] {
	return func(yield func(Handle, Rect) bool) {
		l, err := s.storageLayer(layer)
		if err != nil {
			return
		}
		s.grid.Each(l, s.grid.Bounds(), func(x, y int, id ItemId) bool {
			it, ok := s.pool.Get(id)
			if !ok || it.X != x || it.Y != y {
				return true
			}
			return yield(s.handle(id, l), it.Rect())
		})
	}
}

// Dump renders layer as text, one line per row. Empty cells are '.'.
func (s *Screen) Dump(layer Layer) string {
	l, err := s.storageLayer(layer)
	if err != nil {
		return ""
	}
	var b strings.Builder
	for y := range s.grid.Height() {
		for x := range s.grid.Width() {
			id := s.grid.at(l, x, y)
			it, ok := s.pool.Get(id)
			if !ok {
				b.WriteByte('.')
				continue
			}
			b.WriteRune(it.Glyph.Rune())
		}
		b.WriteByte('\n')
	}
	return b.String()
}
