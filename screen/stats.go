package screen

import "time"

// Stats is a snapshot of resolver and storage activity.
type Stats struct {
	Batches       int64
	LastBatchSize int
	Pending       int

	MinResolve   time.Duration
	MaxResolve   time.Duration
	AvgResolve   time.Duration
	LastResolve  time.Duration
	TotalResolve time.Duration

	Kinds  []KindStats
	Layers []LayerStats

	PoolLive  int
	PoolCap   int
	PoolGrown int
}

// KindStats counts actions of one kind over the screen's lifetime.
type KindStats struct {
	Kind     ActionKind
	Queued   int64
	Applied  int64
	Failed   int64
	Reverted int64
}

// LayerStats describes the occupancy of one layer.
type LayerStats struct {
	Layer    Layer
	Items    int
	Occupied int
	Cells    int
}

type resolveStats struct {
	batches  int64
	lastSize int
	min      time.Duration
	max      time.Duration
	total    time.Duration
	last     time.Duration
	kinds    [actionKindCount]KindStats
}

func newResolveStats() resolveStats {
	st := resolveStats{min: time.Duration(1<<63 - 1)}
	for k := range actionKindCount {
		st.kinds[k].Kind = k
	}
	return st
}

func (st *resolveStats) queued(k ActionKind)   { st.kinds[k].Queued++ }
func (st *resolveStats) applied(k ActionKind)  { st.kinds[k].Applied++ }
func (st *resolveStats) failed(k ActionKind)   { st.kinds[k].Failed++ }
func (st *resolveStats) reverted(k ActionKind) { st.kinds[k].Reverted++ }

func (st *resolveStats) batch(size int, d time.Duration) {
	st.batches++
	st.lastSize = size
	st.last = d
	st.total += d
	if d < st.min {
		st.min = d
	}
	if d > st.max {
		st.max = d
	}
}

// Stats returns counters for every action kind, resolve timings and the
// current pool and layer occupancy.
func (s *Screen) Stats() Stats {
	st := Stats{
		Batches:       s.stats.batches,
		LastBatchSize: s.stats.lastSize,
		Pending:       s.queue.Len(),
		MaxResolve:    s.stats.max,
		LastResolve:   s.stats.last,
		TotalResolve:  s.stats.total,
		Kinds:         make([]KindStats, len(s.stats.kinds)),
		Layers:        make([]LayerStats, s.grid.Layers()),
		PoolLive:      s.pool.Len(),
		PoolCap:       s.pool.Cap(),
		PoolGrown:     s.pool.Grown(),
	}
	if st.Batches > 0 {
		st.MinResolve = s.stats.min
		st.AvgResolve = s.stats.total / time.Duration(st.Batches)
	}
	copy(st.Kinds, s.stats.kinds[:])

	cells := s.grid.Width() * s.grid.Height()
	for i := range st.Layers {
		l := Layer(i)
		st.Layers[i] = LayerStats{
			Layer:    s.publicLayer(l),
			Items:    s.grid.ItemCount(l),
			Occupied: s.grid.Occupied(l),
			Cells:    cells,
		}
	}
	return st
}
