package screen

const (
	poolBlockSize = 64
)

// ItemPool is a free-list arena of Item records. Records are stored in
// fixed-size blocks so pointers handed out by Get stay valid while the pool
// grows. Each slot carries a generation that is bumped on Release, which is
// what makes stale ItemIds detectable.
type ItemPool struct {
	blocks      [][poolBlockSize]Item
	live        [][poolBlockSize]bool
	generations []uint32
	freeSlots   []uint32
	nextIndex   uint32
	grown       int
}

// NewItemPool creates a pool with room for initial records before it has to
// allocate another block.
func NewItemPool(initial int) *ItemPool {
	if initial < 1 {
		initial = 1
	}
	numBlocks := (initial + poolBlockSize - 1) / poolBlockSize
	p := &ItemPool{
		blocks:      make([][poolBlockSize]Item, numBlocks),
		live:        make([][poolBlockSize]bool, numBlocks),
		generations: make([]uint32, 0, numBlocks*poolBlockSize),
		freeSlots:   make([]uint32, 0, initial),
	}
	return p
}

// Acquire returns a zeroed record and its id. It never fails; when every
// preallocated slot is in use a new block is appended.
func (p *ItemPool) Acquire() (ItemId, *Item) {
	var index uint32
	if len(p.freeSlots) > 0 {
		index = p.freeSlots[len(p.freeSlots)-1]
		p.freeSlots = p.freeSlots[:len(p.freeSlots)-1]
	} else {
		index = p.nextIndex
		p.nextIndex++
		p.generations = append(p.generations, 1)

		blockIdx := int(index) / poolBlockSize
		if blockIdx >= len(p.blocks) {
			p.blocks = append(p.blocks, [poolBlockSize]Item{})
			p.live = append(p.live, [poolBlockSize]bool{})
			p.grown++
		}
	}

	blockIdx := index / poolBlockSize
	slotIdx := index % poolBlockSize

	p.blocks[blockIdx][slotIdx] = Item{}
	p.live[blockIdx][slotIdx] = true
	return NewItemId(index, p.generations[index]), &p.blocks[blockIdx][slotIdx]
}

// Get returns the record for id, or false if id is stale or was never issued.
func (p *ItemPool) Get(id ItemId) (*Item, bool) {
	if !p.Alive(id) {
		return nil, false
	}
	index := id.Index()
	return &p.blocks[index/poolBlockSize][index%poolBlockSize], true
}

// Alive reports whether id refers to a record that has not been released.
func (p *ItemPool) Alive(id ItemId) bool {
	index := id.Index()
	if id.IsZero() || index >= p.nextIndex {
		return false
	}
	if !p.live[index/poolBlockSize][index%poolBlockSize] {
		return false
	}
	return p.generations[index] == id.Generation()
}

// Release returns the record to the free list and invalidates id.
func (p *ItemPool) Release(id ItemId) error {
	if !p.Alive(id) {
		return ErrStaleHandle
	}

	index := id.Index()
	blockIdx := index / poolBlockSize
	slotIdx := index % poolBlockSize

	p.live[blockIdx][slotIdx] = false
	p.blocks[blockIdx][slotIdx] = Item{}
	p.generations[index]++
	if p.generations[index] == 0 {
		p.generations[index] = 1
	}
	p.freeSlots = append(p.freeSlots, index)
	return nil
}

// Reset releases every live record.
func (p *ItemPool) Reset() {
	for index := uint32(0); index < p.nextIndex; index++ {
		id := NewItemId(index, p.generations[index])
		if p.Alive(id) {
			_ = p.Release(id)
		}
	}
}

// Len returns the number of live records.
func (p *ItemPool) Len() int {
	return int(p.nextIndex) - len(p.freeSlots)
}

// Cap returns the number of record slots currently backed by memory.
func (p *ItemPool) Cap() int {
	return len(p.blocks) * poolBlockSize
}

// Grown returns how many blocks were allocated beyond the initial sizing.
func (p *ItemPool) Grown() int {
	return p.grown
}
