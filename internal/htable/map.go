package htable

const (
	defaultInitialSlots  = 8
	defaultMaxLoadFactor = 8   // keys per slot before a resize is triggered
	defaultRehashBatch   = 128 // nodes migrated per operation
)

// Map is a dynamic hashtable using progressive rehashing: resizes
// never stop the world, they migrate a bounded number of keys per
// subsequent operation instead.
type Map struct {
	newer      *table
	older      *table // nil outside of an ongoing rehash
	migratePos uint64 // next slot in older to drain

	maxLoadFactor uint64
	rehashBatch   uint64
}

// New returns an empty Map with the default initial slot count, load
// factor and rehash batch.
func New() *Map {
	return NewWithConfig(defaultInitialSlots, defaultMaxLoadFactor, defaultRehashBatch)
}

// NewWithLoadFactor returns an empty Map with the default initial slot
// count but a caller-supplied load factor and rehash batch, for
// collaborators that thread tuning values down from configuration
// without wanting to also pick an initial slot count.
func NewWithLoadFactor(maxLoadFactor, rehashBatch uint64) *Map {
	return NewWithConfig(defaultInitialSlots, maxLoadFactor, rehashBatch)
}

// NewWithConfig returns an empty Map with explicit tuning parameters,
// mainly so tests can exercise progressive rehashing without inserting
// thousands of keys.
func NewWithConfig(initialSlots, maxLoadFactor, rehashBatch uint64) *Map {
	return &Map{
		newer:         newTable(initialSlots),
		maxLoadFactor: maxLoadFactor,
		rehashBatch:   rehashBatch,
	}
}

// Insert adds node to the map, possibly triggering a resize, and
// then always runs one rehash step.
func (m *Map) Insert(node *Node) {
	m.newer.insert(node)

	if m.older == nil && m.newer.numKeys >= m.newer.numSlots*m.maxLoadFactor {
		m.resize()
	}
	m.migrateKeys()
}

// Lookup returns the node matching key, or nil if absent.
func (m *Map) Lookup(key *Node, eq EqualFunc) *Node {
	m.migrateKeys()

	from := m.newer.lookup(key, eq)
	if from == nil && m.older != nil {
		from = m.older.lookup(key, eq)
	}
	if from == nil {
		return nil
	}
	return *from
}

// Remove detaches and returns the node matching key, or nil if absent.
func (m *Map) Remove(key *Node, eq EqualFunc) *Node {
	m.migrateKeys()

	if from := m.newer.lookup(key, eq); from != nil {
		return m.newer.detach(from)
	}
	if m.older != nil {
		if from := m.older.lookup(key, eq); from != nil {
			return m.older.detach(from)
		}
	}
	return nil
}

// ForEach visits every node in the map, across both tables if a
// rehash is in progress.
func (m *Map) ForEach(cb func(*Node)) {
	m.newer.forEach(cb)
	if m.older != nil {
		m.older.forEach(cb)
	}
}

// Len returns the total number of keys held, summed across both
// tables.
func (m *Map) Len() uint64 {
	n := m.newer.numKeys
	if m.older != nil {
		n += m.older.numKeys
	}
	return n
}

// migrateKeys moves up to rehashBatch nodes from older into newer,
// draining each non-empty slot fully before advancing past it. Empty
// slots are skipped without counting against the budget.
func (m *Map) migrateKeys() {
	if m.older == nil {
		return
	}

	migrated := uint64(0)
	for migrated < m.rehashBatch && m.older.numKeys > 0 {
		from := &m.older.slots[m.migratePos]
		if *from == nil {
			m.migratePos++
			continue
		}
		m.newer.insert(m.older.detach(from))
		migrated++
	}

	if m.older.numKeys == 0 {
		m.older = nil
	}
}

// resize moves newer to older and allocates a newer table with double
// the slot count.
func (m *Map) resize() {
	m.older = m.newer
	m.newer = newTable(2 * m.older.numSlots)
	m.migratePos = 0
}
