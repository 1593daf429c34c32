// Package htable implements a fixed-size chained hash table and a
// progressively-rehashed hash map built on top of it.
package htable

// Node is embedded by value into whatever record is stored in a
// table: the hash value is precomputed by the caller, and Value
// carries a back-reference to the owning record.
type Node struct {
	next *Node
	hval uint64
	// Value is the payload the caller associates with this node; it
	// stands in for the container_of trick used to recover an owning
	// record from its intrusive link.
	Value any
}

// Hval returns the node's precomputed hash value.
func (n *Node) Hval() uint64 { return n.hval }

// NewNode returns a fresh, unlinked Node carrying the given hash and
// value.
func NewNode(hval uint64, value any) *Node {
	return &Node{hval: hval, Value: value}
}

// EqualFunc reports whether a candidate node is the same logical
// entry as key, assuming their hashes already matched.
type EqualFunc func(key, candidate *Node) bool

// table is a fixed-size chaining hashtable; num_slots is always a
// power of two so slot indexing is a mask instead of a division.
type table struct {
	slots    []*Node
	numSlots uint64
	numKeys  uint64
	mask     uint64
}

// newTable allocates a table with n slots. n must be a positive power
// of two.
func newTable(n uint64) *table {
	if n == 0 || (n-1)&n != 0 {
		panic("htable: slot count must be a positive power of two")
	}
	return &table{
		slots:    make([]*Node, n),
		numSlots: n,
		mask:     n - 1,
	}
}

// insert links node at the head of its slot's chain (LIFO order).
func (t *table) insert(node *Node) {
	slot := node.hval & t.mask
	node.next = t.slots[slot]
	t.slots[slot] = node
	t.numKeys++
}

// lookup walks the chain at key's slot, gating first on hash equality
// then the caller-supplied eq. It returns the address of the pointer
// referring to the match (the slot itself, or the previous node's
// next field) so the caller can detach in O(1).
func (t *table) lookup(key *Node, eq EqualFunc) **Node {
	slot := key.hval & t.mask
	from := &t.slots[slot]
	for curr := *from; curr != nil; curr = *from {
		if key.hval == curr.hval && eq(key, curr) {
			return from
		}
		from = &curr.next
	}
	return nil
}

// detach unlinks the node pointed to by *from and returns it.
func (t *table) detach(from **Node) *Node {
	node := *from
	*from = node.next
	t.numKeys--
	return node
}

// forEach visits every node across every slot; visitation order is
// unspecified.
func (t *table) forEach(cb func(*Node)) {
	for _, head := range t.slots {
		for n := head; n != nil; n = n.next {
			cb(n)
		}
	}
}
