// Package avltree implements an AVL tree augmented with subtree size,
// giving O(log n) rank, k-th-element offset navigation and lower-bound
// search on top of the usual balanced insert/lookup/remove.
package avltree

// Node is embedded by value into whatever record is stored in a tree.
// Value carries a back-reference to the owning record.
type Node struct {
	parent *Node
	left   *Node
	right  *Node
	height uint32 // tree height, leaves are 1, nil is 0
	size   uint32 // subtree size, leaves are 1, nil is 0

	// Value is the payload associated with this node.
	Value any
}

// NewNode returns a fresh, unlinked Node carrying the given value.
func NewNode(value any) *Node {
	return &Node{height: 1, size: 1, Value: value}
}

// nodeHeight returns the height of the subtree rooted at n, treating
// nil as height 0.
func nodeHeight(n *Node) uint32 {
	if n == nil {
		return 0
	}
	return n.height
}

// nodeSize returns the size of the subtree rooted at n, treating nil
// as size 0.
func nodeSize(n *Node) uint32 {
	if n == nil {
		return 0
	}
	return n.size
}

// update recomputes n's height and size from its children. Must be
// called bottom-up after any structural change under n.
func (n *Node) update() {
	n.height = 1 + max32(nodeHeight(n.left), nodeHeight(n.right))
	n.size = 1 + nodeSize(n.left) + nodeSize(n.right)
}

// balanceFactor is height(left) - height(right).
func (n *Node) balanceFactor() int {
	return int(nodeHeight(n.left)) - int(nodeHeight(n.right))
}

func max32(a, b uint32) uint32 {
	if a > b {
		return a
	}
	return b
}
