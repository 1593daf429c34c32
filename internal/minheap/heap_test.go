package minheap

import (
	"math/rand"
	"testing"
)

type intEntry struct{ v int }

func newIntNode(v int) *Node { return NewNode(&intEntry{v: v}) }

func lessInt(a, b *Node) bool {
	return a.Value.(*intEntry).v < b.Value.(*intEntry).v
}

func checkHeapInvariant(t *testing.T, h *Heap) {
	t.Helper()
	for i, n := range h.nodes {
		if n.pos != i {
			t.Fatalf("node at index %d has pos %d", i, n.pos)
		}
		if i > 0 {
			parent := h.nodes[(i+1)/2-1]
			if lessInt(n, parent) {
				t.Fatalf("heap invariant violated at index %d", i)
			}
		}
	}
}

func TestInsertMaintainsHeapInvariant(t *testing.T) {
	h := &Heap{}
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 100; i++ {
		h.Insert(newIntNode(r.Intn(1000)), lessInt)
	}
	checkHeapInvariant(t, h)
}

func TestMinIsSmallest(t *testing.T) {
	h := &Heap{}
	vals := []int{5, 3, 8, 1, 9, 2}
	for _, v := range vals {
		h.Insert(newIntNode(v), lessInt)
	}
	if h.Min().Value.(*intEntry).v != 1 {
		t.Fatalf("expected min 1, got %d", h.Min().Value.(*intEntry).v)
	}
}

func TestRemoveArbitraryElement(t *testing.T) {
	h := &Heap{}
	nodes := make([]*Node, 0, 20)
	r := rand.New(rand.NewSource(2))
	for i := 0; i < 20; i++ {
		n := newIntNode(r.Intn(1000))
		nodes = append(nodes, n)
		h.Insert(n, lessInt)
	}

	// remove a handful of arbitrary (non-root) elements
	h.Remove(nodes[5], lessInt)
	h.Remove(nodes[12], lessInt)
	h.Remove(nodes[0], lessInt)
	checkHeapInvariant(t, h)
	if h.Len() != 17 {
		t.Fatalf("expected 17 remaining, got %d", h.Len())
	}
}

func TestRemoveLastElement(t *testing.T) {
	h := &Heap{}
	a := newIntNode(1)
	h.Insert(a, lessInt)
	h.Remove(a, lessInt)
	if !h.IsEmpty() {
		t.Fatal("heap should be empty")
	}
}
