package avltree

import "testing"

type intEntry struct {
	key int
}

func newIntNode(key int) *Node {
	return NewNode(&intEntry{key: key})
}

func cmpInt(a, b *Node) int {
	av := a.Value.(*intEntry).key
	bv := b.Value.(*intEntry).key
	return av - bv
}

func key(n *Node) int {
	if n == nil {
		return -1
	}
	return n.Value.(*intEntry).key
}

func checkInvariants(t *testing.T, n *Node) {
	t.Helper()
	if n == nil {
		return
	}
	lh, rh := nodeHeight(n.left), nodeHeight(n.right)
	diff := int(lh) - int(rh)
	if diff > 1 || diff < -1 {
		t.Fatalf("node %d unbalanced: left height %d, right height %d", key(n), lh, rh)
	}
	wantSize := 1 + nodeSize(n.left) + nodeSize(n.right)
	if n.size != wantSize {
		t.Fatalf("node %d size mismatch: got %d want %d", key(n), n.size, wantSize)
	}
	wantHeight := 1 + max32(lh, rh)
	if n.height != wantHeight {
		t.Fatalf("node %d height mismatch: got %d want %d", key(n), n.height, wantHeight)
	}
	checkInvariants(t, n.left)
	checkInvariants(t, n.right)
}

func buildTree(keys ...int) (*Tree, map[int]*Node) {
	tr := &Tree{}
	nodes := make(map[int]*Node, len(keys))
	for _, k := range keys {
		n := newIntNode(k)
		nodes[k] = n
		tr.Insert(n, cmpInt)
	}
	return tr, nodes
}

func TestInsertMaintainsInvariants(t *testing.T) {
	keys := make([]int, 25)
	for i := range keys {
		keys[i] = i + 1
	}
	tr, _ := buildTree(keys...)
	checkInvariants(t, tr.Root())
	if tr.Len() != 25 {
		t.Fatalf("expected len 25, got %d", tr.Len())
	}
}

func TestRank(t *testing.T) {
	keys := make([]int, 25)
	for i := range keys {
		keys[i] = i + 1
	}
	tr, nodes := buildTree(keys...)

	for _, k := range []int{1, 15, 25} {
		if got := tr.Rank(nodes[k]); got != uint64(k) {
			t.Fatalf("rank(%d) = %d, want %d", k, got, k)
		}
	}
}

func TestFindOffset(t *testing.T) {
	keys := make([]int, 25)
	for i := range keys {
		keys[i] = i + 1
	}
	tr, nodes := buildTree(keys...)
	start := nodes[10]

	if got := tr.FindOffset(start, 15); key(got) != 25 {
		t.Fatalf("find_offset(+15) from 10 = %v, want 25", key(got))
	}
	if got := tr.FindOffset(start, -5); key(got) != 5 {
		t.Fatalf("find_offset(-5) from 10 = %v, want 5", key(got))
	}
	if got := tr.FindOffset(start, 16); got != nil {
		t.Fatalf("find_offset(+16) from 10 should be nil, got %v", key(got))
	}
	if got := tr.FindOffset(start, -11); got != nil {
		t.Fatalf("find_offset(-11) from 10 should be nil, got %v", key(got))
	}
}

func TestFindFirstGE(t *testing.T) {
	tr, _ := buildTree(10, 20, 30, 40)
	got := tr.FindFirstGE(newIntNode(25), cmpInt)
	if key(got) != 30 {
		t.Fatalf("find_first_ge(25) = %v, want 30", key(got))
	}
	if tr.FindFirstGE(newIntNode(41), cmpInt) != nil {
		t.Fatal("find_first_ge(41) should be nil")
	}
}

func TestRemoveTwoChildPreservesOrder(t *testing.T) {
	keys := []int{50, 30, 70, 20, 40, 60, 80, 10}
	tr, nodes := buildTree(keys...)
	tr.Remove(nodes[50]) // two children

	checkInvariants(t, tr.Root())

	var order []int
	var walk func(*Node)
	walk = func(n *Node) {
		if n == nil {
			return
		}
		walk(n.left)
		order = append(order, key(n))
		walk(n.right)
	}
	walk(tr.Root())

	want := []int{10, 20, 30, 40, 60, 70, 80}
	if len(order) != len(want) {
		t.Fatalf("unexpected in-order length: %v", order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("in-order mismatch at %d: got %v want %v", i, order, want)
		}
	}
}

func TestRemoveLeafAndOneChild(t *testing.T) {
	tr, nodes := buildTree(10, 5, 15, 3)
	tr.Remove(nodes[3]) // leaf
	checkInvariants(t, tr.Root())

	tr2, nodes2 := buildTree(10, 5, 15, 3)
	tr2.Remove(nodes2[5]) // one child (3)
	checkInvariants(t, tr2.Root())
}
