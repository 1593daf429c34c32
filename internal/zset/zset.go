// Package zset implements a sorted set of distinct names, each with a
// score, by composing a progressive hash map (point lookup by name)
// with an order-statistics AVL tree (ranked range queries over
// (score,name)).
package zset

import (
	"keyspace/internal/avltree"
	"keyspace/internal/htable"
	"keyspace/internal/strhash"
)

// Pair is a single (score, name) record, simultaneously indexed by
// the set's hash map and its AVL tree. It belongs to exactly one Set.
type Pair struct {
	Name  string
	Score float64

	mapNode  htable.Node
	treeNode avltree.Node
}

// Set is a sorted set.
type Set struct {
	byName *htable.Map
	byRank avltree.Tree
}

// New returns an empty Set using the hash map's default tuning.
func New() *Set {
	return &Set{byName: htable.New()}
}

// NewWithLoadFactor returns an empty Set whose name index uses the
// given load factor and rehash batch, so a Store can apply its
// configured hash-map tuning to every sorted set it creates.
func NewWithLoadFactor(maxLoadFactor, rehashBatch uint64) *Set {
	return &Set{byName: htable.NewWithLoadFactor(maxLoadFactor, rehashBatch)}
}

func pairEqual(key, candidate *htable.Node) bool {
	return key.Value.(*Pair).Name == candidate.Value.(*Pair).Name
}

// comparePairs orders by score (IEEE ordering on doubles), then
// byte-lexicographic on name, with length as the final tie-breaker so
// that the comparator is a strict total order.
func comparePairs(a, b *avltree.Node) int {
	pa, pb := a.Value.(*Pair), b.Value.(*Pair)
	switch {
	case pa.Score < pb.Score:
		return -1
	case pa.Score > pb.Score:
		return 1
	}
	n := len(pa.Name)
	if len(pb.Name) < n {
		n = len(pb.Name)
	}
	for i := 0; i < n; i++ {
		if pa.Name[i] != pb.Name[i] {
			return int(pa.Name[i]) - int(pb.Name[i])
		}
	}
	return len(pa.Name) - len(pb.Name)
}

func (s *Set) lookupNode(name string) *htable.Node {
	key := htable.NewNode(strhash.String(name), &Pair{Name: name})
	return s.byName.Lookup(key, pairEqual)
}

// Insert adds name with the given score, or updates its score if the
// name is already present. It reports whether a new pair was created.
func (s *Set) Insert(name string, score float64) bool {
	if pair := s.Lookup(name); pair != nil {
		s.update(pair, score)
		return false
	}

	pair := &Pair{Name: name, Score: score}
	pair.mapNode = *htable.NewNode(strhash.String(name), pair)
	pair.treeNode = *avltree.NewNode(pair)

	s.byName.Insert(&pair.mapNode)
	s.byRank.Insert(&pair.treeNode, comparePairs)
	return true
}

func (s *Set) update(pair *Pair, score float64) {
	s.byRank.Remove(&pair.treeNode)
	pair.treeNode = *avltree.NewNode(pair)
	pair.Score = score
	s.byRank.Insert(&pair.treeNode, comparePairs)
}

// Lookup returns the pair for name, or nil if absent.
func (s *Set) Lookup(name string) *Pair {
	node := s.lookupNode(name)
	if node == nil {
		return nil
	}
	return node.Value.(*Pair)
}

// Remove deletes name from the set, returning whether it was present.
func (s *Set) Remove(name string) bool {
	key := htable.NewNode(strhash.String(name), &Pair{Name: name})
	node := s.byName.Remove(key, pairEqual)
	if node == nil {
		return false
	}
	pair := node.Value.(*Pair)
	s.byRank.Remove(&pair.treeNode)
	return true
}

// Rank returns the one-based rank of name, or -1 if absent.
func (s *Set) Rank(name string) int64 {
	pair := s.Lookup(name)
	if pair == nil {
		return -1
	}
	return int64(s.byRank.Rank(&pair.treeNode))
}

// Len returns the number of pairs in the set.
func (s *Set) Len() uint64 {
	return s.byName.Len()
}

// FindAllGE locates the first pair >= (score,name), skips offset
// further positions, then collects up to limit consecutive pairs.
func (s *Set) FindAllGE(score float64, name string, offset, limit int64) []*Pair {
	key := avltree.NewNode(&Pair{Name: name, Score: score})

	node := s.byRank.FindFirstGE(key, comparePairs)
	if node == nil {
		return nil
	}
	if offset != 0 {
		node = s.byRank.FindOffset(node, offset)
	}

	var out []*Pair
	for node != nil && int64(len(out)) < limit {
		out = append(out, node.Value.(*Pair))
		node = s.byRank.FindOffset(node, 1)
	}
	return out
}
