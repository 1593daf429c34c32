// Package store owns the keyspace: a progressive hash map of named
// entries (strings or sorted sets) plus a TTL index layered over a
// min-heap, and dispatches decoded commands onto the right operation.
package store

import (
	"errors"

	"keyspace/internal/clock"
	"keyspace/internal/htable"
	"keyspace/internal/minheap"
	"keyspace/internal/strhash"
	"keyspace/internal/timer"
	"keyspace/internal/wire"
	"keyspace/internal/zset"
)

// kind discriminates what an Entry holds.
type kind uint8

const (
	kindString kind = iota
	kindZSet
)

// entry is one keyspace record. It embeds the hash-map linkage so the
// store's map indexes entries directly, the same intrusive style
// internal/zset uses for its own pairs.
type entry struct {
	mapNode htable.Node

	key  string
	kind kind
	str  string
	zset *zset.Set

	ttl *timer.TTL // nil if the key has no expiry
}

func entryEqual(key, candidate *htable.Node) bool {
	return key.Value.(*entry).key == candidate.Value.(*entry).key
}

// Store is the single keyspace container a server dispatches commands
// against.
type Store struct {
	keys *htable.Map
	ttls *minheap.Heap
	now  clock.Source

	zsetQueryLimit int64
	maxLoadFactor  uint64
	rehashBatch    uint64
}

// New returns an empty Store. now is the clock source timers consult;
// pass clock.System in production and a clock.Fake in tests.
// maxLoadFactor and rehashBatch tune every hash map the store owns:
// its own keyspace map and the name index of every sorted set it
// creates.
func New(now clock.Source, zsetQueryLimit int64, maxLoadFactor, rehashBatch uint64) *Store {
	return &Store{
		keys:           htable.NewWithLoadFactor(maxLoadFactor, rehashBatch),
		ttls:           &minheap.Heap{},
		now:            now,
		zsetQueryLimit: zsetQueryLimit,
		maxLoadFactor:  maxLoadFactor,
		rehashBatch:    rehashBatch,
	}
}

func (s *Store) lookup(key string) *entry {
	node := s.keys.Lookup(htable.NewNode(strhash.String(key), &entry{key: key}), entryEqual)
	if node == nil {
		return nil
	}
	e := node.Value.(*entry)
	if e.ttl != nil && e.ttl.ExpiresAtMs <= s.now() {
		s.evict(e)
		return nil
	}
	return e
}

// evict removes an expired (or deleted) entry from every index
// that references it: the keyspace map and, if armed, the TTL heap.
func (s *Store) evict(e *entry) {
	s.keys.Remove(htable.NewNode(strhash.String(e.key), e), entryEqual)
	if e.ttl != nil {
		s.ttls.Remove(&e.ttl.Node, timer.Less)
		e.ttl = nil
	}
}

// reapExpired removes every key at the head of the TTL heap whose
// expiry has already passed. Keys calls this before listing; every
// read/write path also lazily reaps the specific key it touches via
// lookup.
func (s *Store) reapExpired() {
	for {
		min := s.ttls.Min()
		if min == nil {
			return
		}
		t := min.Value.(*timer.TTL)
		if t.ExpiresAtMs > s.now() {
			return
		}
		s.evictByTTL(t)
	}
}

func (s *Store) evictByTTL(t *timer.TTL) {
	if e, ok := t.Owner.(*entry); ok {
		s.evict(e)
	}
}

// Get returns the string value of key and whether it was present. A
// key holding a sorted set is reported as wrong-type.
func (s *Store) Get(key string) (val string, ok bool, wrongType bool) {
	e := s.lookup(key)
	if e == nil {
		return "", false, false
	}
	if e.kind != kindString {
		return "", false, true
	}
	return e.str, true, false
}

// Set stores value under key as a plain string, overwriting any
// previous value (and clearing any previous TTL, matching the
// overwrite-cancels-expiry convention most KV stores follow).
func (s *Store) Set(key, value string) {
	if e := s.lookup(key); e != nil {
		if e.ttl != nil {
			s.ttls.Remove(&e.ttl.Node, timer.Less)
			e.ttl = nil
		}
		e.kind = kindString
		e.str = value
		e.zset = nil
		return
	}

	e := &entry{key: key, kind: kindString, str: value}
	e.mapNode = *htable.NewNode(strhash.String(key), e)
	s.keys.Insert(&e.mapNode)
}

// Del removes keys, returning the number actually present.
func (s *Store) Del(keys ...string) int64 {
	var n int64
	for _, k := range keys {
		if e := s.lookup(k); e != nil {
			s.evict(e)
			n++
		}
	}
	return n
}

// Keys returns every live (non-expired) key currently in the store.
func (s *Store) Keys() []string {
	s.reapExpired()
	var out []string
	s.keys.ForEach(func(n *htable.Node) {
		e := n.Value.(*entry)
		if e.ttl == nil || e.ttl.ExpiresAtMs > s.now() {
			out = append(out, e.key)
		}
	})
	return out
}

// DBSize returns the number of live keys.
func (s *Store) DBSize() int64 {
	return int64(len(s.Keys()))
}

func (s *Store) zsetFor(key string, createIfMissing bool) (*zset.Set, bool, error) {
	e := s.lookup(key)
	if e == nil {
		if !createIfMissing {
			return nil, false, nil
		}
		e = &entry{key: key, kind: kindZSet, zset: zset.NewWithLoadFactor(s.maxLoadFactor, s.rehashBatch)}
		e.mapNode = *htable.NewNode(strhash.String(key), e)
		s.keys.Insert(&e.mapNode)
		return e.zset, true, nil
	}
	if e.kind != kindZSet {
		return nil, false, errWrongType
	}
	return e.zset, true, nil
}

// pexpire arms key to expire ttlMs milliseconds from now, reporting
// whether the key existed.
func (s *Store) Pexpire(key string, ttlMs int64) bool {
	e := s.lookup(key)
	if e == nil {
		return false
	}
	if e.ttl != nil {
		s.ttls.Remove(&e.ttl.Node, timer.Less)
	}
	e.ttl = timer.NewTTL(s.now, ttlMs)
	e.ttl.Owner = e
	s.ttls.Insert(&e.ttl.Node, timer.Less)
	return true
}

// Pttl returns the remaining time-to-live in milliseconds, -1 if the
// key exists with no expiry, or -2 if the key does not exist.
func (s *Store) Pttl(key string) int64 {
	e := s.lookup(key)
	if e == nil {
		return -2
	}
	if e.ttl == nil {
		return -1
	}
	remaining := e.ttl.ExpiresAtMs - s.now()
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Persist removes any expiry on key, reporting whether one was
// cleared.
func (s *Store) Persist(key string) bool {
	e := s.lookup(key)
	if e == nil || e.ttl == nil {
		return false
	}
	s.ttls.Remove(&e.ttl.Node, timer.Less)
	e.ttl = nil
	return true
}

var errWrongType = errors.New("operation against a key holding the wrong kind of value")

// responseErr maps an internal sentinel error onto the wire's wrong-
// type response.
func responseErr(err error) wire.Response {
	if errors.Is(err, errWrongType) {
		return wire.Err{Code: wire.ErrWrongType, Msg: err.Error()}
	}
	return wire.Err{Code: wire.ErrUnknown, Msg: err.Error()}
}
