// Package timer implements the two timer kinds the store needs: an
// idle timer queued in FIFO-by-expiry order, and a TTL timer ordered
// by a min-heap so the earliest expiry is always at the root.
package timer

import (
	"keyspace/internal/clock"
	"keyspace/internal/dque"
	"keyspace/internal/minheap"
)

// DefaultIdleTimeoutMs is the connection idle timeout, matching the
// 60-second constant the source hard-codes.
const DefaultIdleTimeoutMs int64 = 60_000

// Idle is a timer node embedded in an intrusive queue; collaborators
// scan from the queue's head, expiring entries whose expiry has
// passed.
type Idle struct {
	dque.Node
	ExpiresAtMs int64
	now         clock.Source
	timeoutMs   int64
}

// NewIdle returns a fresh Idle timer with expiry now + timeoutMs.
func NewIdle(now clock.Source, timeoutMs int64) *Idle {
	t := &Idle{now: now, timeoutMs: timeoutMs}
	t.Node.Value = t
	t.arm()
	return t
}

func (t *Idle) arm() {
	t.ExpiresAtMs = t.now() + t.timeoutMs
}

// Reset re-arms the timer's expiry. The caller is responsible for
// re-appending the node at the tail of its queue to preserve
// FIFO-by-expiry order, per this package's contract with its queue.
func (t *Idle) Reset() {
	t.arm()
}

// Expired reports whether the timer's expiry has passed.
func (t *Idle) Expired() bool {
	return t.ExpiresAtMs <= t.now()
}

// TTL is a timer node embedded in a min-heap keyed by absolute
// expiry. Owner is a back-reference collaborators may use to recover
// the record this timer expires, standing in for the source's
// container_of trick.
type TTL struct {
	minheap.Node
	ExpiresAtMs int64
	Owner       any
}

// NewTTL returns a fresh TTL timer expiring at now + ttlMs.
func NewTTL(now clock.Source, ttlMs int64) *TTL {
	t := &TTL{ExpiresAtMs: now() + ttlMs}
	t.Node.Value = t
	return t
}

// Less orders two TTL timers by expiry, for use as a minheap.LessFunc.
func Less(a, b *minheap.Node) bool {
	return a.Value.(*TTL).ExpiresAtMs < b.Value.(*TTL).ExpiresAtMs
}
