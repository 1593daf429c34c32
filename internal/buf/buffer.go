// Package buf implements a growable byte buffer with amortized O(1)
// append and consume, plus the fixed-width codec primitives the wire
// protocol builds on.
package buf

import "log"

// defaultCap is the initial capacity of a fresh Buffer, matching the
// 64KiB starting region used upstream.
const defaultCap = 64 * 1024

// Buffer is a contiguous byte region with four logical cursors:
// region-start (always 0), region-end (len(region)), data-start and
// data-end. Appends write at data-end, consumes advance data-start;
// compaction and growth keep region-start <= data-start <= data-end <=
// region-end at all times.
type Buffer struct {
	region    []byte
	dataStart int
	dataEnd   int
}

// New returns an empty Buffer with the default starting capacity.
func New() *Buffer {
	return &Buffer{region: make([]byte, defaultCap)}
}

// NewWithCapacity returns an empty Buffer with the given starting
// capacity, mostly useful for tests that want to exercise growth
// without appending 64KiB first.
func NewWithCapacity(n int) *Buffer {
	if n <= 0 {
		n = defaultCap
	}
	return &Buffer{region: make([]byte, n)}
}

// Append copies p onto the tail of the buffer, compacting or growing
// the backing region as needed. Capacity only ever grows.
func (b *Buffer) Append(p []byte) {
	n := len(p)
	if n == 0 {
		return
	}

	spaceAtStart := b.dataStart
	spaceAtEnd := len(b.region) - b.dataEnd
	dataSize := b.dataEnd - b.dataStart

	switch {
	case n <= spaceAtEnd:
		copy(b.region[b.dataEnd:], p)
		b.dataEnd += n

	case n <= spaceAtStart+spaceAtEnd:
		copy(b.region, b.region[b.dataStart:b.dataEnd])
		b.dataStart = 0
		b.dataEnd = dataSize
		copy(b.region[b.dataEnd:], p)
		b.dataEnd += n

	default:
		grown := make([]byte, 2*len(b.region))
		copy(grown, b.region)
		b.region = grown
		b.Append(p)
	}
}

// AppendUint8 appends a single byte.
func (b *Buffer) AppendUint8(v uint8) {
	b.Append([]byte{v})
}

// AppendUint32 appends v as 4 little-endian bytes.
func (b *Buffer) AppendUint32(v uint32) {
	var tmp [4]byte
	putUint32(tmp[:], v)
	b.Append(tmp[:])
}

// AppendInt64 appends v as 8 little-endian bytes.
func (b *Buffer) AppendInt64(v int64) {
	var tmp [8]byte
	putUint64(tmp[:], uint64(v))
	b.Append(tmp[:])
}

// AppendDbl appends v as an 8-byte IEEE-754 little-endian double.
func (b *Buffer) AppendDbl(v float64) {
	var tmp [8]byte
	putUint64(tmp[:], dblBits(v))
	b.Append(tmp[:])
}

// Consume advances the head of the buffer by n bytes. Consuming an
// empty buffer is a no-op, logged and otherwise ignored.
func (b *Buffer) Consume(n int) {
	if b.dataStart == b.dataEnd {
		log.Println("buf: nothing to consume")
		return
	}
	b.dataStart += n
}

// Data returns a view of the live bytes currently held in the buffer.
// The slice aliases the buffer's internal storage and is only valid
// until the next Append or Consume call.
func (b *Buffer) Data() []byte {
	return b.region[b.dataStart:b.dataEnd]
}

// Size returns the number of live bytes currently held.
func (b *Buffer) Size() int {
	return b.dataEnd - b.dataStart
}
