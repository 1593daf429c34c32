package buf

import (
	"encoding/binary"
	"math"
)

// The wire format fixes little-endian encoding for every multi-byte
// field; the source this package is modeled on carries both a
// network-order and a host-order revision of the same fields, so this
// is a deliberate, single, uniform choice rather than an accident.
func putUint32(dst []byte, v uint32) { binary.LittleEndian.PutUint32(dst, v) }
func putUint64(dst []byte, v uint64) { binary.LittleEndian.PutUint64(dst, v) }

func dblBits(v float64) uint64 { return math.Float64bits(v) }

// ReadUint8 reads a single byte from src.
func ReadUint8(src []byte) uint8 {
	return src[0]
}

// ReadUint32 reads a 4-byte little-endian uint32 from src.
func ReadUint32(src []byte) uint32 {
	return binary.LittleEndian.Uint32(src)
}

// ReadInt64 reads an 8-byte little-endian int64 from src.
func ReadInt64(src []byte) int64 {
	return int64(binary.LittleEndian.Uint64(src))
}

// ReadDbl reads an 8-byte little-endian IEEE-754 double from src.
func ReadDbl(src []byte) float64 {
	return math.Float64frombits(binary.LittleEndian.Uint64(src))
}

// ReadStr copies n raw bytes from src into a new string. Callers must
// ensure len(src) >= n; decoders never read past the stated length.
func ReadStr(src []byte, n int) string {
	return string(src[:n])
}
