// Package strhash hashes strings with FNV-1 (not FNV-1a) for use as
// hash-table slot keys.
package strhash

const (
	offset uint64 = 0xcbf29ce484222325
	prime  uint64 = 0x100000001b3
)

// String returns the FNV-1 64-bit hash of s.
//
// Reference: https://en.wikipedia.org/wiki/Fowler%E2%80%93Noll%E2%80%93Vo_hash_function#FNV-1_hash
func String(s string) uint64 {
	h := offset
	for i := 0; i < len(s); i++ {
		h *= prime
		h ^= uint64(s[i])
	}
	return h
}
