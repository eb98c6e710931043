package hashset

import "hash/fnv"

// HashFunc computes the hash of a member. The first slot probed for v is
// HashFunc(v) modulo the table's capacity.
type HashFunc func(v string) uint64

// FNVHash is a [HashFunc] that uses the 64-bit FNV-1a hash of v.
func FNVHash(v string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(v))
	return h.Sum64()
}

// LengthHash is a [HashFunc] that uses the length of v.
//
// All members of the same length share a probe path, which makes it useful
// for exercising collision handling but slow for real workloads.
func LengthHash(v string) uint64 {
	return uint64(len(v))
}
