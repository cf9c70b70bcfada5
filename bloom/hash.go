package bloom

import (
	"hash/maphash"

	"github.com/cespare/xxhash/v2"
)

// Hasher maps an element to its 64 bit identity hash. Equal elements must
// produce equal hashes for the lifetime of any filter using the hasher.
type Hasher[T any] func(T) uint64

// comparableSeed is fixed for the process so that independently constructed
// filters agree on the bit positions of an element.
var comparableSeed = maphash.MakeSeed()

// HashComparable is the default Hasher. Its output is stable within a process
// but not across processes.
//
// maphash hashes NaN to a fresh random value each time, so a NaN added to a
// Filter[float64] is not found again. NaN never equals itself; use WithHasher
// with a hasher of your own if NaN must be treated as one element.
func HashComparable[T comparable](v T) uint64 {
	return maphash.Comparable(comparableSeed, v)
}

// HashString hashes s with xxhash64. Stable across processes.
func HashString(s string) uint64 {
	return xxhash.Sum64String(s)
}

// HashBytes hashes b with xxhash64. Stable across processes.
func HashBytes(b []byte) uint64 {
	return xxhash.Sum64(b)
}

// HashUint64 hashes the big endian encoding of v with xxhash64.
func HashUint64(v uint64) uint64 {
	var buf [8]byte
	writeU64BE(buf[:], v)
	return xxhash.Sum64(buf[:])
}
