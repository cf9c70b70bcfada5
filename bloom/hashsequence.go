package bloom

import (
	"fmt"
	"iter"
	"math/rand/v2"

	"github.com/spaolacci/murmur3"
)

// pcgStream is the second PCG state word. Any fixed odd constant works; it
// only has to be the same for every draw.
const pcgStream = 0x9E3779B97F4A7C15

// HashSequence returns the k bit indexes in [0, m) derived from the element
// hash h. The sequence is deterministic: the same (h, k, m, scheme) always
// yields the same indexes in the same order.
func HashSequence(h uint64, k uint32, m uint64, scheme IndexScheme) (iter.Seq[uint64], error) {
	if k == 0 {
		return nil, ErrBadK
	}
	if m == 0 {
		return nil, ErrBadMBits
	}
	if err := checkScheme(scheme); err != nil {
		return nil, err
	}
	return func(yield func(uint64) bool) {
		eachIndex(scheme, h, k, m, yield)
	}, nil
}

func checkScheme(scheme IndexScheme) error {
	switch scheme {
	case IndexPRNG, IndexDoubleHash:
		return nil
	default:
		return fmt.Errorf("%w: %d", ErrBadIndexScheme, scheme)
	}
}

// eachIndex calls fn for each of the k indexes of h and stops early if fn
// returns false. It reports whether all k indexes were visited.
//
// The caller is responsible for ensuring k > 0, m > 0 and a valid scheme.
func eachIndex(scheme IndexScheme, h uint64, k uint32, m uint64, fn func(uint64) bool) bool {
	if scheme == IndexDoubleHash {
		return eachIndexDoubleHash(h, k, m, fn)
	}
	return eachIndexPRNG(h, k, m, fn)
}

func eachIndexPRNG(h uint64, k uint32, m uint64, fn func(uint64) bool) bool {
	r := rand.New(rand.NewPCG(h, pcgStream))
	for i := uint32(0); i < k; i++ {
		if !fn(r.Uint64N(m)) {
			return false
		}
	}
	return true
}

func eachIndexDoubleHash(h uint64, k uint32, m uint64, fn func(uint64) bool) bool {
	h1, h2 := hashPair(h)
	for i := uint64(0); i < uint64(k); i++ {
		if !fn((h1 + i*h2) % m) {
			return false
		}
	}
	return true
}

func hashPair(h uint64) (h1 uint64, h2 uint64) {
	var buf [8]byte
	writeU64BE(buf[:], h)
	h1, h2 = murmur3.Sum128(buf[:])
	if h2 == 0 {
		h2 = 1
	}
	return h1, h2
}
