package bloom

import (
	"errors"
	"math"
)

// MaxCardinality is returned by EstimatedCardinality once every bit is set.
// The estimator diverges at full saturation, so no finite count is computed.
const MaxCardinality uint64 = math.MaxUint64

// IndexScheme selects how the k bit indexes of an element are derived from
// its hash.
type IndexScheme uint8

const (
	// IndexPRNG seeds a PCG generator with the element hash and draws k
	// values uniformly from [0, m).
	IndexPRNG IndexScheme = iota

	// IndexDoubleHash splits a murmur3-128 digest of the element hash into
	// (h1, h2) and uses j_i = (h1 + i*h2) mod m.
	IndexDoubleHash
)

func (s IndexScheme) String() string {
	switch s {
	case IndexPRNG:
		return "prng"
	case IndexDoubleHash:
		return "doublehash"
	default:
		return "unknown"
	}
}

var (
	ErrBadK           = errors.New("bloom: k must be at least 1")
	ErrBadMBits       = errors.New("bloom: m must be at least 1")
	ErrBadN           = errors.New("bloom: n must be at least 1")
	ErrBadEpsilon     = errors.New("bloom: epsilon must be in (0, 1)")
	ErrBadIndexScheme = errors.New("bloom: index scheme unsupported")
	ErrNilHasher      = errors.New("bloom: hasher must not be nil")

	ErrSizeOverflow = errors.New("bloom: size computation overflow")
)
