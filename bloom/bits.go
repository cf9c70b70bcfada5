package bloom

import (
	"github.com/bits-and-blooms/bitset"
	mapset "github.com/deckarep/golang-set/v2"
)

// bitStore holds the set positions of a filter. Positions are never cleared.
type bitStore interface {
	// set marks i and reports whether it was previously clear.
	set(i uint64) bool
	test(i uint64) bool
	// each visits set positions until fn returns false.
	each(fn func(i uint64) bool)
}

// denseBits is a fixed m bit vector, ceil(m/64) words regardless of fill.
type denseBits struct {
	b *bitset.BitSet
}

func newDenseBits(m uint64) *denseBits {
	return &denseBits{b: bitset.New(uint(m))}
}

func (d *denseBits) set(i uint64) bool {
	if d.b.Test(uint(i)) {
		return false
	}
	d.b.Set(uint(i))
	return true
}

func (d *denseBits) test(i uint64) bool {
	return d.b.Test(uint(i))
}

func (d *denseBits) each(fn func(i uint64) bool) {
	for i, ok := d.b.NextSet(0); ok; i, ok = d.b.NextSet(i + 1) {
		if !fn(uint64(i)) {
			return
		}
	}
}

// sparseBits stores only the set positions. Memory is proportional to the
// number of insertions times k, which suits very large m with few elements.
type sparseBits struct {
	s mapset.Set[uint64]
}

func newSparseBits() *sparseBits {
	return &sparseBits{s: mapset.NewThreadUnsafeSet[uint64]()}
}

func (s *sparseBits) set(i uint64) bool {
	return s.s.Add(i)
}

func (s *sparseBits) test(i uint64) bool {
	return s.s.Contains(i)
}

func (s *sparseBits) each(fn func(i uint64) bool) {
	// mapset stops when the callback returns true.
	s.s.Each(func(i uint64) bool {
		return !fn(i)
	})
}
