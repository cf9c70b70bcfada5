package bloom

import (
	"fmt"
	"iter"
	"math"
)

// Filter is a Bloom filter over elements of type T with k hash rounds and m
// addressable bits.
//
// A Filter is not safe for concurrent use. See Synchronized.
type Filter[T any] struct {
	k    uint32
	m    uint64
	bits bitStore
	nset uint64
	opts FilterOptions[T]
}

// New creates an empty filter with k hash rounds over m bits, hashing
// elements with HashComparable unless WithHasher says otherwise.
func New[T comparable](k uint32, m uint64, opts ...Option) (*Filter[T], error) {
	return newFilter(k, m, HashComparable[T], opts...)
}

// NewWithHasher creates an empty filter for any element type, including
// types that are not comparable such as []byte.
func NewWithHasher[T any](k uint32, m uint64, hasher Hasher[T], opts ...Option) (*Filter[T], error) {
	if hasher == nil {
		return nil, ErrNilHasher
	}
	return newFilter(k, m, hasher, opts...)
}

func newFilter[T any](k uint32, m uint64, hasher Hasher[T], opts ...Option) (*Filter[T], error) {
	if k == 0 {
		return nil, fmt.Errorf("%w: k=%d", ErrBadK, k)
	}
	if m == 0 {
		return nil, fmt.Errorf("%w: m=%d", ErrBadMBits, m)
	}

	o := newFilterOptions(hasher, opts...)
	if o.Hasher == nil {
		return nil, ErrNilHasher
	}
	if err := checkScheme(o.IndexScheme); err != nil {
		return nil, err
	}

	f := &Filter[T]{k: k, m: m, opts: o}
	if o.Sparse {
		f.bits = newSparseBits()
	} else {
		f.bits = newDenseBits(m)
	}

	if f.opts.Log != nil {
		for _, ignored := range o.ignored {
			f.opts.Log.Debugf("bloom: ignoring option %s for element type %T", ignored, *new(T))
		}
		f.opts.Log.Debugf("bloom: new filter k=%d m=%d scheme=%s sparse=%v", k, m, o.IndexScheme, o.Sparse)
	}
	return f, nil
}

// NewWithApproximateEpsilon sizes m for roughly epsilon false positives at n
// elements and picks the optimal k for that m.
func NewWithApproximateEpsilon[T comparable](n uint64, epsilon float64, opts ...Option) (*Filter[T], error) {
	m, err := MWithApproximateEpsilon(n, epsilon)
	if err != nil {
		return nil, err
	}
	k, err := OptimalK(m, n)
	if err != nil {
		return nil, err
	}
	return New[T](k, m, opts...)
}

// NewWithEpsilonUpperBound sizes m so that the false positive rate at n
// elements does not exceed epsilon for the given k.
func NewWithEpsilonUpperBound[T comparable](n uint64, k uint32, epsilon float64, opts ...Option) (*Filter[T], error) {
	m, err := MWithEpsilonUpperBound(n, k, epsilon)
	if err != nil {
		return nil, err
	}
	return New[T](k, m, opts...)
}

func (f *Filter[T]) K() uint32 { return f.k }
func (f *Filter[T]) M() uint64 { return f.m }

// BitsSet returns the number of set positions.
func (f *Filter[T]) BitsSet() uint64 { return f.nset }

func (f *Filter[T]) Saturated() bool { return f.nset >= f.m }

// Contains reports whether element may have been added. A false result is
// definite; a true result may be a false positive.
func (f *Filter[T]) Contains(element T) bool {
	return eachIndex(f.opts.IndexScheme, f.opts.Hasher(element), f.k, f.m, f.bits.test)
}

// Add inserts element. Adding an element twice leaves the filter unchanged.
func (f *Filter[T]) Add(element T) {
	eachIndex(f.opts.IndexScheme, f.opts.Hasher(element), f.k, f.m, f.setBit)
}

// Update adds every element of elements. The sequence is consumed once.
func (f *Filter[T]) Update(elements iter.Seq[T]) {
	for e := range elements {
		f.Add(e)
	}
}

func (f *Filter[T]) setBit(i uint64) bool {
	if !f.bits.set(i) {
		return true
	}
	f.nset++
	if f.nset == f.m && f.opts.Log != nil {
		f.opts.Log.Infof("bloom: filter saturated k=%d m=%d", f.k, f.m)
	}
	return true
}

// FillRatio returns the fraction of the m positions that are set.
func (f *Filter[T]) FillRatio() float64 {
	return float64(f.nset) / float64(f.m)
}

// EstimatedFalsePositiveRate returns FillRatio()^k, the probability that an
// element never added tests positive against the current bits.
func (f *Filter[T]) EstimatedFalsePositiveRate() float64 {
	return math.Pow(f.FillRatio(), float64(f.k))
}

// EstimatedCardinality approximates the number of distinct elements added:
//
//	round(-(m/k) * ln(1 - bitsSet/m))
//
// A saturated filter returns MaxCardinality.
func (f *Filter[T]) EstimatedCardinality() uint64 {
	if f.Saturated() {
		return MaxCardinality
	}
	m := float64(f.m)
	est := math.Round(-(m / float64(f.k)) * math.Log1p(-float64(f.nset)/m))
	if est >= float64(MaxCardinality) {
		return MaxCardinality
	}
	return uint64(est)
}

// Equal reports whether other has the same k, m and set positions. The index
// scheme and hasher are not compared.
func (f *Filter[T]) Equal(other *Filter[T]) bool {
	if other == nil || f.k != other.k || f.m != other.m || f.nset != other.nset {
		return false
	}
	eq := true
	f.bits.each(func(i uint64) bool {
		eq = other.bits.test(i)
		return eq
	})
	return eq
}
