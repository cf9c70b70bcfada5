package bloom

import (
	"math"
	"math/rand/v2"
	"slices"
	"strconv"
	"testing"

	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/stretchr/testify/require"
)

func TestFilterNotContains(t *testing.T) {
	f, err := New[int](10, 100)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		require.False(t, f.Contains(i))
	}
	require.Equal(t, uint64(0), f.BitsSet())
	require.Equal(t, uint64(0), f.EstimatedCardinality())
}

func TestFilterContains(t *testing.T) {
	f, err := New[int](10, 100)
	require.NoError(t, err)

	pool := make([]int, 0, 20)
	for i := 0; i < 10; i++ {
		pool = append(pool, i, i)
	}
	rand.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

	added := map[int]bool{}
	for _, e := range pool {
		if added[e] {
			require.True(t, f.Contains(e), "false negative for %d", e)
		}
		added[e] = true
		f.Add(e)
	}
	for e := range added {
		require.True(t, f.Contains(e))
	}
}

func TestFilterAddIsIdempotent(t *testing.T) {
	f, err := New[string](4, 1024)
	require.NoError(t, err)

	f.Add("a")
	n := f.BitsSet()
	require.NotZero(t, n)
	require.LessOrEqual(t, n, uint64(4))

	f.Add("a")
	require.Equal(t, n, f.BitsSet())
}

func TestFilterNoFalseNegatives(t *testing.T) {
	for _, scheme := range []IndexScheme{IndexPRNG, IndexDoubleHash} {
		t.Run(scheme.String(), func(t *testing.T) {
			f, err := New[string](7, 4096, WithIndexScheme(scheme))
			require.NoError(t, err)
			for i := 0; i < 500; i++ {
				f.Add("elem-" + strconv.Itoa(i))
				// Every earlier element stays present as the filter fills.
				for j := 0; j <= i; j += 37 {
					require.True(t, f.Contains("elem-"+strconv.Itoa(j)))
				}
			}
		})
	}
}

func TestFilterUpdate(t *testing.T) {
	elements := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}

	byAdd, err := New[int](10, 100)
	require.NoError(t, err)
	for _, e := range elements {
		byAdd.Add(e)
	}

	byUpdate, err := New[int](10, 100)
	require.NoError(t, err)
	byUpdate.Update(slices.Values(elements))
	require.True(t, byAdd.Equal(byUpdate))

	// Order does not matter.
	reversed, err := New[int](10, 100)
	require.NoError(t, err)
	rev := slices.Clone(elements)
	slices.Reverse(rev)
	reversed.Update(slices.Values(rev))
	require.True(t, byAdd.Equal(reversed))
}

func TestFilterUpdateConsumesOnce(t *testing.T) {
	f, err := New[int](3, 256)
	require.NoError(t, err)

	calls := 0
	f.Update(func(yield func(int) bool) {
		calls++
		for i := 0; i < 5; i++ {
			if !yield(i) {
				return
			}
		}
	})
	require.Equal(t, 1, calls)
	for i := 0; i < 5; i++ {
		require.True(t, f.Contains(i))
	}
}

func TestFilterEqual(t *testing.T) {
	a, err := New[string](3, 64, WithHasher(HashString))
	require.NoError(t, err)
	b, err := New[string](3, 64, WithHasher(HashString), WithSparseBits())
	require.NoError(t, err)
	c, err := New[string](3, 65, WithHasher(HashString))
	require.NoError(t, err)

	require.True(t, a.Equal(b))
	require.False(t, a.Equal(c))
	require.False(t, a.Equal(nil))

	a.Add("x")
	require.False(t, a.Equal(b))
	b.Add("x")
	require.True(t, a.Equal(b))
	require.True(t, b.Equal(a))
}

func TestFilterEstimatedCardinality(t *testing.T) {
	tests := []struct {
		name string
		m    uint64
		opts []Option
	}{
		{"sparse", 1_000_000_000, []Option{WithSparseBits()}},
		{"dense", 10_000_000, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := New[int](10, tt.m, tt.opts...)
			require.NoError(t, err)
			for i := 0; i < 10; i++ {
				f.Add(i)
			}
			require.Equal(t, uint64(10), f.EstimatedCardinality())
		})
	}
}

func TestFilterEstimatedCardinalitySaturated(t *testing.T) {
	const m = 10
	f, err := New[int](100, m)
	require.NoError(t, err)

	for i := uint64(0); i < m; i++ {
		f.setBit(i)
	}
	require.True(t, f.Saturated())
	require.Equal(t, MaxCardinality, f.EstimatedCardinality())
	require.Equal(t, 1.0, f.FillRatio())
	require.Equal(t, 1.0, f.EstimatedFalsePositiveRate())

	// Any element tests positive once saturated.
	require.True(t, f.Contains(12345))
}

func TestFilterSaturatesThroughAdd(t *testing.T) {
	logger.New("NOOP")
	defer logger.OnExit()

	f, err := New[string](1, 1, WithLogger(logger.Sugar.WithServiceName("bloom")))
	require.NoError(t, err)
	require.False(t, f.Saturated())

	f.Add("only")
	require.True(t, f.Saturated())
	require.Equal(t, MaxCardinality, f.EstimatedCardinality())
	require.True(t, f.Contains("anything"))
}

func TestFilterFalsePositiveRate(t *testing.T) {
	const n = 10_000
	const epsilon = 0.01

	for _, scheme := range []IndexScheme{IndexPRNG, IndexDoubleHash} {
		t.Run(scheme.String(), func(t *testing.T) {
			f, err := NewWithApproximateEpsilon[uint64](n, epsilon, WithIndexScheme(scheme), WithHasher(HashUint64))
			require.NoError(t, err)

			for i := uint64(0); i < n; i++ {
				f.Add(i)
			}

			est := f.EstimatedCardinality()
			require.InDelta(t, float64(n), float64(est), 0.03*n)
			require.InDelta(t, epsilon, f.EstimatedFalsePositiveRate(), epsilon)

			const probes = 100_000
			positives := 0
			for i := uint64(n); i < n+probes; i++ {
				if f.Contains(i) {
					positives++
				}
			}
			require.Less(t, float64(positives)/probes, 2*epsilon)
		})
	}
}

func TestNewWithApproximateEpsilon(t *testing.T) {
	f, err := NewWithApproximateEpsilon[string](1_000_000, 0.01)
	require.NoError(t, err)
	require.Equal(t, uint64(9_585_058), f.M())
	require.Equal(t, uint32(7), f.K())

	_, err = NewWithApproximateEpsilon[string](0, 0.01)
	require.ErrorIs(t, err, ErrBadN)
	_, err = NewWithApproximateEpsilon[string](10, 1)
	require.ErrorIs(t, err, ErrBadEpsilon)
}

func TestNewWithEpsilonUpperBound(t *testing.T) {
	f, err := NewWithEpsilonUpperBound[string](1_000_000, 10, 0.01)
	require.NoError(t, err)
	require.Equal(t, uint64(10_031_676), f.M())
	require.Equal(t, uint32(10), f.K())

	_, err = NewWithEpsilonUpperBound[string](10, 0, 0.01)
	require.ErrorIs(t, err, ErrBadK)
}

func TestNewRejectsBadInputs(t *testing.T) {
	_, err := New[int](0, 100)
	require.ErrorIs(t, err, ErrBadK)

	_, err = New[int](3, 0)
	require.ErrorIs(t, err, ErrBadMBits)

	_, err = New[int](3, 100, WithHasher[int](nil))
	require.ErrorIs(t, err, ErrNilHasher)

	_, err = New[int](3, 100, WithIndexScheme(IndexScheme(9)))
	require.ErrorIs(t, err, ErrBadIndexScheme)
}

func TestWithHasherIgnoredForOtherTypes(t *testing.T) {
	logger.New("NOOP")
	defer logger.OnExit()

	f, err := New[int](3, 100, WithHasher(HashString), WithLogger(logger.Sugar.WithServiceName("bloom")))
	require.NoError(t, err)
	require.Equal(t, []string{"WithHasher[string]"}, f.opts.ignored)

	f.Add(7)
	require.True(t, f.Contains(7))

	g, err := New[string](3, 100, WithHasher(HashString))
	require.NoError(t, err)
	require.Empty(t, g.opts.ignored)
}

func TestNewWithHasherBytes(t *testing.T) {
	f, err := NewWithHasher(7, 4096, HashBytes)
	require.NoError(t, err)

	for i := 0; i < 100; i++ {
		f.Add([]byte("key-" + strconv.Itoa(i)))
	}
	for i := 0; i < 100; i++ {
		// A fresh slice with the same contents is the same element.
		require.True(t, f.Contains([]byte("key-"+strconv.Itoa(i))))
	}
	require.InDelta(t, 100, float64(f.EstimatedCardinality()), 10)

	byUpdate, err := NewWithHasher(7, 4096, HashBytes, WithSparseBits())
	require.NoError(t, err)
	byUpdate.Update(func(yield func([]byte) bool) {
		for i := 0; i < 100; i++ {
			if !yield([]byte("key-" + strconv.Itoa(i))) {
				return
			}
		}
	})
	require.True(t, f.Equal(byUpdate))

	s := NewSynchronized(byUpdate)
	require.True(t, s.Contains([]byte("key-0")))
}

func TestNewWithHasherRejectsBadInputs(t *testing.T) {
	_, err := NewWithHasher[[]byte](3, 100, nil)
	require.ErrorIs(t, err, ErrNilHasher)

	_, err = NewWithHasher(0, 100, HashBytes)
	require.ErrorIs(t, err, ErrBadK)

	_, err = NewWithHasher(3, 0, HashBytes)
	require.ErrorIs(t, err, ErrBadMBits)

	// WithHasher can still replace the hasher, including with nil.
	_, err = NewWithHasher(3, 100, HashBytes, WithHasher[[]byte](nil))
	require.ErrorIs(t, err, ErrNilHasher)
}

func TestFilterNaN(t *testing.T) {
	nan := math.NaN()

	// Hashing the bit pattern makes NaN a single element.
	f, err := NewWithHasher(5, 1024, func(v float64) uint64 {
		return HashUint64(math.Float64bits(v))
	})
	require.NoError(t, err)
	f.Add(nan)
	require.True(t, f.Contains(nan))
}
