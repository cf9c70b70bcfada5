package bloom

import (
	"fmt"
	"math"
)

// ln2Squared is (ln 2)^2.
const ln2Squared = math.Ln2 * math.Ln2

// OptimalK returns max(1, round((m/n) * ln 2)), the number of hash rounds
// that minimises the false positive rate for m bits and n elements.
func OptimalK(m uint64, n uint64) (uint32, error) {
	if m == 0 {
		return 0, fmt.Errorf("%w: m=%d", ErrBadMBits, m)
	}
	if n == 0 {
		return 0, fmt.Errorf("%w: n=%d", ErrBadN, n)
	}
	k := math.Round(float64(m) / float64(n) * math.Ln2)
	if k > math.MaxUint32 {
		return 0, fmt.Errorf("%w: k=%g", ErrSizeOverflow, k)
	}
	return max(1, uint32(k)), nil
}

// MWithApproximateEpsilon returns max(1, round(-(n * ln epsilon) / (ln 2)^2)),
// the number of bits giving approximately epsilon false positives for n
// elements when k is chosen by OptimalK.
func MWithApproximateEpsilon(n uint64, epsilon float64) (uint64, error) {
	if n == 0 {
		return 0, fmt.Errorf("%w: n=%d", ErrBadN, n)
	}
	if err := CheckEpsilon(epsilon); err != nil {
		return 0, err
	}
	return roundMBits(-(float64(n) * math.Log(epsilon)) / ln2Squared)
}

// MWithEpsilonUpperBound returns the number of bits guaranteeing at most
// epsilon false positives for n elements with k hash rounds:
//
//	max(1, round((ln(1 - epsilon^(1/k)) - k*(n + 0.5)) / ln(1 - epsilon^(1/k))))
func MWithEpsilonUpperBound(n uint64, k uint32, epsilon float64) (uint64, error) {
	if n == 0 {
		return 0, fmt.Errorf("%w: n=%d", ErrBadN, n)
	}
	if k == 0 {
		return 0, fmt.Errorf("%w: k=%d", ErrBadK, k)
	}
	if err := CheckEpsilon(epsilon); err != nil {
		return 0, err
	}

	lnq := lnOneMinusRoot(epsilon, k)
	if lnq == 0 {
		return 0, fmt.Errorf("%w: ln(1 - epsilon^(1/k)) = 0", ErrSizeOverflow)
	}
	return roundMBits((lnq - float64(k)*(float64(n)+0.5)) / lnq)
}

// lnOneMinusRoot returns ln(1 - epsilon^(1/k)).
//
// With x = ln(epsilon)/k, a small root uses log1p(-e^x) and a root near 1 uses
// ln(-expm1(x)), so neither 1 - root nor ln(1 - root) cancels to zero.
func lnOneMinusRoot(epsilon float64, k uint32) float64 {
	x := math.Log(epsilon) / float64(k)
	if x < -math.Ln2 {
		return math.Log1p(-math.Exp(x))
	}
	return math.Log(-math.Expm1(x))
}

// CheckEpsilon validates a false positive rate for sizing computations.
func CheckEpsilon(epsilon float64) error {
	if !(epsilon > 0 && epsilon < 1) {
		return fmt.Errorf("%w: epsilon=%g", ErrBadEpsilon, epsilon)
	}
	return nil
}

// roundMBits rounds a computed bit count, clamping it to at least 1.
func roundMBits(x float64) (uint64, error) {
	x = math.Round(x)
	if math.IsNaN(x) || math.IsInf(x, 0) || x >= float64(math.MaxUint64) {
		return 0, fmt.Errorf("%w: m=%g", ErrSizeOverflow, x)
	}
	if x < 1 {
		return 1, nil
	}
	return uint64(x), nil
}
