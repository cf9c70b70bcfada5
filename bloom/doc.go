package bloom

/*

# Bloom filters with parameter sizing

This package provides a single-array Bloom filter over any comparable element
type, and the sizing formulas used to choose its parameters.

## What Bloom filters are (and are not)

Bloom filters provide a *probabilistic set*:

- If the filter says "definitely not present", then the element was never added.
- If the filter says "maybe present", then the element may or may not have been
  added (false positives are possible).

There is no deletion. Bits are only ever set, which is why a false negative
cannot happen.

## Parameters

A filter has two fixed parameters:

- k, the number of bit positions touched per element
- m, the number of addressable bits

Use the sizing functions to derive them from an expected element count n and a
false positive target epsilon:

	m, _ := MWithApproximateEpsilon(n, epsilon)   // -(n ln eps) / (ln 2)^2
	k, _ := OptimalK(m, n)                        // (m/n) ln 2

or, when k is fixed by the caller and epsilon must be a hard bound,

	m, _ := MWithEpsilonUpperBound(n, k, epsilon)

NewWithApproximateEpsilon and NewWithEpsilonUpperBound do this in one step.

## Indexing

Each element is hashed once to 64 bits (see Hasher) and the k positions are
derived from that hash:

- IndexPRNG (default) seeds a PCG generator with the hash and draws k values
  uniformly from [0, m)
- IndexDoubleHash splits a murmur3-128 digest of the hash into (h1, h2) and
  uses (h1 + i*h2) mod m

Both are deterministic, so an element maps to the same positions on every Add
and Contains. The default HashComparable hasher uses a process wide maphash
seed; positions are therefore stable within a process only. Use HashString,
HashBytes or HashUint64 (xxhash64) via WithHasher where process independent
positions matter.

## Storage

Bits are held in a dense bit vector of m bits by default. WithSparseBits keeps
only the set positions, which is far smaller when m is very large relative to
the number of insertions.

## Cardinality

EstimatedCardinality applies round(-(m/k) ln(1 - X/m)) to the number of set
bits X. The estimate degrades as the fill ratio approaches 1 and is undefined at
X == m, where MaxCardinality is returned instead.

*/
