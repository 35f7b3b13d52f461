package resultset

import (
	"math/rand/v2"
	"slices"
)

// Sample draws k distinct elements from list with a partial Fisher–Yates
// shuffle over a copy. For k >= len(list) it returns a permutation of the
// whole list. list itself is never modified.
func Sample[T any](rng *rand.Rand, list []T, k int) []T {
	out := slices.Clone(list)
	if out == nil {
		out = []T{}
	}
	n := len(out)
	if k > n {
		k = n
	}
	if k < 0 {
		k = 0
	}
	for i := 0; i < k; i++ {
		j := i + rng.IntN(n-i)
		out[i], out[j] = out[j], out[i]
	}
	return out[:k]
}
