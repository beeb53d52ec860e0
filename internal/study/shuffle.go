package study

import "math/rand/v2"

// Shuffle returns a uniformly random permutation of items using a
// Fisher-Yates pass over a copy. items is never modified. A nil rng uses the
// package-level source.
func Shuffle[T any](items []T, rng *rand.Rand) []T {
	out := make([]T, len(items))
	copy(out, items)

	intN := rand.IntN
	if rng != nil {
		intN = rng.IntN
	}
	for i := len(out) - 1; i > 0; i-- {
		j := intN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
