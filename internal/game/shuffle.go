package game

import "math/rand"

// Shuffle returns a shuffled copy of items using the supplied RNG.
// The RNG is injected so a session controller owns its randomness and tests
// stay deterministic.
func Shuffle[T any](rng *rand.Rand, items []T) []T {
	shuffled := make([]T, len(items))
	copy(shuffled, items)
	for i := len(shuffled) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	return shuffled
}
