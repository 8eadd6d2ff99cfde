package engine

import "math/rand"

// newSeededRNG constructs the PRNG used by the random recall method. Per
// Design Note "Recall randomness", the engine never reaches for an
// implicit global RNG: every call site passes an explicit seed, and two
// runs with the same seed produce the same recall selection.
func newSeededRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
