// Package shuffle produces randomized orderings of choice lists.
package shuffle

import "math/rand/v2"

// Choices returns a Fisher–Yates shuffled copy of choices drawn from r.
// The input slice is never modified. A nil r uses the global generator.
func Choices(r *rand.Rand, choices []string) []string {
	out := make([]string, len(choices))
	copy(out, choices)

	for i := len(out) - 1; i > 0; i-- {
		j := intN(r, i+1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Pick returns a uniformly random index in [0, n). n must be positive.
func Pick(r *rand.Rand, n int) int {
	return intN(r, n)
}

func intN(r *rand.Rand, n int) int {
	if r == nil {
		return rand.IntN(n)
	}
	return r.IntN(n)
}
