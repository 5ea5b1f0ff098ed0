package sampling

import (
	"golang.org/x/exp/rand"
)

const eps = 1e-3

// SampleOne returns index i with probability pv[i].
func SampleOne(pv []float64, rng *rand.Rand) int {
	x := rng.Float64()
	var cumProb float64
	for i, p := range pv {
		cumProb += p
		if cumProb > x {
			return i
		}
	}

	if cumProb < 1.0-eps { // Leave room for floating point error.
		panic("probability distribution does not sum to 1!")
	}

	// Rounding left x above the total; take the last possible outcome.
	for i := len(pv) - 1; i > 0; i-- {
		if pv[i] > 0 {
			return i
		}
	}

	return 0
}
