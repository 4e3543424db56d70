package training

import (
	"math"
	"math/rand/v2"
)

// Split is a shuffled train/test partition of row indices.
type Split struct {
	Train []int
	Test  []int
}

// TrainTestSplit shuffles 0..n-1 with a seeded source and holds out
// ceil(testFraction*n) rows for testing. Both sides must be non-empty.
func TrainTestSplit(n int, testFraction float64, seed uint64) (Split, error) {
	nTest := int(math.Ceil(testFraction * float64(n)))
	if n < 2 || nTest < 1 || nTest >= n {
		return Split{}, ErrInsufficientData
	}

	rng := rand.New(rand.NewPCG(seed, seed))
	perm := rng.Perm(n)

	return Split{
		Test:  perm[:nTest],
		Train: perm[nTest:],
	}, nil
}

func pick[T any](rows []T, idx []int) []T {
	out := make([]T, len(idx))
	for k, i := range idx {
		out[k] = rows[i]
	}
	return out
}
