package training

import (
	"math"
	"math/rand/v2"
)

// LinearSVC is a one-vs-rest linear support vector classifier with the
// squared hinge loss, solved by dual coordinate descent. The bias is an
// extra constant feature and is regularized with the weights.
type LinearSVC struct {
	C       float64
	MaxIter int
	Tol     float64
	Seed    uint64

	w    [NumClasses][]float64
	mask classMask
}

func NewLinearSVC(maxIter int, seed uint64) *LinearSVC {
	return &LinearSVC{C: 1, MaxIter: maxIter, Tol: 1e-4, Seed: seed}
}

func (m *LinearSVC) Name() string { return "svm" }

func (m *LinearSVC) Fit(X []SparseVector, y []int, features int) error {
	if len(X) == 0 {
		return ErrInsufficientData
	}

	m.mask = maskOf(y)
	rng := rand.New(rand.NewPCG(m.Seed, m.Seed))

	for k := range NumClasses {
		m.w[k] = make([]float64, features+1)
		if !m.mask[k] {
			continue
		}

		target := make([]float64, len(y))
		for i, c := range y {
			target[i] = -1
			if c == k {
				target[i] = 1
			}
		}
		m.fitBinary(X, target, m.w[k], rng)
	}

	return nil
}

func (m *LinearSVC) fitBinary(X []SparseVector, y []float64, w []float64, rng *rand.Rand) {
	n := len(X)
	bias := len(w) - 1
	diag := 1 / (2 * m.C)

	alpha := make([]float64, n)
	qd := make([]float64, n)
	order := make([]int, n)
	for i, x := range X {
		qd[i] = x.SquaredNorm() + 1 + diag
		order[i] = i
	}

	for iter := 0; iter < m.MaxIter; iter++ {
		rng.Shuffle(n, func(i, j int) { order[i], order[j] = order[j], order[i] })

		pgMax, pgMin := math.Inf(-1), math.Inf(1)
		for _, i := range order {
			x := X[i]
			g := y[i]*(x.Dot(w)+w[bias]) - 1 + diag*alpha[i]

			pg := g
			if alpha[i] == 0 {
				pg = math.Min(g, 0)
			}
			pgMax = math.Max(pgMax, pg)
			pgMin = math.Min(pgMin, pg)

			if math.Abs(pg) > 1e-12 {
				old := alpha[i]
				alpha[i] = math.Max(old-g/qd[i], 0)
				delta := (alpha[i] - old) * y[i]
				addScaled(w, x, delta)
				w[bias] += delta
			}
		}

		if pgMax-pgMin <= m.Tol {
			break
		}
	}
}

func (m *LinearSVC) Scores(x SparseVector) []float64 {
	scores := make([]float64, NumClasses)
	for k := range NumClasses {
		if w := m.w[k]; w != nil {
			scores[k] = x.Dot(w) + w[len(w)-1]
		}
	}
	return m.mask.apply(scores)
}
