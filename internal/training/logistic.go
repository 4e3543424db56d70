package training

import (
	"math"
)

// LogisticRegression is multinomial logistic regression with an L2 penalty,
// fit by full-batch gradient descent. The intercept is not penalized.
type LogisticRegression struct {
	C            float64
	MaxIter      int
	LearningRate float64
	Tol          float64

	w    [NumClasses][]float64
	b    [NumClasses]float64
	mask classMask
}

func NewLogisticRegression(maxIter int) *LogisticRegression {
	return &LogisticRegression{C: 1, MaxIter: maxIter, LearningRate: 1, Tol: 1e-4}
}

func (m *LogisticRegression) Name() string { return "logistic_regression" }

func (m *LogisticRegression) Fit(X []SparseVector, y []int, features int) error {
	n := len(X)
	if n == 0 {
		return ErrInsufficientData
	}

	m.mask = maskOf(y)
	for k := range m.w {
		m.w[k] = make([]float64, features)
		m.b[k] = 0
	}

	var gw [NumClasses][]float64
	for k := range gw {
		gw[k] = make([]float64, features)
	}
	reg := 1 / (m.C * float64(n))

	for iter := 0; iter < m.MaxIter; iter++ {
		var gb [NumClasses]float64
		for k := range gw {
			clear(gw[k])
		}

		for i, x := range X {
			p := softmax(m.Scores(x))
			for k := range NumClasses {
				if !m.mask[k] {
					continue
				}
				diff := p[k]
				if y[i] == k {
					diff--
				}
				addScaled(gw[k], x, diff)
				gb[k] += diff
			}
		}

		var maxGrad float64
		for k := range NumClasses {
			if !m.mask[k] {
				continue
			}
			for j := range gw[k] {
				g := gw[k][j]/float64(n) + reg*m.w[k][j]
				m.w[k][j] -= m.LearningRate * g
				maxGrad = math.Max(maxGrad, math.Abs(g))
			}
			g := gb[k] / float64(n)
			m.b[k] -= m.LearningRate * g
			maxGrad = math.Max(maxGrad, math.Abs(g))
		}

		if maxGrad < m.Tol {
			break
		}
	}

	return nil
}

func (m *LogisticRegression) Scores(x SparseVector) []float64 {
	scores := make([]float64, NumClasses)
	for k := range NumClasses {
		if m.w[k] != nil {
			scores[k] = x.Dot(m.w[k]) + m.b[k]
		}
	}
	return m.mask.apply(scores)
}

func softmax(scores []float64) []float64 {
	maxScore := math.Inf(-1)
	for _, s := range scores {
		maxScore = math.Max(maxScore, s)
	}

	p := make([]float64, len(scores))
	var sum float64
	for k, s := range scores {
		if math.IsInf(s, -1) {
			continue
		}
		p[k] = math.Exp(s - maxScore)
		sum += p[k]
	}
	for k := range p {
		p[k] /= sum
	}
	return p
}
