package training

import "math"

// MultinomialNB is multinomial naive Bayes with additive (Laplace/Lidstone)
// smoothing, applied to tf-idf weights as fractional counts.
type MultinomialNB struct {
	Alpha float64

	classLogPrior   [NumClasses]float64
	featureLogProbs [NumClasses][]float64
	mask            classMask
}

func NewMultinomialNB() *MultinomialNB {
	return &MultinomialNB{Alpha: 1}
}

func (m *MultinomialNB) Name() string { return "naive_bayes" }

func (m *MultinomialNB) Fit(X []SparseVector, y []int, features int) error {
	if len(X) == 0 {
		return ErrInsufficientData
	}

	m.mask = maskOf(y)

	var classCount [NumClasses]float64
	var featureCount [NumClasses][]float64
	for k := range featureCount {
		featureCount[k] = make([]float64, features)
	}

	for i, x := range X {
		classCount[y[i]]++
		addScaled(featureCount[y[i]], x, 1)
	}

	for k := range NumClasses {
		m.featureLogProbs[k] = make([]float64, features)
		if !m.mask[k] {
			continue
		}

		m.classLogPrior[k] = math.Log(classCount[k] / float64(len(X)))

		var total float64
		for _, c := range featureCount[k] {
			total += c + m.Alpha
		}
		for j, c := range featureCount[k] {
			m.featureLogProbs[k][j] = math.Log((c + m.Alpha) / total)
		}
	}

	return nil
}

// Scores returns the joint log likelihood per class.
func (m *MultinomialNB) Scores(x SparseVector) []float64 {
	scores := make([]float64, NumClasses)
	for k := range NumClasses {
		if m.featureLogProbs[k] != nil {
			scores[k] = m.classLogPrior[k] + x.Dot(m.featureLogProbs[k])
		}
	}
	return m.mask.apply(scores)
}
