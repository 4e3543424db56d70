package training

import (
	"math"

	"tweetscope/internal/analysis"
)

// NumClasses is the number of sentiment classes: negative, neutral, positive.
const NumClasses = 3

var classLabels = [NumClasses]analysis.Label{
	analysis.LabelNegative,
	analysis.LabelNeutral,
	analysis.LabelPositive,
}

// ClassIndex maps a sentiment label to its class index.
func ClassIndex(label analysis.Label) int {
	switch label {
	case analysis.LabelNegative:
		return 0
	case analysis.LabelPositive:
		return 2
	default:
		return 1
	}
}

func ClassLabel(class int) analysis.Label {
	return classLabels[class]
}

// Classifier is a multi-class linear model over tf-idf rows.
type Classifier interface {
	Name() string
	Fit(X []SparseVector, y []int, features int) error
	// Scores returns one decision value per class. Classes never seen during
	// Fit score -Inf.
	Scores(x SparseVector) []float64
}

// Predict returns the class with the highest score; the lowest index wins ties.
func Predict(c Classifier, x SparseVector) int {
	return argmax(c.Scores(x))
}

func argmax(scores []float64) int {
	best := 0
	for k := 1; k < len(scores); k++ {
		if scores[k] > scores[best] {
			best = k
		}
	}
	return best
}

type classMask [NumClasses]bool

func maskOf(y []int) classMask {
	var m classMask
	for _, c := range y {
		m[c] = true
	}
	return m
}

func (m classMask) count() int {
	n := 0
	for _, ok := range m {
		if ok {
			n++
		}
	}
	return n
}

func (m classMask) apply(scores []float64) []float64 {
	for k, ok := range m {
		if !ok {
			scores[k] = math.Inf(-1)
		}
	}
	return scores
}

func addScaled(w []float64, x SparseVector, scale float64) {
	for k, i := range x.Indices {
		w[i] += scale * x.Values[k]
	}
}
