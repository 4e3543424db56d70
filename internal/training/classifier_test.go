package training_test

import (
	"math"

	"tweetscope/internal/analysis"
	"tweetscope/internal/training"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Classifiers", func() {
	models := func() []training.Classifier {
		return []training.Classifier{
			training.NewLogisticRegression(500),
			training.NewMultinomialNB(),
			training.NewLinearSVC(500, 42),
		}
	}

	It("separates linearly separable classes", func() {
		X, y := toyData()
		for _, m := range models() {
			Expect(m.Fit(X, y, 3)).To(Succeed(), m.Name())

			Expect(training.Predict(m, vec(0, 1))).To(Equal(0), m.Name())
			Expect(training.Predict(m, vec(1, 1))).To(Equal(1), m.Name())
			Expect(training.Predict(m, vec(2, 1))).To(Equal(2), m.Name())
		}
	})

	It("never predicts a class absent from training", func() {
		X := []training.SparseVector{vec(0, 1), vec(1, 1), vec(0, 1), vec(1, 1)}
		y := []int{0, 1, 0, 1}

		for _, m := range models() {
			Expect(m.Fit(X, y, 3)).To(Succeed(), m.Name())

			scores := m.Scores(vec(2, 1))
			Expect(scores).To(HaveLen(training.NumClasses))
			Expect(math.IsInf(scores[2], -1)).To(BeTrue(), m.Name())
			Expect(training.Predict(m, vec(2, 1))).NotTo(Equal(2), m.Name())
		}
	})

	It("refuses to fit without rows", func() {
		for _, m := range models() {
			Expect(m.Fit(nil, nil, 3)).To(MatchError(training.ErrInsufficientData), m.Name())
		}
	})

	It("uses stable model names", func() {
		var names []string
		for _, m := range models() {
			names = append(names, m.Name())
		}
		Expect(names).To(Equal([]string{"logistic_regression", "naive_bayes", "svm"}))
	})

	It("maps labels to class indices", func() {
		Expect(training.ClassIndex(analysis.LabelNegative)).To(Equal(0))
		Expect(training.ClassIndex(analysis.LabelNeutral)).To(Equal(1))
		Expect(training.ClassIndex(analysis.LabelPositive)).To(Equal(2))
		Expect(training.ClassLabel(2)).To(Equal(analysis.LabelPositive))
	})
})
