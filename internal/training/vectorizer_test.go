package training_test

import (
	"tweetscope/internal/training"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("TFIDF", func() {
	docs := []string{"good day", "bad day"}

	It("indexes unigrams and bigrams alphabetically", func() {
		t := training.NewTFIDF(0, 2)
		Expect(t.Fit(docs)).To(Succeed())
		Expect(t.Vocabulary()).To(Equal([]string{"bad", "bad day", "day", "good", "good day"}))
		Expect(t.Features()).To(Equal(5))
	})

	It("keeps the most frequent terms when capped", func() {
		t := training.NewTFIDF(1, 2)
		Expect(t.Fit(docs)).To(Succeed())
		Expect(t.Vocabulary()).To(Equal([]string{"day"}))
	})

	It("breaks frequency ties alphabetically", func() {
		t := training.NewTFIDF(2, 1)
		Expect(t.Fit(docs)).To(Succeed())
		Expect(t.Vocabulary()).To(Equal([]string{"bad", "day"}))
	})

	It("produces l2-normalized rows", func() {
		t := training.NewTFIDF(0, 2)
		rows, err := t.FitTransform(docs)
		Expect(err).NotTo(HaveOccurred())
		Expect(rows).To(HaveLen(2))
		for _, row := range rows {
			Expect(row.SquaredNorm()).To(BeNumerically("~", 1, 1e-9))
			Expect(row.Indices).To(HaveLen(3))
		}
	})

	It("weights shared terms below distinctive ones", func() {
		t := training.NewTFIDF(0, 1)
		rows, err := t.FitTransform(docs)
		Expect(err).NotTo(HaveOccurred())

		// vocabulary: bad, day, good
		Expect(rows[0].Indices).To(Equal([]int{1, 2}))
		Expect(rows[0].Values[0]).To(BeNumerically("<", rows[0].Values[1]))
	})

	It("ignores unknown terms on transform", func() {
		t := training.NewTFIDF(0, 1)
		Expect(t.Fit(docs)).To(Succeed())

		rows := t.Transform([]string{"unseen words"})
		Expect(rows[0].Indices).To(BeEmpty())
		Expect(rows[0].SquaredNorm()).To(BeZero())
	})

	It("rejects a corpus without terms", func() {
		t := training.NewTFIDF(0, 2)
		Expect(t.Fit([]string{"", "   "})).To(MatchError(training.ErrEmptyVocabulary))
	})
})

var _ = Describe("SparseVector", func() {
	It("computes dot products against dense weights", func() {
		v := vec(0, 2, 2, 3)
		Expect(v.Dot([]float64{1, 100, 10})).To(Equal(32.0))
		Expect(v.SquaredNorm()).To(Equal(13.0))
	})
})
