package analysis_test

import (
	"context"
	"errors"
	"math"

	"tweetscope/internal/analysis"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("SentimentAnalyzer", func() {
	ctx := context.Background()

	DescribeTable("labels polarity with the default thresholds",
		func(score float64, label analysis.Label) {
			a := analysis.NewSentimentAnalyzer(constScorer(score), analysis.DefaultThresholds())
			Expect(a.Analyze(ctx, "some text").Label).To(Equal(label))
		},
		Entry("above positive", 0.11, analysis.LabelPositive),
		Entry("at positive threshold", 0.1, analysis.LabelNeutral),
		Entry("zero", 0.0, analysis.LabelNeutral),
		Entry("at negative threshold", -0.1, analysis.LabelNeutral),
		Entry("below negative", -0.5, analysis.LabelNegative),
	)

	It("clamps the score to [-1, 1]", func() {
		a := analysis.NewSentimentAnalyzer(constScorer(3), analysis.DefaultThresholds())
		Expect(a.Analyze(ctx, "great")).To(Equal(analysis.SentimentResult{Label: analysis.LabelPositive, Score: 1}))

		a = analysis.NewSentimentAnalyzer(constScorer(-7), analysis.DefaultThresholds())
		Expect(a.Analyze(ctx, "awful").Score).To(Equal(-1.0))
	})

	It("returns neutral for empty text without calling the scorer", func() {
		calls := 0
		scorer := scorerFunc(func(context.Context, string) (float64, error) {
			calls++
			return 1, nil
		})

		a := analysis.NewSentimentAnalyzer(scorer, analysis.DefaultThresholds())
		Expect(a.Analyze(ctx, "")).To(Equal(analysis.SentimentResult{Label: analysis.LabelNeutral, Score: 0}))
		Expect(a.Analyze(ctx, " \n\t")).To(Equal(analysis.SentimentResult{Label: analysis.LabelNeutral, Score: 0}))
		Expect(calls).To(Equal(0))
	})

	DescribeTable("falls back to neutral when scoring fails",
		func(scorer analysis.Scorer) {
			a := analysis.NewSentimentAnalyzer(scorer, analysis.DefaultThresholds())
			Expect(a.Analyze(ctx, "text")).To(Equal(analysis.SentimentResult{Label: analysis.LabelNeutral, Score: 0}))
		},
		Entry("error", scorerFunc(func(context.Context, string) (float64, error) { return 0.9, errors.New("boom") })),
		Entry("NaN", constScorer(math.NaN())),
		Entry("Inf", constScorer(math.Inf(1))),
		Entry("panic", scorerFunc(func(context.Context, string) (float64, error) { panic("boom") })),
	)

	It("honours custom thresholds", func() {
		a := analysis.NewSentimentAnalyzer(constScorer(0.3), analysis.Thresholds{Positive: 0.5, Negative: -0.5})
		Expect(a.Analyze(ctx, "meh").Label).To(Equal(analysis.LabelNeutral))
	})

	Describe("VaderScorer", func() {
		var a *analysis.SentimentAnalyzer

		BeforeEach(func() {
			a = analysis.NewSentimentAnalyzer(analysis.NewVaderScorer(), analysis.DefaultThresholds())
		})

		It("scores an enthusiastic post as positive", func() {
			res := a.Analyze(ctx, "I love this!!! Best day ever")
			Expect(res.Label).To(Equal(analysis.LabelPositive))
			Expect(res.Score).To(BeNumerically(">", 0.1))
			Expect(res.Score).To(BeNumerically("<=", 1))
		})

		It("scores a hostile post as negative", func() {
			res := a.Analyze(ctx, "This is terrible, I hate it")
			Expect(res.Label).To(Equal(analysis.LabelNegative))
		})
	})
})
