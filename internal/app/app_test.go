package app_test

import (
	"context"

	"tweetscope/internal/analysis"
	"tweetscope/internal/app"
	"tweetscope/internal/config"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func testConfig() *config.Config {
	return &config.Config{
		SupabaseURL:          "postgres://localhost:5432/tweetscope",
		SentimentProvider:    "vader",
		MaxTweetsPerAnalysis: 100,
		TweetPageSize:        50,
		TrainingMaxTweets:    1000,
		PositiveThreshold:    0.1,
		NegativeThreshold:    -0.1,
		BotMaxMentions:       3,
		BotMaxURLs:           2,
		BotLongContentLength: 280,
		BotMaxHashtags:       5,
		BotMaxFollowMentions: 2,
		BotMinIndicators:     3,
	}
}

var _ = Describe("App", func() {
	It("maps bot settings onto detector rules", func() {
		cfg := testConfig()
		cfg.BotMinIndicators = 2
		cfg.BotEngagementBaitRule = true

		rules := app.BotRules(cfg)
		expected := analysis.DefaultBotRules()
		expected.MinIndicators = 2
		expected.EngagementBait = true
		Expect(rules).To(Equal(expected))
	})

	It("builds a working vader pipeline", func() {
		pipeline, err := app.NewPipeline(testConfig())
		Expect(err).NotTo(HaveOccurred())

		result := pipeline.Sentiment.Analyze(context.Background(), "I love this, it is great!")
		Expect(result.Label).To(Equal(analysis.LabelPositive))
		Expect(pipeline.Preprocess("The cats")).To(Equal("cat"))
	})

	It("rejects an unknown sentiment provider", func() {
		cfg := testConfig()
		cfg.SentimentProvider = "magic"

		_, err := app.NewPipeline(cfg)
		Expect(err).To(MatchError(ContainSubstring("unknown sentiment provider")))
	})

	It("wires a collector only with a bearer token", func() {
		cfg := testConfig()

		a, err := app.Build(cfg, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(a.Analyzer).NotTo(BeNil())
		Expect(a.Trainer).NotTo(BeNil())
		Expect(a.Importer).NotTo(BeNil())
		Expect(a.Collector).To(BeNil())

		cfg.TwitterBearerToken = "tok"
		a, err = app.Build(cfg, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(a.Collector).NotTo(BeNil())
	})
})
