package openai_test

import (
	"context"
	"fmt"
	"net/http"

	"tweetscope/internal/pkg/openai"
	"tweetscope/internal/testhelpers"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/openai/openai-go/v3/option"
)

func responseWithText(text string) map[string]any {
	return map[string]any{
		"id":         "resp_1",
		"object":     "response",
		"created_at": 1751362200,
		"status":     "completed",
		"model":      "gpt-4.1-mini",
		"output": []any{
			map[string]any{
				"type":   "message",
				"id":     "msg_1",
				"status": "completed",
				"role":   "assistant",
				"content": []any{
					map[string]any{"type": "output_text", "text": text, "annotations": []any{}},
				},
			},
		},
	}
}

var _ = Describe("SentimentScorer", func() {
	var (
		ctx    context.Context
		scorer *openai.SentimentScorer
	)

	const host = "https://api.openai.com"

	BeforeEach(func() {
		testhelpers.Activate()
		ctx = context.Background()

		var err error
		scorer, err = openai.NewSentimentScorer("sk-test", option.WithMaxRetries(0))
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		testhelpers.Deactivate()
	})

	It("requires an API key", func() {
		_, err := openai.NewSentimentScorer("")
		Expect(err).To(MatchError(openai.ErrMissingAPIKey))
	})

	It("returns the model's polarity", func() {
		testhelpers.New(host).
			Post("/v1/responses").
			MatchHeader("Authorization", "Bearer sk-test").
			Reply(http.StatusOK).
			JSON(responseWithText(`{"polarity": 0.6}`))

		score, err := scorer.Polarity(ctx, "I love this release")
		Expect(err).NotTo(HaveOccurred())
		Expect(score).To(Equal(0.6))
		Expect(testhelpers.IsDone()).To(BeTrue())
	})

	DescribeTable("parsing model output",
		func(output string, expected float64, ok bool) {
			testhelpers.New(host).
				Post("/v1/responses").
				Reply(http.StatusOK).
				JSON(responseWithText(output))

			score, err := scorer.Polarity(ctx, "post")
			if !ok {
				Expect(err).To(HaveOccurred())
				return
			}
			Expect(err).NotTo(HaveOccurred())
			Expect(score).To(Equal(expected))
		},
		Entry("fenced JSON", "```json\n{\"polarity\": -0.4}\n```", -0.4, true),
		Entry("out of range", `{"polarity": 1.5}`, 0.0, false),
		Entry("prose", "The post is positive.", 0.0, false),
		Entry("empty", "   ", 0.0, false),
	)

	It("surfaces API errors", func() {
		testhelpers.New(host).
			Post("/v1/responses").
			Reply(http.StatusBadRequest).
			JSON(map[string]any{"error": map[string]any{"message": "bad request", "type": "invalid_request_error"}})

		_, err := scorer.Polarity(ctx, "post")
		Expect(err).To(MatchError(ContainSubstring("call OpenAI")))
	})

	It("fails when not initialized", func() {
		var s *openai.SentimentScorer
		_, err := s.Polarity(ctx, "post")
		Expect(err).To(HaveOccurred())
		Expect(fmt.Sprint(err)).To(ContainSubstring("not initialized"))
	})
})
