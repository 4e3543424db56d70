package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/responses"
	"github.com/openai/openai-go/v3/shared"
)

const (
	defaultModel  = shared.ResponsesModel("gpt-4.1-mini")
	maxInputRunes = 4000 // cap what we send to the model
)

var (
	// ErrMissingAPIKey is returned when OPENAI_API_KEY was not configured.
	ErrMissingAPIKey = errors.New("OPENAI_API_KEY is not set")
)

// Polarity is the JSON document the model is asked to return.
type Polarity struct {
	Polarity float64 `json:"polarity"`
}

// SentimentScorer asks an OpenAI model for the polarity of a post.
type SentimentScorer struct {
	client *openai.Client
	model  shared.ResponsesModel
}

func NewSentimentScorer(apiKey string, opts ...option.RequestOption) (*SentimentScorer, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	opts = append([]option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithHTTPClient(http.DefaultClient),
	}, opts...)

	client := openai.NewClient(opts...)
	return &SentimentScorer{client: &client, model: defaultModel}, nil
}

// Polarity returns the model's sentiment polarity for text, in [-1, 1].
func (s *SentimentScorer) Polarity(ctx context.Context, text string) (float64, error) {
	if s == nil || s.client == nil {
		return 0, errors.New("SentimentScorer is not initialized")
	}

	resp, err := s.client.Responses.New(ctx, responses.ResponseNewParams{
		Model: s.model,
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: responses.ResponseInputParam{
				responses.ResponseInputItemParamOfMessage(systemPrompt, responses.EasyInputMessageRoleSystem),
				responses.ResponseInputItemParamOfMessage(buildPrompt(text), responses.EasyInputMessageRoleUser),
			},
		},
	})
	if err != nil {
		return 0, fmt.Errorf("call OpenAI: %w", err)
	}

	output := strings.TrimSpace(resp.OutputText())
	if output == "" {
		return 0, errors.New("model returned an empty response")
	}

	return parsePolarity(output)
}

func parsePolarity(output string) (float64, error) {
	// models sometimes wrap JSON in a fenced block
	output = strings.TrimPrefix(output, "```json")
	output = strings.TrimPrefix(output, "```")
	output = strings.TrimSuffix(output, "```")

	var p Polarity
	if err := json.Unmarshal([]byte(strings.TrimSpace(output)), &p); err != nil {
		return 0, fmt.Errorf("unmarshal JSON: %w", err)
	}

	if p.Polarity < -1 || p.Polarity > 1 {
		return 0, fmt.Errorf("polarity %v out of range", p.Polarity)
	}

	return p.Polarity, nil
}

func buildPrompt(text string) string {
	if utf8.RuneCountInString(text) > maxInputRunes {
		text = string([]rune(text)[:maxInputRunes])
	}

	builder := strings.Builder{}
	builder.WriteString("Post:\n")
	builder.WriteString(text)
	return builder.String()
}
