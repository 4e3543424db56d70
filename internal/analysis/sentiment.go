package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/jonreiter/govader"
)

type Label string

const (
	LabelPositive Label = "positive"
	LabelNeutral  Label = "neutral"
	LabelNegative Label = "negative"
)

type SentimentResult struct {
	Label Label   `json:"label"`
	Score float64 `json:"score"`
}

var neutralResult = SentimentResult{Label: LabelNeutral, Score: 0}

// Scorer computes a polarity in [-1, 1] for a piece of text.
type Scorer interface {
	Polarity(ctx context.Context, text string) (float64, error)
}

// Thresholds are the polarity cutoffs for the positive and negative labels.
type Thresholds struct {
	Positive float64
	Negative float64
}

// DefaultThresholds label polarity above 0.1 positive and below -0.1 negative.
func DefaultThresholds() Thresholds {
	return Thresholds{Positive: 0.1, Negative: -0.1}
}

func (t Thresholds) Classify(score float64) Label {
	switch {
	case score > t.Positive:
		return LabelPositive
	case score < t.Negative:
		return LabelNegative
	default:
		return LabelNeutral
	}
}

type SentimentAnalyzer struct {
	scorer     Scorer
	thresholds Thresholds
}

func NewSentimentAnalyzer(scorer Scorer, thresholds Thresholds) *SentimentAnalyzer {
	return &SentimentAnalyzer{scorer: scorer, thresholds: thresholds}
}

// Analyze labels text. Empty text is neutral without consulting the scorer,
// and scorer failures fall back to neutral.
func (a *SentimentAnalyzer) Analyze(ctx context.Context, text string) (result SentimentResult) {
	if strings.TrimSpace(text) == "" {
		return neutralResult
	}

	defer func() {
		if r := recover(); r != nil {
			slog.ErrorContext(ctx, "sentiment scorer panicked", "error", r)
			result = neutralResult
		}
	}()

	score, err := a.scorer.Polarity(ctx, text)
	if err == nil && (math.IsNaN(score) || math.IsInf(score, 0)) {
		err = fmt.Errorf("invalid polarity %v", score)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to score sentiment", "error", err)
		return neutralResult
	}

	score = max(-1, min(1, score))
	return SentimentResult{Label: a.thresholds.Classify(score), Score: score}
}

// VaderScorer scores text with the VADER lexicon model; polarity is the
// compound score.
type VaderScorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func NewVaderScorer() *VaderScorer {
	return &VaderScorer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

func (v *VaderScorer) Polarity(_ context.Context, text string) (float64, error) {
	return v.analyzer.PolarityScores(text).Compound, nil
}
