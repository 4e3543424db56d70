package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"tweetscope/internal/metrics"
	"tweetscope/internal/models"
)

const (
	DefaultTopWords  = 10
	DefaultMaxTweets = 10000

	// UnsavedWarning is attached to a result whose summary could not be stored.
	UnsavedWarning = "analysis results were not saved"
)

var (
	ErrNoTweets       = errors.New("no tweets found for analysis")
	ErrInvalidHashtag = errors.New("hashtag is required")
)

// TweetSource reads stored tweets for a hashtag.
type TweetSource interface {
	TweetsByHashtag(ctx context.Context, hashtag string, limit int) ([]models.Tweet, error)
}

// ResultSink upserts an analysis summary keyed by hashtag.
type ResultSink interface {
	SaveAnalysis(ctx context.Context, hashtag string, results json.RawMessage, analyzedAt time.Time) error
}

// Pipeline runs the per-tweet steps: tokenize, score sentiment, detect bots.
type Pipeline struct {
	Tokenizer *Tokenizer
	Sentiment *SentimentAnalyzer
	Bots      *BotDetector
}

// Process runs one tweet through the pipeline. Sentiment is scored on the
// raw content; the cleaned text is the space-joined token list.
func (p *Pipeline) Process(ctx context.Context, tweet *models.Tweet) (processed ProcessedTweet, tokens []string, err error) {
	if tweet == nil {
		return ProcessedTweet{}, nil, errors.New("nil tweet")
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("processing tweet %s: %v", tweet.TweetID, r)
		}
	}()

	content := tweet.Text()
	tokens = p.Tokenizer.Tokenize(content)

	processed = ProcessedTweet{
		TweetID:     tweet.TweetID,
		CleanedText: strings.Join(tokens, " "),
		Sentiment:   p.Sentiment.Analyze(ctx, content),
		IsBot:       p.Bots.IsBot(tweet),
	}

	return processed, tokens, nil
}

// Preprocess returns the cleaned, lemmatized form of text.
func (p *Pipeline) Preprocess(text string) string {
	return strings.Join(p.Tokenizer.Tokenize(text), " ")
}

// Result is the outcome of one analysis run. Warning is set when the summary
// was computed but could not be persisted.
type Result struct {
	Summary *Summary
	Warning string
}

type Options struct {
	MaxTweets int
	TopWords  int
}

// Service analyzes the stored tweets of a hashtag and persists the summary.
type Service struct {
	tweets   TweetSource
	results  ResultSink
	pipeline *Pipeline
	opts     Options
	now      func() time.Time
}

func NewService(tweets TweetSource, results ResultSink, pipeline *Pipeline, opts Options) *Service {
	if opts.MaxTweets <= 0 {
		opts.MaxTweets = DefaultMaxTweets
	}
	if opts.TopWords <= 0 {
		opts.TopWords = DefaultTopWords
	}

	return &Service{
		tweets:   tweets,
		results:  results,
		pipeline: pipeline,
		opts:     opts,
		now:      time.Now,
	}
}

// CleanHashtag strips a leading '#' and surrounding whitespace.
func CleanHashtag(hashtag string) string {
	return strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(hashtag), "#"))
}

// AnalyzeHashtag fetches the tweets stored for hashtag, analyzes them and
// upserts the summary. It returns ErrNoTweets, without writing, when nothing
// matches. A failed write does not fail the analysis; it is reported through
// Result.Warning.
func (s *Service) AnalyzeHashtag(ctx context.Context, hashtag string) (*Result, error) {
	start := time.Now()

	hashtag = CleanHashtag(hashtag)
	if hashtag == "" {
		return nil, ErrInvalidHashtag
	}

	slog.InfoContext(ctx, "starting analysis", "hashtag", hashtag)

	tweets, err := s.tweets.TweetsByHashtag(ctx, hashtag, s.opts.MaxTweets)
	if err != nil {
		metrics.AnalysesTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to fetch tweets for %s: %w", hashtag, err)
	}

	if len(tweets) == 0 {
		slog.WarnContext(ctx, "no tweets found", "hashtag", hashtag)
		metrics.AnalysesTotal.WithLabelValues("not_found").Inc()
		return nil, ErrNoTweets
	}

	if len(tweets) == s.opts.MaxTweets {
		slog.WarnContext(ctx, "tweet limit reached, analysis is partial", "hashtag", hashtag, "limit", s.opts.MaxTweets)
	}

	agg := NewAggregator()
	for i := range tweets {
		if err := ctx.Err(); err != nil {
			metrics.AnalysesTotal.WithLabelValues("error").Inc()
			return nil, err
		}

		processed, tokens, err := s.pipeline.Process(ctx, &tweets[i])
		if err != nil {
			slog.ErrorContext(ctx, "failed to process tweet", "tweet_id", tweets[i].TweetID, "error", err)
			metrics.TweetsProcessedTotal.WithLabelValues("skipped").Inc()
			agg.Skip()
			continue
		}

		metrics.TweetsProcessedTotal.WithLabelValues("processed").Inc()
		if processed.IsBot {
			metrics.BotsDetectedTotal.Inc()
		}
		agg.Add(processed, tokens)
	}

	summary := agg.Summary(hashtag, s.opts.TopWords)
	result := &Result{Summary: summary}

	if err := s.save(ctx, summary); err != nil {
		slog.ErrorContext(ctx, "failed to store analysis results", "hashtag", hashtag, "error", err)
		result.Warning = UnsavedWarning
		metrics.AnalysesTotal.WithLabelValues("unsaved").Inc()
	} else {
		metrics.AnalysesTotal.WithLabelValues("ok").Inc()
	}

	metrics.AnalysisDuration.Observe(time.Since(start).Seconds())
	slog.InfoContext(ctx, "analysis complete",
		"hashtag", hashtag,
		"total_tweets", summary.TotalTweets,
		"skipped_tweets", summary.SkippedTweets,
		"bot_count", summary.BotStatistics.BotCount,
	)

	return result, nil
}

func (s *Service) save(ctx context.Context, summary *Summary) error {
	blob, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}
	return s.results.SaveAnalysis(ctx, summary.Hashtag, blob, s.now().UTC())
}
