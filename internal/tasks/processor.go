package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"tweetscope/internal/analysis"
	"tweetscope/internal/ingest"
	"tweetscope/internal/training"

	"github.com/hibiken/asynq"
)

const defaultCollectLimit = 100

type Analyzer interface {
	AnalyzeHashtag(ctx context.Context, hashtag string) (*analysis.Result, error)
}

type Trainer interface {
	Train(ctx context.Context) (*training.Evaluation, error)
}

type Collector interface {
	Collect(ctx context.Context, hashtag string, maxTweets int) (*ingest.Report, error)
}

// TaskProcessor holds dependencies for our task handlers
type TaskProcessor struct {
	analyzer  Analyzer
	trainer   Trainer
	collector Collector
}

// NewTaskProcessor creates a new TaskProcessor. collector may be nil, in
// which case collection tasks are dropped.
func NewTaskProcessor(analyzer Analyzer, trainer Trainer, collector Collector) *TaskProcessor {
	return &TaskProcessor{
		analyzer:  analyzer,
		trainer:   trainer,
		collector: collector,
	}
}

// Register mounts every handler on mux.
func (p *TaskProcessor) Register(mux *asynq.ServeMux) {
	mux.HandleFunc(TypeTaskAnalyzeHashtag, p.HandleAnalyzeHashtagTask)
	mux.HandleFunc(TypeTaskTrainModels, p.HandleTrainModelsTask)
	mux.HandleFunc(TypeTaskCollectTweets, p.HandleCollectTweetsTask)
}

func (p *TaskProcessor) HandleAnalyzeHashtagTask(ctx context.Context, t *asynq.Task) error {
	var payload AnalyzeHashtagPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", asynq.SkipRetry)
	}

	return p.analyze(ctx, payload.Hashtag)
}

func (p *TaskProcessor) analyze(ctx context.Context, hashtag string) error {
	result, err := p.analyzer.AnalyzeHashtag(ctx, hashtag)
	if err != nil {
		if errors.Is(err, analysis.ErrNoTweets) || errors.Is(err, analysis.ErrInvalidHashtag) {
			slog.WarnContext(ctx, "nothing to analyze", "hashtag", hashtag, "error", err)
			return fmt.Errorf("%s: %w", err.Error(), asynq.SkipRetry)
		}
		return err
	}

	if result.Warning != "" {
		// the summary was computed but not stored; retrying may store it
		return errors.New(result.Warning)
	}

	return nil
}

func (p *TaskProcessor) HandleTrainModelsTask(ctx context.Context, t *asynq.Task) error {
	var payload TrainModelsPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", asynq.SkipRetry)
	}

	eval, err := p.trainer.Train(ctx)
	if err != nil {
		if errors.Is(err, training.ErrNoTrainingData) || errors.Is(err, training.ErrInsufficientData) {
			slog.WarnContext(ctx, "skipping model training", "error", err)
			return fmt.Errorf("%s: %w", err.Error(), asynq.SkipRetry)
		}
		return err
	}

	slog.InfoContext(ctx, "training task finished", "run_id", eval.RunID, "best_model", eval.BestModel)
	return nil
}

func (p *TaskProcessor) HandleCollectTweetsTask(ctx context.Context, t *asynq.Task) error {
	var payload CollectTweetsPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", asynq.SkipRetry)
	}

	if p.collector == nil {
		return fmt.Errorf("TWITTER_BEARER_TOKEN is not configured: %w", asynq.SkipRetry)
	}

	hashtag := analysis.CleanHashtag(payload.Hashtag)
	if hashtag == "" {
		return fmt.Errorf("empty hashtag: %w", asynq.SkipRetry)
	}

	limit := payload.MaxTweets
	if limit <= 0 {
		limit = defaultCollectLimit
	}

	if _, err := p.collector.Collect(ctx, hashtag, limit); err != nil {
		return fmt.Errorf("failed to collect tweets for %s: %w", hashtag, err)
	}

	if payload.Analyze {
		return p.analyze(ctx, hashtag)
	}

	return nil
}
