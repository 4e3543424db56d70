package training

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"tweetscope/internal/analysis"
	"tweetscope/internal/metrics"
	"tweetscope/internal/models"

	"github.com/google/uuid"
)

var (
	ErrNoTrainingData   = errors.New("no training data available")
	ErrInsufficientData = errors.New("not enough labelled tweets to train and evaluate")
)

const (
	DefaultMaxTweets   = 50000
	DefaultMaxFeatures = 5000
	DefaultTestSize    = 0.2
	DefaultSeed        = 42
	DefaultMaxIter     = 1000
)

// TweetLister reads the training corpus regardless of hashtag.
type TweetLister interface {
	AllTweets(ctx context.Context, limit int) ([]models.Tweet, error)
}

type EvaluationWriter interface {
	InsertEvaluation(ctx context.Context, evaluation *models.ModelEvaluation) error
}

type Options struct {
	MaxTweets   int
	MaxFeatures int
	TestSize    float64
	Seed        uint64
	MaxIter     int
}

func (o Options) withDefaults() Options {
	if o.MaxTweets <= 0 {
		o.MaxTweets = DefaultMaxTweets
	}
	if o.MaxFeatures <= 0 {
		o.MaxFeatures = DefaultMaxFeatures
	}
	if o.TestSize <= 0 || o.TestSize >= 1 {
		o.TestSize = DefaultTestSize
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.MaxIter <= 0 {
		o.MaxIter = DefaultMaxIter
	}
	return o
}

// Evaluation is the report of one training run.
type Evaluation struct {
	RunID        string                 `json:"run_id"`
	ModelResults map[string]ModelResult `json:"model_results"`
	BestModel    string                 `json:"best_model"`
	BestAccuracy float64                `json:"best_accuracy"`
	SampleCount  int                    `json:"sample_count"`
	TrainSize    int                    `json:"train_size"`
	TestSize     int                    `json:"test_size"`
	Features     int                    `json:"features"`
}

// Trainer labels the stored corpus with the sentiment analyzer, fits the
// candidate classifiers and appends their evaluation.
type Trainer struct {
	tweets      TweetLister
	evaluations EvaluationWriter
	pipeline    *analysis.Pipeline
	opts        Options
	now         func() time.Time
}

func NewTrainer(tweets TweetLister, evaluations EvaluationWriter, pipeline *analysis.Pipeline, opts Options) *Trainer {
	return &Trainer{
		tweets:      tweets,
		evaluations: evaluations,
		pipeline:    pipeline,
		opts:        opts.withDefaults(),
		now:         time.Now,
	}
}

func (t *Trainer) candidates() []Classifier {
	return []Classifier{
		NewLogisticRegression(t.opts.MaxIter),
		NewMultinomialNB(),
		NewLinearSVC(t.opts.MaxIter, t.opts.Seed),
	}
}

func (t *Trainer) Train(ctx context.Context) (*Evaluation, error) {
	eval, err := t.train(ctx)
	if err != nil {
		metrics.TrainingRunsTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	metrics.TrainingRunsTotal.WithLabelValues("ok").Inc()
	return eval, nil
}

func (t *Trainer) train(ctx context.Context) (*Evaluation, error) {
	runID := uuid.NewString()
	slog.InfoContext(ctx, "starting model training", "run_id", runID)

	tweets, err := t.tweets.AllTweets(ctx, t.opts.MaxTweets)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch training tweets: %w", err)
	}
	if len(tweets) == 0 {
		return nil, ErrNoTrainingData
	}

	docs := make([]string, len(tweets))
	labels := make([]int, len(tweets))
	for i := range tweets {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		docs[i] = t.pipeline.Preprocess(tweets[i].Text())
		labels[i] = ClassIndex(t.pipeline.Sentiment.Analyze(ctx, docs[i]).Label)
	}

	vectorizer := NewTFIDF(t.opts.MaxFeatures, 2)
	X, err := vectorizer.FitTransform(docs)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInsufficientData, err)
	}

	split, err := TrainTestSplit(len(X), t.opts.TestSize, t.opts.Seed)
	if err != nil {
		return nil, err
	}

	xTrain, yTrain := pick(X, split.Train), pick(labels, split.Train)
	xTest, yTest := pick(X, split.Test), pick(labels, split.Test)

	if maskOf(yTrain).count() < 2 {
		return nil, fmt.Errorf("%w: training split has a single sentiment class", ErrInsufficientData)
	}

	eval := &Evaluation{
		RunID:        runID,
		ModelResults: make(map[string]ModelResult),
		SampleCount:  len(X),
		TrainSize:    len(xTrain),
		TestSize:     len(xTest),
		Features:     vectorizer.Features(),
		BestAccuracy: -1,
	}

	for _, model := range t.candidates() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if err := model.Fit(xTrain, yTrain, vectorizer.Features()); err != nil {
			return nil, fmt.Errorf("failed to fit %s: %w", model.Name(), err)
		}

		res := Evaluate(model, xTest, yTest)
		eval.ModelResults[model.Name()] = res
		metrics.ModelAccuracy.WithLabelValues(model.Name()).Set(res.Accuracy)

		slog.InfoContext(ctx, "model evaluated", "run_id", runID, "model", model.Name(), "accuracy", res.Accuracy)

		if res.Accuracy > eval.BestAccuracy {
			eval.BestAccuracy = res.Accuracy
			eval.BestModel = model.Name()
		}
	}

	results, err := json.Marshal(eval.ModelResults)
	if err != nil {
		return nil, fmt.Errorf("failed to encode model results: %w", err)
	}

	row := &models.ModelEvaluation{
		RunID:          runID,
		EvaluationDate: t.now().UTC(),
		Results:        results,
		BestModel:      eval.BestModel,
		BestAccuracy:   eval.BestAccuracy,
		SampleCount:    eval.SampleCount,
	}
	if err := t.evaluations.InsertEvaluation(ctx, row); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "model training complete", "run_id", runID, "best_model", eval.BestModel, "best_accuracy", eval.BestAccuracy)

	return eval, nil
}
