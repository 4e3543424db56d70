package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "tweetscope"

// Analysis pipeline metrics
var (
	// AnalysesTotal tracks hashtag analyses by outcome (ok, not_found, error, unsaved)
	AnalysesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analyses_total",
			Help:      "Total hashtag analyses by outcome",
		},
		[]string{"outcome"},
	)

	// AnalysisDuration tracks end-to-end analysis latency in seconds
	AnalysisDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "analysis_duration_seconds",
			Help:      "Hashtag analysis duration in seconds",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
	)

	// TweetsProcessedTotal tracks tweets seen by the pipeline by result (processed, skipped)
	TweetsProcessedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tweets_processed_total",
			Help:      "Tweets run through the analysis pipeline by result",
		},
		[]string{"result"},
	)

	// BotsDetectedTotal tracks tweets classified as automated
	BotsDetectedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bots_detected_total",
			Help:      "Tweets classified as likely automated",
		},
	)
)

// Training metrics
var (
	TrainingRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "training_runs_total",
			Help:      "Model training runs by outcome",
		},
		[]string{"outcome"},
	)

	// ModelAccuracy is the test accuracy of each model in the latest training run
	ModelAccuracy = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "model_accuracy",
			Help:      "Test accuracy per model in the latest training run",
		},
		[]string{"model"},
	)
)

// Collection metrics
var (
	TweetsCollectedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tweets_collected_total",
			Help:      "New tweets stored by collection and import",
		},
	)
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests.",
		},
		[]string{"method", "route", "status_code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)
