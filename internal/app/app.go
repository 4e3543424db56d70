package app

import (
	"fmt"

	"tweetscope/internal/analysis"
	"tweetscope/internal/config"
	"tweetscope/internal/db"
	"tweetscope/internal/ingest"
	"tweetscope/internal/pkg/openai"
	"tweetscope/internal/pkg/twitter"
	"tweetscope/internal/store"
	"tweetscope/internal/training"

	"gorm.io/gorm"
)

// App holds the long-lived collaborators shared by every entrypoint. It is
// built once per process.
type App struct {
	Config   *config.Config
	Store    *store.Store
	Pipeline *analysis.Pipeline
	Analyzer *analysis.Service
	Trainer  *training.Trainer
	Importer *ingest.Importer
	// Collector is nil when no bearer token is configured.
	Collector *ingest.Collector
}

func Build(cfg *config.Config, db *gorm.DB) (*App, error) {
	pipeline, err := NewPipeline(cfg)
	if err != nil {
		return nil, err
	}

	st := store.New(db, cfg.TweetPageSize)

	a := &App{
		Config:   cfg,
		Store:    st,
		Pipeline: pipeline,
		Analyzer: analysis.NewService(st, st, pipeline, analysis.Options{
			MaxTweets: cfg.MaxTweetsPerAnalysis,
		}),
		Trainer: training.NewTrainer(st, st, pipeline, training.Options{
			MaxTweets: cfg.TrainingMaxTweets,
		}),
		Importer: ingest.NewImporter(st),
	}

	if cfg.TwitterBearerToken != "" {
		a.Collector = ingest.NewCollector(twitter.New(cfg.TwitterBearerToken), st)
	}

	return a, nil
}

// Connect opens the database and, when AUTO_MIGRATE is set, migrates it.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	conn, err := db.InitDB(cfg.SupabaseURL, cfg.SupabaseKey)
	if err != nil {
		return nil, err
	}

	if cfg.AutoMigrate {
		if err := db.Migrate(conn); err != nil {
			return nil, err
		}
	}

	return conn, nil
}

// NewPipeline builds the tokenizer, sentiment scorer and bot detector
// described by cfg.
func NewPipeline(cfg *config.Config) (*analysis.Pipeline, error) {
	tokenizer, err := analysis.NewDefaultTokenizer()
	if err != nil {
		return nil, fmt.Errorf("failed to load lemmatizer: %w", err)
	}

	scorer, err := newScorer(cfg)
	if err != nil {
		return nil, err
	}

	thresholds := analysis.Thresholds{
		Positive: cfg.PositiveThreshold,
		Negative: cfg.NegativeThreshold,
	}

	return &analysis.Pipeline{
		Tokenizer: tokenizer,
		Sentiment: analysis.NewSentimentAnalyzer(scorer, thresholds),
		Bots:      analysis.NewBotDetector(BotRules(cfg)),
	}, nil
}

func BotRules(cfg *config.Config) analysis.BotRules {
	return analysis.BotRules{
		MaxMentions:       cfg.BotMaxMentions,
		MaxURLs:           cfg.BotMaxURLs,
		LongContentLength: cfg.BotLongContentLength,
		MaxHashtags:       cfg.BotMaxHashtags,
		MaxFollowMentions: cfg.BotMaxFollowMentions,
		MinIndicators:     cfg.BotMinIndicators,
		EngagementBait:    cfg.BotEngagementBaitRule,
	}
}

func newScorer(cfg *config.Config) (analysis.Scorer, error) {
	switch cfg.SentimentProvider {
	case "openai":
		scorer, err := openai.NewSentimentScorer(cfg.OpenAIAPIKey)
		if err != nil {
			return nil, err
		}
		return scorer, nil
	case "", "vader":
		return analysis.NewVaderScorer(), nil
	default:
		return nil, fmt.Errorf("unknown sentiment provider %q", cfg.SentimentProvider)
	}
}
