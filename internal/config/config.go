package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"go-simpler.org/env"
)

// Config holds all configuration for the application
type Config struct {
	// Postgres connection URL of the Supabase project and its database password.
	SupabaseURL string `env:"SUPABASE_URL"`
	SupabaseKey string `env:"SUPABASE_KEY"`

	RedisURL string `env:"REDIS_URL"`
	Port     string `env:"PORT" default:"8080"`

	LogLevel  string `env:"LOG_LEVEL" default:"info"`
	LogFormat string `env:"LOG_FORMAT" default:"text"`

	AutoMigrate bool `env:"AUTO_MIGRATE" default:"false"`

	OpenAIAPIKey       string `env:"OPENAI_API_KEY"`
	SentimentProvider  string `env:"SENTIMENT_PROVIDER" default:"vader"`
	TwitterBearerToken string `env:"TWITTER_BEARER_TOKEN"`

	MaxTweetsPerAnalysis int `env:"MAX_TWEETS_PER_ANALYSIS" default:"10000"`
	TweetPageSize        int `env:"TWEET_PAGE_SIZE" default:"500"`
	TrainingMaxTweets    int `env:"TRAINING_MAX_TWEETS" default:"50000"`

	PositiveThreshold float64 `env:"SENTIMENT_POSITIVE_THRESHOLD" default:"0.1"`
	NegativeThreshold float64 `env:"SENTIMENT_NEGATIVE_THRESHOLD" default:"-0.1"`

	BotMaxMentions        int  `env:"BOT_MAX_MENTIONS" default:"3"`
	BotMaxURLs            int  `env:"BOT_MAX_URLS" default:"2"`
	BotLongContentLength  int  `env:"BOT_LONG_CONTENT_LENGTH" default:"280"`
	BotMaxHashtags        int  `env:"BOT_MAX_HASHTAGS" default:"5"`
	BotMaxFollowMentions  int  `env:"BOT_MAX_FOLLOW_MENTIONS" default:"2"`
	BotMinIndicators      int  `env:"BOT_MIN_INDICATORS" default:"3"`
	BotEngagementBaitRule bool `env:"BOT_ENGAGEMENT_BAIT" default:"false"`
}

// LoadConfig reads configuration from environment variables (.env file)
func LoadConfig() (*Config, error) {
	// In production, env variables are often set directly.
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, reading from environment")
	}

	return fromEnv()
}

// LoadConfigFrom is LoadConfig with explicit dotenv files, used by test suites.
func LoadConfigFrom(filenames ...string) (*Config, error) {
	for _, name := range filenames {
		if _, err := os.Stat(name); err != nil {
			continue
		}
		if err := godotenv.Load(name); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", name, err)
		}
	}

	return fromEnv()
}

func fromEnv() (*Config, error) {
	var cfg Config
	if err := env.Load(&cfg, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func validate(cfg *Config) error {
	// checked in a fixed order so the error message is deterministic
	required := []struct{ name, value string }{
		{"SUPABASE_URL", cfg.SupabaseURL},
		{"SUPABASE_KEY", cfg.SupabaseKey},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return fmt.Errorf("%s is required", r.name)
		}
	}

	switch cfg.SentimentProvider {
	case "vader":
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required when SENTIMENT_PROVIDER is openai")
		}
	default:
		return fmt.Errorf("unknown SENTIMENT_PROVIDER %q", cfg.SentimentProvider)
	}

	if cfg.PositiveThreshold < cfg.NegativeThreshold {
		return fmt.Errorf("SENTIMENT_POSITIVE_THRESHOLD must not be below SENTIMENT_NEGATIVE_THRESHOLD")
	}

	if cfg.TweetPageSize <= 0 || cfg.MaxTweetsPerAnalysis <= 0 {
		return fmt.Errorf("TWEET_PAGE_SIZE and MAX_TWEETS_PER_ANALYSIS must be positive")
	}

	return nil
}
