package db

import (
	"fmt"
	"net/url"

	"tweetscope/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitDB connects to the Supabase Postgres database at rawURL, authenticating
// with key as the database password.
func InitDB(rawURL, key string) (*gorm.DB, error) {
	dsn, err := DSN(rawURL, key)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

// DSN injects key as the password of the connection URL. A password already
// present in rawURL is replaced.
func DSN(rawURL, key string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid database url: %w", err)
	}

	if u.Scheme != "postgres" && u.Scheme != "postgresql" {
		return "", fmt.Errorf("invalid database url: unsupported scheme %q", u.Scheme)
	}

	if u.Host == "" {
		return "", fmt.Errorf("invalid database url: missing host")
	}

	username := "postgres"
	if u.User != nil && u.User.Username() != "" {
		username = u.User.Username()
	}

	if key != "" {
		u.User = url.UserPassword(username, key)
	} else {
		u.User = url.User(username)
	}

	return u.String(), nil
}

// Migrate creates or updates the tables used by the service.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Tweet{}, &models.TweetAnalysis{}, &models.ModelEvaluation{}); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}
