package testhelpers

import (
	"encoding/json"
	"fmt"

	"tweetscope/internal/models"

	g "github.com/onsi/gomega"
	"gorm.io/gorm"
)

func CleanupDB(db *gorm.DB) {
	var tables []string

	err := db.Raw("SELECT tablename FROM pg_tables WHERE schemaname = 'public'").Scan(&tables).Error
	g.Expect(err).NotTo(g.HaveOccurred())

	for _, table := range tables {
		if table == "spatial_ref_sys" || table == "schema_migrations" {
			continue
		}

		query := fmt.Sprintf("TRUNCATE TABLE \"%s\" RESTART IDENTITY CASCADE", table)
		err := db.Exec(query).Error
		g.Expect(err).NotTo(g.HaveOccurred(), "Failed to truncate table: "+table)
	}
}

// NewTweet builds a tweet row. A nil metrics map leaves metrics absent.
func NewTweet(tweetID, hashtag, content string, metrics map[string]int) models.Tweet {
	tweet := models.Tweet{
		TweetID:       tweetID,
		SearchHashtag: hashtag,
	}

	if content != "" {
		tweet.Content = &content
	}

	if metrics != nil {
		raw, err := json.Marshal(metrics)
		if err != nil {
			panic(err)
		}
		tweet.Metrics = raw
	}

	return tweet
}

// Engaged is a metrics map with non-zero retweet and reply counts.
func Engaged() map[string]int {
	return map[string]int{"retweet_count": 3, "reply_count": 1, "like_count": 10}
}
