package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Tweet is a stored post collected for a search hashtag.
type Tweet struct {
	ID            uint            `gorm:"primaryKey" json:"-"`
	TweetID       string          `gorm:"uniqueIndex" json:"tweet_id"`
	Content       *string         `json:"content"`
	Metrics       json.RawMessage `gorm:"type:jsonb" json:"metrics,omitempty"`
	Author        json.RawMessage `gorm:"type:jsonb" json:"author,omitempty"`
	Media         json.RawMessage `gorm:"type:jsonb" json:"media,omitempty"`
	Hashtags      json.RawMessage `gorm:"type:jsonb" json:"hashtags,omitempty"`
	Mentions      json.RawMessage `gorm:"type:jsonb" json:"mentions,omitempty"`
	SearchHashtag string          `gorm:"index" json:"search_hashtag"`
	CreatedAt     time.Time       `json:"created_at"`
}

// Text returns the post content, or "" when the content is absent.
func (t *Tweet) Text() string {
	if t == nil || t.Content == nil {
		return ""
	}
	return *t.Content
}

// Engagement holds the counters read from the metrics blob. Other keys are
// ignored; missing or null counters are zero.
type Engagement struct {
	RetweetCount float64 `json:"retweet_count"`
	ReplyCount   float64 `json:"reply_count"`
}

// EngagementMetrics decodes the retweet and reply counters of the metrics blob.
func (t *Tweet) EngagementMetrics() (Engagement, error) {
	var out Engagement
	if len(t.Metrics) == 0 || string(t.Metrics) == "null" {
		return out, nil
	}

	if err := json.Unmarshal(t.Metrics, &out); err != nil {
		return Engagement{}, fmt.Errorf("decode metrics of tweet %s: %w", t.TweetID, err)
	}
	return out, nil
}
