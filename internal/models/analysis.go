package models

import (
	"encoding/json"
	"time"
)

// TweetAnalysis holds the latest analysis summary for a hashtag.
type TweetAnalysis struct {
	ID           uint            `gorm:"primaryKey" json:"-"`
	Hashtag      string          `gorm:"uniqueIndex" json:"hashtag"`
	AnalysisDate time.Time       `json:"analysis_date"`
	Results      json.RawMessage `gorm:"type:jsonb" json:"results"`
	CreatedAt    time.Time       `json:"-"`
	UpdatedAt    time.Time       `json:"-"`
}

func (TweetAnalysis) TableName() string {
	return "tweet_analysis"
}
