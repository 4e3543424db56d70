package analysis

import (
	"encoding/json"
	"fmt"
)

type ProcessedTweet struct {
	TweetID     string          `json:"tweet_id"`
	CleanedText string          `json:"cleaned_text"`
	Sentiment   SentimentResult `json:"sentiment"`
	IsBot       bool            `json:"is_bot"`
}

type SentimentDistribution struct {
	Positive int `json:"positive"`
	Negative int `json:"negative"`
	Neutral  int `json:"neutral"`
}

func (d SentimentDistribution) Total() int {
	return d.Positive + d.Negative + d.Neutral
}

type BotStatistics struct {
	BotCount      int     `json:"bot_count"`
	HumanCount    int     `json:"human_count"`
	BotPercentage float64 `json:"bot_percentage"`
}

// WordCount encodes as a two-element JSON array: ["word", 3].
type WordCount struct {
	Word  string
	Count int
}

func (w WordCount) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{w.Word, w.Count})
}

func (w *WordCount) UnmarshalJSON(b []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(b, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("word count: expected 2 elements, got %d", len(pair))
	}
	if err := json.Unmarshal(pair[0], &w.Word); err != nil {
		return fmt.Errorf("word count: %w", err)
	}
	if err := json.Unmarshal(pair[1], &w.Count); err != nil {
		return fmt.Errorf("word count: %w", err)
	}
	return nil
}

// Summary is the aggregate analysis of one hashtag.
type Summary struct {
	Hashtag               string                `json:"hashtag"`
	TotalTweets           int                   `json:"total_tweets"`
	SentimentDistribution SentimentDistribution `json:"sentiment_distribution"`
	AverageSentiment      float64               `json:"average_sentiment"`
	BotStatistics         BotStatistics         `json:"bot_statistics"`
	MostCommonWords       []WordCount           `json:"most_common_words"`
	ProcessedTweets       []ProcessedTweet      `json:"processed_tweets"`
	SkippedTweets         int                   `json:"skipped_tweets"`
}
