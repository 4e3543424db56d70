package ingest

import (
	"context"
	"log/slog"

	"tweetscope/internal/analysis"
	"tweetscope/internal/metrics"
	"tweetscope/internal/models"
	"tweetscope/internal/pkg/twitter"
)

type TweetSearcher interface {
	SearchRecent(ctx context.Context, hashtag string, maxTweets int) ([]twitter.ProcessedTweet, error)
}

// Collector fetches recent tweets of a hashtag and stores the new ones.
type Collector struct {
	searcher TweetSearcher
	saver    TweetSaver
}

func NewCollector(searcher TweetSearcher, saver TweetSaver) *Collector {
	return &Collector{searcher: searcher, saver: saver}
}

func (c *Collector) Collect(ctx context.Context, hashtag string, maxTweets int) (*Report, error) {
	hashtag = analysis.CleanHashtag(hashtag)
	if hashtag == "" {
		return nil, analysis.ErrInvalidHashtag
	}

	tweets, err := c.searcher.SearchRecent(ctx, hashtag, maxTweets)
	if err != nil {
		return nil, err
	}

	report := &Report{Read: len(tweets)}
	rows := make([]models.Tweet, 0, len(tweets))
	for _, t := range tweets {
		row, err := t.ToModel(hashtag)
		if err != nil {
			slog.WarnContext(ctx, "skipping collected tweet", "error", err)
			report.Skipped++
			continue
		}
		rows = append(rows, row)
	}

	inserted, err := c.saver.SaveTweets(ctx, rows)
	if err != nil {
		return nil, err
	}
	report.Inserted = inserted
	metrics.TweetsCollectedTotal.Add(float64(inserted))

	slog.InfoContext(ctx, "collected tweets", "hashtag", hashtag, "fetched", report.Read, "inserted", report.Inserted)

	return report, nil
}
