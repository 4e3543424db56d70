package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"tweetscope/internal/analysis"
	"tweetscope/internal/metrics"
	"tweetscope/internal/models"
	"tweetscope/internal/pkg/twitter"

	"github.com/PuerkitoBio/goquery"
)

var ErrEmptyExport = errors.New("export contains no tweets")

// TweetSaver stores tweets, ignoring ones already present.
type TweetSaver interface {
	SaveTweets(ctx context.Context, tweets []models.Tweet) (int, error)
}

// Report summarizes one import.
type Report struct {
	Read     int
	Inserted int
	Skipped  int
}

type envelope struct {
	Success bool `json:"success"`
	Data    struct {
		Tweets []twitter.ProcessedTweet `json:"tweets"`
	} `json:"data"`
}

// Decode reads a saved export: either {"success": .., "data": {"tweets": [..]}}
// or a bare array of tweets.
func Decode(r io.Reader) ([]twitter.ProcessedTweet, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	trimmed := strings.TrimSpace(string(raw))
	if strings.HasPrefix(trimmed, "[") {
		var tweets []twitter.ProcessedTweet
		if err := json.Unmarshal(raw, &tweets); err != nil {
			return nil, fmt.Errorf("failed to decode tweet array: %w", err)
		}
		return tweets, nil
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("failed to decode tweet export: %w", err)
	}
	return env.Data.Tweets, nil
}

// TextFromHTML returns the visible text of an embedded tweet.
func TextFromHTML(body string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return "", err
	}

	sel := doc.Find("blockquote p")
	if sel.Length() == 0 {
		sel = doc.Find("body")
	}

	return strings.Join(strings.Fields(sel.First().Text()), " "), nil
}

type Importer struct {
	saver TweetSaver
}

func NewImporter(saver TweetSaver) *Importer {
	return &Importer{saver: saver}
}

// ImportFile loads the export at path and stores its tweets under hashtag.
func (im *Importer) ImportFile(ctx context.Context, path, hashtag string) (*Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return im.Import(ctx, f, hashtag)
}

func (im *Importer) Import(ctx context.Context, r io.Reader, hashtag string) (*Report, error) {
	hashtag = analysis.CleanHashtag(hashtag)
	if hashtag == "" {
		return nil, analysis.ErrInvalidHashtag
	}

	tweets, err := Decode(r)
	if err != nil {
		return nil, err
	}
	if len(tweets) == 0 {
		return nil, ErrEmptyExport
	}

	report := &Report{Read: len(tweets)}
	rows := make([]models.Tweet, 0, len(tweets))

	for _, t := range tweets {
		if t.Text == "" && t.HTML != "" {
			text, err := TextFromHTML(t.HTML)
			if err != nil {
				slog.WarnContext(ctx, "failed to extract tweet text from html", "tweet_id", t.ID, "error", err)
			}
			t.Text = text
		}

		row, err := t.ToModel(hashtag)
		if err != nil {
			slog.WarnContext(ctx, "skipping tweet", "error", err)
			report.Skipped++
			continue
		}
		rows = append(rows, row)
	}

	inserted, err := im.saver.SaveTweets(ctx, rows)
	if err != nil {
		return nil, err
	}
	report.Inserted = inserted
	metrics.TweetsCollectedTotal.Add(float64(inserted))

	slog.InfoContext(ctx, "imported tweets", "hashtag", hashtag, "read", report.Read, "inserted", report.Inserted, "skipped", report.Skipped)

	return report, nil
}
