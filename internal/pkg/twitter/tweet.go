package twitter

import (
	"encoding/json"
	"fmt"
	"time"

	"tweetscope/internal/models"
)

type Author struct {
	ID              string `json:"id"`
	Username        string `json:"username"`
	Name            string `json:"name"`
	ProfileImageURL string `json:"profile_image_url,omitempty"`
	Verified        bool   `json:"verified,omitempty"`
}

type Media struct {
	MediaKey        string `json:"media_key"`
	Type            string `json:"type"`
	URL             string `json:"url,omitempty"`
	PreviewImageURL string `json:"preview_image_url,omitempty"`
}

// ProcessedTweet is a tweet with its author and media expanded. It is also
// the record format of saved tweet exports.
type ProcessedTweet struct {
	ID        string         `json:"id"`
	Text      string         `json:"text"`
	HTML      string         `json:"html,omitempty"`
	CreatedAt string         `json:"created_at"`
	Metrics   map[string]int `json:"metrics,omitempty"`
	Author    *Author        `json:"author,omitempty"`
	Media     []Media        `json:"media"`
	Hashtags  []string       `json:"hashtags"`
	Mentions  []string       `json:"mentions"`
}

// ToModel converts the tweet into a stored row for searchHashtag.
func (t ProcessedTweet) ToModel(searchHashtag string) (models.Tweet, error) {
	if t.ID == "" {
		return models.Tweet{}, fmt.Errorf("tweet without id")
	}

	row := models.Tweet{
		TweetID:       t.ID,
		SearchHashtag: searchHashtag,
	}

	if t.Text != "" {
		text := t.Text
		row.Content = &text
	}

	if t.CreatedAt != "" {
		createdAt, err := time.Parse(time.RFC3339, t.CreatedAt)
		if err != nil {
			return models.Tweet{}, fmt.Errorf("tweet %s: invalid created_at: %w", t.ID, err)
		}
		row.CreatedAt = createdAt
	}

	var err error
	if t.Metrics != nil {
		if row.Metrics, err = json.Marshal(t.Metrics); err != nil {
			return models.Tweet{}, err
		}
	}
	if row.Author, err = marshalOrNil(t.Author); err != nil {
		return models.Tweet{}, err
	}
	if row.Media, err = json.Marshal(nonNil(t.Media)); err != nil {
		return models.Tweet{}, err
	}
	if row.Hashtags, err = json.Marshal(nonNil(t.Hashtags)); err != nil {
		return models.Tweet{}, err
	}
	if row.Mentions, err = json.Marshal(nonNil(t.Mentions)); err != nil {
		return models.Tweet{}, err
	}

	return row, nil
}

func marshalOrNil[T any](v *T) (json.RawMessage, error) {
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
