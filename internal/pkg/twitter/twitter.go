package twitter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"
)

const baseURL = "https://api.x.com/2"

// the recent search endpoint accepts 10..100 results per page
const (
	minPageSize = 10
	maxPageSize = 100
)

// ErrRateLimited is returned when the API answers 429.
var ErrRateLimited = errors.New("twitter rate limit exceeded")

type Client struct {
	token  string
	client *http.Client
}

func New(bearerToken string) *Client {
	return &Client{
		token: bearerToken,
		client: &http.Client{
			Timeout: 20 * time.Second,
		},
	}
}

// UseDefaultClient routes requests through http.DefaultClient.
func (c *Client) UseDefaultClient() {
	c.client = http.DefaultClient
}

// APIError is a non-2xx answer from the API.
type APIError struct {
	StatusCode int
	Title      string `json:"title"`
	Detail     string `json:"detail"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("twitter error %d: %s: %s", e.StatusCode, e.Title, e.Detail)
}

type apiTweet struct {
	ID            string         `json:"id"`
	Text          string         `json:"text"`
	CreatedAt     string         `json:"created_at"`
	AuthorID      string         `json:"author_id"`
	PublicMetrics map[string]int `json:"public_metrics"`
	Entities      struct {
		Hashtags []struct {
			Tag string `json:"tag"`
		} `json:"hashtags"`
		Mentions []struct {
			Username string `json:"username"`
		} `json:"mentions"`
	} `json:"entities"`
	Attachments struct {
		MediaKeys []string `json:"media_keys"`
	} `json:"attachments"`
}

type searchResponse struct {
	Data     []apiTweet `json:"data"`
	Includes struct {
		Users []Author `json:"users"`
		Media []Media  `json:"media"`
	} `json:"includes"`
	Meta struct {
		ResultCount int    `json:"result_count"`
		NextToken   string `json:"next_token"`
	} `json:"meta"`
}

// SearchRecent collects up to maxTweets recent tweets tagged with hashtag,
// following next_token pages.
func (c *Client) SearchRecent(ctx context.Context, hashtag string, maxTweets int) ([]ProcessedTweet, error) {
	hashtag = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(hashtag), "#"))
	if hashtag == "" {
		return nil, errors.New("hashtag is required")
	}

	var tweets []ProcessedTweet
	nextToken := ""

	for len(tweets) < maxTweets {
		pageSize := max(minPageSize, min(maxPageSize, maxTweets-len(tweets)))

		slog.DebugContext(ctx, "searching recent tweets", "hashtag", hashtag, "page_size", pageSize, "next_token", nextToken)

		res, err := c.searchPage(ctx, hashtag, pageSize, nextToken)
		if err != nil {
			return nil, err
		}

		tweets = append(tweets, res.process()...)

		if res.Meta.NextToken == "" {
			break
		}
		nextToken = res.Meta.NextToken
	}

	if len(tweets) > maxTweets {
		tweets = tweets[:maxTweets]
	}

	return tweets, nil
}

// https://docs.x.com/x-api/posts/search-recent-posts
func (c *Client) searchPage(ctx context.Context, hashtag string, pageSize int, nextToken string) (*searchResponse, error) {
	u, _ := url.Parse(baseURL + "/tweets/search/recent")
	q := u.Query()
	q.Set("query", "#"+hashtag)
	q.Set("max_results", strconv.Itoa(pageSize))
	q.Set("tweet.fields", "created_at,public_metrics,author_id,entities")
	q.Set("expansions", "author_id,attachments.media_keys")
	q.Set("user.fields", "name,username,profile_image_url,verified")
	q.Set("media.fields", "url,preview_image_url,type")
	if nextToken != "" {
		q.Set("next_token", nextToken)
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, fmt.Errorf("%w, resets at %s", ErrRateLimited, resetTime(resp.Header.Get("x-rate-limit-reset")))
	}

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if err := json.Unmarshal(body, apiErr); err != nil {
			apiErr.Detail = string(body)
		}
		return nil, apiErr
	}

	var out searchResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func resetTime(header string) string {
	secs, err := strconv.ParseInt(header, 10, 64)
	if err != nil {
		return "unknown time"
	}
	return time.Unix(secs, 0).UTC().Format(time.RFC3339)
}

// process joins the expansions into each tweet. The API escapes &, < and >
// in post text.
func (r *searchResponse) process() []ProcessedTweet {
	users := make(map[string]Author, len(r.Includes.Users))
	for _, u := range r.Includes.Users {
		users[u.ID] = u
	}
	media := make(map[string]Media, len(r.Includes.Media))
	for _, m := range r.Includes.Media {
		media[m.MediaKey] = m
	}

	out := make([]ProcessedTweet, 0, len(r.Data))
	for _, t := range r.Data {
		pt := ProcessedTweet{
			ID:        t.ID,
			Text:      html.UnescapeString(t.Text),
			CreatedAt: t.CreatedAt,
			Metrics:   t.PublicMetrics,
			Media:     []Media{},
			Hashtags:  []string{},
			Mentions:  []string{},
		}

		if author, ok := users[t.AuthorID]; ok {
			pt.Author = &author
		}
		for _, key := range t.Attachments.MediaKeys {
			if m, ok := media[key]; ok {
				pt.Media = append(pt.Media, m)
			}
		}
		for _, h := range t.Entities.Hashtags {
			pt.Hashtags = append(pt.Hashtags, h.Tag)
		}
		for _, m := range t.Entities.Mentions {
			pt.Mentions = append(pt.Mentions, m.Username)
		}

		out = append(out, pt)
	}

	return out
}
