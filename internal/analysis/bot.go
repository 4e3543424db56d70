package analysis

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"unicode/utf8"

	"tweetscope/internal/models"
)

var (
	linkPattern           = regexp.MustCompile(`http[s]?://(?:[a-zA-Z]|[0-9]|[$-_@.&+]|[!*\(\),]|(?:%[0-9a-fA-F][0-9a-fA-F]))+`)
	engagementBaitPattern = regexp.MustCompile(`(follow|retweet|like).*(follow|retweet|like)`)
)

// BotRules are the heuristic thresholds of the bot detector. They are tuning
// knobs, not learned values.
type BotRules struct {
	MaxMentions       int  // more '@' than this fires
	MaxURLs           int  // more links than this fires
	LongContentLength int  // at least this many characters ...
	MaxHashtags       int  // ... and more '#' than this fires
	MaxFollowMentions int  // more "follow" than this fires
	MinIndicators     int  // this many indicators make a bot
	EngagementBait    bool // enables the follow/retweet/like sequence indicator
}

// DefaultBotRules are the thresholds the detector was tuned with.
func DefaultBotRules() BotRules {
	return BotRules{
		MaxMentions:       3,
		MaxURLs:           2,
		LongContentLength: 280,
		MaxHashtags:       5,
		MaxFollowMentions: 2,
		MinIndicators:     3,
	}
}

// BotDetector flags likely automated accounts from post content and engagement.
type BotDetector struct {
	rules BotRules
}

func NewBotDetector(rules BotRules) *BotDetector {
	return &BotDetector{rules: rules}
}

// Indicators evaluates every enabled heuristic against the tweet.
func (d *BotDetector) Indicators(tweet *models.Tweet) ([]bool, error) {
	if tweet == nil {
		return nil, fmt.Errorf("nil tweet")
	}

	content := tweet.Text()
	engagement, err := tweet.EngagementMetrics()
	if err != nil {
		return nil, err
	}

	lowered := strings.ToLower(content)
	indicators := []bool{
		strings.Count(content, "@") > d.rules.MaxMentions,
		len(linkPattern.FindAllString(content, -1)) > d.rules.MaxURLs,
		engagement.RetweetCount == 0 && engagement.ReplyCount == 0,
		utf8.RuneCountInString(content) >= d.rules.LongContentLength && strings.Count(content, "#") > d.rules.MaxHashtags,
		strings.Count(lowered, "follow") > d.rules.MaxFollowMentions,
	}

	if d.rules.EngagementBait {
		indicators = append(indicators, engagementBaitPattern.MatchString(lowered))
	}

	return indicators, nil
}

// IsBot reports whether enough indicators fire. Evaluation errors count as human.
func (d *BotDetector) IsBot(tweet *models.Tweet) (isBot bool) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("bot detection panicked", "error", r)
			isBot = false
		}
	}()

	indicators, err := d.Indicators(tweet)
	if err != nil {
		slog.Error("bot detection failed", "error", err)
		return false
	}

	fired := 0
	for _, on := range indicators {
		if on {
			fired++
		}
	}

	return fired >= d.rules.MinIndicators
}
