package analysis

import "sort"

// Aggregator accumulates per-tweet results over one analysis run.
type Aggregator struct {
	counts       map[string]int
	order        []string
	distribution SentimentDistribution
	scoreSum     float64
	bots         int
	processed    []ProcessedTweet
	skipped      int
}

func NewAggregator() *Aggregator {
	return &Aggregator{
		counts:    map[string]int{},
		processed: []ProcessedTweet{},
	}
}

// Add records a processed tweet and its tokens.
func (a *Aggregator) Add(tweet ProcessedTweet, tokens []string) {
	for _, token := range tokens {
		if _, seen := a.counts[token]; !seen {
			a.order = append(a.order, token)
		}
		a.counts[token]++
	}

	switch tweet.Sentiment.Label {
	case LabelPositive:
		a.distribution.Positive++
	case LabelNegative:
		a.distribution.Negative++
	default:
		a.distribution.Neutral++
	}

	a.scoreSum += tweet.Sentiment.Score
	if tweet.IsBot {
		a.bots++
	}

	a.processed = append(a.processed, tweet)
}

// Skip records a tweet that could not be processed.
func (a *Aggregator) Skip() {
	a.skipped++
}

// Summary finalizes the aggregate, keeping the topN most frequent words.
func (a *Aggregator) Summary(hashtag string, topN int) *Summary {
	total := len(a.processed)

	summary := &Summary{
		Hashtag:               hashtag,
		TotalTweets:           total,
		SentimentDistribution: a.distribution,
		BotStatistics: BotStatistics{
			BotCount:   a.bots,
			HumanCount: total - a.bots,
		},
		MostCommonWords: a.TopWords(topN),
		ProcessedTweets: a.processed,
		SkippedTweets:   a.skipped,
	}

	if total > 0 {
		summary.AverageSentiment = a.scoreSum / float64(total)
		summary.BotStatistics.BotPercentage = float64(a.bots) / float64(total) * 100
	}

	return summary
}

// TopWords returns the n most frequent words; equal counts keep first-seen order.
func (a *Aggregator) TopWords(n int) []WordCount {
	words := make([]WordCount, 0, len(a.order))
	for _, w := range a.order {
		words = append(words, WordCount{Word: w, Count: a.counts[w]})
	}

	sort.SliceStable(words, func(i, j int) bool {
		return words[i].Count > words[j].Count
	})

	if n >= 0 && len(words) > n {
		words = words[:n]
	}
	return words
}
