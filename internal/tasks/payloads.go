package tasks

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

// Task type names
const (
	TypeTaskAnalyzeHashtag = "task:analyze_hashtag"
	TypeTaskTrainModels    = "task:train_models"
	TypeTaskCollectTweets  = "task:collect_tweets"
)

// --- AnalyzeHashtag Task ---

type AnalyzeHashtagPayload struct {
	Hashtag string `json:"hashtag"`
}

func NewAnalyzeHashtagTask(hashtag string) (*asynq.Task, error) {
	payloadBytes, err := json.Marshal(AnalyzeHashtagPayload{Hashtag: hashtag})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(TypeTaskAnalyzeHashtag, payloadBytes), nil
}

// --- TrainModels Task ---

// TrainModelsPayload is empty; training always runs over the whole corpus.
type TrainModelsPayload struct{}

func NewTrainModelsTask() (*asynq.Task, error) {
	payloadBytes, err := json.Marshal(TrainModelsPayload{})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(TypeTaskTrainModels, payloadBytes, asynq.MaxRetry(1)), nil
}

// --- CollectTweets Task ---

type CollectTweetsPayload struct {
	Hashtag   string `json:"hashtag"`
	MaxTweets int    `json:"max_tweets"`
	// Analyze runs the hashtag analysis once the tweets are stored.
	Analyze bool `json:"analyze"`
}

func NewCollectTweetsTask(hashtag string, maxTweets int, analyze bool) (*asynq.Task, error) {
	payload := CollectTweetsPayload{
		Hashtag:   hashtag,
		MaxTweets: maxTweets,
		Analyze:   analyze,
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(TypeTaskCollectTweets, payloadBytes), nil
}
