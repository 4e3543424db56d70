package controllers

import (
	"log/slog"
	"net/http"
	"strconv"

	"tweetscope/internal/analysis"
	"tweetscope/internal/tasks"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
)

// Enqueuer is satisfied by *asynq.Client.
type Enqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// JobsController hands long-running work to the worker. Queue is nil when no
// Redis is configured.
type JobsController struct {
	Queue Enqueuer
}

// StartTraining enqueues a model training run
func (jc *JobsController) StartTraining(c *gin.Context) {
	task, err := tasks.NewTrainModelsTask()
	if err != nil {
		c.JSON(http.StatusInternalServerError, Fail(msgInternalError))
		return
	}

	jc.enqueue(c, task)
}

// CollectTweets enqueues a collection run for :hashtag. Query parameters:
// max_tweets (default 100) and analyze (run the analysis afterwards).
func (jc *JobsController) CollectTweets(c *gin.Context) {
	hashtag := analysis.CleanHashtag(c.Param("hashtag"))
	if hashtag == "" {
		c.JSON(http.StatusBadRequest, Fail(msgInvalidTag))
		return
	}

	maxTweets := getIntWithDefault(c, "max_tweets", 100)
	analyze := c.Query("analyze") == "true"

	task, err := tasks.NewCollectTweetsTask(hashtag, maxTweets, analyze)
	if err != nil {
		c.JSON(http.StatusInternalServerError, Fail(msgInternalError))
		return
	}

	jc.enqueue(c, task)
}

func (jc *JobsController) enqueue(c *gin.Context, task *asynq.Task) {
	ctx := c.Request.Context()

	if jc.Queue == nil {
		c.JSON(http.StatusServiceUnavailable, Fail("Task queue is not configured"))
		return
	}

	info, err := jc.Queue.Enqueue(task)
	if err != nil {
		slog.ErrorContext(ctx, "failed to enqueue task", "type", task.Type(), "error", err)
		c.JSON(http.StatusInternalServerError, Fail(msgInternalError))
		return
	}

	slog.InfoContext(ctx, "enqueued task", "type", task.Type(), "task_id", info.ID)
	c.JSON(http.StatusAccepted, Envelope{
		Success: true,
		Data:    gin.H{"task_id": info.ID, "type": task.Type()},
	})
}

func getIntWithDefault(c *gin.Context, key string, defaultValue int) int {
	raw := c.Query(key)
	if raw == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		slog.Warn("invalid query parameter, using default", "key", key, "value", raw, "default", defaultValue)
		return defaultValue
	}
	return value
}
