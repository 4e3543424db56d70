package controllers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"tweetscope/internal/analysis"
	"tweetscope/internal/models"
	"tweetscope/internal/store"

	"github.com/gin-gonic/gin"
)

type Analyzer interface {
	AnalyzeHashtag(ctx context.Context, hashtag string) (*analysis.Result, error)
}

// ResultReader reads stored analyses and evaluations.
type ResultReader interface {
	AnalysisByHashtag(ctx context.Context, hashtag string) (*models.TweetAnalysis, error)
	LatestEvaluation(ctx context.Context) (*models.ModelEvaluation, error)
}

type AnalysisController struct {
	Analyzer Analyzer
	Results  ResultReader
}

// AnalyzeHashtag runs the analysis pipeline for the :hashtag path parameter
func (ac *AnalysisController) AnalyzeHashtag(c *gin.Context) {
	ctx := c.Request.Context()
	hashtag := c.Param("hashtag")

	result, err := ac.Analyzer.AnalyzeHashtag(ctx, hashtag)
	if err != nil && !errors.Is(err, analysis.ErrNoTweets) {
		slog.ErrorContext(ctx, "analysis failed", "hashtag", hashtag, "error", err)
	}

	c.JSON(AnalysisOutcome(result, err))
}

// GetAnalysis returns the stored summary for a hashtag
func (ac *AnalysisController) GetAnalysis(c *gin.Context) {
	ctx := c.Request.Context()
	hashtag := analysis.CleanHashtag(c.Param("hashtag"))

	stored, err := ac.Results.AnalysisByHashtag(ctx, hashtag)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, Fail("Analysis not found"))
			return
		}

		slog.ErrorContext(ctx, "failed to get analysis", "hashtag", hashtag, "error", err)
		c.JSON(http.StatusInternalServerError, Fail(msgInternalError))
		return
	}

	c.JSON(http.StatusOK, Envelope{Success: true, Data: stored})
}

// GetLatestEvaluation returns the most recent model evaluation
func (ac *AnalysisController) GetLatestEvaluation(c *gin.Context) {
	ctx := c.Request.Context()

	evaluation, err := ac.Results.LatestEvaluation(ctx)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, Fail("No model evaluation found"))
			return
		}

		slog.ErrorContext(ctx, "failed to get latest evaluation", "error", err)
		c.JSON(http.StatusInternalServerError, Fail(msgInternalError))
		return
	}

	c.JSON(http.StatusOK, Envelope{Success: true, Data: evaluation})
}
