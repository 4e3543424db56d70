package routes

import (
	"net/http"

	"tweetscope/internal/controllers"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Dependencies are the collaborators the HTTP API is served from. Queue may
// be nil, which disables the job endpoints.
type Dependencies struct {
	Analyzer controllers.Analyzer
	Results  controllers.ResultReader
	Queue    controllers.Enqueuer
}

// SetupRouter initializes all controllers and API routes
func SetupRouter(deps Dependencies) *gin.Engine {
	analysisController := controllers.AnalysisController{
		Analyzer: deps.Analyzer,
		Results:  deps.Results,
	}
	jobsController := controllers.JobsController{Queue: deps.Queue}

	router := gin.New()
	router.Use(
		RequestID(),
		RequestLogger(),
		Recovery(),
		CORS(),
		Metrics(),
	)

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// POST /analyze/:hashtag
	// Runs the analysis over the stored tweets of a hashtag and upserts the summary
	router.POST("/analyze/:hashtag", analysisController.AnalyzeHashtag)

	api := router.Group("/api/v1")
	{
		api.GET("/analyses/:hashtag", analysisController.GetAnalysis)
		api.GET("/evaluations/latest", analysisController.GetLatestEvaluation)

		// Background jobs, served by cmd/worker
		api.POST("/training", jobsController.StartTraining)
		api.POST("/collect/:hashtag", jobsController.CollectTweets)
	}

	return router
}
