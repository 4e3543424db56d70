package controllers

import (
	"errors"
	"net/http"

	"tweetscope/internal/analysis"
)

const (
	msgNoTweets      = "No tweets found for analysis"
	msgInvalidTag    = "Hashtag is required"
	msgInternalError = "Something went wrong"
)

// Envelope is the body of every API response.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Warning string `json:"warning,omitempty"`
}

func Fail(message string) Envelope {
	return Envelope{Success: false, Error: message}
}

// AnalysisOutcome maps the result of an analysis run to a status and body.
// Both the HTTP service and the serverless handler answer through it.
func AnalysisOutcome(result *analysis.Result, err error) (int, Envelope) {
	switch {
	case err == nil:
		return http.StatusOK, Envelope{
			Success: true,
			Data:    result.Summary,
			Warning: result.Warning,
		}
	case errors.Is(err, analysis.ErrNoTweets):
		return http.StatusNotFound, Fail(msgNoTweets)
	case errors.Is(err, analysis.ErrInvalidHashtag):
		return http.StatusBadRequest, Fail(msgInvalidTag)
	default:
		return http.StatusInternalServerError, Fail(err.Error())
	}
}
