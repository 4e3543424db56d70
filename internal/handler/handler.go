package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"tweetscope/internal/analysis"
	"tweetscope/internal/controllers"
	"tweetscope/internal/logging"

	"github.com/aws/aws-lambda-go/events"
)

var corsHeaders = map[string]string{
	"Access-Control-Allow-Origin":  "*",
	"Access-Control-Allow-Headers": "Content-Type",
	"Access-Control-Allow-Methods": "POST, OPTIONS",
	"Content-Type":                 "application/json",
}

// Handler answers API Gateway proxy events for POST .../analyze/{hashtag}.
type Handler struct {
	analyzer controllers.Analyzer
}

func New(analyzer controllers.Analyzer) *Handler {
	return &Handler{analyzer: analyzer}
}

func (h *Handler) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	if req.RequestContext.RequestID != "" {
		ctx = logging.WithRequestID(ctx, req.RequestContext.RequestID)
	}

	switch req.HTTPMethod {
	case http.MethodOptions:
		return respond(http.StatusOK, map[string]string{"message": "OK"}), nil
	case http.MethodPost:
	default:
		return respond(http.StatusMethodNotAllowed, controllers.Fail("Method not allowed")), nil
	}

	hashtag, ok := HashtagFromPath(req.Path)
	if !ok {
		return respond(http.StatusBadRequest, controllers.Fail("Hashtag not provided")), nil
	}

	result, err := h.analyzer.AnalyzeHashtag(ctx, hashtag)
	if err != nil && !errors.Is(err, analysis.ErrNoTweets) {
		slog.ErrorContext(ctx, "analysis failed", "hashtag", hashtag, "error", err)
	}

	status, body := controllers.AnalysisOutcome(result, err)
	return respond(status, body), nil
}

// HashtagFromPath returns the last segment of a path shaped like
// /api/analyze/{hashtag}. Paths with fewer than three segments, or an empty
// last segment, have no hashtag.
func HashtagFromPath(path string) (string, bool) {
	parts := strings.Split(path, "/")
	if len(parts) < 3 {
		return "", false
	}

	hashtag := analysis.CleanHashtag(parts[len(parts)-1])
	return hashtag, hashtag != ""
}

func respond(status int, body any) events.APIGatewayProxyResponse {
	headers := make(map[string]string, len(corsHeaders))
	for k, v := range corsHeaders {
		headers[k] = v
	}

	payload, err := json.Marshal(body)
	if err != nil {
		status = http.StatusInternalServerError
		payload = []byte(`{"success":false,"error":"failed to encode response"}`)
	}

	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    headers,
		Body:       string(payload),
	}
}
