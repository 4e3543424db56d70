package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
)

func hashtagSchema(description string) map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"hashtag": map[string]any{
				"type":        "string",
				"description": description,
			},
		},
		"required": []string{"hashtag"},
	}
}

func toolDefinitions() []Tool {
	return []Tool{
		{
			Name:        "analyze_hashtag",
			Description: "Analyze the stored tweets of a hashtag: sentiment distribution, bot statistics and most common words.",
			InputSchema: hashtagSchema("Hashtag to analyze, with or without the leading '#'."),
		},
		{
			Name:        "get_analysis",
			Description: "Return the last stored analysis of a hashtag without recomputing it.",
			InputSchema: hashtagSchema("Hashtag whose stored analysis to return."),
		},
		{
			Name:        "get_latest_evaluation",
			Description: "Return the most recent sentiment model training evaluation.",
			InputSchema: map[string]any{"type": "object", "properties": map[string]any{}},
		},
	}
}

func (s *Server) handleToolCall(req Request) *Response {
	var params ToolCallParams
	if len(req.Params) > 0 {
		if err := json.Unmarshal(req.Params, &params); err != nil {
			return s.error(req, codeInvalidParams, "invalid params", err.Error())
		}
	}

	var (
		result *ToolCallResult
		rpcErr *ResponseError
	)

	switch params.Name {
	case "analyze_hashtag":
		result, rpcErr = s.callWithHashtag(params.Arguments, http.MethodPost, "/analyze/")
	case "get_analysis":
		result, rpcErr = s.callWithHashtag(params.Arguments, http.MethodGet, "/api/v1/analyses/")
	case "get_latest_evaluation":
		result, rpcErr = s.callUpstream(http.MethodGet, s.baseURL+"/api/v1/evaluations/latest")
	default:
		return s.error(req, codeMethodNotFound, fmt.Sprintf("tool not found: %s", params.Name), nil)
	}

	if rpcErr != nil {
		return &Response{JSONRPC: "2.0", ID: req.ID, Error: rpcErr}
	}
	return s.reply(req, result)
}

func (s *Server) callWithHashtag(args map[string]any, method, prefix string) (*ToolCallResult, *ResponseError) {
	raw, ok := args["hashtag"]
	if !ok {
		return nil, &ResponseError{Code: codeInvalidParams, Message: "hashtag is required"}
	}

	hashtag, ok := raw.(string)
	hashtag = strings.TrimPrefix(strings.TrimSpace(hashtag), "#")
	if !ok || hashtag == "" {
		return nil, &ResponseError{Code: codeInvalidParams, Message: "hashtag must be a non-empty string"}
	}

	return s.callUpstream(method, s.baseURL+prefix+url.PathEscape(hashtag))
}

func (s *Server) callUpstream(method, urlStr string) (*ToolCallResult, *ResponseError) {
	slog.Debug("calling upstream", "method", method, "url", urlStr)

	req, err := http.NewRequestWithContext(context.Background(), method, urlStr, nil)
	if err != nil {
		return nil, &ResponseError{Code: codeUpstream, Message: "failed to build request", Data: err.Error()}
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &ResponseError{Code: codeUpstream, Message: "request failed", Data: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ResponseError{Code: codeUpstream, Message: "failed to read response", Data: err.Error()}
	}

	if resp.StatusCode >= 300 {
		return nil, &ResponseError{Code: codeUpstream, Message: fmt.Sprintf("upstream error: %s", resp.Status), Data: string(body)}
	}

	return &ToolCallResult{
		Content: []ContentItem{{Type: "text", Text: string(body)}},
	}, nil
}
