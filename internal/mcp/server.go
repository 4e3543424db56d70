package mcp

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"
)

const protocolVersion = "2024-11-05"

var (
	errEmptyLine   = errors.New("empty line")
	errInvalidJSON = errors.New("json parse error")
)

// Server is an MCP stdio shim that exposes the tweetscope HTTP API as tools.
// Messages are newline-delimited JSON.
type Server struct {
	baseURL string
	client  *http.Client
	in      *bufio.Reader
	out     *bufio.Writer
	outMu   sync.Mutex
	tools   []Tool
}

func NewServer(baseURL string, in io.Reader, out io.Writer) *Server {
	return &Server{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			// an analysis over a large hashtag can take a while
			Timeout: 2 * time.Minute,
		},
		in:    bufio.NewReader(in),
		out:   bufio.NewWriter(out),
		tools: toolDefinitions(),
	}
}

// Serve reads requests until EOF or an exit notification, answering each on
// its own goroutine. Blank and unparseable lines are skipped; any other read
// error ends the loop. It returns once every in-flight reply is written.
func (s *Server) Serve() error {
	var wg sync.WaitGroup
	defer wg.Wait()

	for {
		req, err := s.readMessage()
		if err != nil {
			switch {
			case errors.Is(err, io.EOF):
				return nil
			case errors.Is(err, errEmptyLine):
				continue
			case errors.Is(err, errInvalidJSON):
				slog.Warn("failed to parse mcp message", "error", err)
				continue
			}
			return fmt.Errorf("read mcp message: %w", err)
		}

		if req.Method == "notifications/exit" {
			return nil
		}

		wg.Add(1)
		go func(r Request) {
			defer wg.Done()

			resp := s.handleRequest(r)
			// notifications get no reply
			if resp == nil {
				return
			}

			if err := s.writeMessage(*resp); err != nil {
				slog.Error("failed to write mcp message", "error", err)
			}
		}(req)
	}
}

func (s *Server) handleRequest(req Request) *Response {
	switch req.Method {
	case "initialize":
		return s.reply(req, InitializeResult{
			ProtocolVersion: protocolVersion,
			Capabilities: map[string]any{
				"tools": map[string]any{},
			},
			ServerInfo: map[string]any{
				"name":    "tweetscope-mcp",
				"version": "1.0.0",
			},
		})
	case "notifications/initialized":
		return nil
	case "tools/list":
		return s.reply(req, ListToolsResult{Tools: s.tools})
	case "tools/call":
		return s.handleToolCall(req)
	case "ping", "shutdown":
		return s.reply(req, map[string]any{})
	}

	return s.error(req, codeMethodNotFound, fmt.Sprintf("method not found: %s", req.Method), nil)
}

func (s *Server) reply(req Request, result any) *Response {
	return &Response{JSONRPC: "2.0", ID: req.ID, Result: result}
}

func (s *Server) error(req Request, code int, message string, data any) *Response {
	return &Response{
		JSONRPC: "2.0",
		ID:      req.ID,
		Error:   &ResponseError{Code: code, Message: message, Data: data},
	}
}

func (s *Server) readMessage() (Request, error) {
	line, err := s.in.ReadBytes('\n')
	if err != nil && (len(bytes.TrimSpace(line)) == 0 || !errors.Is(err, io.EOF)) {
		return Request{}, err
	}

	line = bytes.TrimSpace(line)
	if len(line) == 0 {
		return Request{}, errEmptyLine
	}

	var req Request
	if err := json.Unmarshal(line, &req); err != nil {
		return Request{}, fmt.Errorf("%w: %w", errInvalidJSON, err)
	}

	return req, nil
}

func (s *Server) writeMessage(resp Response) error {
	s.outMu.Lock()
	defer s.outMu.Unlock()

	payload, err := json.Marshal(resp)
	if err != nil {
		return err
	}

	if _, err := s.out.Write(append(payload, '\n')); err != nil {
		return err
	}

	return s.out.Flush()
}
