package mcp_test

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing/iotest"

	"tweetscope/internal/mcp"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type rpcResponse struct {
	ID     json.RawMessage `json:"id"`
	Result json.RawMessage `json:"result"`
	Error  *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

var _ = Describe("Server", func() {
	var (
		upstream *httptest.Server
		mu       sync.Mutex
		calls    []string
	)

	BeforeEach(func() {
		calls = nil
		upstream = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			mu.Lock()
			calls = append(calls, r.Method+" "+r.URL.Path)
			mu.Unlock()
			w.Header().Set("Content-Type", "application/json")

			switch r.URL.Path {
			case "/analyze/golang":
				_, _ = w.Write([]byte(`{"success":true,"data":{"hashtag":"golang"}}`))
			case "/api/v1/evaluations/latest":
				_, _ = w.Write([]byte(`{"success":true,"data":{"best_model":"svm"}}`))
			default:
				w.WriteHeader(http.StatusNotFound)
				_, _ = w.Write([]byte(`{"success":false,"error":"Analysis not found"}`))
			}
		}))
		DeferCleanup(upstream.Close)
	})

	// run serves the given messages and returns the replies keyed by id.
	run := func(messages ...string) map[string]rpcResponse {
		var out bytes.Buffer
		server := mcp.NewServer(upstream.URL+"/", strings.NewReader(strings.Join(messages, "\n")+"\n"), &out)
		Expect(server.Serve()).To(Succeed())

		replies := map[string]rpcResponse{}
		scanner := bufio.NewScanner(&out)
		for scanner.Scan() {
			var resp rpcResponse
			Expect(json.Unmarshal(scanner.Bytes(), &resp)).To(Succeed())
			replies[string(resp.ID)] = resp
		}
		return replies
	}

	It("initializes and lists tools", func() {
		replies := run(
			`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{}}`,
			`{"jsonrpc":"2.0","method":"notifications/initialized"}`,
			`{"jsonrpc":"2.0","id":2,"method":"tools/list"}`,
		)
		Expect(replies).To(HaveLen(2))

		Expect(string(replies["1"].Result)).To(ContainSubstring(`"protocolVersion":"2024-11-05"`))

		var list struct {
			Tools []struct {
				Name string `json:"name"`
			} `json:"tools"`
		}
		Expect(json.Unmarshal(replies["2"].Result, &list)).To(Succeed())
		Expect(list.Tools).To(HaveLen(3))
		Expect(list.Tools[0].Name).To(Equal("analyze_hashtag"))
	})

	It("forwards tool calls to the HTTP API", func() {
		replies := run(
			`{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"analyze_hashtag","arguments":{"hashtag":"#golang"}}}`,
			`{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"get_latest_evaluation","arguments":{}}}`,
		)

		Expect(calls).To(ConsistOf("POST /analyze/golang", "GET /api/v1/evaluations/latest"))
		Expect(replies["1"].Error).To(BeNil())
		Expect(string(replies["1"].Result)).To(ContainSubstring(`\"hashtag\":\"golang\"`))
		Expect(string(replies["2"].Result)).To(ContainSubstring("svm"))
	})

	It("reports upstream failures", func() {
		replies := run(`{"jsonrpc":"2.0","id":7,"method":"tools/call","params":{"name":"get_analysis","arguments":{"hashtag":"rust"}}}`)

		Expect(replies["7"].Error).NotTo(BeNil())
		Expect(replies["7"].Error.Code).To(Equal(-32000))
		Expect(replies["7"].Error.Message).To(ContainSubstring("404"))
	})

	It("validates arguments", func() {
		replies := run(`{"jsonrpc":"2.0","id":3,"method":"tools/call","params":{"name":"analyze_hashtag","arguments":{}}}`)
		Expect(replies["3"].Error.Code).To(Equal(-32602))
		Expect(calls).To(BeEmpty())
	})

	It("rejects unknown methods and tools", func() {
		replies := run(
			`{"jsonrpc":"2.0","id":4,"method":"resources/list"}`,
			`{"jsonrpc":"2.0","id":5,"method":"tools/call","params":{"name":"delete_everything"}}`,
		)
		Expect(replies["4"].Error.Code).To(Equal(-32601))
		Expect(replies["5"].Error.Code).To(Equal(-32601))
	})

	It("skips unparseable lines and stops on exit", func() {
		replies := run(
			`not json`,
			``,
			`{"jsonrpc":"2.0","id":1,"method":"ping"}`,
			`{"jsonrpc":"2.0","method":"notifications/exit"}`,
			`{"jsonrpc":"2.0","id":2,"method":"ping"}`,
		)
		Expect(replies).To(HaveLen(1))
		Expect(replies).To(HaveKey("1"))
	})

	It("returns read errors other than EOF", func() {
		server := mcp.NewServer("http://localhost", iotest.ErrReader(errors.New("broken pipe")), &bytes.Buffer{})

		err := server.Serve()
		Expect(err).To(MatchError(ContainSubstring("broken pipe")))
	})
})
