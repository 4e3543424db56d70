package testhelpers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
)

// Expectation is one canned reply, matched at most once.
type Expectation struct {
	Method string
	URL    *url.URL
	// ReqHeaders must all be present on the request.
	ReqHeaders http.Header

	StatusCode int
	RespBody   []byte
	Headers    http.Header

	isMatched      bool
	MismatchReason string
}

// MockTransport is an http.RoundTripper that answers from registered
// expectations, in registration order.
type MockTransport struct {
	Expectations []*Expectation
	mutex        sync.Mutex
}

func NewMockTransport() *MockTransport {
	return &MockTransport{
		Expectations: make([]*Expectation, 0),
	}
}

var (
	DefaultTransport                           = NewMockTransport()
	originalDefaultTransport http.RoundTripper = http.DefaultTransport
)

// New registers an expectation on DefaultTransport for requests to baseURL.
func New(baseURL string) *Expectation {
	u, err := url.Parse(baseURL)
	if err != nil {
		panic(fmt.Sprintf("httpmock: invalid base URL provided: %v", err))
	}

	if u.Scheme == "" || u.Host == "" {
		panic(fmt.Sprintf("httpmock: base URL must include scheme and host (e.g., http://%s)", baseURL))
	}

	exp := &Expectation{
		URL:        u,
		ReqHeaders: make(http.Header),
		Headers:    make(http.Header),
	}
	DefaultTransport.Add(exp)
	return exp
}

func (e *Expectation) Get(path string) *Expectation {
	return e.route(http.MethodGet, path)
}

func (e *Expectation) Post(path string) *Expectation {
	return e.route(http.MethodPost, path)
}

func (e *Expectation) route(method, path string) *Expectation {
	e.Method = method

	u, err := url.Parse(path)
	if err != nil {
		panic(fmt.Sprintf("httpmock: invalid path provided: %v", err))
	}

	e.URL.Path = u.Path
	e.URL.RawQuery = u.RawQuery
	return e
}

// MatchHeader requires the request to carry the header with this value.
func (e *Expectation) MatchHeader(key, value string) *Expectation {
	e.ReqHeaders.Add(key, value)
	return e
}

func (e *Expectation) Reply(statusCode int) *Expectation {
	e.StatusCode = statusCode
	return e
}

func (e *Expectation) BodyString(body string) *Expectation {
	e.RespBody = []byte(body)
	return e
}

func (e *Expectation) Body(body []byte) *Expectation {
	e.RespBody = body
	return e
}

func (e *Expectation) JSON(v any) *Expectation {
	data, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("httpmock: failed to marshal JSON: %v", err))
	}
	e.RespBody = data
	e.Headers.Set("Content-Type", "application/json")
	return e
}

func (e *Expectation) Header(key, value string) *Expectation {
	e.Headers.Set(key, value)
	return e
}

func (t *MockTransport) Add(exp *Expectation) {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	t.Expectations = append(t.Expectations, exp)
}

func (t *MockTransport) Reset() {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	t.Expectations = make([]*Expectation, 0)
}

// IsDone reports whether every registered expectation was matched.
func IsDone() bool {
	return len(Pending()) == 0
}

// Pending describes the expectations that were never matched.
func Pending() []string {
	DefaultTransport.mutex.Lock()
	defer DefaultTransport.mutex.Unlock()

	var pending []string
	for _, exp := range DefaultTransport.Expectations {
		if !exp.isMatched {
			pending = append(pending, exp.Method+" "+exp.URL.String())
		}
	}
	return pending
}

// Activate routes http.DefaultClient through DefaultTransport.
func Activate() {
	if http.DefaultClient.Transport == DefaultTransport {
		return
	}

	if http.DefaultClient.Transport != nil {
		originalDefaultTransport = http.DefaultClient.Transport
	} else {
		originalDefaultTransport = http.DefaultTransport
	}

	http.DefaultClient.Transport = DefaultTransport
}

// Deactivate restores the original transport and resets all mocks.
func Deactivate() {
	http.DefaultClient.Transport = originalDefaultTransport
	DefaultTransport.Reset()
}

func (t *MockTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	for _, exp := range t.Expectations {
		if !exp.isMatched && t.matches(exp, req) {
			exp.isMatched = true
			return t.buildResponse(exp, req), nil
		}
	}

	var reasons []string
	for _, exp := range t.Expectations {
		if exp.MismatchReason != "" {
			reasons = append(reasons, exp.MismatchReason)
		}
	}

	extra := ""
	if len(reasons) > 0 {
		extra = " (" + strings.Join(reasons, "; ") + ")"
	}

	return nil, fmt.Errorf("httpmock: no match found for request %s %s%s", req.Method, req.URL, extra)
}

func (t *MockTransport) matches(exp *Expectation, req *http.Request) bool {
	exp.MismatchReason = ""

	if exp.Method != "" && exp.Method != req.Method {
		exp.MismatchReason = fmt.Sprintf("method mismatch: expected %s got %s", exp.Method, req.Method)
		return false
	}

	if exp.URL.Scheme != req.URL.Scheme || exp.URL.Host != req.URL.Host {
		exp.MismatchReason = fmt.Sprintf("host mismatch: expected %s://%s got %s://%s", exp.URL.Scheme, exp.URL.Host, req.URL.Scheme, req.URL.Host)
		return false
	}

	if exp.URL.Path != req.URL.Path {
		exp.MismatchReason = fmt.Sprintf("path mismatch: expected %s got %s", exp.URL.Path, req.URL.Path)
		return false
	}

	for key, values := range exp.ReqHeaders {
		if got := req.Header.Values(key); !equalValues(values, got) {
			exp.MismatchReason = fmt.Sprintf("header mismatch for %s: expected %v got %v", key, values, got)
			return false
		}
	}

	actualQuery := req.URL.Query()
	for key, values := range exp.URL.Query() {
		actualValues, ok := actualQuery[key]
		if !ok {
			exp.MismatchReason = fmt.Sprintf("missing query key %s", key)
			return false
		}

		if !equalValues(values, actualValues) {
			exp.MismatchReason = fmt.Sprintf("query mismatch for %s: expected %v got %v", key, values, actualValues)
			return false
		}
	}

	return true
}

func equalValues(want, got []string) bool {
	if len(want) != len(got) {
		return false
	}
	for i := range want {
		if want[i] != got[i] {
			return false
		}
	}
	return true
}

func (t *MockTransport) buildResponse(exp *Expectation, req *http.Request) *http.Response {
	statusCode := exp.StatusCode
	if statusCode == 0 {
		statusCode = http.StatusOK
	}

	return &http.Response{
		StatusCode:    statusCode,
		Status:        fmt.Sprintf("%d %s", statusCode, http.StatusText(statusCode)),
		Body:          io.NopCloser(bytes.NewReader(exp.RespBody)),
		Header:        exp.Headers,
		Request:       req,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		ContentLength: int64(len(exp.RespBody)),
	}
}
