package xss

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/vkrlab/vkrscan/pkg/config"
	"github.com/vkrlab/vkrscan/pkg/crawler"
	"github.com/vkrlab/vkrscan/pkg/httpx"
)

func testEngineConfig() *config.EngineConfig {
	return &config.EngineConfig{
		Timeout:         5 * time.Second,
		FollowRedirects: true,
		MaxRedirects:    10,
		MaxRetries:      1,
		RetryDelay:      time.Millisecond,
		RetryOnStatus:   []int{429, 500, 502, 503, 504},
	}
}

func newTestExecutor(t *testing.T, engine *config.EngineConfig) *Executor {
	t.Helper()

	client, err := httpx.NewClient(&config.TargetConfig{BaseURL: "http://unused"}, engine)
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	t.Cleanup(client.Close)

	executor, err := NewExecutor(client, engine)
	if err != nil {
		t.Fatalf("failed to create executor: %v", err)
	}
	return executor
}

func TestBuildRequestPairsReplacesBaseline(t *testing.T) {
	target := &crawler.Target{
		InjectableParams: []string{"id", "q"},
		FixedParams: []crawler.Param{
			{Name: "id", Value: "5"},
			{Name: "id", Value: "6"},
			{Name: "page", Value: "2"},
		},
	}

	pairs := BuildRequestPairs(target, "id", "PAYLOAD", "test")

	want := []crawler.Param{
		{Name: "id", Value: "PAYLOAD"},
		{Name: "id", Value: "PAYLOAD"}, // every duplicate is replaced
		{Name: "page", Value: "2"},
		{Name: "q", Value: "test"}, // untested injectable gets filler
	}
	if !reflect.DeepEqual(pairs, want) {
		t.Errorf("unexpected pairs: %v", pairs)
	}
}

func TestBuildRequestPairsAppendsMissingTested(t *testing.T) {
	target := &crawler.Target{
		InjectableParams: []string{"q"},
		FixedParams:      []crawler.Param{{Name: "page", Value: "2"}},
	}

	// tested param absent from baseline, present in injectable set
	pairs := BuildRequestPairs(target, "q", "PAYLOAD", "test")
	want := []crawler.Param{
		{Name: "page", Value: "2"},
		{Name: "q", Value: "PAYLOAD"},
	}
	if !reflect.DeepEqual(pairs, want) {
		t.Errorf("unexpected pairs: %v", pairs)
	}

	// tested param known to neither set is still sent once
	pairs = BuildRequestPairs(target, "ghost", "PAYLOAD", "test")
	want = []crawler.Param{
		{Name: "page", Value: "2"},
		{Name: "q", Value: "test"},
		{Name: "ghost", Value: "PAYLOAD"},
	}
	if !reflect.DeepEqual(pairs, want) {
		t.Errorf("unexpected pairs: %v", pairs)
	}
}

func TestExecuteGetAppendsQuery(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		fmt.Fprint(w, "ok")
	}))
	defer server.Close()

	executor := newTestExecutor(t, testEngineConfig())
	target := &crawler.Target{
		URL:              server.URL + "/search?keep=1",
		Method:           "GET",
		InjectableParams: []string{"q"},
	}

	result := executor.Execute(context.Background(), target, "q", "a b&c", "test")
	if !result.Success {
		t.Fatalf("execute failed: %s", result.Error)
	}

	if gotQuery != "keep=1&q=a+b%26c" {
		t.Errorf("unexpected query string: %s", gotQuery)
	}
}

func TestExecutePostURLEncoded(t *testing.T) {
	var gotBody, gotContentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		gotContentType = r.Header.Get("Content-Type")
		fmt.Fprint(w, "ok")
	}))
	defer server.Close()

	executor := newTestExecutor(t, testEngineConfig())
	target := &crawler.Target{
		URL:              server.URL + "/submit",
		Method:           "POST",
		Enctype:          "application/x-www-form-urlencoded",
		InjectableParams: []string{"comment"},
		FixedParams:      []crawler.Param{{Name: "page", Value: "2"}},
	}

	result := executor.Execute(context.Background(), target, "comment", "<x>", "test")
	if !result.Success {
		t.Fatalf("execute failed: %s", result.Error)
	}

	if gotContentType != "application/x-www-form-urlencoded" {
		t.Errorf("unexpected content type: %s", gotContentType)
	}
	if gotBody != "page=2&comment=%3Cx%3E" {
		t.Errorf("unexpected body: %s", gotBody)
	}
}

func TestExecutePostMultipart(t *testing.T) {
	var gotComment string
	var gotContentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("failed to parse multipart form: %v", err)
			return
		}
		gotComment = r.FormValue("comment")
		fmt.Fprint(w, "ok")
	}))
	defer server.Close()

	executor := newTestExecutor(t, testEngineConfig())
	target := &crawler.Target{
		URL:              server.URL + "/upload",
		Method:           "POST",
		Enctype:          "multipart/form-data",
		InjectableParams: []string{"comment"},
	}

	result := executor.Execute(context.Background(), target, "comment", "PAYLOAD", "test")
	if !result.Success {
		t.Fatalf("execute failed: %s", result.Error)
	}

	if !strings.HasPrefix(gotContentType, "multipart/form-data; boundary=") {
		t.Errorf("unexpected content type: %s", gotContentType)
	}
	if gotComment != "PAYLOAD" {
		t.Errorf("unexpected field value: %s", gotComment)
	}
}

func TestExecuteRetriesOnRetryableStatus(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, "recovered")
	}))
	defer server.Close()

	engine := testEngineConfig()
	engine.MaxRetries = 2
	executor := newTestExecutor(t, engine)
	target := &crawler.Target{URL: server.URL, Method: "GET", InjectableParams: []string{"q"}}

	result := executor.Execute(context.Background(), target, "q", "x", "test")
	if !result.Success {
		t.Fatalf("execute failed: %s", result.Error)
	}
	if result.Attempts != 2 {
		t.Errorf("expected 2 attempts, got %d", result.Attempts)
	}
	if result.Response.StatusCode != http.StatusOK {
		t.Errorf("expected recovered response, got %d", result.Response.StatusCode)
	}
}

func TestExecuteExhaustedRetryableStatusIsSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, "always broken")
	}))
	defer server.Close()

	engine := testEngineConfig()
	engine.MaxRetries = 1
	executor := newTestExecutor(t, engine)
	target := &crawler.Target{URL: server.URL, Method: "GET", InjectableParams: []string{"q"}}

	result := executor.Execute(context.Background(), target, "q", "x", "test")

	// a retryable status on the final attempt still yields the response
	if !result.Success {
		t.Fatalf("expected success with last response, got error: %s", result.Error)
	}
	if result.Attempts != 2 {
		t.Errorf("expected 2 attempts, got %d", result.Attempts)
	}
	if result.Response.StatusCode != http.StatusInternalServerError {
		t.Errorf("expected the final 500 response, got %d", result.Response.StatusCode)
	}
}

func TestExecuteTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	serverURL := server.URL
	server.Close() // connection refused from here on

	engine := testEngineConfig()
	engine.MaxRetries = 1
	executor := newTestExecutor(t, engine)
	target := &crawler.Target{URL: serverURL, Method: "GET", InjectableParams: []string{"q"}}

	result := executor.Execute(context.Background(), target, "q", "x", "test")
	if result.Success {
		t.Fatal("expected failure against closed server")
	}
	if result.Error == "" {
		t.Error("failure must carry the transport error message")
	}
	if result.Attempts != 2 {
		t.Errorf("expected 2 attempts, got %d", result.Attempts)
	}
}

func TestExecuteNonRetryableStatusReturnsImmediately(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	engine := testEngineConfig()
	engine.MaxRetries = 3
	executor := newTestExecutor(t, engine)
	target := &crawler.Target{URL: server.URL, Method: "GET", InjectableParams: []string{"q"}}

	result := executor.Execute(context.Background(), target, "q", "x", "test")
	if !result.Success {
		t.Fatalf("execute failed: %s", result.Error)
	}
	if calls.Load() != 1 {
		t.Errorf("404 must not be retried, got %d calls", calls.Load())
	}
}
