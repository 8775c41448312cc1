package xss

import (
	"time"

	"github.com/vkrlab/vkrscan/pkg/httpx"
)

// Finding represents one confirmed unescaped reflection
type Finding struct {
	FindingType string  `json:"finding_type"`
	URL         string  `json:"url"`
	Method      string  `json:"method"`
	Parameter   string  `json:"parameter"`
	Context     Context `json:"context"`
	Payload     string  `json:"payload"`
	SourceURL   string  `json:"source_url"`
	StatusCode  int     `json:"status_code"`
}

// ExecutionResult is the outcome of one request attempt sequence. When
// Success is false after exhaustion exactly one of Response/Error is
// set; when Success is true Response is always present.
type ExecutionResult struct {
	Success  bool
	Response *httpx.Response
	Error    string
	Attempts int

	// Echoed for correlation
	Method      string
	URL         string
	TestedParam string
	Payload     string
}

// ScanResult represents the result of one detector run
type ScanResult struct {
	// Scan metadata
	StartTime time.Time     `json:"start_time"`
	EndTime   time.Time     `json:"end_time"`
	Duration  time.Duration `json:"duration"`
	TestType  string        `json:"test_type"`

	// Detection results
	TestsExecuted int       `json:"tests_executed"`
	Findings      []Finding `json:"findings"`

	// Request accounting
	SuccessfulRequests int     `json:"successful_requests"`
	FailedRequests     int     `json:"failed_requests"`
	RequestsPerSecond  float64 `json:"requests_per_second"`
}
