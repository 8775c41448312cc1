package httpx

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/vkrlab/vkrscan/pkg/config"
)

// UserAgent is the fixed client identifier sent on every request.
const UserAgent = "vkrscan/1.0 (reflected XSS scanner)"

// Client wraps http.Client for scanning. One Client is created per scan
// and reused across all crawler and detector requests so connections
// and cookies are shared.
type Client struct {
	client    *http.Client
	target    *config.TargetConfig
	userAgent string

	// Request tracking
	requestCount int64
	totalTime    time.Duration
}

// Response represents an HTTP response with the body drained and
// additional request metadata for correlation.
type Response struct {
	*http.Response

	// Timing information
	StartTime time.Time     `json:"start_time"`
	EndTime   time.Time     `json:"end_time"`
	Duration  time.Duration `json:"duration"`

	// Request information
	RequestURL    string `json:"request_url"`
	RequestMethod string `json:"request_method"`

	// Full response body; detectors match payloads against it
	BodyText string `json:"-"`
	BodySize int64  `json:"body_size"`
}

// HTTPError represents an HTTP transport error with additional context
type HTTPError struct {
	URL       string        `json:"url"`
	Method    string        `json:"method"`
	Duration  time.Duration `json:"duration"`
	Message   string        `json:"message"`
	ErrorType string        `json:"error_type"` // timeout, connection, dns, tls, etc.
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %s %s failed: %s (type: %s)",
		e.Method, e.URL, e.Message, e.ErrorType)
}

// NewClient creates the scan HTTP client from validated configuration.
// A nil config is a usage error and rejected immediately.
func NewClient(targetConfig *config.TargetConfig, engineConfig *config.EngineConfig) (*Client, error) {
	if targetConfig == nil || engineConfig == nil {
		return nil, fmt.Errorf("httpx: target and engine configuration are required")
	}
	if engineConfig.Timeout <= 0 {
		return nil, fmt.Errorf("httpx: timeout must be positive, got %v", engineConfig.Timeout)
	}

	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     30 * time.Second,
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: targetConfig.TLS.InsecureSkipVerify,
		},
	}

	if targetConfig.Proxy != "" {
		proxyURL, err := url.Parse(targetConfig.Proxy)
		if err != nil {
			return nil, fmt.Errorf("httpx: invalid proxy URL: %w", err)
		}
		transport.Proxy = http.ProxyURL(proxyURL)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("httpx: failed to create cookie jar: %w", err)
	}

	maxRedirects := engineConfig.MaxRedirects
	followRedirects := engineConfig.FollowRedirects

	client := &http.Client{
		Transport: transport,
		Jar:       jar,
		Timeout:   engineConfig.Timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if !followRedirects {
				return http.ErrUseLastResponse
			}
			if len(via) >= maxRedirects {
				return fmt.Errorf("stopped after %d redirects", maxRedirects)
			}
			return nil
		},
	}

	return &Client{
		client:    client,
		target:    targetConfig,
		userAgent: UserAgent,
	}, nil
}

// Get performs a single HTTP GET request
func (c *Client) Get(ctx context.Context, url string) (*Response, error) {
	return c.Do(ctx, http.MethodGet, url, nil, "")
}

// Do performs exactly one HTTP request attempt. Retry policy lives
// with the caller; transport failures come back as *HTTPError.
func (c *Client) Do(ctx context.Context, method, rawURL string, body io.Reader, contentType string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return nil, &HTTPError{
			URL:       rawURL,
			Method:    method,
			Message:   err.Error(),
			ErrorType: "request_creation",
		}
	}

	c.setRequestHeaders(req, contentType)

	startTime := time.Now()
	resp, err := c.client.Do(req)
	endTime := time.Now()
	duration := endTime.Sub(startTime)

	c.requestCount++
	c.totalTime += duration

	if err != nil {
		return nil, &HTTPError{
			URL:       rawURL,
			Method:    method,
			Duration:  duration,
			Message:   err.Error(),
			ErrorType: classifyError(err),
		}
	}

	return drainResponse(resp, req, startTime, endTime)
}

// setRequestHeaders applies the client identifier, target headers and
// the request content type
func (c *Client) setRequestHeaders(req *http.Request, contentType string) {
	req.Header.Set("User-Agent", c.userAgent)

	for key, value := range c.target.Headers {
		req.Header.Set(key, value)
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "*/*")
	}
}

// drainResponse reads the full body into the Response wrapper so the
// underlying connection can be reused immediately
func drainResponse(resp *http.Response, req *http.Request, startTime, endTime time.Time) (*Response, error) {
	drained := &Response{
		Response:      resp,
		StartTime:     startTime,
		EndTime:       endTime,
		Duration:      endTime.Sub(startTime),
		RequestURL:    req.URL.String(),
		RequestMethod: req.Method,
	}

	if resp.Body != nil {
		bodyBytes, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, &HTTPError{
				URL:       drained.RequestURL,
				Method:    req.Method,
				Duration:  drained.Duration,
				Message:   err.Error(),
				ErrorType: "body_read",
			}
		}

		drained.BodyText = string(bodyBytes)
		drained.BodySize = int64(len(bodyBytes))
		resp.Body = io.NopCloser(strings.NewReader(drained.BodyText))
	}

	return drained, nil
}

// GetStats returns request count, average request time and requests per second
func (c *Client) GetStats() (int64, time.Duration, float64) {
	if c.requestCount == 0 {
		return 0, 0, 0
	}

	avgTime := c.totalTime / time.Duration(c.requestCount)
	requestsPerSecond := float64(c.requestCount) / c.totalTime.Seconds()

	return c.requestCount, avgTime, requestsPerSecond
}

// Close releases idle connections held by the client
func (c *Client) Close() {
	c.client.CloseIdleConnections()
}

// classifyError classifies transport errors for reporting
func classifyError(err error) string {
	errStr := strings.ToLower(err.Error())

	switch {
	case strings.Contains(errStr, "timeout"):
		return "timeout"
	case strings.Contains(errStr, "connection refused"):
		return "connection_refused"
	case strings.Contains(errStr, "no such host"):
		return "dns"
	case strings.Contains(errStr, "tls"):
		return "tls"
	case strings.Contains(errStr, "certificate"):
		return "certificate"
	case strings.Contains(errStr, "context canceled"):
		return "canceled"
	default:
		return "unknown"
	}
}
