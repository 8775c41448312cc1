package xss

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/url"
	"strings"
	"time"

	"github.com/vkrlab/vkrscan/pkg/config"
	"github.com/vkrlab/vkrscan/pkg/crawler"
	"github.com/vkrlab/vkrscan/pkg/httpx"
)

// BackoffPolicy maps an attempt number (1-based) to the delay before
// the next attempt
type BackoffPolicy func(attempt int) time.Duration

// FixedDelay returns a policy with a constant delay between attempts
func FixedDelay(delay time.Duration) BackoffPolicy {
	return func(int) time.Duration {
		return delay
	}
}

// attemptState drives the retry loop in Execute
type attemptState int

const (
	statePending attemptState = iota
	stateRetrying
	stateSucceeded
	stateFailed
)

// Executor turns a target + tested parameter + payload into one
// concrete HTTP request with bounded retry. It never returns an error
// to the caller for a failed request; failures are reported inside the
// ExecutionResult.
type Executor struct {
	client    *httpx.Client
	engine    *config.EngineConfig
	retryable map[int]bool
	backoff   BackoffPolicy
}

// NewExecutor creates a request executor bound to the scan's shared
// HTTP client and execution policy
func NewExecutor(client *httpx.Client, engineConfig *config.EngineConfig) (*Executor, error) {
	if client == nil || engineConfig == nil {
		return nil, fmt.Errorf("xss: HTTP client and engine configuration are required")
	}

	retryable := make(map[int]bool, len(engineConfig.RetryOnStatus))
	for _, status := range engineConfig.RetryOnStatus {
		retryable[status] = true
	}

	return &Executor{
		client:    client,
		engine:    engineConfig,
		retryable: retryable,
		backoff:   FixedDelay(engineConfig.RetryDelay),
	}, nil
}

// BuildRequestPairs builds the ordered request pairs for one probe:
//  1. every baseline pair is kept in order, with the tested parameter's
//     value replaced by the payload;
//  2. injectable parameters absent from the baseline are appended with
//     the payload (tested) or the neutral default value;
//  3. a tested parameter that is neither baseline nor injectable is
//     appended unconditionally so it always appears at least once.
//
// Untested injectable parameters get a filler instead of being omitted:
// omission could change server-side validation and mask reflection.
func BuildRequestPairs(target *crawler.Target, testedParam, payload, defaultValue string) []crawler.Param {
	var pairs []crawler.Param
	counts := make(map[string]int)

	for _, pair := range target.FixedParams {
		if pair.Name == testedParam {
			pairs = append(pairs, crawler.Param{Name: pair.Name, Value: payload})
		} else {
			pairs = append(pairs, pair)
		}
		counts[pair.Name]++
	}

	injectable := make(map[string]bool, len(target.InjectableParams))
	for _, name := range target.InjectableParams {
		injectable[name] = true
		if counts[name] > 0 {
			continue
		}
		if name == testedParam {
			pairs = append(pairs, crawler.Param{Name: name, Value: payload})
		} else {
			pairs = append(pairs, crawler.Param{Name: name, Value: defaultValue})
		}
		counts[name]++
	}

	if testedParam != "" && counts[testedParam] == 0 && !injectable[testedParam] {
		pairs = append(pairs, crawler.Param{Name: testedParam, Value: payload})
	}

	return pairs
}

// encodePairs URL-encodes pairs in order; url.Values would reorder them
func encodePairs(pairs []crawler.Param) string {
	var b strings.Builder
	for i, pair := range pairs {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(pair.Name))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(pair.Value))
	}
	return b.String()
}

// buildRequest materializes the pairs into a request URL, body and
// content type according to the target's method and enctype
func (e *Executor) buildRequest(target *crawler.Target, pairs []crawler.Param) (string, io.Reader, string, error) {
	method := strings.ToUpper(target.Method)

	if method == "GET" {
		parsed, err := url.Parse(target.URL)
		if err != nil {
			return "", nil, "", fmt.Errorf("invalid target URL: %w", err)
		}
		encoded := encodePairs(pairs)
		if parsed.RawQuery != "" {
			parsed.RawQuery = parsed.RawQuery + "&" + encoded
		} else {
			parsed.RawQuery = encoded
		}
		return parsed.String(), nil, "", nil
	}

	enctype := strings.ToLower(target.Enctype)
	if strings.HasPrefix(enctype, "multipart/form-data") {
		var buf bytes.Buffer
		writer := multipart.NewWriter(&buf)
		for _, pair := range pairs {
			if err := writer.WriteField(pair.Name, pair.Value); err != nil {
				return "", nil, "", fmt.Errorf("failed to write multipart field: %w", err)
			}
		}
		if err := writer.Close(); err != nil {
			return "", nil, "", fmt.Errorf("failed to finalize multipart body: %w", err)
		}
		return target.URL, &buf, writer.FormDataContentType(), nil
	}

	return target.URL, strings.NewReader(encodePairs(pairs)), "application/x-www-form-urlencoded", nil
}

// sleepBackoff waits for the policy delay or until the context ends
func (e *Executor) sleepBackoff(ctx context.Context, attempt int) {
	delay := e.backoff(attempt)
	if delay <= 0 {
		return
	}
	select {
	case <-ctx.Done():
	case <-time.After(delay):
	}
}

// Execute performs the HTTP call for one (target, parameter, payload)
// combination with up to 1+MaxRetries attempts. A retryable status on
// the final attempt is still returned as a success: status-based retry
// is a best-effort optimization, not a correctness gate.
func (e *Executor) Execute(ctx context.Context, target *crawler.Target, testedParam, payload, defaultValue string) *ExecutionResult {
	method := strings.ToUpper(target.Method)
	result := &ExecutionResult{
		Method:      method,
		URL:         target.URL,
		TestedParam: testedParam,
		Payload:     payload,
	}

	pairs := BuildRequestPairs(target, testedParam, payload, defaultValue)

	maxAttempts := e.engine.MaxRetries + 1
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	state := statePending
	attempt := 0
	var lastResp *httpx.Response
	var lastErr string

	for state == statePending || state == stateRetrying {
		if state == stateRetrying {
			e.sleepBackoff(ctx, attempt)
		}
		attempt++

		reqURL, body, contentType, err := e.buildRequest(target, pairs)
		if err != nil {
			lastErr = err.Error()
			state = stateFailed
			break
		}

		resp, err := e.client.Do(ctx, method, reqURL, body, contentType)
		switch {
		case err != nil:
			lastErr = err.Error()
			if attempt < maxAttempts {
				state = stateRetrying
			} else {
				state = stateFailed
			}
		case e.retryable[resp.StatusCode] && attempt < maxAttempts:
			lastResp = resp
			state = stateRetrying
		default:
			lastResp = resp
			state = stateSucceeded
		}
	}

	result.Attempts = attempt

	if state == stateSucceeded {
		result.Success = true
		result.Response = lastResp
		return result
	}

	if lastErr == "" {
		lastErr = "unknown request error"
	}
	result.Error = lastErr
	return result
}
