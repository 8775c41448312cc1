package xss

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/vkrlab/vkrscan/pkg/config"
	"github.com/vkrlab/vkrscan/pkg/crawler"
	"github.com/vkrlab/vkrscan/pkg/httpx"
)

// Scanner runs the probe-then-confirm reflected XSS protocol over a
// list of targets. Per-request failures are recorded and skipped; the
// scan itself never aborts on them.
type Scanner struct {
	config   *config.XSSConfig
	executor *Executor
	client   *httpx.Client

	// Results tracking
	mu                 sync.Mutex
	testsExecuted      int
	successfulRequests int
	failedRequests     int
	findings           []Finding
}

// NewScanner creates a reflected XSS scanner sharing the scan's HTTP
// client
func NewScanner(xssConfig *config.XSSConfig, client *httpx.Client, engineConfig *config.EngineConfig) (*Scanner, error) {
	if xssConfig == nil {
		return nil, fmt.Errorf("xss: configuration is required")
	}

	executor, err := NewExecutor(client, engineConfig)
	if err != nil {
		return nil, fmt.Errorf("xss: failed to create executor: %w", err)
	}

	return &Scanner{
		config:   xssConfig,
		executor: executor,
		client:   client,
	}, nil
}

// probePayloads returns the configured probe list or the catalog default
func (s *Scanner) probePayloads() []string {
	if len(s.config.ProbePayloads) > 0 {
		return s.config.ProbePayloads
	}
	return getProbePayloads()
}

// contextPayloads returns the configured list for a context or the
// catalog default
func (s *Scanner) contextPayloads(reflectionContext Context) []string {
	var override []string
	switch reflectionContext {
	case ContextHTML:
		override = s.config.HTMLPayloads
	case ContextAttr:
		override = s.config.AttrPayloads
	case ContextJS:
		override = s.config.JSPayloads
	}
	if len(override) > 0 {
		return override
	}
	return getContextPayloads(reflectionContext)
}

// Scan drives the two-phase detection loop over every injectable
// parameter of every target, in scan order
func (s *Scanner) Scan(ctx context.Context, targets []*crawler.Target) (*ScanResult, error) {
	startTime := time.Now()

	result := &ScanResult{
		StartTime: startTime,
		TestType:  "Reflected XSS Assessment",
	}

	for _, target := range targets {
		if len(target.InjectableParams) == 0 {
			continue
		}

		for _, param := range target.InjectableParams {
			if ctx.Err() != nil {
				break
			}
			s.scanParameter(ctx, target, param)
		}
	}

	s.mu.Lock()
	result.TestsExecuted = s.testsExecuted
	result.SuccessfulRequests = s.successfulRequests
	result.FailedRequests = s.failedRequests
	result.Findings = make([]Finding, len(s.findings))
	copy(result.Findings, s.findings)
	s.mu.Unlock()

	result.EndTime = time.Now()
	result.Duration = result.EndTime.Sub(result.StartTime)

	_, _, requestsPerSecond := s.client.GetStats()
	result.RequestsPerSecond = requestsPerSecond

	return result, nil
}

// scanParameter runs probe then confirm for one (target, parameter)
// pair, recording at most one finding
func (s *Scanner) scanParameter(ctx context.Context, target *crawler.Target, param string) {
	// Phase 1: cheap probes decide whether output encoding is absent.
	// No probe hit means no confirm phase and no finding.
	probeHit := false
	for _, payload := range s.probePayloads() {
		response, ok := s.tryPayload(ctx, target, param, payload)
		if !ok {
			continue
		}
		if isReflectedUnescaped(payload, response.BodyText) {
			probeHit = true
			break
		}
	}
	if !probeHit {
		return
	}

	// Phase 2: context-specific payloads; the first unescaped
	// reflection produces the finding.
	reflectionContext := ClassifyContext(target.ParamTypes[param])
	for _, payload := range s.contextPayloads(reflectionContext) {
		response, ok := s.tryPayload(ctx, target, param, payload)
		if !ok {
			continue
		}
		if isReflectedUnescaped(payload, response.BodyText) {
			s.recordFinding(Finding{
				FindingType: "Reflected XSS",
				URL:         target.URL,
				Method:      target.Method,
				Parameter:   param,
				Context:     reflectionContext,
				Payload:     payload,
				SourceURL:   target.SourceURL,
				StatusCode:  response.StatusCode,
			})
			break
		}
	}
}

// tryPayload executes one payload substitution and returns the response
// when the attempt sequence succeeded
func (s *Scanner) tryPayload(ctx context.Context, target *crawler.Target, param, payload string) (*httpx.Response, bool) {
	s.incrementTestCount()

	execResult := s.executor.Execute(ctx, target, param, payload, s.config.DefaultValue)
	if !execResult.Success || execResult.Response == nil {
		s.recordFailedRequest()
		return nil, false
	}

	s.recordSuccessfulRequest()
	return execResult.Response, true
}
