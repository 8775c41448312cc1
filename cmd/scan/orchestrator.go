package scan

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/vkrlab/vkrscan/pkg/attacks/xss"
	"github.com/vkrlab/vkrscan/pkg/crawler"
	"github.com/vkrlab/vkrscan/pkg/httpx"
)

// ExecuteScan runs the crawl phase then the detection phase against the
// configured target
func (so *ScanOrchestrator) ExecuteScan(ctx context.Context) (*SessionResult, error) {
	startTime := time.Now()
	sessionID := fmt.Sprintf("vkr_%d", startTime.Unix())

	result := &SessionResult{
		SessionID: sessionID,
		StartTime: startTime,
		Target:    *so.target,
	}

	client, err := httpx.NewClient(so.target, &so.config.Engine)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP client: %w", err)
	}
	defer client.Close()

	// Phase 1: crawl the target and collect injection points
	so.printPhaseStart("Crawling")

	siteCrawler, err := crawler.New(client, &so.config.Crawler)
	if err != nil {
		return nil, fmt.Errorf("failed to create crawler: %w", err)
	}

	crawlResult, err := siteCrawler.Crawl(ctx, so.target.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("crawl failed: %w", err)
	}
	result.Crawl = crawlResult
	so.printCrawlComplete(crawlResult)

	// Phase 2: probe and confirm every injectable parameter
	so.printPhaseStart("Reflected XSS Testing")

	scanner, err := xss.NewScanner(&so.config.XSS, client, &so.config.Engine)
	if err != nil {
		return nil, fmt.Errorf("failed to create XSS scanner: %w", err)
	}

	xssResult, err := scanner.Scan(ctx, crawlResult.Targets)
	if err != nil {
		return nil, fmt.Errorf("XSS testing failed: %w", err)
	}
	result.XSS = xssResult
	so.printXSSComplete(xssResult)

	// Finalize results
	result.EndTime = time.Now()
	result.Duration = result.EndTime.Sub(result.StartTime)
	result.TotalFindings = len(xssResult.Findings)

	return result, nil
}

// SaveResults saves the session results to a JSON file
func (so *ScanOrchestrator) SaveResults(result *SessionResult) error {
	if so.outputDir == "" {
		so.outputDir = "./results"
	}

	if err := os.MkdirAll(so.outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	filename := fmt.Sprintf("%s.json", result.SessionID)
	path := filepath.Join(so.outputDir, filename)

	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}

	if err := os.WriteFile(path, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write results file: %w", err)
	}

	printSuccess(fmt.Sprintf("Results saved to: %s", path), so.noColor)
	return nil
}
