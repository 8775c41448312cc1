package scan

import (
	"time"

	"github.com/vkrlab/vkrscan/pkg/attacks/xss"
	"github.com/vkrlab/vkrscan/pkg/config"
	"github.com/vkrlab/vkrscan/pkg/crawler"
)

// Colors for terminal output
const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
	ColorCyan   = "\033[36m"
	ColorBold   = "\033[1m"
)

// SessionResult represents the complete result of a scan session
type SessionResult struct {
	// Session metadata
	SessionID string        `json:"session_id"`
	StartTime time.Time     `json:"start_time"`
	EndTime   time.Time     `json:"end_time"`
	Duration  time.Duration `json:"duration"`

	// Target information
	Target config.TargetConfig `json:"target"`

	// Phase results
	Crawl *crawler.CrawlResult `json:"crawl,omitempty"`
	XSS   *xss.ScanResult      `json:"xss,omitempty"`

	// Summary statistics
	TotalFindings int `json:"total_findings"`
}

// ScanOrchestrator manages the crawl and detection phases of a session
type ScanOrchestrator struct {
	config    *config.Config
	target    *config.TargetConfig
	verbose   bool
	noColor   bool
	outputDir string
}

// NewScanOrchestrator creates a new scan orchestrator
func NewScanOrchestrator(cfg *config.Config, verbose, noColor bool, outputDir string) *ScanOrchestrator {
	if outputDir == "" {
		outputDir = cfg.Reports.OutputDir
	}

	return &ScanOrchestrator{
		config:    cfg,
		target:    &cfg.Target,
		verbose:   verbose,
		noColor:   noColor,
		outputDir: outputDir,
	}
}
