package config

import (
	"time"
)

// Config represents the main vkrscan configuration
type Config struct {
	// Core engine settings (request execution policy)
	Engine EngineConfig `yaml:"engine" json:"engine"`

	// Target configuration
	Target TargetConfig `yaml:"target" json:"target"`

	// Crawler configuration
	Crawler CrawlerConfig `yaml:"crawler" json:"crawler"`

	// XSS detection configuration
	XSS XSSConfig `yaml:"xss" json:"xss"`

	// Reporting configuration
	Reports ReportsConfig `yaml:"reports" json:"reports"`

	// Output and UI configuration
	Output OutputConfig `yaml:"output" json:"output"`
}

// EngineConfig defines the request execution policy. It is created once
// per scan and treated as immutable for the scan's duration.
type EngineConfig struct {
	// Timeout for a single HTTP request
	Timeout time.Duration `yaml:"timeout" json:"timeout"`

	// Follow HTTP redirects
	FollowRedirects bool `yaml:"follow_redirects" json:"follow_redirects"`

	// Maximum redirects to follow when FollowRedirects is on
	MaxRedirects int `yaml:"max_redirects" json:"max_redirects"`

	// Additional attempts after the first request
	MaxRetries int `yaml:"max_retries" json:"max_retries"`

	// Fixed delay between retry attempts
	RetryDelay time.Duration `yaml:"retry_delay" json:"retry_delay"`

	// HTTP status codes that trigger a retry
	RetryOnStatus []int `yaml:"retry_on_status" json:"retry_on_status"`
}

// TargetConfig defines the scan target
type TargetConfig struct {
	// Start URL for crawling; its host bounds the scan scope
	BaseURL string `yaml:"base_url" json:"base_url"`

	// Extra headers to include in every request
	Headers map[string]string `yaml:"headers" json:"headers"`

	// Optional proxy URL
	Proxy string `yaml:"proxy" json:"proxy"`

	// TLS settings
	TLS TLSConfig `yaml:"tls" json:"tls"`
}

// TLSConfig controls certificate verification
type TLSConfig struct {
	InsecureSkipVerify bool `yaml:"insecure_skip_verify" json:"insecure_skip_verify"`
}

// CrawlerConfig controls the breadth-first site traversal
type CrawlerConfig struct {
	// Maximum number of pages to visit
	MaxPages int `yaml:"max_pages" json:"max_pages"`

	// Fold the first submit-button pair into form baselines
	IncludeSubmit bool `yaml:"include_submit" json:"include_submit"`
}

// XSSConfig controls the reflected XSS detector
type XSSConfig struct {
	// Neutral filler for untested injectable parameters
	DefaultValue string `yaml:"default_value" json:"default_value"`

	// Optional payload overrides; empty lists fall back to the
	// built-in catalog
	ProbePayloads []string `yaml:"probe_payloads" json:"probe_payloads"`
	HTMLPayloads  []string `yaml:"html_payloads" json:"html_payloads"`
	AttrPayloads  []string `yaml:"attr_payloads" json:"attr_payloads"`
	JSPayloads    []string `yaml:"js_payloads" json:"js_payloads"`
}

// ReportsConfig defines where scan sessions are persisted
type ReportsConfig struct {
	OutputDir string `yaml:"output_dir" json:"output_dir"`
}

// OutputConfig controls console output
type OutputConfig struct {
	Verbosity  string `yaml:"verbosity" json:"verbosity"`
	Colors     bool   `yaml:"colors" json:"colors"`
	ShowBanner bool   `yaml:"show_banner" json:"show_banner"`
}
