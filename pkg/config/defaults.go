package config

import (
	"time"
)

// CreateDefaultConfig creates the complete default configuration
func CreateDefaultConfig() *Config {
	return &Config{
		Engine: EngineConfig{
			Timeout:         10 * time.Second,
			FollowRedirects: true,
			MaxRedirects:    10,
			MaxRetries:      1,
			RetryDelay:      350 * time.Millisecond,
			RetryOnStatus:   []int{429, 500, 502, 503, 504},
		},
		Target: TargetConfig{
			BaseURL: "http://localhost:8080",
			Headers: map[string]string{},
			TLS: TLSConfig{
				InsecureSkipVerify: false,
			},
		},
		Crawler: CrawlerConfig{
			MaxPages:      20,
			IncludeSubmit: true,
		},
		XSS: XSSConfig{
			DefaultValue: "test",
		},
		Reports: ReportsConfig{
			OutputDir: "./results",
		},
		Output: OutputConfig{
			Verbosity:  "normal",
			Colors:     true,
			ShowBanner: true,
		},
	}
}
