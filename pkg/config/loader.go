package config

import (
	"fmt"
	"net/url"
	"os"

	"gopkg.in/yaml.v3"
)

const DefaultConfigFilename = "vkrscan.yaml"

// LoadConfig loads configuration from a YAML file
func LoadConfig(filename string) (*Config, error) {
	if filename == "" {
		filename = DefaultConfigFilename
	}

	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return nil, fmt.Errorf("configuration file not found: %s", filename)
	}

	yamlData, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := CreateDefaultConfig()
	if err := yaml.Unmarshal(yamlData, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// LoadConfigOrDefault loads config from file or returns defaults when
// no file exists. Parsing and validation errors are still reported.
func LoadConfigOrDefault(filename string) (*Config, error) {
	if filename == "" {
		filename = DefaultConfigFilename
	}

	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return CreateDefaultConfig(), nil
	}

	return LoadConfig(filename)
}

// ValidateConfig validates the configuration for correctness.
// Configuration errors are the only fatal errors in a scan and are
// rejected here, before any component is constructed.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("configuration cannot be nil")
	}

	if err := validateTargetConfig(&cfg.Target); err != nil {
		return fmt.Errorf("target configuration error: %w", err)
	}

	if err := validateEngineConfig(&cfg.Engine); err != nil {
		return fmt.Errorf("engine configuration error: %w", err)
	}

	if err := validateCrawlerConfig(&cfg.Crawler); err != nil {
		return fmt.Errorf("crawler configuration error: %w", err)
	}

	if cfg.Reports.OutputDir == "" {
		return fmt.Errorf("reports configuration error: output directory is required")
	}

	return nil
}

// validateTargetConfig validates target-specific configuration
func validateTargetConfig(target *TargetConfig) error {
	if target.BaseURL == "" {
		return fmt.Errorf("target URL is required")
	}

	parsed, err := url.Parse(target.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid target URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("target URL scheme must be http or https, got: %q", parsed.Scheme)
	}
	if parsed.Host == "" {
		return fmt.Errorf("target URL has no host: %s", target.BaseURL)
	}

	if target.Proxy != "" {
		if _, err := url.Parse(target.Proxy); err != nil {
			return fmt.Errorf("invalid proxy URL: %w", err)
		}
	}

	return nil
}

// validateEngineConfig validates engine-specific configuration
func validateEngineConfig(engine *EngineConfig) error {
	if engine.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got: %v", engine.Timeout)
	}

	if engine.MaxRedirects < 0 {
		return fmt.Errorf("max redirects cannot be negative, got: %d", engine.MaxRedirects)
	}

	if engine.MaxRetries < 0 {
		return fmt.Errorf("max retries cannot be negative, got: %d", engine.MaxRetries)
	}

	if engine.RetryDelay < 0 {
		return fmt.Errorf("retry delay cannot be negative, got: %v", engine.RetryDelay)
	}

	for _, status := range engine.RetryOnStatus {
		if status < 100 || status > 599 {
			return fmt.Errorf("invalid retryable status code: %d", status)
		}
	}

	return nil
}

// validateCrawlerConfig validates crawler-specific configuration
func validateCrawlerConfig(crawler *CrawlerConfig) error {
	if crawler.MaxPages <= 0 {
		return fmt.Errorf("max pages must be positive, got: %d", crawler.MaxPages)
	}
	return nil
}

// SaveConfig saves configuration to a YAML file
func SaveConfig(cfg *Config, filename string) error {
	if filename == "" {
		filename = DefaultConfigFilename
	}

	if err := ValidateConfig(cfg); err != nil {
		return fmt.Errorf("cannot save invalid configuration: %w", err)
	}

	yamlData, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to serialize configuration: %w", err)
	}

	if err := os.WriteFile(filename, yamlData, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
