package scan

import (
	"fmt"
	"net/url"

	"github.com/vkrlab/vkrscan/pkg/config"
)

// LoadConfig loads the scan configuration, falling back to built-in
// defaults when no config file exists
func LoadConfig(filename string) (*config.Config, error) {
	return config.LoadConfigOrDefault(filename)
}

// ApplyTargetOverride applies the CLI --target flag over the loaded
// configuration
func ApplyTargetOverride(cfg *config.Config, targetURL string) error {
	if targetURL == "" {
		return nil
	}

	parsed, err := url.Parse(targetURL)
	if err != nil {
		return fmt.Errorf("invalid target URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("target URL scheme must be http or https, got: %q", parsed.Scheme)
	}
	if parsed.Host == "" {
		return fmt.Errorf("target URL has no host: %s", targetURL)
	}

	cfg.Target.BaseURL = targetURL
	return nil
}

// validateScanConfig validates the effective scan configuration after
// CLI overrides were applied
func validateScanConfig(cfg *config.Config) error {
	if err := config.ValidateConfig(cfg); err != nil {
		return err
	}

	if cfg.XSS.DefaultValue == "" {
		return fmt.Errorf("xss default value must not be empty")
	}

	return nil
}
