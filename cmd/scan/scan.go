package scan

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Execute runs the scan command with the provided flags
func Execute(cmd *cobra.Command, args []string) error {
	// Get command flags
	outputDir, _ := cmd.Flags().GetString("output")
	verbose, _ := cmd.Root().PersistentFlags().GetBool("verbose")
	noColor, _ := cmd.Root().PersistentFlags().GetBool("no-color")
	configFile, _ := cmd.Root().PersistentFlags().GetString("config")

	// Load base configuration
	cfg, err := LoadConfig(configFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Apply CLI target override if provided
	if targetURL, _ := cmd.Flags().GetString("target"); targetURL != "" {
		if err := ApplyTargetOverride(cfg, targetURL); err != nil {
			return fmt.Errorf("failed to apply target override: %w", err)
		}
		printInfo(fmt.Sprintf("Target override applied: %s", targetURL), noColor)
	}

	// Apply other CLI overrides
	if maxPages, _ := cmd.Flags().GetInt("max-pages"); maxPages > 0 {
		cfg.Crawler.MaxPages = maxPages
		printInfo(fmt.Sprintf("Crawl limited to %d pages", maxPages), noColor)
	}

	if includeSubmit, _ := cmd.Flags().GetBool("include-submit"); includeSubmit {
		cfg.Crawler.IncludeSubmit = true
	}

	if insecure, _ := cmd.Flags().GetBool("insecure"); insecure {
		cfg.Target.TLS.InsecureSkipVerify = true
		printInfo("TLS certificate verification disabled", noColor)
	}

	if outputDir != "" {
		cfg.Reports.OutputDir = outputDir
		printInfo(fmt.Sprintf("Output directory: %s", outputDir), noColor)
	}

	// Validate configuration
	if err := validateScanConfig(cfg); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	// Create and execute orchestrator
	orchestrator := NewScanOrchestrator(cfg, verbose, noColor, outputDir)

	result, err := orchestrator.ExecuteScan(cmd.Context())
	if err != nil {
		return fmt.Errorf("scan execution failed: %w", err)
	}

	// Save results
	if err := orchestrator.SaveResults(result); err != nil {
		printWarning(fmt.Sprintf("Failed to save results: %v", err), noColor)
	}

	// Display summary
	orchestrator.DisplayResults(result)

	return nil
}
