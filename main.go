package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vkrlab/vkrscan/cmd/report"
	"github.com/vkrlab/vkrscan/cmd/scan"
	"github.com/vkrlab/vkrscan/pkg/config"
)

var (
	// Version information
	Version   = "1.0.0"
	BuildTime = "development"
	GitCommit = "unknown"

	// Global flags
	configFile string
	verbose    bool
	quiet      bool
	noColor    bool
	noBanner   bool
)

// ASCII Art Banner
const banner = `
██╗   ██╗██╗  ██╗██████╗ ███████╗ ██████╗ █████╗ ███╗   ██╗
██║   ██║██║ ██╔╝██╔══██╗██╔════╝██╔════╝██╔══██╗████╗  ██║
██║   ██║█████╔╝ ██████╔╝███████╗██║     ███████║██╔██╗ ██║
╚██╗ ██╔╝██╔═██╗ ██╔══██╗╚════██║██║     ██╔══██║██║╚██╗██║
 ╚████╔╝ ██║  ██╗██║  ██║███████║╚██████╗██║  ██║██║ ╚████║
  ╚═══╝  ╚═╝  ╚═╝╚═╝  ╚═╝╚══════╝ ╚═════╝╚═╝  ╚═╝╚═╝  ╚═══╝

        Reflected XSS Crawler & Scanner
              Version %s | Build %s
`

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

// printBanner displays the vkrscan banner
func printBanner() {
	if noBanner {
		return
	}

	color := ""
	if !noColor {
		color = ColorCyan + ColorBold
	}

	fmt.Printf(color+banner+ColorReset+"\n\n", Version, BuildTime)
}

// printError prints error messages with proper formatting
func printError(err error) {
	color := ""
	if !noColor {
		color = ColorRed + ColorBold
	}
	fmt.Fprintf(os.Stderr, color+"[ERROR] %v"+ColorReset+"\n", err)
}

// printInfo prints info messages with proper formatting
func printInfo(message string) {
	if quiet {
		return
	}
	color := ""
	if !noColor {
		color = ColorBlue
	}
	fmt.Printf(color+"[INFO] %s"+ColorReset+"\n", message)
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "vkrscan",
	Short: "Reflected XSS crawler and scanner",
	Long: `vkrscan crawls a target web application, extracts injectable
parameters from HTML forms and URL query strings, then tests each one
for reflected cross-site scripting using a probe-then-confirm protocol.

Workflow:
• Crawl same-host pages starting from the target URL
• Extract injection points from forms and query strings
• Probe each parameter with harmless markers
• Confirm reflections with context-specific payloads
• Save session results for later review

Intended for authorized security assessments of your own applications.`,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Handle config initialization first
		if initConfig, _ := cmd.Flags().GetBool("init-config"); initConfig {
			return createDefaultConfig()
		}

		// Print banner for all commands except help
		if cmd.Name() != "help" && cmd.Name() != "completion" {
			printBanner()
		}

		return nil
	},

	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: show help
		return cmd.Help()
	},
}

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Crawl a target and test for reflected XSS",
	Long: `Crawl the target application and test every discovered injection
point for reflected cross-site scripting.

The scan proceeds in two phases per parameter:
• Probe: harmless marker payloads check whether input is reflected
  without output encoding
• Confirm: context-specific payloads (HTML body, attribute, JavaScript)
  establish an exploitable reflection

Each parameter yields at most one finding. Session results are saved
as JSON in the configured output directory.

Example usage:
  vkrscan scan --target http://testapp.local:8080
  vkrscan scan -t http://testapp.local --max-pages 50 --output ./results`,

	RunE: scan.Execute,
}

// reportCmd represents the report command
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Display results from a previous scan session",
	Long: `Load and display the results of a previous scan session.

Reads the JSON session file produced by the scan command and prints
the crawl summary, request statistics, and confirmed findings.

Example usage:
  vkrscan report --input ./results/vkr_1700000000.json
  vkrscan report -i ./results    # every session in the directory`,

	RunE: report.Execute,
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display version information",
	Long:  `Display detailed version and build information for vkrscan.`,

	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("vkrscan Reflected XSS Scanner\n")
		fmt.Printf("Version: %s\n", Version)
		fmt.Printf("Build Time: %s\n", BuildTime)
		fmt.Printf("Git Commit: %s\n", GitCommit)
	},
}

// setupCommands configures all CLI commands and flags
func setupCommands() {
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(versionCmd)

	// Global persistent flags
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "",
		"config file (default is ./vkrscan.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"quiet output (errors only)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false,
		"disable colored output")
	rootCmd.PersistentFlags().BoolVar(&noBanner, "no-banner", false,
		"disable banner display")
	rootCmd.PersistentFlags().Bool("init-config", false,
		"create default configuration file (vkrscan.yaml)")

	// Scan command specific flags
	scanCmd.Flags().StringP("target", "t", "",
		"target base URL to crawl and test")
	scanCmd.Flags().Int("max-pages", 0,
		"maximum number of pages to crawl (0 = use config)")
	scanCmd.Flags().Bool("include-submit", false,
		"include the first submit control in form submissions")
	scanCmd.Flags().StringP("output", "o", "",
		"output directory for session results")
	scanCmd.Flags().Bool("insecure", false,
		"skip TLS certificate verification")

	// Report command specific flags
	reportCmd.Flags().StringP("input", "i", "",
		"session file or directory with scan results")
}

// main is the entry point for vkrscan
func main() {
	setupCommands()

	if err := rootCmd.Execute(); err != nil {
		printError(err)
		os.Exit(1)
	}
}

// createDefaultConfig creates a default configuration file
func createDefaultConfig() error {
	filename := config.DefaultConfigFilename
	if _, err := os.Stat(filename); err == nil {
		return fmt.Errorf("configuration file already exists: %s", filename)
	}

	if err := config.SaveConfig(config.CreateDefaultConfig(), filename); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	fmt.Printf("Default configuration file created: %s\n", filename)
	fmt.Printf("Default target: http://localhost:8080\n")
	fmt.Printf("Run 'vkrscan scan' to test with defaults, or\n")
	fmt.Printf("'vkrscan scan --target YOUR_TARGET_URL' for a custom target\n")

	return nil
}
