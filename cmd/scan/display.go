package scan

import (
	"fmt"

	"github.com/vkrlab/vkrscan/pkg/attacks/xss"
	"github.com/vkrlab/vkrscan/pkg/crawler"
)

// DisplayResults shows a formatted summary of the scan session
func (so *ScanOrchestrator) DisplayResults(result *SessionResult) {
	fmt.Println()
	so.printSectionHeader("SCAN SESSION SUMMARY")

	// Session information
	fmt.Printf("Session ID: %s\n", result.SessionID)
	fmt.Printf("Duration: %v\n", result.Duration.Round(1000000)) // Round to milliseconds
	fmt.Printf("Target: %s\n", result.Target.BaseURL)
	fmt.Println()

	if result.Crawl != nil {
		so.displayCrawlResults(result.Crawl)
	}

	if result.XSS != nil {
		so.displayXSSResults(result.XSS)
	}

	so.printOverallAssessment(result)
}

// displayCrawlResults shows crawl phase statistics
func (so *ScanOrchestrator) displayCrawlResults(result *crawler.CrawlResult) {
	so.printSectionHeader("CRAWL RESULTS")

	fmt.Printf("Pages visited: %d\n", result.PagesVisited)
	fmt.Printf("Injection points: %d\n", len(result.Targets))
	fmt.Printf("Crawl duration: %v\n", result.Duration.Round(1000000))

	if so.verbose {
		for _, target := range result.Targets {
			fmt.Printf("  %s %s params=%v (from %s)\n",
				target.Method, target.URL, target.InjectableParams, target.SourceURL)
		}
	}
	fmt.Println()
}

// displayXSSResults shows detection phase statistics and findings
func (so *ScanOrchestrator) displayXSSResults(result *xss.ScanResult) {
	so.printSectionHeader("REFLECTED XSS RESULTS")

	fmt.Printf("Tests executed: %d\n", result.TestsExecuted)
	fmt.Printf("Successful requests: %d\n", result.SuccessfulRequests)
	fmt.Printf("Failed requests: %d\n", result.FailedRequests)
	fmt.Printf("Requests per second: %.2f\n", result.RequestsPerSecond)
	fmt.Println()

	if len(result.Findings) == 0 {
		if so.noColor {
			fmt.Println("No reflected XSS findings.")
		} else {
			fmt.Printf("%sNo reflected XSS findings.%s\n", ColorGreen, ColorReset)
		}
		return
	}

	for i, finding := range result.Findings {
		so.displayFinding(i+1, finding)
	}
}

// displayFinding prints one confirmed finding
func (so *ScanOrchestrator) displayFinding(index int, finding xss.Finding) {
	marker := fmt.Sprintf("[%d] %s", index, finding.FindingType)
	if so.noColor {
		fmt.Println(marker)
	} else {
		fmt.Printf("%s%s%s%s\n", ColorRed, ColorBold, marker, ColorReset)
	}

	fmt.Printf("    Method:    %s\n", finding.Method)
	fmt.Printf("    URL:       %s\n", finding.URL)
	fmt.Printf("    Parameter: %s\n", finding.Parameter)
	fmt.Printf("    Context:   %s\n", finding.Context)
	fmt.Printf("    Payload:   %s\n", finding.Payload)
	fmt.Printf("    Source:    %s\n", finding.SourceURL)
	fmt.Printf("    Status:    %d\n", finding.StatusCode)
	fmt.Println()
}

// printOverallAssessment prints the closing verdict of the session
func (so *ScanOrchestrator) printOverallAssessment(result *SessionResult) {
	if result.TotalFindings == 0 {
		printSuccess("No reflected XSS vulnerabilities detected", so.noColor)
		return
	}

	message := fmt.Sprintf("%d reflected XSS vulnerabilities confirmed", result.TotalFindings)
	if result.TotalFindings == 1 {
		message = "1 reflected XSS vulnerability confirmed"
	}
	printError(message, so.noColor)
}

// printSectionHeader prints a formatted section header
func (so *ScanOrchestrator) printSectionHeader(title string) {
	if so.noColor {
		fmt.Printf("\n=== %s ===\n\n", title)
	} else {
		fmt.Printf("\n%s%s=== %s ===%s\n\n", ColorCyan, ColorBold, title, ColorReset)
	}
}

// printPhaseStart prints a phase start message
func (so *ScanOrchestrator) printPhaseStart(phaseName string) {
	if so.noColor {
		fmt.Printf("[RUNNING] %s...\n", phaseName)
	} else {
		fmt.Printf("%s[RUNNING]%s %s...\n", ColorYellow, ColorReset, phaseName)
	}
}

// printCrawlComplete prints the crawl phase completion message
func (so *ScanOrchestrator) printCrawlComplete(result *crawler.CrawlResult) {
	if so.noColor {
		fmt.Printf("[COMPLETE] Crawling - Visited %d pages, found %d injection points\n",
			result.PagesVisited, len(result.Targets))
	} else {
		fmt.Printf("%s[COMPLETE]%s Crawling - Visited %d pages, found %d injection points\n",
			ColorGreen, ColorReset, result.PagesVisited, len(result.Targets))
	}
}

// printXSSComplete prints the detection phase completion message
func (so *ScanOrchestrator) printXSSComplete(result *xss.ScanResult) {
	if so.noColor {
		fmt.Printf("[COMPLETE] Reflected XSS Testing - Executed %d tests, confirmed %d findings\n",
			result.TestsExecuted, len(result.Findings))
	} else {
		fmt.Printf("%s[COMPLETE]%s Reflected XSS Testing - Executed %d tests, confirmed %d findings\n",
			ColorGreen, ColorReset, result.TestsExecuted, len(result.Findings))
	}
}

// printError prints error messages with proper formatting
func printError(message string, noColor bool) {
	color := ""
	if !noColor {
		color = ColorRed + ColorBold
	}
	fmt.Printf("%s[ERROR] %s%s\n", color, message, ColorReset)
}

// printSuccess prints success messages with proper formatting
func printSuccess(message string, noColor bool) {
	color := ""
	if !noColor {
		color = ColorGreen + ColorBold
	}
	fmt.Printf("%s[SUCCESS] %s%s\n", color, message, ColorReset)
}

// printInfo prints info messages with proper formatting
func printInfo(message string, noColor bool) {
	color := ""
	if !noColor {
		color = ColorBlue
	}
	fmt.Printf("%s[INFO] %s%s\n", color, message, ColorReset)
}

// printWarning prints warning messages with proper formatting
func printWarning(message string, noColor bool) {
	color := ""
	if !noColor {
		color = ColorYellow + ColorBold
	}
	fmt.Printf("%s[WARNING] %s%s\n", color, message, ColorReset)
}
