package report

import (
	"fmt"

	"github.com/vkrlab/vkrscan/cmd/scan"
	"github.com/vkrlab/vkrscan/pkg/attacks/xss"
)

// ConsoleDisplay handles all console display operations
type ConsoleDisplay struct {
	formatter *ConsoleFormatter
	verbose   bool
}

// NewConsoleDisplay creates a new console display handler
func NewConsoleDisplay(formatter *ConsoleFormatter, verbose bool) *ConsoleDisplay {
	return &ConsoleDisplay{
		formatter: formatter,
		verbose:   verbose,
	}
}

// DisplaySession shows the full summary of one scan session
func (d *ConsoleDisplay) DisplaySession(session *scan.SessionResult) {
	fmt.Println()
	d.formatter.PrintSectionHeader("SCAN SESSION REPORT")

	fmt.Printf("Session ID: %s\n", session.SessionID)
	fmt.Printf("Target: %s\n", session.Target.BaseURL)
	fmt.Printf("Started: %s\n", session.StartTime.Format("2006-01-02 15:04:05"))
	fmt.Printf("Duration: %v\n", session.Duration.Round(1000000))
	fmt.Println()

	if session.Crawl != nil {
		fmt.Printf("Pages visited: %d\n", session.Crawl.PagesVisited)
		fmt.Printf("Injection points: %d\n", len(session.Crawl.Targets))
		if d.verbose {
			for _, target := range session.Crawl.Targets {
				fmt.Printf("  %s %s params=%v (from %s)\n",
					target.Method, target.URL, target.InjectableParams, target.SourceURL)
			}
		}
		fmt.Println()
	}

	if session.XSS != nil {
		d.displayXSSResults(session.XSS)
	}

	if session.TotalFindings == 0 {
		d.formatter.PrintSuccess("No reflected XSS vulnerabilities in this session")
	} else {
		d.formatter.PrintError(fmt.Sprintf("%d confirmed reflected XSS finding(s)", session.TotalFindings))
	}
}

// displayXSSResults shows the detection phase statistics and findings
func (d *ConsoleDisplay) displayXSSResults(result *xss.ScanResult) {
	fmt.Printf("Tests executed: %d\n", result.TestsExecuted)
	fmt.Printf("Successful requests: %d\n", result.SuccessfulRequests)
	fmt.Printf("Failed requests: %d\n", result.FailedRequests)
	fmt.Printf("Requests per second: %.2f\n", result.RequestsPerSecond)
	fmt.Println()

	for i, finding := range result.Findings {
		fmt.Printf("[%d] %s\n", i+1, finding.FindingType)
		fmt.Printf("    Method:    %s\n", finding.Method)
		fmt.Printf("    URL:       %s\n", finding.URL)
		fmt.Printf("    Parameter: %s\n", finding.Parameter)
		fmt.Printf("    Context:   %s\n", finding.Context)
		fmt.Printf("    Payload:   %s\n", finding.Payload)
		fmt.Printf("    Source:    %s\n", finding.SourceURL)
		fmt.Printf("    Status:    %d\n", finding.StatusCode)
		fmt.Println()
	}
}
