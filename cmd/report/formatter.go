package report

import "fmt"

// Colors for terminal output
const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorCyan   = "\033[36m"
	ColorBold   = "\033[1m"
)

// ConsoleFormatter renders session report output, optionally without
// ANSI color codes
type ConsoleFormatter struct {
	noColor bool
}

// NewConsoleFormatter creates a new console formatter
func NewConsoleFormatter(noColor bool) *ConsoleFormatter {
	return &ConsoleFormatter{
		noColor: noColor,
	}
}

// statusLine prints one tagged message line
func (f *ConsoleFormatter) statusLine(color, tag, message string) {
	if f.noColor {
		fmt.Printf("[%s] %s\n", tag, message)
		return
	}
	fmt.Printf("%s[%s] %s%s\n", color, tag, message, ColorReset)
}

// PrintSectionHeader prints a formatted section header
func (f *ConsoleFormatter) PrintSectionHeader(title string) {
	if f.noColor {
		fmt.Printf("\n=== %s ===\n\n", title)
		return
	}
	fmt.Printf("\n%s%s=== %s ===%s\n\n", ColorCyan, ColorBold, title, ColorReset)
}

// PrintError prints an error line
func (f *ConsoleFormatter) PrintError(message string) {
	f.statusLine(ColorRed+ColorBold, "ERROR", message)
}

// PrintSuccess prints a success line
func (f *ConsoleFormatter) PrintSuccess(message string) {
	f.statusLine(ColorGreen+ColorBold, "SUCCESS", message)
}

// PrintWarning prints a warning line
func (f *ConsoleFormatter) PrintWarning(message string) {
	f.statusLine(ColorYellow+ColorBold, "WARNING", message)
}
