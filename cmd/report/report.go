package report

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Execute runs the report command (CLI entry point)
func Execute(cmd *cobra.Command, args []string) error {
	// Get command flags
	inputPath, _ := cmd.Flags().GetString("input")
	verbose, _ := cmd.Root().PersistentFlags().GetBool("verbose")
	noColor, _ := cmd.Root().PersistentFlags().GetBool("no-color")

	// Validate input
	if inputPath == "" {
		return fmt.Errorf("input file or directory is required")
	}

	formatter := NewConsoleFormatter(noColor)
	loader := NewSessionLoader(formatter)
	validator := NewSessionValidator()
	display := NewConsoleDisplay(formatter, verbose)

	sessions, err := loader.LoadSessions(inputPath)
	if err != nil {
		return fmt.Errorf("failed to load scan sessions: %w", err)
	}

	if err := validator.ValidateSessions(sessions); err != nil {
		return fmt.Errorf("session validation failed: %w", err)
	}

	for _, session := range sessions {
		display.DisplaySession(session)
	}

	formatter.PrintSuccess(fmt.Sprintf("Displayed %d scan session(s)", len(sessions)))
	return nil
}
