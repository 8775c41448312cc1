package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vkrlab/vkrscan/cmd/scan"
)

// SessionLoader handles loading scan sessions from files
type SessionLoader struct {
	formatter *ConsoleFormatter
}

// NewSessionLoader creates a new scan session loader
func NewSessionLoader(formatter *ConsoleFormatter) *SessionLoader {
	return &SessionLoader{
		formatter: formatter,
	}
}

// LoadSessions loads scan sessions from a file or directory
func (l *SessionLoader) LoadSessions(inputPath string) ([]*scan.SessionResult, error) {
	var sessions []*scan.SessionResult

	// Check if input is file or directory
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, fmt.Errorf("input path does not exist: %w", err)
	}

	if info.IsDir() {
		// Only pick up files matching the scan command's session
		// naming scheme; the directory may hold unrelated JSON
		files, err := filepath.Glob(filepath.Join(inputPath, "vkr_*.json"))
		if err != nil {
			return nil, fmt.Errorf("failed to list session files: %w", err)
		}

		if len(files) == 0 {
			return nil, fmt.Errorf("no session files (vkr_*.json) found in directory: %s", inputPath)
		}

		for _, file := range files {
			session, err := l.loadSingleSession(file)
			if err != nil {
				// Skip invalid files but continue processing
				l.formatter.PrintWarning(fmt.Sprintf("Failed to load %s: %v", file, err))
				continue
			}
			sessions = append(sessions, session)
		}
	} else {
		// Load single file
		session, err := l.loadSingleSession(inputPath)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}

	if len(sessions) == 0 {
		return nil, fmt.Errorf("no valid scan sessions found")
	}

	return sessions, nil
}

// loadSingleSession loads a scan session from a single JSON file
func (l *SessionLoader) loadSingleSession(filePath string) (*scan.SessionResult, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var session scan.SessionResult
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	return &session, nil
}
