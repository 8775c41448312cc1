package report

import (
	"fmt"

	"github.com/vkrlab/vkrscan/cmd/scan"
)

// SessionValidator handles validation of loaded scan session data
type SessionValidator struct{}

// NewSessionValidator creates a new scan session validator
func NewSessionValidator() *SessionValidator {
	return &SessionValidator{}
}

// ValidateSession validates a scan session structure
func (v *SessionValidator) ValidateSession(session *scan.SessionResult) error {
	if session == nil {
		return fmt.Errorf("scan session is nil")
	}

	// Basic validation
	if session.SessionID == "" {
		return fmt.Errorf("invalid scan session: missing session ID")
	}

	// Validate target information
	if session.Target.BaseURL == "" {
		return fmt.Errorf("invalid scan session: missing target base URL")
	}

	// Validate timing information
	if session.StartTime.IsZero() {
		return fmt.Errorf("invalid scan session: missing start time")
	}

	if session.EndTime.IsZero() {
		return fmt.Errorf("invalid scan session: missing end time")
	}

	// Validate that at least one phase has data
	if session.Crawl == nil && session.XSS == nil {
		return fmt.Errorf("invalid scan session: no phase data found")
	}

	return nil
}

// ValidateSessions validates a slice of scan sessions
func (v *SessionValidator) ValidateSessions(sessions []*scan.SessionResult) error {
	if len(sessions) == 0 {
		return fmt.Errorf("no scan sessions to validate")
	}

	for i, session := range sessions {
		if err := v.ValidateSession(session); err != nil {
			return fmt.Errorf("validation failed for session %d: %w", i, err)
		}
	}

	return nil
}
