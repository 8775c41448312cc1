package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vkrlab/vkrscan/cmd/scan"
	"github.com/vkrlab/vkrscan/pkg/config"
)

func writeSessionFile(t *testing.T, dir, name, sessionID string) string {
	t.Helper()

	session := scan.SessionResult{
		SessionID: sessionID,
		StartTime: time.Now().Add(-time.Minute),
		EndTime:   time.Now(),
		Duration:  time.Minute,
		Target:    config.TargetConfig{BaseURL: "http://testapp.local"},
	}

	data, err := json.Marshal(session)
	if err != nil {
		t.Fatalf("failed to marshal session: %v", err)
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("failed to write session file: %v", err)
	}
	return path
}

func TestLoadSessionsFromDirectoryFiltersSessionFiles(t *testing.T) {
	dir := t.TempDir()
	loader := NewSessionLoader(NewConsoleFormatter(true))

	writeSessionFile(t, dir, "vkr_1700000000.json", "vkr_1700000000")

	// unrelated JSON in the same directory must not be picked up
	if err := os.WriteFile(filepath.Join(dir, "notes.json"), []byte(`{"k":"v"}`), 0644); err != nil {
		t.Fatalf("failed to write unrelated file: %v", err)
	}

	// a corrupt session file is warned about and skipped
	if err := os.WriteFile(filepath.Join(dir, "vkr_broken.json"), []byte("{not json"), 0644); err != nil {
		t.Fatalf("failed to write corrupt file: %v", err)
	}

	sessions, err := loader.LoadSessions(dir)
	if err != nil {
		t.Fatalf("failed to load sessions: %v", err)
	}

	if len(sessions) != 1 {
		t.Fatalf("expected 1 session, got %d", len(sessions))
	}
	if sessions[0].SessionID != "vkr_1700000000" {
		t.Errorf("unexpected session: %s", sessions[0].SessionID)
	}
}

func TestLoadSessionsSingleFileIgnoresNaming(t *testing.T) {
	dir := t.TempDir()
	loader := NewSessionLoader(NewConsoleFormatter(true))

	// an explicit file path loads regardless of its name
	path := writeSessionFile(t, dir, "renamed-export.json", "vkr_42")

	sessions, err := loader.LoadSessions(path)
	if err != nil {
		t.Fatalf("failed to load session file: %v", err)
	}
	if len(sessions) != 1 || sessions[0].SessionID != "vkr_42" {
		t.Errorf("unexpected sessions: %+v", sessions)
	}
}

func TestLoadSessionsErrors(t *testing.T) {
	loader := NewSessionLoader(NewConsoleFormatter(true))

	if _, err := loader.LoadSessions(filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Error("expected error for missing input path")
	}

	// directory without session files
	if _, err := loader.LoadSessions(t.TempDir()); err == nil {
		t.Error("expected error for directory without session files")
	}
}
