package logging

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func readEvents(t *testing.T, path string) []Event {
	t.Helper()
	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open log: %v", err)
	}
	defer file.Close()

	var events []Event
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var event Event
		if err := json.Unmarshal(scanner.Bytes(), &event); err != nil {
			t.Fatalf("decode event: %v", err)
		}
		events = append(events, event)
	}
	return events
}

func TestLoggerWritesJSONL(t *testing.T) {
	dir := t.TempDir()
	logger, err := NewLogger(dir)
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	logger.SetMirror(nil)
	defer logger.Close()

	if err := logger.Info(CategoryAuth, "login_success", "session issued", map[string]any{"ttl_hours": 24}); err != nil {
		t.Fatalf("Info: %v", err)
	}
	if err := logger.Error(CategoryProvider, "request_failed", "doubao unreachable", nil); err != nil {
		t.Fatalf("Error: %v", err)
	}

	events := readEvents(t, filepath.Join(dir, "app.jsonl"))
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if events[0].Category != CategoryAuth || events[0].EventType != "login_success" {
		t.Errorf("first event = %+v", events[0])
	}
	if events[0].Timestamp.IsZero() {
		t.Error("timestamp not set")
	}
	if events[1].Level != LevelError {
		t.Errorf("second event level = %q", events[1].Level)
	}
}

func TestLoggerMinLevel(t *testing.T) {
	dir := t.TempDir()
	logger, err := NewLogger(dir)
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	logger.SetMirror(nil)
	defer logger.Close()

	logger.SetMinLevel(LevelWarn)

	_ = logger.Debug(CategoryHTTP, "request", "should be dropped", nil)
	_ = logger.Info(CategoryHTTP, "request", "should be dropped", nil)
	_ = logger.Warn(CategoryHTTP, "slow_request", "kept", nil)

	events := readEvents(t, filepath.Join(dir, "app.jsonl"))
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	if events[0].EventType != "slow_request" {
		t.Errorf("event = %+v", events[0])
	}
}

func TestTestLoggerDiscards(t *testing.T) {
	logger := NewTestLogger()
	if err := logger.Info(CategorySession, "created", "", nil); err != nil {
		t.Fatalf("Info on test logger: %v", err)
	}
}
