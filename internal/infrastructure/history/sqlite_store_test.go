package history

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/afevis/modcheck/internal/domain"
)

func TestSQLiteFallbackIsStable(t *testing.T) {
	s := &SQLiteStore{path: filepath.Join(t.TempDir(), "history.db")}

	if s.fallback() != s.fallback() {
		t.Error("fallback rebuilt per call")
	}
	if got := s.fallback().Path(); !strings.HasSuffix(got, "history.jsonl") {
		t.Errorf("fallback path = %q, want history.jsonl next to the database", got)
	}
}

// A store whose database never opened still records and reads history
// through the jsonl fallback.
func TestSQLiteStoreFallsBackWithoutDatabase(t *testing.T) {
	s := &SQLiteStore{path: filepath.Join(t.TempDir(), "history.db")}

	if err := s.Record(domain.WarningEvent{Key: "base"}); err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	events, err := s.Recent(0)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(events) != 1 || events[0].Key != "base" {
		t.Errorf("Recent() = %+v, want the recorded event", events)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
}
