package history

import (
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/afevis/modcheck/internal/domain"
	"github.com/afevis/modcheck/internal/ports"
)

// SQLiteStore persists the warning audit log in a SQLite database.
type SQLiteStore struct {
	db   *sql.DB
	path string
	mu   sync.Mutex

	fb     *FileStore
	fbOnce sync.Once
}

// NewSQLiteStore creates (or opens) the warning history database at path.
// When the database cannot be opened, operations fall back to a jsonl file
// next to it; history is best-effort like everything else here.
func NewSQLiteStore(path string) *SQLiteStore {
	_ = os.MkdirAll(filepath.Dir(path), 0o755)
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return &SQLiteStore{path: path}
	}
	store := &SQLiteStore{db: db, path: path}
	if err := store.init(); err != nil {
		return &SQLiteStore{path: path}
	}
	return store
}

func (s *SQLiteStore) init() error {
	if s.db == nil {
		return os.ErrInvalid
	}
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS warnings (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp TEXT,
		key TEXT,
		phase TEXT,
		remaining_before INTEGER,
		accepted INTEGER
	);`)
	return err
}

// Record inserts a new warning event.
func (s *SQLiteStore) Record(event domain.WarningEvent) error {
	if s.db == nil {
		return s.fallback().Record(event)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(`INSERT INTO warnings
		(timestamp, key, phase, remaining_before, accepted)
		VALUES (?, ?, ?, ?, ?)`,
		event.Timestamp.Format(time.RFC3339),
		event.Key,
		string(event.Phase),
		event.RemainingBefore,
		boolToInt(event.Accepted),
	)
	return err
}

// Recent returns the most recent warning events, newest first.
func (s *SQLiteStore) Recent(limit int) ([]domain.WarningEvent, error) {
	if s.db == nil {
		return s.fallback().Recent(limit)
	}
	query := "SELECT timestamp, key, phase, remaining_before, accepted FROM warnings ORDER BY id DESC"
	var args []interface{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var events []domain.WarningEvent
	for rows.Next() {
		var event domain.WarningEvent
		var ts, phase string
		var accepted int
		if err := rows.Scan(&ts, &event.Key, &phase, &event.RemainingBefore, &accepted); err != nil {
			return nil, err
		}
		if t, err := time.Parse(time.RFC3339, ts); err == nil {
			event.Timestamp = t
		}
		event.Phase = domain.WarningPhase(phase)
		event.Accepted = accepted == 1
		events = append(events, event)
	}
	return events, rows.Err()
}

// Clear deletes all warning events.
func (s *SQLiteStore) Clear() error {
	if s.db == nil {
		return s.fallback().Clear()
	}
	_, err := s.db.Exec("DELETE FROM warnings")
	return err
}

// Path returns the sqlite database path.
func (s *SQLiteStore) Path() string {
	return s.path
}

// fallback lazily builds the jsonl store, once, so its mutex actually
// serializes writers.
func (s *SQLiteStore) fallback() *FileStore {
	s.fbOnce.Do(func() {
		s.fb = NewFileStore(strings.TrimSuffix(s.path, filepath.Ext(s.path)) + ".jsonl")
	})
	return s.fb
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

var _ ports.WarningHistoryRepository = (*SQLiteStore)(nil)
