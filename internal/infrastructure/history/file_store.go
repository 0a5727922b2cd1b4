package history

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/afevis/modcheck/internal/domain"
	"github.com/afevis/modcheck/internal/ports"
)

// FileStore appends warning events to a jsonl file. Used as the fallback
// when the SQLite database cannot be opened.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates a jsonl-backed warning history at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Record implements ports.WarningHistoryRepository.
func (f *FileStore) Record(event domain.WarningEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return err
	}
	file, err := os.OpenFile(f.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = file.Write(data)
	return err
}

// Recent returns up to limit events, newest first (best-effort).
func (f *FileStore) Recent(limit int) ([]domain.WarningEvent, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	lines := bytes.Split(bytes.TrimSpace(data), []byte("\n"))
	var events []domain.WarningEvent
	for i := len(lines) - 1; i >= 0; i-- {
		if len(lines[i]) == 0 {
			continue
		}
		var event domain.WarningEvent
		if err := json.Unmarshal(lines[i], &event); err == nil {
			events = append(events, event)
		}
		if limit > 0 && len(events) >= limit {
			break
		}
	}
	return events, nil
}

// Clear removes the history file.
func (f *FileStore) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Path returns the backing file path.
func (f *FileStore) Path() string {
	return f.path
}

var _ ports.WarningHistoryRepository = (*FileStore)(nil)
