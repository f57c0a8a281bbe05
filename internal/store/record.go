package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/jkallio/pomodoro-cli/internal/timer"
)

// ErrCorruptRecord is returned together with a default record when the
// record file exists but cannot be decoded.
var ErrCorruptRecord = errors.New("corrupt timer record")

// RecordFile keeps the current timer record as a JSON document. There is no
// locking between processes; the last write wins.
type RecordFile struct {
	mu   sync.Mutex
	path string
	now  func() time.Time
}

// NewRecordFile creates a record store backed by path.
func NewRecordFile(path string) *RecordFile {
	return &RecordFile{path: path, now: time.Now}
}

func (f *RecordFile) Path() string { return f.path }

// Load reads the record. A missing file yields a default record and no
// error. An unreadable document yields a default record and an error
// wrapping ErrCorruptRecord, so callers may continue with defaults.
func (f *RecordFile) Load() (timer.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return timer.New(f.now()), nil
	}
	if err != nil {
		return timer.New(f.now()), fmt.Errorf("read timer record: %w", err)
	}

	var rec timer.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return timer.New(f.now()), fmt.Errorf("%w: %s: %v", ErrCorruptRecord, f.path, err)
	}
	return rec, nil
}

// Save writes the record, replacing the file atomically.
func (f *RecordFile) Save(rec timer.Record) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create record directory: %w", err)
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal timer record: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".pomodoro-*.json")
	if err != nil {
		return fmt.Errorf("write timer record: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write timer record: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write timer record: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write timer record: %w", err)
	}
	return nil
}

// Clear removes the record file. Clearing a missing file is not an error.
func (f *RecordFile) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	err := os.Remove(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("remove timer record: %w", err)
	}
	return nil
}

// MemoryRecords is an in-memory record store for tests.
type MemoryRecords struct {
	mu      sync.Mutex
	rec     *timer.Record
	now     func() time.Time
	SaveErr error
	Saves   int
}

func NewMemoryRecords(now func() time.Time) *MemoryRecords {
	return &MemoryRecords{now: now}
}

func (m *MemoryRecords) Load() (timer.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.rec == nil {
		return timer.New(m.now()), nil
	}
	return *m.rec, nil
}

func (m *MemoryRecords) Save(rec timer.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.rec = &rec
	m.Saves++
	return nil
}

func (m *MemoryRecords) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rec = nil
	return nil
}
