// Package storage holds the persistence mirror for the planner. The
// in-memory schedule is always the source of truth; the mirror is a derived
// copy with best-effort writes, playing the role browser local storage plays
// for the web planner.
package storage

import (
	"os"
	"path/filepath"
	"sync"
)

// Mirror reads and writes the raw persisted JSON. Load reports ok=false when
// nothing has been stored yet.
type Mirror interface {
	Load() (raw []byte, ok bool, err error)
	Save(raw []byte) error
}

// FileMirror stores the schedule as a single JSON file inside a data
// directory.
type FileMirror struct {
	mu   sync.Mutex
	path string
}

func NewFileMirror(dataDir string) (*FileMirror, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, err
	}
	return &FileMirror{path: filepath.Join(dataDir, "schedule.json")}, nil
}

func (m *FileMirror) Path() string {
	return m.path
}

func (m *FileMirror) Load() ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, err := os.ReadFile(m.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return b, true, nil
}

func (m *FileMirror) Save(raw []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return os.WriteFile(m.path, raw, 0o644)
}
