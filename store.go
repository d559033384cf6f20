package nodeeditor

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// SettingsStore persists the serialized editor settings. Load returns an
// empty string when nothing was saved yet. Save reports whether the data was
// stored; the editor retries on the next frame when it was not.
type SettingsStore interface {
	Load() (string, error)
	Save(data string, reason SaveReasonFlags) bool
}

// NodeSettingsStore is implemented by stores that also keep per-node state.
// RestoreNodeState reads through it.
type NodeSettingsStore interface {
	LoadNode(id NodeID) (string, bool)
	SaveNode(id NodeID, data string, reason SaveReasonFlags) bool
}

// SaveSession is implemented by stores that want to batch the writes of one
// save pass.
type SaveSession interface {
	BeginSave()
	EndSave()
}

// FileStore keeps the settings in a single JSON file.
type FileStore struct {
	Path string
}

// Load implements SettingsStore. A missing file is not an error.
func (f *FileStore) Load() (string, error) {
	b, err := os.ReadFile(f.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("load settings %s: %w", f.Path, err)
	}
	return string(b), nil
}

// Save implements SettingsStore. The file is replaced atomically.
func (f *FileStore) Save(data string, _ SaveReasonFlags) bool {
	if dir := filepath.Dir(f.Path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return false
		}
	}
	tmp := f.Path + ".tmp"
	if err := os.WriteFile(tmp, []byte(data), 0o644); err != nil {
		return false
	}
	return os.Rename(tmp, f.Path) == nil
}

// MemoryStore keeps settings in memory. It implements every store interface
// and counts calls, which makes it convenient in tests.
type MemoryStore struct {
	Data       string
	Nodes      map[NodeID]string
	Saves      int
	LastReason SaveReasonFlags
	// Fail makes every Save report failure.
	Fail bool

	sessions int
}

// NewMemoryStore returns a store preloaded with data.
func NewMemoryStore(data string) *MemoryStore {
	return &MemoryStore{Data: data, Nodes: make(map[NodeID]string)}
}

// Load implements SettingsStore.
func (m *MemoryStore) Load() (string, error) { return m.Data, nil }

// Save implements SettingsStore.
func (m *MemoryStore) Save(data string, reason SaveReasonFlags) bool {
	if m.Fail {
		return false
	}
	m.Data = data
	m.Saves++
	m.LastReason = reason
	return true
}

// LoadNode implements NodeSettingsStore.
func (m *MemoryStore) LoadNode(id NodeID) (string, bool) {
	s, ok := m.Nodes[id]
	return s, ok
}

// SaveNode implements NodeSettingsStore.
func (m *MemoryStore) SaveNode(id NodeID, data string, _ SaveReasonFlags) bool {
	if m.Fail {
		return false
	}
	if m.Nodes == nil {
		m.Nodes = make(map[NodeID]string)
	}
	m.Nodes[id] = data
	return true
}

// BeginSave implements SaveSession.
func (m *MemoryStore) BeginSave() { m.sessions++ }

// EndSave implements SaveSession.
func (m *MemoryStore) EndSave() {}

// Sessions returns how many save passes were started.
func (m *MemoryStore) Sessions() int { return m.sessions }

// StoreFuncs adapts plain functions to SettingsStore. Nil functions behave as
// an empty store that accepts every save.
type StoreFuncs struct {
	LoadFunc func() (string, error)
	SaveFunc func(data string, reason SaveReasonFlags) bool
}

// Load implements SettingsStore.
func (s StoreFuncs) Load() (string, error) {
	if s.LoadFunc == nil {
		return "", nil
	}
	return s.LoadFunc()
}

// Save implements SettingsStore.
func (s StoreFuncs) Save(data string, reason SaveReasonFlags) bool {
	if s.SaveFunc == nil {
		return true
	}
	return s.SaveFunc(data, reason)
}
