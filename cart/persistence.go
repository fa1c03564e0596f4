package cart

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// FilePersistence keeps the cart snapshot as a JSON file, one file per
// cart. A missing or corrupt file loads as an empty cart.
type FilePersistence struct {
	Path string
}

func NewFilePersistence(path string) *FilePersistence {
	return &FilePersistence{Path: path}
}

func (f *FilePersistence) Load() ([]Line, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, nil
	}
	var lines []Line
	if err := json.Unmarshal(data, &lines); err != nil {
		return nil, nil
	}
	return lines, nil
}

func (f *FilePersistence) Save(lines []Line) error {
	data, err := json.Marshal(lines)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(f.Path), 0755); err != nil {
		return err
	}
	return os.WriteFile(f.Path, data, 0644)
}

func (f *FilePersistence) Clear() error {
	err := os.Remove(f.Path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// MemoryPersistence holds the snapshot in memory. Used in tests and as
// the throwaway backing for carts that should not survive the process.
type MemoryPersistence struct {
	lines []Line
}

func (m *MemoryPersistence) Load() ([]Line, error) {
	out := make([]Line, len(m.lines))
	copy(out, m.lines)
	return out, nil
}

func (m *MemoryPersistence) Save(lines []Line) error {
	m.lines = make([]Line, len(lines))
	copy(m.lines, lines)
	return nil
}

func (m *MemoryPersistence) Clear() error {
	m.lines = nil
	return nil
}
