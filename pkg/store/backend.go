package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileBackend keeps each document in <dir>/<name>.json. Saves write a temp
// file in the same directory and rename it over the target, so readers never
// see a half-written document.
type FileBackend struct {
	dir string
}

// NewFileBackend returns a backend rooted at dir
func NewFileBackend(dir string) *FileBackend {
	return &FileBackend{dir: dir}
}

func (b *FileBackend) path(name string) string {
	return filepath.Join(b.dir, name+".json")
}

// Load reads the named document
func (b *FileBackend) Load(name string) ([]byte, error) {
	return os.ReadFile(b.path(name))
}

// Save atomically replaces the named document
func (b *FileBackend) Save(name string, data []byte) error {
	if err := os.MkdirAll(b.dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(b.dir, name+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, b.path(name)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing %s: %w", name, err)
	}
	return nil
}

// MemoryBackend keeps documents in memory. Used by tests and ephemeral runs.
type MemoryBackend struct {
	mu   sync.Mutex
	docs map[string][]byte
}

// NewMemoryBackend returns an empty in-memory backend
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{docs: make(map[string][]byte)}
}

// Load returns a copy of the named document or os.ErrNotExist
func (b *MemoryBackend) Load(name string) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	data, ok := b.docs[name]
	if !ok {
		return nil, os.ErrNotExist
	}
	return append([]byte(nil), data...), nil
}

// Save stores a copy of data
func (b *MemoryBackend) Save(name string, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.docs[name] = append([]byte(nil), data...)
	return nil
}
