// Package store keeps small key-value records on disk, encoded with msgpack.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"
)

// KV is the minimal key-value surface the adapters in this package need.
type KV interface {
	Get(key string) ([]byte, bool)
	Put(key string, value []byte) error
}

// File is a KV persisted as one msgpack document. Every Put rewrites the
// file through a temporary sibling and a rename.
type File struct {
	path string

	mu   sync.Mutex
	data map[string][]byte
}

// OpenFile loads path. A missing file opens as an empty store.
func OpenFile(path string) (*File, error) {
	f := &File{path: path, data: make(map[string][]byte)}
	raw, err := os.ReadFile(path) // #nosec G304 -- operator-supplied store path
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return f, nil
		}
		return nil, fmt.Errorf("read store %s: %w", path, err)
	}
	if len(raw) == 0 {
		return f, nil
	}
	if err := msgpack.Unmarshal(raw, &f.data); err != nil {
		return nil, fmt.Errorf("decode store %s: %w", path, err)
	}
	if f.data == nil {
		f.data = make(map[string][]byte)
	}
	return f, nil
}

// Path returns the backing file.
func (f *File) Path() string { return f.path }

func (f *File) Get(key string) ([]byte, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.data[key]
	if !ok {
		return nil, false
	}
	return append([]byte(nil), v...), true
}

func (f *File) Put(key string, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	prev, had := f.data[key]
	f.data[key] = append([]byte(nil), value...)
	if err := f.flush(); err != nil {
		if had {
			f.data[key] = prev
		} else {
			delete(f.data, key)
		}
		return err
	}
	return nil
}

func (f *File) flush() error {
	raw, err := msgpack.Marshal(f.data)
	if err != nil {
		return fmt.Errorf("encode store: %w", err)
	}
	if dir := filepath.Dir(f.path); dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("create store dir: %w", err)
		}
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("write store %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("replace store %s: %w", f.path, err)
	}
	return nil
}

// Memory is an in-process KV.
type Memory struct {
	mu   sync.Mutex
	data map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

func (m *Memory) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, false
	}
	return append([]byte(nil), v...), true
}

func (m *Memory) Put(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), value...)
	return nil
}
