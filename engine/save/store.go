package save

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Store persists the encoded player record. Every write replaces the whole
// record; note is a one-line summary of the operation that caused it.
type Store interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte, note string) error
}

// FileStore keeps the record in a single JSON file.
type FileStore struct {
	Path string
}

// NewFileStore returns a store writing to path.
func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

// Load reads the record. A missing file returns ErrNoSave.
func (f *FileStore) Load(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNoSave
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.Path, err)
	}
	return data, nil
}

// Save writes the record to a temp file in the same directory and renames
// it over the target.
func (f *FileStore) Save(ctx context.Context, data []byte, _ string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	dir := filepath.Dir(f.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(f.Path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp: %w", err)
	}
	if err := os.Rename(tmpName, f.Path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename %s: %w", f.Path, err)
	}
	return nil
}

// MemoryStore keeps the record in memory. Used by tests and dry runs.
type MemoryStore struct {
	Data  []byte
	Notes []string
	Err   error
}

// Load returns the stored bytes or ErrNoSave.
func (m *MemoryStore) Load(context.Context) ([]byte, error) {
	if m.Data == nil {
		return nil, ErrNoSave
	}
	return m.Data, nil
}

// Save records the bytes and note. If Err is set it is returned instead.
func (m *MemoryStore) Save(_ context.Context, data []byte, note string) error {
	if m.Err != nil {
		return m.Err
	}
	m.Data = append([]byte(nil), data...)
	m.Notes = append(m.Notes, note)
	return nil
}
