package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"smart-ocr-client/internal/domain"
	"smart-ocr-client/internal/domain/ports/repository"
)

var _ repository.KVStore = (*FileStore)(nil)

// FileStore keeps all keys in a single JSON file. Every Set/Remove rewrites
// the file through a temp-file rename so a crash mid-write never leaves a
// truncated state file behind. A file that fails to parse is treated as empty
// rather than an error; per-key consumers decide how to degrade.
type FileStore struct {
	mu   sync.Mutex
	path string
}

func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, errors.New("state file path empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}
	return &FileStore{path: path}, nil
}

func (f *FileStore) Get(ctx context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, err := f.read()
	if err != nil {
		return nil, err
	}
	v, ok := data[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return v, nil
}

func (f *FileStore) Set(ctx context.Context, key string, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, err := f.read()
	if err != nil {
		return err
	}
	data[key] = json.RawMessage(value)
	return f.write(data)
}

func (f *FileStore) Remove(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, err := f.read()
	if err != nil {
		return err
	}
	delete(data, key)
	return f.write(data)
}

func (f *FileStore) read() (map[string]json.RawMessage, error) {
	b, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]json.RawMessage{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read state file: %w", err)
	}
	var data map[string]json.RawMessage
	if err := json.Unmarshal(b, &data); err != nil || data == nil {
		return map[string]json.RawMessage{}, nil
	}
	return data, nil
}

func (f *FileStore) write(data map[string]json.RawMessage) error {
	b, err := json.Marshal(data)
	if err != nil {
		return err
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}
	return os.Rename(tmp, f.path)
}
