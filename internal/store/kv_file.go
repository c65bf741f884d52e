package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// FileKV keeps all keys in a single JSON file, read on open and rewritten on
// every Set/Del. Single-process use is assumed; two processes racing on the
// same file are last-writer-wins, same as two browser tabs on local storage.
type FileKV struct {
	mu   sync.RWMutex
	path string
	data map[string]string
}

func OpenFileKV(path string) (*FileKV, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	kv := &FileKV{path: path, data: map[string]string{}}
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return kv, nil
		}
		return nil, err
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &kv.data); err != nil {
			return nil, err
		}
	}
	return kv, nil
}

func (f *FileKV) Get(_ context.Context, key string) (string, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	v, ok := f.data[key]
	if !ok {
		return "", ErrMiss
	}
	return v, nil
}

func (f *FileKV) Set(_ context.Context, key string, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = value
	return f.flushLocked()
}

func (f *FileKV) Del(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.data, key)
	return f.flushLocked()
}

func (f *FileKV) flushLocked() error {
	raw, err := json.MarshalIndent(f.data, "", "  ")
	if err != nil {
		return err
	}
	// write-then-rename so a crash mid-write cannot leave a truncated file
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, f.path)
}
