package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// File keeps every key in one JSON object on disk. The file is re-read on
// every Get so that changes made by another process are picked up.
type File struct {
	mu   sync.Mutex
	path string
}

// NewFile returns a File store at path, creating parent directories.
func NewFile(path string) (*File, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, &Error{Backend: BackendFile, Op: "open", Cause: err}
		}
	}
	return &File{path: path}, nil
}

// Path returns the backing file location.
func (f *File) Path() string {
	return f.path
}

func (f *File) Get(_ context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, err := f.load()
	if err != nil {
		return "", &Error{Backend: BackendFile, Op: "get", Key: key, Cause: err}
	}
	v, ok := data[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (f *File) Set(_ context.Context, key, value string) error {
	return f.update("set", key, func(data map[string]string) {
		data[key] = value
	})
}

func (f *File) Delete(_ context.Context, key string) error {
	return f.update("delete", key, func(data map[string]string) {
		delete(data, key)
	})
}

func (f *File) Close() error { return nil }

func (f *File) update(op, key string, mutate func(map[string]string)) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, err := f.load()
	if err != nil {
		return &Error{Backend: BackendFile, Op: op, Key: key, Cause: err}
	}
	mutate(data)
	if err := f.save(data); err != nil {
		return &Error{Backend: BackendFile, Op: op, Key: key, Cause: err}
	}
	return nil
}

func (f *File) load() (map[string]string, error) {
	raw, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return make(map[string]string), nil
	}
	if err != nil {
		return nil, err
	}
	data := make(map[string]string)
	if len(raw) == 0 {
		return data, nil
	}
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("corrupt store file: %w", err)
	}
	return data, nil
}

// save writes to a temp file in the same directory and renames it over the
// target so readers never observe a partial write.
func (f *File) save(data map[string]string) error {
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".store-*.json")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), f.path)
}
