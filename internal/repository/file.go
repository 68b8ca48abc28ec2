package repository

import (
	"context"
	"encoding/json"
	"os"
	"sync"
)

// FileKV implements KV over a single JSON file on disk. The whole file is
// read once at open and rewritten after every mutation, so the on-disk
// state never lags the in-memory map by more than one synchronous call.
type FileKV struct {
	path    string
	mu      sync.Mutex
	records map[string]json.RawMessage
}

// NewFileKV opens (or initializes) the store backed by the file at path.
// A missing file is treated as an empty store.
func NewFileKV(path string) (*FileKV, error) {
	kv := &FileKV{
		path:    path,
		records: make(map[string]json.RawMessage),
	}
	if err := kv.load(); err != nil {
		return nil, err
	}
	return kv, nil
}

func (f *FileKV) load() error {
	file, err := os.Open(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer file.Close()
	return json.NewDecoder(file).Decode(&f.records)
}

func (f *FileKV) save() error {
	file, err := os.Create(f.path)
	if err != nil {
		return err
	}
	defer file.Close()
	return json.NewEncoder(file).Encode(f.records)
}

// Get returns the value stored under key, or ok=false if absent.
func (f *FileKV) Get(_ context.Context, key string) ([]byte, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	value, ok := f.records[key]
	if !ok {
		return nil, false, nil
	}
	return value, true, nil
}

// Put stores value under key and flushes the file.
func (f *FileKV) Put(_ context.Context, key string, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records[key] = json.RawMessage(value)
	return f.save()
}

// Delete removes key and flushes the file. Absent keys are a no-op.
func (f *FileKV) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.records[key]; !ok {
		return nil
	}
	delete(f.records, key)
	return f.save()
}
