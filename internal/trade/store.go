package trade

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// KVStore is a string-keyed blob store. Load returns nil, nil for a key
// that was never saved.
type KVStore interface {
	Load(key string) ([]byte, error)
	Save(key string, value []byte) error
	Remove(key string) error
}

// FileKV keeps every key in one JSON document on disk.
type FileKV struct {
	mu       sync.Mutex
	filePath string
}

func NewFileKV(filePath string) *FileKV {
	return &FileKV{filePath: filePath}
}

func (f *FileKV) Load(key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.read()
	if err != nil {
		return nil, err
	}
	return doc[key], nil
}

func (f *FileKV) Save(key string, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.read()
	if err != nil {
		// an unreadable file is replaced rather than blocking writes
		doc = make(map[string]json.RawMessage)
	}
	doc[key] = json.RawMessage(value)
	return f.write(doc)
}

func (f *FileKV) Remove(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.read()
	if err != nil {
		doc = make(map[string]json.RawMessage)
	}
	delete(doc, key)
	return f.write(doc)
}

// read returns an empty document if the file doesn't exist.
func (f *FileKV) read() (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(f.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]json.RawMessage), nil
		}
		return nil, err
	}
	doc := make(map[string]json.RawMessage)
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (f *FileKV) write(doc map[string]json.RawMessage) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(f.filePath); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(f.filePath, data, 0644)
}
