package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
)

// fileKV keeps all keys in one JSON document, written atomically via a tmp
// file and rename. Each set re-reads the document from disk first: callback
// handlers in other processes may have written since our last read, and
// there is no cross-process lock to lean on, so the race window is kept to
// the read-modify-write itself.
type fileKV struct {
	path string
	mu   sync.Mutex
}

// OpenFile opens (or creates) the JSON state file at the given path.
func OpenFile(path string, log *zap.Logger) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	kv := &fileKV{path: path}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := kv.write(map[string]json.RawMessage{}); err != nil {
			return nil, err
		}
	}
	return newStore(kv, log), nil
}

func (f *fileKV) read() (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]json.RawMessage{}, nil
		}
		return nil, err
	}
	doc := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &doc); err != nil {
		// Corrupt document: start over rather than refuse to operate.
		return map[string]json.RawMessage{}, nil
	}
	return doc, nil
}

func (f *fileKV) write(doc map[string]json.RawMessage) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, f.path)
}

func (f *fileKV) get(key string) ([]byte, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, err := f.read()
	if err != nil {
		return nil, false, err
	}
	value, ok := doc[key]
	return value, ok, nil
}

func (f *fileKV) set(key string, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, err := f.read()
	if err != nil {
		return err
	}
	doc[key] = value
	return f.write(doc)
}

func (f *fileKV) touch() error {
	t := time.Now()
	return os.Chtimes(f.path, t, t)
}

func (f *fileKV) Close() error { return nil }
