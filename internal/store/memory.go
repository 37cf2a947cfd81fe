package store

import "sync"

// memoryKV is an in-memory backend for tests.
type memoryKV struct {
	mu   sync.Mutex
	data map[string][]byte
}

// OpenMemory returns a store backed by a plain map. Test use only.
func OpenMemory() *Store {
	return newStore(&memoryKV{data: map[string][]byte{}}, nil)
}

func (m *memoryKV) get(key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.data[key]
	return value, ok, nil
}

func (m *memoryKV) set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *memoryKV) touch() error { return nil }

func (m *memoryKV) Close() error { return nil }
