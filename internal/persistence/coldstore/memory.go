package coldstore

import "sync"

type Memory struct {
	mu    sync.RWMutex
	blobs map[Key][]byte
}

func NewMemory() *Memory {
	return &Memory{blobs: map[Key][]byte{}}
}

func (m *Memory) Get(k Key) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.blobs[k]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), b...), nil
}

func (m *Memory) Put(k Key, blob []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blobs[k] = append([]byte(nil), blob...)
	return nil
}

func (m *Memory) Delete(k Key) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.blobs, k)
	return nil
}

func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.blobs)
}

func (m *Memory) Close() error { return nil }
