package store

import (
	"context"
	"sort"
	"sync"
)

// KV is the string key-value store the editor persists into.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	// GetMany reads the keys from one snapshot. Missing keys are absent from the map.
	GetMany(ctx context.Context, keys ...string) (map[string]string, error)
	// SetMany writes all pairs together; a reader never sees half of a save.
	SetMany(ctx context.Context, kv map[string]string) error
	Delete(ctx context.Context, key string) error
}

// MemoryKV is an in-process KV, used by tests and by read-only previews.
type MemoryKV struct {
	mu sync.Mutex
	m  map[string]string
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{m: map[string]string{}}
}

func (m *MemoryKV) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.m[key]
	return v, ok, nil
}

func (m *MemoryKV) GetMany(_ context.Context, keys ...string) (map[string]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]string, len(keys))
	for _, k := range keys {
		if v, ok := m.m[k]; ok {
			out[k] = v
		}
	}
	return out, nil
}

func (m *MemoryKV) SetMany(_ context.Context, kv map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.m == nil {
		m.m = map[string]string{}
	}
	for k, v := range kv {
		m.m[k] = v
	}
	return nil
}

func (m *MemoryKV) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.m, key)
	return nil
}

func (m *MemoryKV) Keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.m))
	for k := range m.m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
