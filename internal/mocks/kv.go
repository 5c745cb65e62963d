package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/hollowdrift/claudegate/internal/store"
)

// MemoryKV is an in-memory store.KV for tests. TTLs are recorded but not
// enforced; Reads and Writes count string key operations so tests can assert
// that a handler never touched the store.
type MemoryKV struct {
	mu     sync.Mutex
	values map[string]string
	sets   map[string]map[string]bool

	TTLs   map[string]time.Duration
	Reads  int
	Writes int
}

// NewMemoryKV creates an empty in-memory KV.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{
		values: make(map[string]string),
		sets:   make(map[string]map[string]bool),
		TTLs:   make(map[string]time.Duration),
	}
}

func (m *MemoryKV) Get(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Reads++
	val, ok := m.values[key]
	if !ok {
		return "", store.ErrNotFound
	}
	return val, nil
}

func (m *MemoryKV) SetWithTTL(ctx context.Context, key, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Writes++
	m.values[key] = value
	m.TTLs[key] = ttl
	return nil
}

func (m *MemoryKV) SAdd(ctx context.Context, key, member string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sets[key] == nil {
		m.sets[key] = make(map[string]bool)
	}
	m.sets[key][member] = true
	return nil
}

func (m *MemoryKV) SIsMember(ctx context.Context, key, member string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sets[key][member], nil
}

func (m *MemoryKV) Close() error { return nil }
