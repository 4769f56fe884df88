package snapshot

import (
	"errors"
	"sync"

	"github.com/marqueehq/marquee/pkg/types"
)

// MemoryStore keeps the snapshot in memory. Used by tests and when no
// data directory is configured.
type MemoryStore struct {
	mu      sync.Mutex
	buckets *types.Buckets
	failing bool
	saves   int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// SetFailing makes subsequent saves fail; loads still work. Snapshot
// writes are best-effort, so this exercises the log-and-continue path.
func (m *MemoryStore) SetFailing(failing bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failing = failing
}

// Saves reports how many successful saves happened; test helper.
func (m *MemoryStore) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

func (m *MemoryStore) Load() (*types.Buckets, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.buckets == nil {
		return nil, nil
	}
	return m.buckets.Clone(), nil
}

func (m *MemoryStore) Save(buckets *types.Buckets) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failing {
		return errors.New("snapshot store failing")
	}
	m.buckets = buckets.Clone()
	m.saves++
	return nil
}

func (m *MemoryStore) Close() error { return nil }
