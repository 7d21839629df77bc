package stats

import (
	"sort"
	"sync"
)

// MemoryStore is an in-memory snapshot store.
// Data is lost when the process exits.
type MemoryStore struct {
	mu     sync.RWMutex
	byID   map[string]Snapshot
	seq    map[string]int // registry -> last sequence
	closed bool
}

// NewMemoryStore creates a new in-memory snapshot store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID: make(map[string]Snapshot),
		seq:  make(map[string]int),
	}
}

// Save implements Store.
func (m *MemoryStore) Save(snap Snapshot) (Snapshot, error) {
	if snap.ID == "" {
		return Snapshot{}, ErrMissingID
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return Snapshot{}, ErrStoreClosed
	}

	m.seq[snap.Registry]++
	snap.Sequence = m.seq[snap.Registry]
	m.byID[snap.ID] = snap
	return snap, nil
}

// Load implements Store.
func (m *MemoryStore) Load(id string) (Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return Snapshot{}, ErrStoreClosed
	}

	snap, ok := m.byID[id]
	if !ok {
		return Snapshot{}, ErrNotFound
	}
	return snap, nil
}

// List implements Store.
func (m *MemoryStore) List(registry string) ([]Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	var out []Snapshot
	for _, snap := range m.byID {
		if snap.Registry == registry {
			out = append(out, snap)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Sequence < out[j].Sequence
	})
	return out, nil
}

// Latest implements Store.
func (m *MemoryStore) Latest(registry string) (Snapshot, error) {
	snaps, err := m.List(registry)
	if err != nil {
		return Snapshot{}, err
	}
	if len(snaps) == 0 {
		return Snapshot{}, ErrNotFound
	}
	return snaps[len(snaps)-1], nil
}

// DeleteRegistry implements Store.
func (m *MemoryStore) DeleteRegistry(registry string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}

	for id, snap := range m.byID {
		if snap.Registry == registry {
			delete(m.byID, id)
		}
	}
	delete(m.seq, registry)
	return nil
}

// Close implements Store.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.byID = nil
	m.seq = nil
	return nil
}

// Len returns the total number of snapshots across all registries.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.byID)
}
