package ordered

import (
	"slices"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Entry is a key/value pair captured by Snapshot.
type Entry[V any] struct {
	Key   string
	Value V
}

// Map is a thread-safe map from string keys to values that keeps keys in
// first-insertion order. Replacing a value keeps the key's position;
// deleting and re-adding a key moves it to the end.
type Map[V any] struct {
	mu      sync.RWMutex
	entries map[string]V
	order   []string

	creates singleflight.Group
}

// New creates a new empty map.
func New[V any]() *Map[V] {
	return &Map[V]{
		entries: make(map[string]V),
	}
}

// Set adds or replaces the value for key.
// It returns the previous value and whether one was present.
func (m *Map[V]) Set(key string, value V) (V, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	prev, ok := m.entries[key]
	if !ok {
		m.order = append(m.order, key)
	}
	m.entries[key] = value
	return prev, ok
}

// SetAll adds or replaces every entry, in order, under a single lock.
func (m *Map[V]) SetAll(entries []Entry[V]) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range entries {
		if _, ok := m.entries[e.Key]; !ok {
			m.order = append(m.order, e.Key)
		}
		m.entries[e.Key] = e.Value
	}
}

// Get returns the value for a key and whether it exists.
func (m *Map[V]) Get(key string) (V, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.entries[key]
	return v, ok
}

// Has returns true if the key exists in the map.
func (m *Map[V]) Has(key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.entries[key]
	return ok
}

// Delete removes a key from the map.
// It returns the removed value and whether the key was present.
func (m *Map[V]) Delete(key string) (V, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.entries[key]
	if !ok {
		return v, false
	}
	delete(m.entries, key)
	if i := slices.Index(m.order, key); i >= 0 {
		m.order = slices.Delete(m.order, i, i+1)
	}
	return v, true
}

// Len returns the number of entries in the map.
func (m *Map[V]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// Snapshot returns a copy of all entries in insertion order.
func (m *Map[V]) Snapshot() []Entry[V] {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Entry[V], len(m.order))
	for i, k := range m.order {
		out[i] = Entry[V]{Key: k, Value: m.entries[k]}
	}
	return out
}

// Keys returns a copy of all keys in insertion order.
func (m *Map[V]) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.order)
}

// Values returns a copy of all values in insertion order.
func (m *Map[V]) Values() []V {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]V, len(m.order))
	for i, k := range m.order {
		out[i] = m.entries[k]
	}
	return out
}

// GetOrCreate returns the value for key, creating it with factory if it
// doesn't exist. Concurrent callers for the same absent key share a single
// factory call and all receive its result.
//
// If factory returns an error nothing is stored and every waiting caller
// receives that error. If another goroutine stores the key with Set while
// factory is running, the stored value wins and the factory result is
// discarded. The returned bool reports whether this call's factory result
// was stored.
func (m *Map[V]) GetOrCreate(key string, factory func(key string) (V, error)) (V, bool, error) {
	if v, ok := m.Get(key); ok {
		return v, false, nil
	}

	created := false
	res, err, _ := m.creates.Do(key, func() (any, error) {
		// A create for this key may have finished between the fast path
		// and joining the group.
		if v, ok := m.Get(key); ok {
			return v, nil
		}

		v, err := factory(key)
		if err != nil {
			return nil, err
		}

		m.mu.Lock()
		defer m.mu.Unlock()
		if existing, ok := m.entries[key]; ok {
			return existing, nil
		}
		m.entries[key] = v
		m.order = append(m.order, key)
		created = true
		return v, nil
	})
	if err != nil {
		var zero V
		return zero, false, err
	}
	v, _ := res.(V)
	return v, created, nil
}
