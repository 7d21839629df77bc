// Package ordered provides a concurrent string-keyed map that remembers
// insertion order and creates missing entries exactly once.
//
// # Basic Usage
//
//	m := ordered.New[int]()
//	m.Set("one", 1)
//	m.Set("two", 2)
//
//	for _, e := range m.Snapshot() {
//	    fmt.Println(e.Key, e.Value) // one 1, two 2
//	}
//
// # Lazy Initialization
//
// GetOrCreate runs the factory at most once per absent key, even when many
// goroutines ask for the same key at the same time. Every caller receives
// the same value:
//
//	pool, err := pools.GetOrCreate("users_db", func(key string) (*Pool, error) {
//	    return NewPool(key)
//	})
//
// The factory runs without the map lock held, so it may call Set or Delete
// on other keys. It must not call GetOrCreate for its own key; that call
// waits for itself and never returns.
//
// # Thread Safety
//
// All Map methods are safe for concurrent use. Snapshot, Keys and Values
// copy the current contents under a read lock; callers may mutate the map
// while iterating the copy.
package ordered
