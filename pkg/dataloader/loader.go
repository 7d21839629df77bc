package dataloader

import (
	"context"

	"github.com/randalmurphal/dataloader/pkg/dataloader/stats"
)

// Loader is a batching unit that accumulates keys and loads them with a
// single batch call when dispatched.
//
// The registry only calls these methods; it never inspects a loader's
// internals. Implementations must be safe for concurrent use.
type Loader interface {
	// Dispatch executes the currently accumulated batch.
	Dispatch(ctx context.Context) error

	// DispatchWithCounts executes the currently accumulated batch and
	// reports how many keys it contained.
	DispatchWithCounts(ctx context.Context) (DispatchResult, error)

	// DispatchDepth returns the number of keys accumulated but not yet
	// dispatched.
	DispatchDepth() int

	// Statistics returns the loader's counters.
	Statistics() stats.Statistics
}

// DispatchResult describes a single loader dispatch.
type DispatchResult struct {
	// KeysCount is the number of keys sent to the batch function.
	KeysCount int
}

// LoaderAs returns the loader registered under key as T.
// It returns false if the key is absent or the loader is not a T.
//
// Example:
//
//	users, ok := dataloader.LoaderAs[*UserLoader](reg, "users")
func LoaderAs[T Loader](r *Registry, key string) (T, bool) {
	var zero T
	if r == nil {
		return zero, false
	}
	l, ok := r.Loader(key)
	if !ok {
		return zero, false
	}
	t, ok := l.(T)
	return t, ok
}
