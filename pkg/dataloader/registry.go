package dataloader

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/randalmurphal/dataloader/pkg/dataloader/observability"
	"github.com/randalmurphal/dataloader/pkg/dataloader/ordered"
	"github.com/randalmurphal/dataloader/pkg/dataloader/stats"
)

// Operation names used in logs, metrics and spans.
const (
	opDispatchAll          = "dispatch_all"
	opDispatchAllWithCount = "dispatch_all_with_count"
)

// Entry is a registered loader and its key.
type Entry struct {
	Key    string
	Loader Loader
}

// Registry holds loaders under string keys so they can be looked up by
// name and dispatched together.
//
// All methods are safe for concurrent use. Bulk operations work on a
// snapshot of the registered loaders taken when they start; loaders
// registered afterwards are not included.
type Registry struct {
	loaders *ordered.Map[Loader]
	cfg     registryConfig
	logger  *slog.Logger
}

// New creates an empty registry.
func New(opts ...Option) *Registry {
	cfg := defaultRegistryConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return newWithConfig(cfg)
}

func newWithConfig(cfg registryConfig) *Registry {
	return &Registry{
		loaders: ordered.New[Loader](),
		cfg:     cfg,
		logger:  observability.EnrichLogger(cfg.logger, cfg.name),
	}
}

// Name returns the registry name.
func (r *Registry) Name() string {
	return r.cfg.name
}

// Register adds l under key, replacing any loader already registered
// there. A replaced loader is dropped as is; it is not dispatched.
func (r *Registry) Register(key string, l Loader) error {
	if err := checkKey("register", key); err != nil {
		return err
	}
	if err := checkLoader("register", key, l); err != nil {
		return err
	}

	_, replaced := r.loaders.Set(key, l)

	op := "register"
	if replaced {
		op = "replace"
	}
	observability.LogRegister(r.logger, key, replaced)
	r.cfg.metrics.RecordRegistration(context.Background(), r.cfg.name, op)
	return nil
}

// Unregister removes the loader registered under key.
// It does nothing if no loader is registered there.
func (r *Registry) Unregister(key string) {
	if _, ok := r.loaders.Delete(key); !ok {
		return
	}
	observability.LogUnregister(r.logger, key)
	r.cfg.metrics.RecordRegistration(context.Background(), r.cfg.name, "unregister")
}

// Loader returns the loader registered under key and whether it exists.
func (r *Registry) Loader(key string) (Loader, bool) {
	return r.loaders.Get(key)
}

// Has returns true if a loader is registered under key.
func (r *Registry) Has(key string) bool {
	return r.loaders.Has(key)
}

// Len returns the number of registered loaders.
func (r *Registry) Len() int {
	return r.loaders.Len()
}

// ComputeIfAbsent returns the loader registered under key, creating and
// registering it with factory if there is none.
//
// The factory is called at most once per absent key: concurrent callers
// for the same key wait for the first caller's factory and all receive
// the same loader. The factory runs without any registry lock held and may
// register or unregister other keys, but it must not call ComputeIfAbsent
// for its own key, which never returns.
//
// A factory returning nil registers nothing and yields ErrInvalidArgument.
// A panic in the factory propagates to every waiting caller.
func (r *Registry) ComputeIfAbsent(key string, factory func(key string) Loader) (Loader, error) {
	if err := checkKey("compute_if_absent", key); err != nil {
		return nil, err
	}
	if factory == nil {
		return nil, invalid("compute_if_absent", "factory", key, "must not be nil")
	}

	l, created, err := r.loaders.GetOrCreate(key, func(key string) (Loader, error) {
		l := factory(key)
		if err := checkLoader("compute_if_absent", key, l); err != nil {
			return nil, err
		}
		return l, nil
	})
	if err != nil {
		return nil, err
	}

	if created {
		observability.LogCreate(r.logger, key)
		r.cfg.metrics.RecordRegistration(context.Background(), r.cfg.name, "create")
	}
	return l, nil
}

// Keys returns the registered keys in registration order.
// The returned slice is a copy.
func (r *Registry) Keys() []string {
	return r.loaders.Keys()
}

// Loaders returns the registered loaders in registration order.
// The returned slice is a copy.
func (r *Registry) Loaders() []Loader {
	return r.loaders.Values()
}

// LoadersMap returns a copy of the key to loader mapping.
// Use Entries when registration order matters.
func (r *Registry) LoadersMap() map[string]Loader {
	snap := r.loaders.Snapshot()
	out := make(map[string]Loader, len(snap))
	for _, e := range snap {
		out[e.Key] = e.Value
	}
	return out
}

// Entries returns the registered loaders with their keys in registration
// order. The returned slice is a copy.
func (r *Registry) Entries() []Entry {
	snap := r.loaders.Snapshot()
	out := make([]Entry, len(snap))
	for i, e := range snap {
		out[i] = Entry{Key: e.Key, Loader: e.Value}
	}
	return out
}

// Combine returns a new registry holding the loaders of r and other.
// When both hold a loader under the same key, other's loader is used.
// Neither r nor other is modified. The new registry uses r's options.
func (r *Registry) Combine(other *Registry) (*Registry, error) {
	if other == nil {
		return nil, invalid("combine", "registry", "", "must not be nil")
	}

	combined := newWithConfig(r.cfg)
	combined.loaders.SetAll(r.loaders.Snapshot())
	combined.loaders.SetAll(other.loaders.Snapshot())
	return combined, nil
}

// DispatchAll calls Dispatch on every registered loader, in registration
// order, on the calling goroutine.
//
// The first loader error stops the iteration and is returned unchanged;
// the remaining loaders are not dispatched. ctx is passed to each loader
// and is not otherwise checked between loaders.
func (r *Registry) DispatchAll(ctx context.Context) error {
	_, err := r.dispatch(ctx, opDispatchAll, func(ctx context.Context, l Loader) (int, error) {
		return 0, l.Dispatch(ctx)
	})
	return err
}

// DispatchAllWithCount calls DispatchWithCounts on every registered loader
// and returns the total number of keys dispatched.
//
// It stops at the first loader error like DispatchAll, returning the keys
// counted so far along with the unchanged error.
func (r *Registry) DispatchAllWithCount(ctx context.Context) (int, error) {
	return r.dispatch(ctx, opDispatchAllWithCount, func(ctx context.Context, l Loader) (int, error) {
		res, err := l.DispatchWithCounts(ctx)
		if err != nil {
			return 0, err
		}
		return res.KeysCount, nil
	})
}

// dispatch runs fn over a snapshot of the registered loaders with
// logging, metrics and tracing around it.
func (r *Registry) dispatch(ctx context.Context, op string, fn func(context.Context, Loader) (int, error)) (int, error) {
	entries := r.loaders.Snapshot()
	dispatchID := uuid.New().String()
	done := observability.TimedOperation()

	ctx, span := r.cfg.spans.StartDispatchSpan(ctx, r.cfg.name, op, dispatchID, len(entries))
	observability.LogDispatchStart(r.logger, dispatchID, op, len(entries))

	total := 0
	for _, e := range entries {
		n, err := fn(ctx, e.Value)
		if err != nil {
			elapsed := done()
			observability.LogDispatchError(r.logger, dispatchID, op, e.Key, err, observability.Milliseconds(elapsed))
			r.cfg.metrics.RecordDispatch(ctx, r.cfg.name, op, total, elapsed, err)
			r.cfg.spans.EndSpanWithError(span, err)
			return total, err
		}
		total += n
		r.cfg.spans.LoaderDispatched(ctx, e.Key, n)
	}

	elapsed := done()
	observability.LogDispatchComplete(r.logger, dispatchID, op, total, observability.Milliseconds(elapsed))
	r.cfg.metrics.RecordDispatch(ctx, r.cfg.name, op, total, elapsed, nil)
	r.cfg.spans.EndSpanWithError(span, nil)
	return total, nil
}

// DispatchDepth returns the total number of keys waiting to be dispatched
// across all registered loaders.
func (r *Registry) DispatchDepth() int {
	depth := 0
	for _, l := range r.loaders.Values() {
		depth += l.DispatchDepth()
	}
	return depth
}

// Statistics returns the combined statistics of all registered loaders.
func (r *Registry) Statistics() stats.Statistics {
	var total stats.Statistics
	for _, l := range r.loaders.Values() {
		total = total.Combine(l.Statistics())
	}
	return total
}

// RecordStatistics saves the combined statistics of all registered
// loaders to store under the registry name.
func (r *Registry) RecordStatistics(store stats.Store) (stats.Snapshot, error) {
	if store == nil {
		return stats.Snapshot{}, invalid("record_statistics", "store", "", "must not be nil")
	}

	snap, err := store.Save(stats.NewSnapshot(r.cfg.name, r.Statistics()))
	if err != nil {
		return stats.Snapshot{}, err
	}
	observability.LogStatisticsRecorded(r.logger, snap.ID, snap.Sequence)
	return snap, nil
}
