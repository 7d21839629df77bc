/*
Package dataloader provides a registry of batching loaders that can be
looked up by name and dispatched together.

# Overview

A Loader accumulates keys and loads them in one batch when dispatched.
Many loaders are usually created per request (one per entity type), and
the caller wants to flush all of them at once. A Registry holds them under
string keys:

	reg := dataloader.New(dataloader.WithName("request"))
	if err := reg.Register("users", usersLoader); err != nil {
	    return err
	}
	if err := reg.Register("posts", postsLoader); err != nil {
	    return err
	}

	// ... resolvers call Load on the loaders ...

	if err := reg.DispatchAll(ctx); err != nil {
	    return err
	}

# Lazy Creation

ComputeIfAbsent creates a loader the first time a key is asked for. The
factory runs at most once per key, even when many goroutines race on it:

	l, err := reg.ComputeIfAbsent("users", func(key string) dataloader.Loader {
	    return NewUserLoader(db)
	})

LoaderAs recovers the concrete type:

	users, ok := dataloader.LoaderAs[*UserLoader](reg, "users")

# Combining Registries

Combine returns a third registry holding both registries' loaders. When
both hold the same key, the loader from the argument wins:

	all, err := base.Combine(overrides)

Builder assembles a registry up front with the same rule, later wins:

	reg, err := dataloader.NewBuilder().
	    Register("users", users).
	    RegisterAll(shared).
	    Build()

# Bulk Operations

DispatchAll, DispatchAllWithCount, DispatchDepth and Statistics work on a
snapshot of the loaders taken when they start. Loaders run in registration
order on the calling goroutine. The first loader error stops the dispatch
and is returned unchanged, so errors.Is and == on loader errors work as
expected. Callers that need every loader dispatched regardless of failures
should iterate Loaders themselves.

# Observability

Logging, metrics and tracing are opt-in:

	reg := dataloader.New(
	    dataloader.WithLogger(slog.Default()),
	    dataloader.WithMetrics(true),
	    dataloader.WithTracing(true),
	)

RecordStatistics persists the combined statistics to a stats.Store for
later inspection.
*/
package dataloader
