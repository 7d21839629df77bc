package dataloader

import (
	"errors"

	"github.com/randalmurphal/dataloader/pkg/dataloader/ordered"
)

// Builder collects loaders for a new Registry.
//
// A Builder is not safe for concurrent use. Later registrations win over
// earlier ones for the same key.
//
//	reg, err := dataloader.NewBuilder().
//	    Register("users", users).
//	    RegisterAll(shared).
//	    Build(dataloader.WithName("request"))
type Builder struct {
	entries []ordered.Entry[Loader]
	errs    []error
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Register adds l under key.
// Invalid arguments are reported by Build.
func (b *Builder) Register(key string, l Loader) *Builder {
	if err := checkKey("builder register", key); err != nil {
		b.errs = append(b.errs, err)
		return b
	}
	if err := checkLoader("builder register", key, l); err != nil {
		b.errs = append(b.errs, err)
		return b
	}
	b.entries = append(b.entries, ordered.Entry[Loader]{Key: key, Value: l})
	return b
}

// RegisterAll adds every loader currently registered in r.
func (b *Builder) RegisterAll(r *Registry) *Builder {
	if r == nil {
		b.errs = append(b.errs, invalid("builder register_all", "registry", "", "must not be nil"))
		return b
	}
	b.entries = append(b.entries, r.loaders.Snapshot()...)
	return b
}

// Build creates a registry holding the collected loaders.
// It fails with ErrInvalidArgument if any Register or RegisterAll call
// was given an invalid argument, in which case no registry is built.
//
// The builder may be reused; registries it built are not affected.
func (b *Builder) Build(opts ...Option) (*Registry, error) {
	if len(b.errs) > 0 {
		return nil, errors.Join(b.errs...)
	}

	r := New(opts...)
	r.loaders.SetAll(b.entries)
	return r, nil
}
