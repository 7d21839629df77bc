package dataloader

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument indicates a registry operation was called with an
// empty key, a nil loader, a nil factory or a nil registry.
//
// Errors returned by loaders during bulk operations are never wrapped;
// they are returned exactly as the loader produced them.
var ErrInvalidArgument = errors.New("invalid argument")

// ArgumentError describes which argument of which operation was rejected.
type ArgumentError struct {
	// Op is the operation that rejected the argument (e.g., "register").
	Op string
	// Arg is the name of the rejected argument.
	Arg string
	// Key is the loader key involved, if any.
	Key string
	// Reason explains the rejection.
	Reason string
}

// Error implements the error interface.
func (e *ArgumentError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("%s %q: %s: %s", e.Op, e.Key, e.Arg, e.Reason)
	}
	return fmt.Sprintf("%s: %s: %s", e.Op, e.Arg, e.Reason)
}

// Unwrap returns ErrInvalidArgument for errors.Is support.
func (e *ArgumentError) Unwrap() error {
	return ErrInvalidArgument
}

func invalid(op, arg, key, reason string) error {
	return &ArgumentError{Op: op, Arg: arg, Key: key, Reason: reason}
}

func checkKey(op, key string) error {
	if key == "" {
		return invalid(op, "key", "", "must not be empty")
	}
	return nil
}

func checkLoader(op, key string, l Loader) error {
	if l == nil {
		return invalid(op, "loader", key, "must not be nil")
	}
	return nil
}
