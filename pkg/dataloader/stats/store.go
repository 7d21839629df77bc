package stats

import "errors"

// Store persists statistics snapshots.
// Implementations must be safe for concurrent use.
type Store interface {
	// Save stores a snapshot and returns it with its Sequence assigned.
	// Sequences start at 1 and increase per registry.
	Save(snap Snapshot) (Snapshot, error)

	// Load retrieves a snapshot by ID.
	// Returns ErrNotFound if it doesn't exist.
	Load(id string) (Snapshot, error)

	// List returns all snapshots for a registry, ordered by sequence.
	// Returns an empty slice (not error) if there are none.
	List(registry string) ([]Snapshot, error)

	// Latest returns the snapshot with the highest sequence for a registry.
	// Returns ErrNotFound if there are none.
	Latest(registry string) (Snapshot, error)

	// DeleteRegistry removes all snapshots for a registry.
	DeleteRegistry(registry string) error

	// Close releases any resources.
	Close() error
}

// Sentinel errors for store operations.
var (
	// ErrNotFound indicates a snapshot doesn't exist.
	ErrNotFound = errors.New("statistics snapshot not found")

	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("statistics store closed")

	// ErrMissingID indicates a snapshot without an ID was saved.
	ErrMissingID = errors.New("statistics snapshot has no id")
)
