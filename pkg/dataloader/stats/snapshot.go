package stats

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Snapshot is an aggregated Statistics value recorded for a registry at a
// point in time.
type Snapshot struct {
	ID         string     `json:"id"`
	Registry   string     `json:"registry"`
	Sequence   int        `json:"sequence"`
	Timestamp  time.Time  `json:"timestamp"`
	Statistics Statistics `json:"statistics"`
}

// NewSnapshot creates a snapshot with a fresh ID and the current time.
// Sequence is assigned by the Store on Save.
func NewSnapshot(registry string, s Statistics) Snapshot {
	return Snapshot{
		ID:         uuid.New().String(),
		Registry:   registry,
		Timestamp:  time.Now().UTC(),
		Statistics: s,
	}
}

// Marshal serializes a snapshot to JSON.
func (s Snapshot) Marshal() ([]byte, error) {
	return json.Marshal(s)
}

// Unmarshal deserializes a snapshot from JSON.
func Unmarshal(data []byte) (Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return Snapshot{}, err
	}
	return s, nil
}
