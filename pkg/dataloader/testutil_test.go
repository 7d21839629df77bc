package dataloader

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/dataloader/pkg/dataloader/stats"
)

// fakeLoader is a Loader that counts pending keys and dispatch calls.
type fakeLoader struct {
	name string

	mu         sync.Mutex
	pending    int
	dispatched int
	calls      int
	err        error
	stats      stats.Statistics
	onDispatch func(ctx context.Context)
}

var _ Loader = (*fakeLoader)(nil)

func newFakeLoader(name string, pending int) *fakeLoader {
	return &fakeLoader{name: name, pending: pending}
}

// failingLoader returns a loader whose dispatches fail with err.
func failingLoader(name string, pending int, err error) *fakeLoader {
	l := newFakeLoader(name, pending)
	l.err = err
	return l
}

// Load queues n more keys.
func (f *fakeLoader) Load(n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pending += n
}

func (f *fakeLoader) Dispatch(ctx context.Context) error {
	_, err := f.DispatchWithCounts(ctx)
	return err
}

func (f *fakeLoader) DispatchWithCounts(ctx context.Context) (DispatchResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.onDispatch != nil {
		f.onDispatch(ctx)
	}
	if f.err != nil {
		return DispatchResult{}, f.err
	}
	n := f.pending
	f.pending = 0
	f.dispatched += n
	return DispatchResult{KeysCount: n}, nil
}

func (f *fakeLoader) DispatchDepth() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pending
}

func (f *fakeLoader) Statistics() stats.Statistics {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stats
}

func (f *fakeLoader) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// otherLoader is a second Loader type for LoaderAs tests.
type otherLoader struct{ fakeLoader }

// captureLogger returns a debug-level JSON logger writing into buf.
func captureLogger() (*slog.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})), buf
}

// logRecords decodes every JSON log line in buf.
func logRecords(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range bytes.Split(buf.Bytes(), []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal(line, &m))
		out = append(out, m)
	}
	return out
}

// messages returns the msg field of every record.
func messages(recs []map[string]any) []string {
	out := make([]string, 0, len(recs))
	for _, r := range recs {
		out = append(out, r["msg"].(string))
	}
	return out
}
