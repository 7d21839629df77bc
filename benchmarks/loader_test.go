package benchmarks

import (
	"context"
	"strconv"
	"sync/atomic"

	"github.com/randalmurphal/dataloader/pkg/dataloader"
	"github.com/randalmurphal/dataloader/pkg/dataloader/stats"
)

// counterLoader is a minimal Loader that only tracks pending keys.
type counterLoader struct {
	pending atomic.Int64
}

func (c *counterLoader) Dispatch(ctx context.Context) error {
	_, err := c.DispatchWithCounts(ctx)
	return err
}

func (c *counterLoader) DispatchWithCounts(context.Context) (dataloader.DispatchResult, error) {
	return dataloader.DispatchResult{KeysCount: int(c.pending.Swap(0))}, nil
}

func (c *counterLoader) DispatchDepth() int {
	return int(c.pending.Load())
}

func (c *counterLoader) Statistics() stats.Statistics {
	return stats.Statistics{LoadCount: c.pending.Load()}
}

// buildRegistry creates a registry with n loaders, each holding one
// pending key.
func buildRegistry(n int) *dataloader.Registry {
	r := dataloader.New()
	for i := range n {
		l := &counterLoader{}
		l.pending.Store(1)
		if err := r.Register("loader-"+strconv.Itoa(i), l); err != nil {
			panic(err)
		}
	}
	return r
}
