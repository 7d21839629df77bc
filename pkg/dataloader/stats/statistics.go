// Package stats provides loader statistics and a history of aggregated
// registry statistics.
//
// Statistics values combine field by field. Combine is associative and
// commutative with the zero value as identity, so folding any number of
// loaders' statistics gives the same result in any order.
package stats

import "fmt"

// Statistics holds a loader's operational counters.
type Statistics struct {
	// LoadCount is the number of keys requested through Load.
	LoadCount int64 `json:"load_count"`
	// LoadErrorCount is the number of loads that completed with an error.
	LoadErrorCount int64 `json:"load_error_count"`
	// BatchInvokeCount is the number of times the batch function ran.
	BatchInvokeCount int64 `json:"batch_invoke_count"`
	// BatchLoadCount is the number of keys handed to the batch function.
	BatchLoadCount int64 `json:"batch_load_count"`
	// BatchLoadExceptionCount is the number of batch calls that failed.
	BatchLoadExceptionCount int64 `json:"batch_load_exception_count"`
	// CacheHitCount is the number of loads served from cache.
	CacheHitCount int64 `json:"cache_hit_count"`
}

// Combine returns the field-wise sum of s and o.
func (s Statistics) Combine(o Statistics) Statistics {
	return Statistics{
		LoadCount:               s.LoadCount + o.LoadCount,
		LoadErrorCount:          s.LoadErrorCount + o.LoadErrorCount,
		BatchInvokeCount:        s.BatchInvokeCount + o.BatchInvokeCount,
		BatchLoadCount:          s.BatchLoadCount + o.BatchLoadCount,
		BatchLoadExceptionCount: s.BatchLoadExceptionCount + o.BatchLoadExceptionCount,
		CacheHitCount:           s.CacheHitCount + o.CacheHitCount,
	}
}

// Sum folds all values with Combine, starting from the zero value.
func Sum(all ...Statistics) Statistics {
	var total Statistics
	for _, s := range all {
		total = total.Combine(s)
	}
	return total
}

// IsZero reports whether every counter is zero.
func (s Statistics) IsZero() bool {
	return s == Statistics{}
}

// LoadErrorRatio is LoadErrorCount / LoadCount.
func (s Statistics) LoadErrorRatio() float64 {
	return ratio(s.LoadErrorCount, s.LoadCount)
}

// BatchLoadRatio is BatchLoadCount / LoadCount.
func (s Statistics) BatchLoadRatio() float64 {
	return ratio(s.BatchLoadCount, s.LoadCount)
}

// BatchLoadExceptionRatio is BatchLoadExceptionCount / LoadCount.
func (s Statistics) BatchLoadExceptionRatio() float64 {
	return ratio(s.BatchLoadExceptionCount, s.LoadCount)
}

// CacheHitRatio is CacheHitCount / LoadCount.
func (s Statistics) CacheHitRatio() float64 {
	return ratio(s.CacheHitCount, s.LoadCount)
}

// ToMap returns counters and ratios keyed by name, for reporting.
func (s Statistics) ToMap() map[string]float64 {
	return map[string]float64{
		"loadCount":               float64(s.LoadCount),
		"loadErrorCount":          float64(s.LoadErrorCount),
		"loadErrorRatio":          s.LoadErrorRatio(),
		"batchInvokeCount":        float64(s.BatchInvokeCount),
		"batchLoadCount":          float64(s.BatchLoadCount),
		"batchLoadRatio":          s.BatchLoadRatio(),
		"batchLoadExceptionCount": float64(s.BatchLoadExceptionCount),
		"batchLoadExceptionRatio": s.BatchLoadExceptionRatio(),
		"cacheHitCount":           float64(s.CacheHitCount),
		"cacheHitRatio":           s.CacheHitRatio(),
	}
}

// String implements fmt.Stringer.
func (s Statistics) String() string {
	return fmt.Sprintf("Statistics{loadCount=%d, loadErrorCount=%d, batchInvokeCount=%d, batchLoadCount=%d, batchLoadExceptionCount=%d, cacheHitCount=%d}",
		s.LoadCount, s.LoadErrorCount, s.BatchInvokeCount, s.BatchLoadCount, s.BatchLoadExceptionCount, s.CacheHitCount)
}

func ratio(num, den int64) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}
