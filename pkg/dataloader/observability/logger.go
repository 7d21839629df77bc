// Package observability provides structured logging, metrics and tracing
// for loader registries.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
package observability

import (
	"log/slog"
	"time"
)

// EnrichLogger adds registry context to a logger.
func EnrichLogger(logger *slog.Logger, registry string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(slog.String("registry", registry))
}

// LogDispatchStart logs the start of a bulk dispatch.
func LogDispatchStart(logger *slog.Logger, dispatchID, op string, loaders int) {
	if logger == nil {
		return
	}
	logger.Debug("dispatch starting",
		slog.String("dispatch_id", dispatchID),
		slog.String("op", op),
		slog.Int("loaders", loaders),
	)
}

// LogDispatchComplete logs successful bulk dispatch completion.
func LogDispatchComplete(logger *slog.Logger, dispatchID, op string, keys int, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Debug("dispatch completed",
		slog.String("dispatch_id", dispatchID),
		slog.String("op", op),
		slog.Int("keys", keys),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogDispatchError logs a loader failure that aborted a bulk dispatch.
func LogDispatchError(logger *slog.Logger, dispatchID, op, loaderKey string, err error, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Error("dispatch failed",
		slog.String("dispatch_id", dispatchID),
		slog.String("op", op),
		slog.String("loader_key", loaderKey),
		slog.String("error", err.Error()),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogRegister logs a loader registration.
// Replacing an existing loader is logged at warn level since the old
// loader is dropped without being dispatched.
func LogRegister(logger *slog.Logger, loaderKey string, replaced bool) {
	if logger == nil {
		return
	}
	if replaced {
		logger.Warn("loader replaced",
			slog.String("loader_key", loaderKey),
		)
		return
	}
	logger.Debug("loader registered",
		slog.String("loader_key", loaderKey),
	)
}

// LogUnregister logs a loader removal.
func LogUnregister(logger *slog.Logger, loaderKey string) {
	if logger == nil {
		return
	}
	logger.Debug("loader unregistered",
		slog.String("loader_key", loaderKey),
	)
}

// LogCreate logs a loader created on demand.
func LogCreate(logger *slog.Logger, loaderKey string) {
	if logger == nil {
		return
	}
	logger.Debug("loader created",
		slog.String("loader_key", loaderKey),
	)
}

// LogStatisticsRecorded logs a persisted statistics snapshot.
func LogStatisticsRecorded(logger *slog.Logger, snapshotID string, sequence int) {
	if logger == nil {
		return
	}
	logger.Debug("statistics recorded",
		slog.String("snapshot_id", snapshotID),
		slog.Int("sequence", sequence),
	)
}

// TimedOperation measures the duration of an operation.
// Returns a function that, when called, returns the elapsed time.
//
// Example:
//
//	done := TimedOperation()
//	// ... do work ...
//	elapsed := done()
func TimedOperation() func() time.Duration {
	start := time.Now()
	return func() time.Duration {
		return time.Since(start)
	}
}

// Milliseconds converts a duration to fractional milliseconds for logging.
func Milliseconds(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
