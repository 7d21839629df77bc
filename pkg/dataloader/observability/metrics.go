package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records registry metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordDispatch records a bulk dispatch with the number of keys
	// dispatched, its duration and error status.
	RecordDispatch(ctx context.Context, registry, op string, keys int, duration time.Duration, err error)

	// RecordRegistration records a registry mutation ("register", "replace",
	// "unregister" or "create").
	RecordRegistration(ctx context.Context, registry, op string)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	dispatches      metric.Int64Counter
	dispatchedKeys  metric.Int64Counter
	dispatchErrors  metric.Int64Counter
	dispatchLatency metric.Float64Histogram
	registrations   metric.Int64Counter
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics lazily initializes the shared OTel metrics instance.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics(otel.GetMeterProvider())
	})
	return defaultMetrics, defaultMetricsErr
}

func newOtelMetrics(mp metric.MeterProvider) (*otelMetrics, error) {
	meter := mp.Meter("dataloader")

	dispatches, err := meter.Int64Counter("dataloader.registry.dispatches",
		metric.WithDescription("Number of bulk dispatches"),
	)
	if err != nil {
		return nil, err
	}

	dispatchedKeys, err := meter.Int64Counter("dataloader.registry.dispatched_keys",
		metric.WithDescription("Number of keys dispatched by bulk dispatches"),
	)
	if err != nil {
		return nil, err
	}

	dispatchErrors, err := meter.Int64Counter("dataloader.registry.dispatch_errors",
		metric.WithDescription("Number of bulk dispatches aborted by a loader error"),
	)
	if err != nil {
		return nil, err
	}

	dispatchLatency, err := meter.Float64Histogram("dataloader.registry.dispatch_latency_ms",
		metric.WithDescription("Bulk dispatch latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	registrations, err := meter.Int64Counter("dataloader.registry.registrations",
		metric.WithDescription("Number of registry mutations"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		dispatches:      dispatches,
		dispatchedKeys:  dispatchedKeys,
		dispatchErrors:  dispatchErrors,
		dispatchLatency: dispatchLatency,
		registrations:   registrations,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// NewMetricsRecorderWithProvider returns a MetricsRecorder whose
// instruments are created on mp instead of the global provider.
func NewMetricsRecorderWithProvider(mp metric.MeterProvider) (MetricsRecorder, error) {
	m, err := newOtelMetrics(mp)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// RecordDispatch records a bulk dispatch.
func (m *otelMetrics) RecordDispatch(ctx context.Context, registry, op string, keys int, duration time.Duration, err error) {
	attrs := metric.WithAttributes(
		attribute.String("registry", registry),
		attribute.String("op", op),
	)

	m.dispatches.Add(ctx, 1, attrs)
	m.dispatchedKeys.Add(ctx, int64(keys), attrs)
	m.dispatchLatency.Record(ctx, Milliseconds(duration), attrs)

	if err != nil {
		m.dispatchErrors.Add(ctx, 1, attrs)
	}
}

// RecordRegistration records a registry mutation.
func (m *otelMetrics) RecordRegistration(ctx context.Context, registry, op string) {
	m.registrations.Add(ctx, 1, metric.WithAttributes(
		attribute.String("registry", registry),
		attribute.String("op", op),
	))
}
