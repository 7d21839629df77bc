package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// SpanManager handles trace span lifecycle.
// Use NewSpanManager() for OTel tracing or NoopSpanManager{} when disabled.
type SpanManager interface {
	// StartDispatchSpan starts a span for a bulk dispatch.
	StartDispatchSpan(ctx context.Context, registry, op, dispatchID string, loaders int) (context.Context, trace.Span)

	// LoaderDispatched adds a per-loader event to the span in ctx.
	LoaderDispatched(ctx context.Context, loaderKey string, keys int)

	// EndSpanWithError completes a span, optionally recording an error.
	EndSpanWithError(span trace.Span, err error)
}

type otelSpanManager struct {
	tracer trace.Tracer
}

// NewSpanManager returns a SpanManager that uses the global OTel tracer
// provider. Configure the provider before calling this function:
//
//	otel.SetTracerProvider(yourProvider)
func NewSpanManager() SpanManager {
	return NewSpanManagerWithProvider(otel.GetTracerProvider())
}

// NewSpanManagerWithProvider returns a SpanManager bound to tp.
func NewSpanManagerWithProvider(tp trace.TracerProvider) SpanManager {
	return &otelSpanManager{tracer: tp.Tracer("dataloader")}
}

func (m *otelSpanManager) StartDispatchSpan(ctx context.Context, registry, op, dispatchID string, loaders int) (context.Context, trace.Span) {
	return m.tracer.Start(ctx, "dataloader.dispatch",
		trace.WithAttributes(
			attribute.String("registry.name", registry),
			attribute.String("dispatch.op", op),
			attribute.String("dispatch.id", dispatchID),
			attribute.Int("dispatch.loaders", loaders),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

func (m *otelSpanManager) LoaderDispatched(ctx context.Context, loaderKey string, keys int) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	span.AddEvent("loader.dispatched", trace.WithAttributes(
		attribute.String("loader.key", loaderKey),
		attribute.Int("loader.keys", keys),
	))
}

func (m *otelSpanManager) EndSpanWithError(span trace.Span, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
