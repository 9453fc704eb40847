// Package tracer provides distributed tracing abstractions for dialect detection.
// It supports OpenTelemetry and allows custom tracer implementations.
package tracer

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Tracer defines the tracing interface used by the dialect catalog.
type Tracer interface {
	// StartSpan starts a new tracing span with the given name
	StartSpan(ctx context.Context, name string) (context.Context, Span)
}

// Span represents a tracing span that captures the execution of an operation.
type Span interface {
	// SetAttributes sets key-value attributes on the span
	SetAttributes(attrs ...attribute.KeyValue)
	// RecordError records an error that occurred during the span
	RecordError(err error)
	// SetStatus sets the status code and description of the span
	SetStatus(code codes.Code, description string)
	// End marks the span as complete
	End()
}

// NoopTracer is a tracer that does nothing.
// This is the default tracer used when no tracing is configured.
type NoopTracer struct{}

// StartSpan returns the context unchanged with a no-op span.
func (n *NoopTracer) StartSpan(ctx context.Context, _ string) (context.Context, Span) {
	return ctx, &NoopSpan{}
}

// NoopSpan is a span that does nothing.
type NoopSpan struct{}

// SetAttributes does nothing.
func (n *NoopSpan) SetAttributes(_ ...attribute.KeyValue) {}

// RecordError does nothing.
func (n *NoopSpan) RecordError(_ error) {}

// SetStatus does nothing.
func (n *NoopSpan) SetStatus(_ codes.Code, _ string) {}

// End does nothing.
func (n *NoopSpan) End() {}

// OtelTracer wraps an OpenTelemetry tracer to implement the Tracer interface.
type OtelTracer struct {
	tracer trace.Tracer
}

// NewOtelTracer creates a new OpenTelemetry tracer adapter.
// The provided tracer must not be nil.
func NewOtelTracer(tracer trace.Tracer) *OtelTracer {
	return &OtelTracer{tracer: tracer}
}

// StartSpan starts a new OpenTelemetry span.
func (t *OtelTracer) StartSpan(ctx context.Context, name string) (context.Context, Span) {
	ctx, span := t.tracer.Start(ctx, name)
	return ctx, &OtelSpan{span: span}
}

// OtelSpan wraps an OpenTelemetry span.
type OtelSpan struct {
	span trace.Span
}

// SetAttributes sets OpenTelemetry attributes on the span.
func (s *OtelSpan) SetAttributes(attrs ...attribute.KeyValue) {
	s.span.SetAttributes(attrs...)
}

// RecordError records an error on the OpenTelemetry span.
func (s *OtelSpan) RecordError(err error) {
	s.span.RecordError(err)
}

// SetStatus sets the status of the OpenTelemetry span.
func (s *OtelSpan) SetStatus(code codes.Code, description string) {
	s.span.SetStatus(code, description)
}

// End completes the OpenTelemetry span.
func (s *OtelSpan) End() {
	s.span.End()
}

// ProbeMetadata describes one dialect detection probe.
type ProbeMetadata struct {
	// Dialect is the name of the probed dialect
	Dialect string
	// Priority is the dialect's detection priority
	Priority int
	// Supported reports whether the connection identified as this dialect
	Supported bool
	// Duration is how long the probe took
	Duration time.Duration
}

// AddProbeAttributes records a detection probe on a span.
// An unsupported dialect is an expected outcome and leaves the status Ok.
func AddProbeAttributes(span Span, meta *ProbeMetadata) {
	span.SetAttributes(
		attribute.String("db.system", meta.Dialect),
		attribute.Int("sqldialect.priority", meta.Priority),
		attribute.Bool("sqldialect.supported", meta.Supported),
		attribute.Float64("sqldialect.probe_ms", float64(meta.Duration.Microseconds())/1000.0),
	)
	span.SetStatus(codes.Ok, "")
}

// DetectionMetadata summarizes a full detection run over the catalog.
type DetectionMetadata struct {
	// Selected is the name of the matching dialect, empty when none matched
	Selected string
	// Probes is the number of dialects probed
	Probes int
	// Duration is the total detection time
	Duration time.Duration
	// Error is set when detection failed
	Error error
}

// AddDetectionAttributes records the outcome of a detection run on a span.
func AddDetectionAttributes(span Span, meta *DetectionMetadata) {
	attrs := []attribute.KeyValue{
		attribute.Int("sqldialect.probes", meta.Probes),
		attribute.Float64("sqldialect.duration_ms", float64(meta.Duration.Microseconds())/1000.0),
	}
	if meta.Selected != "" {
		attrs = append(attrs, attribute.String("db.system", meta.Selected))
	}
	span.SetAttributes(attrs...)

	if meta.Error != nil {
		span.RecordError(meta.Error)
		span.SetStatus(codes.Error, meta.Error.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
}
