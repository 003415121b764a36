package tracing

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Attribute keys recorded on benchmark spans.
const (
	AttrBenchmark = attribute.Key("rxbench.benchmark")
	AttrSection   = attribute.Key("rxbench.section")
	AttrPatterns  = attribute.Key("rxbench.patterns")
	AttrEngines   = attribute.Key("rxbench.engines")
	AttrCells     = attribute.Key("rxbench.cells")
)

// StartBenchmarkSpan opens the span that covers one Measure call.
func StartBenchmarkSpan(ctx context.Context, tracer trace.Tracer, name string, patterns, engines int) (context.Context, trace.Span) {
	ctx, span := tracer.Start(ctx, "benchmark "+name,
		trace.WithSpanKind(trace.SpanKindInternal),
	)
	span.SetAttributes(
		AttrBenchmark.String(name),
		AttrPatterns.Int(patterns),
		AttrEngines.Int(engines),
	)
	return ctx, span
}

// StartSectionSpan opens a child span for one measurement section, named
// after the metric it produces (e.g. "UTF-8 hot").
func StartSectionSpan(ctx context.Context, tracer trace.Tracer, benchmark, section string) (context.Context, trace.Span) {
	ctx, span := tracer.Start(ctx, section)
	span.SetAttributes(
		AttrBenchmark.String(benchmark),
		AttrSection.String(section),
	)
	return ctx, span
}

// EndSpan sets the span status from err and ends it.
func EndSpan(span trace.Span, err error, attrs ...attribute.KeyValue) {
	if len(attrs) > 0 {
		span.SetAttributes(attrs...)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
