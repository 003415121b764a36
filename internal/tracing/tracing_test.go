package tracing_test

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"

	"github.com/torosent/rxbench/internal/config"
	"github.com/torosent/rxbench/internal/tracing"
)

func setupTestTracer(t *testing.T) (*tracetest.InMemoryExporter, trace.Tracer) {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
	})
	return exporter, tp.Tracer("test")
}

func findAttr(attrs []attribute.KeyValue, key attribute.Key) (attribute.Value, bool) {
	for _, a := range attrs {
		if a.Key == key {
			return a.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestInitDisabledByDefault(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	p, err := tracing.Init(context.Background(), config.TracingConfig{})
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	t.Cleanup(func() { _ = p.Shutdown(context.Background()) })

	if p.Enabled() {
		t.Error("Enabled() = true, want false when no endpoint is set")
	}
	_, span := p.Tracer().Start(context.Background(), "test")
	span.End()
	if span.SpanContext().IsValid() {
		t.Error("expected no-op span when tracing is disabled")
	}
}

func TestInitWithEndpointEnablesTracing(t *testing.T) {
	// The exporter connects lazily, so no collector is needed here.
	p, err := tracing.Init(context.Background(), config.TracingConfig{
		Endpoint:    "localhost:4317",
		Protocol:    "grpc",
		ServiceName: "test-service",
		SampleRate:  1.0,
		Insecure:    true,
	})
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	t.Cleanup(func() { _ = p.Shutdown(context.Background()) })

	if !p.Enabled() {
		t.Error("Enabled() = false, want true")
	}
}

func TestInitHTTPProtocol(t *testing.T) {
	p, err := tracing.Init(context.Background(), config.TracingConfig{
		Endpoint: "localhost:4318",
		Protocol: "http",
		Insecure: true,
	})
	if err != nil {
		t.Fatalf("Init() with http protocol error = %v", err)
	}
	t.Cleanup(func() { _ = p.Shutdown(context.Background()) })
}

func TestInitUnsupportedProtocol(t *testing.T) {
	_, err := tracing.Init(context.Background(), config.TracingConfig{
		Endpoint: "localhost:4317",
		Protocol: "thrift",
		Insecure: true,
	})
	if err == nil {
		t.Fatal("Init() with unsupported protocol should return error")
	}
}

func TestInitInvalidSampleRate(t *testing.T) {
	tests := []struct {
		name string
		rate float64
	}{
		{"negative", -0.5},
		{"above one", 1.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tracing.Init(context.Background(), config.TracingConfig{
				Endpoint:   "localhost:4317",
				Protocol:   "grpc",
				Insecure:   true,
				SampleRate: tt.rate,
			})
			if err == nil {
				t.Fatalf("Init() with sample_rate=%g should return error", tt.rate)
			}
		})
	}
}

func TestNilProviderSafety(t *testing.T) {
	var p *tracing.Provider
	if p.Enabled() {
		t.Error("nil provider Enabled() = true, want false")
	}
	if err := p.Shutdown(context.Background()); err != nil {
		t.Errorf("nil provider Shutdown() error = %v", err)
	}
	_, span := p.Tracer().Start(context.Background(), "test")
	span.End()
}

func TestSectionSpanIsChildOfBenchmarkSpan(t *testing.T) {
	exporter, tracer := setupTestTracer(t)

	ctx, bspan := tracing.StartBenchmarkSpan(context.Background(), tracer, "words", 3, 2)
	_, sspan := tracing.StartSectionSpan(ctx, tracer, "words", "UTF-8 hot")
	tracing.EndSpan(sspan, nil)
	tracing.EndSpan(bspan, nil)

	spans := exporter.GetSpans()
	if len(spans) != 2 {
		t.Fatalf("got %d spans, want 2", len(spans))
	}
	section, bench := spans[0], spans[1]
	if bench.Name != "benchmark words" {
		t.Errorf("benchmark span name = %q", bench.Name)
	}
	if section.Name != "UTF-8 hot" {
		t.Errorf("section span name = %q", section.Name)
	}
	if section.Parent.SpanID() != bench.SpanContext.SpanID() {
		t.Error("section span is not a child of the benchmark span")
	}
	if v, ok := findAttr(bench.Attributes, tracing.AttrPatterns); !ok || v.AsInt64() != 3 {
		t.Errorf("patterns attribute = %v, %v", v, ok)
	}
	if v, ok := findAttr(section.Attributes, tracing.AttrSection); !ok || v.AsString() != "UTF-8 hot" {
		t.Errorf("section attribute = %v, %v", v, ok)
	}
}

func TestEndSpanRecordsError(t *testing.T) {
	exporter, tracer := setupTestTracer(t)

	_, span := tracer.Start(context.Background(), "test-error")
	tracing.EndSpan(span, errors.New("compile failed"), tracing.AttrCells.Int(4))

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(spans))
	}
	if spans[0].Status.Code != codes.Error {
		t.Errorf("span status code = %d, want %d (Error)", spans[0].Status.Code, codes.Error)
	}
	if v, ok := findAttr(spans[0].Attributes, tracing.AttrCells); !ok || v.AsInt64() != 4 {
		t.Errorf("cells attribute = %v, %v", v, ok)
	}
}

func TestEndSpanOk(t *testing.T) {
	exporter, tracer := setupTestTracer(t)

	_, span := tracer.Start(context.Background(), "test-ok")
	tracing.EndSpan(span, nil)

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("got %d spans, want 1", len(spans))
	}
	if spans[0].Status.Code != codes.Ok {
		t.Errorf("span status code = %d, want %d (Ok)", spans[0].Status.Code, codes.Ok)
	}
}
