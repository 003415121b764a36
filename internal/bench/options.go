package bench

import (
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/torosent/rxbench/internal/runner"
)

// Options select which sections Measure runs and how trials are sampled.
type Options struct {
	// Status receives human-readable progress lines. Defaults to io.Discard.
	Status io.Writer

	Cold     bool // cold compilation and cold matching
	Parallel bool // data-parallel matching
	UTF8     bool
	UTF16    bool
	Compile  bool

	// Predicate decides how many trials each cell gets. Defaults to a
	// single observation.
	Predicate runner.Predicate
	// Sampler paces trials. Nil runs them back to back.
	Sampler *runner.Sampler
	// Workers bounds the parallel section. Non-positive means GOMAXPROCS.
	Workers int

	Tracer trace.Tracer
	Logger *slog.Logger
}

func (o *Options) normalize() {
	if o.Status == nil {
		o.Status = io.Discard
	}
	if o.Predicate == nil {
		o.Predicate = runner.FixedSampleSize(1)
	}
	if o.Sampler == nil {
		o.Sampler = &runner.Sampler{}
	}
	if o.Tracer == nil {
		o.Tracer = noop.NewTracerProvider().Tracer("rxbench")
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}
}
