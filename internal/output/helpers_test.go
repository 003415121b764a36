package output_test

import (
	"context"
	"testing"
	"time"

	"github.com/torosent/rxbench/internal/bench"
	"github.com/torosent/rxbench/internal/engine"
	"github.com/torosent/rxbench/internal/input"
	"github.com/torosent/rxbench/internal/metrics"
	"github.com/torosent/rxbench/internal/runner"
)

type nopMatcher struct{}

func (nopMatcher) FindAllUTF8([]byte) error    { return nil }
func (nopMatcher) FindAllUTF16([]uint16) error { return nil }

type nopCompiler struct{}

func (nopCompiler) Compile(string) (engine.Matcher, error) { return nopMatcher{}, nil }

func nopFactory(name string) engine.Factory {
	return engine.Factory{Name: name, New: func() engine.Compiler { return nopCompiler{} }, Concurrent: true}
}

// measuredBenchmark runs a hot-only UTF-8 benchmark with two patterns and
// two engines, three observations per cell.
func measuredBenchmark(t *testing.T, name string) *bench.Benchmark {
	t.Helper()
	b := bench.New(name,
		[]input.Opener{input.Bytes([]byte("some text"))},
		[]string{"a+", "b c"},
		[]engine.Factory{nopFactory("fast"), nopFactory("slow")},
	)
	err := b.Measure(context.Background(), bench.Options{UTF8: true, Predicate: runner.FixedSampleSize(3)})
	if err != nil {
		t.Fatalf("Measure() error = %v", err)
	}
	return b
}

func sampleOf(ds ...time.Duration) *metrics.Sample {
	s := metrics.NewSample()
	for _, d := range ds {
		s.Add(d)
	}
	return s
}
