package bench

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/torosent/rxbench/internal/engine"
	"github.com/torosent/rxbench/internal/input"
	"github.com/torosent/rxbench/internal/metrics"
	"github.com/torosent/rxbench/internal/pool"
	"github.com/torosent/rxbench/internal/tracing"
)

// ErrNotMeasured is returned by Metrics before a successful Measure.
var ErrNotMeasured = errors.New("benchmark has not been measured")

// Benchmark is a named dataset, pattern set and engine list. It is
// configured once and produces its metrics through Measure.
type Benchmark struct {
	Name     string
	Dataset  []input.Opener
	Patterns []string
	Engines  []engine.Factory

	metrics []*metrics.Metric
}

// New creates a benchmark. The slices are copied.
func New(name string, dataset []input.Opener, patterns []string, engines []engine.Factory) *Benchmark {
	return &Benchmark{
		Name:     name,
		Dataset:  append([]input.Opener(nil), dataset...),
		Patterns: append([]string(nil), patterns...),
		Engines:  append([]engine.Factory(nil), engines...),
	}
}

// Metrics returns the metrics of the last successful Measure, in the order
// their sections ran.
func (b *Benchmark) Metrics() ([]*metrics.Metric, error) {
	if b.metrics == nil {
		return nil, ErrNotMeasured
	}
	return append([]*metrics.Metric(nil), b.metrics...), nil
}

// Measure runs every section selected by opts. On error the benchmark is
// left unmeasured, even if an earlier Measure succeeded, and the error from
// the failing compiler, matcher or dataset is returned as-is. Canceling ctx
// interrupts paced sampling.
func (b *Benchmark) Measure(ctx context.Context, opts Options) (err error) {
	b.metrics = nil
	opts.normalize()

	ctx, span := tracing.StartBenchmarkSpan(ctx, opts.Tracer, b.Name, len(b.Patterns), len(b.Engines))
	defer func() { tracing.EndSpan(span, err) }()

	r := &run{
		Benchmark: b,
		ctx:       ctx,
		opts:      opts,
		pool:      pool.New(opts.Workers),
	}

	r.statusf("=== Benchmark: %s ===\n", b.Name)

	measured := make([]*metrics.Metric, 0, 8)
	for _, s := range r.plan() {
		m, err := r.runSection(ctx, s)
		if err != nil {
			return err
		}
		measured = append(measured, m)
	}
	b.metrics = measured
	return nil
}

// section is one entry of the measurement plan.
type section struct {
	name    string
	status  string
	measure func() (*metrics.Metric, error)
}

func (r *run) plan() []section {
	var plan []section
	if r.opts.Compile {
		if r.opts.Cold {
			plan = append(plan, section{
				name:    "Cold compilation",
				status:  "Measuring cold start compilation time...",
				measure: r.compileCold,
			})
		}
		plan = append(plan, section{
			name:    "Hot compilation",
			status:  "Measuring hot start compilation time...",
			measure: r.compileHot,
		})
	}
	if r.opts.UTF16 {
		plan = appendMatchSections(plan, r, utf16Codec)
	}
	if r.opts.UTF8 {
		plan = appendMatchSections(plan, r, utf8Codec)
	}
	return plan
}

func appendMatchSections[T any](plan []section, r *run, c codec[T]) []section {
	if r.opts.Cold {
		plan = append(plan, section{
			name:    fmt.Sprintf("%s cold", c.encoding),
			status:  fmt.Sprintf("Measuring %s cold start matching time...", c.encoding),
			measure: func() (*metrics.Metric, error) { return matchCold(r, c) },
		})
	}
	plan = append(plan, section{
		name:    fmt.Sprintf("%s hot", c.encoding),
		status:  fmt.Sprintf("Measuring %s hot start matching time...", c.encoding),
		measure: func() (*metrics.Metric, error) { return matchHot(r, c) },
	})
	if r.opts.Parallel {
		plan = append(plan, section{
			name:    fmt.Sprintf("%s parallel", c.encoding),
			status:  fmt.Sprintf("Measuring %s parallel matching time...", c.encoding),
			measure: func() (*metrics.Metric, error) { return matchParallel(r, c) },
		})
	}
	return plan
}

func (r *run) runSection(ctx context.Context, s section) (m *metrics.Metric, err error) {
	_, span := tracing.StartSectionSpan(ctx, r.opts.Tracer, r.Name, s.name)
	defer func() {
		cells := 0
		if m != nil {
			cells = m.Len()
		}
		tracing.EndSpan(span, err, tracing.AttrCells.Int(cells))
	}()

	r.statusln(s.status)
	r.opts.Logger.Debug("section started", "benchmark", r.Name, "section", s.name)
	start := time.Now()
	m, err = s.measure()
	if err != nil {
		r.opts.Logger.Debug("section failed", "benchmark", r.Name, "section", s.name, "error", err)
		return nil, err
	}
	r.opts.Logger.Debug("section finished",
		"benchmark", r.Name,
		"section", s.name,
		"cells", m.Len(),
		"elapsed", time.Since(start),
	)
	return m, nil
}
