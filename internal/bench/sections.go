package bench

import (
	"context"
	"fmt"
	"io"

	"github.com/torosent/rxbench/internal/engine"
	"github.com/torosent/rxbench/internal/input"
	"github.com/torosent/rxbench/internal/metrics"
	"github.com/torosent/rxbench/internal/pool"
	"github.com/torosent/rxbench/internal/runner"
)

// pairKey identifies one compiled matcher.
type pairKey struct {
	pattern string
	engine  string
}

// codec prepares dataset bytes in one encoding and feeds them to a matcher.
type codec[T any] struct {
	encoding input.Encoding
	prepare  func(io.Reader) (T, error)
	match    func(engine.Matcher, T) error
}

var (
	utf16Codec = codec[[]uint16]{encoding: input.UTF16, prepare: input.ReadUTF16, match: engine.Matcher.FindAllUTF16}
	utf8Codec  = codec[[]byte]{encoding: input.UTF8, prepare: input.ReadUTF8, match: engine.Matcher.FindAllUTF8}
)

// run carries the state of one Measure call.
type run struct {
	*Benchmark
	ctx  context.Context
	opts Options
	pool *pool.Pool
}

func (r *run) statusf(format string, args ...any) {
	fmt.Fprintf(r.opts.Status, format, args...)
}

func (r *run) statusln(line string) {
	fmt.Fprintln(r.opts.Status, line)
}

func (r *run) progress(i int) {
	r.statusf("Pattern %d/%d\n", i+1, len(r.Patterns))
}

func (r *run) sample(action runner.Action) (*metrics.Sample, error) {
	return r.opts.Sampler.ExecuteContext(r.ctx, r.opts.Predicate, action)
}

func (r *run) newMetric(name string, engines []engine.Factory) *metrics.Metric {
	names := make([]string, len(engines))
	for i, f := range engines {
		names[i] = f.Name
	}
	return metrics.NewMetric(name,
		metrics.NewAxis("Pattern", r.Patterns...),
		metrics.NewAxis("Matcher", names...),
	)
}

func (r *run) compileCold() (*metrics.Metric, error) {
	return r.compileSection("Cold compilation", func(pattern string, f engine.Factory) (*metrics.Sample, error) {
		return r.sample(func() error {
			_, err := f.New().Compile(pattern)
			return err
		})
	})
}

func (r *run) compileHot() (*metrics.Metric, error) {
	return r.compileSection("Hot compilation", func(pattern string, f engine.Factory) (*metrics.Sample, error) {
		c := f.New()
		if _, err := c.Compile(pattern); err != nil {
			return nil, err
		}
		return r.sample(func() error {
			_, err := c.Compile(pattern)
			return err
		})
	})
}

func (r *run) compileSection(name string, measure func(string, engine.Factory) (*metrics.Sample, error)) (*metrics.Metric, error) {
	m := r.newMetric(name, r.Engines)
	for i, pattern := range r.Patterns {
		r.progress(i)
		for _, f := range r.Engines {
			s, err := measure(pattern, f)
			if err != nil {
				return nil, err
			}
			if err := m.Add(s, pattern, f.Name); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}

// readConcatenated prepares the whole dataset as a single input. The
// sources are closed before it returns.
func readConcatenated[T any](r *run, c codec[T]) (T, error) {
	var zero T
	r.statusf("Reading dataset...")
	sources, err := input.OpenAll(r.Dataset)
	if err != nil {
		return zero, err
	}
	stream := input.NewConcat(sources...)
	defer stream.Close()
	if _, err := stream.Seek(0, io.SeekStart); err != nil {
		return zero, err
	}
	in, err := c.prepare(stream)
	if err != nil {
		return zero, err
	}
	r.statusln(" done.")
	return in, nil
}

// readUnits prepares every dataset element as its own input.
func readUnits[T any](r *run, c codec[T]) ([]T, error) {
	r.statusf("Reading dataset...")
	units := make([]T, 0, len(r.Dataset))
	for _, open := range r.Dataset {
		in, err := readOne(open, c)
		if err != nil {
			return nil, err
		}
		units = append(units, in)
	}
	r.statusln(" done.")
	return units, nil
}

func readOne[T any](open input.Opener, c codec[T]) (T, error) {
	var zero T
	src, err := open()
	if err != nil {
		return zero, err
	}
	defer src.Close()
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return zero, err
	}
	return c.prepare(src)
}

func compileAll(patterns []string, engines []engine.Factory) (map[pairKey]engine.Matcher, error) {
	matchers := make(map[pairKey]engine.Matcher, len(patterns)*len(engines))
	for _, pattern := range patterns {
		for _, f := range engines {
			m, err := f.New().Compile(pattern)
			if err != nil {
				return nil, err
			}
			matchers[pairKey{pattern: pattern, engine: f.Name}] = m
		}
	}
	return matchers, nil
}

// matchCold times the first match of a freshly compiled matcher. The
// compilation itself happens before sampling and is not timed.
func matchCold[T any](r *run, c codec[T]) (*metrics.Metric, error) {
	m := r.newMetric(fmt.Sprintf("%s cold", c.encoding), r.Engines)
	in, err := readConcatenated(r, c)
	if err != nil {
		return nil, err
	}
	for i, pattern := range r.Patterns {
		r.progress(i)
		for _, f := range r.Engines {
			matcher, err := f.New().Compile(pattern)
			if err != nil {
				return nil, err
			}
			s, err := r.sample(func() error { return c.match(matcher, in) })
			if err != nil {
				return nil, err
			}
			if err := m.Add(s, pattern, f.Name); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}

// matchHot times repeated matches on precompiled, warmed-up matchers.
func matchHot[T any](r *run, c codec[T]) (*metrics.Metric, error) {
	m := r.newMetric(fmt.Sprintf("%s hot", c.encoding), r.Engines)
	matchers, err := compileAll(r.Patterns, r.Engines)
	if err != nil {
		return nil, err
	}
	in, err := readConcatenated(r, c)
	if err != nil {
		return nil, err
	}
	for i, pattern := range r.Patterns {
		r.progress(i)
		for _, f := range r.Engines {
			matcher := matchers[pairKey{pattern: pattern, engine: f.Name}]
			if err := c.match(matcher, in); err != nil {
				return nil, err
			}
			s, err := r.sample(func() error { return c.match(matcher, in) })
			if err != nil {
				return nil, err
			}
			if err := m.Add(s, pattern, f.Name); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}

// matchParallel times one batch per trial: a match over every dataset
// element, spread across the worker pool and joined. Engines whose
// matchers are not safe for concurrent use are left out of the metric.
func matchParallel[T any](r *run, c codec[T]) (*metrics.Metric, error) {
	engines := make([]engine.Factory, 0, len(r.Engines))
	for _, f := range r.Engines {
		if !f.Concurrent {
			r.opts.Logger.Warn("engine excluded from parallel matching", "engine", f.Name)
			continue
		}
		engines = append(engines, f)
	}
	m := r.newMetric(fmt.Sprintf("%s parallel", c.encoding), engines)
	matchers, err := compileAll(r.Patterns, engines)
	if err != nil {
		return nil, err
	}
	units, err := readUnits(r, c)
	if err != nil {
		return nil, err
	}
	for i, pattern := range r.Patterns {
		r.progress(i)
		for _, f := range engines {
			matcher := matchers[pairKey{pattern: pattern, engine: f.Name}]
			s, err := r.sample(func() error {
				return r.pool.Run(len(units), func(unit int) error {
					return c.match(matcher, units[unit])
				})
			})
			if err != nil {
				return nil, err
			}
			if err := m.Add(s, pattern, f.Name); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}
