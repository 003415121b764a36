package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lmittmann/tint"

	"github.com/torosent/rxbench/internal/bench"
	"github.com/torosent/rxbench/internal/config"
	"github.com/torosent/rxbench/internal/engine"
	"github.com/torosent/rxbench/internal/input"
	"github.com/torosent/rxbench/internal/metrics"
	"github.com/torosent/rxbench/internal/output"
	"github.com/torosent/rxbench/internal/patterns"
	"github.com/torosent/rxbench/internal/runner"
	"github.com/torosent/rxbench/internal/threshold"
	"github.com/torosent/rxbench/internal/tracing"
)

const tracingShutdownTimeout = 5 * time.Second

// openOutput opens the report file; replaced in tests.
var openOutput = func(path string, appendMode bool) (io.WriteCloser, error) {
	return output.Create(path, appendMode)
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	return runWith(args, os.Stdout, os.Stderr)
}

func runWith(args []string, stdout, stderr io.Writer) error {
	loader := config.NewLoader()
	cfg, err := loader.Load(args)
	if err != nil {
		if errors.Is(err, config.ErrHelpRequested) {
			return nil
		}
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	thresholds, err := threshold.ParseMultiple(cfg.Thresholds)
	if err != nil {
		return err
	}

	logger := slog.New(tint.NewHandler(stderr, &tint.Options{
		Level:      cfg.SlogLevel(),
		TimeFormat: "15:04:05",
	}))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	provider, err := tracing.Init(ctx, cfg.Tracing)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), tracingShutdownTimeout)
		defer cancel()
		if err := provider.Shutdown(shutdownCtx); err != nil {
			logger.Warn("tracing shutdown failed", "error", err)
		}
	}()

	factories, err := engine.Select(cfg.Engines)
	if err != nil {
		return err
	}

	var status io.Writer = io.Discard
	if !cfg.Quiet {
		status = output.NewStatusWriter(stderr)
	}

	opts := bench.Options{
		Status:    status,
		Cold:      cfg.Cold,
		Parallel:  cfg.Parallel,
		UTF8:      cfg.UTF8,
		UTF16:     cfg.UTF16,
		Compile:   cfg.Compile,
		Predicate: samplingPredicate(cfg),
		Sampler:   runner.New(runner.Options{TrialRate: cfg.TrialRate}),
		Workers:   cfg.Workers,
		Tracer:    provider.Tracer(),
		Logger:    logger,
	}

	var benchmarks []*bench.Benchmark
	for _, suite := range cfg.Suites() {
		b, err := newBenchmark(suite, factories)
		if err != nil {
			return err
		}
		logger.Info("measuring benchmark",
			"name", b.Name, "patterns", len(b.Patterns), "datasets", len(b.Dataset), "engines", len(factories))
		start := time.Now()
		if err := b.Measure(ctx, opts); err != nil {
			return fmt.Errorf("benchmark %q: %w", b.Name, err)
		}
		logger.Info("benchmark measured", "name", b.Name, "elapsed", time.Since(start).Round(time.Millisecond))
		benchmarks = append(benchmarks, b)
	}

	runID := output.NewRunID()
	report, err := output.BuildReport(runID, time.Now(), benchmarks)
	if err != nil {
		return err
	}

	if err := emitReport(cfg, stdout, runID, report, benchmarks); err != nil {
		return err
	}

	var results []threshold.Result
	if len(thresholds) > 0 {
		results = threshold.NewEvaluator(thresholds).Evaluate(benchmarks)
	}

	if cfg.HTMLOutput != "" {
		f, err := output.Create(cfg.HTMLOutput, false)
		if err != nil {
			return err
		}
		if err := output.GenerateHTMLReport(f, report, results); err != nil {
			f.Close()
			return fmt.Errorf("failed to generate HTML report: %w", err)
		}
		if err := f.Close(); err != nil {
			return err
		}
		logger.Info("HTML report written", "path", cfg.HTMLOutput)
	}

	if len(results) > 0 {
		output.PrintThresholdResults(stderr, results)
		failed := 0
		for _, r := range results {
			if !r.Pass {
				failed++
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d thresholds failed", failed, len(results))
		}
	}
	return nil
}

// newBenchmark loads the patterns and expands the dataset paths of suite.
func newBenchmark(suite config.Suite, factories []engine.Factory) (*bench.Benchmark, error) {
	format, err := patterns.ParseFormat(suite.PatternsFormat)
	if err != nil {
		return nil, err
	}
	pats, err := patterns.Load(suite.Patterns, format, suite.PatternsField)
	if err != nil {
		return nil, err
	}
	_, openers, err := input.Walk(suite.Datasets...)
	if err != nil {
		return nil, err
	}
	if len(openers) == 0 {
		return nil, fmt.Errorf("benchmark %q: no dataset files found", suite.Name)
	}
	if suite.Repeat > 1 {
		for i, op := range openers {
			openers[i] = input.Repeated(op, suite.Repeat)
		}
	}
	return bench.New(suite.Name, openers, pats, factories), nil
}

// samplingPredicate combines the sampling settings into one predicate.
// samples is a floor, min-time extends it, max-samples caps everything.
func samplingPredicate(cfg *config.Config) runner.Predicate {
	p := runner.FixedSampleSize(cfg.Samples)
	if cfg.StableRSD > 0 {
		p = runner.UntilStable(cfg.Samples, cfg.MaxSamples, cfg.StableRSD)
	}
	if cfg.MinTime > 0 {
		p = runner.Any(p, runner.ForDuration(cfg.MinTime))
	}
	if cfg.MaxSamples > 0 {
		p = runner.All(p, runner.FixedSampleSize(cfg.MaxSamples))
	}
	return p
}

func emitReport(cfg *config.Config, stdout io.Writer, runID string, report output.Report, benchmarks []*bench.Benchmark) (err error) {
	w := stdout
	if cfg.Output != "" {
		f, openErr := openOutput(cfg.Output, cfg.Append)
		if openErr != nil {
			return openErr
		}
		defer func() {
			if cerr := f.Close(); err == nil && cerr != nil {
				err = fmt.Errorf("close output: %w", cerr)
			}
		}()
		w = f
	}

	switch cfg.Format {
	case config.FormatCSV:
		var all []*metrics.Metric
		for _, b := range benchmarks {
			ms, err := b.Metrics()
			if err != nil {
				return err
			}
			all = append(all, ms...)
		}
		return output.WriteCSV(w, all)
	case config.FormatJSON:
		return output.PrintJSONReport(w, report)
	case config.FormatYAML:
		return output.PrintYAMLReport(w, report)
	case config.FormatBenchfmt:
		return output.WriteBenchfmt(w, runID, benchmarks)
	default:
		output.PrintReport(w, report)
		return nil
	}
}
