package threshold

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/torosent/rxbench/internal/bench"
	"github.com/torosent/rxbench/internal/metrics"
)

// Threshold represents a performance assertion that can pass or fail.
type Threshold struct {
	Metric    string  // metric name, matched case-insensitively, e.g. "UTF-8 hot"
	Engine    string  // optional engine filter, e.g. "re2"
	Aggregate string  // e.g. "mean", "p99", "max"
	Operator  string  // e.g. "<", "<=", ">", ">=", "=="
	Value     float64 // milliseconds
	Raw       string  // original threshold string for display
}

// Result represents the outcome of evaluating a threshold.
type Result struct {
	Threshold Threshold
	Actual    float64 // worst matching cell, milliseconds
	Cell      string  // benchmark/pattern/engine of the worst cell
	Cells     int     // number of cells checked
	Pass      bool
	Message   string
}

// Evaluator evaluates thresholds against measured benchmarks.
type Evaluator struct {
	thresholds []Threshold
}

// NewEvaluator creates a new threshold evaluator.
func NewEvaluator(thresholds []Threshold) *Evaluator {
	return &Evaluator{
		thresholds: thresholds,
	}
}

// Evaluate checks every threshold against every cell of the matching
// metrics. A threshold passes only if all of its cells pass.
func (e *Evaluator) Evaluate(benchmarks []*bench.Benchmark) []Result {
	if len(e.thresholds) == 0 {
		return nil
	}

	results := make([]Result, 0, len(e.thresholds))
	for _, t := range e.thresholds {
		results = append(results, e.evaluateOne(t, benchmarks))
	}
	return results
}

func (e *Evaluator) evaluateOne(t Threshold, benchmarks []*bench.Benchmark) Result {
	res := Result{Threshold: t, Pass: true}
	first := true
	for _, b := range benchmarks {
		ms, err := b.Metrics()
		if err != nil {
			return failed(t, fmt.Errorf("%s: %w", b.Name, err))
		}
		for _, m := range ms {
			if !strings.EqualFold(m.Name(), t.Metric) {
				continue
			}
			for _, cell := range m.Cells() {
				engine := cell.Labels[len(cell.Labels)-1]
				if t.Engine != "" && !strings.EqualFold(engine, t.Engine) {
					continue
				}
				actual, err := extractValue(t.Aggregate, cell.Sample)
				if err != nil {
					return failed(t, err)
				}
				res.Cells++
				if !compareValues(actual, t.Operator, t.Value) {
					res.Pass = false
				}
				if first || worse(actual, res.Actual, t.Operator) {
					res.Actual = actual
					res.Cell = b.Name + "/" + strings.Join(cell.Labels, "/")
					first = false
				}
			}
		}
	}
	if res.Cells == 0 {
		return failed(t, fmt.Errorf("no cells match metric %q", t.Metric))
	}

	status := "✓"
	if !res.Pass {
		status = "✗"
	}
	res.Message = fmt.Sprintf("%s %s: %.3fms %s %.3fms (worst of %d: %s)",
		status, t.Raw, res.Actual, t.Operator, t.Value, res.Cells, res.Cell)
	return res
}

func failed(t Threshold, err error) Result {
	return Result{
		Threshold: t,
		Pass:      false,
		Message:   fmt.Sprintf("✗ %s: error: %v", t.Raw, err),
	}
}

// worse reports whether a is further from satisfying the operator than b.
func worse(a, b float64, operator string) bool {
	switch operator {
	case ">", ">=":
		return a < b
	default:
		return a > b
	}
}

var thresholdPattern = regexp.MustCompile(`^([^@:]+?)(?:@([^:]+))?:([a-z0-9]+)\s*(<=|>=|==|<|>)\s*([0-9.]+[a-zµ]*)$`)

// Parse parses a threshold string into a Threshold struct.
// Supported formats:
//   - "UTF-8 hot:mean < 250ms"         (every cell of the metric)
//   - "UTF-16 cold@regexp2:p99 <= 1s"  (cells of one engine)
//   - "Hot compilation:max < 5"        (bare numbers are milliseconds)
func Parse(s string) (Threshold, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Threshold{}, fmt.Errorf("empty threshold string")
	}

	matches := thresholdPattern.FindStringSubmatch(s)
	if matches == nil {
		return Threshold{}, fmt.Errorf("invalid threshold format: %q (expected format: metric[@engine]:aggregate operator value, e.g., 'UTF-8 hot:p99 < 250ms')", s)
	}

	metric := strings.TrimSpace(matches[1])
	engine := strings.TrimSpace(matches[2])
	aggregate := matches[3]
	operator := matches[4]

	value, err := parseMillis(matches[5])
	if err != nil {
		return Threshold{}, fmt.Errorf("invalid threshold value %q: %v", matches[5], err)
	}

	if !isValidAggregate(aggregate) {
		return Threshold{}, fmt.Errorf("unsupported aggregate: %q (supported: mean, avg, stddev, min, max, p50, p90, p99)", aggregate)
	}

	return Threshold{
		Metric:    metric,
		Engine:    engine,
		Aggregate: aggregate,
		Operator:  operator,
		Value:     value,
		Raw:       s,
	}, nil
}

// ParseMultiple parses multiple threshold strings.
func ParseMultiple(thresholds []string) ([]Threshold, error) {
	if len(thresholds) == 0 {
		return nil, nil
	}

	result := make([]Threshold, 0, len(thresholds))
	var errors []string

	for i, s := range thresholds {
		t, err := Parse(s)
		if err != nil {
			errors = append(errors, fmt.Sprintf("threshold[%d]: %v", i, err))
			continue
		}
		result = append(result, t)
	}

	if len(errors) > 0 {
		return nil, fmt.Errorf("threshold parsing errors: %s", strings.Join(errors, "; "))
	}

	return result, nil
}

// parseMillis accepts a Go duration ("250ms", "1.5s") or a bare number of
// milliseconds.
func parseMillis(s string) (float64, error) {
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	return float64(d) / float64(time.Millisecond), nil
}

func isValidAggregate(aggregate string) bool {
	valid := []string{"mean", "avg", "stddev", "min", "max", "p50", "p90", "p99"}
	for _, v := range valid {
		if aggregate == v {
			return true
		}
	}
	return false
}

func extractValue(aggregate string, s *metrics.Sample) (float64, error) {
	sum, err := metrics.Summarize(s)
	if err != nil {
		return 0, err
	}
	switch aggregate {
	case "mean", "avg":
		return sum.MeanMs, nil
	case "stddev":
		return sum.StdDevMs, nil
	case "min":
		return sum.MinMs, nil
	case "max":
		return sum.MaxMs, nil
	case "p50":
		return sum.P50Ms, nil
	case "p90":
		return sum.P90Ms, nil
	case "p99":
		return sum.P99Ms, nil
	default:
		return 0, fmt.Errorf("unsupported aggregate %q", aggregate)
	}
}

func compareValues(actual float64, operator string, expected float64) bool {
	// Handle floating point comparison with small epsilon
	epsilon := 1e-9

	switch operator {
	case "<":
		return actual < expected
	case "<=":
		return actual <= expected || math.Abs(actual-expected) < epsilon
	case ">":
		return actual > expected
	case ">=":
		return actual >= expected || math.Abs(actual-expected) < epsilon
	case "==":
		return math.Abs(actual-expected) < epsilon
	default:
		return false
	}
}
