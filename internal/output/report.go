package output

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/torosent/rxbench/internal/bench"
	"github.com/torosent/rxbench/internal/metrics"
)

// Report is the serializable form of a run.
type Report struct {
	RunID       string            `json:"run_id" yaml:"run_id"`
	GeneratedAt time.Time         `json:"generated_at" yaml:"generated_at"`
	Benchmarks  []BenchmarkReport `json:"benchmarks" yaml:"benchmarks"`
}

// BenchmarkReport holds the metrics of one benchmark.
type BenchmarkReport struct {
	Name    string         `json:"name" yaml:"name"`
	Metrics []MetricReport `json:"metrics" yaml:"metrics"`
}

// MetricReport summarizes every cell of a metric.
type MetricReport struct {
	Name     string          `json:"name" yaml:"name"`
	Axes     []metrics.Axis  `json:"axes" yaml:"axes"`
	Cells    []CellReport    `json:"cells" yaml:"cells"`
	GeoMeans []GeoMeanReport `json:"geomeans,omitempty" yaml:"geomeans,omitempty"`
}

// CellReport is one label tuple and its summary statistics.
type CellReport struct {
	Labels          []string `json:"labels" yaml:"labels"`
	metrics.Summary `json:",inline" yaml:",inline"`
}

// GeoMeanReport is the geometric mean of the cell means sharing a label
// on the last axis (usually one engine).
type GeoMeanReport struct {
	Label  string        `json:"label" yaml:"label"`
	Mean   time.Duration `json:"-" yaml:"-"`
	MeanMs float64       `json:"mean_ms" yaml:"mean_ms"`
}

// BuildReport summarizes measured benchmarks.
func BuildReport(runID string, generatedAt time.Time, benchmarks []*bench.Benchmark) (Report, error) {
	report := Report{
		RunID:       runID,
		GeneratedAt: generatedAt,
		Benchmarks:  make([]BenchmarkReport, 0, len(benchmarks)),
	}
	for _, b := range benchmarks {
		ms, err := b.Metrics()
		if err != nil {
			return Report{}, fmt.Errorf("benchmark %q: %w", b.Name, err)
		}
		br := BenchmarkReport{Name: b.Name, Metrics: make([]MetricReport, 0, len(ms))}
		for _, m := range ms {
			mr, err := buildMetricReport(m)
			if err != nil {
				return Report{}, fmt.Errorf("benchmark %q: %w", b.Name, err)
			}
			br.Metrics = append(br.Metrics, mr)
		}
		report.Benchmarks = append(report.Benchmarks, br)
	}
	return report, nil
}

func buildMetricReport(m *metrics.Metric) (MetricReport, error) {
	mr := MetricReport{Name: m.Name(), Axes: m.Axes()}
	means := make(map[string][]time.Duration)
	for _, cell := range m.Cells() {
		sum, err := metrics.Summarize(cell.Sample)
		if err != nil {
			return MetricReport{}, fmt.Errorf("metric %q %s: %w", m.Name(), cell.Labels, err)
		}
		mr.Cells = append(mr.Cells, CellReport{Labels: cell.Labels, Summary: sum})
		last := cell.Labels[len(cell.Labels)-1]
		means[last] = append(means[last], sum.Mean)
	}
	if axes := mr.Axes; len(axes) > 0 {
		for _, label := range axes[len(axes)-1].Labels {
			ds, ok := means[label]
			if !ok {
				continue
			}
			g := metrics.GeoMean(ds)
			mr.GeoMeans = append(mr.GeoMeans, GeoMeanReport{
				Label:  label,
				Mean:   g,
				MeanMs: float64(g) / float64(time.Millisecond),
			})
		}
	}
	return mr, nil
}

// PrintJSONReport outputs a JSON-formatted report.
func PrintJSONReport(w io.Writer, report Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

// PrintYAMLReport outputs a YAML-formatted report.
func PrintYAMLReport(w io.Writer, report Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(report); err != nil {
		return err
	}
	return enc.Close()
}
