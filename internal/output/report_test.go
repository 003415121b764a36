package output_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/torosent/rxbench/internal/bench"
	"github.com/torosent/rxbench/internal/metrics"
	"github.com/torosent/rxbench/internal/output"
	"github.com/torosent/rxbench/internal/threshold"
)

func TestBuildReport(t *testing.T) {
	b := measuredBenchmark(t, "words")
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	report, err := output.BuildReport("run-1", at, []*bench.Benchmark{b})
	if err != nil {
		t.Fatalf("BuildReport() error = %v", err)
	}
	if report.RunID != "run-1" || !report.GeneratedAt.Equal(at) {
		t.Errorf("unexpected header %+v", report)
	}
	if len(report.Benchmarks) != 1 || len(report.Benchmarks[0].Metrics) != 1 {
		t.Fatalf("unexpected shape %+v", report.Benchmarks)
	}
	m := report.Benchmarks[0].Metrics[0]
	if m.Name != "UTF-8 hot" {
		t.Errorf("metric name = %q", m.Name)
	}
	if len(m.Cells) != 4 {
		t.Errorf("cells = %d, want 4", len(m.Cells))
	}
	for _, c := range m.Cells {
		if c.Count != 3 {
			t.Errorf("cell %v count = %d, want 3", c.Labels, c.Count)
		}
	}
	if len(m.GeoMeans) != 2 || m.GeoMeans[0].Label != "fast" || m.GeoMeans[1].Label != "slow" {
		t.Errorf("geomeans = %+v", m.GeoMeans)
	}
}

func TestBuildReportUnmeasured(t *testing.T) {
	b := bench.New("pending", nil, nil, nil)
	if _, err := output.BuildReport("x", time.Now(), []*bench.Benchmark{b}); !errors.Is(err, bench.ErrNotMeasured) {
		t.Fatalf("expected ErrNotMeasured, got %v", err)
	}
}

func handReport() output.Report {
	return output.Report{
		RunID:       "01TEST",
		GeneratedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Benchmarks: []output.BenchmarkReport{{
			Name: "Twain",
			Metrics: []output.MetricReport{{
				Name: "UTF-8 hot",
				Axes: []metrics.Axis{metrics.NewAxis("Pattern", "Twain", "Huck"), metrics.NewAxis("Matcher", "regexp", "re2")},
				Cells: []output.CellReport{
					{Labels: []string{"Twain", "regexp"}, Summary: metrics.Summary{Count: 1, Mean: 2 * time.Millisecond, MeanMs: 2}},
					{Labels: []string{"Twain", "re2"}, Summary: metrics.Summary{Count: 1, Mean: time.Millisecond, MeanMs: 1}},
					{Labels: []string{"Huck", "regexp"}, Summary: metrics.Summary{Count: 1, Mean: 8 * time.Millisecond, MeanMs: 8}},
				},
				GeoMeans: []output.GeoMeanReport{
					{Label: "regexp", Mean: 4 * time.Millisecond, MeanMs: 4},
					{Label: "re2", Mean: time.Millisecond, MeanMs: 1},
				},
			}},
		}},
	}
}

func TestPrintReport(t *testing.T) {
	var buf bytes.Buffer
	output.PrintReport(&buf, handReport())
	out := buf.String()

	for _, want := range []string{"--- Benchmark: Twain ---", "UTF-8 hot", "Pattern", "regexp", "re2", "2ms ± 0s", "[geomean]", "4ms"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
	// Huck has no re2 cell.
	var huck string
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "Huck") {
			huck = line
		}
	}
	if !strings.HasSuffix(strings.TrimSpace(huck), "-") {
		t.Errorf("expected missing cell rendered as '-', got %q", huck)
	}
}

func TestPrintJSONReport(t *testing.T) {
	var buf bytes.Buffer
	if err := output.PrintJSONReport(&buf, handReport()); err != nil {
		t.Fatalf("PrintJSONReport() error = %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if decoded["run_id"] != "01TEST" {
		t.Errorf("run_id = %v", decoded["run_id"])
	}
	out := buf.String()
	for _, want := range []string{`"mean_ms": 2`, `"labels": [`, `"geomeans"`} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %s in JSON:\n%s", want, out)
		}
	}
}

func TestPrintYAMLReport(t *testing.T) {
	var buf bytes.Buffer
	if err := output.PrintYAMLReport(&buf, handReport()); err != nil {
		t.Fatalf("PrintYAMLReport() error = %v", err)
	}
	var decoded map[string]any
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid YAML: %v", err)
	}
	if decoded["run_id"] != "01TEST" {
		t.Errorf("run_id = %v", decoded["run_id"])
	}
	if !strings.Contains(buf.String(), "mean_ms: 8") {
		t.Errorf("expected inlined summary fields:\n%s", buf.String())
	}
}

func TestPrintThresholdResults(t *testing.T) {
	var buf bytes.Buffer
	output.PrintThresholdResults(&buf, []threshold.Result{
		{Pass: true, Message: "✓ ok"},
		{Pass: false, Message: "✗ bad"},
	})
	out := buf.String()
	if !strings.Contains(out, "(1/2 passed)") || !strings.Contains(out, "✗ bad") {
		t.Errorf("unexpected output:\n%s", out)
	}

	buf.Reset()
	output.PrintThresholdResults(&buf, nil)
	if buf.Len() != 0 {
		t.Errorf("expected no output without thresholds")
	}
}

func TestNewRunIDUnique(t *testing.T) {
	a, b := output.NewRunID(), output.NewRunID()
	if len(a) != 26 || a == b {
		t.Errorf("unexpected run IDs %q, %q", a, b)
	}
}
