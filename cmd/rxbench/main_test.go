package main

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/torosent/rxbench/internal/config"
	"github.com/torosent/rxbench/internal/metrics"
	"github.com/torosent/rxbench/internal/output"
)

func writeFixture(t *testing.T) (dataset, patternsPath string) {
	t.Helper()
	dir := t.TempDir()
	dataset = filepath.Join(dir, "data")
	if err := os.MkdirAll(dataset, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dataset, "a.txt"), []byte("the cat sat on the mat\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dataset, "b.txt"), []byte("a catalogue of mats\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	patternsPath = filepath.Join(dir, "animals.txt")
	if err := os.WriteFile(patternsPath, []byte("cat\n[a-z]at\ncat\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	return dataset, patternsPath
}

func TestRunWritesCSV(t *testing.T) {
	dataset, pats := writeFixture(t)
	out := filepath.Join(t.TempDir(), "report.csv")

	var stdout, stderr bytes.Buffer
	err := runWith([]string{
		"--dataset", dataset,
		"--patterns", pats,
		"--engine", "regexp",
		"--utf8",
		"--samples", "2",
		"--format", "csv",
		"--output", out,
		"--log-level", "error",
	}, &stdout, &stderr)
	if err != nil {
		t.Fatalf("run() error = %v\nstderr:\n%s", err, stderr.String())
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	lines := strings.Split(string(data), "\n")
	if len(lines) < 4 || lines[0] != "UTF-8 hot" || lines[1] != "Pattern,regexp (Mean)" {
		t.Fatalf("unexpected CSV:\n%s", data)
	}
	if !strings.HasPrefix(lines[2], "cat,") || !strings.HasPrefix(lines[3], "[a-z]at,") {
		t.Errorf("expected distinct patterns in file order:\n%s", data)
	}
	if stdout.Len() != 0 {
		t.Errorf("report leaked to stdout: %q", stdout.String())
	}
	if !strings.Contains(stderr.String(), "=== Benchmark: animals ===") {
		t.Errorf("expected status lines on stderr, got:\n%s", stderr.String())
	}
}

func TestRunQuietTextReport(t *testing.T) {
	dataset, pats := writeFixture(t)

	var stdout, stderr bytes.Buffer
	err := runWith([]string{
		"--dataset", dataset,
		"--patterns", pats,
		"--engine", "regexp,regexp2",
		"--parallel",
		"--quiet",
		"--log-level", "error",
	}, &stdout, &stderr)
	if err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if stderr.Len() != 0 {
		t.Errorf("quiet run wrote to stderr: %q", stderr.String())
	}
	for _, want := range []string{"--- Benchmark: animals ---", "UTF-16 hot", "UTF-16 parallel", "UTF-8 hot", "UTF-8 parallel", "[geomean]"} {
		if !strings.Contains(stdout.String(), want) {
			t.Errorf("text report missing %q:\n%s", want, stdout.String())
		}
	}
}

func TestRunThresholdsAndHTML(t *testing.T) {
	dataset, pats := writeFixture(t)
	html := filepath.Join(t.TempDir(), "report.html")

	base := []string{
		"--dataset", dataset,
		"--patterns", pats,
		"--engine", "regexp",
		"--utf8",
		"--quiet",
		"--log-level", "error",
		"--format", "json",
		"--html-output", html,
	}

	var stdout, stderr bytes.Buffer
	if err := runWith(append(base, "--threshold", "UTF-8 hot:mean >= 0"), &stdout, &stderr); err != nil {
		t.Fatalf("passing threshold: run() error = %v", err)
	}
	if !strings.Contains(stderr.String(), "(1/1 passed)") {
		t.Errorf("expected threshold summary, got:\n%s", stderr.String())
	}
	if !strings.Contains(stdout.String(), `"run_id"`) {
		t.Errorf("expected JSON report on stdout")
	}
	page, err := os.ReadFile(html)
	if err != nil {
		t.Fatalf("HTML report not written: %v", err)
	}
	if !strings.Contains(string(page), "animals: UTF-8 hot") {
		t.Errorf("HTML report missing metric table")
	}

	stdout.Reset()
	stderr.Reset()
	err = runWith(append(base, "--threshold", "UTF-8 hot@regexp:max < 0"), &stdout, &stderr)
	if err == nil || !strings.Contains(err.Error(), "1 of 1 thresholds failed") {
		t.Fatalf("failing threshold: run() error = %v", err)
	}
}

func TestRunRejectsInvalidInput(t *testing.T) {
	dataset, pats := writeFixture(t)
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown engine", []string{"--dataset", dataset, "--patterns", pats, "--engine", "perl"}, "unknown engine"},
		{"bad threshold", []string{"--dataset", dataset, "--patterns", pats, "--threshold", "nonsense"}, "threshold"},
		{"missing dataset", []string{"--patterns", pats}, "at least one dataset"},
		{"missing patterns file", []string{"--dataset", dataset, "--patterns", filepath.Join(t.TempDir(), "none.txt")}, "none.txt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := runWith(append(tt.args, "--quiet", "--log-level", "error"), &bytes.Buffer{}, &bytes.Buffer{})
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("run() error = %v, want substring %q", err, tt.want)
			}
		})
	}
}

func TestRunHelp(t *testing.T) {
	if err := runWith([]string{"--help"}, &bytes.Buffer{}, &bytes.Buffer{}); err != nil {
		t.Errorf("run(--help) error = %v, want nil", err)
	}
}

func sampleOf(ds ...time.Duration) *metrics.Sample {
	s := metrics.NewSample()
	for _, d := range ds {
		s.Add(d)
	}
	return s
}

func TestSamplingPredicate(t *testing.T) {
	ms := time.Millisecond
	tests := []struct {
		name string
		cfg  config.Config
		obs  []time.Duration
		want bool
	}{
		{"fixed below", config.Config{Samples: 3}, []time.Duration{ms, ms}, true},
		{"fixed reached", config.Config{Samples: 3}, []time.Duration{ms, ms, ms}, false},
		{"min-time extends", config.Config{Samples: 1, MinTime: 10 * ms}, []time.Duration{ms, ms}, true},
		{"min-time met", config.Config{Samples: 1, MinTime: 2 * ms}, []time.Duration{ms, ms}, false},
		{"max caps min-time", config.Config{Samples: 1, MinTime: time.Hour, MaxSamples: 2}, []time.Duration{ms, ms}, false},
		{"unstable continues", config.Config{Samples: 2, StableRSD: 0.01}, []time.Duration{ms, 10 * ms}, true},
		{"stable stops", config.Config{Samples: 2, StableRSD: 0.01}, []time.Duration{ms, ms}, false},
		{"unstable capped", config.Config{Samples: 2, StableRSD: 0.01, MaxSamples: 2}, []time.Duration{ms, 10 * ms}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			if got := samplingPredicate(&cfg)(sampleOf(tt.obs...)); got != tt.want {
				t.Errorf("samplingPredicate() = %v, want %v", got, tt.want)
			}
		})
	}
}

type failingCloser struct {
	bytes.Buffer
	err error
}

func (f *failingCloser) Close() error { return f.err }

func TestEmitReportReturnsCloseError(t *testing.T) {
	diskFull := errors.New("no space left on device")
	dest := &failingCloser{err: diskFull}
	orig := openOutput
	openOutput = func(string, bool) (io.WriteCloser, error) { return dest, nil }
	t.Cleanup(func() { openOutput = orig })

	cfg := &config.Config{Format: config.FormatJSON, Output: "report.json"}
	err := emitReport(cfg, io.Discard, "run-1", output.Report{RunID: "run-1"}, nil)
	if !errors.Is(err, diskFull) {
		t.Fatalf("emitReport() error = %v, want %v", err, diskFull)
	}
	if !strings.Contains(dest.String(), "run-1") {
		t.Errorf("report not written before close: %q", dest.String())
	}
}

func TestEmitReportAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	cfg := &config.Config{Format: config.FormatJSON, Output: path, Append: true}

	for _, id := range []string{"first", "second"} {
		if err := emitReport(cfg, io.Discard, id, output.Report{RunID: id}, nil); err != nil {
			t.Fatalf("emitReport(%s) error = %v", id, err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if !strings.Contains(string(data), "first") || !strings.Contains(string(data), "second") {
		t.Errorf("expected both runs in appended report:\n%s", data)
	}
}
