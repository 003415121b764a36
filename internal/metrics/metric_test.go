package metrics_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/torosent/rxbench/internal/metrics"
)

func newTestMetric() *metrics.Metric {
	return metrics.NewMetric("UTF-8 hot",
		metrics.NewAxis("Pattern", "a+", "b+"),
		metrics.NewAxis("Matcher", "regexp", "re2"),
	)
}

func TestMetricAddAndLookup(t *testing.T) {
	m := newTestMetric()
	s := metrics.NewSample()
	s.Add(time.Millisecond)

	if err := m.Add(s, "a+", "regexp"); err != nil {
		t.Fatalf("Add: %v", err)
	}

	// Build the tuple freshly to make sure lookup is by value.
	pattern := string([]byte("a+"))
	got, err := m.Lookup(pattern, "regexp")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if got != s {
		t.Errorf("Lookup returned a different sample")
	}
	if m.Len() != 1 {
		t.Errorf("expected 1 cell, got %d", m.Len())
	}
}

func TestMetricAddRejectsLabelCountMismatch(t *testing.T) {
	m := newTestMetric()
	for _, labels := range [][]string{{}, {"a+"}, {"a+", "regexp", "extra"}} {
		err := m.Add(metrics.NewSample(), labels...)
		if !errors.Is(err, metrics.ErrInvalidArgument) {
			t.Errorf("Add(%v) error = %v, want ErrInvalidArgument", labels, err)
		}
	}
	if m.Len() != 0 {
		t.Errorf("rejected adds must not create cells, got %d", m.Len())
	}
}

func TestMetricAddRejectsDuplicate(t *testing.T) {
	m := newTestMetric()
	if err := m.Add(metrics.NewSample(), "a+", "re2"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	err := m.Add(metrics.NewSample(), "a+", "re2")
	if !errors.Is(err, metrics.ErrInvalidArgument) {
		t.Fatalf("duplicate Add error = %v, want ErrInvalidArgument", err)
	}
}

func TestMetricLookupNotFound(t *testing.T) {
	m := newTestMetric()
	if err := m.Add(metrics.NewSample(), "a+", "re2"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := m.Lookup("b+", "re2"); !errors.Is(err, metrics.ErrNotFound) {
		t.Errorf("Lookup error = %v, want ErrNotFound", err)
	}
	if _, err := m.Lookup("b+"); !errors.Is(err, metrics.ErrInvalidArgument) {
		t.Errorf("Lookup with one label error = %v, want ErrInvalidArgument", err)
	}
}

func TestMetricTuplesDoNotCollideOnConcatenation(t *testing.T) {
	m := metrics.NewMetric("m", metrics.NewAxis("A"), metrics.NewAxis("B"))
	if err := m.Add(metrics.NewSample(), "ab", "c"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := m.Add(metrics.NewSample(), "a", "bc"); err != nil {
		t.Fatalf("tuples with equal concatenation must be distinct: %v", err)
	}
	if m.Len() != 2 {
		t.Errorf("expected 2 cells, got %d", m.Len())
	}
}

func TestMetricCellsKeepInsertionOrder(t *testing.T) {
	m := metrics.NewMetric("m", metrics.NewAxis("Pattern"), metrics.NewAxis("Matcher"))
	var want []string
	for i := 0; i < 50; i++ {
		p := fmt.Sprintf("p%d", i)
		want = append(want, p)
		if err := m.Add(metrics.NewSample(), p, "e"); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}
	for i, c := range m.Cells() {
		if c.Labels[0] != want[i] {
			t.Fatalf("cell %d = %v, want pattern %s", i, c.Labels, want[i])
		}
	}
}

func TestMetricAddCopiesLabels(t *testing.T) {
	m := metrics.NewMetric("m", metrics.NewAxis("A"))
	labels := []string{"x"}
	if err := m.Add(metrics.NewSample(), labels...); err != nil {
		t.Fatalf("Add: %v", err)
	}
	labels[0] = "y"
	if _, err := m.Lookup("x"); err != nil {
		t.Errorf("mutating the caller's slice changed the stored tuple: %v", err)
	}
}

func TestLabelsEqualAndHash(t *testing.T) {
	a := metrics.Labels{"x", "y"}
	b := metrics.Labels{"x", "y"}
	c := metrics.Labels{"y", "x"}
	if !a.Equal(b) || a.Hash() != b.Hash() {
		t.Errorf("equal tuples must be Equal and hash identically")
	}
	if a.Equal(c) {
		t.Errorf("tuples in different order must not be Equal")
	}
	if a.Hash() == c.Hash() {
		t.Errorf("hash-combine should be order sensitive")
	}
}
