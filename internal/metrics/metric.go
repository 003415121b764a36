package metrics

import (
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Axis is a named categorical dimension with an ordered set of labels.
type Axis struct {
	Name   string   `json:"name" yaml:"name"`
	Labels []string `json:"labels" yaml:"labels"`
}

// NewAxis builds an axis from its name and labels.
func NewAxis(name string, labels ...string) Axis {
	return Axis{Name: name, Labels: append([]string(nil), labels...)}
}

// Labels is an ordered label tuple addressing one cell of a Metric.
type Labels []string

// Equal reports whether l and other hold the same labels in the same order.
func (l Labels) Equal(other Labels) bool {
	if len(l) != len(other) {
		return false
	}
	for i := range l {
		if l[i] != other[i] {
			return false
		}
	}
	return true
}

// Hash combines the element hashes in order, as boost::hash_combine does.
func (l Labels) Hash() uint64 {
	var h uint64
	for _, label := range l {
		h ^= xxhash.Sum64String(label) + 0x9e3779b97f4a7c15 + (h << 6) + (h >> 2)
	}
	return h
}

func (l Labels) String() string {
	return "(" + strings.Join(l, ", ") + ")"
}

// Cell is one populated entry of a Metric.
type Cell struct {
	Labels Labels
	Sample *Sample
}

// Metric is a named statistical table indexed by one or more axes.
type Metric struct {
	name  string
	axes  []Axis
	cells []Cell
	index map[uint64][]int
}

// NewMetric creates an empty metric with the given axis definitions.
func NewMetric(name string, axes ...Axis) *Metric {
	return &Metric{
		name:  name,
		axes:  append([]Axis(nil), axes...),
		index: make(map[uint64][]int),
	}
}

// Name returns the metric name.
func (m *Metric) Name() string { return m.name }

// Axes returns the axis definitions in declaration order.
func (m *Metric) Axes() []Axis { return append([]Axis(nil), m.axes...) }

// Len returns the number of populated cells.
func (m *Metric) Len() int { return len(m.cells) }

// Cells returns the populated cells in insertion order.
func (m *Metric) Cells() []Cell { return append([]Cell(nil), m.cells...) }

// Add stores sample under the given label tuple. The tuple must carry one
// label per axis and must not already be present.
func (m *Metric) Add(sample *Sample, labels ...string) error {
	if len(labels) != len(m.axes) {
		return fmt.Errorf("%w: expected %d labels, got %d", ErrInvalidArgument, len(m.axes), len(labels))
	}
	key := Labels(append([]string(nil), labels...))
	h := key.Hash()
	if m.find(h, key) >= 0 {
		return fmt.Errorf("%w: duplicate labels %s in metric %q", ErrInvalidArgument, key, m.name)
	}
	m.index[h] = append(m.index[h], len(m.cells))
	m.cells = append(m.cells, Cell{Labels: key, Sample: sample})
	return nil
}

// Lookup returns the sample stored under the exact label tuple.
func (m *Metric) Lookup(labels ...string) (*Sample, error) {
	if len(labels) != len(m.axes) {
		return nil, fmt.Errorf("%w: expected %d labels, got %d", ErrInvalidArgument, len(m.axes), len(labels))
	}
	key := Labels(labels)
	i := m.find(key.Hash(), key)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s in metric %q", ErrNotFound, key, m.name)
	}
	return m.cells[i].Sample, nil
}

func (m *Metric) find(h uint64, key Labels) int {
	for _, i := range m.index[h] {
		if m.cells[i].Labels.Equal(key) {
			return i
		}
	}
	return -1
}
