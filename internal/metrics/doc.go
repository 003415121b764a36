// Package metrics holds the timing data produced by a benchmark run.
//
// # Samples
//
// A [Sample] is the ordered list of elapsed durations observed for one
// experiment (one pattern on one engine in one section of a run):
//
//	s := metrics.NewSample()
//	s.Add(12 * time.Millisecond)
//	s.Add(14 * time.Millisecond)
//
//	mean, err := s.Mean()     // 13ms
//	stdev, err := s.StdDev()  // 1ms (population)
//
// Mean and StdDev are derived on every call and fail with [ErrEmptySample]
// when no observation has been recorded.
//
// # Metrics
//
// A [Metric] is a named table indexed by one or more categorical [Axis]
// values. Each cell is addressed by a label tuple holding exactly one label
// per axis, in axis order:
//
//	m := metrics.NewMetric("UTF-8 hot",
//		metrics.NewAxis("Pattern", patterns...),
//		metrics.NewAxis("Matcher", engines...),
//	)
//	if err := m.Add(sample, `\w+ing`, "regexp"); err != nil {
//		// ErrInvalidArgument: wrong label count or duplicate tuple
//	}
//	s, err := m.Lookup(`\w+ing`, "regexp") // ErrNotFound if absent
//
// Label tuples compare by value, element by element, so tuples built at
// different call sites address the same cell.
//
// # Summaries
//
// [Summarize] condenses a Sample into a [Summary] with min/max, mean,
// standard deviation and histogram percentiles for reporting.
package metrics
