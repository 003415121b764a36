// Package bench is the benchmark orchestrator. A Benchmark pairs a dataset
// with a pattern set and a list of engines, and Measure runs the matrix of
// timed sections over it:
//
//	Cold compilation   fresh compiler per trial (Compile && Cold)
//	Hot compilation    reused compiler after one warm-up (Compile)
//	<enc> cold         first use of a freshly compiled matcher (Cold)
//	<enc> hot          repeated matches after one warm-up (always)
//	<enc> parallel     one match per dataset element across workers (Parallel)
//
// Encodings run UTF-16 first, then UTF-8. Each section produces one
// metrics.Metric with the axes Pattern and Matcher, appended in execution
// order.
//
// Sections run one after another on the calling goroutine. Only the
// parallel section fans work out, and its observations span dispatch
// through join of the whole batch. Any compiler or matcher error aborts the
// run and is returned unchanged.
package bench
