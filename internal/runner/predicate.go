package runner

import (
	"time"

	"github.com/torosent/rxbench/internal/metrics"
)

// Predicate reports whether another observation should be taken given the
// sample collected so far.
type Predicate func(s *metrics.Sample) bool

// FixedSampleSize admits exactly n observations.
func FixedSampleSize(n int) Predicate {
	return func(s *metrics.Sample) bool {
		return s.Len() < n
	}
}

// ForDuration keeps sampling until the observed time totals at least d.
// At least one observation is always taken.
func ForDuration(d time.Duration) Predicate {
	return func(s *metrics.Sample) bool {
		return s.Len() == 0 || s.Total() < d
	}
}

// UntilStable samples at least minN times, then stops once the relative
// standard deviation (stddev/mean) is at most rsd, or after maxN
// observations. A maxN of zero means no upper bound.
func UntilStable(minN, maxN int, rsd float64) Predicate {
	if minN < 1 {
		minN = 1
	}
	return func(s *metrics.Sample) bool {
		n := s.Len()
		if n < minN {
			return true
		}
		if maxN > 0 && n >= maxN {
			return false
		}
		mean, _ := s.Mean()
		if mean == 0 {
			return false
		}
		stddev, _ := s.StdDev()
		return float64(stddev)/float64(mean) > rsd
	}
}

// All continues while every predicate wants more observations.
func All(preds ...Predicate) Predicate {
	return func(s *metrics.Sample) bool {
		for _, p := range preds {
			if !p(s) {
				return false
			}
		}
		return len(preds) > 0
	}
}

// Any continues while at least one predicate wants more observations.
func Any(preds ...Predicate) Predicate {
	return func(s *metrics.Sample) bool {
		for _, p := range preds {
			if p(s) {
				return true
			}
		}
		return false
	}
}
