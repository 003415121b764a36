package metrics

import (
	"math"
	"math/bits"
	"time"
)

// Sample records the observations of a single timed experiment.
// A Sample is not safe for concurrent mutation.
type Sample struct {
	observations []time.Duration
}

// NewSample returns an empty sample.
func NewSample() *Sample {
	return &Sample{}
}

// Add appends one observation. Negative durations are recorded as zero.
func (s *Sample) Add(d time.Duration) {
	if d < 0 {
		d = 0
	}
	s.observations = append(s.observations, d)
}

// Len returns the number of observations.
func (s *Sample) Len() int {
	if s == nil {
		return 0
	}
	return len(s.observations)
}

// Observations returns a copy of the recorded durations in order.
func (s *Sample) Observations() []time.Duration {
	return append([]time.Duration(nil), s.observations...)
}

// Total returns the sum of all observations, saturating at the largest
// representable duration.
func (s *Sample) Total() time.Duration {
	hi, lo := s.sum()
	if hi != 0 || lo > math.MaxInt64 {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(lo)
}

// Mean returns the arithmetic mean of the observations, rounded to the
// nearest nanosecond.
func (s *Sample) Mean() (time.Duration, error) {
	n := s.Len()
	if n == 0 {
		return 0, ErrEmptySample
	}
	hi, lo := s.sum()
	// hi < n always holds: the mean never exceeds the largest observation.
	quo, rem := bits.Div64(hi, lo, uint64(n))
	if rem >= uint64(n)-rem {
		quo++
	}
	return time.Duration(quo), nil
}

// StdDev returns the population standard deviation (divided by N, not N-1)
// of the observations around their mean.
func (s *Sample) StdDev() (time.Duration, error) {
	n := s.Len()
	if n == 0 {
		return 0, ErrEmptySample
	}
	mean := s.exactMean()
	var acc float64
	for _, d := range s.observations {
		diff := float64(d) - mean
		acc += diff * diff
	}
	return time.Duration(math.Round(math.Sqrt(acc / float64(n)))), nil
}

// Min returns the smallest observation.
func (s *Sample) Min() (time.Duration, error) {
	if s.Len() == 0 {
		return 0, ErrEmptySample
	}
	least := s.observations[0]
	for _, d := range s.observations[1:] {
		if d < least {
			least = d
		}
	}
	return least, nil
}

// Max returns the largest observation.
func (s *Sample) Max() (time.Duration, error) {
	if s.Len() == 0 {
		return 0, ErrEmptySample
	}
	most := s.observations[0]
	for _, d := range s.observations[1:] {
		if d > most {
			most = d
		}
	}
	return most, nil
}

// sum adds the observations into a 128-bit accumulator.
func (s *Sample) sum() (hi, lo uint64) {
	if s == nil {
		return 0, 0
	}
	var carry uint64
	for _, d := range s.observations {
		lo, carry = bits.Add64(lo, uint64(d), 0)
		hi += carry
	}
	return hi, lo
}

// exactMean returns the unrounded mean in nanoseconds.
func (s *Sample) exactMean() float64 {
	n := uint64(s.Len())
	hi, lo := s.sum()
	quo, rem := bits.Div64(hi, lo, n)
	return float64(quo) + float64(rem)/float64(n)
}
