package metrics

import (
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
	"github.com/aclements/go-moremath/stats"
)

// Summary condenses a Sample for reporting.
type Summary struct {
	Count  int           `json:"count" yaml:"count"`
	Mean   time.Duration `json:"-" yaml:"-"`
	StdDev time.Duration `json:"-" yaml:"-"`
	Min    time.Duration `json:"-" yaml:"-"`
	Max    time.Duration `json:"-" yaml:"-"`
	P50    time.Duration `json:"-" yaml:"-"`
	P90    time.Duration `json:"-" yaml:"-"`
	P99    time.Duration `json:"-" yaml:"-"`

	// JSON-friendly millisecond fields.
	MeanMs   float64 `json:"mean_ms" yaml:"mean_ms"`
	StdDevMs float64 `json:"stddev_ms" yaml:"stddev_ms"`
	MinMs    float64 `json:"min_ms" yaml:"min_ms"`
	MaxMs    float64 `json:"max_ms" yaml:"max_ms"`
	P50Ms    float64 `json:"p50_ms" yaml:"p50_ms"`
	P90Ms    float64 `json:"p90_ms" yaml:"p90_ms"`
	P99Ms    float64 `json:"p99_ms" yaml:"p99_ms"`
}

// Summarize computes the reporting summary of s.
func Summarize(s *Sample) (Summary, error) {
	mean, err := s.Mean()
	if err != nil {
		return Summary{}, err
	}
	stdev, _ := s.StdDev()
	least, _ := s.Min()
	most, _ := s.Max()

	// Track durations from 1ns up to one hour with 3 significant figures.
	h := hdrhistogram.New(1, int64(time.Hour), 3)
	for _, d := range s.observations {
		ns := int64(d)
		if ns < h.LowestTrackableValue() {
			ns = h.LowestTrackableValue()
		}
		if ns > h.HighestTrackableValue() {
			ns = h.HighestTrackableValue()
		}
		_ = h.RecordValue(ns)
	}
	quantile := func(q float64) time.Duration {
		// Bucket upper bounds can overshoot the exact extremes.
		return min(max(time.Duration(h.ValueAtQuantile(q)), least), most)
	}

	sum := Summary{
		Count:  s.Len(),
		Mean:   mean,
		StdDev: stdev,
		Min:    least,
		Max:    most,
		P50:    quantile(50),
		P90:    quantile(90),
		P99:    quantile(99),
	}
	sum.MeanMs = ms(sum.Mean)
	sum.StdDevMs = ms(sum.StdDev)
	sum.MinMs = ms(sum.Min)
	sum.MaxMs = ms(sum.Max)
	sum.P50Ms = ms(sum.P50)
	sum.P90Ms = ms(sum.P90)
	sum.P99Ms = ms(sum.P99)
	return sum, nil
}

// GeoMean returns the geometric mean of the given durations. Zero and
// negative durations are skipped; the result is zero if none remain.
func GeoMean(ds []time.Duration) time.Duration {
	xs := make([]float64, 0, len(ds))
	for _, d := range ds {
		if d > 0 {
			xs = append(xs, float64(d))
		}
	}
	if len(xs) == 0 {
		return 0
	}
	return time.Duration(stats.GeoMean(xs))
}

func ms(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
