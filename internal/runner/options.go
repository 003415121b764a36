package runner

import (
	"golang.org/x/time/rate"
)

// Options configure a Sampler.
type Options struct {
	TrialRate      float64                               // trials per second (0 means unpaced)
	LimiterFactory func(perSecond float64) *rate.Limiter // optional injection for tests
}

func (o *Options) normalize() {
	if o.TrialRate < 0 {
		o.TrialRate = 0
	}
	if o.LimiterFactory == nil {
		o.LimiterFactory = func(perSecond float64) *rate.Limiter {
			if perSecond <= 0 {
				return rate.NewLimiter(rate.Inf, 0)
			}
			// Burst of one keeps consecutive trials evenly spaced.
			return rate.NewLimiter(rate.Limit(perSecond), 1)
		}
	}
}
