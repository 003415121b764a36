package runner

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/torosent/rxbench/internal/metrics"
)

// Action is the operation timed by one trial.
type Action func() error

// Sampler runs the sampling loop. The zero value runs trials back to back.
type Sampler struct {
	limiter *rate.Limiter
}

// New builds a Sampler from options.
func New(opt Options) *Sampler {
	opt.normalize()
	return &Sampler{limiter: opt.LimiterFactory(opt.TrialRate)}
}

// Execute runs the sampling loop with a background context.
func (s *Sampler) Execute(p Predicate, action Action) (*metrics.Sample, error) {
	return s.ExecuteContext(context.Background(), p, action)
}

// ExecuteContext repeatedly times action while p reports that more
// observations are needed, and returns the collected sample. The predicate
// is checked before every iteration, including the first. Canceling ctx
// stops the loop before the next trial and returns the context error.
func (s *Sampler) ExecuteContext(ctx context.Context, p Predicate, action Action) (*metrics.Sample, error) {
	sample := metrics.NewSample()
	for p(sample) {
		if err := s.wait(ctx); err != nil {
			return sample, err
		}
		start := time.Now()
		err := action()
		elapsed := time.Since(start)
		if err != nil {
			return sample, err
		}
		sample.Add(elapsed)
	}
	return sample, nil
}

// Execute runs the sampling loop without pacing.
func Execute(p Predicate, action Action) (*metrics.Sample, error) {
	var s Sampler
	return s.Execute(p, action)
}

// wait blocks until the limiter admits the next trial.
func (s *Sampler) wait(ctx context.Context) error {
	if s == nil || s.limiter == nil || s.limiter.Limit() == rate.Inf {
		return ctx.Err()
	}
	return s.limiter.Wait(ctx)
}
