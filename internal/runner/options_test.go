package runner

import (
	"testing"

	"golang.org/x/time/rate"
)

func TestOptionsNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    Options
		validate func(*testing.T, Options)
	}{
		{
			name:  "defaults",
			input: Options{},
			validate: func(t *testing.T, o Options) {
				if o.TrialRate != 0 {
					t.Errorf("TrialRate = %v, want 0", o.TrialRate)
				}
				if o.LimiterFactory == nil {
					t.Fatal("LimiterFactory should not be nil")
				}
				if l := o.LimiterFactory(0); l.Limit() != rate.Inf {
					t.Errorf("unpaced limiter limit = %v, want Inf", l.Limit())
				}
			},
		},
		{
			name:  "negative rate clamped",
			input: Options{TrialRate: -5},
			validate: func(t *testing.T, o Options) {
				if o.TrialRate != 0 {
					t.Errorf("TrialRate = %v, want 0", o.TrialRate)
				}
			},
		},
		{
			name:  "paced limiter",
			input: Options{TrialRate: 50},
			validate: func(t *testing.T, o Options) {
				l := o.LimiterFactory(o.TrialRate)
				if l.Limit() != rate.Limit(50) {
					t.Errorf("Limit = %v, want 50", l.Limit())
				}
				if l.Burst() != 1 {
					t.Errorf("Burst = %d, want 1", l.Burst())
				}
			},
		},
		{
			name: "custom factory kept",
			input: Options{LimiterFactory: func(float64) *rate.Limiter {
				return rate.NewLimiter(7, 3)
			}},
			validate: func(t *testing.T, o Options) {
				if l := o.LimiterFactory(100); l.Burst() != 3 {
					t.Errorf("custom factory replaced")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opt := tt.input
			opt.normalize()
			tt.validate(t, opt)
		})
	}
}
