// Package runner provides the sampling loop that drives every timed trial
// of a benchmark run.
//
// The loop decouples how long to keep sampling from what is being measured:
// a [Predicate] inspects the observations gathered so far and decides
// whether another trial is needed, and an [Action] is the operation being
// timed.
//
// # Basic Usage
//
//	sample, err := runner.Execute(runner.FixedSampleSize(5), func() error {
//		return matcher.FindAllUTF8(input)
//	})
//
// The predicate is evaluated before each iteration, including the first,
// so a predicate that is false from the start yields an empty sample.
//
// # Predicates
//
//   - [FixedSampleSize]: exactly n observations
//   - [ForDuration]: keep sampling until the observed time reaches a budget
//   - [UntilStable]: stop once the relative standard deviation settles
//   - [All], [Any]: combine predicates
//
// # Pacing
//
// A [Sampler] built with [Options.TrialRate] spaces trials out using a
// token bucket. The wait happens between trials and is never part of an
// observation. [Sampler.ExecuteContext] waits on the context too, so a
// canceled run stops before its next trial:
//
//	s := runner.New(runner.Options{TrialRate: 20})
//	sample, err := s.ExecuteContext(ctx, runner.FixedSampleSize(100), action)
//
// # Error Handling
//
// An action error stops the loop immediately and is returned as-is, so a
// failing engine aborts the surrounding run.
package runner
