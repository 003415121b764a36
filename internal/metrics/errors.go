package metrics

import "errors"

var (
	// ErrEmptySample is returned when statistics are requested from a sample
	// with no observations.
	ErrEmptySample = errors.New("sample has no observations")

	// ErrInvalidArgument is returned when a label tuple does not fit a metric:
	// wrong label count or a tuple that is already present.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound is returned when a label tuple has no cell in a metric.
	ErrNotFound = errors.New("label tuple not found")
)
