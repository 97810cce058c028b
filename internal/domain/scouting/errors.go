package scouting

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyFilterResult is returned when a selection is requested out of
	// an empty population.
	ErrEmptyFilterResult = errors.New("no players match the current filters")
	ErrNotFound          = errors.New("player label not found")
	ErrMissingMetric     = errors.New("metric missing")
	ErrUndefinedRange    = errors.New("normalization range undefined")
)

// MissingMetricError names the record and metric that had no value.
type MissingMetricError struct {
	Label  string
	Metric string
}

func (e *MissingMetricError) Error() string {
	return fmt.Sprintf("metric %q missing for %s", e.Metric, e.Label)
}

func (e *MissingMetricError) Unwrap() error {
	return ErrMissingMetric
}
