package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
	// ErrDataQuality reports source data that breaks a roster invariant.
	ErrDataQuality = errors.New("data quality violation")
)
