package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrMissingReference      = errors.New("reference table missing")
	ErrSinkFailed            = errors.New("result sink failed")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
