package analysis

import "errors"

var (
	ErrLoadJob     = errors.New("analysis: unable to load job")
	ErrInvalidJob  = errors.New("analysis: invalid job")
	ErrJobPanicked = errors.New("analysis: job panicked")
	ErrCache       = errors.New("analysis: result cache failure")
)
