package routing

import "errors"

// Fatal argument errors. These are surfaced before any per-artist work
// starts; per-record data problems are recovered locally by dropping the
// offending stop or artist instead.
var (
	ErrInvalidCoordinate    = errors.New("invalid coordinate")
	ErrInvalidDateRange     = errors.New("invalid date range")
	ErrInvalidConfiguration = errors.New("invalid configuration")
)
