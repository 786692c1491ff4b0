package screen

import "errors"

var (
	// ErrInvalidArgument reports a caller contract violation.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrBus reports a failed write to the display. The underlying bus error
	// is wrapped alongside it.
	ErrBus = errors.New("display bus")
)
