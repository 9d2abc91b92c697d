package fit

import "errors"

// Validation and lifecycle failures reported to the driving optimizer.
// All errors returned by this package wrap one of these sentinels so
// callers can branch with errors.Is.
var (
	// ErrInvalidDimension reports an array length mismatch at
	// construction or on a per-call parameter vector.
	ErrInvalidDimension = errors.New("invalid dimension")

	// ErrInvalidArgument reports non-finite input, a non-positive
	// standard deviation, or a zero scaling factor.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNumericOverflow reports a non-finite intermediate result.
	ErrNumericOverflow = errors.New("numeric overflow")

	// ErrNotEvaluated reports retrieval of back-calculated intensities
	// before the first objective evaluation.
	ErrNotEvaluated = errors.New("not evaluated")

	// ErrUseAfterDestroy reports any call on a destroyed session.
	ErrUseAfterDestroy = errors.New("use after destroy")
)
