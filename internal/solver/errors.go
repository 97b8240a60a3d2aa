package solver

import "errors"

var (
	// ErrInvalidBracket means f(a) and f(b) do not have opposite signs.
	ErrInvalidBracket = errors.New("solver: f(a) and f(b) must have opposite signs")
	// ErrDegenerateSecant means the interpolating line through the two
	// current points is horizontal, so its root does not exist.
	ErrDegenerateSecant = errors.New("solver: division by zero, f(x0) == f(x1)")
	// ErrFlatBracket means regula falsi reached a bracket with f(a) == f(b),
	// which only happens when both are zero after rounding.
	ErrFlatBracket = errors.New("solver: division by zero, f(a) == f(b)")
	// ErrBadParams means tolerance, iteration budget or digit count is out of range.
	ErrBadParams = errors.New("solver: invalid parameters")
	// ErrStopped is returned by an Observer to abort a running solver.
	ErrStopped = errors.New("solver: stopped by observer")
)
