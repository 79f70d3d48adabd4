package collatz

import "errors"

// Domain errors for recurrence operations.
var (
	// ErrInvalidRule indicates an unrecognized rule tag.
	ErrInvalidRule = errors.New("collatz: invalid rule")

	// ErrDivergenceSuspected indicates an orbit exceeded its iteration
	// ceiling without reaching 1. Convergence is a hypothesis, not a
	// guarantee, particularly under the ternary rule.
	ErrDivergenceSuspected = errors.New("collatz: divergence suspected")
)
