// Package collatz implements the integer recurrences behind the shrub:
// the classic binary Collatz map and an experimental ternary analogue.
//
// Both maps are pure functions over positive integers. The binary map is
// conjectured (and empirically observed) to reach 1 from every start; the
// ternary map has no such argument, so every iterating helper takes a
// ceiling and reports suspected divergence instead of looping forever.
package collatz

import "fmt"

// Rule selects the recurrence variant.
type Rule string

const (
	// RuleBinary is the classic Collatz map: n/2 for even n, 3n+1 for odd.
	RuleBinary Rule = "binary"

	// RuleTernary classifies n mod 3:
	//
	//	r=0: n/3
	//	r=1: (4n+1)/3
	//	r=2: (2n+1)/3
	//
	// Division truncates throughout; neither non-zero branch divides
	// exactly. The residue-2 branch uses (2n+1)/3 rather than the
	// (2n+2)/3 variant: the latter is exact but fixes 2 and cycles
	// {4,5}, so almost no orbit would ever reach 1 under it.
	RuleTernary Rule = "ternary"
)

// ParseRule validates a rule tag.
func ParseRule(s string) (Rule, error) {
	switch Rule(s) {
	case RuleBinary, RuleTernary:
		return Rule(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidRule, s)
}

// Valid reports whether r is a recognized rule tag.
func (r Rule) Valid() bool {
	return r == RuleBinary || r == RuleTernary
}

// Modulus returns the residue-class modulus of the rule (2 or 3).
func (r Rule) Modulus() int64 {
	if r == RuleTernary {
		return 3
	}
	return 2
}

// Advance returns the successor of n under the rule. It is pure and
// side-effect-free; the only failure mode is an unrecognized rule.
// n must be a positive integer; n == 1 is a fixed point of neither map
// and callers treat it as already terminated.
func Advance(n int64, rule Rule) (int64, error) {
	switch rule {
	case RuleBinary:
		if n%2 == 0 {
			return n / 2, nil
		}
		return 3*n + 1, nil
	case RuleTernary:
		switch n % 3 {
		case 0:
			return n / 3, nil
		case 1:
			return (4*n + 1) / 3, nil
		default:
			return (2*n + 1) / 3, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidRule, rule)
}

// Orbit returns the full value sequence from n down to 1, inclusive of both
// endpoints. ceiling bounds the number of iterations; exceeding it returns
// ErrDivergenceSuspected. A ceiling <= 0 means no bound, which is only safe
// for the binary rule on starts known to converge.
func Orbit(n int64, rule Rule, ceiling int) ([]int64, error) {
	if !rule.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRule, rule)
	}
	vals := []int64{n}
	for n != 1 {
		if ceiling > 0 && len(vals) > ceiling {
			return nil, fmt.Errorf("%w: start %d exceeded %d iterations", ErrDivergenceSuspected, vals[0], ceiling)
		}
		next, err := Advance(n, rule)
		if err != nil {
			return nil, err
		}
		vals = append(vals, next)
		n = next
	}
	return vals, nil
}

// StoppingTime returns the number of iterations for n to reach 1.
func StoppingTime(n int64, rule Rule, ceiling int) (int, error) {
	orbit, err := Orbit(n, rule, ceiling)
	if err != nil {
		return 0, err
	}
	return len(orbit) - 1, nil
}
