// Package turtle maps Collatz-type orbits to 3-D polylines.
//
// Each iteration of the recurrence turns a planar heading by an angle chosen
// from the current value's residue class, advances by a step that shrinks
// like 1/ln(next+1), and climbs the z axis. The height of a finished path
// therefore encodes the stopping time of its starting integer.
package turtle

import (
	"errors"
	"fmt"
	"math"

	"github.com/collatzlab/shrub/internal/collatz"
)

// Point is a position in 3-D space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Trajectory is an ordered polyline, one point per iteration plus the
// origin. It is immutable once returned and owned by the caller.
type Trajectory []Point

// VerticalPolicy selects how the z coordinate rises.
type VerticalPolicy string

const (
	// VerticalFixed rises a constant step per iteration, so total height
	// encodes stopping time directly.
	VerticalFixed VerticalPolicy = "fixed"

	// VerticalProportional rises with the planar step length, giving the
	// twisted-bonsai look of the older renderings.
	VerticalProportional VerticalPolicy = "proportional"
)

// ErrInvalidPolicy indicates an unrecognized vertical policy tag.
var ErrInvalidPolicy = errors.New("turtle: invalid vertical policy")

// ParseVerticalPolicy validates a policy tag.
func ParseVerticalPolicy(s string) (VerticalPolicy, error) {
	switch VerticalPolicy(s) {
	case VerticalFixed, VerticalProportional:
		return VerticalPolicy(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidPolicy, s)
}

// Params configures trajectory generation. Angles are radians.
type Params struct {
	Rule           collatz.Rule
	LeftAngle      float64 // heading increment for even / 0 mod 3 values
	RightAngle     float64 // heading decrement for odd / 1 mod 3 values
	InitialHeading float64
	VerticalStep   float64 // fixed: rise per iteration; proportional: scale on step length
	VerticalPolicy VerticalPolicy
	MaxIterations  int // iteration ceiling; <= 0 disables the bound
}

// DefaultParams returns the generation parameters of the reference
// rendering: 8.65 degree left turns, 16 degree right turns, a -75 degree
// initial heading, and a fixed 0.15 rise per iteration.
func DefaultParams(rule collatz.Rule) Params {
	return Params{
		Rule:           rule,
		LeftAngle:      8.65 * math.Pi / 180,
		RightAngle:     16.0 * math.Pi / 180,
		InitialHeading: -75.0 * math.Pi / 180,
		VerticalStep:   0.15,
		VerticalPolicy: VerticalFixed,
		MaxIterations:  100000,
	}
}

// Generate computes the 3-D turtle path of start under p. The result always
// begins at the origin; start == 1 is already terminal and yields the
// one-point trajectory. Generation is deterministic and side-effect-free.
//
// Exceeding p.MaxIterations returns collatz.ErrDivergenceSuspected wrapped
// with the start value; the partial path is discarded since the error is
// terminal for the run that requested it.
func Generate(start int64, p Params) (Trajectory, error) {
	if start < 1 {
		return nil, fmt.Errorf("turtle: start must be >= 1, got %d", start)
	}
	if !p.Rule.Valid() {
		return nil, fmt.Errorf("%w: %q", collatz.ErrInvalidRule, p.Rule)
	}
	if _, err := ParseVerticalPolicy(string(p.VerticalPolicy)); err != nil {
		return nil, err
	}

	traj := make(Trajectory, 1, 64)
	traj[0] = Point{}

	heading := p.InitialHeading
	var x, y, z float64
	n := start
	iter := 0

	for n != 1 {
		if p.MaxIterations > 0 && iter >= p.MaxIterations {
			return nil, fmt.Errorf("%w: start %d exceeded %d iterations",
				collatz.ErrDivergenceSuspected, start, p.MaxIterations)
		}

		next, err := collatz.Advance(n, p.Rule)
		if err != nil {
			return nil, err
		}

		// Turn by the CURRENT value's residue class, not the successor's.
		heading += turn(n, p)

		step := 1.0 / math.Log(float64(next)+1.0)
		x += step * math.Cos(heading)
		y += step * math.Sin(heading)

		iter++
		switch p.VerticalPolicy {
		case VerticalProportional:
			z += step * p.VerticalStep
		default:
			z = float64(iter) * p.VerticalStep
		}

		traj = append(traj, Point{X: x, Y: y, Z: z})
		n = next
	}

	return traj, nil
}

func turn(n int64, p Params) float64 {
	if p.Rule == collatz.RuleTernary {
		switch n % 3 {
		case 0:
			return p.LeftAngle
		case 1:
			return -p.RightAngle
		default:
			return 0.5 * p.LeftAngle
		}
	}
	if n%2 == 0 {
		return p.LeftAngle
	}
	return -p.RightAngle
}
