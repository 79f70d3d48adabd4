package turtle

import (
	"errors"
	"math"
	"testing"

	"github.com/collatzlab/shrub/internal/collatz"
)

func TestGenerateTerminalStart(t *testing.T) {
	traj, err := Generate(1, DefaultParams(collatz.RuleBinary))
	if err != nil {
		t.Fatal(err)
	}
	if len(traj) != 1 {
		t.Fatalf("trajectory length %d, want 1", len(traj))
	}
	if traj[0] != (Point{}) {
		t.Errorf("terminal trajectory should be the origin, got %+v", traj[0])
	}
}

func TestGenerateStartsAtOrigin(t *testing.T) {
	for _, start := range []int64{2, 6, 27, 97} {
		traj, err := Generate(start, DefaultParams(collatz.RuleBinary))
		if err != nil {
			t.Fatalf("Generate(%d): %v", start, err)
		}
		if traj[0] != (Point{}) {
			t.Errorf("Generate(%d) first point %+v, want origin", start, traj[0])
		}
	}
}

func TestGenerateFixedPolicyHeight(t *testing.T) {
	// 0.25 is exactly representable, so consecutive z differences must be
	// bit-exact under the fixed policy.
	p := DefaultParams(collatz.RuleBinary)
	p.VerticalStep = 0.25

	for _, start := range []int64{2, 6, 27} {
		stop, err := collatz.StoppingTime(start, collatz.RuleBinary, 10000)
		if err != nil {
			t.Fatal(err)
		}

		traj, err := Generate(start, p)
		if err != nil {
			t.Fatal(err)
		}

		if len(traj) != stop+1 {
			t.Errorf("Generate(%d) length %d, want stopping time + 1 = %d", start, len(traj), stop+1)
		}
		for i := 1; i < len(traj); i++ {
			if diff := traj[i].Z - traj[i-1].Z; diff != 0.25 {
				t.Fatalf("Generate(%d) z step %d = %v, want exactly 0.25", start, i, diff)
			}
		}
	}
}

func TestGenerateProportionalPolicy(t *testing.T) {
	p := DefaultParams(collatz.RuleBinary)
	p.VerticalPolicy = VerticalProportional
	p.VerticalStep = 0.6

	traj, err := Generate(6, p)
	if err != nil {
		t.Fatal(err)
	}

	for i := 1; i < len(traj); i++ {
		rise := traj[i].Z - traj[i-1].Z
		if rise <= 0 {
			t.Fatalf("z must strictly increase, step %d rose %v", i, rise)
		}
		// Rise equals planar step length times the vertical scale.
		dx := traj[i].X - traj[i-1].X
		dy := traj[i].Y - traj[i-1].Y
		planar := math.Hypot(dx, dy)
		if math.Abs(rise-planar*0.6) > 1e-12 {
			t.Errorf("step %d rise %v, want %v", i, rise, planar*0.6)
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	p := DefaultParams(collatz.RuleBinary)
	a, err := Generate(27, p)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Generate(27, p)
	if err != nil {
		t.Fatal(err)
	}

	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("point %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestGenerateCeiling(t *testing.T) {
	p := DefaultParams(collatz.RuleBinary)
	p.MaxIterations = 5

	_, err := Generate(27, p)
	if !errors.Is(err, collatz.ErrDivergenceSuspected) {
		t.Errorf("expected ErrDivergenceSuspected, got %v", err)
	}
}

func TestGenerateInvalidInputs(t *testing.T) {
	p := DefaultParams(collatz.RuleBinary)

	if _, err := Generate(0, p); err == nil {
		t.Error("expected error for start 0")
	}

	p.Rule = "nonary"
	if _, err := Generate(6, p); !errors.Is(err, collatz.ErrInvalidRule) {
		t.Errorf("expected ErrInvalidRule, got %v", err)
	}

	p = DefaultParams(collatz.RuleBinary)
	p.VerticalPolicy = "sideways"
	if _, err := Generate(6, p); !errors.Is(err, ErrInvalidPolicy) {
		t.Errorf("expected ErrInvalidPolicy, got %v", err)
	}
}

func TestGenerateTernary(t *testing.T) {
	p := DefaultParams(collatz.RuleTernary)
	traj, err := Generate(6, p)
	if err != nil {
		t.Fatal(err)
	}
	// Orbit is 6 -> 2 -> 1, so two iterations plus the origin.
	if len(traj) != 3 {
		t.Fatalf("trajectory length %d, want 3", len(traj))
	}
}

func TestParseVerticalPolicy(t *testing.T) {
	for _, ok := range []string{"fixed", "proportional"} {
		if _, err := ParseVerticalPolicy(ok); err != nil {
			t.Errorf("ParseVerticalPolicy(%s): %v", ok, err)
		}
	}
	if _, err := ParseVerticalPolicy("diagonal"); !errors.Is(err, ErrInvalidPolicy) {
		t.Errorf("expected ErrInvalidPolicy, got %v", err)
	}
}
