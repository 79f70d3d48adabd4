package shrub

import (
	"context"
	"errors"
	"testing"

	"github.com/collatzlab/shrub/internal/collatz"
	"github.com/collatzlab/shrub/internal/sample"
	"github.com/collatzlab/shrub/internal/turtle"
)

func smallConfig() Config {
	cfg := DefaultConfig()
	cfg.Count = 10
	cfg.MaxStart = 100
	cfg.Hero = 27
	return cfg
}

func TestGrowBasics(t *testing.T) {
	res, err := Grow(context.Background(), smallConfig())
	if err != nil {
		t.Fatal(err)
	}

	if len(res.Lines) < 10 || len(res.Lines) > 11 {
		t.Fatalf("got %d lines, want 10 or 11", len(res.Lines))
	}
	for _, l := range res.Lines {
		if len(l.Trajectory) == 0 {
			t.Fatalf("start %d has empty trajectory", l.Start)
		}
		if l.Trajectory[0] != (turtle.Point{}) {
			t.Errorf("start %d does not begin at origin", l.Start)
		}
	}
}

func TestGrowHeroLast(t *testing.T) {
	res, err := Grow(context.Background(), smallConfig())
	if err != nil {
		t.Fatal(err)
	}

	last := res.Lines[len(res.Lines)-1]
	if last.Start != 27 {
		t.Fatalf("last line start %d, want hero 27", last.Start)
	}
	if !last.Style.Hero {
		t.Error("hero line missing hero style")
	}
	for _, l := range res.Lines[:len(res.Lines)-1] {
		if l.Style.Hero {
			t.Errorf("non-final line %d carries hero style", l.Start)
		}
	}
}

func TestGrowDefaultHeroes(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.HeroValue() != HeroBinary {
		t.Errorf("binary hero %d, want %d", cfg.HeroValue(), HeroBinary)
	}
	cfg.Rule = collatz.RuleTernary
	if cfg.HeroValue() != HeroTernary {
		t.Errorf("ternary hero %d, want %d", cfg.HeroValue(), HeroTernary)
	}
}

func TestGrowDeterministic(t *testing.T) {
	cfg := smallConfig()
	a, err := Grow(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Grow(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}

	if len(a.Lines) != len(b.Lines) {
		t.Fatalf("line counts differ: %d vs %d", len(a.Lines), len(b.Lines))
	}
	for i := range a.Lines {
		if a.Lines[i].Start != b.Lines[i].Start {
			t.Fatalf("line %d start differs: %d vs %d", i, a.Lines[i].Start, b.Lines[i].Start)
		}
		if len(a.Lines[i].Trajectory) != len(b.Lines[i].Trajectory) {
			t.Fatalf("line %d trajectory length differs", i)
		}
	}
}

func TestGrowParallelMatchesSerial(t *testing.T) {
	cfg := smallConfig()
	cfg.Workers = 1
	serial, err := Grow(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}

	cfg.Workers = 8
	parallel, err := Grow(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}

	for i := range serial.Lines {
		if serial.Lines[i].Start != parallel.Lines[i].Start {
			t.Fatalf("line %d start differs between worker counts", i)
		}
		for j, p := range serial.Lines[i].Trajectory {
			if parallel.Lines[i].Trajectory[j] != p {
				t.Fatalf("line %d point %d differs between worker counts", i, j)
			}
		}
	}
}

func TestGrowErrors(t *testing.T) {
	cfg := smallConfig()
	cfg.Rule = "quinary"
	if _, err := Grow(context.Background(), cfg); !errors.Is(err, collatz.ErrInvalidRule) {
		t.Errorf("expected ErrInvalidRule, got %v", err)
	}

	cfg = smallConfig()
	cfg.MaxStart = 2
	if _, err := Grow(context.Background(), cfg); !errors.Is(err, sample.ErrInvalidRange) {
		t.Errorf("expected ErrInvalidRange, got %v", err)
	}

	cfg = smallConfig()
	cfg.MaxIterations = 2
	if _, err := Grow(context.Background(), cfg); !errors.Is(err, collatz.ErrDivergenceSuspected) {
		t.Errorf("expected ErrDivergenceSuspected, got %v", err)
	}
}

func TestGrowCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Grow(ctx, smallConfig()); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestResultBounds(t *testing.T) {
	res, err := Grow(context.Background(), smallConfig())
	if err != nil {
		t.Fatal(err)
	}

	min, max := res.Bounds()
	if min.Z != 0 {
		t.Errorf("min z %v, want 0 (trajectories start at origin)", min.Z)
	}
	if max.Z <= 0 {
		t.Errorf("max z %v, want positive", max.Z)
	}
	if min.X > max.X || min.Y > max.Y {
		t.Error("bounds inverted")
	}

	empty := &Result{}
	emin, emax := empty.Bounds()
	if emin != (turtle.Point{}) || emax != (turtle.Point{}) {
		t.Error("empty result should have zero bounds")
	}
}
