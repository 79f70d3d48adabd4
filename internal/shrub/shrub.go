// Package shrub orchestrates the full pipeline: sample starting integers,
// grow a 3-D turtle trajectory per start, and attach rendering styles.
//
// Trajectory generation is pure and independent per start, so Grow fans the
// work out across goroutines with per-index result slots and no shared
// mutable state. Render order is the only ordering that matters: the hero
// trajectory always comes last so it draws on top.
package shrub

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"sync"

	"github.com/collatzlab/shrub/internal/collatz"
	"github.com/collatzlab/shrub/internal/sample"
	"github.com/collatzlab/shrub/internal/style"
	"github.com/collatzlab/shrub/internal/turtle"
)

// Heroes of the two rules: the longest stopping time below one million for
// the binary map, and the traditional showcase start for the ternary one.
const (
	HeroBinary  = 837799
	HeroTernary = 91
)

// Config holds every knob of a run. Angles are degrees, matching the
// user-facing surfaces; they are converted to radians at generation time.
type Config struct {
	Count          int
	MaxStart       int64
	Rule           collatz.Rule
	LeftDeg        float64
	RightDeg       float64
	HeadingDeg     float64
	VerticalStep   float64
	VerticalPolicy turtle.VerticalPolicy
	Seed           int64
	MaxIterations  int
	Hero           int64 // 0 selects the rule's default hero
	Workers        int   // <= 0 selects GOMAXPROCS
}

// DefaultConfig mirrors the reference rendering's constants.
func DefaultConfig() Config {
	return Config{
		Count:          1000,
		MaxStart:       1000000,
		Rule:           collatz.RuleBinary,
		LeftDeg:        8.65,
		RightDeg:       16.0,
		HeadingDeg:     -75.0,
		VerticalStep:   0.15,
		VerticalPolicy: turtle.VerticalFixed,
		Seed:           42,
		MaxIterations:  100000,
	}
}

// HeroValue resolves the reference start for the run.
func (c Config) HeroValue() int64 {
	if c.Hero != 0 {
		return c.Hero
	}
	if c.Rule == collatz.RuleTernary {
		return HeroTernary
	}
	return HeroBinary
}

func (c Config) params() turtle.Params {
	return turtle.Params{
		Rule:           c.Rule,
		LeftAngle:      c.LeftDeg * math.Pi / 180,
		RightAngle:     c.RightDeg * math.Pi / 180,
		InitialHeading: c.HeadingDeg * math.Pi / 180,
		VerticalStep:   c.VerticalStep,
		VerticalPolicy: c.VerticalPolicy,
		MaxIterations:  c.MaxIterations,
	}
}

// Line pairs one trajectory with its rendering attributes.
type Line struct {
	Start      int64             `json:"start"`
	Trajectory turtle.Trajectory `json:"points"`
	Style      style.Style       `json:"style"`
}

// Result is the ordered collection a rendering surface consumes. The hero
// line, when present, is last.
type Result struct {
	Rule  collatz.Rule `json:"rule"`
	Lines []Line       `json:"lines"`
}

// Bounds returns the axis-aligned bounding box over every point of every
// line, for fitting a camera or viewport.
func (r *Result) Bounds() (min, max turtle.Point) {
	min = turtle.Point{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)}
	max = turtle.Point{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)}
	for _, l := range r.Lines {
		for _, p := range l.Trajectory {
			min.X = math.Min(min.X, p.X)
			min.Y = math.Min(min.Y, p.Y)
			min.Z = math.Min(min.Z, p.Z)
			max.X = math.Max(max.X, p.X)
			max.Y = math.Max(max.Y, p.Y)
			max.Z = math.Max(max.Z, p.Z)
		}
	}
	if len(r.Lines) == 0 {
		min, max = turtle.Point{}, turtle.Point{}
	}
	return min, max
}

// Grow runs the whole pipeline for cfg. Errors are terminal for the run:
// the computation is pure, so retrying identical inputs reproduces the
// identical failure. Cancellation via ctx stops workers between
// trajectories.
func Grow(ctx context.Context, cfg Config) (*Result, error) {
	if !cfg.Rule.Valid() {
		return nil, fmt.Errorf("%w: %q", collatz.ErrInvalidRule, cfg.Rule)
	}

	starts, err := sample.Draw(cfg.Count, cfg.MaxStart, cfg.Seed, cfg.HeroValue())
	if err != nil {
		return nil, err
	}

	params := cfg.params()
	trajs := make([]turtle.Trajectory, len(starts))
	errs := make([]error, len(starts))

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(starts) {
		workers = len(starts)
	}
	if workers < 1 {
		workers = 1
	}

	var wg sync.WaitGroup
	chunk := (len(starts) + workers - 1) / workers
	for w := 0; w < workers; w++ {
		lo, hi := w*chunk, (w+1)*chunk
		if hi > len(starts) {
			hi = len(starts)
		}
		if lo >= hi {
			break
		}

		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				if err := ctx.Err(); err != nil {
					errs[i] = err
					return
				}
				trajs[i], errs[i] = turtle.Generate(starts[i], params)
			}
		}(lo, hi)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	hero := cfg.HeroValue()
	lines := make([]Line, 0, len(starts))
	var heroLine *Line
	for i, start := range starts {
		l := Line{Start: start, Trajectory: trajs[i]}
		if start == hero {
			l.Style = style.Hero()
			heroLine = &l
			continue
		}
		l.Style = style.For(start, cfg.MaxStart, len(starts))
		lines = append(lines, l)
	}
	if heroLine != nil {
		lines = append(lines, *heroLine)
	}

	return &Result{Rule: cfg.Rule, Lines: lines}, nil
}
