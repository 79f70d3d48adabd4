// Package sample draws reproducible sets of starting integers.
package sample

import (
	"errors"
	"fmt"
	"math/rand"
)

// ErrInvalidRange indicates a degenerate sampling bound (maxStart <= 2
// leaves no population to draw from).
var ErrInvalidRange = errors.New("sample: invalid range")

// Draw selects count distinct integers uniformly without replacement from
// [2, maxStart) using a PRNG seeded with seed, then appends hero when it is
// inside the range and not already present. The output ordering is a pure
// function of the inputs, so repeated calls are identical.
//
// A count larger than the population is clamped rather than rejected; the
// returned set may exceed count by one when the hero is appended.
func Draw(count int, maxStart, seed, hero int64) ([]int64, error) {
	if maxStart <= 2 {
		return nil, fmt.Errorf("%w: max start %d leaves an empty population", ErrInvalidRange, maxStart)
	}

	population := maxStart - 2
	n := int64(count)
	if n < 0 {
		n = 0
	}
	if n > population {
		n = population
	}

	// Virtual Fisher-Yates over [0, population): only touched slots are
	// materialized, so a handful of draws from a huge range stays cheap.
	rng := rand.New(rand.NewSource(seed))
	swapped := make(map[int64]int64, n)
	at := func(i int64) int64 {
		if v, ok := swapped[i]; ok {
			return v
		}
		return i
	}

	starts := make([]int64, 0, n+1)
	for i := int64(0); i < n; i++ {
		j := i + rng.Int63n(population-i)
		starts = append(starts, 2+at(j))
		swapped[j] = at(i)
	}

	if hero >= 2 && hero < maxStart && !contains(starts, hero) {
		starts = append(starts, hero)
	}

	return starts, nil
}

func contains(vals []int64, v int64) bool {
	for _, x := range vals {
		if x == v {
			return true
		}
	}
	return false
}
