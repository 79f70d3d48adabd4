package config

import "sort"

// Presets are named renderings recovered from the reference scripts: the
// time-stacked poster, the proportional-rise bonsai, and the experimental
// ternary shrub.
var Presets = map[string]*Config{
	"poster": {
		Count: 3000, MaxStart: 1000000, Rule: "binary",
		LeftDeg: 13.17, RightDeg: 16.0, HeadingDeg: -75.0,
		VerticalStep: 0.15, VerticalPolicy: "fixed",
		Seed: 42, MaxIterations: DefaultMaxIterations,
	},
	"bonsai": {
		Count: 3000, MaxStart: 1000000, Rule: "binary",
		LeftDeg: 8.65, RightDeg: 16.0, HeadingDeg: -75.0,
		VerticalStep: 0.6, VerticalPolicy: "proportional",
		Seed: 42, MaxIterations: DefaultMaxIterations, Hero: 27,
	},
	"ternary": {
		Count: 1000, MaxStart: 200000, Rule: "ternary",
		LeftDeg: 8.65, RightDeg: 16.0, HeadingDeg: -75.0,
		VerticalStep: 0.15, VerticalPolicy: "fixed",
		Seed: 42, MaxIterations: DefaultMaxIterations,
	},
	"wisp": {
		Count: 5000, MaxStart: 1000000, Rule: "binary",
		LeftDeg: 5.65, RightDeg: 8.0, HeadingDeg: 0.0,
		VerticalStep: 0.1, VerticalPolicy: "fixed",
		Seed: 42, MaxIterations: DefaultMaxIterations,
	},
}

func GetPreset(name string) *Config {
	return Presets[name]
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
