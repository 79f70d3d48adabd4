package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/collatzlab/shrub/internal/collatz"
	"github.com/collatzlab/shrub/internal/shrub"
	"github.com/collatzlab/shrub/internal/turtle"
)

const (
	DefaultCount         = 1000
	DefaultMaxStart      = 1000000
	DefaultLeftDeg       = 8.65
	DefaultRightDeg      = 16.0
	DefaultHeadingDeg    = -75.0
	DefaultVerticalStep  = 0.15
	DefaultSeed          = 42
	DefaultMaxIterations = 100000
)

// Config is the on-disk run configuration. Zero values for Hero and Workers
// mean "pick for me" (the rule's default hero, GOMAXPROCS workers).
type Config struct {
	Count          int     `yaml:"n_starts"`
	MaxStart       int64   `yaml:"max_start"`
	Rule           string  `yaml:"rule"`
	LeftDeg        float64 `yaml:"left_angle_deg"`
	RightDeg       float64 `yaml:"right_angle_deg"`
	HeadingDeg     float64 `yaml:"initial_heading_deg"`
	VerticalStep   float64 `yaml:"vertical_step"`
	VerticalPolicy string  `yaml:"vertical_policy"`
	Seed           int64   `yaml:"seed"`
	MaxIterations  int     `yaml:"max_iterations"`
	Hero           int64   `yaml:"hero"`
	Workers        int     `yaml:"workers"`
}

func Default() *Config {
	return &Config{
		Count:          DefaultCount,
		MaxStart:       DefaultMaxStart,
		Rule:           "binary",
		LeftDeg:        DefaultLeftDeg,
		RightDeg:       DefaultRightDeg,
		HeadingDeg:     DefaultHeadingDeg,
		VerticalStep:   DefaultVerticalStep,
		VerticalPolicy: "fixed",
		Seed:           DefaultSeed,
		MaxIterations:  DefaultMaxIterations,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ToRun validates the tag fields and converts to a pipeline config.
func (c *Config) ToRun() (shrub.Config, error) {
	rule, err := collatz.ParseRule(c.Rule)
	if err != nil {
		return shrub.Config{}, err
	}
	policy, err := turtle.ParseVerticalPolicy(c.VerticalPolicy)
	if err != nil {
		return shrub.Config{}, err
	}

	return shrub.Config{
		Count:          c.Count,
		MaxStart:       c.MaxStart,
		Rule:           rule,
		LeftDeg:        c.LeftDeg,
		RightDeg:       c.RightDeg,
		HeadingDeg:     c.HeadingDeg,
		VerticalStep:   c.VerticalStep,
		VerticalPolicy: policy,
		Seed:           c.Seed,
		MaxIterations:  c.MaxIterations,
		Hero:           c.Hero,
		Workers:        c.Workers,
	}, nil
}
