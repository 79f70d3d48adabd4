// Package style assigns rendering attributes to trajectories.
//
// A trajectory's hue is a pure function of its starting integer and the
// sample bounds; opacity shrinks as samples pile up so that dense plots
// stay legible instead of saturating.
package style

import (
	colorful "github.com/lucasb-eyer/go-colorful"
)

const (
	// Opacity and width follow the reference rendering's legibility laws:
	// alpha and stroke weight fall off inversely with sample count.
	opacityScale = 250.0
	minOpacity   = 0.04
	maxOpacity   = 0.8

	widthScale = 200.0
	minWidth   = 0.4
	maxWidth   = 2.5

	heroOpacity = 0.95
	heroWidth   = 2.2
	heroHex     = "#1a1a1a"

	// hueSpanDeg keeps the two ends of the scale visually distinct
	// instead of wrapping red back onto red.
	hueSpanDeg = 320.0
)

// Style holds per-trajectory rendering attributes. Hue is normalized to
// [0, 1]; consumers map it onto their color scale via Hex.
type Style struct {
	Hue     float64 `json:"hue"`
	Opacity float64 `json:"opacity"`
	Width   float64 `json:"width"`
	Hero    bool    `json:"hero,omitempty"`
}

// For derives the style of a trajectory from its starting integer, the
// exclusive sampling bound, and the total number of trajectories drawn.
func For(value, maxStart int64, sampleCount int) Style {
	hue := 0.0
	if maxStart > 2 {
		hue = float64(value-2) / float64(maxStart-2)
	}
	if hue < 0 {
		hue = 0
	}
	if hue > 1 {
		hue = 1
	}

	if sampleCount < 1 {
		sampleCount = 1
	}
	return Style{
		Hue:     hue,
		Opacity: clamp(opacityScale/float64(sampleCount), minOpacity, maxOpacity),
		Width:   clamp(widthScale/float64(sampleCount), minWidth, maxWidth),
	}
}

// Hero returns the emphasis style of the reference trajectory: heavier,
// nearly opaque, neutral-colored, intended to be drawn last.
func Hero() Style {
	return Style{Opacity: heroOpacity, Width: heroWidth, Hero: true}
}

// Hex renders the style's hue as an #rrggbb color. The hero style maps to
// a neutral near-black regardless of hue.
func (s Style) Hex() string {
	if s.Hero {
		return heroHex
	}
	return colorful.Hsv(s.Hue*hueSpanDeg, 0.85, 0.95).Hex()
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
