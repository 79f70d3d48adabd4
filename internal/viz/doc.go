// Package viz renders shrub results in the terminal.
//
// Rendering happens in two stages: [FromResult] normalizes trajectories
// into a unit cube with resolved colors, then [RenderShrub] projects them
// through a [Camera] onto a Braille [Canvas] using a painter's algorithm,
// with the hero trajectory drawn last.
package viz
