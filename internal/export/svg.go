// Package export writes rendered shrubs to SVG and PNG files.
package export

import (
	"fmt"
	"strings"

	"github.com/collatzlab/shrub/internal/shrub"
	"github.com/collatzlab/shrub/internal/viz"
)

// SVG projects the result through cam and emits a width x height SVG
// document of stroked polylines. Regular lines come first, the hero last,
// matching the on-screen draw order.
func SVG(res *shrub.Result, cam *viz.Camera, width, height int) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0d0d0d"/>
`, width, height, width, height))

	for _, l := range orderedLines(res) {
		path := polylinePoints(l, cam, float64(width), float64(height))
		if path == "" {
			continue
		}
		sb.WriteString(fmt.Sprintf(
			`<polyline points="%s" fill="none" stroke="%s" stroke-opacity="%.3f" stroke-width="%.2f"/>`+"\n",
			path, l.Hex, l.Opacity, l.Width))
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}

func orderedLines(res *shrub.Result) []viz.PlotLine {
	lines := viz.FromResult(res)
	ordered := make([]viz.PlotLine, 0, len(lines))
	for _, l := range lines {
		if !l.Hero {
			ordered = append(ordered, l)
		}
	}
	for _, l := range lines {
		if l.Hero {
			ordered = append(ordered, l)
		}
	}
	return ordered
}

func polylinePoints(l viz.PlotLine, cam *viz.Camera, w, h float64) string {
	var sb strings.Builder
	for _, p := range l.Points {
		x, y, _, _ := cam.ProjectF(p, w, h)
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(fmt.Sprintf("%.2f,%.2f", x, y))
	}
	return sb.String()
}
