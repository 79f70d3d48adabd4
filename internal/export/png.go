package export

import (
	"image"
	"image/color"
	"image/png"
	"io"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/collatzlab/shrub/internal/shrub"
	"github.com/collatzlab/shrub/internal/viz"
)

var background = color.RGBA{R: 0x0d, G: 0x0d, B: 0x0d, A: 0xff}

// PNG rasterizes the result through cam and encodes it to w. Opacity is
// approximated by blending stroke colors toward the background, the same
// compromise the terminal renderer makes.
func PNG(w io.Writer, res *shrub.Result, cam *viz.Camera, width, height int) error {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, background)
		}
	}

	fw, fh := float64(width), float64(height)
	for _, l := range orderedLines(res) {
		col := strokeColor(l)
		for i := 1; i < len(l.Points); i++ {
			x1, y1, _, v1 := cam.ProjectF(l.Points[i-1], fw, fh)
			x2, y2, _, v2 := cam.ProjectF(l.Points[i], fw, fh)
			if !v1 && !v2 {
				continue
			}
			drawLine(img, int(x1), int(y1), int(x2), int(y2), col)
		}
	}

	return png.Encode(w, img)
}

func strokeColor(l viz.PlotLine) color.RGBA {
	c, err := colorful.Hex(viz.DimHex(l.Hex, l.Opacity))
	if err != nil {
		return color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

// drawLine is Bresenham over the image raster, clipped by SetRGBA's own
// bounds check.
func drawLine(img *image.RGBA, x0, y0, x1, y1 int, col color.RGBA) {
	dx := abs(x1 - x0)
	dy := abs(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		if image.Pt(x0, y0).In(img.Rect) {
			img.SetRGBA(x0, y0, col)
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
