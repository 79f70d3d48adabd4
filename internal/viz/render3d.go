package viz

import (
	"math"
	"sort"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/collatzlab/shrub/internal/shrub"
)

type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Sub(o Vec3) Vec3      { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// Camera manages projection of shrub space onto a 2-D surface.
type Camera struct {
	RotX, RotY, RotZ float64
	Zoom             float64
	Dist             float64
	Near             float64
}

// NewCamera returns the reference vantage: slightly elevated, rotated so
// the shrub's weave reads as depth.
func NewCamera() *Camera {
	return &Camera{
		RotX: -65 * math.Pi / 180,
		RotZ: -35 * math.Pi / 180,
		Zoom: 1.0,
		Dist: 4.0,
		Near: 0.1,
	}
}

func (c *Camera) RotateX(a float64) { c.RotX += a }
func (c *Camera) RotateY(a float64) { c.RotY += a }
func (c *Camera) RotateZ(a float64) { c.RotZ += a }
func (c *Camera) ZoomIn()           { c.Zoom = math.Min(10, c.Zoom*1.2) }
func (c *Camera) ZoomOut()          { c.Zoom = math.Max(0.1, c.Zoom/1.2) }

func (c *Camera) rotatePoint(p Vec3) Vec3 {
	cx, sx := math.Cos(c.RotX), math.Sin(c.RotX)
	p.Y, p.Z = p.Y*cx-p.Z*sx, p.Y*sx+p.Z*cx
	cy, sy := math.Cos(c.RotY), math.Sin(c.RotY)
	p.X, p.Z = p.X*cy+p.Z*sy, -p.X*sy+p.Z*cy
	cz, sz := math.Cos(c.RotZ), math.Sin(c.RotZ)
	p.X, p.Y = p.X*cz-p.Y*sz, p.X*sz+p.Y*cz
	return p
}

// ProjectF converts normalized shrub coordinates to surface coordinates in
// [0, w) x [0, h). Returns x, y, depth, and visibility.
func (c *Camera) ProjectF(p Vec3, w, h float64) (float64, float64, float64, bool) {
	rot := c.rotatePoint(p).Scale(c.Zoom)
	if rot.Z >= c.Dist-c.Near {
		return 0, 0, 0, false
	}
	persp := c.Dist / (c.Dist - rot.Z)
	minDim := math.Min(w, h)
	scale := minDim / 2.4
	sx := rot.X*persp*scale + w/2
	sy := -rot.Y*persp*scale + h/2
	return sx, sy, rot.Z, sx >= 0 && sx < w && sy >= 0 && sy < h
}

// Project is ProjectF quantized to integer sub-pixels.
func (c *Camera) Project(p Vec3, sw, sh int) (int, int, float64, bool) {
	x, y, depth, vis := c.ProjectF(p, float64(sw), float64(sh))
	return int(x), int(y), depth, vis
}

// PlotLine is one renderable polyline in normalized coordinates.
type PlotLine struct {
	Points  []Vec3
	Hex     string
	Opacity float64
	Width   float64
	Hero    bool
}

// FromResult centers the result's bounding box on the origin and scales the
// longest axis to [-1, 1], converting every line to plot coordinates with
// its resolved color.
func FromResult(res *shrub.Result) []PlotLine {
	min, max := res.Bounds()
	center := Vec3{(min.X + max.X) / 2, (min.Y + max.Y) / 2, (min.Z + max.Z) / 2}
	span := math.Max(max.X-min.X, math.Max(max.Y-min.Y, max.Z-min.Z))
	if span == 0 {
		span = 1
	}
	scale := 2.0 / span

	lines := make([]PlotLine, 0, len(res.Lines))
	for _, l := range res.Lines {
		pl := PlotLine{
			Points:  make([]Vec3, len(l.Trajectory)),
			Hex:     l.Style.Hex(),
			Opacity: l.Style.Opacity,
			Width:   l.Style.Width,
			Hero:    l.Style.Hero,
		}
		for i, p := range l.Trajectory {
			pl.Points[i] = Vec3{p.X, p.Y, p.Z}.Sub(center).Scale(scale)
		}
		lines = append(lines, pl)
	}
	return lines
}

type segment struct {
	x1, y1, x2, y2 int
	depth          float64
	hex            string
}

// RenderShrub draws the lines onto the canvas: regular segments
// depth-sorted back to front (painter's algorithm), hero segments last so
// the reference trajectory stays on top. Opacity is approximated by
// blending each line's color toward the dark background.
func RenderShrub(c *Canvas, lines []PlotLine, cam *Camera) {
	if c == nil || cam == nil {
		return
	}
	sw, sh := c.Width*2, c.Height*4

	var regular, hero []segment
	for _, l := range lines {
		hex := DimHex(l.Hex, l.Opacity)
		for i := 1; i < len(l.Points); i++ {
			x1, y1, d1, v1 := cam.Project(l.Points[i-1], sw, sh)
			x2, y2, d2, v2 := cam.Project(l.Points[i], sw, sh)
			if !v1 && !v2 {
				continue
			}
			s := segment{x1, y1, x2, y2, (d1 + d2) / 2, hex}
			if l.Hero {
				hero = append(hero, s)
			} else {
				regular = append(regular, s)
			}
		}
	}

	sort.Slice(regular, func(i, j int) bool { return regular[i].depth < regular[j].depth })
	for _, s := range regular {
		c.DrawLine(s.x1, s.y1, s.x2, s.y2, s.hex)
	}
	for _, s := range hero {
		c.DrawLine(s.x1, s.y1, s.x2, s.y2, s.hex)
	}
}

// DimHex blends a hex color toward black by 1-opacity, the terminal stand-in
// for alpha compositing.
func DimHex(hex string, opacity float64) string {
	col, err := colorful.Hex(hex)
	if err != nil {
		return hex
	}
	if opacity < 0 {
		opacity = 0
	}
	if opacity > 1 {
		opacity = 1
	}
	return col.BlendRgb(colorful.Color{R: 0.05, G: 0.05, B: 0.05}, 1-opacity).Hex()
}
