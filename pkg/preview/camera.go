package preview

import (
	"math"

	"github.com/paulmach/orb"

	"github.com/philipparndt/gowaypoint/pkg/geo"
)

// Camera maps projected coordinates onto image pixels
type Camera struct {
	Center geo.XY
	Scale  float64 // pixels per projected metre
	Width  int
	Height int
}

// NewCamera creates a camera that fits a projected bound into an image of
// the given size, leaving margin pixels on every side
func NewCamera(b orb.Bound, width, height, margin int) *Camera {
	c := b.Center()
	center := geo.NewXY(c[0], c[1])
	w := b.Max[0] - b.Min[0]
	h := b.Max[1] - b.Min[1]

	usableW := float64(max(width-2*margin, 1))
	usableH := float64(max(height-2*margin, 1))

	// A single point or a straight axis-aligned line has no extent on one axis
	scale := math.Inf(1)
	if w > 0 {
		scale = usableW / w
	}
	if h > 0 {
		scale = math.Min(scale, usableH/h)
	}
	if math.IsInf(scale, 1) {
		scale = 1
	}

	return &Camera{Center: center, Scale: scale, Width: width, Height: height}
}

// Project returns the pixel position of a projected point. Image y grows
// downwards, so north ends up at the top.
func (c *Camera) Project(p geo.XY) (int, int) {
	x := float64(c.Width)/2 + (p.X-c.Center.X)*c.Scale
	y := float64(c.Height)/2 - (p.Y-c.Center.Y)*c.Scale
	return int(math.Round(x)), int(math.Round(y))
}
