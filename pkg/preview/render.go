// Package preview renders a trajectory to a raster image, top-down in the
// projected plane.
package preview

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"os"
	"slices"

	"github.com/philipparndt/gowaypoint/pkg/analysis"
	"github.com/philipparndt/gowaypoint/pkg/trajectory"
)

// ErrInvalidSize is returned for images without pixels
var ErrInvalidSize = errors.New("invalid image size")

// Options control the rendered image
type Options struct {
	Width      int
	Height     int
	Margin     int
	MarkerSize int   // marker half-width in pixels, 0 hides markers
	Selected   []int // waypoints drawn in the highlight colour
}

// DefaultOptions returns an 800x600 image with small markers
func DefaultOptions() Options {
	return Options{Width: 800, Height: 600, Margin: 20, MarkerSize: 2}
}

var (
	background = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	lineColor  = color.RGBA{R: 40, G: 90, B: 200, A: 255}
	pointColor = color.RGBA{R: 20, G: 20, B: 20, A: 255}
	startColor = color.RGBA{R: 30, G: 160, B: 60, A: 255}
	selColor   = color.RGBA{R: 220, G: 40, B: 40, A: 255}
)

// Render draws the trajectory's segments and waypoints. The first waypoint
// is drawn in green, selected waypoints in red.
func Render(t *trajectory.Trajectory, opts Options) (*image.RGBA, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, opts.Width, opts.Height)
	}

	img := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: background}, image.Point{}, draw.Src)
	if t.Len() == 0 {
		return img, nil
	}

	result := analysis.AnalyzeTrajectory(t)
	cam := NewCamera(result.ProjectedBounds, opts.Width, opts.Height, opts.Margin)

	pixels := make([]image.Point, t.Len())
	for i, p := range t.Projected() {
		x, y := cam.Project(p)
		pixels[i] = image.Point{X: x, Y: y}
	}

	for i := 1; i < len(pixels); i++ {
		a, b := pixels[i-1], pixels[i]
		drawLine(img, a.X, a.Y, b.X, b.Y, lineColor)
	}

	if opts.MarkerSize > 0 {
		for i, p := range pixels {
			col := pointColor
			switch {
			case slices.Contains(opts.Selected, i):
				col = selColor
			case i == 0:
				col = startColor
			}
			fillSquare(img, p.X, p.Y, opts.MarkerSize, col)
		}
	}
	return img, nil
}

// WritePNG renders the trajectory and encodes it as PNG
func WritePNG(w io.Writer, t *trajectory.Trajectory, opts Options) error {
	img, err := Render(t, opts)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

// WritePNGFile renders the trajectory into a PNG file
func WritePNGFile(filename string, t *trajectory.Trajectory, opts Options) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if err := WritePNG(file, t, opts); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
