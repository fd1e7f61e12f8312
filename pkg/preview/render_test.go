package preview

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/gowaypoint/pkg/geo"
	"github.com/philipparndt/gowaypoint/pkg/trajectory"
)

func line(t *testing.T) *trajectory.Trajectory {
	t.Helper()
	traj := trajectory.New(false)
	_, err := traj.AppendAll([]geo.LatLon{
		{Lat: 37.0, Lon: 127.0},
		{Lat: 37.001, Lon: 127.001},
		{Lat: 37.002, Lon: 127.0},
	})
	require.NoError(t, err)
	return traj
}

func TestCameraFitsBound(t *testing.T) {
	b := orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{100, 50}}
	cam := NewCamera(b, 220, 220, 10)

	assert.InDelta(t, 2.0, cam.Scale, 1e-9)

	x, y := cam.Project(geo.NewXY(50, 25))
	assert.Equal(t, 110, x)
	assert.Equal(t, 110, y)

	x, y = cam.Project(geo.NewXY(0, 50))
	assert.Equal(t, 10, x)
	assert.Equal(t, 60, y)
}

func TestCameraSinglePoint(t *testing.T) {
	b := orb.Bound{Min: orb.Point{5, 5}, Max: orb.Point{5, 5}}
	cam := NewCamera(b, 100, 100, 10)
	assert.Equal(t, 1.0, cam.Scale)

	x, y := cam.Project(geo.NewXY(5, 5))
	assert.Equal(t, 50, x)
	assert.Equal(t, 50, y)
}

func TestRenderMarkers(t *testing.T) {
	traj := line(t)
	opts := DefaultOptions()
	opts.Selected = []int{2}

	img, err := Render(traj, opts)
	require.NoError(t, err)

	assert.Equal(t, background, img.RGBAAt(0, 0))

	result := traj.Projected()
	xMin := min(result[0].X, result[1].X, result[2].X)
	xMax := max(result[0].X, result[1].X, result[2].X)
	yMin := min(result[0].Y, result[1].Y, result[2].Y)
	yMax := max(result[0].Y, result[1].Y, result[2].Y)
	cam := NewCamera(orb.Bound{Min: orb.Point{xMin, yMin}, Max: orb.Point{xMax, yMax}}, opts.Width, opts.Height, opts.Margin)

	x, y := cam.Project(result[0])
	assert.Equal(t, startColor, img.RGBAAt(x, y))
	x, y = cam.Project(result[1])
	assert.Equal(t, pointColor, img.RGBAAt(x, y))
	x, y = cam.Project(result[2])
	assert.Equal(t, selColor, img.RGBAAt(x, y))
}

func TestRenderEmptyAndInvalid(t *testing.T) {
	img, err := Render(trajectory.New(false), DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, background, img.RGBAAt(400, 300))

	_, err = Render(line(t), Options{Width: 0, Height: 10})
	assert.ErrorIs(t, err, ErrInvalidSize)
}

func TestWritePNG(t *testing.T) {
	var buf bytes.Buffer
	opts := DefaultOptions()
	opts.Width, opts.Height = 64, 48
	require.NoError(t, WritePNG(&buf, line(t), opts))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 64, img.Bounds().Dx())
	assert.Equal(t, 48, img.Bounds().Dy())
}

func TestDrawLineClipped(t *testing.T) {
	img, err := Render(trajectory.New(false), Options{Width: 10, Height: 10})
	require.NoError(t, err)
	drawLine(img, -5, 5, 20, 5, lineColor)
	for x := range 10 {
		assert.Equal(t, lineColor, img.RGBAAt(x, 5))
	}
	assert.Equal(t, background, img.RGBAAt(5, 4))
}
