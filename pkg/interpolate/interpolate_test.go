package interpolate

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/gowaypoint/pkg/geo"
)

func TestBetweenCount(t *testing.T) {
	p1 := geo.LatLon{Lat: 37.0, Lon: 127.0}
	p2 := geo.LatLon{Lat: 37.0, Lon: 127.001}

	for _, spacing := range []float64{0.2, 1, 7.5, 10, 44} {
		res, err := Between(p1, p2, spacing, 0)
		require.NoError(t, err, "spacing %v", spacing)

		want := int(math.Floor(geo.Distance(p1, p2) / spacing))
		assert.Len(t, res.Points, want, "spacing %v", spacing)
		assert.Equal(t, want, res.Requested)
		assert.False(t, res.Capped)
		assert.InDelta(t, 88.8, res.Distance, 0.5)
	}
}

func TestBetweenStrictlyInsideAndMonotonic(t *testing.T) {
	p1 := geo.LatLon{Lat: 37.0, Lon: 127.0}
	p2 := geo.LatLon{Lat: 37.002, Lon: 127.001}

	res, err := Between(p1, p2, 5, 0)
	require.NoError(t, err)
	require.NotEmpty(t, res.Points)

	prev := p1
	for i, p := range res.Points {
		assert.Greater(t, p.Lat, prev.Lat, "point %d", i)
		assert.Greater(t, p.Lon, prev.Lon, "point %d", i)
		assert.Less(t, p.Lat, p2.Lat, "point %d", i)
		assert.Less(t, p.Lon, p2.Lon, "point %d", i)
		prev = p
	}
}

func TestBetweenReverseDirection(t *testing.T) {
	p1 := geo.LatLon{Lat: 37.001, Lon: 127.001}
	p2 := geo.LatLon{Lat: 37.0, Lon: 127.0}

	res, err := Between(p1, p2, 10, 0)
	require.NoError(t, err)
	require.NotEmpty(t, res.Points)
	assert.Less(t, res.Points[0].Lat, p1.Lat)
	assert.Greater(t, res.Points[len(res.Points)-1].Lat, p2.Lat)
}

func TestBetweenLinearPositions(t *testing.T) {
	p1 := geo.LatLon{Lat: 10, Lon: 20}
	p2 := geo.LatLon{Lat: 10.0001, Lon: 20.0002}

	res, err := Between(p1, p2, 1, 0)
	require.NoError(t, err)

	n := len(res.Points)
	for i, p := range res.Points {
		f := float64(i+1) / float64(n+1)
		assert.InDelta(t, 10+0.0001*f, p.Lat, 1e-12)
		assert.InDelta(t, 20+0.0002*f, p.Lon, 1e-12)
	}
}

func TestBetweenCapped(t *testing.T) {
	p1 := geo.LatLon{Lat: 37.0, Lon: 127.0}
	p2 := geo.LatLon{Lat: 37.01, Lon: 127.0}

	res, err := Between(p1, p2, 0.0876, 1000)
	require.NoError(t, err)
	assert.Len(t, res.Points, 1000)
	assert.True(t, res.Capped)
	assert.Greater(t, res.Requested, 1000)

	// Capped points still span the whole segment evenly
	last := res.Points[len(res.Points)-1]
	assert.InDelta(t, 37.0+0.01*1000.0/1001.0, last.Lat, 1e-12)
}

func TestBetweenTinySpacing(t *testing.T) {
	p1 := geo.LatLon{Lat: 37.0, Lon: 127.0}
	p2 := geo.LatLon{Lat: 37.0, Lon: 127.001}

	for _, spacing := range []float64{1e-20, math.SmallestNonzeroFloat64} {
		res, err := Between(p1, p2, spacing, 1000)
		require.NoError(t, err, "spacing %v", spacing)
		assert.Len(t, res.Points, 1000)
		assert.True(t, res.Capped)
		assert.Equal(t, math.MaxInt, res.Requested)
	}
}

func TestBetweenUncappedUsesHardLimit(t *testing.T) {
	p1 := geo.LatLon{Lat: 37.0, Lon: 127.0}
	p2 := geo.LatLon{Lat: 37.009, Lon: 127.0}

	for _, maxPoints := range []int{0, -1, HardLimit + 1} {
		res, err := Between(p1, p2, 1e-6, maxPoints)
		require.NoError(t, err)
		assert.Len(t, res.Points, HardLimit, "max %d", maxPoints)
		assert.True(t, res.Capped)
		assert.Greater(t, res.Requested, HardLimit)
	}
}

func TestBetweenSegmentTooShort(t *testing.T) {
	p1 := geo.LatLon{Lat: 37.0, Lon: 127.0}
	p2 := geo.LatLon{Lat: 37.0, Lon: 127.001}

	res, err := Between(p1, p2, 100, 1000)
	assert.ErrorIs(t, err, ErrSegmentTooShort)
	assert.Empty(t, res.Points)
}

func TestBetweenDegenerate(t *testing.T) {
	p := geo.LatLon{Lat: 37.0, Lon: 127.0}
	_, err := Between(p, p, 1, 1000)
	assert.ErrorIs(t, err, ErrDegenerateSegment)
}

func TestBetweenInvalidInput(t *testing.T) {
	p1 := geo.LatLon{Lat: 37.0, Lon: 127.0}
	p2 := geo.LatLon{Lat: 37.0, Lon: 127.001}

	for _, spacing := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		_, err := Between(p1, p2, spacing, 0)
		assert.ErrorIs(t, err, ErrInvalidSpacing, "spacing %v", spacing)
	}

	_, err := Between(geo.LatLon{Lat: 91, Lon: 0}, p2, 1, 0)
	assert.ErrorIs(t, err, geo.ErrInvalidCoordinate)
}
