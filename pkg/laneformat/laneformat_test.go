package laneformat

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/gowaypoint/pkg/geo"
	"github.com/philipparndt/gowaypoint/pkg/trajectory"
)

func TestToLane(t *testing.T) {
	traj := trajectory.New(false)
	_, err := traj.AppendAll([]geo.LatLon{
		{Lat: 37.28856264, Lon: 127.1074755},
		{Lat: 37.2886, Lon: 127.1075},
	})
	require.NoError(t, err)

	lane, err := ToLane(traj)
	require.NoError(t, err)
	assert.Equal(t, Columns, lane.Columns)
	require.Len(t, lane.Rows, 2)

	row := lane.Rows[0]
	assert.Equal(t, "1", row[0])
	assert.Equal(t, "37.28856264", row[1])
	assert.Equal(t, "127.1074755", row[2])
	assert.Equal(t, "0", row[5])
	assert.Equal(t, "2", lane.Rows[1][0])

	easting := traj.At(0).UTM.Easting
	assert.InDelta(t, 332240.89, easting, 1)
	assert.Equal(t, formatFloat(easting), row[3])
}

func TestFromLaneRoundTrip(t *testing.T) {
	traj := trajectory.New(true)
	_, err := traj.AppendAll([]geo.LatLon{{Lat: 37.5, Lon: 127.0}, {Lat: 37.501, Lon: 127.001}})
	require.NoError(t, err)

	lane, err := ToLane(traj)
	require.NoError(t, err)

	tbl, err := FromLane(lane, DefaultZone)
	require.NoError(t, err)
	assert.Equal(t, []string{"latitude", "longitude", "utm_easting", "utm_northing", "utm_zone"}, tbl.Columns)
	assert.Equal(t, "52S", tbl.Rows[0][4])

	back, err := trajectory.Load(tbl)
	require.NoError(t, err)
	assert.Equal(t, traj.Geodetic(), back.Geodetic())
	assert.Equal(t, 52, back.ZoneNumber())
}

func TestFromLaneNormalisedNames(t *testing.T) {
	lane := trajectory.Table{
		Columns: []string{"seq", "latitude", "longitude", "utm_easting", "utm_northing", "option"},
		Rows:    [][]string{{"1", "37", "127", "1", "2", "0"}},
	}
	tbl, err := FromLane(lane, DefaultZone)
	require.NoError(t, err)
	assert.Equal(t, []string{"37", "127", "1", "2", "52S"}, tbl.Rows[0])
}

func TestFromLaneErrors(t *testing.T) {
	_, err := FromLane(trajectory.Table{Columns: []string{"seq", "latitude"}}, DefaultZone)
	assert.ErrorIs(t, err, trajectory.ErrSchema)

	_, err = FromLane(trajectory.Table{Columns: Columns}, geo.Zone{Number: 99, Letter: 'S'})
	assert.ErrorIs(t, err, geo.ErrInvalidCoordinate)

	_, err = FromLane(trajectory.Table{Columns: Columns, Rows: [][]string{{"1"}}}, DefaultZone)
	assert.ErrorIs(t, err, trajectory.ErrSchema)
}

func TestAddLatLonFromUTM(t *testing.T) {
	tbl := trajectory.Table{
		Columns: []string{"seq", "latitude_utm", "longitude_utm"},
		Rows: [][]string{
			{"1", "332240.89", "4128563.21"},
		},
	}
	out, err := AddLatLonFromUTM(tbl, DefaultZone)
	require.NoError(t, err)
	assert.Equal(t, []string{"seq", "latitude_utm", "longitude_utm", "latitude", "longitude"}, out.Columns)

	row := out.Rows[0]
	assert.Equal(t, "1", row[0])
	p, err := geo.NewLatLon(mustFloat(t, row[3]), mustFloat(t, row[4]))
	require.NoError(t, err)
	assert.InDelta(t, 37.28856264, p.Lat, 1e-5)
	assert.InDelta(t, 127.1074755, p.Lon, 1e-5)

	// The input table is not modified
	assert.Len(t, tbl.Columns, 3)
}

func TestAddLatLonFromUTMOverwritesExisting(t *testing.T) {
	tbl := trajectory.Table{
		Columns: []string{"latitude", "longitude", "utm_easting", "utm_northing"},
		Rows:    [][]string{{"0", "0", "500000", "4000000"}},
	}
	out, err := AddLatLonFromUTM(tbl, geo.Zone{Number: 33, Letter: 'S'})
	require.NoError(t, err)
	assert.Len(t, out.Columns, 4)
	assert.InDelta(t, 15, mustFloat(t, out.Rows[0][1]), 1e-9)
}

func TestAddLatLonFromUTMErrors(t *testing.T) {
	_, err := AddLatLonFromUTM(trajectory.Table{Columns: []string{"latitude", "longitude"}}, DefaultZone)
	assert.ErrorIs(t, err, ErrNoUTM)

	bad := trajectory.Table{
		Columns: []string{"utm_easting", "utm_northing"},
		Rows:    [][]string{{"x", "1"}, {"5", "4000000"}},
	}
	_, err = AddLatLonFromUTM(bad, DefaultZone)
	assert.ErrorIs(t, err, trajectory.ErrSchema)
	assert.ErrorIs(t, err, geo.ErrOutOfRange)
}

func mustFloat(t *testing.T, s string) float64 {
	t.Helper()
	var v float64
	_, err := fmt.Sscan(s, &v)
	require.NoError(t, err)
	return v
}
