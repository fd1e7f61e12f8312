package export

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/gowaypoint/pkg/geo"
	"github.com/philipparndt/gowaypoint/pkg/trajectory"
)

func sampleTrajectory(t *testing.T) *trajectory.Trajectory {
	t.Helper()
	traj := trajectory.New(true)
	_, err := traj.AppendAll([]geo.LatLon{
		{Lat: 37.0, Lon: 127.0},
		{Lat: 37.001, Lon: 127.001},
		{Lat: 37.002, Lon: 127.002},
	})
	require.NoError(t, err)
	return traj
}

func TestParseFormat(t *testing.T) {
	for _, f := range Formats {
		got, err := ParseFormat(strings.ToUpper(string(f)))
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}
	_, err := ParseFormat("shp")
	assert.ErrorIs(t, err, ErrUnknownFormat)

	assert.Equal(t, ".kml", FormatKML.Extension())
	assert.Equal(t, ".geojson", FormatGeoJSON.Extension())
}

func TestWriteKML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteKML(&buf, sampleTrajectory(t), "route"))

	out := buf.String()
	assert.Contains(t, out, "<kml")
	assert.Contains(t, out, "<LineString>")
	assert.Contains(t, out, "<name>route</name>")
	assert.Contains(t, out, "<coordinates>")
	assert.Contains(t, out, "127.002")
	assert.Contains(t, out, "37.002")
}

func TestGPXRoundTrip(t *testing.T) {
	traj := sampleTrajectory(t)

	var buf bytes.Buffer
	require.NoError(t, WriteGPX(&buf, traj, "route"))
	assert.Contains(t, buf.String(), "<trkpt")

	tbl, err := ReadGPX(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, tbl.Rows, 3)

	back, err := trajectory.Load(tbl)
	require.NoError(t, err)
	for i, p := range back.Geodetic() {
		assert.InDelta(t, traj.At(i).Geodetic.Lat, p.Lat, 1e-9)
		assert.InDelta(t, traj.At(i).Geodetic.Lon, p.Lon, 1e-9)
	}
}

func TestImportGPXWaypointsOnly(t *testing.T) {
	data := `<?xml version="1.0" encoding="UTF-8"?>
<gpx version="1.1" creator="test" xmlns="http://www.topografix.com/GPX/1/1">
  <wpt lat="37.5" lon="127.5"><name>a</name></wpt>
  <wpt lat="37.6" lon="127.6"><name>b</name></wpt>
</gpx>`
	path := filepath.Join(t.TempDir(), "points.gpx")
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	tbl, err := ImportGPX(path)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"37.5", "127.5"}, {"37.6", "127.6"}}, tbl.Rows)
}

func TestImportGPXMissingFile(t *testing.T) {
	_, err := ImportGPX(filepath.Join(t.TempDir(), "missing.gpx"))
	assert.Error(t, err)
}

func TestWriteGeoJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteGeoJSON(&buf, sampleTrajectory(t), "route"))

	fc, err := geojson.UnmarshalFeatureCollection(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, fc.Features, 4)

	line, ok := fc.Features[0].Geometry.(orb.LineString)
	require.True(t, ok)
	assert.Len(t, line, 3)
	assert.Equal(t, "route", fc.Features[0].Properties["name"])

	pt, ok := fc.Features[2].Geometry.(orb.Point)
	require.True(t, ok)
	assert.Equal(t, orb.Point{127.001, 37.001}, pt)
	assert.Equal(t, "52S", fc.Features[2].Properties["utm_zone"])
	assert.EqualValues(t, 1, fc.Features[2].Properties["index"])
}

func TestWriteGeoJSONSinglePoint(t *testing.T) {
	traj := trajectory.New(false)
	_, err := traj.Append(geo.LatLon{Lat: 1, Lon: 2})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteGeoJSON(&buf, traj, ""))

	var raw map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &raw))
	assert.Len(t, raw["features"], 1)
}

func TestPolylineRoundTrip(t *testing.T) {
	traj := sampleTrajectory(t)
	encoded := EncodePolyline(traj)
	require.NotEmpty(t, encoded)

	decoded, err := DecodePolyline(encoded)
	require.NoError(t, err)
	require.Len(t, decoded, 3)
	for i, p := range decoded {
		assert.InDelta(t, traj.At(i).Geodetic.Lat, p.Lat, 1e-5)
		assert.InDelta(t, traj.At(i).Geodetic.Lon, p.Lon, 1e-5)
	}

	var buf bytes.Buffer
	require.NoError(t, WritePolyline(&buf, traj))
	assert.Equal(t, string(encoded)+"\n", buf.String())
}

func TestPolylineKnownValue(t *testing.T) {
	// Reference example from the encoded polyline format documentation
	traj := trajectory.New(false)
	_, err := traj.AppendAll([]geo.LatLon{{Lat: 38.5, Lon: -120.2}, {Lat: 40.7, Lon: -120.95}, {Lat: 43.252, Lon: -126.453}})
	require.NoError(t, err)
	assert.Equal(t, "_p~iF~ps|U_ulLnnqC_mqNvxq`@", string(EncodePolyline(traj)))
}

func TestDecodePolylineTrimsWhitespace(t *testing.T) {
	decoded, err := DecodePolyline([]byte("  _p~iF~ps|U_ulLnnqC_mqNvxq`@\n"))
	require.NoError(t, err)
	require.Len(t, decoded, 3)
	assert.InDelta(t, 38.5, decoded[0].Lat, 1e-9)
	assert.InDelta(t, -126.453, decoded[2].Lon, 1e-9)
}

func TestReadGPXTrack(t *testing.T) {
	data := []byte(`<?xml version="1.0" encoding="UTF-8"?>
<gpx version="1.1" creator="test" xmlns="http://www.topografix.com/GPX/1/1">
  <trk><trkseg><trkpt lat="37.5" lon="127.25"></trkpt></trkseg></trk>
</gpx>`)
	tbl, err := ReadGPX(data)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"37.5", "127.25"}}, tbl.Rows)
}

func TestWriteDispatch(t *testing.T) {
	traj := sampleTrajectory(t)
	for _, f := range Formats {
		var buf bytes.Buffer
		require.NoError(t, Write(&buf, f, traj, "route"), "format %s", f)
		assert.NotZero(t, buf.Len(), "format %s", f)
	}
	assert.ErrorIs(t, Write(&bytes.Buffer{}, Format("shp"), traj, ""), ErrUnknownFormat)
}
