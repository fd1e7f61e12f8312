package export

import (
	"fmt"
	"io"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/philipparndt/gowaypoint/pkg/trajectory"
)

// WriteGeoJSON writes a FeatureCollection holding the trajectory as a
// LineString feature (when it has two or more waypoints) followed by one
// Point feature per waypoint carrying its index
func WriteGeoJSON(w io.Writer, t *trajectory.Trajectory, name string) error {
	fc := geojson.NewFeatureCollection()

	line := make(orb.LineString, 0, t.Len())
	for _, p := range t.Geodetic() {
		line = append(line, p.Point())
	}
	if len(line) >= 2 {
		f := geojson.NewFeature(line)
		f.Properties["name"] = name
		f.Properties["waypoints"] = t.Len()
		fc.Append(f)
	}

	for i, wp := range t.Waypoints() {
		f := geojson.NewFeature(wp.Geodetic.Point())
		f.Properties["index"] = i
		if wp.HasUTM {
			f.Properties["utm_easting"] = wp.UTM.Easting
			f.Properties["utm_northing"] = wp.UTM.Northing
			f.Properties["utm_zone"] = wp.UTM.Zone.String()
		}
		fc.Append(f)
	}

	data, err := fc.MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to encode GeoJSON: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write GeoJSON: %w", err)
	}
	return nil
}
