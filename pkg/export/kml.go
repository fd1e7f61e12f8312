package export

import (
	"fmt"
	"io"

	"github.com/twpayne/go-kml"

	"github.com/philipparndt/gowaypoint/pkg/trajectory"
)

// WriteKML writes the trajectory as a KML document with one LineString
// placemark
func WriteKML(w io.Writer, t *trajectory.Trajectory, name string) error {
	coords := make([]kml.Coordinate, 0, t.Len())
	for _, p := range t.Geodetic() {
		coords = append(coords, kml.Coordinate{Lon: p.Lon, Lat: p.Lat})
	}

	doc := kml.KML(
		kml.Document(
			kml.Name(name),
			kml.Placemark(
				kml.Name(name),
				kml.Description(fmt.Sprintf("%d waypoints", t.Len())),
				kml.LineString(
					kml.Tessellate(true),
					kml.Coordinates(coords...),
				),
			),
		),
	)

	if err := doc.WriteIndent(w, "", "  "); err != nil {
		return fmt.Errorf("failed to write KML: %w", err)
	}
	return nil
}
