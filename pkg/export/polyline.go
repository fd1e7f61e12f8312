package export

import (
	"bytes"
	"fmt"
	"io"

	"github.com/twpayne/go-polyline"

	"github.com/philipparndt/gowaypoint/pkg/geo"
	"github.com/philipparndt/gowaypoint/pkg/trajectory"
)

// EncodePolyline returns the trajectory as an encoded polyline (precision 5)
func EncodePolyline(t *trajectory.Trajectory) []byte {
	coords := make([][]float64, 0, t.Len())
	for _, p := range t.Geodetic() {
		coords = append(coords, []float64{p.Lat, p.Lon})
	}
	return polyline.EncodeCoords(coords)
}

// DecodePolyline decodes an encoded polyline into positions. Surrounding
// whitespace is ignored.
func DecodePolyline(encoded []byte) ([]geo.LatLon, error) {
	coords, _, err := polyline.DecodeCoords(bytes.TrimSpace(encoded))
	if err != nil {
		return nil, fmt.Errorf("failed to decode polyline: %w", err)
	}
	out := make([]geo.LatLon, 0, len(coords))
	for _, c := range coords {
		p, err := geo.NewLatLon(c[0], c[1])
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// WritePolyline writes the encoded polyline followed by a newline
func WritePolyline(w io.Writer, t *trajectory.Trajectory) error {
	if _, err := fmt.Fprintf(w, "%s\n", EncodePolyline(t)); err != nil {
		return fmt.Errorf("failed to write polyline: %w", err)
	}
	return nil
}
