// Package export writes trajectories in common interchange formats.
package export

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/philipparndt/gowaypoint/pkg/trajectory"
)

// ErrUnknownFormat is returned for unsupported export format names
var ErrUnknownFormat = errors.New("unknown export format")

// Format identifies an export format
type Format string

const (
	FormatKML      Format = "kml"
	FormatGPX      Format = "gpx"
	FormatGeoJSON  Format = "geojson"
	FormatPolyline Format = "polyline"
)

// Formats lists the supported formats
var Formats = []Format{FormatKML, FormatGPX, FormatGeoJSON, FormatPolyline}

// ParseFormat parses a format name, case-insensitively
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Extension returns the conventional file extension including the dot
func (f Format) Extension() string {
	switch f {
	case FormatPolyline:
		return ".txt"
	case FormatGeoJSON:
		return ".geojson"
	default:
		return "." + string(f)
	}
}

// Write renders the trajectory in the given format. name labels the track
// where the format has a place for it.
func Write(w io.Writer, f Format, t *trajectory.Trajectory, name string) error {
	switch f {
	case FormatKML:
		return WriteKML(w, t, name)
	case FormatGPX:
		return WriteGPX(w, t, name)
	case FormatGeoJSON:
		return WriteGeoJSON(w, t, name)
	case FormatPolyline:
		return WritePolyline(w, t)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
}
