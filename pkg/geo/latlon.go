package geo

import (
	"errors"
	"fmt"
	"math"

	"github.com/paulmach/orb"
)

var (
	// ErrInvalidCoordinate is returned for latitudes outside [-90, 90],
	// longitudes outside [-180, 180] or non-finite values.
	ErrInvalidCoordinate = errors.New("invalid coordinate")

	// ErrOutOfRange is returned when a coordinate is valid on the globe but
	// outside the domain of the requested projection.
	ErrOutOfRange = errors.New("coordinate out of range")
)

// LatLon is a WGS84 geodetic position in degrees
type LatLon struct {
	Lat float64
	Lon float64
}

// NewLatLon creates a LatLon with validation
func NewLatLon(lat, lon float64) (LatLon, error) {
	p := LatLon{Lat: lat, Lon: lon}
	if !p.Valid() {
		return LatLon{}, fmt.Errorf("%w: lat=%v lon=%v", ErrInvalidCoordinate, lat, lon)
	}
	return p, nil
}

// Valid reports whether the position lies within the geodetic domain
func (p LatLon) Valid() bool {
	if math.IsNaN(p.Lat) || math.IsNaN(p.Lon) {
		return false
	}
	return p.Lat >= -90 && p.Lat <= 90 && p.Lon >= -180 && p.Lon <= 180
}

// Point returns the position as an orb point (lon, lat order)
func (p LatLon) Point() orb.Point {
	return orb.Point{p.Lon, p.Lat}
}

// FromPoint converts an orb point in (lon, lat) order
func FromPoint(pt orb.Point) LatLon {
	return LatLon{Lat: pt.Lat(), Lon: pt.Lon()}
}

// Lerp linearly interpolates latitude and longitude independently.
// t=0 returns p, t=1 returns other.
func (p LatLon) Lerp(other LatLon, t float64) LatLon {
	return LatLon{
		Lat: p.Lat + (other.Lat-p.Lat)*t,
		Lon: p.Lon + (other.Lon-p.Lon)*t,
	}
}

func (p LatLon) String() string {
	return fmt.Sprintf("(%.8f, %.8f)", p.Lat, p.Lon)
}
