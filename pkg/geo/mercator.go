package geo

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/project"
)

// MaxMercatorLatitude is the latitude at which the Web-Mercator plane
// becomes square; beyond it projected y grows without bound.
const MaxMercatorLatitude = 85.05112877980659

// ToProjected converts a geodetic position to Web-Mercator (EPSG:3857) metres
func ToProjected(p LatLon) (XY, error) {
	if !p.Valid() {
		return XY{}, fmt.Errorf("%w: %v", ErrInvalidCoordinate, p)
	}
	if math.Abs(p.Lat) > MaxMercatorLatitude {
		return XY{}, fmt.Errorf("%w: latitude %v beyond web-mercator limit", ErrOutOfRange, p.Lat)
	}
	pt := project.WGS84.ToMercator(p.Point())
	return XY{X: pt[0], Y: pt[1]}, nil
}

// ToGeodetic is the exact inverse of ToProjected
func ToGeodetic(v XY) (LatLon, error) {
	if math.IsNaN(v.X) || math.IsNaN(v.Y) || math.IsInf(v.X, 0) || math.IsInf(v.Y, 0) {
		return LatLon{}, fmt.Errorf("%w: projected (%v, %v)", ErrInvalidCoordinate, v.X, v.Y)
	}
	p := FromPoint(project.Mercator.ToWGS84(orb.Point{v.X, v.Y}))
	if !p.Valid() {
		return LatLon{}, fmt.Errorf("%w: projected (%v, %v) maps to %v", ErrInvalidCoordinate, v.X, v.Y, p)
	}
	return p, nil
}

// MercatorScale returns the number of projected metres per ground metre at
// the given latitude.
func MercatorScale(lat float64) float64 {
	return 1 / math.Cos(lat*math.Pi/180)
}
