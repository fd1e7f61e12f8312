package geo

import (
	orbgeo "github.com/paulmach/orb/geo"
)

// Distance returns the great-circle distance between two positions in metres
func Distance(p1, p2 LatLon) float64 {
	if p1 == p2 {
		return 0
	}
	return orbgeo.DistanceHaversine(p1.Point(), p2.Point())
}
