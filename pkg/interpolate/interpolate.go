// Package interpolate generates evenly spaced waypoints between two positions.
package interpolate

import (
	"errors"
	"fmt"
	"math"

	"github.com/philipparndt/gowaypoint/pkg/geo"
)

var (
	// ErrDegenerateSegment is returned when both endpoints coincide
	ErrDegenerateSegment = errors.New("degenerate segment")
	// ErrSegmentTooShort is returned when the segment is shorter than one spacing
	ErrSegmentTooShort = errors.New("segment too short for spacing")
	// ErrInvalidSpacing is returned for non-positive or non-finite spacing
	ErrInvalidSpacing = errors.New("invalid spacing")
)

// HardLimit bounds a single interpolation, whatever cap the caller asks for
const HardLimit = 1 << 20

// Result holds the generated points and how they were counted
type Result struct {
	Points    []geo.LatLon
	Distance  float64 // great-circle distance p1 to p2 in metres
	Requested int     // floor(Distance / spacing) before capping, saturated at math.MaxInt
	Capped    bool
}

// Between returns floor(distance/spacing) points strictly between p1 and p2,
// ordered from p1 to p2, capped at maxPoints. A maxPoints outside
// [1, HardLimit] caps at HardLimit. Positions are
// linear in latitude and longitude, which is accurate for the short segments
// this is used on.
func Between(p1, p2 geo.LatLon, spacing float64, maxPoints int) (Result, error) {
	if !(spacing > 0) || math.IsInf(spacing, 0) {
		return Result{}, fmt.Errorf("%w: %v", ErrInvalidSpacing, spacing)
	}
	if !p1.Valid() || !p2.Valid() {
		return Result{}, fmt.Errorf("%w: %v -> %v", geo.ErrInvalidCoordinate, p1, p2)
	}

	dist := geo.Distance(p1, p2)
	if dist == 0 {
		return Result{}, fmt.Errorf("%w: %v", ErrDegenerateSegment, p1)
	}

	limit := maxPoints
	if limit <= 0 || limit > HardLimit {
		limit = HardLimit
	}

	// Stay in float space until the count is bounded; a tiny spacing
	// overflows int
	n := math.Floor(dist / spacing)
	requested := math.MaxInt
	if n < float64(math.MaxInt) {
		requested = int(n)
	}
	capped := n > float64(limit)
	if capped {
		n = float64(limit)
	}
	count := int(n)
	if count == 0 {
		return Result{Distance: dist}, fmt.Errorf("%w: %.3fm at %.3fm spacing", ErrSegmentTooShort, dist, spacing)
	}

	points := make([]geo.LatLon, count)
	for i := range points {
		points[i] = p1.Lerp(p2, float64(i+1)/float64(count+1))
	}

	return Result{
		Points:    points,
		Distance:  dist,
		Requested: requested,
		Capped:    capped,
	}, nil
}
