package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/paulmach/orb"

	"github.com/philipparndt/gowaypoint/pkg/geo"
	"github.com/philipparndt/gowaypoint/pkg/trajectory"
)

// SegmentInfo describes the leg between two consecutive waypoints
type SegmentInfo struct {
	Start  geo.LatLon
	End    geo.LatLon
	Length float64 // metres
	Index  int     // index of the starting waypoint
}

// MeasurementResult contains summary measurements of a trajectory
type MeasurementResult struct {
	WaypointCount    int
	SegmentCount     int
	Bounds           orb.Bound
	ProjectedBounds  orb.Bound
	TotalLength      float64
	MinSegmentLength float64
	MaxSegmentLength float64
	AvgSegmentLength float64
	UTMZone          int
	AllSegments      []SegmentInfo
}

// AnalyzeTrajectory measures every leg of a trajectory
func AnalyzeTrajectory(t *trajectory.Trajectory) *MeasurementResult {
	result := &MeasurementResult{
		WaypointCount: t.Len(),
		UTMZone:       t.ZoneNumber(),
		AllSegments:   make([]SegmentInfo, 0, max(t.Len()-1, 0)),
	}
	if t.Len() == 0 {
		return result
	}

	geodetic := make(orb.MultiPoint, 0, t.Len())
	projected := make(orb.MultiPoint, 0, t.Len())
	for _, w := range t.Waypoints() {
		geodetic = append(geodetic, w.Geodetic.Point())
		projected = append(projected, w.Projected.Point())
	}
	result.Bounds = geodetic.Bound()
	result.ProjectedBounds = projected.Bound()

	minLength := math.MaxFloat64
	maxLength := 0.0

	for i := 1; i < t.Len(); i++ {
		start, end := t.At(i-1).Geodetic, t.At(i).Geodetic
		length := geo.Distance(start, end)

		result.AllSegments = append(result.AllSegments, SegmentInfo{
			Start:  start,
			End:    end,
			Length: length,
			Index:  i - 1,
		})

		result.TotalLength += length
		minLength = min(minLength, length)
		maxLength = max(maxLength, length)
	}

	result.SegmentCount = len(result.AllSegments)
	if result.SegmentCount > 0 {
		result.MinSegmentLength = minLength
		result.MaxSegmentLength = maxLength
		result.AvgSegmentLength = result.TotalLength / float64(result.SegmentCount)
	}

	return result
}

// FindSegmentsByLength finds all segments within a length range
func FindSegmentsByLength(result *MeasurementResult, minLength, maxLength float64) []SegmentInfo {
	var segments []SegmentInfo
	for _, s := range result.AllSegments {
		if s.Length >= minLength && s.Length <= maxLength {
			segments = append(segments, s)
		}
	}
	return segments
}

// FindLongestSegments returns the N longest segments, the likely gaps
func FindLongestSegments(result *MeasurementResult, count int) []SegmentInfo {
	return sortedSegments(result, count, func(a, b SegmentInfo) bool { return a.Length > b.Length })
}

// FindShortestSegments returns the N shortest segments
func FindShortestSegments(result *MeasurementResult, count int) []SegmentInfo {
	return sortedSegments(result, count, func(a, b SegmentInfo) bool { return a.Length < b.Length })
}

func sortedSegments(result *MeasurementResult, count int, less func(a, b SegmentInfo) bool) []SegmentInfo {
	segments := make([]SegmentInfo, len(result.AllSegments))
	copy(segments, result.AllSegments)

	sort.SliceStable(segments, func(i, j int) bool {
		return less(segments[i], segments[j])
	})

	if count > len(segments) {
		count = len(segments)
	}
	return segments[:count]
}

// FormatMeasurement formats a measurement with appropriate units
func FormatMeasurement(value float64, unit string) string {
	if unit == "" {
		unit = "m"
	}
	return fmt.Sprintf("%.3f %s", value, unit)
}

// FormatBound formats a lon/lat bound as south-west and north-east corners
func FormatBound(b orb.Bound) string {
	return fmt.Sprintf("SW %v NE %v", geo.FromPoint(b.Min), geo.FromPoint(b.Max))
}
