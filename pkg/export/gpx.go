package export

import (
	"fmt"
	"io"
	"strconv"

	"github.com/tkrajina/gpxgo/gpx"

	"github.com/philipparndt/gowaypoint/pkg/trajectory"
)

const gpxCreator = "gowaypoint"

// WriteGPX writes the trajectory as a GPX 1.1 track with a single segment
func WriteGPX(w io.Writer, t *trajectory.Trajectory, name string) error {
	segment := gpx.GPXTrackSegment{Points: make([]gpx.GPXPoint, 0, t.Len())}
	for i, p := range t.Geodetic() {
		var pt gpx.GPXPoint
		pt.Latitude = p.Lat
		pt.Longitude = p.Lon
		pt.Name = strconv.Itoa(i)
		segment.Points = append(segment.Points, pt)
	}

	doc := &gpx.GPX{
		Creator: gpxCreator,
		Name:    name,
		Tracks: []gpx.GPXTrack{{
			Name:     name,
			Segments: []gpx.GPXTrackSegment{segment},
		}},
	}

	data, err := doc.ToXml(gpx.ToXmlParams{Version: "1.1", Indent: true})
	if err != nil {
		return fmt.Errorf("failed to encode GPX: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write GPX: %w", err)
	}
	return nil
}

// ImportGPX reads a GPX file and returns its points as a waypoint table.
// Track points are taken in order from every track and segment, followed
// by route points; standalone waypoints are used only if there are neither.
func ImportGPX(filename string) (trajectory.Table, error) {
	doc, err := gpx.ParseFile(filename)
	if err != nil {
		return trajectory.Table{}, fmt.Errorf("failed to parse GPX: %w", err)
	}
	return gpxTable(doc), nil
}

// ReadGPX is ImportGPX for in-memory data
func ReadGPX(data []byte) (trajectory.Table, error) {
	doc, err := gpx.ParseBytes(data)
	if err != nil {
		return trajectory.Table{}, fmt.Errorf("failed to parse GPX: %w", err)
	}
	return gpxTable(doc), nil
}

func gpxTable(doc *gpx.GPX) trajectory.Table {
	tbl := trajectory.Table{Columns: []string{trajectory.ColLatitude, trajectory.ColLongitude}}
	add := func(p gpx.GPXPoint) {
		tbl.Rows = append(tbl.Rows, []string{formatFloat(p.Latitude), formatFloat(p.Longitude)})
	}

	for _, track := range doc.Tracks {
		for _, seg := range track.Segments {
			for _, p := range seg.Points {
				add(p)
			}
		}
	}
	for _, route := range doc.Routes {
		for _, p := range route.Points {
			add(p)
		}
	}
	if len(tbl.Rows) == 0 {
		for _, p := range doc.Waypoints {
			add(p)
		}
	}
	return tbl
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
