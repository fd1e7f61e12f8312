// Package laneformat converts between waypoint tables and the lane tables
// consumed by the driving stack.
package laneformat

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/philipparndt/gowaypoint/pkg/geo"
	"github.com/philipparndt/gowaypoint/pkg/trajectory"
	"go.uber.org/multierr"
)

// Lane table columns in emitted order
const (
	ColSeq         = "seq"
	ColLatitudeUTM = "latitude_utm"
	ColLongUTM     = "longitude_utm"
	ColOption      = "option"
)

// Columns is the lane table header. The *_utm columns hold easting and
// northing respectively despite their names.
var Columns = []string{ColSeq, trajectory.ColLatitude, trajectory.ColLongitude, ColLatitudeUTM, ColLongUTM, ColOption}

// DefaultZone is used for lane files, which carry no zone column
var DefaultZone = geo.Zone{Number: 52, Letter: 'S'}

// ErrNoUTM is returned when a table carries no UTM coordinates to convert
var ErrNoUTM = errors.New("table has no UTM columns")

// ToLane emits a trajectory as a lane table: sequence numbers from 1, UTM
// easting and northing in the lane columns and option 0. UTM tracking is
// enabled in the trajectory's zone if it is not already.
func ToLane(t *trajectory.Trajectory) (trajectory.Table, error) {
	if !t.HasUTM() {
		if err := t.EnableUTM(0); err != nil {
			return trajectory.Table{}, fmt.Errorf("derive utm: %w", err)
		}
	}

	tbl := trajectory.Table{Columns: slices.Clone(Columns), Rows: make([][]string, t.Len())}
	for i, w := range t.Waypoints() {
		tbl.Rows[i] = []string{
			strconv.Itoa(i + 1),
			formatFloat(w.Geodetic.Lat),
			formatFloat(w.Geodetic.Lon),
			formatFloat(w.UTM.Easting),
			formatFloat(w.UTM.Northing),
			"0",
		}
	}
	return tbl, nil
}

// FromLane converts a lane table into a waypoint table with latitude,
// longitude, easting, northing and zone columns. Lane column names are
// accepted in either their raw or normalised spelling; seq, option and any
// other columns are dropped. The zone is the same for every row.
func FromLane(lane trajectory.Table, zone geo.Zone) (trajectory.Table, error) {
	if !zone.Valid() {
		return trajectory.Table{}, fmt.Errorf("%w: zone %v", geo.ErrInvalidCoordinate, zone)
	}
	latCol := lane.ColumnIndex(trajectory.ColLatitude)
	lonCol := lane.ColumnIndex(trajectory.ColLongitude)
	eastCol := firstColumn(lane, ColLatitudeUTM, trajectory.ColEasting)
	northCol := firstColumn(lane, ColLongUTM, trajectory.ColNorthing)
	if latCol < 0 || lonCol < 0 || eastCol < 0 || northCol < 0 {
		return trajectory.Table{}, fmt.Errorf("%w: lane table needs latitude, longitude and utm columns, got %v", trajectory.ErrSchema, lane.Columns)
	}

	out := trajectory.Table{
		Columns: []string{trajectory.ColLatitude, trajectory.ColLongitude, trajectory.ColEasting, trajectory.ColNorthing, trajectory.ColZone},
		Rows:    make([][]string, 0, len(lane.Rows)),
	}
	var errs error
	for r, row := range lane.Rows {
		if len(row) != len(lane.Columns) {
			errs = multierr.Append(errs, fmt.Errorf("%w: row %d has %d fields, want %d", trajectory.ErrSchema, r+1, len(row), len(lane.Columns)))
			continue
		}
		out.Rows = append(out.Rows, []string{row[latCol], row[lonCol], row[eastCol], row[northCol], zone.String()})
	}
	if errs != nil {
		return trajectory.Table{}, errs
	}
	return out, nil
}

// AddLatLonFromUTM fills latitude and longitude from the easting and
// northing columns of every row, adding the columns if missing. All rows
// are assumed to lie in the given zone.
func AddLatLonFromUTM(tbl trajectory.Table, zone geo.Zone) (trajectory.Table, error) {
	eastCol := firstColumn(tbl, trajectory.ColEasting, ColLatitudeUTM)
	northCol := firstColumn(tbl, trajectory.ColNorthing, ColLongUTM)
	if eastCol < 0 || northCol < 0 {
		return trajectory.Table{}, fmt.Errorf("%w: %v", ErrNoUTM, tbl.Columns)
	}

	out := trajectory.Table{Columns: slices.Clone(tbl.Columns)}
	latCol := out.ColumnIndex(trajectory.ColLatitude)
	if latCol < 0 {
		out.Columns = append(out.Columns, trajectory.ColLatitude)
		latCol = len(out.Columns) - 1
	}
	lonCol := out.ColumnIndex(trajectory.ColLongitude)
	if lonCol < 0 {
		out.Columns = append(out.Columns, trajectory.ColLongitude)
		lonCol = len(out.Columns) - 1
	}

	var errs error
	for r, row := range tbl.Rows {
		if len(row) != len(tbl.Columns) {
			errs = multierr.Append(errs, fmt.Errorf("%w: row %d has %d fields, want %d", trajectory.ErrSchema, r+1, len(row), len(tbl.Columns)))
			continue
		}
		e, eErr := strconv.ParseFloat(strings.TrimSpace(row[eastCol]), 64)
		n, nErr := strconv.ParseFloat(strings.TrimSpace(row[northCol]), 64)
		if eErr != nil || nErr != nil {
			errs = multierr.Append(errs, fmt.Errorf("%w: row %d: bad utm %q,%q", trajectory.ErrSchema, r+1, row[eastCol], row[northCol]))
			continue
		}
		p, err := geo.FromUTM(geo.UTM{Easting: e, Northing: n, Zone: zone})
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("row %d: %w", r+1, err))
			continue
		}

		next := make([]string, len(out.Columns))
		copy(next, row)
		next[latCol] = formatFloat(p.Lat)
		next[lonCol] = formatFloat(p.Lon)
		out.Rows = append(out.Rows, next)
	}
	if errs != nil {
		return trajectory.Table{}, errs
	}
	return out, nil
}

func firstColumn(tbl trajectory.Table, names ...string) int {
	for _, n := range names {
		if i := tbl.ColumnIndex(n); i >= 0 {
			return i
		}
	}
	return -1
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
