package trajectory

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/philipparndt/gowaypoint/pkg/geo"
	"go.uber.org/multierr"
)

var (
	// ErrSchema is returned when a table lacks required columns or holds
	// values that cannot be parsed
	ErrSchema = errors.New("schema error")
	// ErrInvalidRange is returned for out-of-bounds delete ranges and indices
	ErrInvalidRange = errors.New("invalid range")
	// ErrEmptyTrajectory is returned by operations that need at least one waypoint
	ErrEmptyTrajectory = errors.New("trajectory is empty")
)

// Trajectory is an ordered waypoint table. Every waypoint's projected and
// UTM coordinates are kept consistent with its geodetic coordinate; all
// mutators validate their whole input before changing anything.
type Trajectory struct {
	columns    []string
	points     []Waypoint
	utm        bool
	zoneNumber int // 0 until fixed by the first waypoint
	version    uint64
}

// New returns an empty trajectory with the core latitude and longitude
// columns, and the UTM columns when withUTM is set.
func New(withUTM bool) *Trajectory {
	t := &Trajectory{columns: []string{ColLatitude, ColLongitude}}
	if withUTM {
		t.utm = true
		t.columns = append(t.columns, utmColumns...)
	}
	return t
}

// Load builds a trajectory from a table. Latitude and longitude columns are
// required. If either UTM coordinate column is present, UTM tracking is
// enabled: the declared zone (or the first waypoint's natural zone) is fixed
// and the UTM values are re-derived from the geodetic coordinates. All row
// errors are reported together.
func Load(tbl Table) (*Trajectory, error) {
	latCol := tbl.ColumnIndex(ColLatitude)
	lonCol := tbl.ColumnIndex(ColLongitude)
	if latCol < 0 || lonCol < 0 {
		return nil, fmt.Errorf("%w: table needs %q and %q columns, got %v", ErrSchema, ColLatitude, ColLongitude, tbl.Columns)
	}
	zoneCol := tbl.ColumnIndex(ColZone)

	t := &Trajectory{
		columns: slices.Clone(tbl.Columns),
		utm:     tbl.HasColumn(ColEasting) || tbl.HasColumn(ColNorthing),
		points:  make([]Waypoint, 0, len(tbl.Rows)),
	}
	if t.utm {
		for _, c := range utmColumns {
			if !slices.Contains(t.columns, c) {
				t.columns = append(t.columns, c)
			}
		}
	}

	var errs error
	mixed := false
	geodetic := make([]geo.LatLon, 0, len(tbl.Rows))
	attrs := make([]map[string]string, 0, len(tbl.Rows))

	for r, row := range tbl.Rows {
		line := r + 1
		if len(row) != len(tbl.Columns) {
			errs = multierr.Append(errs, fmt.Errorf("%w: row %d has %d fields, want %d", ErrSchema, line, len(row), len(tbl.Columns)))
			continue
		}

		lat, latErr := parseFloat(row[latCol])
		lon, lonErr := parseFloat(row[lonCol])
		if latErr != nil || lonErr != nil {
			errs = multierr.Append(errs, fmt.Errorf("%w: row %d: bad coordinate %q,%q", ErrSchema, line, row[latCol], row[lonCol]))
			continue
		}
		p, err := geo.NewLatLon(lat, lon)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("row %d: %w", line, err))
			continue
		}

		if t.utm && zoneCol >= 0 && strings.TrimSpace(row[zoneCol]) != "" {
			z, err := geo.ParseZone(row[zoneCol])
			switch {
			case err != nil:
				errs = multierr.Append(errs, fmt.Errorf("%w: row %d: %w", ErrSchema, line, err))
			case t.zoneNumber == 0:
				t.zoneNumber = z.Number
			case t.zoneNumber != z.Number && !mixed:
				mixed = true
				errs = multierr.Append(errs, fmt.Errorf("%w: row %d: mixed UTM zones %d and %d", ErrSchema, line, t.zoneNumber, z.Number))
			}
		}

		geodetic = append(geodetic, p)
		attrs = append(attrs, t.passthrough(tbl.Columns, row))
	}
	if errs != nil {
		return nil, errs
	}

	if t.utm && t.zoneNumber == 0 && len(geodetic) > 0 {
		t.zoneNumber = geo.ZoneNumber(geodetic[0].Lat, geodetic[0].Lon)
	}

	for i, p := range geodetic {
		w, err := t.derive(p, t.zoneNumber)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("row %d: %w", i+1, err))
			continue
		}
		w.attrs = attrs[i]
		t.points = append(t.points, w)
	}
	if errs != nil {
		return nil, errs
	}
	return t, nil
}

func (t *Trajectory) passthrough(columns []string, row []string) map[string]string {
	var attrs map[string]string
	for i, c := range columns {
		if isCoreColumn(c) {
			continue
		}
		if attrs == nil {
			attrs = make(map[string]string)
		}
		attrs[c] = row[i]
	}
	return attrs
}

func isCoreColumn(c string) bool {
	return c == ColLatitude || c == ColLongitude || slices.Contains(utmColumns, c)
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

// derive computes the projected and, when tracked, UTM coordinates of p.
// zoneNumber 0 selects p's natural zone.
func (t *Trajectory) derive(p geo.LatLon, zoneNumber int) (Waypoint, error) {
	xy, err := geo.ToProjected(p)
	if err != nil {
		return Waypoint{}, err
	}
	w := Waypoint{Geodetic: p, Projected: xy}
	if !t.utm {
		return w, nil
	}
	if zoneNumber == 0 {
		zoneNumber = geo.ZoneNumber(p.Lat, p.Lon)
	}
	u, err := geo.ToUTMInZone(p, zoneNumber)
	if err != nil {
		return Waypoint{}, err
	}
	w.UTM = u
	w.HasUTM = true
	return w, nil
}

// Len returns the number of waypoints
func (t *Trajectory) Len() int {
	return len(t.points)
}

// At returns the waypoint at index i. It panics if i is out of range.
func (t *Trajectory) At(i int) Waypoint {
	return t.points[i]
}

// Waypoints returns a copy of the waypoint sequence
func (t *Trajectory) Waypoints() []Waypoint {
	return slices.Clone(t.points)
}

// Projected returns the projected coordinates in table order
func (t *Trajectory) Projected() []geo.XY {
	out := make([]geo.XY, len(t.points))
	for i, w := range t.points {
		out[i] = w.Projected
	}
	return out
}

// Geodetic returns the geodetic coordinates in table order
func (t *Trajectory) Geodetic() []geo.LatLon {
	out := make([]geo.LatLon, len(t.points))
	for i, w := range t.points {
		out[i] = w.Geodetic
	}
	return out
}

// HasUTM reports whether UTM coordinates are tracked
func (t *Trajectory) HasUTM() bool {
	return t.utm
}

// ZoneNumber returns the trajectory's UTM zone number, or 0 if UTM is not
// tracked or no waypoint has fixed it yet
func (t *Trajectory) ZoneNumber() int {
	return t.zoneNumber
}

// Columns returns the header emitted by Table
func (t *Trajectory) Columns() []string {
	return slices.Clone(t.columns)
}

// Version increases with every successful mutation
func (t *Trajectory) Version() uint64 {
	return t.version
}

// Table emits the trajectory in the original column order with any derived
// columns appended. Pass-through columns keep their loaded values; rows
// appended by editing leave them empty.
func (t *Trajectory) Table() Table {
	rows := make([][]string, len(t.points))
	for i, w := range t.points {
		row := make([]string, len(t.columns))
		for j, c := range t.columns {
			switch c {
			case ColLatitude:
				row[j] = formatFloat(w.Geodetic.Lat)
			case ColLongitude:
				row[j] = formatFloat(w.Geodetic.Lon)
			case ColEasting:
				if w.HasUTM {
					row[j] = formatFloat(w.UTM.Easting)
				}
			case ColNorthing:
				if w.HasUTM {
					row[j] = formatFloat(w.UTM.Northing)
				}
			case ColZone:
				if w.HasUTM {
					row[j] = w.UTM.Zone.String()
				}
			default:
				row[j] = w.attrs[c]
			}
		}
		rows[i] = row
	}
	return Table{Columns: slices.Clone(t.columns), Rows: rows}
}
