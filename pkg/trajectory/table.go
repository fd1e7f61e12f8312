package trajectory

import (
	"slices"
	"strconv"
)

// Recognised column names. Field-name variants found in older files are
// normalised by the reader before a Table reaches this package.
const (
	ColLatitude  = "latitude"
	ColLongitude = "longitude"
	ColEasting   = "utm_easting"
	ColNorthing  = "utm_northing"
	ColZone      = "utm_zone"
)

var utmColumns = []string{ColEasting, ColNorthing, ColZone}

// Table is a delimited waypoint table: a header and string rows in header order
type Table struct {
	Columns []string
	Rows    [][]string
}

// ColumnIndex returns the position of a named column, or -1
func (t Table) ColumnIndex(name string) int {
	return slices.Index(t.Columns, name)
}

// HasColumn reports whether the table has a named column
func (t Table) HasColumn(name string) bool {
	return t.ColumnIndex(name) >= 0
}

// Len returns the number of rows
func (t Table) Len() int {
	return len(t.Rows)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
