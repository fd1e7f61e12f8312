package trajectory

import (
	"github.com/philipparndt/gowaypoint/pkg/geo"
)

// Waypoint is one trajectory sample. Geodetic is authoritative; Projected
// and UTM are derived from it by the owning Trajectory.
type Waypoint struct {
	Geodetic  geo.LatLon
	Projected geo.XY
	UTM       geo.UTM
	HasUTM    bool

	attrs map[string]string
}

// Attr returns a pass-through column value carried from the source table
func (w Waypoint) Attr(name string) string {
	return w.attrs[name]
}
