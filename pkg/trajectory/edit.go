package trajectory

import (
	"fmt"
	"slices"

	"github.com/philipparndt/gowaypoint/pkg/geo"
)

// Append adds a waypoint at the end and returns its index
func (t *Trajectory) Append(p geo.LatLon) (int, error) {
	return t.AppendAll([]geo.LatLon{p})
}

// AppendAll adds waypoints at the end in one batch and returns the index of
// the first. Either all points are appended or none.
func (t *Trajectory) AppendAll(ps []geo.LatLon) (int, error) {
	first := len(t.points)
	if len(ps) == 0 {
		return first, nil
	}

	zone := t.zoneNumber
	if t.utm && zone == 0 {
		zone = geo.ZoneNumber(ps[0].Lat, ps[0].Lon)
	}

	added := make([]Waypoint, len(ps))
	for i, p := range ps {
		w, err := t.derive(p, zone)
		if err != nil {
			return first, fmt.Errorf("append point %d: %w", i, err)
		}
		added[i] = w
	}

	t.zoneNumber = zone
	t.points = append(t.points, added...)
	t.version++
	return first, nil
}

// DeleteRange removes the waypoints in [start, end). Later waypoints shift
// down by end-start. An empty range is a no-op.
func (t *Trajectory) DeleteRange(start, end int) error {
	if start < 0 || start > end || end > len(t.points) {
		return fmt.Errorf("%w: [%d, %d) with %d waypoints", ErrInvalidRange, start, end, len(t.points))
	}
	if start == end {
		return nil
	}
	t.points = slices.Delete(t.points, start, end)
	t.version++
	return nil
}

// DeleteIndices removes the waypoints at the given indices, which may be
// unsorted and contain duplicates. The survivors keep their relative order.
func (t *Trajectory) DeleteIndices(indices []int) error {
	if err := t.checkIndices(indices); err != nil {
		return err
	}
	if len(indices) == 0 {
		return nil
	}

	// Remove highest first so pending indices stay valid
	sorted := slices.Clone(indices)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)
	for _, i := range slices.Backward(sorted) {
		t.points = slices.Delete(t.points, i, i+1)
	}
	t.version++
	return nil
}

func (t *Trajectory) checkIndices(indices []int) error {
	for _, i := range indices {
		if i < 0 || i >= len(t.points) {
			return fmt.Errorf("%w: index %d with %d waypoints", ErrInvalidRange, i, len(t.points))
		}
	}
	return nil
}

// Translate shifts waypoints by offset in the projected plane and re-derives
// their geodetic and UTM coordinates. An empty selection translates every
// waypoint.
func (t *Trajectory) Translate(offset geo.XY, selection []int) error {
	return t.translate(selection, func(geo.LatLon) geo.XY { return offset })
}

// TranslateGround shifts waypoints by a ground distance in metres (east,
// north). The projected offset is scaled per waypoint by the Mercator scale
// factor at its latitude, so the resulting UTM displacement is close to the
// requested distance.
func (t *Trajectory) TranslateGround(metres geo.XY, selection []int) error {
	return t.translate(selection, func(w geo.LatLon) geo.XY {
		return metres.Mul(geo.MercatorScale(w.Lat))
	})
}

func (t *Trajectory) translate(selection []int, offset func(geo.LatLon) geo.XY) error {
	if err := t.checkIndices(selection); err != nil {
		return err
	}
	targets := selection
	if len(targets) == 0 {
		targets = make([]int, len(t.points))
		for i := range targets {
			targets[i] = i
		}
	}

	updated := make(map[int]Waypoint, len(targets))
	for _, i := range targets {
		if _, done := updated[i]; done {
			continue
		}
		w := t.points[i]
		moved, err := geo.ToGeodetic(w.Projected.Add(offset(w.Geodetic)))
		if err != nil {
			return fmt.Errorf("translate waypoint %d: %w", i, err)
		}
		nw, err := t.derive(moved, t.zoneNumber)
		if err != nil {
			return fmt.Errorf("translate waypoint %d: %w", i, err)
		}
		nw.attrs = w.attrs
		updated[i] = nw
	}

	return t.commit(updated)
}

// Rebase shifts the whole trajectory by a constant latitude/longitude delta
// so that the first waypoint lands on ref
func (t *Trajectory) Rebase(ref geo.LatLon) error {
	if len(t.points) == 0 {
		return ErrEmptyTrajectory
	}
	if !ref.Valid() {
		return fmt.Errorf("%w: %v", geo.ErrInvalidCoordinate, ref)
	}

	origin := t.points[0].Geodetic
	dLat, dLon := ref.Lat-origin.Lat, ref.Lon-origin.Lon

	updated := make(map[int]Waypoint, len(t.points))
	for i, w := range t.points {
		p, err := geo.NewLatLon(w.Geodetic.Lat+dLat, w.Geodetic.Lon+dLon)
		if err != nil {
			return fmt.Errorf("rebase waypoint %d: %w", i, err)
		}
		nw, err := t.derive(p, t.zoneNumber)
		if err != nil {
			return fmt.Errorf("rebase waypoint %d: %w", i, err)
		}
		nw.attrs = w.attrs
		updated[i] = nw
	}
	return t.commit(updated)
}

// EnableUTM starts tracking UTM coordinates, or moves an already tracked
// trajectory to another zone. zoneNumber 0 selects the first waypoint's
// natural zone. Missing UTM columns are appended to the header.
func (t *Trajectory) EnableUTM(zoneNumber int) error {
	if zoneNumber < 0 || zoneNumber > 60 {
		return fmt.Errorf("%w: zone number %d", geo.ErrOutOfRange, zoneNumber)
	}
	if zoneNumber == 0 && len(t.points) > 0 {
		p := t.points[0].Geodetic
		zoneNumber = geo.ZoneNumber(p.Lat, p.Lon)
	}

	probe := &Trajectory{utm: true}
	updated := make([]Waypoint, len(t.points))
	for i, w := range t.points {
		nw, err := probe.derive(w.Geodetic, zoneNumber)
		if err != nil {
			return fmt.Errorf("utm waypoint %d: %w", i, err)
		}
		nw.attrs = w.attrs
		updated[i] = nw
	}

	t.utm = true
	t.zoneNumber = zoneNumber
	t.points = updated
	for _, c := range utmColumns {
		if !slices.Contains(t.columns, c) {
			t.columns = append(t.columns, c)
		}
	}
	t.version++
	return nil
}

func (t *Trajectory) commit(updated map[int]Waypoint) error {
	if len(updated) == 0 {
		return nil
	}
	for i, w := range updated {
		t.points[i] = w
	}
	t.version++
	return nil
}
