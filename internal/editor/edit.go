package editor

import (
	"fmt"
	"log/slog"

	"github.com/philipparndt/gowaypoint/pkg/geo"
	"github.com/philipparndt/gowaypoint/pkg/interpolate"
)

// Action says what a click did
type Action int

const (
	// Inspected means no mode captured the click; Nearest describes the
	// closest waypoint
	Inspected Action = iota
	// Added means waypoints were appended starting at First
	Added
	// Anchored means the first click of a line or fill was recorded
	Anchored
)

func (a Action) String() string {
	switch a {
	case Inspected:
		return "inspected"
	case Added:
		return "added"
	case Anchored:
		return "anchored"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// ClickResult describes the effect of a click
type ClickResult struct {
	Action   Action
	Position geo.LatLon
	First    int // index of the first appended waypoint
	Count    int // number of appended waypoints
	Capped   bool
	Nearest  *Nearest
}

// Click handles a click at a projected position
func (s *Session) Click(q geo.XY) (ClickResult, error) {
	p, err := geo.ToGeodetic(q)
	if err != nil {
		return ClickResult{}, err
	}
	return s.click(p, q)
}

// ClickLatLon handles a click at a geodetic position
func (s *Session) ClickLatLon(p geo.LatLon) (ClickResult, error) {
	q, err := geo.ToProjected(p)
	if err != nil {
		return ClickResult{}, err
	}
	return s.click(p, q)
}

func (s *Session) click(p geo.LatLon, q geo.XY) (ClickResult, error) {
	switch s.mode.Kind {
	case AddingPoint:
		first, err := s.traj.Append(p)
		if err != nil {
			return ClickResult{}, err
		}
		s.sync()
		s.logger.Debug("add", slog.Int("index", first), slog.Int("len", s.traj.Len()))
		return ClickResult{Action: Added, Position: p, First: first, Count: 1}, nil

	case DrawingLine, FillPending:
		if s.mode.Anchor == nil {
			anchor := p
			s.mode.Anchor = &anchor
			return ClickResult{Action: Anchored, Position: p}, nil
		}
		return s.completeSegment(p)

	default:
		n, _, err := s.Hit(q)
		if err != nil {
			return ClickResult{Action: Inspected, Position: p}, err
		}
		return ClickResult{Action: Inspected, Position: p, Nearest: &n}, nil
	}
}

// completeSegment interpolates from the anchor to p and appends the result.
// The session returns to idle whether or not it succeeds.
func (s *Session) completeSegment(p geo.LatLon) (ClickResult, error) {
	mode := s.mode
	s.setMode(Mode{Kind: Idle})

	res, err := interpolate.Between(*mode.Anchor, p, mode.Spacing, s.opts.MaxPoints)
	if err != nil {
		s.logger.Debug("interpolate failed", slog.String("mode", mode.Kind.String()), slog.Any("err", err))
		return ClickResult{}, err
	}
	if res.Capped {
		s.logger.Warn("interpolation capped",
			slog.Int("requested", res.Requested),
			slog.Int("max", s.opts.MaxPoints),
			slog.Float64("distance", res.Distance))
	}

	first, err := s.traj.AppendAll(res.Points)
	if err != nil {
		return ClickResult{}, err
	}
	s.sync()
	s.logger.Debug(mode.Kind.String(),
		slog.Int("count", len(res.Points)),
		slog.Float64("spacing", mode.Spacing),
		slog.Int("len", s.traj.Len()))

	return ClickResult{
		Action:   Added,
		Position: p,
		First:    first,
		Count:    len(res.Points),
		Capped:   res.Capped,
	}, nil
}

// DeleteSelected removes the selected waypoints and clears the selection.
// It returns the number removed.
func (s *Session) DeleteSelected() (int, error) {
	if len(s.selection) == 0 {
		return 0, ErrEmptySelection
	}
	n := len(s.selection)
	if err := s.traj.DeleteIndices(s.selection); err != nil {
		return 0, err
	}
	s.selection = nil
	s.sync()
	s.logger.Debug("delete", slog.Int("count", n), slog.Int("len", s.traj.Len()))
	return n, nil
}

// DeleteBetweenSelected removes the waypoints strictly between exactly two
// selected waypoints. The two stay selected at their new indices.
func (s *Session) DeleteBetweenSelected() (int, error) {
	if len(s.selection) != 2 {
		return 0, fmt.Errorf("%w: need 2, have %d", ErrSelectionSize, len(s.selection))
	}
	a, b := s.selection[0], s.selection[1]
	if err := s.traj.DeleteRange(a+1, b); err != nil {
		return 0, err
	}
	n := b - a - 1
	s.selection = []int{a, a + 1}
	s.sync()
	s.logger.Debug("delete between", slog.Int("from", a), slog.Int("to", b), slog.Int("count", n), slog.Int("len", s.traj.Len()))
	return n, nil
}

// DeleteRange removes the waypoints in [start, end) and clears the selection
func (s *Session) DeleteRange(start, end int) error {
	if err := s.traj.DeleteRange(start, end); err != nil {
		return err
	}
	if end > start {
		s.selection = nil
	}
	s.sync()
	s.logger.Debug("delete range", slog.Int("start", start), slog.Int("end", end), slog.Int("len", s.traj.Len()))
	return nil
}

// Translate moves the selected waypoints, or all of them when nothing is
// selected, by dx east and dy north metres
func (s *Session) Translate(dx, dy float64) error {
	offset := geo.NewXY(dx, dy)
	var err error
	if s.opts.GroundOffsets {
		err = s.traj.TranslateGround(offset, s.selection)
	} else {
		err = s.traj.Translate(offset, s.selection)
	}
	if err != nil {
		return err
	}
	s.sync()
	s.logger.Debug("translate",
		slog.Float64("dx", dx),
		slog.Float64("dy", dy),
		slog.Int("selected", len(s.selection)),
		slog.Bool("ground", s.opts.GroundOffsets))
	return nil
}

// Move translates by a distance in centimetres in a compass direction
func (s *Session) Move(d Direction, centimetres float64) error {
	v := d.unit().Mul(centimetres / 100)
	return s.Translate(v.X, v.Y)
}

// Rebase shifts the whole trajectory so its first waypoint lands on ref
func (s *Session) Rebase(ref geo.LatLon) error {
	if err := s.traj.Rebase(ref); err != nil {
		return err
	}
	s.sync()
	s.logger.Debug("rebase", slog.String("ref", ref.String()), slog.Int("len", s.traj.Len()))
	return nil
}

// EnableUTM starts tracking UTM coordinates in a zone (0 for automatic)
func (s *Session) EnableUTM(zoneNumber int) error {
	if err := s.traj.EnableUTM(zoneNumber); err != nil {
		return err
	}
	s.sync()
	s.logger.Debug("utm", slog.Int("zone", s.traj.ZoneNumber()))
	return nil
}
