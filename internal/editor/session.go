// Package editor owns an open trajectory together with its spatial index,
// edit mode and selection, and applies user edits to it.
package editor

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/philipparndt/gowaypoint/internal/config"
	"github.com/philipparndt/gowaypoint/pkg/geo"
	"github.com/philipparndt/gowaypoint/pkg/interpolate"
	"github.com/philipparndt/gowaypoint/pkg/spatial"
	"github.com/philipparndt/gowaypoint/pkg/trajectory"
)

var (
	// ErrEmptySelection is returned by selection-based edits with nothing selected
	ErrEmptySelection = errors.New("no waypoints selected")
	// ErrSelectionSize is returned when an edit needs a specific number of
	// selected waypoints
	ErrSelectionSize = errors.New("wrong number of selected waypoints")
)

// Options tune a session
type Options struct {
	LineSpacing   float64
	FillSpacing   float64
	MaxPoints     int
	HitThreshold  float64
	GroundOffsets bool
}

// OptionsFromConfig maps edit settings onto session options
func OptionsFromConfig(c config.EditConfig) Options {
	return Options{
		LineSpacing:   c.LineSpacing,
		FillSpacing:   c.FillSpacing,
		MaxPoints:     c.MaxPoints,
		HitThreshold:  c.HitThreshold,
		GroundOffsets: c.GroundOffsets,
	}
}

// Session is a single open trajectory with its editing state. It is not
// safe for concurrent use.
type Session struct {
	traj      *trajectory.Trajectory
	index     *spatial.Index
	mode      Mode
	selection []int // sorted, unique
	opts      Options
	logger    *slog.Logger
}

// NewSession opens a trajectory for editing. A nil logger discards logs.
func NewSession(t *trajectory.Trajectory, opts Options, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Session{opts: opts, logger: logger}
	s.Load(t)
	return s
}

// Load replaces the trajectory wholesale and resets mode and selection
func (s *Session) Load(t *trajectory.Trajectory) {
	if t == nil {
		t = trajectory.New(false)
	}
	s.traj = t
	s.index = nil
	s.mode = Mode{Kind: Idle}
	s.selection = nil
	s.sync()
	s.logger.Debug("load", slog.Int("len", t.Len()), slog.Bool("utm", t.HasUTM()))
}

// sync rebuilds the spatial index if the trajectory changed since it was
// built
func (s *Session) sync() {
	if s.index != nil && s.index.Tag() == s.traj.Version() {
		return
	}
	s.index = spatial.BuildTagged(s.traj.Projected(), s.traj.Version())
}

// Trajectory returns the open trajectory. Callers must edit it through the
// session so the index stays current.
func (s *Session) Trajectory() *trajectory.Trajectory {
	return s.traj
}

// Len returns the number of waypoints
func (s *Session) Len() int {
	return s.traj.Len()
}

// Waypoints returns the waypoints in order for display
func (s *Session) Waypoints() []trajectory.Waypoint {
	return s.traj.Waypoints()
}

// Table returns the trajectory as a table for saving
func (s *Session) Table() trajectory.Table {
	return s.traj.Table()
}

// Options returns the session options
func (s *Session) Options() Options {
	return s.opts
}

// Mode returns the active edit mode
func (s *Session) Mode() Mode {
	m := s.mode
	if m.Anchor != nil {
		a := *m.Anchor
		m.Anchor = &a
	}
	return m
}

// EnterAddMode makes every click append a waypoint until cancelled
func (s *Session) EnterAddMode() {
	s.setMode(Mode{Kind: AddingPoint})
}

// EnterLineMode makes the next two clicks draw an interpolated line at the
// configured line spacing
func (s *Session) EnterLineMode() {
	s.setMode(Mode{Kind: DrawingLine, Spacing: s.opts.LineSpacing})
}

// EnterFillMode makes the next two clicks fill the gap between them at the
// given spacing. A zero spacing selects the configured fill spacing.
func (s *Session) EnterFillMode(spacing float64) error {
	if spacing == 0 {
		spacing = s.opts.FillSpacing
	}
	if !(spacing > 0) {
		return fmt.Errorf("%w: %v", interpolate.ErrInvalidSpacing, spacing)
	}
	s.setMode(Mode{Kind: FillPending, Spacing: spacing})
	return nil
}

// Cancel returns to idle, discarding any pending anchor
func (s *Session) Cancel() {
	s.setMode(Mode{Kind: Idle})
}

func (s *Session) setMode(m Mode) {
	if s.mode.Kind != m.Kind {
		s.logger.Debug("mode", slog.String("from", s.mode.Kind.String()), slog.String("to", m.Kind.String()))
	}
	s.mode = m
}

// Selection returns the selected indices in ascending order
func (s *Session) Selection() []int {
	return slices.Clone(s.selection)
}

// SetSelection replaces the selection. Indices must exist; duplicates are
// dropped.
func (s *Session) SetSelection(indices []int) error {
	sel := slices.Clone(indices)
	for _, i := range sel {
		if i < 0 || i >= s.traj.Len() {
			return fmt.Errorf("%w: index %d with %d waypoints", trajectory.ErrInvalidRange, i, s.traj.Len())
		}
	}
	slices.Sort(sel)
	s.selection = slices.Compact(sel)
	return nil
}

// ClearSelection empties the selection
func (s *Session) ClearSelection() {
	s.selection = nil
}

// Nearest is the outcome of a nearest-waypoint query
type Nearest struct {
	Index    int
	Waypoint trajectory.Waypoint
	Distance float64 // projected metres
	Hit      bool    // within the hit threshold
}

// Nearest finds the waypoint closest to a projected position
func (s *Session) Nearest(q geo.XY) (Nearest, error) {
	n, _, err := s.Hit(q)
	return n, err
}

// NearestLatLon finds the waypoint closest to a geodetic position
func (s *Session) NearestLatLon(p geo.LatLon) (Nearest, error) {
	q, err := geo.ToProjected(p)
	if err != nil {
		return Nearest{}, err
	}
	return s.Nearest(q)
}

// Hit reports the waypoint under a click, if any is within the hit threshold.
// A negative threshold makes every click a hit.
func (s *Session) Hit(q geo.XY) (Nearest, bool, error) {
	s.sync()
	i, d, hit, err := s.index.Hit(q, s.opts.HitThreshold)
	if err != nil {
		return Nearest{}, false, err
	}
	return Nearest{Index: i, Waypoint: s.traj.At(i), Distance: d, Hit: hit}, hit, nil
}
