package editor

import (
	"fmt"
	"strings"

	"github.com/philipparndt/gowaypoint/pkg/geo"
)

// ModeKind enumerates the edit modes
type ModeKind int

const (
	Idle ModeKind = iota
	AddingPoint
	DrawingLine
	FillPending
)

func (k ModeKind) String() string {
	switch k {
	case Idle:
		return "idle"
	case AddingPoint:
		return "adding-point"
	case DrawingLine:
		return "drawing-line"
	case FillPending:
		return "fill-pending"
	default:
		return fmt.Sprintf("mode(%d)", int(k))
	}
}

// Mode is the active edit mode. Anchor holds the first click of a line or
// fill and is nil until it has been made; Spacing is the interpolation
// spacing for line and fill modes.
type Mode struct {
	Kind    ModeKind
	Anchor  *geo.LatLon
	Spacing float64
}

func (m Mode) String() string {
	var b strings.Builder
	b.WriteString(m.Kind.String())
	if m.Kind == DrawingLine || m.Kind == FillPending {
		fmt.Fprintf(&b, " spacing=%gm", m.Spacing)
		if m.Anchor != nil {
			fmt.Fprintf(&b, " anchor=%v", *m.Anchor)
		}
	}
	return b.String()
}

// Direction is a compass direction for Move
type Direction int

const (
	East Direction = iota
	West
	North
	South
)

func (d Direction) String() string {
	switch d {
	case East:
		return "east"
	case West:
		return "west"
	case North:
		return "north"
	case South:
		return "south"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// ParseDirection accepts direction names and their first letters
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "east", "e", "right":
		return East, nil
	case "west", "w", "left":
		return West, nil
	case "north", "n", "up":
		return North, nil
	case "south", "s", "down":
		return South, nil
	default:
		return 0, fmt.Errorf("unknown direction %q", s)
	}
}

// unit returns the direction as a projected unit vector (y grows north)
func (d Direction) unit() geo.XY {
	switch d {
	case East:
		return geo.NewXY(1, 0)
	case West:
		return geo.NewXY(-1, 0)
	case North:
		return geo.NewXY(0, 1)
	default:
		return geo.NewXY(0, -1)
	}
}
