package editor

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/philipparndt/gowaypoint/pkg/geo"
)

// ErrUnknownCommand is returned for unrecognised shell commands
var ErrUnknownCommand = errors.New("unknown command")

// ErrUsage is returned when a command has the wrong arguments
var ErrUsage = errors.New("usage")

// SaveFunc writes the session's trajectory. An empty path means the file it
// was loaded from.
type SaveFunc func(s *Session, path string) error

// Shell drives a session from line commands, one per line
type Shell struct {
	session *Session
	out     io.Writer
	save    SaveFunc
}

// NewShell creates a shell writing responses to out. save may be nil, in
// which case the save command fails.
func NewShell(s *Session, out io.Writer, save SaveFunc) *Shell {
	return &Shell{session: s, out: out, save: save}
}

const shellHelp = `commands:
  add                  append a waypoint on every click
  line                 draw an interpolated line between the next two clicks
  fill [SPACING]       fill between the next two clicks (metres)
  cancel               return to idle
  click X Y            click at a projected position
  clickll LAT LON      click at a geodetic position
  select I...          select waypoints
  clear                clear the selection
  delete               delete the selected waypoints
  between              delete waypoints between two selected waypoints
  range A B            delete waypoints A..B-1
  move DIR CM          move selection (or all) east|west|north|south
  translate DX DY      move selection (or all) by metres
  rebase LAT LON       shift the trajectory so waypoint 0 lands here
  nearest X Y          report the waypoint nearest a projected position
  list                 list waypoints
  mode                 show the edit mode
  save [PATH]          write the trajectory
  quit                 leave the shell`

// Run executes commands from r until EOF, quit or ctx is done. Command
// errors are reported and do not stop the shell.
func (sh *Shell) Run(ctx context.Context, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		quit, err := sh.Execute(scanner.Text())
		if err != nil {
			fmt.Fprintf(sh.out, "error: %v\n", err)
		}
		if quit {
			return nil
		}
	}
	return scanner.Err()
}

// Execute runs a single command line
func (sh *Shell) Execute(line string) (quit bool, err error) {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]
	s := sh.session

	switch cmd {
	case "quit", "exit":
		return true, nil

	case "help", "?":
		fmt.Fprintln(sh.out, shellHelp)

	case "add":
		s.EnterAddMode()
		sh.printMode()

	case "line":
		s.EnterLineMode()
		sh.printMode()

	case "fill":
		spacing := 0.0
		if len(args) > 0 {
			if spacing, err = parseFloats(args, 1, "fill [SPACING]"); err != nil {
				return false, err
			}
		}
		if err := s.EnterFillMode(spacing); err != nil {
			return false, err
		}
		sh.printMode()

	case "cancel":
		s.Cancel()
		sh.printMode()

	case "click":
		v, err := parseN(args, 2, "click X Y")
		if err != nil {
			return false, err
		}
		res, err := s.Click(geo.NewXY(v[0], v[1]))
		if err != nil {
			return false, err
		}
		sh.printClick(res)

	case "clickll":
		v, err := parseN(args, 2, "clickll LAT LON")
		if err != nil {
			return false, err
		}
		res, err := s.ClickLatLon(geo.LatLon{Lat: v[0], Lon: v[1]})
		if err != nil {
			return false, err
		}
		sh.printClick(res)

	case "select":
		indices := make([]int, 0, len(args))
		for _, a := range args {
			i, err := strconv.Atoi(a)
			if err != nil {
				return false, fmt.Errorf("%w: select I...: %q is not an index", ErrUsage, a)
			}
			indices = append(indices, i)
		}
		if err := s.SetSelection(indices); err != nil {
			return false, err
		}
		fmt.Fprintf(sh.out, "selected %v\n", s.Selection())

	case "clear":
		s.ClearSelection()
		fmt.Fprintln(sh.out, "selection cleared")

	case "delete":
		n, err := s.DeleteSelected()
		if err != nil {
			return false, err
		}
		fmt.Fprintf(sh.out, "deleted %d, %d remaining\n", n, s.Len())

	case "between":
		n, err := s.DeleteBetweenSelected()
		if err != nil {
			return false, err
		}
		fmt.Fprintf(sh.out, "deleted %d, %d remaining\n", n, s.Len())

	case "range":
		if len(args) != 2 {
			return false, fmt.Errorf("%w: range A B", ErrUsage)
		}
		a, errA := strconv.Atoi(args[0])
		b, errB := strconv.Atoi(args[1])
		if errA != nil || errB != nil {
			return false, fmt.Errorf("%w: range A B", ErrUsage)
		}
		if err := s.DeleteRange(a, b); err != nil {
			return false, err
		}
		fmt.Fprintf(sh.out, "deleted %d, %d remaining\n", b-a, s.Len())

	case "move":
		if len(args) != 2 {
			return false, fmt.Errorf("%w: move DIR CM", ErrUsage)
		}
		d, err := ParseDirection(args[0])
		if err != nil {
			return false, err
		}
		cm, err := parseFloats(args[1:], 1, "move DIR CM")
		if err != nil {
			return false, err
		}
		if err := s.Move(d, cm); err != nil {
			return false, err
		}
		fmt.Fprintf(sh.out, "moved %s %gcm\n", d, cm)

	case "translate":
		v, err := parseN(args, 2, "translate DX DY")
		if err != nil {
			return false, err
		}
		if err := s.Translate(v[0], v[1]); err != nil {
			return false, err
		}
		fmt.Fprintf(sh.out, "translated %gm east %gm north\n", v[0], v[1])

	case "rebase":
		v, err := parseN(args, 2, "rebase LAT LON")
		if err != nil {
			return false, err
		}
		if err := s.Rebase(geo.LatLon{Lat: v[0], Lon: v[1]}); err != nil {
			return false, err
		}
		fmt.Fprintf(sh.out, "rebased to %v\n", s.Trajectory().At(0).Geodetic)

	case "nearest":
		v, err := parseN(args, 2, "nearest X Y")
		if err != nil {
			return false, err
		}
		n, err := s.Nearest(geo.NewXY(v[0], v[1]))
		if err != nil {
			return false, err
		}
		sh.printNearest(n)

	case "list":
		sh.printList()

	case "mode":
		sh.printMode()

	case "save":
		if sh.save == nil {
			return false, errors.New("saving is not available")
		}
		path := ""
		if len(args) > 0 {
			path = args[0]
		}
		if err := sh.save(s, path); err != nil {
			return false, err
		}
		fmt.Fprintf(sh.out, "saved %d waypoints\n", s.Len())

	default:
		return false, fmt.Errorf("%w: %q (try help)", ErrUnknownCommand, cmd)
	}

	return false, nil
}

func parseN(args []string, n int, usage string) ([]float64, error) {
	if len(args) != n {
		return nil, fmt.Errorf("%w: %s", ErrUsage, usage)
	}
	out := make([]float64, n)
	for i, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %q is not a number", ErrUsage, usage, a)
		}
		out[i] = v
	}
	return out, nil
}

func parseFloats(args []string, n int, usage string) (float64, error) {
	v, err := parseN(args, n, usage)
	if err != nil {
		return 0, err
	}
	return v[0], nil
}

func (sh *Shell) printMode() {
	fmt.Fprintf(sh.out, "mode %s\n", sh.session.Mode())
}

func (sh *Shell) printClick(res ClickResult) {
	switch res.Action {
	case Added:
		fmt.Fprintf(sh.out, "added %d at %d, %d total", res.Count, res.First, sh.session.Len())
		if res.Capped {
			fmt.Fprint(sh.out, " (capped)")
		}
		fmt.Fprintln(sh.out)
	case Anchored:
		fmt.Fprintf(sh.out, "anchor %v\n", res.Position)
	default:
		fmt.Fprintf(sh.out, "click %v ", res.Position)
		if res.Nearest == nil {
			fmt.Fprintln(sh.out)
			return
		}
		sh.printNearest(*res.Nearest)
	}
}

func (sh *Shell) printNearest(n Nearest) {
	hit := "miss"
	if n.Hit {
		hit = "hit"
	}
	fmt.Fprintf(sh.out, "nearest %d %v %.3fm %s\n", n.Index, n.Waypoint.Geodetic, n.Distance, hit)
}

func (sh *Shell) printList() {
	selected := make(map[int]bool)
	for _, i := range sh.session.Selection() {
		selected[i] = true
	}
	for i, w := range sh.session.Waypoints() {
		mark := " "
		if selected[i] {
			mark = "*"
		}
		fmt.Fprintf(sh.out, "%s%5d %v", mark, i, w.Geodetic)
		if w.HasUTM {
			fmt.Fprintf(sh.out, " %.3f %.3f %s", w.UTM.Easting, w.UTM.Northing, w.UTM.Zone)
		}
		fmt.Fprintln(sh.out)
	}
}
