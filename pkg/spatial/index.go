package spatial

import (
	"errors"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/quadtree"

	"github.com/philipparndt/gowaypoint/pkg/geo"
)

// ErrEmptyIndex is returned when querying an index built from zero points
var ErrEmptyIndex = errors.New("spatial index is empty")

// boundPadding keeps collinear or single-point inputs inside a non-degenerate bound
const boundPadding = 1.0

// entry ties a stored point back to its position in the input sequence
type entry struct {
	orb.Point
	seq int
}

// Index answers nearest-neighbour queries over a fixed set of projected
// points. It is immutable: structural changes to the source require a new
// Index.
type Index struct {
	tree  *quadtree.Quadtree
	count int
	tag   uint64
}

// Build constructs an index over points. The position of each point in the
// slice is the sequence index reported by queries. An empty slice yields a
// valid empty index.
func Build(points []geo.XY) *Index {
	return BuildTagged(points, 0)
}

// BuildTagged is Build with an owner-defined tag, typically the version of
// the data the points were taken from.
func BuildTagged(points []geo.XY, tag uint64) *Index {
	idx := &Index{count: len(points), tag: tag}
	if len(points) == 0 {
		return idx
	}

	mp := make(orb.MultiPoint, len(points))
	for i, p := range points {
		mp[i] = p.Point()
	}

	idx.tree = quadtree.New(mp.Bound().Pad(boundPadding))
	for i, p := range mp {
		if err := idx.tree.Add(entry{Point: p, seq: i}); err != nil {
			// Cannot happen: the bound was computed from the same points
			panic(fmt.Sprintf("spatial: point %d outside computed bound: %v", i, err))
		}
	}

	return idx
}

// Len returns the number of indexed points
func (idx *Index) Len() int {
	return idx.count
}

// Tag returns the tag the index was built with
func (idx *Index) Tag() uint64 {
	return idx.tag
}

// Nearest returns the sequence index of the point closest to q and the
// Euclidean distance to it in the projected plane.
func (idx *Index) Nearest(q geo.XY) (int, float64, error) {
	if idx == nil || idx.count == 0 {
		return 0, 0, ErrEmptyIndex
	}

	found := idx.tree.Find(q.Point())
	e, ok := found.(entry)
	if !ok {
		return 0, 0, ErrEmptyIndex
	}

	return e.seq, geo.XY{X: e.Point[0], Y: e.Point[1]}.Distance(q), nil
}

// Hit resolves q to its nearest point and reports whether that point lies
// within threshold. A negative threshold accepts any distance.
func (idx *Index) Hit(q geo.XY, threshold float64) (int, float64, bool, error) {
	seq, dist, err := idx.Nearest(q)
	if err != nil {
		return 0, 0, false, err
	}
	return seq, dist, threshold < 0 || dist <= threshold, nil
}
