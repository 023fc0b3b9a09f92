// Package quadtree implements the geometric Best Range Cover (BRC) algorithm over a recursively
// subdivided square domain: BRCCover decomposes a query rectangle into the minimum set of
// disjoint, axis-aligned squares from the implicit tree that union to (at least) the query, and
// ContainingCovers tags a point with every aligned square that contains it, at every power-of-two
// scale up to the tree's level.
//
// No child dictionary is materialized; Divide on geometry.Rect computes a node's four children
// arithmetically on demand, the way the quad/oct tree family is meant to run in a systems
// language rather than a scripting one with hashable value types.
package quadtree

import "github.com/cloudsecuritygroup/ers/geometry"

// Tree is a square (or non-square rectangle) domain, with an inclusive End corner, recursively subdivided by
// geometry.Rect.Divide. Level bounds how many scales ContainingCovers yields.
type Tree struct {
	Bound geometry.Rect
	Level int
}

// New returns a Tree rooted at bound with the given subdivision level.
func New(bound geometry.Rect, level int) Tree {
	return Tree{Bound: bound, Level: level}
}

// BRCCover returns the minimum set of disjoint rectangles, drawn from the implicit quadtree,
// whose union covers query.
func (t Tree) BRCCover(query geometry.Rect) []geometry.Rect {
	return brcCoverHelper(query, t.Bound, nil)
}

func brcCoverHelper(query, node geometry.Rect, seen []geometry.Rect) []geometry.Rect {
	if query.ContainsRectInclusive(node) {
		return appendUnique(nil, node)
	}

	if node.End.X < query.Start.X || node.End.Y < query.Start.Y ||
		query.End.X < node.Start.X || query.End.Y < node.Start.Y {
		return nil
	}

	var result []geometry.Rect
	for _, child := range node.Divide() {
		for _, r := range brcCoverHelper(query, child, seen) {
			result = appendUnique(result, r)
		}
	}
	return result
}

func appendUnique(result []geometry.Rect, r geometry.Rect) []geometry.Rect {
	for _, existing := range result {
		if existing == r {
			return result
		}
	}
	return append(result, r)
}

// ContainingCovers yields, for each power p in [0, Level], the aligned square of side 2^p whose
// lower-left corner is the p-bit-truncated point, and that contains point. This is the build-time
// tagging a point receives: Level+1 covers per point.
func (t Tree) ContainingCovers(point geometry.Point) []geometry.Rect {
	covers := make([]geometry.Rect, 0, t.Level+1)
	for power := 0; power <= t.Level; power++ {
		size := int64(1) << uint(power)
		leftX := floorDiv(point.X, size) * size
		leftY := floorDiv(point.Y, size) * size
		covers = append(covers, geometry.Rect{
			Start: geometry.Point{X: leftX, Y: leftY},
			End:   geometry.Point{X: leftX + size - 1, Y: leftY + size - 1},
		})
	}
	return covers
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
