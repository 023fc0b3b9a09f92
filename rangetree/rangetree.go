// Package rangetree implements a balanced binary tree over the closed interval [0, 2^height - 1]
// and the Best Range Cover (BRC) algorithm: given a query interval, BRCCover returns the minimum
// set of disjoint tree nodes whose union equals the query exactly.
//
// This package, and its sibling tdag, work in closed [lo, hi] interval space, distinct from the
// half-open [start, end) convention the geometry package uses for rectangles; see the geometry
// package doc.
package rangetree

import "github.com/cloudsecuritygroup/ers/canon"

// Tree is a node in a balanced 1-D range tree. A leaf has Left == Right == nil and a Range
// spanning a single integer.
type Tree struct {
	Left, Right *Tree
	Range       canon.Interval
	Height      int
}

// New builds a tree of the given height, covering [0, 2^height - 1].
func New(height int) *Tree {
	return build(height, 0, (int64(1)<<uint(height))-1)
}

func build(height int, lo, hi int64) *Tree {
	if height < 0 {
		return nil
	}
	mid := lo + (hi-lo)/2
	return &Tree{
		Left:   build(height-1, lo, mid),
		Right:  build(height-1, mid+1, hi),
		Range:  canon.Interval{Lo: lo, Hi: hi},
		Height: height,
	}
}

// intervalContainsInterval reports whether secondary lies entirely inside main.
func intervalContainsInterval(main, secondary canon.Interval) bool {
	return main.Lo <= secondary.Lo && main.Hi >= secondary.Hi
}

// intervalsOverlap reports whether a and b share at least one integer.
func intervalsOverlap(a, b canon.Interval) bool {
	return a.Lo <= b.Hi && b.Lo <= a.Hi
}

// BRCCover returns the minimal set of disjoint tree node ranges whose union is exactly query.
// query must lie within the tree's root range.
func (t *Tree) BRCCover(query canon.Interval) []canon.Interval {
	if t == nil || !intervalsOverlap(t.Range, query) {
		return nil
	}
	if intervalContainsInterval(query, t.Range) {
		return []canon.Interval{t.Range}
	}
	var result []canon.Interval
	result = append(result, t.Left.BRCCover(query)...)
	result = append(result, t.Right.BRCCover(query)...)
	return result
}

// Path descends the tree from the root towards the leaf val, returning every node range visited
// along the way, ending with the singleton range [val, val]. This is the build-time tagging a
// point receives: BRCCover at query time decomposes a range into disjoint nodes, and a point
// belongs to exactly the nodes on its root-to-leaf path, so tagging the path at build time is
// equivalent to (and far cheaper than) tagging every node the point could ever be covered by.
func Path(height int, val int64) []canon.Interval {
	lo, hi := int64(0), (int64(1)<<uint(height))-1
	var path []canon.Interval
	for !(lo == val && hi == val) {
		path = append(path, canon.Interval{Lo: lo, Hi: hi})
		mid := lo + (hi-lo)/2
		if val <= mid {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	path = append(path, canon.Interval{Lo: val, Hi: val})
	return path
}
