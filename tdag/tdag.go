// Package tdag implements the TDAG: a balanced 1-D range tree augmented at every internal node
// with a virtual "middle" interval covering the central half of that node's range. The middle
// interval lets the Single Range Cover (SRC) algorithm return one node for queries that straddle
// the left/right split, at the cost of extra build-time tagging (every ancestor interval that
// contains the point, including middles, rather than just the root-to-leaf path).
package tdag

import "github.com/cloudsecuritygroup/ers/canon"

// Tree is a node in a TDAG. Middle is present on every internal node (Left and Right non-nil);
// leaves also carry a Middle computed by the same formula, but it is never consulted.
type Tree struct {
	Left, Right *Tree
	Middle      canon.Interval
	Range       canon.Interval
	Height      int
}

// New builds a TDAG of the given height, covering [0, 2^height - 1].
func New(height int) *Tree {
	return build(height, 0, (int64(1)<<uint(height))-1)
}

func build(height int, lo, hi int64) *Tree {
	if height < 0 {
		return nil
	}
	mid := lo + (hi-lo)/2
	sum := lo + hi
	mid0 := mid - sum/4
	mid1 := mid + sum/4 + 1
	return &Tree{
		Left:   build(height-1, lo, mid),
		Right:  build(height-1, mid+1, hi),
		Middle: canon.Interval{Lo: mid0, Hi: mid1},
		Range:  canon.Interval{Lo: lo, Hi: hi},
		Height: height,
	}
}

func intervalContainsInterval(main, secondary canon.Interval) bool {
	return main.Lo <= secondary.Lo && main.Hi >= secondary.Hi
}

// SRCCover returns the single node range that contains query and is minimal among the candidate
// nodes at each level (left subtree, right subtree, and the virtual middle): at a node
// containing the query, if both children do not contain it but the middle does, the middle
// wins; otherwise the search recurses into whichever child contains the query, falling back to
// the current node's own range if neither child does.
func (t *Tree) SRCCover(query canon.Interval) canon.Interval {
	cover, _ := t.srcCoverHelper(query)
	return cover
}

func (t *Tree) srcCoverHelper(query canon.Interval) (canon.Interval, bool) {
	if t == nil || !intervalContainsInterval(t.Range, query) {
		return canon.Interval{}, false
	}

	if t.Left != nil && t.Right != nil {
		if intervalContainsInterval(t.Middle, query) {
			if !intervalContainsInterval(t.Left.Range, query) && !intervalContainsInterval(t.Right.Range, query) {
				return t.Middle, true
			}
		}
	}

	if left, ok := t.Left.srcCoverHelper(query); ok {
		return left, true
	}
	if right, ok := t.Right.srcCoverHelper(query); ok {
		return right, true
	}
	return t.Range, true
}

// Ancestors descends the tree from the root towards the leaf val, returning every ancestor
// range the point falls in: the root-to-leaf path, plus every ancestor's virtual middle interval
// that contains val. This is the build-time
// tagging a point receives under SRC: a query's single cover token can land on any of these
// ranges, so every point must be tagged with all of them.
func Ancestors(height int, val int64) []canon.Interval {
	lo, hi := int64(0), (int64(1)<<uint(height))-1
	var ranges []canon.Interval
	contains := func(iv canon.Interval) bool {
		for _, r := range ranges {
			if r == iv {
				return true
			}
		}
		return false
	}

	for !(lo == val && hi == val) {
		cur := canon.Interval{Lo: lo, Hi: hi}
		if !contains(cur) {
			ranges = append(ranges, cur)
		}

		mid := lo + (hi-lo)/2
		sum := lo + hi
		mid0 := mid - sum/4
		mid1 := mid + sum/4 + 1

		if val >= mid0 && val <= mid1 {
			middle := canon.Interval{Lo: mid0, Hi: mid1}
			if !contains(middle) {
				ranges = append(ranges, middle)
			}
		}

		if val <= mid {
			hi = mid
		} else {
			lo = mid + 1
		}
	}

	ranges = append(ranges, canon.Interval{Lo: val, Hi: val})
	return ranges
}
