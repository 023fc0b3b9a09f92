// Package qdag implements the QDAG: a quadtree augmented at every internal node more than one
// level above the leaves with 5 overlapping "intermediate" children (north, south, east, west, centre, each offset by half a
// child-width) in addition to its 4 ordinary quadrant children. The intermediate children let the
// Single Range Cover (SRC) algorithm return one smallest aligned square containing any query,
// at the cost of tagging each point with every ancestor square (ordinary and intermediate) that
// contains it.
//
// Children are computed arithmetically from a bounding rectangle rather than looked up in a
// materialized Rect-keyed map: the DAG's overlapping-child property means two different parents
// can share a child value, which a map keyed by Rect equality handles by aliasing but which is
// simpler and more memory-predictable to recompute on demand.
package qdag

import "github.com/cloudsecuritygroup/ers/geometry"

// Tree is a QDAG rooted at Bound with the given subdivision level.
type Tree struct {
	Bound geometry.Rect
	Level int
}

// New returns a Tree rooted at bound with the given subdivision level.
func New(bound geometry.Rect, level int) Tree {
	return Tree{Bound: bound, Level: level}
}

func quadDivisions(r geometry.Rect) []geometry.Rect {
	sx, sy := r.Start.X, r.Start.Y
	cw := r.XLength() / 2
	ch := r.YLength() / 2

	return []geometry.Rect{
		{Start: geometry.Point{X: sx, Y: sy}, End: geometry.Point{X: sx + cw, Y: sy + ch}},
		{Start: geometry.Point{X: sx, Y: sy + ch}, End: geometry.Point{X: sx + cw, Y: sy + 2*ch}},
		{Start: geometry.Point{X: sx + cw, Y: sy + ch}, End: geometry.Point{X: sx + 2*cw, Y: sy + 2*ch}},
		{Start: geometry.Point{X: sx + cw, Y: sy}, End: geometry.Point{X: sx + 2*cw, Y: sy + ch}},
	}
}

func intermediateDivisions(r geometry.Rect) []geometry.Rect {
	sx, sy := r.Start.X, r.Start.Y
	cw := r.XLength() / 2
	ch := r.YLength() / 2
	hcw := cw / 2
	hch := ch / 2

	return []geometry.Rect{
		{Start: geometry.Point{X: sx + hcw, Y: sy + ch}, End: geometry.Point{X: sx + hcw + cw, Y: sy + 2*ch}},     // north
		{Start: geometry.Point{X: sx + hcw, Y: sy}, End: geometry.Point{X: sx + hcw + cw, Y: sy + ch}},           // south
		{Start: geometry.Point{X: sx, Y: sy + hch}, End: geometry.Point{X: sx + cw, Y: sy + hch + ch}},           // west
		{Start: geometry.Point{X: sx + cw, Y: sy + hch}, End: geometry.Point{X: sx + 2*cw, Y: sy + hch + ch}},    // east
		{Start: geometry.Point{X: sx + hcw, Y: sy + hch}, End: geometry.Point{X: sx + hcw + cw, Y: sy + hch + ch}}, // centre
	}
}

// ContainingCovers returns every square in the QDAG — the root plus every ordinary and
// intermediate descendant square — that contains point. This is the build-time tagging a point
// receives.
func (t Tree) ContainingCovers(point geometry.Point) []geometry.Rect {
	result := []geometry.Rect{t.Bound}
	result = append(result, containingHelper(t.Bound, t.Level, point)...)
	return dedup(result)
}

func containingHelper(rect geometry.Rect, height int, point geometry.Point) []geometry.Rect {
	if height <= 0 {
		return nil
	}

	children := quadDivisions(rect)
	if height >= 2 {
		children = append(children, intermediateDivisions(rect)...)
	}

	var result []geometry.Rect
	for _, child := range children {
		if child.ContainsPoint(point) {
			result = append(result, child)
			result = append(result, containingHelper(child, height-1, point)...)
		}
	}
	return result
}

func dedup(rects []geometry.Rect) []geometry.Rect {
	var result []geometry.Rect
	for _, r := range rects {
		found := false
		for _, existing := range result {
			if existing == r {
				found = true
				break
			}
		}
		if !found {
			result = append(result, r)
		}
	}
	return result
}

// SRCCover returns the single smallest power-of-two-aligned square, drawn from the QDAG, that
// contains query. query is treated as closed (its End corner is the query's last included
// coordinate, one less than the half-open convention the rest of this package uses); SRCCover
// adjusts internally.
func (t Tree) SRCCover(query geometry.Rect) geometry.Rect {
	adjusted := geometry.Rect{
		Start: query.Start,
		End:   geometry.Point{X: query.End.X + 1, Y: query.End.Y + 1},
	}

	longest := adjusted.XLength()
	if adjusted.YLength() > longest {
		longest = adjusted.YLength()
	}

	nextPow := int64(1)
	for nextPow < longest {
		nextPow *= 2
	}

	if nextPow == 1 {
		return adjusted
	}

	return t.srcCoverHelper(adjusted, nextPow, nextPow/2)
}

func (t Tree) srcCoverHelper(query geometry.Rect, nextPow, offset int64) geometry.Rect {
	leftStartX := floorDiv(query.Start.X, offset) * offset
	leftStartY := floorDiv(query.Start.Y, offset) * offset

	rightEndX := ceilDiv(query.End.X, offset) * offset
	rightEndY := ceilDiv(query.End.Y, offset) * offset

	xCovers := [2]int64{leftStartX, rightEndX - nextPow}
	yCovers := [2]int64{leftStartY, rightEndY - nextPow}

	for _, sx := range xCovers {
		for _, sy := range yCovers {
			candidate := geometry.Rect{
				Start: geometry.Point{X: sx, Y: sy},
				End:   geometry.Point{X: sx + nextPow, Y: sy + nextPow},
			}
			if t.Bound.ContainsRect(candidate) && candidate.ContainsRect(query) {
				return candidate
			}
		}
	}

	return t.srcCoverHelper(query, nextPow*2, offset*2)
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func ceilDiv(a, b int64) int64 {
	return -floorDiv(-a, b)
}
