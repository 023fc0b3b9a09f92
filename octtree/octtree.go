// Package octtree is the 3-D counterpart of quadtree: the geometric Best Range Cover algorithm
// over a recursively subdivided cube domain.
package octtree

import "github.com/cloudsecuritygroup/ers/geometry"

// Tree is a cube domain recursively subdivided by geometry.Rect3D.Divide.
type Tree struct {
	Bound geometry.Rect3D
	Level int
}

// New returns a Tree rooted at bound with the given subdivision level.
func New(bound geometry.Rect3D, level int) Tree {
	return Tree{Bound: bound, Level: level}
}

// BRCCover returns the minimum set of disjoint boxes, drawn from the implicit octtree, whose
// union covers query.
func (t Tree) BRCCover(query geometry.Rect3D) []geometry.Rect3D {
	return brcCoverHelper(query, t.Bound)
}

func brcCoverHelper(query, node geometry.Rect3D) []geometry.Rect3D {
	if query.ContainsRectInclusive(node) {
		return appendUnique(nil, node)
	}

	if node.End.X < query.Start.X || node.End.Y < query.Start.Y || node.End.Z < query.Start.Z ||
		query.End.X < node.Start.X || query.End.Y < node.Start.Y || query.End.Z < node.Start.Z {
		return nil
	}

	var result []geometry.Rect3D
	for _, child := range node.Divide() {
		for _, r := range brcCoverHelper(query, child) {
			result = appendUnique(result, r)
		}
	}
	return result
}

func appendUnique(result []geometry.Rect3D, r geometry.Rect3D) []geometry.Rect3D {
	for _, existing := range result {
		if existing == r {
			return result
		}
	}
	return append(result, r)
}

// ContainingCovers yields, for each power p in [0, Level], the aligned cube of side 2^p whose
// lower-left-back corner is the p-bit-truncated point, and that contains point.
func (t Tree) ContainingCovers(point geometry.Point3D) []geometry.Rect3D {
	covers := make([]geometry.Rect3D, 0, t.Level+1)
	for power := 0; power <= t.Level; power++ {
		size := int64(1) << uint(power)
		leftX := floorDiv(point.X, size) * size
		leftY := floorDiv(point.Y, size) * size
		leftZ := floorDiv(point.Z, size) * size
		covers = append(covers, geometry.Rect3D{
			Start: geometry.Point3D{X: leftX, Y: leftY, Z: leftZ},
			End:   geometry.Point3D{X: leftX + size - 1, Y: leftY + size - 1, Z: leftZ + size - 1},
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
