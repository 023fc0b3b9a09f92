// Package octdag is the 3-D counterpart of qdag: an octree augmented with 27 overlapping
// children per internal node (the 8 ordinary octants plus 19 further overlapping boxes on a
// half-child stride), once the node is more than one level above a leaf. Below that it falls back
// to the ordinary 8-way split, matching the 2-D QDAG's own height>=2 gate.
package octdag

import "github.com/cloudsecuritygroup/ers/geometry"

// Tree is an Oct-QDAG rooted at Bound with the given subdivision level.
type Tree struct {
	Bound geometry.Rect3D
	Level int
}

// New returns a Tree rooted at bound with the given subdivision level.
func New(bound geometry.Rect3D, level int) Tree {
	return Tree{Bound: bound, Level: level}
}

func octDivisions(r geometry.Rect3D) []geometry.Rect3D {
	sx, sy, sz := r.Start.X, r.Start.Y, r.Start.Z
	cw, ch, cd := r.XLength()/2, r.YLength()/2, r.ZLength()/2

	var rects []geometry.Rect3D
	for _, x := range [2]int64{sx, sx + cw} {
		for _, y := range [2]int64{sy, sy + ch} {
			for _, z := range [2]int64{sz, sz + cd} {
				rects = append(rects, geometry.Rect3D{
					Start: geometry.Point3D{X: x, Y: y, Z: z},
					End:   geometry.Point3D{X: x + cw, Y: y + ch, Z: z + cd},
				})
			}
		}
	}
	return rects
}

func overlappingDivisions(r geometry.Rect3D) []geometry.Rect3D {
	sx, sy, sz := r.Start.X, r.Start.Y, r.Start.Z
	cw, ch, cd := r.XLength()/2, r.YLength()/2, r.ZLength()/2
	hcw, hch, hcd := cw/2, ch/2, cd/2

	var rects []geometry.Rect3D
	for _, x := range [3]int64{sx, sx + hcw, sx + 2*hcw} {
		for _, y := range [3]int64{sy, sy + hch, sy + 2*hch} {
			for _, z := range [3]int64{sz, sz + hcd, sz + 2*hcd} {
				rects = append(rects, geometry.Rect3D{
					Start: geometry.Point3D{X: x, Y: y, Z: z},
					End:   geometry.Point3D{X: x + cw, Y: y + ch, Z: z + cd},
				})
			}
		}
	}
	return rects
}

func children(r geometry.Rect3D, height int) []geometry.Rect3D {
	if height >= 2 {
		return overlappingDivisions(r)
	}
	return octDivisions(r)
}

// ContainingCovers returns every box in the Oct-QDAG — the root plus every descendant box —
// that contains point.
func (t Tree) ContainingCovers(point geometry.Point3D) []geometry.Rect3D {
	result := []geometry.Rect3D{t.Bound}
	result = append(result, containingHelper(t.Bound, t.Level, point)...)
	return dedup(result)
}

func containingHelper(rect geometry.Rect3D, height int, point geometry.Point3D) []geometry.Rect3D {
	if height <= 0 {
		return nil
	}

	var result []geometry.Rect3D
	for _, child := range children(rect, height) {
		if child.ContainsPoint(point) {
			result = append(result, child)
			result = append(result, containingHelper(child, height-1, point)...)
		}
	}
	return result
}

func dedup(rects []geometry.Rect3D) []geometry.Rect3D {
	var result []geometry.Rect3D
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

// SRCCover returns the single smallest power-of-two-aligned box, drawn from the Oct-QDAG, that
// contains query. query's End corner is its last included coordinate; SRCCover adjusts
// internally to the half-open convention.
func (t Tree) SRCCover(query geometry.Rect3D) geometry.Rect3D {
	adjusted := geometry.Rect3D{
		Start: query.Start,
		End:   geometry.Point3D{X: query.End.X + 1, Y: query.End.Y + 1, Z: query.End.Z + 1},
	}

	longest := adjusted.XLength()
	if adjusted.YLength() > longest {
		longest = adjusted.YLength()
	}
	if adjusted.ZLength() > longest {
		longest = adjusted.ZLength()
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

func (t Tree) srcCoverHelper(query geometry.Rect3D, nextPow, offset int64) geometry.Rect3D {
	leftStartX := floorDiv(query.Start.X, offset) * offset
	leftStartY := floorDiv(query.Start.Y, offset) * offset
	leftStartZ := floorDiv(query.Start.Z, offset) * offset

	rightEndX := ceilDiv(query.End.X, offset) * offset
	rightEndY := ceilDiv(query.End.Y, offset) * offset
	rightEndZ := ceilDiv(query.End.Z, offset) * offset

	xCovers := [2]int64{leftStartX, rightEndX - nextPow}
	yCovers := [2]int64{leftStartY, rightEndY - nextPow}
	zCovers := [2]int64{leftStartZ, rightEndZ - nextPow}

	for _, sx := range xCovers {
		for _, sy := range yCovers {
			for _, sz := range zCovers {
				candidate := geometry.Rect3D{
					Start: geometry.Point3D{X: sx, Y: sy, Z: sz},
					End:   geometry.Point3D{X: sx + nextPow, Y: sy + nextPow, Z: sz + nextPow},
				}
				if t.Bound.ContainsRect(candidate) && candidate.ContainsRect(query) {
					return candidate
				}
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
