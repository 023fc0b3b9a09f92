// Package geometry provides the Point, Point3D, Rect, and Rect3D types shared by every
// range-cover algorithm in the module.
//
// Rect and Rect3D use a half-open [start, end) convention in ContainsPoint and ContainsRect,
// matching the QDAG family. Divide and ContainsRectInclusive instead treat End as inclusive,
// matching the quadtree/octtree BRC family. The 1-D range-tree and TDAG packages instead work
// directly with closed [lo, hi] integer pairs; the two conventions are deliberately kept
// apart (see the rangetree and tdag package docs) and must never be interchanged.
package geometry

import "encoding/binary"

// Point is an integer coordinate in 2-dimensional space.
type Point struct {
	X, Y int64
}

// NewPoint returns the point (x, y).
func NewPoint(x, y int64) Point {
	return Point{X: x, Y: y}
}

// Dominates reports whether p is componentwise <= other, the ordering relation queries must
// satisfy (p1 dominates the origin side of a range, p2 the far side).
func (p Point) Dominates(other Point) bool {
	return p.X <= other.X && p.Y <= other.Y
}

// Bytes returns a fixed-width, injective big-endian encoding of p: 8 bytes of X followed by 8
// bytes of Y. It is used as the Linear scheme's per-point label and must stay bit-identical
// between index build and trapdoor generation for a given point.
func (p Point) Bytes() []byte {
	var b [16]byte
	binary.BigEndian.PutUint64(b[0:8], uint64(p.X))
	binary.BigEndian.PutUint64(b[8:16], uint64(p.Y))
	return b[:]
}
