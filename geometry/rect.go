package geometry

import (
	"encoding/binary"
	"fmt"

	"github.com/cloudsecuritygroup/ers"
)

// Rect is an axis-aligned rectangle used by the geometric quadtree and QDAG families: the QDAG
// family treats it as half-open [Start, End), the quadtree family as inclusive [Start, End].
type Rect struct {
	Start, End Point
}

// NewRect constructs a Rect bounded by start (inclusive) and end (exclusive). It returns
// ers.ErrInvalidGeometry if start is not componentwise <= end.
func NewRect(start, end Point) (Rect, error) {
	if start.X > end.X || start.Y > end.Y {
		return Rect{}, fmt.Errorf("geometry: Rect(%v, %v): %w", start, end, ers.ErrInvalidGeometry)
	}
	return Rect{Start: start, End: end}, nil
}

// XLength returns the width of r along the X axis.
func (r Rect) XLength() int64 { return r.End.X - r.Start.X }

// YLength returns the width of r along the Y axis.
func (r Rect) YLength() int64 { return r.End.Y - r.Start.Y }

// ContainsPoint reports whether p lies in the half-open rectangle [Start, End).
func (r Rect) ContainsPoint(p Point) bool {
	return p.X >= r.Start.X && p.X < r.End.X &&
		p.Y >= r.Start.Y && p.Y < r.End.Y
}

// ContainsRect reports whether other is fully inside r under the half-open convention. This is
// the strict "in" relation the QDAG SRC search uses to test a candidate cover against the root
// and against the (end-exclusive-normalized) query.
func (r Rect) ContainsRect(other Rect) bool {
	return other.Start.X >= r.Start.X && other.Start.X < r.End.X &&
		other.Start.Y >= r.Start.Y && other.Start.Y < r.End.Y &&
		other.End.X > r.Start.X && other.End.X <= r.End.X &&
		other.End.Y > r.Start.Y && other.End.Y <= r.End.Y
}

// ContainsRectInclusive reports whether other is inside r, treating both rectangles' End
// corners as inclusive. This is the relation the quadtree/octtree BRC recursion uses to decide
// whether a node can be emitted as a cover without descending further.
func (r Rect) ContainsRectInclusive(other Rect) bool {
	return other.Start.X >= r.Start.X && other.Start.X <= r.End.X &&
		other.Start.Y >= r.Start.Y && other.Start.Y <= r.End.Y &&
		other.End.X >= r.Start.X && other.End.X <= r.End.X &&
		other.End.Y >= r.Start.Y && other.End.Y <= r.End.Y
}

// Divide splits r into its four quadrant children using the BRC quadtree's inclusive-endpoint
// arithmetic (the right/upper children start one past the midpoint). This is distinct from the
// QDAG family's child construction in package qdag, which uses half-open arithmetic throughout;
// the two must not be interchanged (see the package doc).
//
// Divide returns no children once r has collapsed to a single cell on both axes.
func (r Rect) Divide() []Rect {
	xHalf := floorDiv(r.Start.X+r.End.X, 2)
	yHalf := floorDiv(r.Start.Y+r.End.Y, 2)

	if r.End.X-r.Start.X < 1 && r.End.Y-r.Start.Y < 1 {
		return nil
	}

	return []Rect{
		{Start: Point{r.Start.X, r.Start.Y}, End: Point{xHalf, yHalf}},
		{Start: Point{r.Start.X, yHalf + 1}, End: Point{xHalf, r.End.Y}},
		{Start: Point{xHalf + 1, r.Start.Y}, End: Point{r.End.X, yHalf}},
		{Start: Point{xHalf + 1, yHalf + 1}, End: Point{r.End.X, r.End.Y}},
	}
}

// PackBytes returns the fixed wire encoding pinned by spec §4.1 for 2-D QDAG/Quad schemes: four
// 32-bit little-endian signed integers (Start.X, Start.Y, End.X, End.Y).
func (r Rect) PackBytes() []byte {
	var b [16]byte
	binary.LittleEndian.PutUint32(b[0:4], uint32(int32(r.Start.X)))
	binary.LittleEndian.PutUint32(b[4:8], uint32(int32(r.Start.Y)))
	binary.LittleEndian.PutUint32(b[8:12], uint32(int32(r.End.X)))
	binary.LittleEndian.PutUint32(b[12:16], uint32(int32(r.End.Y)))
	return b[:]
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
