package geometry

import (
	"encoding/binary"
	"fmt"

	"github.com/cloudsecuritygroup/ers"
)

// Rect3D is an axis-aligned box over the half-open interval [Start, End) in 3 dimensions.
type Rect3D struct {
	Start, End Point3D
}

// NewRect3D constructs a Rect3D bounded by start (inclusive) and end (exclusive). It returns
// ers.ErrInvalidGeometry if start is not componentwise <= end.
func NewRect3D(start, end Point3D) (Rect3D, error) {
	if start.X > end.X || start.Y > end.Y || start.Z > end.Z {
		return Rect3D{}, fmt.Errorf("geometry: Rect3D(%v, %v): %w", start, end, ers.ErrInvalidGeometry)
	}
	return Rect3D{Start: start, End: end}, nil
}

// XLength returns the width of r along the X axis.
func (r Rect3D) XLength() int64 { return r.End.X - r.Start.X }

// YLength returns the width of r along the Y axis.
func (r Rect3D) YLength() int64 { return r.End.Y - r.Start.Y }

// ZLength returns the width of r along the Z axis.
func (r Rect3D) ZLength() int64 { return r.End.Z - r.Start.Z }

// ContainsPoint reports whether p lies in the half-open box [Start, End).
func (r Rect3D) ContainsPoint(p Point3D) bool {
	return p.X >= r.Start.X && p.X < r.End.X &&
		p.Y >= r.Start.Y && p.Y < r.End.Y &&
		p.Z >= r.Start.Z && p.Z < r.End.Z
}

// ContainsRect reports whether other is fully inside r under the half-open convention.
func (r Rect3D) ContainsRect(other Rect3D) bool {
	return other.Start.X >= r.Start.X && other.Start.X < r.End.X &&
		other.Start.Y >= r.Start.Y && other.Start.Y < r.End.Y &&
		other.Start.Z >= r.Start.Z && other.Start.Z < r.End.Z &&
		other.End.X > r.Start.X && other.End.X <= r.End.X &&
		other.End.Y > r.Start.Y && other.End.Y <= r.End.Y &&
		other.End.Z > r.Start.Z && other.End.Z <= r.End.Z
}

// ContainsRectInclusive reports whether other is inside r, treating both boxes' End corners as
// inclusive. Used by the octtree BRC recursion's cover-stopping condition.
func (r Rect3D) ContainsRectInclusive(other Rect3D) bool {
	return other.Start.X >= r.Start.X && other.Start.X <= r.End.X &&
		other.Start.Y >= r.Start.Y && other.Start.Y <= r.End.Y &&
		other.Start.Z >= r.Start.Z && other.Start.Z <= r.End.Z &&
		other.End.X >= r.Start.X && other.End.X <= r.End.X &&
		other.End.Y >= r.Start.Y && other.End.Y <= r.End.Y &&
		other.End.Z >= r.Start.Z && other.End.Z <= r.End.Z
}

// Divide splits r into its eight octant children, generalizing Rect.Divide's inclusive-endpoint
// arithmetic to a third axis.
//
// Divide returns no children once r has collapsed to a single cell on every axis.
func (r Rect3D) Divide() []Rect3D {
	xHalf := floorDiv(r.Start.X+r.End.X, 2)
	yHalf := floorDiv(r.Start.Y+r.End.Y, 2)
	zHalf := floorDiv(r.Start.Z+r.End.Z, 2)

	if r.End.X-r.Start.X < 1 && r.End.Y-r.Start.Y < 1 && r.End.Z-r.Start.Z < 1 {
		return nil
	}

	return []Rect3D{
		{Start: Point3D{r.Start.X, r.Start.Y, r.Start.Z}, End: Point3D{xHalf, yHalf, zHalf}},
		{Start: Point3D{r.Start.X, yHalf + 1, r.Start.Z}, End: Point3D{xHalf, r.End.Y, zHalf}},
		{Start: Point3D{xHalf + 1, r.Start.Y, r.Start.Z}, End: Point3D{r.End.X, yHalf, zHalf}},
		{Start: Point3D{xHalf + 1, yHalf + 1, r.Start.Z}, End: Point3D{r.End.X, r.End.Y, zHalf}},
		{Start: Point3D{r.Start.X, r.Start.Y, zHalf + 1}, End: Point3D{xHalf, yHalf, r.End.Z}},
		{Start: Point3D{r.Start.X, yHalf + 1, zHalf + 1}, End: Point3D{xHalf, r.End.Y, r.End.Z}},
		{Start: Point3D{xHalf + 1, r.Start.Y, zHalf + 1}, End: Point3D{r.End.X, yHalf, r.End.Z}},
		{Start: Point3D{xHalf + 1, yHalf + 1, zHalf + 1}, End: Point3D{r.End.X, r.End.Y, r.End.Z}},
	}
}

// PackBytes returns the fixed wire encoding pinned by spec §4.1 for 3-D QDAG/Oct schemes: six
// 32-bit little-endian signed integers (Start.X, Start.Y, Start.Z, End.X, End.Y, End.Z).
func (r Rect3D) PackBytes() []byte {
	var b [24]byte
	binary.LittleEndian.PutUint32(b[0:4], uint32(int32(r.Start.X)))
	binary.LittleEndian.PutUint32(b[4:8], uint32(int32(r.Start.Y)))
	binary.LittleEndian.PutUint32(b[8:12], uint32(int32(r.Start.Z)))
	binary.LittleEndian.PutUint32(b[12:16], uint32(int32(r.End.X)))
	binary.LittleEndian.PutUint32(b[16:20], uint32(int32(r.End.Y)))
	binary.LittleEndian.PutUint32(b[20:24], uint32(int32(r.End.Z)))
	return b[:]
}
