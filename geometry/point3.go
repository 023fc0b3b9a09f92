package geometry

import "encoding/binary"

// Point3D is an integer coordinate in 3-dimensional space.
type Point3D struct {
	X, Y, Z int64
}

// NewPoint3D returns the point (x, y, z).
func NewPoint3D(x, y, z int64) Point3D {
	return Point3D{X: x, Y: y, Z: z}
}

// Dominates reports whether p is componentwise <= other.
func (p Point3D) Dominates(other Point3D) bool {
	return p.X <= other.X && p.Y <= other.Y && p.Z <= other.Z
}

// Bytes returns a fixed-width, injective big-endian encoding of p: 8 bytes each of X, Y, Z.
func (p Point3D) Bytes() []byte {
	var b [24]byte
	binary.BigEndian.PutUint64(b[0:8], uint64(p.X))
	binary.BigEndian.PutUint64(b[8:16], uint64(p.Y))
	binary.BigEndian.PutUint64(b[16:24], uint64(p.Z))
	return b[:]
}
