package geometry

// NormalizeQuery reorders p1 and p2 on each axis independently so the result satisfies p1.Dominates(p2),
// the ordering every scheme's query operation requires. Callers that already know their corners are
// ordered may skip this and construct the Rect directly.
func NormalizeQuery(p1, p2 Point) (Point, Point) {
	lo, hi := p1, p2
	if lo.X > hi.X {
		lo.X, hi.X = hi.X, lo.X
	}
	if lo.Y > hi.Y {
		lo.Y, hi.Y = hi.Y, lo.Y
	}
	return lo, hi
}

// NormalizeQuery3D is the 3-dimensional counterpart of NormalizeQuery.
func NormalizeQuery3D(p1, p2 Point3D) (Point3D, Point3D) {
	lo, hi := p1, p2
	if lo.X > hi.X {
		lo.X, hi.X = hi.X, lo.X
	}
	if lo.Y > hi.Y {
		lo.Y, hi.Y = hi.Y, lo.Y
	}
	if lo.Z > hi.Z {
		lo.Z, hi.Z = hi.Z, lo.Z
	}
	return lo, hi
}
