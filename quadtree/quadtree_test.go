package quadtree_test

import (
	"testing"

	"github.com/cloudsecuritygroup/ers/geometry"
	"github.com/cloudsecuritygroup/ers/quadtree"
)

func root(side int64) geometry.Rect {
	return geometry.Rect{Start: geometry.NewPoint(0, 0), End: geometry.NewPoint(side-1, side-1)}
}

func TestContainingCovers_countAndContainment(t *testing.T) {
	tree := quadtree.New(root(8), 3)
	p := geometry.NewPoint(3, 5)
	covers := tree.ContainingCovers(p)

	if got, want := len(covers), 4; got != want {
		t.Fatalf("len(ContainingCovers()) = %d, want Level+1 = %d", got, want)
	}
	for _, c := range covers {
		if !c.ContainsRectInclusive(geometry.Rect{Start: p, End: p}) {
			t.Errorf("cover %v does not contain point %v", c, p)
		}
	}
}

func TestBRCCover_disjointAndUnionsQuery(t *testing.T) {
	tree := quadtree.New(root(8), 3)
	query := geometry.Rect{Start: geometry.NewPoint(2, 2), End: geometry.NewPoint(5, 7)}
	covers := tree.BRCCover(query)

	counts := make(map[geometry.Point]int)
	for x := query.Start.X; x <= query.End.X; x++ {
		for y := query.Start.Y; y <= query.End.Y; y++ {
			counts[geometry.NewPoint(x, y)] = 0
		}
	}
	for _, c := range covers {
		if !root(8).ContainsRectInclusive(c) {
			t.Errorf("cover %v escapes the root domain", c)
		}
		for x := c.Start.X; x <= c.End.X; x++ {
			for y := c.Start.Y; y <= c.End.Y; y++ {
				if p := (geometry.Point{X: x, Y: y}); inBox(counts, p) {
					counts[p]++
				}
			}
		}
	}
	for p, n := range counts {
		if n != 1 {
			t.Errorf("cell %v covered by %d cover rects, want exactly 1", p, n)
		}
	}

	var totalCells int64
	for _, c := range covers {
		totalCells += (c.End.X - c.Start.X + 1) * (c.End.Y - c.Start.Y + 1)
	}
	queryCells := (query.End.X - query.Start.X + 1) * (query.End.Y - query.Start.Y + 1)
	if totalCells != queryCells {
		t.Errorf("covers span %d cells total, want exactly %d (the query area)", totalCells, queryCells)
	}
}

func inBox(counts map[geometry.Point]int, p geometry.Point) bool {
	_, ok := counts[p]
	return ok
}

func TestBRCCover_wholeDomain(t *testing.T) {
	tree := quadtree.New(root(4), 2)
	covers := tree.BRCCover(root(4))
	if got, want := len(covers), 1; got != want {
		t.Fatalf("BRCCover(whole domain) returned %d rects, want %d", got, want)
	}
	if covers[0] != root(4) {
		t.Errorf("BRCCover(whole domain) = %v, want %v", covers[0], root(4))
	}
}
