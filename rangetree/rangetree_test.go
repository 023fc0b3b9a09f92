package rangetree_test

import (
	"testing"

	"github.com/cloudsecuritygroup/ers/canon"
	"github.com/cloudsecuritygroup/ers/rangetree"
)

func TestNew_rootRange(t *testing.T) {
	tree := rangetree.New(3)
	if got, want := tree.Range, (canon.Interval{Lo: 0, Hi: 7}); got != want {
		t.Errorf("root Range = %v, want %v", got, want)
	}
	if got, want := tree.Height, 3; got != want {
		t.Errorf("root Height = %d, want %d", got, want)
	}
}

func TestBRCCover_partitionsQuery(t *testing.T) {
	tests := []struct {
		height   int
		lo, hi   int64
	}{
		{3, 0, 7},
		{3, 2, 5},
		{3, 0, 0},
		{3, 7, 7},
		{5, 3, 19},
		{5, 4, 4},
	}

	for _, tt := range tests {
		tree := rangetree.New(tt.height)
		cover := tree.BRCCover(canon.Interval{Lo: tt.lo, Hi: tt.hi})

		covered := make(map[int64]bool)
		for _, iv := range cover {
			for v := iv.Lo; v <= iv.Hi; v++ {
				if covered[v] {
					t.Fatalf("height=%d query=[%d,%d]: value %d covered by more than one node", tt.height, tt.lo, tt.hi, v)
				}
				covered[v] = true
			}
		}
		for v := tt.lo; v <= tt.hi; v++ {
			if !covered[v] {
				t.Errorf("height=%d query=[%d,%d]: value %d not covered", tt.height, tt.lo, tt.hi, v)
			}
		}
		if got, want := len(covered), int(tt.hi-tt.lo+1); got != want {
			t.Errorf("height=%d query=[%d,%d]: cover spans %d values, want %d", tt.height, tt.lo, tt.hi, got, want)
		}
	}
}

func TestBRCCover_singlePoint(t *testing.T) {
	tree := rangetree.New(3)
	cover := tree.BRCCover(canon.Interval{Lo: 4, Hi: 4})
	if len(cover) != 1 || cover[0] != (canon.Interval{Lo: 4, Hi: 4}) {
		t.Errorf("BRCCover([4,4]) = %v, want [{4 4}]", cover)
	}
}

func TestPath_endsAtLeaf(t *testing.T) {
	path := rangetree.Path(3, 5)
	if len(path) == 0 {
		t.Fatal("Path() returned no nodes")
	}
	if got, want := path[0], (canon.Interval{Lo: 0, Hi: 7}); got != want {
		t.Errorf("Path()[0] = %v, want root %v", got, want)
	}
	last := path[len(path)-1]
	if got, want := last, (canon.Interval{Lo: 5, Hi: 5}); got != want {
		t.Errorf("Path() last node = %v, want leaf %v", got, want)
	}

	// Every node on the path must actually contain the value.
	for _, iv := range path {
		if 5 < iv.Lo || 5 > iv.Hi {
			t.Errorf("Path() node %v does not contain 5", iv)
		}
	}
}

func TestPath_rootOnlyTree(t *testing.T) {
	path := rangetree.Path(0, 0)
	if len(path) != 1 || path[0] != (canon.Interval{Lo: 0, Hi: 0}) {
		t.Errorf("Path(0, 0) = %v, want single root/leaf node", path)
	}
}
