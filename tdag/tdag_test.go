package tdag_test

import (
	"testing"

	"github.com/cloudsecuritygroup/ers/canon"
	"github.com/cloudsecuritygroup/ers/tdag"
)

func TestNew_middleAsymmetry(t *testing.T) {
	// spec.md's "numeric semantics" note: middle = [mid - (lo+hi)/4, mid + (lo+hi)/4 + 1],
	// and the "+1" on the upper bound is observable and must be preserved.
	tree := tdag.New(3) // root [0, 7]
	mid := int64(3)     // (0+7)/2 = 3 (truncating)
	sum := int64(7)     // 0 + 7
	wantLo := mid - sum/4
	wantHi := mid + sum/4 + 1
	if got, want := tree.Middle, (canon.Interval{Lo: wantLo, Hi: wantHi}); got != want {
		t.Errorf("root Middle = %v, want %v", got, want)
	}
}

func TestSRCCover_containsQuery(t *testing.T) {
	tests := []struct {
		height int
		lo, hi int64
	}{
		{3, 0, 7},
		{3, 2, 5},
		{3, 0, 0},
		{3, 3, 4}, // straddles the root split, should land on Middle or an ancestor
		{5, 10, 20},
	}

	for _, tt := range tests {
		tree := tdag.New(tt.height)
		query := canon.Interval{Lo: tt.lo, Hi: tt.hi}
		cover := tree.SRCCover(query)

		if cover.Lo > query.Lo || cover.Hi < query.Hi {
			t.Errorf("height=%d query=%v: SRCCover() = %v does not contain the query", tt.height, query, cover)
		}
	}
}

func TestSRCCover_straddleUsesMiddle(t *testing.T) {
	tree := tdag.New(3) // root [0,7], mid=3, middle=[2,5]
	cover := tree.SRCCover(canon.Interval{Lo: 2, Hi: 5})
	if got, want := cover, tree.Middle; got != want {
		t.Errorf("SRCCover([2,5]) = %v, want the root's Middle %v", got, want)
	}
}

func TestAncestors_endsAtLeafAndIncludesMiddles(t *testing.T) {
	ancestors := tdag.Ancestors(4, 6)
	if len(ancestors) == 0 {
		t.Fatal("Ancestors() returned no ranges")
	}
	last := ancestors[len(ancestors)-1]
	if got, want := last, (canon.Interval{Lo: 6, Hi: 6}); got != want {
		t.Errorf("Ancestors() last entry = %v, want leaf %v", got, want)
	}

	for _, iv := range ancestors {
		if 6 < iv.Lo || 6 > iv.Hi {
			t.Errorf("Ancestors() entry %v does not contain 6", iv)
		}
	}
}

func TestAncestors_noDuplicates(t *testing.T) {
	ancestors := tdag.Ancestors(5, 17)
	seen := make(map[canon.Interval]bool)
	for _, iv := range ancestors {
		if seen[iv] {
			t.Errorf("Ancestors() contains duplicate entry %v", iv)
		}
		seen[iv] = true
	}
}
