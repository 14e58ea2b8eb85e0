package mindmap

import (
	"math"
	"testing"

	"github.com/dklevakin/ai-map/internal/catalog"
	"github.com/dklevakin/ai-map/internal/search"
)

func idleWeights(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 1
	}
	return out
}

func indices(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func TestAllocateColumnBalance(t *testing.T) {
	for n := 1; n <= 7; n++ {
		positions, _ := allocate(indices(n), idleWeights(n))
		right, left := 0, 0
		for _, pos := range positions {
			if pos.Side == SideRight {
				right++
			} else {
				left++
			}
		}
		wantRight := (n + 1) / 2
		if right != wantRight || left != n-wantRight {
			t.Fatalf("n=%d: right=%d left=%d, want %d/%d", n, right, left, wantRight, n-wantRight)
		}
	}
}

func TestAllocateColumnOrderAndSpan(t *testing.T) {
	positions, height := allocate(indices(5), idleWeights(5))
	if height != MinHeight {
		t.Fatalf("idle height = %v, want %v", height, float64(MinHeight))
	}
	// Right column holds indices 0..2 in descending canvas order.
	if positions[0].Y >= positions[1].Y || positions[1].Y >= positions[2].Y {
		t.Fatalf("right column out of order: %v %v %v", positions[0].Y, positions[1].Y, positions[2].Y)
	}
	// Left column holds indices 3..4.
	if positions[3].Side != SideLeft || positions[4].Side != SideLeft {
		t.Fatalf("indices 3,4 not on the left")
	}
	rootX := float64(CanvasWidth) / 2
	if positions[0].X != rootX+CategoryGap || positions[3].X != rootX-CategoryGap {
		t.Fatalf("column x off: %v / %v", positions[0].X, positions[3].X)
	}
	// Segments tile the available height exactly.
	available := height - MarginY*2
	first := positions[0].Y - MarginY
	if math.Abs(first*2*3-available*1) > 1e-9 {
		t.Fatalf("first segment center off: %v", positions[0].Y)
	}
}

func TestAllocateWeightMonotonicity(t *testing.T) {
	// Four categories put indices 0 and 1 on the right column together; the
	// heavier one must get the larger vertical segment. Segment sizes are
	// recovered from the placement centers.
	weights := []float64{1, 4, 1, 1}
	positions, _ := allocate(indices(4), weights)
	seg0 := (positions[0].Y - MarginY) * 2
	seg1 := (positions[1].Y - MarginY - seg0) * 2
	if seg1 <= seg0 {
		t.Fatalf("heavier category got smaller segment: %v vs %v", seg1, seg0)
	}
	if math.Abs(seg1-4*seg0) > 1e-9 {
		t.Fatalf("segments not proportional to weights: %v vs %v", seg0, seg1)
	}
}

func TestAllocateHeightGrowsWithWeight(t *testing.T) {
	_, idle := allocate(indices(3), idleWeights(3))
	heavy := []float64{9, 1, 1}
	_, tall := allocate(indices(3), heavy)
	if tall <= idle {
		t.Fatalf("weighted canvas not taller: %v <= %v", tall, idle)
	}
	// Right column span governs: 9+1 = 10 weights * BaseSpacing + margins.
	want := MarginY*2 + 10*BaseSpacing
	if tall != float64(want) {
		t.Fatalf("height = %v, want %v", tall, want)
	}
}

func TestVisibleIndices(t *testing.T) {
	categories := []catalog.Category{{Category: "a"}, {Category: "b"}, {Category: "c"}}
	all := VisibleIndices(categories, nil, false)
	if len(all) != 3 {
		t.Fatalf("inactive search should keep all categories, got %d", len(all))
	}
	indexes := []search.Index{{HasMatch: true}, {HasMatch: false}, {HasMatch: true}}
	got := VisibleIndices(categories, indexes, true)
	if len(got) != 2 || got[0] != 0 || got[1] != 2 {
		t.Fatalf("visible = %v, want [0 2]", got)
	}
}

func TestCategoryWeight(t *testing.T) {
	cat := catalog.Category{
		Category: "Text",
		Items: []catalog.Item{
			{Service: &catalog.ServiceEntry{Name: "Claude", Desc: "chat"}},
			{Group: &catalog.ServiceGroup{Group: "Translate", Items: []catalog.ServiceEntry{
				{Name: "DeepL", Desc: "nmt"},
				{Name: "Reverso", Desc: "context"},
			}}},
		},
	}
	p := Params{Categories: []catalog.Category{cat}, ExpandedCategory: -1}

	if got := categoryWeight(cat, 0, p, nil, false); got != 1 {
		t.Fatalf("idle weight = %v, want 1", got)
	}

	p.ExpandedCategory = 0
	// Two top-level slots, group collapsed.
	if got := categoryWeight(cat, 0, p, nil, false); got != 1.8 {
		t.Fatalf("expanded weight = %v, want 1.8", got)
	}
	p.ExpandedGroups = map[int]map[string]bool{0: {"Translate": true}}
	// 2 top-level + 2 group children = 4 leaves.
	if got := categoryWeight(cat, 0, p, nil, false); got != 3.6 {
		t.Fatalf("expanded weight with open group = %v, want 3.6", got)
	}

	// Minimum weight floor.
	small := catalog.Category{Category: "Tiny", Items: cat.Items[:1]}
	p2 := Params{ExpandedCategory: 0}
	if got := categoryWeight(small, 0, p2, nil, false); got != 1.6 {
		t.Fatalf("floored weight = %v, want 1.6", got)
	}

	// Search: one matched child in the group.
	indexes := search.BuildAll([]catalog.Category{cat}, "deepl")
	p3 := Params{ExpandedCategory: -1}
	want := 1.8 // group slot + one matched child, 2 * 0.9
	if got := categoryWeight(cat, 0, p3, indexes, true); got != want {
		t.Fatalf("search weight = %v, want %v", got, want)
	}
}
