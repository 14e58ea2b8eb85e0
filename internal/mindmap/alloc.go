package mindmap

import (
	"github.com/dklevakin/ai-map/internal/catalog"
	"github.com/dklevakin/ai-map/internal/search"
)

// Placement is the allocated canvas position of one visible category.
type Placement struct {
	X    float64
	Y    float64
	Side Side
}

// VisibleIndices returns the category indices that take part in the build:
// all of them when search is inactive, only annotated matches otherwise.
func VisibleIndices(categories []catalog.Category, indexes []search.Index, searchActive bool) []int {
	visible := make([]int, 0, len(categories))
	for idx := range categories {
		if !searchActive {
			visible = append(visible, idx)
			continue
		}
		if idx < len(indexes) && indexes[idx].HasMatch {
			visible = append(visible, idx)
		}
	}
	return visible
}

// countLeafItems counts the visible leaves of an expanded category outside of
// search: every top-level item holds one slot, and groups found in the
// expanded set add their children.
func countLeafItems(items []catalog.Item, groups map[string]bool) int {
	total := 0
	for _, item := range items {
		total++
		if item.IsGroup() && groups[item.Group.Group] {
			total += len(item.Group.Items)
		}
	}
	return total
}

// visibleGroupChildren counts the children of a group branch the scene will
// emit during search: all of them when the host has toggled the group open,
// otherwise only the matched ones.
func visibleGroupChildren(branch search.Branch, group *catalog.ServiceGroup, groups map[string]bool) int {
	if groups[group.Group] {
		return len(group.Items)
	}
	return branch.MatchedChildren()
}

// searchLeafCount counts the visible leaves of a category under search.
// A visible group occupies its own slot plus one per visible child; a matched
// standalone service occupies one.
func searchLeafCount(cat catalog.Category, index search.Index, groups map[string]bool) int {
	total := 0
	for i, item := range cat.Items {
		if i >= len(index.Branches) {
			break
		}
		branch := index.Branches[i]
		if item.IsGroup() {
			children := visibleGroupChildren(branch, item.Group, groups)
			if children > 0 || branch.Matched {
				total += 1 + children
			}
			continue
		}
		if branch.Matched {
			total++
		}
	}
	return total
}

// categoryWeight assigns the relative claim of one category on vertical
// space: 1.0 when idle, scaled by the visible leaf count when expanded or
// search-filtered.
func categoryWeight(cat catalog.Category, idx int, p Params, indexes []search.Index, searchActive bool) float64 {
	if searchActive {
		if idx >= len(indexes) {
			return 1.6
		}
		count := searchLeafCount(cat, indexes[idx], p.ExpandedGroups[idx])
		if count == 0 {
			return 1.6
		}
		return maxf(1.6, float64(count)*0.9)
	}
	if p.ExpandedCategory == idx {
		leaves := countLeafItems(cat.Items, p.ExpandedGroups[idx])
		return maxf(1.6, float64(leaves)*0.9)
	}
	return 1
}

// allocate splits the visible categories into two columns around the canvas
// center and converts their weights into vertical segments. The first
// ceil(n/2) indices fill the right column, the rest the left; the taller
// column governs the canvas height.
func allocate(visible []int, weights []float64) (map[int]Placement, float64) {
	rightCount := (len(visible) + 1) / 2

	rightWeight := sum(weights[:rightCount])
	leftWeight := sum(weights[rightCount:])

	span := func(weight float64, count int) float64 {
		if weight > 0 {
			return weight
		}
		if count > 1 {
			return float64(count)
		}
		return 1
	}

	height := maxf(MinHeight,
		maxf(MarginY*2+span(rightWeight, rightCount)*BaseSpacing,
			MarginY*2+span(leftWeight, len(visible)-rightCount)*BaseSpacing))
	available := height - MarginY*2

	positions := make(map[int]Placement, len(visible))
	rootX := float64(CanvasWidth) / 2

	layoutSide := func(subset []int, subsetWeights []float64, side Side) {
		if len(subset) == 0 {
			return
		}
		total := sum(subsetWeights)
		if total == 0 {
			total = float64(len(subset))
		}
		cursor := float64(MarginY)
		for order, idx := range subset {
			weight := subsetWeights[order]
			if weight == 0 {
				weight = total / float64(len(subset))
			}
			segment := weight / total * available
			positions[idx] = Placement{
				X:    rootX + side.sign()*CategoryGap,
				Y:    cursor + segment/2,
				Side: side,
			}
			cursor += segment
		}
	}

	layoutSide(visible[:rightCount], weights[:rightCount], SideRight)
	layoutSide(visible[rightCount:], weights[rightCount:], SideLeft)

	return positions, height
}

func sum(values []float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
