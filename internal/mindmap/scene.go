// Package mindmap is the layout and scene engine of the service map. Every
// state change rebuilds the full scene from scratch: the build is a pure
// function of the catalog and the transient UI state, except for the
// label-measurement cache owned by the Builder.
package mindmap

import (
	"github.com/dklevakin/ai-map/internal/catalog"
	"github.com/dklevakin/ai-map/internal/i18n"
	"github.com/dklevakin/ai-map/internal/search"
	"github.com/dklevakin/ai-map/internal/theme"
)

// Params are the inputs of one build. The engine never mutates them.
type Params struct {
	Categories []catalog.Category
	Resources  catalog.ResourceIndex
	Palette    theme.Palette

	Language         i18n.Lang
	Query            string
	ExpandedCategory int
	ExpandedGroups   map[int]map[string]bool
	SelectedKey      string
}

// Params derives build inputs from a host state.
func (s State) Params(categories []catalog.Category, resources catalog.ResourceIndex, palette theme.Palette) Params {
	return Params{
		Categories:       categories,
		Resources:        resources,
		Palette:          palette,
		Language:         s.Language,
		Query:            s.Query,
		ExpandedCategory: s.ExpandedCategory,
		ExpandedGroups:   s.ExpandedGroups,
		SelectedKey:      s.SelectedKey,
	}
}

// NodeKind tags the role of a scene node.
type NodeKind int

const (
	NodeRoot NodeKind = iota
	NodeCategory
	NodeGroup
	NodeService
	NodePlaceholder
)

// Node is one positioned pill of the scene.
type Node struct {
	Kind  NodeKind
	Label string

	X  float64
	Y  float64
	RX float64
	RY float64

	Fill        string
	FillOpacity float64 // 0 means fully opaque
	Stroke      string
	StrokeWidth float64
	TextColor   string

	CategoryIndex int
	Group         string
	Service       *catalog.ServiceEntry
	Key           string
	Occurrence    int
	Tags          []string

	Selected  bool
	SearchHit bool

	// Intent is bound to node activation; nil for root and placeholder.
	Intent Intent
}

// ContentWidth is the inner width of a service pill: the icon slot, the gap,
// and the measured label. Renderers use it to place the icon and text.
func (n Node) ContentWidth() float64 {
	if n.Kind != NodeService {
		return 0
	}
	return (n.RX - servicePadX) * 2
}

// Edge is one cubic connector curve.
type Edge struct {
	X1, Y1 float64
	C1X    float64
	C1Y    float64
	C2X    float64
	C2Y    float64
	X2, Y2 float64

	Color   string
	Width   float64
	Opacity float64
}

// Scene is the fully positioned output of one build. Node and edge order is
// deterministic and equals catalog traversal order.
type Scene struct {
	Width  float64
	Height float64
	Nodes  []Node
	Edges  []Edge
}

// Builder owns the size cache of one canvas instance. The cache persists
// across builds and dies with the builder; everything else is derived fresh.
type Builder struct {
	cache *SizeCache
}

// NewBuilder creates a builder. A nil measurer falls back to CellMeasurer.
func NewBuilder(m Measurer) *Builder {
	return &Builder{cache: NewSizeCache(m)}
}

// Cache exposes the size cache for inspection.
func (b *Builder) Cache() *SizeCache {
	return b.cache
}

// Build derives the scene for one set of params.
func (b *Builder) Build(p Params) Scene {
	query := search.Normalize(p.Query)
	active := query != ""

	var indexes []search.Index
	if active {
		indexes = search.BuildAll(p.Categories, query)
	}
	visible := VisibleIndices(p.Categories, indexes, active)

	if active && len(visible) == 0 {
		return b.placeholderScene(p)
	}

	weights := make([]float64, len(visible))
	for i, idx := range visible {
		weights[i] = categoryWeight(p.Categories[idx], idx, p, indexes, active)
	}
	positions, height := allocate(visible, weights)

	scene := Scene{Width: CanvasWidth, Height: height}
	rootX := float64(CanvasWidth) / 2
	rootY := height / 2
	rootRX, rootRY := b.pillRadii(RootLabel, ClassLarge, rootPadX, rootPadY)
	scene.Nodes = append(scene.Nodes, Node{
		Kind:        NodeRoot,
		Label:       RootLabel,
		X:           rootX,
		Y:           rootY,
		RX:          rootRX,
		RY:          rootRY,
		Fill:        p.Palette.Surface,
		Stroke:      p.Palette.NodeText,
		StrokeWidth: 2,
		TextColor:   p.Palette.NodeText,
	})

	// Occurrence registry for one build: disambiguates repeated service
	// names in traversal order.
	occurrences := make(map[string]int)

	for _, idx := range visible {
		b.buildCategory(&scene, p, idx, positions[idx], indexes, active, rootX, rootY, rootRX, occurrences)
	}
	return scene
}

func (b *Builder) placeholderScene(p Params) Scene {
	label := i18n.NoResults.For(p.Language)
	rx, ry := b.pillRadii(label, ClassNormal, defaultPadX, defaultPadY)
	return Scene{
		Width:  CanvasWidth,
		Height: MinHeight,
		Nodes: []Node{{
			Kind:        NodePlaceholder,
			Label:       label,
			X:           float64(CanvasWidth) / 2,
			Y:           float64(MinHeight) / 2,
			RX:          rx,
			RY:          ry,
			Fill:        p.Palette.Surface,
			Stroke:      p.Palette.SurfaceBorder,
			StrokeWidth: 1.6,
			TextColor:   p.Palette.NodeText,
		}},
	}
}

func (b *Builder) buildCategory(scene *Scene, p Params, idx int, pos Placement, indexes []search.Index, active bool, rootX, rootY, rootRX float64, occurrences map[string]int) {
	cat := p.Categories[idx]
	catRX, catRY := b.pillRadii(cat.Category, ClassNormal, categoryPadX, categoryPadY)
	scene.Nodes = append(scene.Nodes, Node{
		Kind:          NodeCategory,
		Label:         cat.Category,
		X:             pos.X,
		Y:             pos.Y,
		RX:            catRX,
		RY:            catRY,
		Fill:          cat.Color,
		FillOpacity:   0.12,
		Stroke:        cat.Color,
		StrokeWidth:   2,
		TextColor:     p.Palette.NodeText,
		CategoryIndex: idx,
		Intent:        ToggleCategory{Index: idx},
	})

	sign := pos.Side.sign()
	scene.Edges = append(scene.Edges,
		spanEdge(rootX+sign*rootRX, rootY, pos.X-sign*catRX, pos.Y, cat.Color, 1.8, 0.75))

	// Collapsed categories are terminal outside of search.
	if !active && p.ExpandedCategory != idx {
		return
	}

	var branches []search.Branch
	if active && idx < len(indexes) {
		branches = indexes[idx].Branches
	}
	groups := p.ExpandedGroups[idx]
	leafX := pos.X + sign*ItemGap
	entries := cat.Items
	slotCursor := 0

	for entryIdx, item := range entries {
		var branch search.Branch
		if entryIdx < len(branches) {
			branch = branches[entryIdx]
		}

		if item.IsGroup() {
			slotCursor += b.buildGroup(scene, p, groupContext{
				categoryIndex: idx,
				category:      cat,
				group:         item.Group,
				branch:        branch,
				active:        active,
				expanded:      groups[item.Group.Group],
				pos:           pos,
				catRX:         catRX,
				leafX:         leafX,
				slotCursor:    slotCursor,
			}, occurrences)
			continue
		}

		svc := *item.Service
		itemY := pos.Y - float64(len(entries)-1)*ItemSpacing/2 + float64(slotCursor)*ItemSpacing
		node := b.emitService(scene, p, svc, idx, cat, "", leafX, itemY, active && branch.Matched, occurrences)
		scene.Edges = append(scene.Edges,
			leafEdge(pos.X+sign*catRX, pos.Y, pos.Side, leafX, itemY, node.RX, cat.Color, 1.4, 0.55))
		slotCursor++
	}
}

// groupContext carries the per-branch inputs of one group emission.
type groupContext struct {
	categoryIndex int
	category      catalog.Category
	group         *catalog.ServiceGroup
	branch        search.Branch
	active        bool
	expanded      bool
	pos           Placement
	catRX         float64
	leafX         float64
	slotCursor    int
}

// buildGroup emits the group node, its connector, and its visible children,
// returning the number of slots the branch consumed.
func (b *Builder) buildGroup(scene *Scene, p Params, gc groupContext, occurrences map[string]int) int {
	// During search a group shows its matched children; a group the host has
	// toggled open shows all of them unfiltered. A group matched only by its
	// own name stays highlighted but childless until toggled.
	var children []int
	switch {
	case gc.expanded:
		children = make([]int, len(gc.group.Items))
		for i := range gc.group.Items {
			children[i] = i
		}
	case gc.active:
		for i, matched := range gc.branch.ChildMatch {
			if matched {
				children = append(children, i)
			}
		}
	}

	groupSlots := len(children) + 1
	sign := gc.pos.Side.sign()
	groupX := gc.pos.X + sign*GroupGap
	groupY := gc.pos.Y - ItemSpacing*float64(groupSlots-1)/2 + float64(gc.slotCursor)*ItemSpacing

	rx, ry := b.pillRadii(gc.group.Group, ClassNormal, groupPadX, groupPadY)
	scene.Nodes = append(scene.Nodes, Node{
		Kind:          NodeGroup,
		Label:         gc.group.Group,
		X:             groupX,
		Y:             groupY,
		RX:            rx,
		RY:            ry,
		Fill:          p.Palette.Surface,
		Stroke:        gc.category.Color,
		StrokeWidth:   1.6,
		TextColor:     p.Palette.NodeText,
		CategoryIndex: gc.categoryIndex,
		Group:         gc.group.Group,
		SearchHit:     gc.active && gc.branch.GroupNameMatch,
		Intent:        ToggleGroup{CategoryIndex: gc.categoryIndex, Group: gc.group.Group},
	})
	scene.Edges = append(scene.Edges,
		spanEdge(gc.pos.X+sign*gc.catRX, gc.pos.Y, groupX-sign*rx, groupY, gc.category.Color, 1.6, 0.6))

	totalHeight := float64(groupSlots-1) * ItemSpacing
	for order, childIdx := range children {
		svc := gc.group.Items[childIdx]
		itemY := groupY - totalHeight/2 + float64(order+1)*ItemSpacing
		hit := gc.active && childIdx < len(gc.branch.ChildMatch) && gc.branch.ChildMatch[childIdx]
		node := b.emitService(scene, p, svc, gc.categoryIndex, gc.category, gc.group.Group, gc.leafX, itemY, hit, occurrences)
		scene.Edges = append(scene.Edges,
			leafEdge(groupX+sign*rx, groupY, gc.pos.Side, gc.leafX, itemY, node.RX, gc.category.Color, 1.4, 0.5))
	}
	return groupSlots
}

func (b *Builder) emitService(scene *Scene, p Params, svc catalog.ServiceEntry, categoryIndex int, cat catalog.Category, group string, x, y float64, hit bool, occurrences map[string]int) Node {
	slug := catalog.ServiceKey(svc)
	occurrence := occurrences[slug]
	occurrences[slug]++
	key := catalog.CompositeKey(slug, occurrence)

	rx, ry := b.servicePillRadii(svc.Name)
	var tags []string
	if entry, ok := catalog.FindResourceEntry(p.Resources, svc); ok {
		tags = entry.Tags
	}

	node := Node{
		Kind:          NodeService,
		Label:         svc.Name,
		X:             x,
		Y:             y,
		RX:            rx,
		RY:            ry,
		Fill:          p.Palette.Surface,
		Stroke:        cat.Color,
		StrokeWidth:   1.6,
		TextColor:     p.Palette.NodeText,
		CategoryIndex: categoryIndex,
		Group:         group,
		Service:       &svc,
		Key:           key,
		Occurrence:    occurrence,
		Tags:          tags,
		Selected:      key == p.SelectedKey,
		SearchHit:     hit,
		Intent: SelectService{
			Service:       svc,
			CategoryIndex: categoryIndex,
			Category:      cat.Category,
			Group:         group,
			Occurrence:    occurrence,
			Key:           key,
		},
	}
	scene.Nodes = append(scene.Nodes, node)
	return node
}

// pillRadii derives the ellipse radii of a plain label pill.
func (b *Builder) pillRadii(label string, class Class, padX, padY float64) (float64, float64) {
	size := b.cache.Measure(label, class)
	return size.W/2 + padX, size.H/2 + padY
}

// servicePillRadii reserves the icon slot and gap ahead of the label.
func (b *Builder) servicePillRadii(name string) (float64, float64) {
	size := b.cache.Measure(name, ClassSmall)
	contentW := IconSize + IconGap + size.W
	contentH := maxf(IconSize, size.H)
	return contentW/2 + servicePadX, contentH/2 + servicePadY
}

// spanEdge is the smooth curve between two node edges, with both control
// points at 60% of the horizontal span.
func spanEdge(x1, y1, x2, y2 float64, color string, width, opacity float64) Edge {
	ctrl := x1 + (x2-x1)*0.6
	return Edge{
		X1: x1, Y1: y1,
		C1X: ctrl, C1Y: y1,
		C2X: ctrl, C2Y: y2,
		X2: x2, Y2: y2,
		Color: color, Width: width, Opacity: opacity,
	}
}

// leafEdge connects a parent edge to a service pill, with control points
// pulled 40% of the pill radius ahead of it.
func leafEdge(x1, y1 float64, side Side, itemX, itemY, itemRX float64, color string, width, opacity float64) Edge {
	ctrl := itemX - side.sign()*itemRX*0.4
	return Edge{
		X1: x1, Y1: y1,
		C1X: ctrl, C1Y: y1,
		C2X: ctrl, C2Y: itemY,
		X2: itemX - side.sign()*itemRX, Y2: itemY,
		Color: color, Width: width, Opacity: opacity,
	}
}
