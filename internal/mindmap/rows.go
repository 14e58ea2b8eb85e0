package mindmap

import (
	"github.com/dklevakin/ai-map/internal/catalog"
	"github.com/dklevakin/ai-map/internal/search"
)

// RowKind tags one line of the flattened listing.
type RowKind int

const (
	RowCategory RowKind = iota
	RowGroup
	RowService
)

// Row is one line of the accordion listing. The listing applies the same
// visibility and occurrence rules as the map scene, so a key selected in one
// view resolves in the other.
type Row struct {
	Kind          RowKind
	CategoryIndex int
	Label         string
	Desc          string
	Color         string
	Group         string
	Service       *catalog.ServiceEntry
	Key           string
	Occurrence    int

	Expanded bool
	Hit      bool
	Selected bool

	Intent Intent
}

// BuildRows flattens the catalog into the visible listing rows for a state.
func BuildRows(p Params) []Row {
	query := search.Normalize(p.Query)
	indexes := search.BuildAll(p.Categories, query)
	active := query != ""
	visible := VisibleIndices(p.Categories, indexes, active)

	occurrences := make(map[string]int)
	var rows []Row
	for _, idx := range visible {
		cat := p.Categories[idx]
		index := indexes[idx]
		expanded := p.ExpandedCategory == idx
		rows = append(rows, Row{
			Kind:          RowCategory,
			CategoryIndex: idx,
			Label:         cat.Category,
			Color:         cat.Color,
			Expanded:      expanded,
			Intent:        ToggleCategory{Index: idx},
		})
		if !active && !expanded {
			continue
		}
		groups := p.ExpandedGroups[idx]
		for itemIdx, item := range cat.Items {
			branch := index.Branches[itemIdx]
			if item.IsGroup() {
				group := item.Group
				groupExpanded := groups[group.Group]
				if active && !branch.Matched && !groupExpanded {
					continue
				}
				rows = append(rows, Row{
					Kind:          RowGroup,
					CategoryIndex: idx,
					Label:         group.Group,
					Color:         cat.Color,
					Group:         group.Group,
					Expanded:      groupExpanded,
					Hit:           active && branch.GroupNameMatch,
					Intent:        ToggleGroup{CategoryIndex: idx, Group: group.Group},
				})
				for childIdx, svc := range group.Items {
					switch {
					case groupExpanded:
					case active && branch.ChildMatch[childIdx]:
					default:
						continue
					}
					rows = append(rows, serviceRow(svc, idx, cat, group.Group, active && branch.ChildMatch[childIdx], p, occurrences))
				}
				continue
			}
			svc := *item.Service
			if active && !branch.Matched {
				continue
			}
			rows = append(rows, serviceRow(svc, idx, cat, "", active && branch.Matched, p, occurrences))
		}
	}
	return rows
}

func serviceRow(svc catalog.ServiceEntry, idx int, cat catalog.Category, group string, hit bool, p Params, occurrences map[string]int) Row {
	slug := catalog.ServiceKey(svc)
	occ := occurrences[slug]
	occurrences[slug] = occ + 1
	key := catalog.CompositeKey(slug, occ)
	entry := svc
	return Row{
		Kind:          RowService,
		CategoryIndex: idx,
		Label:         svc.Name,
		Desc:          svc.Desc,
		Color:         cat.Color,
		Group:         group,
		Service:       &entry,
		Key:           key,
		Occurrence:    occ,
		Hit:           hit,
		Selected:      key == p.SelectedKey,
		Intent: SelectService{
			Service:       svc,
			CategoryIndex: idx,
			Category:      cat.Category,
			Group:         group,
			Occurrence:    occ,
			Key:           key,
		},
	}
}
