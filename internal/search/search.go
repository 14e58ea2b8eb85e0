// Package search computes advisory match annotations for a catalog category
// against a live query. It never filters or mutates the catalog; the scene
// builder and the list view decide visibility and highlighting from the
// annotations.
package search

import (
	"strings"

	"github.com/dklevakin/ai-map/internal/catalog"
)

// Branch annotates one top-level item of a category, in traversal order.
type Branch struct {
	// Matched is true when the branch contributes at least one visible match:
	// for a standalone service its own name or description, for a group its
	// name or any child.
	Matched bool
	// GroupNameMatch is set only for groups whose own name contains the query.
	GroupNameMatch bool
	// ChildMatch holds the per-child match flag for groups, indexed like
	// Group.Items. Nil for standalone services.
	ChildMatch []bool
}

// Index is the full annotation of one category for one query.
type Index struct {
	HasMatch bool
	Branches []Branch
}

// Normalize prepares a raw query for matching. An empty result means search
// is inactive.
func Normalize(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

// BuildIndex annotates a category against a normalized, non-empty query.
func BuildIndex(cat catalog.Category, query string) Index {
	index := Index{Branches: make([]Branch, 0, len(cat.Items))}
	for _, item := range cat.Items {
		branch := annotate(item, query)
		if branch.Matched {
			index.HasMatch = true
		}
		index.Branches = append(index.Branches, branch)
	}
	return index
}

// BuildAll annotates every category; the result is indexed like the input.
func BuildAll(categories []catalog.Category, query string) []Index {
	out := make([]Index, len(categories))
	for i, cat := range categories {
		out[i] = BuildIndex(cat, query)
	}
	return out
}

func annotate(item catalog.Item, query string) Branch {
	if !item.IsGroup() {
		return Branch{Matched: matchesService(*item.Service, query)}
	}
	group := item.Group
	branch := Branch{
		GroupNameMatch: contains(group.Group, query),
		ChildMatch:     make([]bool, len(group.Items)),
	}
	branch.Matched = branch.GroupNameMatch
	for i, svc := range group.Items {
		if matchesService(svc, query) {
			branch.ChildMatch[i] = true
			branch.Matched = true
		}
	}
	return branch
}

// MatchedChildren counts the children of a group branch that matched.
func (b Branch) MatchedChildren() int {
	n := 0
	for _, ok := range b.ChildMatch {
		if ok {
			n++
		}
	}
	return n
}

func matchesService(svc catalog.ServiceEntry, query string) bool {
	return contains(svc.Name, query) || contains(svc.Desc, query)
}

func contains(s, query string) bool {
	return strings.Contains(strings.ToLower(s), query)
}
