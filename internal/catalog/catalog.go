// Package catalog defines the bilingual AI service directory model and the
// identity helpers shared by the map and list views. The package has no
// rendering knowledge; it only describes the data and how entries are
// identified and enriched.
package catalog

import (
	"encoding/json"
	"fmt"
)

// ServiceEntry is a single linked service, a leaf of the catalog tree.
type ServiceEntry struct {
	Name string `json:"name"`
	Href string `json:"href"`
	Desc string `json:"desc"`
}

// ServiceGroup bundles related services under a named sub-branch of a
// category.
type ServiceGroup struct {
	Group string         `json:"group"`
	Items []ServiceEntry `json:"items"`
}

// Item is one entry of a category: either a standalone service or a group.
// Exactly one of the two fields is set.
type Item struct {
	Service *ServiceEntry
	Group   *ServiceGroup
}

// IsGroup reports whether the item is a named group rather than a leaf.
func (it Item) IsGroup() bool {
	return it.Group != nil
}

// UnmarshalJSON discriminates the item union on the presence of a group name
// plus an items array; everything else decodes as a standalone service.
func (it *Item) UnmarshalJSON(data []byte) error {
	var probe struct {
		Group string          `json:"group"`
		Items json.RawMessage `json:"items"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return fmt.Errorf("catalog: decode item: %w", err)
	}
	if probe.Group != "" && len(probe.Items) > 0 {
		var group ServiceGroup
		if err := json.Unmarshal(data, &group); err != nil {
			return fmt.Errorf("catalog: decode group %q: %w", probe.Group, err)
		}
		it.Group = &group
		it.Service = nil
		return nil
	}
	var svc ServiceEntry
	if err := json.Unmarshal(data, &svc); err != nil {
		return fmt.Errorf("catalog: decode service: %w", err)
	}
	it.Service = &svc
	it.Group = nil
	return nil
}

// MarshalJSON writes the active side of the union.
func (it Item) MarshalJSON() ([]byte, error) {
	if it.Group != nil {
		return json.Marshal(it.Group)
	}
	if it.Service != nil {
		return json.Marshal(it.Service)
	}
	return []byte("null"), nil
}

// Category is a top-level branch of the map with its display accent color.
// Source order is significant: it drives column assignment and vertical
// order on the canvas.
type Category struct {
	Category string `json:"category"`
	Color    string `json:"color"`
	Items    []Item `json:"items"`
}

// FlattenServices returns every service of the catalog in traversal order
// (category order, then group/service order within each category).
func FlattenServices(categories []Category) []ServiceEntry {
	var services []ServiceEntry
	for _, cat := range categories {
		for _, item := range cat.Items {
			if item.IsGroup() {
				services = append(services, item.Group.Items...)
				continue
			}
			services = append(services, *item.Service)
		}
	}
	return services
}
