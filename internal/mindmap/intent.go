package mindmap

import "github.com/dklevakin/ai-map/internal/catalog"

// Intent is an activation emitted by a node. The engine only builds intents;
// the host applies them to its own state and rebuilds.
type Intent interface {
	isIntent()
}

// ToggleCategory flips the expansion of a category. At most one category is
// expanded outside of search mode; toggling the expanded one collapses it.
type ToggleCategory struct {
	Index int
}

// ToggleGroup flips the membership of a group name in the per-category
// expanded set. Groups expand independently of each other.
type ToggleGroup struct {
	CategoryIndex int
	Group         string
}

// SelectService addresses one rendered appearance of a service. The
// composite key resolves a globally unique selection even when the same
// service name recurs across the catalog.
type SelectService struct {
	Service       catalog.ServiceEntry
	CategoryIndex int
	Category      string
	Group         string
	Occurrence    int
	Key           string
}

func (ToggleCategory) isIntent() {}
func (ToggleGroup) isIntent()    {}
func (SelectService) isIntent()  {}

// Handlers receives dispatched intents. Nil handlers are skipped.
type Handlers struct {
	OnToggleCategory func(index int)
	OnToggleGroup    func(categoryIndex int, group string)
	OnSelectService  func(sel SelectService)
}

// Dispatch forwards one intent to its handler.
func (h Handlers) Dispatch(intent Intent) {
	switch in := intent.(type) {
	case ToggleCategory:
		if h.OnToggleCategory != nil {
			h.OnToggleCategory(in.Index)
		}
	case ToggleGroup:
		if h.OnToggleGroup != nil {
			h.OnToggleGroup(in.CategoryIndex, in.Group)
		}
	case SelectService:
		if h.OnSelectService != nil {
			h.OnSelectService(in)
		}
	}
}
