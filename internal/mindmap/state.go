package mindmap

import "github.com/dklevakin/ai-map/internal/i18n"

// State is the transient UI state owned by a host. The engine reads it but
// never stores it; both the HTTP host and the terminal browser share these
// toggle semantics.
type State struct {
	Language i18n.Lang
	Query    string
	// ExpandedCategory is the sole expanded category index, -1 when none.
	ExpandedCategory int
	// ExpandedGroups holds the independently expanded group names per
	// category index.
	ExpandedGroups map[int]map[string]bool
	// SelectedKey is the composite key of the selected service appearance.
	SelectedKey string
}

// NewState returns a collapsed state for a language.
func NewState(lang i18n.Lang) State {
	return State{Language: lang, ExpandedCategory: -1}
}

// ToggleCategory makes the index the sole expanded category, or collapses it
// when it already is.
func (s *State) ToggleCategory(index int) {
	if s.ExpandedCategory == index {
		s.ExpandedCategory = -1
		return
	}
	s.ExpandedCategory = index
}

// ToggleGroup flips membership of a group name in the category's expanded
// set.
func (s *State) ToggleGroup(categoryIndex int, group string) {
	if s.ExpandedGroups == nil {
		s.ExpandedGroups = make(map[int]map[string]bool)
	}
	set := s.ExpandedGroups[categoryIndex]
	if set == nil {
		set = make(map[string]bool)
		s.ExpandedGroups[categoryIndex] = set
	}
	if set[group] {
		delete(set, group)
		return
	}
	set[group] = true
}

// GroupExpanded reports membership in the expanded set.
func (s State) GroupExpanded(categoryIndex int, group string) bool {
	return s.ExpandedGroups[categoryIndex][group]
}

// Select stores the composite key of the chosen service appearance.
func (s *State) Select(key string) {
	s.SelectedKey = key
}

// ClearSelection drops the current selection.
func (s *State) ClearSelection() {
	s.SelectedKey = ""
}

// SetLanguage switches the language and resets expansion and selection, as a
// new catalog is loaded per language.
func (s *State) SetLanguage(lang i18n.Lang) {
	s.Language = lang
	s.ExpandedCategory = -1
	s.ExpandedGroups = nil
	s.SelectedKey = ""
}

// Clone deep-copies the state so a host can derive the next state without
// touching the current one.
func (s State) Clone() State {
	out := s
	if s.ExpandedGroups != nil {
		out.ExpandedGroups = make(map[int]map[string]bool, len(s.ExpandedGroups))
		for idx, set := range s.ExpandedGroups {
			copied := make(map[string]bool, len(set))
			for name := range set {
				copied[name] = true
			}
			out.ExpandedGroups[idx] = copied
		}
	}
	return out
}

// Apply returns the state after one intent, leaving the receiver untouched.
func (s State) Apply(intent Intent) State {
	next := s.Clone()
	switch in := intent.(type) {
	case ToggleCategory:
		next.ToggleCategory(in.Index)
	case ToggleGroup:
		next.ToggleGroup(in.CategoryIndex, in.Group)
	case SelectService:
		next.Select(in.Key)
	}
	return next
}
