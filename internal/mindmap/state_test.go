package mindmap

import (
	"testing"

	"github.com/dklevakin/ai-map/internal/catalog"
	"github.com/dklevakin/ai-map/internal/i18n"
)

func TestToggleCategoryMutualExclusion(t *testing.T) {
	s := NewState(i18n.UA)
	if s.ExpandedCategory != -1 {
		t.Fatalf("fresh state expanded = %d, want -1", s.ExpandedCategory)
	}
	s.ToggleCategory(2)
	if s.ExpandedCategory != 2 {
		t.Fatalf("expanded = %d, want 2", s.ExpandedCategory)
	}
	// A different category takes over; at most one stays expanded.
	s.ToggleCategory(4)
	if s.ExpandedCategory != 4 {
		t.Fatalf("expanded = %d, want 4", s.ExpandedCategory)
	}
	// Toggling the expanded one collapses everything.
	s.ToggleCategory(4)
	if s.ExpandedCategory != -1 {
		t.Fatalf("expanded = %d after collapse, want -1", s.ExpandedCategory)
	}
}

func TestToggleGroupIndependentSets(t *testing.T) {
	s := NewState(i18n.UA)
	s.ToggleGroup(0, "Переклад")
	s.ToggleGroup(0, "Асистенти")
	s.ToggleGroup(1, "Переклад")

	if !s.GroupExpanded(0, "Переклад") || !s.GroupExpanded(0, "Асистенти") {
		t.Fatalf("groups of category 0 not both expanded")
	}
	if !s.GroupExpanded(1, "Переклад") {
		t.Fatalf("same group name in another category tracked together")
	}

	s.ToggleGroup(0, "Переклад")
	if s.GroupExpanded(0, "Переклад") {
		t.Fatalf("second toggle did not collapse the group")
	}
	if !s.GroupExpanded(1, "Переклад") {
		t.Fatalf("collapse leaked into another category")
	}
}

func TestSetLanguageResets(t *testing.T) {
	s := NewState(i18n.UA)
	s.Query = "deepl"
	s.ToggleCategory(1)
	s.ToggleGroup(1, "Переклад")
	s.Select("deepl__0")

	s.SetLanguage(i18n.EN)
	if s.Language != i18n.EN {
		t.Fatalf("language = %q", s.Language)
	}
	if s.ExpandedCategory != -1 || s.ExpandedGroups != nil || s.SelectedKey != "" {
		t.Fatalf("language switch did not reset expansion and selection")
	}
	if s.Query != "deepl" {
		t.Fatalf("language switch should keep the query, got %q", s.Query)
	}
}

func TestApplyLeavesReceiverUntouched(t *testing.T) {
	s := NewState(i18n.UA)
	s.ToggleGroup(0, "Переклад")

	next := s.Apply(ToggleGroup{CategoryIndex: 0, Group: "Асистенти"})
	if !next.GroupExpanded(0, "Асистенти") {
		t.Fatalf("apply did not expand the group")
	}
	if s.GroupExpanded(0, "Асистенти") {
		t.Fatalf("apply mutated the original state")
	}

	next = s.Apply(ToggleCategory{Index: 3})
	if next.ExpandedCategory != 3 || s.ExpandedCategory != -1 {
		t.Fatalf("apply toggle category leaked: next=%d orig=%d", next.ExpandedCategory, s.ExpandedCategory)
	}

	next = s.Apply(SelectService{Key: "claude__1"})
	if next.SelectedKey != "claude__1" || s.SelectedKey != "" {
		t.Fatalf("apply select leaked: next=%q orig=%q", next.SelectedKey, s.SelectedKey)
	}
}

func TestHandlersDispatch(t *testing.T) {
	var gotCategory, gotGroupCat int
	var gotGroup string
	var gotSel SelectService

	h := Handlers{
		OnToggleCategory: func(index int) { gotCategory = index },
		OnToggleGroup: func(categoryIndex int, group string) {
			gotGroupCat = categoryIndex
			gotGroup = group
		},
		OnSelectService: func(sel SelectService) { gotSel = sel },
	}

	h.Dispatch(ToggleCategory{Index: 7})
	if gotCategory != 7 {
		t.Fatalf("toggle category index = %d", gotCategory)
	}

	h.Dispatch(ToggleGroup{CategoryIndex: 2, Group: "Переклад"})
	if gotGroupCat != 2 || gotGroup != "Переклад" {
		t.Fatalf("toggle group = %d/%q", gotGroupCat, gotGroup)
	}

	sel := SelectService{
		Service:    catalog.ServiceEntry{Name: "Claude"},
		Category:   "Текст",
		Occurrence: 1,
		Key:        "claude__1",
	}
	h.Dispatch(sel)
	if gotSel.Key != "claude__1" || gotSel.Service.Name != "Claude" {
		t.Fatalf("select dispatch = %+v", gotSel)
	}

	// Nil handlers are skipped without panicking.
	Handlers{}.Dispatch(ToggleCategory{Index: 0})
}
