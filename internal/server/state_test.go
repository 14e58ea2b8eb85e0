package server

import (
	"net/url"
	"testing"

	"github.com/dklevakin/ai-map/internal/i18n"
	"github.com/dklevakin/ai-map/internal/mindmap"
)

func TestDecodeStateDefaults(t *testing.T) {
	ui := DecodeState(url.Values{}, i18n.UA)
	if ui.State.Language != i18n.UA {
		t.Fatalf("Language=%q want ua", ui.State.Language)
	}
	if ui.State.ExpandedCategory != -1 {
		t.Fatalf("ExpandedCategory=%d want -1", ui.State.ExpandedCategory)
	}
	if ui.View != ViewMap {
		t.Fatalf("View=%q want map", ui.View)
	}
}

func TestStateRoundTrip(t *testing.T) {
	ui := UIState{State: mindmap.NewState(i18n.EN), View: ViewList}
	ui.State.Query = "перекл"
	ui.State.ToggleCategory(2)
	ui.State.ToggleGroup(2, "Переклад")
	ui.State.ToggleGroup(0, "Editing")
	ui.State.Select("claude__1")

	decoded := DecodeState(ui.Encode(), i18n.UA)
	if decoded.State.Language != i18n.EN {
		t.Fatalf("Language=%q", decoded.State.Language)
	}
	if decoded.State.Query != "перекл" {
		t.Fatalf("Query=%q", decoded.State.Query)
	}
	if decoded.State.ExpandedCategory != 2 {
		t.Fatalf("ExpandedCategory=%d", decoded.State.ExpandedCategory)
	}
	if !decoded.State.GroupExpanded(2, "Переклад") || !decoded.State.GroupExpanded(0, "Editing") {
		t.Fatalf("groups lost: %+v", decoded.State.ExpandedGroups)
	}
	if decoded.State.SelectedKey != "claude__1" {
		t.Fatalf("SelectedKey=%q", decoded.State.SelectedKey)
	}
	if decoded.View != ViewList {
		t.Fatalf("View=%q", decoded.View)
	}
}

func TestCollapsedURLStaysBare(t *testing.T) {
	ui := UIState{State: mindmap.NewState(i18n.UA), View: ViewMap}
	got := ui.URL("/")
	if got != "/?lang=ua" {
		t.Fatalf("URL=%q want /?lang=ua", got)
	}
}

func TestApplySelectTogglesOff(t *testing.T) {
	ui := UIState{State: mindmap.NewState(i18n.UA)}
	ui.State.Select("claude__0")
	next := ui.Apply(mindmap.SelectService{Key: "claude__0"})
	if next.State.SelectedKey != "" {
		t.Fatalf("re-select did not clear, SelectedKey=%q", next.State.SelectedKey)
	}
	if ui.State.SelectedKey != "claude__0" {
		t.Fatalf("Apply mutated the receiver")
	}
}

func TestApplyCategoryLinkRoundTrip(t *testing.T) {
	ui := UIState{State: mindmap.NewState(i18n.UA)}
	expanded := ui.Apply(mindmap.ToggleCategory{Index: 1})
	if expanded.State.ExpandedCategory != 1 {
		t.Fatalf("ExpandedCategory=%d", expanded.State.ExpandedCategory)
	}
	collapsed := expanded.Apply(mindmap.ToggleCategory{Index: 1})
	if collapsed.State.ExpandedCategory != -1 {
		t.Fatalf("second toggle did not collapse")
	}
}

func TestWithLanguageResetsExpansionKeepsQuery(t *testing.T) {
	ui := UIState{State: mindmap.NewState(i18n.UA), View: ViewList}
	ui.State.Query = "gen"
	ui.State.ToggleCategory(0)
	next := ui.WithLanguage(i18n.EN)
	if next.State.Language != i18n.EN {
		t.Fatalf("Language=%q", next.State.Language)
	}
	if next.State.ExpandedCategory != -1 {
		t.Fatalf("expansion survived the language switch")
	}
	if next.State.Query != "gen" {
		t.Fatalf("query lost: %q", next.State.Query)
	}
	if next.View != ViewList {
		t.Fatalf("View=%q", next.View)
	}
}

func TestLinkerProducesNextStateURL(t *testing.T) {
	ui := UIState{State: mindmap.NewState(i18n.UA)}
	link := ui.Linker("/")(mindmap.ToggleCategory{Index: 0})
	decoded := DecodeState(mustParseQuery(t, link), i18n.UA)
	if decoded.State.ExpandedCategory != 0 {
		t.Fatalf("link %q does not expand category 0", link)
	}
}

func mustParseQuery(t *testing.T, link string) url.Values {
	t.Helper()
	u, err := url.Parse(link)
	if err != nil {
		t.Fatalf("parse %q: %v", link, err)
	}
	return u.Query()
}
