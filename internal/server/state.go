package server

import (
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/dklevakin/ai-map/internal/i18n"
	"github.com/dklevakin/ai-map/internal/mindmap"
)

// View selects the page body.
type View string

const (
	ViewMap  View = "map"
	ViewList View = "list"
)

// UIState is the full page state carried in the query string. The server
// keeps nothing per client; every link encodes the next state.
type UIState struct {
	State mindmap.State
	View  View
}

// DecodeState reads the UI state from query parameters. Unknown or absent
// values fall back to the collapsed map view in the default language.
func DecodeState(values url.Values, defaultLang i18n.Lang) UIState {
	lang := defaultLang
	if raw := values.Get("lang"); raw != "" {
		lang = i18n.Parse(raw)
	}
	state := mindmap.NewState(lang)
	state.Query = values.Get("q")
	if raw := values.Get("cat"); raw != "" {
		if idx, err := strconv.Atoi(raw); err == nil && idx >= 0 {
			state.ExpandedCategory = idx
		}
	}
	for _, raw := range values["g"] {
		idxStr, group, ok := strings.Cut(raw, ":")
		if !ok || group == "" {
			continue
		}
		idx, err := strconv.Atoi(idxStr)
		if err != nil || idx < 0 {
			continue
		}
		state.ToggleGroup(idx, group)
	}
	state.SelectedKey = values.Get("sel")

	view := ViewMap
	if View(values.Get("view")) == ViewList {
		view = ViewList
	}
	return UIState{State: state, View: view}
}

// Encode writes the state back into query parameters. Default values are
// omitted so the collapsed map URL stays bare.
func (u UIState) Encode() url.Values {
	values := url.Values{}
	values.Set("lang", string(u.State.Language))
	if u.State.Query != "" {
		values.Set("q", u.State.Query)
	}
	if u.State.ExpandedCategory >= 0 {
		values.Set("cat", strconv.Itoa(u.State.ExpandedCategory))
	}
	var groups []string
	for idx, set := range u.State.ExpandedGroups {
		for name, on := range set {
			if on {
				groups = append(groups, strconv.Itoa(idx)+":"+name)
			}
		}
	}
	sort.Strings(groups)
	for _, g := range groups {
		values.Add("g", g)
	}
	if u.State.SelectedKey != "" {
		values.Set("sel", u.State.SelectedKey)
	}
	if u.View == ViewList {
		values.Set("view", string(ViewList))
	}
	return values
}

// URL renders the state as a relative link to the given path.
func (u UIState) URL(path string) string {
	encoded := u.Encode().Encode()
	if encoded == "" {
		return path
	}
	return path + "?" + encoded
}

// Apply returns the state after one intent. Selecting the already selected
// service clears the selection so the link acts as a toggle.
func (u UIState) Apply(intent mindmap.Intent) UIState {
	next := u
	if sel, ok := intent.(mindmap.SelectService); ok && sel.Key == u.State.SelectedKey {
		next.State = u.State.Clone()
		next.State.ClearSelection()
		return next
	}
	next.State = u.State.Apply(intent)
	return next
}

// Linker builds the svgmap link callback for this state.
func (u UIState) Linker(path string) func(mindmap.Intent) string {
	return func(intent mindmap.Intent) string {
		return u.Apply(intent).URL(path)
	}
}

// WithLanguage returns the state switched to the other language. Expansion
// and selection reset with the catalog swap; the query survives.
func (u UIState) WithLanguage(lang i18n.Lang) UIState {
	next := u
	next.State = u.State.Clone()
	next.State.SetLanguage(lang)
	return next
}

// WithView returns the state with the view switched.
func (u UIState) WithView(view View) UIState {
	next := u
	next.View = view
	return next
}
