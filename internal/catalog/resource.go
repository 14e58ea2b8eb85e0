package catalog

import (
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// Label is a link caption that is either a plain string or localized per
// language code.
type Label struct {
	Plain     string
	Localized map[string]string
}

// For resolves the label for a language, preferring the plain form, then the
// requested language, then English, then Ukrainian.
func (l Label) For(lang string) string {
	if l.Plain != "" {
		return l.Plain
	}
	for _, code := range []string{lang, "en", "ua"} {
		if v := l.Localized[code]; v != "" {
			return v
		}
	}
	return ""
}

// UnmarshalJSON accepts either a bare string or a language map.
func (l *Label) UnmarshalJSON(data []byte) error {
	var plain string
	if err := json.Unmarshal(data, &plain); err == nil {
		l.Plain = plain
		l.Localized = nil
		return nil
	}
	var localized map[string]string
	if err := json.Unmarshal(data, &localized); err != nil {
		return fmt.Errorf("catalog: decode link label: %w", err)
	}
	l.Plain = ""
	l.Localized = localized
	return nil
}

// ResourceLink is one external reference of a resource entry.
type ResourceLink struct {
	Href  string `json:"href"`
	Label Label  `json:"label"`
}

// LinkList flattens the three accepted link shapes (bare URL string, link
// object, array of either) into a uniform slice.
type LinkList []ResourceLink

// UnmarshalJSON normalizes a string, an object, or an array of both.
func (ll *LinkList) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*ll = nil
		return nil
	}
	switch {
	case strings.HasPrefix(trimmed, "["):
		var raws []json.RawMessage
		if err := json.Unmarshal(data, &raws); err != nil {
			return fmt.Errorf("catalog: decode link list: %w", err)
		}
		out := make(LinkList, 0, len(raws))
		for _, raw := range raws {
			var nested LinkList
			if err := nested.UnmarshalJSON(raw); err != nil {
				return err
			}
			out = append(out, nested...)
		}
		*ll = out
		return nil
	case strings.HasPrefix(trimmed, "\""):
		var href string
		if err := json.Unmarshal(data, &href); err != nil {
			return fmt.Errorf("catalog: decode link: %w", err)
		}
		*ll = LinkList{{Href: href}}
		return nil
	default:
		var link ResourceLink
		if err := json.Unmarshal(data, &link); err != nil {
			return fmt.Errorf("catalog: decode link: %w", err)
		}
		if link.Href == "" {
			*ll = nil
			return nil
		}
		*ll = LinkList{link}
		return nil
	}
}

// ResourceEntry enriches a service with tags and curated links. It belongs to
// the external resources dataset and is consumed read-only.
type ResourceEntry struct {
	Name  string              `json:"name"`
	Slug  string              `json:"slug"`
	Href  string              `json:"href"`
	Tags  []string            `json:"tags"`
	Links map[string]LinkList `json:"links"`
}

// FlatLink is one resolved link of a resource entry, tagged with its kind.
type FlatLink struct {
	Kind  string
	Href  string
	Label Label
}

// linkKindOrder fixes the presentation order of the well-known link kinds;
// unknown kinds follow alphabetically.
var linkKindOrder = []string{
	"docs", "gettingStarted", "examples", "tutorials",
	"repo", "support", "community", "blog",
}

// FlatLinks returns every link of the entry in a deterministic order.
func (e ResourceEntry) FlatLinks() []FlatLink {
	if len(e.Links) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(e.Links))
	var out []FlatLink
	appendKind := func(kind string) {
		for _, link := range e.Links[kind] {
			out = append(out, FlatLink{Kind: kind, Href: link.Href, Label: link.Label})
		}
		seen[kind] = true
	}
	for _, kind := range linkKindOrder {
		if _, ok := e.Links[kind]; ok {
			appendKind(kind)
		}
	}
	rest := make([]string, 0, len(e.Links))
	for kind := range e.Links {
		if !seen[kind] {
			rest = append(rest, kind)
		}
	}
	sort.Strings(rest)
	for _, kind := range rest {
		appendKind(kind)
	}
	return out
}

// ResourceIndex maps identity keys (slug, hostname, origin) to entries.
type ResourceIndex map[string]*ResourceEntry

// BuildResourceIndex registers every entry under its slug, its name-derived
// slug, its hostname without a leading www, and its URL origin. The first
// writer wins per key; later duplicates are dropped silently.
func BuildResourceIndex(entries []ResourceEntry) ResourceIndex {
	index := make(ResourceIndex)
	for i := range entries {
		entry := &entries[i]
		if entry.Slug == "" && entry.Name != "" {
			entry.Slug = Slugify(entry.Name)
		}
		for _, key := range identityKeys(entry) {
			if _, ok := index[key]; !ok {
				index[key] = entry
			}
		}
	}
	return index
}

func identityKeys(entry *ResourceEntry) []string {
	var keys []string
	add := func(key string) {
		if key == "" {
			return
		}
		for _, existing := range keys {
			if existing == key {
				return
			}
		}
		keys = append(keys, key)
	}
	add(entry.Slug)
	if entry.Name != "" {
		add(Slugify(entry.Name))
	}
	if host, origin, ok := splitHref(entry.Href); ok {
		add(host)
		add(origin)
	}
	return keys
}

// splitHref derives the lookup hostname and origin of an absolute URL.
// Malformed or relative hrefs fail closed.
func splitHref(href string) (host, origin string, ok bool) {
	u, err := url.Parse(href)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", "", false
	}
	host = strings.TrimPrefix(u.Hostname(), "www.")
	origin = u.Scheme + "://" + u.Host
	return host, origin, true
}

// FindResourceEntry resolves the enrichment entry for a service, trying the
// name slug first, then the service hostname, then the URL origin. A missing
// or malformed href simply yields no match.
func FindResourceEntry(index ResourceIndex, svc ServiceEntry) (*ResourceEntry, bool) {
	if index == nil {
		return nil, false
	}
	if entry, ok := index[Slugify(svc.Name)]; ok {
		return entry, true
	}
	host, origin, ok := splitHref(svc.Href)
	if !ok {
		return nil, false
	}
	if entry, ok := index[host]; ok {
		return entry, true
	}
	if entry, ok := index[origin]; ok {
		return entry, true
	}
	return nil, false
}
