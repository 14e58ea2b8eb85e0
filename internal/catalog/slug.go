package catalog

import (
	"strconv"
	"strings"
	"unicode"
)

// Slugify lowercases a display name and collapses every run of
// non-alphanumeric runes into a single dash. Slugs are deterministic but not
// globally unique; repeated appearances of the same name are disambiguated by
// the occurrence index, never here.
func Slugify(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	pendingDash := false
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		pendingDash = true
	}
	return b.String()
}

// ServiceKey returns the identity seed of a service.
func ServiceKey(svc ServiceEntry) string {
	return Slugify(svc.Name)
}

// CompositeKey joins a slug with its occurrence index into the unique
// render-time identity of one appearance of a service.
func CompositeKey(slug string, occurrence int) string {
	return slug + "__" + strconv.Itoa(occurrence)
}
