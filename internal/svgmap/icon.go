package svgmap

import (
	_ "embed"
	"encoding/base64"
	"net/url"
	"strings"
)

// PlaceholderIcon is the asset path of the bundled fallback icon, used when a
// service has no resolvable domain or its logo fails to load. The server
// serves the bundled document at this path.
const PlaceholderIcon = "/assets/service-placeholder.svg"

//go:embed assets/service-placeholder.svg
var placeholderIconSVG []byte

// PlaceholderIconSVG returns the bundled fallback icon document.
func PlaceholderIconSVG() []byte { return placeholderIconSVG }

// PlaceholderIconDataURI inlines the bundled icon for standalone documents
// that have no server to resolve the asset path against.
func PlaceholderIconDataURI() string {
	return "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString(placeholderIconSVG)
}

const logoProvider = "https://logo.clearbit.com/"

// IconURL derives the logo URL for a service href. Malformed hrefs fall back
// to the placeholder; this is a presentation fallback, not an error.
func IconURL(href string) string {
	domain := extractDomain(href)
	if domain == "" {
		return PlaceholderIcon
	}
	return logoProvider + domain
}

func extractDomain(href string) string {
	u, err := url.Parse(href)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}
