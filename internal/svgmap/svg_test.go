package svgmap

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/dklevakin/ai-map/internal/catalog"
	"github.com/dklevakin/ai-map/internal/i18n"
	"github.com/dklevakin/ai-map/internal/mindmap"
	"github.com/dklevakin/ai-map/internal/theme"
)

func testScene(t *testing.T, expanded bool) mindmap.Scene {
	t.Helper()
	p := mindmap.Params{
		Categories: []catalog.Category{{
			Category: "Текст",
			Color:    "#38BDF8",
			Items: []catalog.Item{
				{Service: &catalog.ServiceEntry{Name: "Claude", Href: "https://claude.ai", Desc: "chat"}},
			},
		}},
		Palette:          theme.Dark(),
		Language:         i18n.UA,
		ExpandedCategory: -1,
	}
	if expanded {
		p.ExpandedCategory = 0
	}
	return mindmap.NewBuilder(nil).Build(p)
}

func TestRenderDeterministic(t *testing.T) {
	scene := testScene(t, true)
	first := Render(scene, Options{InlineStyle: true})
	second := Render(scene, Options{InlineStyle: true})
	if !bytes.Equal(first, second) {
		t.Fatalf("equal scenes rendered different documents")
	}
}

func TestRenderShape(t *testing.T) {
	doc := string(Render(testScene(t, true), Options{InlineStyle: true}))

	for _, want := range []string{
		`viewBox="0 0 1240 720"`,
		`<g class="connectors"`,
		`<g class="branches"`,
		`<g class="leaves"`,
		"AI Compass",
		"Текст",
		"Claude",
		`clip-claude__0`,
		`data-service-key="claude__0"`,
		`https://logo.clearbit.com/claude.ai`,
		PlaceholderIcon,
		`<style>`,
	} {
		if !strings.Contains(doc, want) {
			t.Fatalf("document missing %q", want)
		}
	}
	if got := strings.Count(doc, "<ellipse"); got != 3 {
		t.Fatalf("ellipses = %d, want 3 (root, category, service)", got)
	}
	if got := strings.Count(doc, "<path"); got != 2 {
		t.Fatalf("paths = %d, want 2", got)
	}
}

func TestRenderLinker(t *testing.T) {
	scene := testScene(t, true)
	doc := string(Render(scene, Options{Linker: func(intent mindmap.Intent) string {
		switch in := intent.(type) {
		case mindmap.ToggleCategory:
			return fmt.Sprintf("/?cat=%d", in.Index)
		case mindmap.SelectService:
			return "/?sel=" + in.Key
		}
		return ""
	}}))

	if !strings.Contains(doc, `<a href="/?cat=0">`) {
		t.Fatalf("category link missing")
	}
	if !strings.Contains(doc, `<a href="/?sel=claude__0">`) {
		t.Fatalf("service link missing")
	}
	if !strings.Contains(doc, `role="button" tabindex="0"`) {
		t.Fatalf("activation attributes missing")
	}
	// The root carries no intent and therefore no link.
	if strings.Count(doc, "<a href=") != 2 {
		t.Fatalf("link count = %d, want 2", strings.Count(doc, "<a href="))
	}
}

func TestRenderWithoutStyle(t *testing.T) {
	doc := string(Render(testScene(t, false), Options{}))
	if strings.Contains(doc, "<style>") {
		t.Fatalf("style block rendered without InlineStyle")
	}
}

func TestRenderPlaceholderOverride(t *testing.T) {
	uri := PlaceholderIconDataURI()
	if !strings.HasPrefix(uri, "data:image/svg+xml;base64,") {
		t.Fatalf("data URI prefix off: %q", uri)
	}
	if !strings.Contains(string(PlaceholderIconSVG()), "<svg") {
		t.Fatalf("bundled icon is not an SVG document")
	}
	doc := string(Render(testScene(t, true), Options{InlineStyle: true, PlaceholderHref: uri}))
	if !strings.Contains(doc, uri) {
		t.Fatalf("override missing from onerror fallback")
	}
	if strings.Contains(doc, PlaceholderIcon) {
		t.Fatalf("asset path leaked into standalone document")
	}
}

func TestIconURL(t *testing.T) {
	tests := []struct {
		name string
		href string
		want string
	}{
		{name: "plain", href: "https://claude.ai/chat", want: "https://logo.clearbit.com/claude.ai"},
		{name: "www stripped", href: "https://www.deepl.com", want: "https://logo.clearbit.com/deepl.com"},
		{name: "malformed", href: "::nope::", want: PlaceholderIcon},
		{name: "relative", href: "/local/path", want: PlaceholderIcon},
		{name: "empty", href: "", want: PlaceholderIcon},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IconURL(tt.href); got != tt.want {
				t.Fatalf("IconURL(%q) = %q, want %q", tt.href, got, tt.want)
			}
		})
	}
}
