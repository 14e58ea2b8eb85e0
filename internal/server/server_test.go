package server

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dklevakin/ai-map/internal/config"
	"github.com/dklevakin/ai-map/internal/dataset"
	"github.com/dklevakin/ai-map/internal/svgmap"
)

const testCatalog = `[
  {
    "category": "Текст і чат",
    "color": "#38BDF8",
    "items": [
      {"name": "Claude", "href": "https://claude.ai", "desc": "Асистент"},
      {"group": "Переклад", "items": [
        {"name": "DeepL", "href": "https://deepl.com", "desc": "Перекладач"}
      ]}
    ]
  },
  {
    "category": "Зображення",
    "color": "#A78BFA",
    "items": [
      {"name": "Midjourney", "href": "https://midjourney.com", "desc": "Генерація"}
    ]
  }
]`

const testResources = `{
  "services": [
    {"name": "Claude", "href": "https://claude.ai", "tags": ["chat"], "links": {
      "docs": "https://docs.claude.com",
      "blog": {"href": "https://claude.ai/blog", "label": {"ua": "Блог", "en": "Blog"}}
    }}
  ]
}`

func newTestServer(t *testing.T) *Server {
	t.Helper()
	dir := t.TempDir()
	for _, lang := range []string{"ua", "en"} {
		if err := os.WriteFile(filepath.Join(dir, lang+".json"), []byte(testCatalog), 0o644); err != nil {
			t.Fatalf("write catalog: %v", err)
		}
	}
	if err := os.WriteFile(filepath.Join(dir, dataset.ResourcesFile), []byte(testResources), 0o644); err != nil {
		t.Fatalf("write resources: %v", err)
	}
	cfg := config.Defaults()
	cfg.Server.DataDir = dir
	srv, err := New(cfg, dataset.NewStore(dir))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return srv
}

func get(t *testing.T, handler http.Handler, target string) (*http.Response, string) {
	t.Helper()
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	res := rec.Result()
	body, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return res, string(body)
}

func TestHealthz(t *testing.T) {
	handler := newTestServer(t).Handler()
	res, body := get(t, handler, "/healthz")
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status=%d", res.StatusCode)
	}
	if strings.TrimSpace(body) != "ok" {
		t.Fatalf("body=%q", body)
	}
}

func TestMapPage(t *testing.T) {
	handler := newTestServer(t).Handler()
	res, body := get(t, handler, "/?lang=ua")
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status=%d", res.StatusCode)
	}
	for _, want := range []string{"<svg", "AI Compass", "Текст і чат", "Зображення"} {
		if !strings.Contains(body, want) {
			t.Fatalf("page missing %q", want)
		}
	}
	// Collapsed categories keep their services off the page.
	if strings.Contains(body, "DeepL") {
		t.Fatalf("collapsed group leaked a service")
	}
}

func TestMapPageExpandedCategoryLinksNextState(t *testing.T) {
	handler := newTestServer(t).Handler()
	_, body := get(t, handler, "/?lang=ua&cat=0")
	if !strings.Contains(body, "Claude") {
		t.Fatalf("expanded category missing standalone service")
	}
	if !strings.Contains(body, "Переклад") {
		t.Fatalf("expanded category missing group pill")
	}
	// Toggling the expanded category collapses it: its link drops cat.
	if !strings.Contains(body, `href="/?lang=ua"`) {
		t.Fatalf("collapse link missing")
	}
}

func TestMapPageSelectionDetails(t *testing.T) {
	handler := newTestServer(t).Handler()
	_, body := get(t, handler, "/?lang=ua&cat=0&sel=claude__0")
	for _, want := range []string{"https://claude.ai", "chat", "https://docs.claude.com"} {
		if !strings.Contains(body, want) {
			t.Fatalf("details missing %q", want)
		}
	}
	// Localized link labels resolve for the page language; plain links fall
	// back to the kind name.
	if !strings.Contains(body, "Блог") {
		t.Fatalf("localized link label missing")
	}
	if !strings.Contains(body, ">docs</a>") {
		t.Fatalf("kind fallback label missing")
	}
}

func TestListPageSearchFilters(t *testing.T) {
	handler := newTestServer(t).Handler()
	_, body := get(t, handler, "/?lang=ua&view=list&q=deepl")
	if !strings.Contains(body, "DeepL") {
		t.Fatalf("matched service missing")
	}
	if strings.Contains(body, "Midjourney") {
		t.Fatalf("unmatched category leaked")
	}
}

func TestListPageNoResults(t *testing.T) {
	handler := newTestServer(t).Handler()
	_, body := get(t, handler, "/?lang=en&view=list&q=zzzzz")
	if !strings.Contains(body, "No results for this query") {
		t.Fatalf("placeholder missing: %s", body)
	}
}

func TestSVGEndpoint(t *testing.T) {
	handler := newTestServer(t).Handler()
	res, body := get(t, handler, "/map.svg?lang=ua")
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status=%d", res.StatusCode)
	}
	if got := res.Header.Get("Content-Type"); !strings.HasPrefix(got, "image/svg+xml") {
		t.Fatalf("Content-Type=%q", got)
	}
	if !strings.HasPrefix(body, "<svg") {
		t.Fatalf("not an svg document")
	}
}

func TestPlaceholderIconServed(t *testing.T) {
	handler := newTestServer(t).Handler()
	res, body := get(t, handler, svgmap.PlaceholderIcon)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status=%d", res.StatusCode)
	}
	if got := res.Header.Get("Content-Type"); !strings.HasPrefix(got, "image/svg+xml") {
		t.Fatalf("Content-Type=%q", got)
	}
	if !strings.Contains(body, "<svg") {
		t.Fatalf("not an svg document")
	}
}

func TestProfilingRouteGated(t *testing.T) {
	srv := newTestServer(t)
	res, _ := get(t, srv.Handler(), "/debug/fgprof?seconds=0")
	if res.StatusCode != http.StatusNotFound {
		t.Fatalf("profiling exposed without opt-in: %d", res.StatusCode)
	}
}
