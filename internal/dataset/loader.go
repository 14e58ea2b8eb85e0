// Package dataset is the data layer of the directory: it loads, validates,
// and caches the bilingual catalog payloads and the resources enrichment
// payload. The map engine itself trusts shape; everything entering it goes
// through this package first.
package dataset

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/dklevakin/ai-map/internal/catalog"
	"github.com/dklevakin/ai-map/internal/i18n"
)

// ResourcesFile is the language-independent enrichment payload name.
const ResourcesFile = "resources.json"

// Store loads datasets from one directory and caches the parsed results
// until invalidated.
type Store struct {
	dir string

	mu        sync.RWMutex
	catalogs  map[i18n.Lang][]catalog.Category
	resources catalog.ResourceIndex
	resLoaded bool
}

// NewStore creates a store over a data directory.
func NewStore(dir string) *Store {
	return &Store{
		dir:      dir,
		catalogs: make(map[i18n.Lang][]catalog.Category),
	}
}

// CatalogPath returns the payload path for a language.
func (s *Store) CatalogPath(lang i18n.Lang) string {
	return filepath.Join(s.dir, string(lang)+".json")
}

// ResourcesPath returns the enrichment payload path.
func (s *Store) ResourcesPath() string {
	return filepath.Join(s.dir, ResourcesFile)
}

// Dir returns the dataset directory.
func (s *Store) Dir() string {
	return s.dir
}

// Catalog returns the validated catalog for a language, loading it on first
// use.
func (s *Store) Catalog(lang i18n.Lang) ([]catalog.Category, error) {
	s.mu.RLock()
	cached, ok := s.catalogs[lang]
	s.mu.RUnlock()
	if ok {
		return cached, nil
	}

	loaded, err := s.loadCatalog(lang)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.catalogs[lang] = loaded
	s.mu.Unlock()
	return loaded, nil
}

func (s *Store) loadCatalog(lang i18n.Lang) ([]catalog.Category, error) {
	path := s.CatalogPath(lang)
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: read %s: %w", path, err)
	}
	if err := ValidateCatalog(raw); err != nil {
		return nil, err
	}
	var categories []catalog.Category
	if err := decodeJSON(raw, &categories); err != nil {
		return nil, fmt.Errorf("dataset: decode %s: %w", path, err)
	}
	return categories, nil
}

// Resources returns the enrichment index. A missing payload is not an
// error: the directory simply renders without tags and links.
func (s *Store) Resources() (catalog.ResourceIndex, error) {
	s.mu.RLock()
	if s.resLoaded {
		index := s.resources
		s.mu.RUnlock()
		return index, nil
	}
	s.mu.RUnlock()

	raw, err := os.ReadFile(s.ResourcesPath())
	if os.IsNotExist(err) {
		s.mu.Lock()
		s.resLoaded = true
		s.resources = nil
		s.mu.Unlock()
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("dataset: read resources: %w", err)
	}
	if err := ValidateResources(raw); err != nil {
		return nil, err
	}
	var payload struct {
		Services []catalog.ResourceEntry `json:"services"`
	}
	if err := decodeJSON(raw, &payload); err != nil {
		return nil, fmt.Errorf("dataset: decode resources: %w", err)
	}
	index := catalog.BuildResourceIndex(payload.Services)

	s.mu.Lock()
	s.resLoaded = true
	s.resources = index
	s.mu.Unlock()
	return index, nil
}

// Warmup preloads the catalog for a language in the background so the
// first request does not pay the disk read.
func (s *Store) Warmup(lang i18n.Lang) {
	go func() {
		if _, err := s.Catalog(lang); err != nil {
			slog.Warn("dataset warmup failed", "lang", lang, "err", err)
		}
	}()
}

// Invalidate drops every cached payload; the next access reloads from disk.
func (s *Store) Invalidate() {
	s.mu.Lock()
	s.catalogs = make(map[i18n.Lang][]catalog.Category)
	s.resources = nil
	s.resLoaded = false
	s.mu.Unlock()
}
