// Package server hosts the web frontend of the service map. The server is
// stateless: every page is a pure function of the query string and the
// dataset, and every interaction is a link to the next state.
package server

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/felixge/fgprof"

	"github.com/dklevakin/ai-map/internal/catalog"
	"github.com/dklevakin/ai-map/internal/config"
	"github.com/dklevakin/ai-map/internal/dataset"
	"github.com/dklevakin/ai-map/internal/i18n"
	"github.com/dklevakin/ai-map/internal/mindmap"
	"github.com/dklevakin/ai-map/internal/svgmap"
	"github.com/dklevakin/ai-map/internal/theme"
)

var pageCopy = struct {
	SearchPlaceholder i18n.Text
	ViewMap           i18n.Text
	ViewList          i18n.Text
	MapHeading        i18n.Text
	ListHeading       i18n.Text
	Banner            i18n.Text
	InfoNote          i18n.Text
	NoResults         i18n.Text
	DetailsEmpty      i18n.Text
	DetailsPrimary    i18n.Text
	DetailsTagsLabel  i18n.Text
	DetailsLinksLabel i18n.Text
	DetailsClose      i18n.Text
	FooterRights      i18n.Text
}{
	SearchPlaceholder: i18n.SearchPlaceholder,
	ViewMap:           i18n.ViewMap,
	ViewList:          i18n.ViewList,
	MapHeading:        i18n.MapHeading,
	ListHeading:       i18n.ListHeading,
	Banner:            i18n.Banner,
	InfoNote:          i18n.InfoNote,
	NoResults:         i18n.NoResults,
	DetailsEmpty:      i18n.DetailsEmpty,
	DetailsPrimary:    i18n.DetailsPrimary,
	DetailsTagsLabel:  i18n.DetailsTagsLabel,
	DetailsLinksLabel: i18n.DetailsLinksLabel,
	DetailsClose:      i18n.DetailsClose,
	FooterRights:      i18n.FooterRights,
}

// Server renders the map and list pages from the dataset store.
type Server struct {
	cfg     config.Config
	store   *dataset.Store
	builder *mindmap.Builder
	palette theme.Palette
	lang    i18n.Lang
}

// New creates a server over the store. The builder and its size cache live
// for the whole process.
func New(cfg config.Config, store *dataset.Store) (*Server, error) {
	palette, err := cfg.Palette()
	if err != nil {
		return nil, err
	}
	return &Server{
		cfg:     cfg,
		store:   store,
		builder: mindmap.NewBuilder(nil),
		palette: palette,
		lang:    i18n.Parse(cfg.UI.Language),
	}, nil
}

// Handler returns the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handlePage)
	mux.HandleFunc("GET /map.svg", s.handleSVG)
	mux.HandleFunc("GET "+svgmap.PlaceholderIcon, handlePlaceholderIcon)
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	if s.cfg.Server.Profiling {
		mux.Handle("GET /debug/fgprof", fgprof.Handler())
	}
	return s.logRequests(mux)
}

// Run serves until the context is canceled, watching the dataset directory
// when enabled.
func (s *Server) Run(ctx context.Context) error {
	if s.cfg.Server.WatchEnabled() {
		stop, err := dataset.Watch(s.store.Dir(), s.cfg.Server.Debounce(), func() {
			slog.Info("server: dataset changed, cache invalidated")
			s.store.Invalidate()
		})
		if err != nil {
			slog.Warn("server: dataset watch unavailable", slog.Any("error", err))
		} else {
			defer func() { _ = stop() }()
		}
	}
	s.store.Warmup(s.lang)

	srv := &http.Server{
		Addr:        s.cfg.Server.Addr,
		Handler:     s.Handler(),
		ReadTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	slog.Info("server: listening", slog.String("addr", s.cfg.Server.Addr))

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		slog.Debug("server: request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Duration("elapsed", time.Since(start)),
		)
	})
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintln(w, "ok")
}

func (s *Server) handleSVG(w http.ResponseWriter, r *http.Request) {
	ui := DecodeState(r.URL.Query(), s.lang)
	scene, err := s.buildScene(ui)
	if err != nil {
		s.dataError(w, ui, err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml; charset=utf-8")
	_, _ = w.Write(svgmap.Render(scene, svgmap.Options{InlineStyle: true}))
}

func handlePlaceholderIcon(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "image/svg+xml; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	_, _ = w.Write(svgmap.PlaceholderIconSVG())
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	ui := DecodeState(r.URL.Query(), s.lang)
	if ui.View == ViewList {
		s.renderList(w, ui)
		return
	}
	s.renderMap(w, ui)
}

func (s *Server) buildScene(ui UIState) (mindmap.Scene, error) {
	categories, err := s.store.Catalog(ui.State.Language)
	if err != nil {
		return mindmap.Scene{}, err
	}
	resources, err := s.store.Resources()
	if err != nil {
		return mindmap.Scene{}, err
	}
	return s.builder.Build(ui.State.Params(categories, resources, s.palette)), nil
}

// pageData is the template payload shared by both views.
type pageData struct {
	Lang           i18n.Lang
	Query          string
	Palette        theme.Palette
	Copy           any
	IsList         bool
	MapURL         string
	ListURL        string
	OtherLangURL   string
	OtherLangLabel string

	SVG     template.HTML
	Details *detailsData

	Categories []listCategory
	Empty      bool
}

type detailsData struct {
	Name     string
	Desc     string
	Href     string
	Tags     []string
	Links    []detailsLink
	CloseURL string
}

type detailsLink struct {
	Href  string
	Label string
}

type listCategory struct {
	Name      string
	Color     string
	ToggleURL string
	Rows      []listRow
}

type listRow struct {
	IsGroup   bool
	Name      string
	Desc      string
	Hit       bool
	Selected  bool
	ToggleURL string
	SelectURL string
}

func (s *Server) basePageData(ui UIState) pageData {
	other := ui.State.Language.Other()
	return pageData{
		Lang:           ui.State.Language,
		Query:          ui.State.Query,
		Palette:        s.palette,
		Copy:           pageCopy,
		IsList:         ui.View == ViewList,
		MapURL:         ui.WithView(ViewMap).URL("/"),
		ListURL:        ui.WithView(ViewList).URL("/"),
		OtherLangURL:   ui.WithLanguage(other).URL("/"),
		OtherLangLabel: string(other),
	}
}

func (s *Server) dataError(w http.ResponseWriter, ui UIState, err error) {
	slog.Error("server: dataset load failed", slog.Any("error", err))
	w.WriteHeader(http.StatusInternalServerError)
	fmt.Fprintf(w, "%s\n", i18n.LoadError.For(ui.State.Language))
}

func (s *Server) renderMap(w http.ResponseWriter, ui UIState) {
	scene, err := s.buildScene(ui)
	if err != nil {
		s.dataError(w, ui, err)
		return
	}
	data := s.basePageData(ui)
	data.SVG = template.HTML(svgmap.Render(scene, svgmap.Options{Linker: ui.Linker("/")}))
	data.Details = s.detailsFor(ui, scene)
	render(w, tmplMap, data)
}

// detailsFor resolves the selected service node into the details card.
func (s *Server) detailsFor(ui UIState, scene mindmap.Scene) *detailsData {
	if ui.State.SelectedKey == "" {
		return nil
	}
	for _, node := range scene.Nodes {
		if node.Kind != mindmap.NodeService || node.Key != ui.State.SelectedKey {
			continue
		}
		cleared := ui
		cleared.State = ui.State.Clone()
		cleared.State.ClearSelection()
		details := &detailsData{
			Name:     node.Service.Name,
			Desc:     node.Service.Desc,
			Href:     node.Service.Href,
			Tags:     node.Tags,
			CloseURL: cleared.URL("/"),
		}
		resources, err := s.store.Resources()
		if err == nil {
			if entry, ok := catalog.FindResourceEntry(resources, *node.Service); ok {
				for _, link := range entry.FlatLinks() {
					label := link.Label.For(string(ui.State.Language))
					if label == "" {
						label = link.Kind
					}
					details.Links = append(details.Links, detailsLink{Href: link.Href, Label: label})
				}
			}
		}
		return details
	}
	return nil
}

func (s *Server) renderList(w http.ResponseWriter, ui UIState) {
	categories, err := s.store.Catalog(ui.State.Language)
	if err != nil {
		s.dataError(w, ui, err)
		return
	}
	resources, err := s.store.Resources()
	if err != nil {
		s.dataError(w, ui, err)
		return
	}
	rows := mindmap.BuildRows(ui.State.Params(categories, resources, s.palette))

	data := s.basePageData(ui)
	data.Empty = len(rows) == 0
	for _, row := range rows {
		link := ui.Apply(row.Intent).URL("/")
		switch row.Kind {
		case mindmap.RowCategory:
			data.Categories = append(data.Categories, listCategory{
				Name:      row.Label,
				Color:     row.Color,
				ToggleURL: link,
			})
		case mindmap.RowGroup:
			last := &data.Categories[len(data.Categories)-1]
			last.Rows = append(last.Rows, listRow{IsGroup: true, Name: row.Label, ToggleURL: link})
		case mindmap.RowService:
			last := &data.Categories[len(data.Categories)-1]
			last.Rows = append(last.Rows, listRow{
				Name:      row.Label,
				Desc:      row.Desc,
				Hit:       row.Hit,
				Selected:  row.Selected,
				SelectURL: link,
			})
		}
	}
	render(w, tmplList, data)
}
