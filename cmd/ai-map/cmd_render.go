package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/dklevakin/ai-map/internal/dataset"
	"github.com/dklevakin/ai-map/internal/i18n"
	"github.com/dklevakin/ai-map/internal/mindmap"
	"github.com/dklevakin/ai-map/internal/svgmap"
)

func renderCommand() *cli.Command {
	return &cli.Command{
		Name:  "render",
		Usage: "render the map of a UI state as a standalone SVG",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "out",
				Value: "-",
				Usage: "output file, - for stdout",
			},
			&cli.StringFlag{
				Name:  "lang",
				Usage: "catalog language (ua or en)",
			},
			&cli.StringFlag{
				Name:  "query",
				Usage: "search query to apply",
			},
			&cli.IntFlag{
				Name:  "category",
				Value: -1,
				Usage: "expanded category index",
			},
			&cli.StringSliceFlag{
				Name:  "group",
				Usage: "expanded group as index:name, repeatable",
			},
			&cli.StringFlag{
				Name:  "select",
				Usage: "selected service key, e.g. claude__0",
			},
		},
		Action: runRender,
	}
}

func runRender(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	lang := i18n.Parse(cfg.UI.Language)
	if raw := cmd.String("lang"); raw != "" {
		lang = i18n.Parse(raw)
	}
	palette, err := cfg.Palette()
	if err != nil {
		return err
	}

	store := dataset.NewStore(cfg.Server.DataDir)
	categories, err := store.Catalog(lang)
	if err != nil {
		return err
	}
	resources, err := store.Resources()
	if err != nil {
		return err
	}

	state := mindmap.NewState(lang)
	state.Query = cmd.String("query")
	if idx := cmd.Int("category"); idx >= 0 {
		state.ToggleCategory(idx)
	}
	for _, raw := range cmd.StringSlice("group") {
		idxStr, group, ok := strings.Cut(raw, ":")
		if !ok || group == "" {
			return fmt.Errorf("render: malformed --group %q, want index:name", raw)
		}
		idx, err := strconv.Atoi(idxStr)
		if err != nil || idx < 0 {
			return fmt.Errorf("render: malformed --group %q, want index:name", raw)
		}
		state.ToggleGroup(idx, group)
	}
	state.SelectedKey = cmd.String("select")

	scene := mindmap.NewBuilder(nil).Build(state.Params(categories, resources, palette))
	doc := svgmap.Render(scene, svgmap.Options{
		InlineStyle:     true,
		PlaceholderHref: svgmap.PlaceholderIconDataURI(),
	})

	out := cmd.String("out")
	if out == "" || out == "-" {
		_, err := os.Stdout.Write(doc)
		return err
	}
	return os.WriteFile(out, doc, 0o644)
}
