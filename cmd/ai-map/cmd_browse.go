package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/dklevakin/ai-map/internal/dataset"
	"github.com/dklevakin/ai-map/internal/i18n"
	"github.com/dklevakin/ai-map/internal/tui/browse"
)

func browseCommand() *cli.Command {
	return &cli.Command{
		Name:  "browse",
		Usage: "browse the catalog in the terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "lang",
				Usage: "catalog language (ua or en)",
			},
		},
		Action: runBrowse,
	}
}

func runBrowse(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	lang := i18n.Parse(cfg.UI.Language)
	if raw := cmd.String("lang"); raw != "" {
		lang = i18n.Parse(raw)
	}
	return browse.Run(dataset.NewStore(cfg.Server.DataDir), lang)
}
