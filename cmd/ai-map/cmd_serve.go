package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/dklevakin/ai-map/internal/dataset"
	"github.com/dklevakin/ai-map/internal/server"
)

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "serve the map and list pages over HTTP",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "addr",
				Usage: "listen address (overrides config)",
			},
			&cli.BoolFlag{
				Name:  "no-watch",
				Usage: "disable dataset file watching",
			},
			&cli.BoolFlag{
				Name:  "profiling",
				Usage: "expose /debug/fgprof",
			},
		},
		Action: runServe,
	}
}

func runServe(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if addr := cmd.String("addr"); addr != "" {
		cfg.Server.Addr = addr
	}
	if cmd.Bool("no-watch") {
		off := false
		cfg.Server.Watch = &off
	}
	if cmd.Bool("profiling") {
		cfg.Server.Profiling = true
	}

	srv, err := server.New(cfg, dataset.NewStore(cfg.Server.DataDir))
	if err != nil {
		return err
	}
	runCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return srv.Run(runCtx)
}
