// ai-map serves, renders, and browses the AI Compass service catalog.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/dklevakin/ai-map/internal/config"
	"github.com/dklevakin/ai-map/internal/logging"
)

var version = "dev"

func main() {
	mode := logging.ModeCLI
	for _, arg := range os.Args[1:] {
		if arg == "serve" {
			mode = logging.ModeServe
			break
		}
	}
	closeLogger, err := logging.Init(logging.Options{
		App:     "ai-map",
		Version: version,
		Mode:    mode,
	})
	if err != nil {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError})))
		slog.Error("init logging failed; using stderr fallback", "err", err)
	} else if closeLogger != nil {
		defer func() { _ = closeLogger() }()
	}

	app := buildApp()
	if err := app.Run(context.Background(), os.Args); err != nil {
		if exitErr, ok := err.(cli.ExitCoder); ok {
			os.Exit(exitErr.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "ai-map: %v\n", err)
		os.Exit(1)
	}
}

func buildApp() *cli.Command {
	return &cli.Command{
		Name:    "ai-map",
		Usage:   "bilingual map of AI services",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "path to config.toml",
			},
			&cli.StringFlag{
				Name:  "data",
				Usage: "dataset directory (overrides config)",
			},
		},
		Commands: []*cli.Command{
			serveCommand(),
			renderCommand(),
			browseCommand(),
			validateCommand(),
		},
	}
}

// loadConfig resolves the effective config for a command, applying the
// global flag overrides on top of the file.
func loadConfig(cmd *cli.Command) (config.Config, error) {
	path := cmd.String("config")
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			return config.Defaults(), err
		}
	}
	cfg, err := config.NewLoader(path).Load()
	if err != nil {
		return config.Defaults(), err
	}
	if dir := cmd.String("data"); dir != "" {
		cfg.Server.DataDir = dir
	}
	return cfg, nil
}
