package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/dklevakin/ai-map/internal/dataset"
	"github.com/dklevakin/ai-map/internal/i18n"
)

func validateCommand() *cli.Command {
	return &cli.Command{
		Name:   "validate",
		Usage:  "check the dataset files against their schemas",
		Action: runValidate,
	}
}

func runValidate(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	dir := cfg.Server.DataDir

	failed := false
	for _, lang := range []i18n.Lang{i18n.UA, i18n.EN} {
		path := filepath.Join(dir, string(lang)+".json")
		if err := validateFile(path, dataset.ValidateCatalog); err != nil {
			failed = true
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			continue
		}
		fmt.Fprintf(os.Stdout, "%s: ok\n", path)
	}

	resPath := filepath.Join(dir, dataset.ResourcesFile)
	switch err := validateFile(resPath, dataset.ValidateResources); {
	case os.IsNotExist(err):
		fmt.Fprintf(os.Stdout, "%s: absent (optional)\n", resPath)
	case err != nil:
		failed = true
		fmt.Fprintf(os.Stderr, "%s: %v\n", resPath, err)
	default:
		fmt.Fprintf(os.Stdout, "%s: ok\n", resPath)
	}

	if failed {
		return cli.Exit("dataset validation failed", 1)
	}
	return nil
}

func validateFile(path string, check func([]byte) error) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return check(raw)
}
