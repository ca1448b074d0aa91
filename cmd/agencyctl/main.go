// Package main is the entry point for agencyctl, the operator CLI that
// reviews, categorizes and seeds blog content in the Strapi CMS.
package main

import (
	"log/slog"
	"os"

	"agencyweb/internal/cli"
	"agencyweb/internal/config"
)

func main() {
	// Diagnostics go to stderr so command output on stdout stays clean.
	level := new(slog.LevelVar)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	load := func() (*config.Config, error) {
		cfg, err := config.Load()
		if err != nil {
			return nil, err
		}
		level.Set(cfg.SlogLevel())
		return cfg, nil
	}

	if err := cli.NewRootCommand(load, logger).Execute(); err != nil {
		os.Exit(1)
	}
}
