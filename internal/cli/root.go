// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package cli implements the agencyctl command tree. Commands resolve their
// configuration lazily so that argument errors, unknown commands and help
// never touch the environment or the CMS.
package cli

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"agencyweb/internal/cache"
	"agencyweb/internal/config"
	"agencyweb/internal/strapi"
)

// LoadFunc returns the configuration for a command run.
type LoadFunc func() (*config.Config, error)

// env is what a command needs once its arguments are valid.
type env struct {
	cfg *config.Config
	cms *strapi.Client
	log *slog.Logger
}

type runner struct {
	load LoadFunc
	log  *slog.Logger
}

// NewRootCommand builds the agencyctl command tree. load is called once per
// command run, after argument validation. A nil logger means slog.Default().
func NewRootCommand(load LoadFunc, logger *slog.Logger) *cobra.Command {
	if logger == nil {
		logger = slog.Default()
	}
	r := &runner{load: load, log: logger}

	root := &cobra.Command{
		Use:   "agencyctl",
		Short: "Administer blog content stored in the Strapi CMS",
		Long: `agencyctl inspects and maintains the articles and categories the agency
website reads from Strapi. It needs STRAPI_API_URL and STRAPI_API_TOKEN,
either in the environment or in a .env file in the working directory.`,
	}

	root.AddCommand(
		r.pendingCommand(),
		r.publishedCommand(),
		r.statsCommand(),
		r.approveCommand(),
		r.unpublishCommand(),
		r.categoriesCommand(),
		r.assignCommand(),
		r.seedCommand(),
	)
	return root
}

// withEnv wraps a command body: it loads configuration and builds the CMS
// client. Usage is only printed for argument errors, which cobra reports
// before RunE is reached.
func (r *runner) withEnv(fn func(cmd *cobra.Command, args []string, e *env) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		cfg, err := r.load()
		if err != nil {
			return err
		}

		var opts []strapi.Option
		opts = append(opts, strapi.WithLogger(r.log))
		if cfg.HTTPTimeout > 0 {
			opts = append(opts, strapi.WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}))
		}

		return fn(cmd, args, &env{
			cfg: cfg,
			cms: strapi.New(cfg.StrapiURL, cfg.StrapiToken, opts...),
			log: r.log,
		})
	}
}

// invalidateCache clears cached site content after a mutation so the blog
// API serves the change before the TTL runs out. Without Valkey it is a no-op.
func (e *env) invalidateCache(ctx context.Context) {
	if !e.cfg.CacheEnabled() {
		return
	}
	client, err := cache.ConnectValkey(e.cfg.ValkeyHost, e.cfg.ValkeyPort, e.cfg.ValkeyPassword)
	if err != nil {
		e.log.Warn("cache not invalidated", "error", err)
		return
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	cache.NewContentCache(client, e.cfg.CacheTTL).InvalidateAll(ctx)
}
