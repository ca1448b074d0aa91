// Package main is the entry point for the blog content API.
// It loads configuration, connects to the CMS and the optional cache, sets
// up routing, and starts the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"agencyweb/internal/cache"
	"agencyweb/internal/config"
	"agencyweb/internal/handlers"
	"agencyweb/internal/merge"
	"agencyweb/internal/middleware"
	"agencyweb/internal/router"
	"agencyweb/internal/strapi"
)

func main() {
	level := new(slog.LevelVar)
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	// Load configuration from environment variables and .env.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	level.Set(cfg.SlogLevel())

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"strapi", cfg.StrapiURL,
	)

	// The API answers the front-end, so CMS calls always get a deadline.
	timeout := cfg.HTTPTimeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	cms := strapi.New(cfg.StrapiURL, cfg.StrapiToken,
		strapi.WithHTTPClient(&http.Client{Timeout: timeout}),
		strapi.WithLogger(logger),
		strapi.WithRequestID(middleware.RequestID),
	)
	merger := merge.New(cms, logger)

	// Connect to Valkey (optional, the API works uncached without it).
	var contentCache handlers.Cache
	if cfg.CacheEnabled() {
		valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
		if err != nil {
			slog.Error("failed to connect to valkey", "error", err)
			os.Exit(1)
		}
		defer valkeyClient.Close()
		contentCache = cache.NewContentCache(valkeyClient, cfg.CacheTTL)
		slog.Info("content cache enabled", "ttl", cfg.CacheTTL.String())
	} else {
		slog.Warn("valkey not configured, serving uncached")
	}

	var limiter *middleware.RateLimiter
	if cfg.RateLimit > 0 {
		limiter = middleware.NewRateLimiter(cfg.RateLimit, time.Minute)
		defer limiter.Stop()
	}

	content := handlers.NewContent(merger, cms, contentCache)
	r := router.New(content, limiter)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: timeout + 10*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
