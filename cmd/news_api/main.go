package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/velosh/paddockwire/internal/aggregator"
	"github.com/velosh/paddockwire/internal/config"
	"github.com/velosh/paddockwire/internal/feed"
	"github.com/velosh/paddockwire/internal/ratelimit"
	"github.com/velosh/paddockwire/internal/router"
	"github.com/velosh/paddockwire/internal/server"
	pkgserver "github.com/velosh/paddockwire/pkg/server"
)

// sourceFetchTimeout bounds each upstream feed request separately from the
// pipeline budget, so one hung feed cannot eat the whole request window.
const sourceFetchTimeout = 8 * time.Second

func main() {
	cfg, err := server.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	sources, err := config.LoadSources(cfg.SourcesPath)
	if err != nil {
		slog.Error("Failed to load sources", "error", err)
		os.Exit(1)
	}

	s := server.NewServer(cfg)
	pkgserver.BindHealthRoute(s.Echo, "/api/health", pkgserver.NewOkHealthChecker())

	agg := aggregator.New(sources, feed.NewFetcher(sourceFetchTimeout))
	limiter := ratelimit.NewFixedWindow(cfg.RateLimitMax, time.Minute)

	newsRouter := router.NewNewsRouter(s.Echo, agg, limiter)
	newsRouter.Bind()

	slog.Info("Starting news API", "port", cfg.Port, "sources", len(sources))

	err = s.Start()
	if err != nil {
		s.Echo.Logger.Error("Failed to start server: ", err)
		os.Exit(1)
	}
}
