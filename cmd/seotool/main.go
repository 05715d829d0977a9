// Command seotool serves the article SEO helper: session-authenticated
// document processing, AI metadata generation with provider fallback, prompt
// management, history and WebP conversion.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/shirleylv/article-seo-tool/pkg/auth"
	"github.com/shirleylv/article-seo-tool/pkg/config"
	"github.com/shirleylv/article-seo-tool/pkg/history"
	"github.com/shirleylv/article-seo-tool/pkg/imaging"
	"github.com/shirleylv/article-seo-tool/pkg/logging"
	"github.com/shirleylv/article-seo-tool/pkg/prompts"
	"github.com/shirleylv/article-seo-tool/pkg/seo"
	"github.com/shirleylv/article-seo-tool/pkg/server"
	"github.com/shirleylv/article-seo-tool/pkg/session"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "seotool: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("seotool", flag.ContinueOnError)
	configPath := fs.String("config", "", "path to a yaml config file (optional)")
	bind := fs.String("bind", "", "address to bind the HTTP server (overrides config)")
	staticDir := fs.String("static", "", "path to frontend assets (overrides config)")
	publicMetrics := fs.Bool("public-metrics", false, "expose /metrics without authentication")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if strings.TrimSpace(*bind) != "" {
		cfg.Server.Bind = strings.TrimSpace(*bind)
	}
	if strings.TrimSpace(*staticDir) != "" {
		cfg.Server.StaticDir = strings.TrimSpace(*staticDir)
	}
	if *publicMetrics {
		cfg.Server.PublicMetrics = true
	}

	logger, err := logging.NewLogger(cfg.Logging.Dir)
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer logger.Close()
	if level := strings.TrimSpace(cfg.Logging.Level); level != "" {
		logger.SetMinLevel(logging.Level(level))
	}

	sessions := session.NewStore(cfg.Session.TTL())
	authn := auth.New(cfg.Auth.Username, cfg.Auth.Password, sessions)
	templates := prompts.NewStore()
	orch := seo.NewOrchestrator(cfg, templates, logger)

	hist, err := history.NewStore(cfg.History.Path, cfg.History.RatingsPath)
	if err != nil {
		return fmt.Errorf("initializing history store: %w", err)
	}
	images, err := imaging.NewConverter(cfg.Uploads.OutputDir, cfg.Uploads.MaxWebPFiles, logger)
	if err != nil {
		return fmt.Errorf("initializing image converter: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	srv := server.NewServer(cfg, authn, sessions, orch, templates, hist, images, logger)
	return srv.Start(ctx)
}
