// Package server hosts the HTTP surface of the article SEO tool: session
// authentication, document processing, prompt management, history and image
// conversion endpoints.
package server

import (
	"context"
	stdliberrors "errors"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/shirleylv/article-seo-tool/pkg/auth"
	"github.com/shirleylv/article-seo-tool/pkg/config"
	"github.com/shirleylv/article-seo-tool/pkg/history"
	"github.com/shirleylv/article-seo-tool/pkg/imaging"
	"github.com/shirleylv/article-seo-tool/pkg/logging"
	"github.com/shirleylv/article-seo-tool/pkg/prompts"
	"github.com/shirleylv/article-seo-tool/pkg/seo"
	"github.com/shirleylv/article-seo-tool/pkg/session"
)

const sessionCookieName = "session_token"

// Server wires the application services behind a chi router.
type Server struct {
	cfg        *config.Config
	auth       *auth.Authenticator
	sessions   *session.Store
	orch       *seo.Orchestrator
	templates  *prompts.Store
	history    *history.Store
	images     *imaging.Converter
	logger     *logging.Logger
	httpServer *http.Server
}

// NewServer constructs a server from its dependencies.
func NewServer(cfg *config.Config, authn *auth.Authenticator, sessions *session.Store,
	orch *seo.Orchestrator, templates *prompts.Store, hist *history.Store,
	images *imaging.Converter, logger *logging.Logger) *Server {
	return &Server{
		cfg:       cfg,
		auth:      authn,
		sessions:  sessions,
		orch:      orch,
		templates: templates,
		history:   hist,
		images:    images,
		logger:    logger,
	}
}

// routes builds the router. Factored out of Start so tests can exercise the
// full middleware stack with httptest.
func (s *Server) routes() http.Handler {
	router := chi.NewRouter()
	router.Use(s.securityHeadersMiddleware)
	router.Use(s.accessMiddleware)

	router.Get("/", s.handleRoot)
	router.Get("/healthz", s.handleHealthz)
	router.Get("/metrics", s.handleMetrics)

	if s.cfg.Server.StaticDir != "" {
		fileServer := http.StripPrefix("/static/", http.FileServer(http.Dir(s.cfg.Server.StaticDir)))
		router.Get("/static/*", fileServer.ServeHTTP)
	}

	router.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", s.handleLogin)
			r.Post("/check", s.handleAuthCheck)
			r.Post("/logout", s.handleLogout)
		})
		r.Route("/seo", func(r chi.Router) {
			r.Post("/process", s.handleProcess)
			r.Post("/rate", s.handleRate)
		})
		r.Route("/prompt", func(r chi.Router) {
			r.Get("/get", s.handleGetPrompt)
			r.Post("/save", s.handleSavePrompt)
			r.Get("/reset", s.handleResetPrompt)
		})
		r.Route("/history", func(r chi.Router) {
			r.Get("/", s.handleHistory)
			r.Get("/download", s.handleHistoryDownload)
			r.Delete("/delete", s.handleHistoryDelete)
		})
		r.Route("/image", func(r chi.Router) {
			r.Post("/convert", s.handleImageConvert)
			r.Get("/download/{filename}", s.handleImageDownload)
			r.Get("/download-all", s.handleImageDownloadAll)
		})
	})

	return router
}

// Start serves until the context is canceled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:              s.cfg.Server.Bind,
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       2 * time.Minute,
		MaxHeaderBytes:    1 << 20,
	}

	serverErr := make(chan error, 1)
	go func() {
		s.logger.Info(logging.CategoryHTTP, "server_started", "listening",
			map[string]any{"bind": s.cfg.Server.Bind})
		if err := s.httpServer.ListenAndServe(); err != nil && !stdliberrors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	case err := <-serverErr:
		return err
	}
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, map[string]string{"status": "ok"})
}

// handleRoot serves the single-page UI: the static index.html when a static
// directory is configured, otherwise a minimal built-in page.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if s.cfg.Server.StaticDir != "" {
		index := filepath.Join(s.cfg.Server.StaticDir, "index.html")
		if _, err := os.Stat(index); err == nil {
			http.ServeFile(w, r, index)
			return
		}
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(indexPage))
}

const indexPage = `<!DOCTYPE html>
<html lang="zh-CN">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>文章SEO工具</title>
</head>
<body>
<h1>文章SEO工具</h1>
<p>API服务运行中。请通过 /api/auth/login 登录后使用。</p>
</body>
</html>
`
