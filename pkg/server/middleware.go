package server

import (
	"net/http"
	"strings"

	apperrors "github.com/shirleylv/article-seo-tool/pkg/errors"
	"github.com/shirleylv/article-seo-tool/pkg/logging"
)

// publicPrefixes lists path prefixes that never require a session. The bare
// "/" entry is matched exactly, not as a prefix.
var publicPrefixes = []string{
	"/api/auth/login",
	"/api/auth/check",
	"/static/",
	"/favicon.ico",
	"/healthz",
}

// securityHeadersMiddleware adds standard security headers to responses.
func (s *Server) securityHeadersMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		headers := w.Header()
		headers.Set("X-Content-Type-Options", "nosniff")
		headers.Set("X-Frame-Options", "DENY")
		headers.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}

// accessMiddleware gates every request on a valid session. API requests
// without one get a 401 before their handler runs; page requests pass
// through so the browser can render the login screen client-side.
func (s *Server) accessMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := s.normalizePath(r.URL.Path)
		if s.isPublicPath(path) {
			next.ServeHTTP(w, r)
			return
		}

		if s.sessions.Validate(sessionToken(r)) {
			next.ServeHTTP(w, r)
			return
		}

		if strings.HasPrefix(path, "/api/") {
			s.logger.Debug(logging.CategoryHTTP, "request_rejected", "missing or expired session",
				map[string]any{"path": path})
			respondError(w, http.StatusUnauthorized,
				apperrors.New(apperrors.ErrCodeUnauthenticated, "未授权，请先登录"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// normalizePath strips the configured root path prefix so the allow-list
// works under subpath deployments behind a reverse proxy.
func (s *Server) normalizePath(path string) string {
	root := s.cfg.Server.RootPath
	if root == "" || !strings.HasPrefix(path, root) {
		return path
	}
	path = strings.TrimPrefix(path, root)
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return path
}

func (s *Server) isPublicPath(path string) bool {
	if path == "/" {
		return true
	}
	if path == "/metrics" {
		return s.cfg.Server.PublicMetrics
	}
	for _, prefix := range publicPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
