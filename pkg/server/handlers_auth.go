package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	apperrors "github.com/shirleylv/article-seo-tool/pkg/errors"
	"github.com/shirleylv/article-seo-tool/pkg/logging"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// handleLogin validates credentials and issues a session cookie. Both form
// posts and JSON bodies are accepted.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest,
				apperrors.Wrap(err, apperrors.ErrCodeInvalidInput, "invalid login payload"))
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			respondError(w, http.StatusBadRequest,
				apperrors.Wrap(err, apperrors.ErrCodeInvalidInput, "invalid login form"))
			return
		}
		req.Username = r.FormValue("username")
		req.Password = r.FormValue("password")
	}

	token, err := s.auth.Login(req.Username, req.Password)
	if err != nil {
		metricLoginFailures.Inc()
		s.logger.Warn(logging.CategoryAuth, "login_failed", "invalid credentials",
			map[string]any{"username": req.Username})
		respondError(w, http.StatusUnauthorized, err)
		return
	}

	s.setSessionCookie(w, r, token)
	s.refreshSessionGauge()
	s.logger.Info(logging.CategoryAuth, "login_success", "session issued",
		map[string]any{"username": req.Username})
	respondJSON(w, map[string]bool{"authenticated": true})
}

// handleAuthCheck reports whether the request carries a valid session.
func (s *Server) handleAuthCheck(w http.ResponseWriter, r *http.Request) {
	authenticated := s.auth.Check(sessionToken(r))
	respondJSON(w, map[string]bool{"authenticated": authenticated})
}

// handleLogout revokes the session and clears the cookie.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.auth.Logout(sessionToken(r))
	s.clearSessionCookie(w, r)
	s.refreshSessionGauge()
	s.logger.Info(logging.CategoryAuth, "logout", "session revoked", nil)
	respondJSON(w, map[string]bool{"authenticated": false})
}

func (s *Server) setSessionCookie(w http.ResponseWriter, r *http.Request, token string) {
	ttl := s.cfg.Session.TTL()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		HttpOnly: true,
		Secure:   isRequestSecure(r),
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
		Expires:  time.Now().Add(ttl),
		MaxAge:   int(ttl.Seconds()),
	})
}

func (s *Server) clearSessionCookie(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   isRequestSecure(r),
		SameSite: http.SameSiteLaxMode,
	})
}
