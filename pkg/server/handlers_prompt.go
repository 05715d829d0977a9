package server

import (
	"encoding/json"
	"net/http"

	apperrors "github.com/shirleylv/article-seo-tool/pkg/errors"
	"github.com/shirleylv/article-seo-tool/pkg/logging"
	"github.com/shirleylv/article-seo-tool/pkg/prompts"
)

// handleGetPrompt returns the effective template for a provider.
func (s *Server) handleGetPrompt(w http.ResponseWriter, r *http.Request) {
	model := r.URL.Query().Get("model")
	if !prompts.IsKnown(model) {
		respondError(w, http.StatusBadRequest,
			apperrors.New(apperrors.ErrCodeInvalidInput, "无效的模型名称"))
		return
	}
	respondJSON(w, map[string]string{"prompt": s.templates.Get(model)})
}

type savePromptRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

// handleSavePrompt replaces the runtime template for a provider.
func (s *Server) handleSavePrompt(w http.ResponseWriter, r *http.Request) {
	var req savePromptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest,
			apperrors.Wrap(err, apperrors.ErrCodeInvalidInput, "invalid prompt payload"))
		return
	}
	if err := s.templates.Save(req.Model, req.Prompt); err != nil {
		respondError(w, http.StatusBadRequest,
			apperrors.Wrap(err, apperrors.ErrCodeInvalidInput, err.Error()))
		return
	}
	s.logger.Info(logging.CategoryPrompt, "prompt_saved", "template updated",
		map[string]any{"model": req.Model})
	respondJSON(w, map[string]string{"message": "提示词已保存", "model": req.Model})
}

// handleResetPrompt restores the default template for a provider.
func (s *Server) handleResetPrompt(w http.ResponseWriter, r *http.Request) {
	model := r.URL.Query().Get("model")
	prompt, err := s.templates.Reset(model)
	if err != nil {
		respondError(w, http.StatusBadRequest,
			apperrors.Wrap(err, apperrors.ErrCodeInvalidInput, err.Error()))
		return
	}
	s.logger.Info(logging.CategoryPrompt, "prompt_reset", "template restored",
		map[string]any{"model": model})
	respondJSON(w, map[string]string{"message": "提示词已重置", "prompt": prompt})
}
