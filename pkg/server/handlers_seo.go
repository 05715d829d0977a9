package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/shirleylv/article-seo-tool/pkg/document"
	apperrors "github.com/shirleylv/article-seo-tool/pkg/errors"
	"github.com/shirleylv/article-seo-tool/pkg/history"
	"github.com/shirleylv/article-seo-tool/pkg/logging"
	"github.com/shirleylv/article-seo-tool/pkg/seo"
)

const maxUploadBytes = 20 << 20

// providerDisplayNames maps provider ids to the labels shown in results and
// history records.
var providerDisplayNames = map[string]string{
	"doubao":             "豆包",
	"deepseek":           "DeepSeek",
	"qwen":               "通义千问",
	seo.FallbackProvider: "本地生成",
}

func displayName(provider string) string {
	if name, ok := providerDisplayNames[provider]; ok {
		return name
	}
	return provider
}

type processResponse struct {
	Title    string `json:"title"`
	Summary  string `json:"summary"`
	Keywords string `json:"keywords"`
	Slug     string `json:"slug"`
	Model    string `json:"model"`
}

// handleProcess accepts a Word document upload, extracts its text and runs
// the generation chain. Every successful generation is appended to history.
func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respondError(w, http.StatusBadRequest,
			apperrors.Wrap(err, apperrors.ErrCodeInvalidInput, "invalid multipart upload"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest,
			apperrors.Wrap(err, apperrors.ErrCodeInvalidInput, "missing file field"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respondError(w, http.StatusBadRequest,
			apperrors.Wrap(err, apperrors.ErrCodeInvalidInput, "reading upload"))
		return
	}

	doc, err := document.Extract(data)
	if err != nil {
		respondError(w, statusForError(err), err)
		return
	}

	provider := strings.TrimSpace(r.FormValue("provider"))
	s.logger.Info(logging.CategoryGenerate, "process_request", "document received",
		map[string]any{
			"file":     header.Filename,
			"provider": provider,
			"title":    doc.Title,
		})

	gen := s.orch.GenerateSEO(r.Context(), doc.Title, doc.Content, provider)
	metricGenerations.WithLabelValues(gen.Provider).Inc()

	model := displayName(gen.Provider)
	if _, err := s.history.Append(history.Record{
		Title:      doc.Title,
		Summary:    gen.Summary,
		Keywords:   gen.Keywords,
		Slug:       gen.Slug,
		SourceFile: header.Filename,
		Model:      model,
	}); err != nil {
		s.logger.Error(logging.CategoryHistory, "append_failed", err.Error(), nil)
	}

	respondJSON(w, processResponse{
		Title:    doc.Title,
		Summary:  gen.Summary,
		Keywords: gen.Keywords,
		Slug:     gen.Slug,
		Model:    model,
	})
}

type rateRequest struct {
	Provider string `json:"provider"`
	Title    string `json:"title"`
	Summary  string `json:"summary"`
	Keywords string `json:"keywords"`
	Slug     string `json:"slug"`
	Rating   int    `json:"rating"`
}

// handleRate records a 1-5 score for a generation result.
func (s *Server) handleRate(w http.ResponseWriter, r *http.Request) {
	var req rateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest,
			apperrors.Wrap(err, apperrors.ErrCodeInvalidInput, "invalid rating payload"))
		return
	}
	if req.Provider == "" || req.Title == "" {
		respondError(w, http.StatusBadRequest,
			apperrors.New(apperrors.ErrCodeInvalidInput, "provider and title are required"))
		return
	}

	rating, err := s.history.AddRating(history.Rating{
		Provider: req.Provider,
		Title:    req.Title,
		Summary:  req.Summary,
		Keywords: req.Keywords,
		Slug:     req.Slug,
		Score:    req.Rating,
	})
	if err != nil {
		respondError(w, statusForError(err), err)
		return
	}

	s.logger.Info(logging.CategoryHistory, "rating_recorded", "result rated",
		map[string]any{"provider": req.Provider, "rating": rating.Score})
	respondJSON(w, map[string]any{
		"message": "评分已记录，将用于改进模型生成效果",
		"rating":  rating.Score,
	})
}
