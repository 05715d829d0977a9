package server

import (
	"net/http"

	"github.com/shirleylv/article-seo-tool/pkg/logging"
)

// handleHistory returns all generation records.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	records, err := s.history.List()
	if err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}
	type row struct {
		ID         string `json:"id"`
		Time       string `json:"time"`
		Title      string `json:"title"`
		Summary    string `json:"summary"`
		Keywords   string `json:"keywords"`
		Slug       string `json:"slug"`
		SourceFile string `json:"source_file"`
		Model      string `json:"model"`
	}
	rows := make([]row, 0, len(records))
	for _, rec := range records {
		rows = append(rows, row{
			ID:         rec.ID,
			Time:       rec.Time.Format("2006-01-02 15:04:05"),
			Title:      rec.Title,
			Summary:    rec.Summary,
			Keywords:   rec.Keywords,
			Slug:       rec.Slug,
			SourceFile: rec.SourceFile,
			Model:      rec.Model,
		})
	}
	respondJSON(w, rows)
}

// handleHistoryDownload serves the raw history CSV for download.
func (s *Server) handleHistoryDownload(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="seo_history.csv"`)
	http.ServeFile(w, r, s.history.Path())
}

// handleHistoryDelete discards all history records.
func (s *Server) handleHistoryDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.history.Reset(); err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}
	s.logger.Info(logging.CategoryHistory, "history_reset", "records cleared", nil)
	respondJSON(w, map[string]string{"message": "历史记录已删除"})
}
