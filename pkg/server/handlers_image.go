package server

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/shirleylv/article-seo-tool/pkg/errors"
	"github.com/shirleylv/article-seo-tool/pkg/imaging"
	"github.com/shirleylv/article-seo-tool/pkg/logging"
)

// handleImageConvert converts a batch of uploaded WebP files to PNG.
func (s *Server) handleImageConvert(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respondError(w, http.StatusBadRequest,
			apperrors.Wrap(err, apperrors.ErrCodeInvalidInput, "invalid multipart upload"))
		return
	}
	if r.MultipartForm == nil || len(r.MultipartForm.File["files"]) == 0 {
		respondError(w, http.StatusBadRequest,
			apperrors.New(apperrors.ErrCodeInvalidInput, "missing files field"))
		return
	}

	var inputs []imaging.Input
	for _, header := range r.MultipartForm.File["files"] {
		f, err := header.Open()
		if err != nil {
			respondError(w, http.StatusBadRequest,
				apperrors.Wrap(err, apperrors.ErrCodeInvalidInput, "reading upload"))
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			respondError(w, http.StatusBadRequest,
				apperrors.Wrap(err, apperrors.ErrCodeInvalidInput, "reading upload"))
			return
		}
		inputs = append(inputs, imaging.Input{Name: header.Filename, Data: data})
	}

	converted, err := s.images.ConvertBatch(r.Context(), inputs)
	if err != nil {
		respondError(w, statusForError(err), err)
		return
	}
	metricImageConversions.Add(float64(len(converted)))
	s.logger.Info(logging.CategoryImage, "batch_converted", "images converted",
		map[string]any{"requested": len(inputs), "converted": len(converted)})
	respondJSON(w, map[string]any{"files": converted})
}

// handleImageDownload serves one converted PNG. The optional original_name
// query parameter restores the uploader's filename for the download.
func (s *Server) handleImageDownload(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")
	path, err := s.images.FilePath(filename)
	if err != nil {
		respondError(w, statusForError(err), err)
		return
	}

	downloadName := filename
	if original := r.URL.Query().Get("original_name"); original != "" {
		base := strings.TrimSuffix(filepath.Base(original), filepath.Ext(original))
		downloadName = base + ".png"
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", downloadName))
	http.ServeFile(w, r, path)
}

// handleImageDownloadAll serves every converted PNG as one zip archive. The
// archive is buffered so a mid-write failure can still produce a clean error
// response.
func (s *Server) handleImageDownloadAll(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := s.images.WriteArchive(&buf); err != nil {
		respondError(w, statusForError(err), err)
		return
	}
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", `attachment; filename="converted_images.zip"`)
	_, _ = w.Write(buf.Bytes())
}
