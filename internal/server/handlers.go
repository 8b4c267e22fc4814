package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog"
	apperrors "github.com/savaki/deltashare-deployer/internal/errors"
	"github.com/savaki/deltashare-deployer/internal/sharing"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"message": "delta sharing downloader is running",
	})
}

// handleMetadata accepts a raw .share profile as the request body and returns
// every visible table grouped by share and schema.
func (s *Server) handleMetadata(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	profile, err := sharing.ParseProfile(bytes.TrimSpace(body))
	if err != nil {
		if err == apperrors.ErrEmptyProfile {
			writeError(w, http.StatusBadRequest, "no config file provided")
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	metadata, err := s.dial(profile).ListMetadata(ctx)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("Metadata listing failed")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, metadata)
}

type downloadRequest struct {
	Config string `json:"config"`
	Share  string `json:"share"`
	Schema string `json:"schema"`
	Table  string `json:"table"`
}

// handleDownload queries the requested table and streams its rows as a CSV
// attachment. The CSV is staged in memory so a mid-conversion failure can
// still produce an error response instead of a truncated download.
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req downloadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Config == "" || req.Share == "" || req.Schema == "" || req.Table == "" {
		writeError(w, http.StatusBadRequest, "missing required parameters: config, share, schema, table")
		return
	}

	profile, err := sharing.ParseProfile([]byte(req.Config))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var buf bytes.Buffer
	if err := s.dial(profile).DownloadCSV(ctx, req.Share, req.Schema, req.Table, &buf); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).
			Str("share", req.Share).
			Str("schema", req.Schema).
			Str("table", req.Table).
			Msg("Download failed")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.csv", req.Table))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleWebInterface(w http.ResponseWriter, r *http.Request) {
	page, err := docroot.ReadFile("docroot/index.html")
	if err != nil {
		writeError(w, http.StatusInternalServerError, "web interface unavailable")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(page)
}
