package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"smart-ocr-client/internal/domain"
	"smart-ocr-client/internal/domain/model"
	"smart-ocr-client/internal/usecase"

	"github.com/go-chi/chi/v5"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// jobsHandler returns the active user's job collection, newest first.
func (s *Server) jobsHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := s.sessionUC.Current(ctx)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "no active session")
		return
	}
	jobs, err := s.jobsUC.List(ctx, user.Username)
	if err != nil {
		s.log.Error().Err(err).Msg("list jobs failed")
		writeError(w, http.StatusInternalServerError, "failed to load jobs")
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Username string      `json:"username"`
		Jobs     []model.Job `json:"jobs"`
	}{Username: user.Username, Jobs: jobs})
}

// resultHandler fetches one completed job's output on demand.
func (s *Server) resultHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	jobID := chi.URLParam(r, "id")

	res, err := s.resultUC.Fetch(ctx, jobID)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "unknown job")
		return
	case errors.Is(err, domain.ErrNotReady):
		writeError(w, http.StatusConflict, "result not ready")
		return
	case err != nil:
		s.log.Error().Err(err).Str("job_id", jobID).Msg("result fetch failed")
		writeError(w, http.StatusBadGateway, "result fetch failed")
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Text        string         `json:"text"`
		Entities    []model.Entity `json:"entities,omitempty"`
		RawEntities string         `json:"raw_entities,omitempty"`
		Tags        []string       `json:"tags,omitempty"`
		RawTags     string         `json:"raw_tags,omitempty"`
	}{
		Text:        res.Text,
		Entities:    res.Entities,
		RawEntities: res.RawEntities,
		Tags:        res.Tags,
		RawTags:     res.RawTags,
	})
}

// downloadHandler resolves the short-lived artifact URL without redirecting;
// the caller decides whether to follow it.
func (s *Server) downloadHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	jobID := chi.URLParam(r, "id")

	url, err := s.downloadUC.ResolveURL(ctx, jobID)
	if err != nil {
		writeError(w, http.StatusNotFound, "download not available yet")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}

// searchHandler runs a best-effort search and paginates client-side.
// Query params: q (query string), page (1-based, clamped).
func (s *Server) searchHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query().Get("q")

	items := s.searchUC.Search(ctx, q)
	pages := usecase.NewPages(items, s.pageSize)
	if n, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil {
		pages.Goto(n)
	}

	writeJSON(w, http.StatusOK, struct {
		Results    []model.SearchResultItem `json:"results"`
		Page       int                      `json:"page"`
		TotalPages int                      `json:"total_pages"`
		Total      int                      `json:"total"`
	}{
		Results:    pages.Page(),
		Page:       pages.PageNum(),
		TotalPages: pages.TotalPages(),
		Total:      len(items),
	})
}
