package web

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"smart-ocr-client/internal/usecase"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Server exposes a read-only local dashboard over the client's state: the
// active user's job collection, on-demand results, search, and metrics. It
// never mutates the job store.
type Server struct {
	sessionUC  usecase.SessionUseCase
	jobsUC     usecase.JobsUseCase
	resultUC   usecase.ResultUseCase
	searchUC   usecase.SearchUseCase
	downloadUC usecase.DownloadUseCase
	pageSize   int
	log        *zerolog.Logger

	server *http.Server
}

func NewServer(
	sessionUC usecase.SessionUseCase,
	jobsUC usecase.JobsUseCase,
	resultUC usecase.ResultUseCase,
	searchUC usecase.SearchUseCase,
	downloadUC usecase.DownloadUseCase,
	pageSize int,
	logger *zerolog.Logger,
) *Server {
	return &Server{
		sessionUC:  sessionUC,
		jobsUC:     jobsUC,
		resultUC:   resultUC,
		searchUC:   searchUC,
		downloadUC: downloadUC,
		pageSize:   pageSize,
		log:        logger,
	}
}

// Router assembles the dashboard routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/api/v1/jobs", s.jobsHandler)
	r.Get("/api/v1/jobs/{id}/result", s.resultHandler)
	r.Get("/api/v1/jobs/{id}/download", s.downloadHandler)
	r.Get("/api/v1/search", s.searchHandler)
	return r
}

// Start serves the dashboard on localhost only.
func (s *Server) Start(port int) error {
	s.server = &http.Server{
		Addr:              fmt.Sprintf("127.0.0.1:%d", port),
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	s.log.Info().Str("addr", s.server.Addr).Msg("dashboard listening")
	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}
