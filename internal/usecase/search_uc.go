package usecase

import (
	"context"

	"smart-ocr-client/internal/domain/model"
	"smart-ocr-client/internal/domain/ports/adapter"
	"smart-ocr-client/internal/infra/logging"
	"smart-ocr-client/internal/infra/metrics"

	"github.com/rs/zerolog"
)

// Compile-time check
var _ SearchUseCase = (*searchUC)(nil)

// SearchUseCase queries previously processed documents. Search is
// best-effort: any failure yields an empty result set, never an error.
type SearchUseCase interface {
	Search(ctx context.Context, query string) []model.SearchResultItem
}

type searchUC struct {
	backend adapter.ProcessingBackend
	log     *zerolog.Logger
}

func NewSearchUseCase(backend adapter.ProcessingBackend, logger *zerolog.Logger) *searchUC {
	return &searchUC{backend: backend, log: logger}
}

func (s *searchUC) Search(ctx context.Context, query string) []model.SearchResultItem {
	defer logging.TraceDuration(s.log, "SearchUC.Search")()

	items, err := s.backend.Search(ctx, query)
	if err != nil {
		metrics.IncSearch("failed")
		s.log.Warn().Err(err).Str("query", query).Msg("search failed; returning empty result set")
		return []model.SearchResultItem{}
	}
	metrics.IncSearch("ok")
	if items == nil {
		return []model.SearchResultItem{}
	}
	return items
}
