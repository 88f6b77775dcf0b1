package usecase

import (
	"context"

	"smart-ocr-client/internal/domain"
	"smart-ocr-client/internal/domain/model"
	"smart-ocr-client/internal/domain/ports/adapter"
	"smart-ocr-client/internal/infra/logging"

	"github.com/rs/zerolog"
)

// Compile-time check
var _ ResultUseCase = (*resultUC)(nil)

// ResultUseCase fetches a completed job's output on demand. Results are never
// cached in the persisted store; every view re-fetches.
type ResultUseCase interface {
	Fetch(ctx context.Context, jobID string) (*model.DocumentResult, error)
}

type resultUC struct {
	backend adapter.ProcessingBackend
	log     *zerolog.Logger
}

func NewResultUseCase(backend adapter.ProcessingBackend, logger *zerolog.Logger) *resultUC {
	return &resultUC{backend: backend, log: logger}
}

func (r *resultUC) Fetch(ctx context.Context, jobID string) (*model.DocumentResult, error) {
	defer logging.TraceDuration(r.log, "ResultUC.Fetch")()

	if jobID == "" {
		return nil, domain.ErrInvalidArgument
	}
	return r.backend.Result(ctx, jobID)
}
