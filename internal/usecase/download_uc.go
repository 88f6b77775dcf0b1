package usecase

import (
	"context"

	"smart-ocr-client/internal/domain"
	"smart-ocr-client/internal/domain/ports/adapter"
	"smart-ocr-client/internal/infra/logging"

	"github.com/rs/zerolog"
)

// Compile-time check
var _ DownloadUseCase = (*downloadUC)(nil)

// DownloadUseCase resolves short-lived artifact URLs. URLs are ephemeral:
// never persisted, never reused across sessions.
type DownloadUseCase interface {
	// ResolveURL returns the artifact URL, or domain.ErrUnavailable when the
	// backend has nothing to offer yet. Callers present a notice on failure
	// instead of navigating.
	ResolveURL(ctx context.Context, jobID string) (string, error)
}

type downloadUC struct {
	backend adapter.ProcessingBackend
	log     *zerolog.Logger
}

func NewDownloadUseCase(backend adapter.ProcessingBackend, logger *zerolog.Logger) *downloadUC {
	return &downloadUC{backend: backend, log: logger}
}

func (d *downloadUC) ResolveURL(ctx context.Context, jobID string) (string, error) {
	defer logging.TraceDuration(d.log, "DownloadUC.ResolveURL")()

	if jobID == "" {
		return "", domain.ErrInvalidArgument
	}
	url, err := d.backend.DownloadURL(ctx, jobID)
	if err != nil {
		d.log.Warn().Err(err).Str("job_id", jobID).Msg("download url unavailable")
		return "", err
	}
	return url, nil
}
