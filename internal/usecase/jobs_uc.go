package usecase

import (
	"context"

	"smart-ocr-client/internal/domain/model"
	"smart-ocr-client/internal/domain/ports/repository"
	"smart-ocr-client/internal/infra/logging"

	"github.com/rs/zerolog"
)

// Compile-time check
var _ JobsUseCase = (*jobsUC)(nil)

// JobsUseCase is the read/clear surface over the per-user job collection.
type JobsUseCase interface {
	List(ctx context.Context, username string) ([]model.Job, error)
	Clear(ctx context.Context, username string) error
}

type jobsUC struct {
	jobs repository.JobRepository
	log  *zerolog.Logger
}

func NewJobsUseCase(jobs repository.JobRepository, logger *zerolog.Logger) *jobsUC {
	return &jobsUC{jobs: jobs, log: logger}
}

func (j *jobsUC) List(ctx context.Context, username string) ([]model.Job, error) {
	defer logging.TraceDuration(j.log, "JobsUC.List")()
	return j.jobs.Load(ctx, username)
}

func (j *jobsUC) Clear(ctx context.Context, username string) error {
	defer logging.TraceDuration(j.log, "JobsUC.Clear")()
	j.log.Info().Str("username", username).Msg("clearing job history")
	return j.jobs.Clear(ctx, username)
}
