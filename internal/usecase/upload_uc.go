package usecase

import (
	"context"
	"io"
	"time"

	"smart-ocr-client/internal/domain"
	"smart-ocr-client/internal/domain/model"
	"smart-ocr-client/internal/domain/ports/adapter"
	"smart-ocr-client/internal/domain/ports/repository"
	"smart-ocr-client/internal/infra/logging"
	"smart-ocr-client/internal/infra/metrics"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Compile-time check
var _ UploadUseCase = (*uploadUC)(nil)

// UploadUseCase submits one document and seeds its job record.
type UploadUseCase interface {
	Submit(ctx context.Context, username, filename string, content io.Reader) (model.Job, error)
}

type uploadUC struct {
	backend adapter.ProcessingBackend
	jobs    repository.JobRepository
	log     *zerolog.Logger
}

func NewUploadUseCase(backend adapter.ProcessingBackend, jobs repository.JobRepository, logger *zerolog.Logger) *uploadUC {
	return &uploadUC{backend: backend, jobs: jobs, log: logger}
}

// Submit uploads the file, fetches the initial status so the record never
// starts blank, and prepends the new job to the collection. A rejected upload
// commits nothing. The initial status fetch is best-effort: the job already
// exists remotely at that point, so a failed fetch seeds QUEUED/0 and leaves
// the poller to catch up.
func (u *uploadUC) Submit(ctx context.Context, username, filename string, content io.Reader) (model.Job, error) {
	ctx = logging.WithTraceID(ctx, uuid.NewString())
	log := logging.With(ctx, u.log)
	defer logging.TraceDuration(log, "UploadUC.Submit")()

	if username == "" || filename == "" {
		return model.Job{}, domain.ErrInvalidArgument
	}

	jobID, err := u.backend.Upload(ctx, filename, content)
	if err != nil {
		metrics.IncUpload("rejected")
		return model.Job{}, err
	}

	job := model.Job{
		ID:        jobID,
		Filename:  filename,
		Status:    model.JobStatusQueued,
		Stage:     "queued",
		Progress:  0,
		CreatedAt: time.Now(),
	}
	if s, err := u.backend.Status(ctx, jobID); err != nil {
		log.Warn().Err(err).Str("job_id", jobID).Msg("initial status fetch failed; seeding queued")
	} else {
		job = job.Apply(s)
	}

	err = u.jobs.Update(ctx, username, func(jobs []model.Job) []model.Job {
		return append([]model.Job{job}, jobs...)
	})
	if err != nil {
		return model.Job{}, err
	}

	metrics.IncUpload("accepted")
	log.Info().Str("job_id", jobID).Str("filename", filename).Msg("job submitted")
	return job, nil
}
