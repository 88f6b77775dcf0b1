package usecase

import (
	"context"
	"sync"
	"time"

	"smart-ocr-client/internal/domain/model"
	"smart-ocr-client/internal/domain/ports/adapter"
	"smart-ocr-client/internal/domain/ports/repository"
	"smart-ocr-client/internal/infra/logging"
	"smart-ocr-client/internal/infra/metrics"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Compile-time check
var _ SyncUseCase = (*syncUC)(nil)

// SyncUseCase reconciles local job records with authoritative remote state.
type SyncUseCase interface {
	// Reconcile runs one synchronization pass for the user.
	Reconcile(ctx context.Context, username string) error
}

type syncUC struct {
	backend     adapter.ProcessingBackend
	jobs        repository.JobRepository
	concurrency int
	log         *zerolog.Logger
}

func NewSyncUseCase(backend adapter.ProcessingBackend, jobs repository.JobRepository, logger *zerolog.Logger) *syncUC {
	return &syncUC{backend: backend, jobs: jobs, concurrency: 8, log: logger}
}

// Reconcile snapshots the collection, queries status for every non-terminal
// job concurrently, and commits an id-keyed merge of the responses.
//
// The merge runs inside JobRepository.Update as a transformation of the
// LATEST collection, never as an overwrite with the snapshot taken at the top
// of the pass, so a job inserted while requests were in flight survives the
// tick. A failed status request simply leaves its job untouched until the
// next pass; terminal jobs issue no request and are never mutated.
func (s *syncUC) Reconcile(ctx context.Context, username string) error {
	ctx = logging.WithTraceID(ctx, uuid.NewString())
	log := logging.With(ctx, s.log)
	start := time.Now()

	snapshot, err := s.jobs.Load(ctx, username)
	if err != nil {
		return err
	}

	var pending []model.Job
	for _, j := range snapshot {
		if !j.Status.Terminal() {
			pending = append(pending, j)
		}
	}
	metrics.IncSyncTick()
	if len(pending) == 0 {
		return nil
	}

	var (
		mu      sync.Mutex
		updates = make(map[string]model.StatusUpdate, len(pending))
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for _, j := range pending {
		job := j
		g.Go(func() error {
			u, err := s.backend.Status(gctx, job.ID)
			if err != nil {
				// Soft failure: retried automatically on the next tick.
				metrics.IncSyncStatusFailure()
				log.Debug().Err(err).Str("job_id", job.ID).Msg("status request failed; keeping prior state")
				return nil
			}
			mu.Lock()
			updates[job.ID] = u
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	// A stopped scheduler cancels this context; discard the responses rather
	// than writing into a store the caller has already walked away from.
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if len(updates) == 0 {
		metrics.ObserveSyncTick(time.Since(start).Milliseconds())
		return nil
	}

	err = s.jobs.Update(ctx, username, func(latest []model.Job) []model.Job {
		for i, j := range latest {
			u, ok := updates[j.ID]
			if !ok {
				continue
			}
			merged := j.Apply(u)
			if merged.Status != j.Status && merged.Status.Terminal() {
				metrics.IncJobReconciled(string(merged.Status))
			}
			latest[i] = merged
		}
		return latest
	})
	if err != nil {
		return err
	}

	metrics.ObserveSyncTick(time.Since(start).Milliseconds())
	log.Debug().Int("polled", len(pending)).Int("merged", len(updates)).Msg("reconciliation pass complete")
	return nil
}
