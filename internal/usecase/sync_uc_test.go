//go:build !integration

package usecase_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"smart-ocr-client/internal/domain/model"
	"smart-ocr-client/internal/usecase"
)

func TestSyncUseCase_Reconcile(t *testing.T) {
	ctx := context.Background()
	testLogger := newTestLogger()
	const user = "alice"

	t.Run("merges remote status by id and preserves filename", func(t *testing.T) {
		mockBackend := NewMockBackend()
		mockJobs := NewMockJobRepo()
		mockJobs.Seed(user, model.Job{ID: "abc123", Filename: "invoice.pdf", Status: model.JobStatusQueued, Stage: "queued"})
		mockBackend.Statuses["abc123"] = model.StatusUpdate{Status: model.JobStatusProcessing, Stage: "ocr", Progress: 40}

		uc := usecase.NewSyncUseCase(mockBackend, mockJobs, testLogger)
		if err := uc.Reconcile(ctx, user); err != nil {
			t.Fatalf("Reconcile failed: %v", err)
		}

		jobs, _ := mockJobs.Load(ctx, user)
		if len(jobs) != 1 {
			t.Fatalf("expected 1 job, got %d", len(jobs))
		}
		j := jobs[0]
		if j.Status != model.JobStatusProcessing || j.Stage != "ocr" || j.Progress != 40 {
			t.Errorf("status not merged: %+v", j)
		}
		if j.ID != "abc123" || j.Filename != "invoice.pdf" {
			t.Errorf("identity fields changed: %+v", j)
		}
	})

	t.Run("issues no request for terminal jobs and never mutates them", func(t *testing.T) {
		mockBackend := NewMockBackend()
		mockJobs := NewMockJobRepo()
		done := model.Job{ID: "done-1", Filename: "a.pdf", Status: model.JobStatusCompleted, Stage: "done", Progress: 100}
		failed := model.Job{ID: "fail-1", Filename: "b.pdf", Status: model.JobStatusFailed, Stage: "error", Progress: 70}
		mockJobs.Seed(user, done, failed)

		uc := usecase.NewSyncUseCase(mockBackend, mockJobs, testLogger)
		if err := uc.Reconcile(ctx, user); err != nil {
			t.Fatalf("Reconcile failed: %v", err)
		}

		if n := len(mockBackend.StatusCalls); n != 0 {
			t.Errorf("expected no status requests, got %d (%v)", n, mockBackend.StatusCalls)
		}
		jobs, _ := mockJobs.Load(ctx, user)
		if !reflect.DeepEqual(jobs, []model.Job{done, failed}) {
			t.Errorf("terminal jobs changed: %+v", jobs)
		}
	})

	t.Run("failed status request leaves the job untouched", func(t *testing.T) {
		mockBackend := NewMockBackend()
		mockJobs := NewMockJobRepo()
		before := model.Job{ID: "abc123", Filename: "invoice.pdf", Status: model.JobStatusProcessing, Stage: "ocr", Progress: 40}
		other := model.Job{ID: "xyz789", Filename: "receipt.png", Status: model.JobStatusQueued, Stage: "queued"}
		mockJobs.Seed(user, before, other)
		mockBackend.StatusErrs["abc123"] = errors.New("connection reset")
		mockBackend.Statuses["xyz789"] = model.StatusUpdate{Status: model.JobStatusProcessing, Stage: "ocr", Progress: 10}

		uc := usecase.NewSyncUseCase(mockBackend, mockJobs, testLogger)
		if err := uc.Reconcile(ctx, user); err != nil {
			t.Fatalf("Reconcile failed: %v", err)
		}

		jobs, _ := mockJobs.Load(ctx, user)
		if !reflect.DeepEqual(jobs[0], before) {
			t.Errorf("failed job changed: %+v -> %+v", before, jobs[0])
		}
		if jobs[1].Progress != 10 {
			t.Errorf("healthy job not merged: %+v", jobs[1])
		}
	})

	t.Run("reconciling the same response twice is idempotent", func(t *testing.T) {
		mockBackend := NewMockBackend()
		mockJobs := NewMockJobRepo()
		mockJobs.Seed(user, model.Job{ID: "abc123", Filename: "invoice.pdf", Status: model.JobStatusQueued, Stage: "queued"})
		mockBackend.Statuses["abc123"] = model.StatusUpdate{Status: model.JobStatusProcessing, Stage: "ocr", Progress: 40}

		uc := usecase.NewSyncUseCase(mockBackend, mockJobs, testLogger)
		if err := uc.Reconcile(ctx, user); err != nil {
			t.Fatalf("first Reconcile failed: %v", err)
		}
		once, _ := mockJobs.Load(ctx, user)
		if err := uc.Reconcile(ctx, user); err != nil {
			t.Fatalf("second Reconcile failed: %v", err)
		}
		twice, _ := mockJobs.Load(ctx, user)
		if !reflect.DeepEqual(once, twice) {
			t.Errorf("repeat reconciliation diverged: %+v vs %+v", once, twice)
		}
	})

	t.Run("a job inserted mid-tick survives the commit", func(t *testing.T) {
		mockBackend := NewMockBackend()
		mockJobs := NewMockJobRepo()
		mockJobs.Seed(user, model.Job{ID: "abc123", Filename: "invoice.pdf", Status: model.JobStatusQueued, Stage: "queued"})
		mockBackend.Statuses["abc123"] = model.StatusUpdate{Status: model.JobStatusProcessing, Stage: "ocr", Progress: 40}

		inserted := model.Job{ID: "new-1", Filename: "fresh.pdf", Status: model.JobStatusQueued, Stage: "queued"}
		mockJobs.BeforeCommit = func() {
			// An upload slips in after the tick's snapshot, before its commit.
			_ = mockJobs.Update(ctx, user, func(jobs []model.Job) []model.Job {
				return append([]model.Job{inserted}, jobs...)
			})
		}

		uc := usecase.NewSyncUseCase(mockBackend, mockJobs, testLogger)
		if err := uc.Reconcile(ctx, user); err != nil {
			t.Fatalf("Reconcile failed: %v", err)
		}

		jobs, _ := mockJobs.Load(ctx, user)
		if len(jobs) != 2 {
			t.Fatalf("inserted job lost: %+v", jobs)
		}
		if jobs[0].ID != "new-1" {
			t.Errorf("inserted job not first: %+v", jobs)
		}
		if jobs[1].Status != model.JobStatusProcessing {
			t.Errorf("reconciled job not merged: %+v", jobs[1])
		}
	})

	t.Run("cancelled context discards responses without writing", func(t *testing.T) {
		mockBackend := NewMockBackend()
		mockJobs := NewMockJobRepo()
		before := model.Job{ID: "abc123", Filename: "invoice.pdf", Status: model.JobStatusQueued, Stage: "queued"}
		mockJobs.Seed(user, before)

		cctx, cancel := context.WithCancel(ctx)
		mockBackend.StatusFunc = func(_ context.Context, jobID string) (model.StatusUpdate, error) {
			cancel() // the poller stops while this request is in flight
			return model.StatusUpdate{Status: model.JobStatusCompleted, Stage: "done", Progress: 100}, nil
		}

		uc := usecase.NewSyncUseCase(mockBackend, mockJobs, testLogger)
		if err := uc.Reconcile(cctx, user); !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}

		jobs, _ := mockJobs.Load(ctx, user)
		if !reflect.DeepEqual(jobs[0], before) {
			t.Errorf("store written after cancellation: %+v", jobs[0])
		}
	})

	t.Run("empty collection is a no-op", func(t *testing.T) {
		mockBackend := NewMockBackend()
		mockJobs := NewMockJobRepo()
		uc := usecase.NewSyncUseCase(mockBackend, mockJobs, testLogger)
		if err := uc.Reconcile(ctx, user); err != nil {
			t.Fatalf("Reconcile failed: %v", err)
		}
		if len(mockBackend.StatusCalls) != 0 {
			t.Errorf("requests issued for empty collection: %v", mockBackend.StatusCalls)
		}
	})
}
