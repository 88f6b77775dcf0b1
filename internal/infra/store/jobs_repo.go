package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"smart-ocr-client/internal/domain"
	"smart-ocr-client/internal/domain/model"
	"smart-ocr-client/internal/domain/ports/repository"
)

var _ repository.JobRepository = (*JobRepo)(nil)

// JobRepo persists one job collection per username under the key
// "jobs_<username>". Mutations are serialized so that Update always
// transforms the latest committed value; a collection written by one caller
// can never be clobbered by another caller's stale snapshot.
type JobRepo struct {
	mu sync.Mutex
	kv repository.KVStore
}

func NewJobRepo(kv repository.KVStore) *JobRepo {
	return &JobRepo{kv: kv}
}

func jobsKey(username string) string { return "jobs_" + username }

func (r *JobRepo) Load(ctx context.Context, username string) ([]model.Job, error) {
	if username == "" {
		return nil, domain.ErrInvalidArgument
	}
	return r.load(ctx, username)
}

func (r *JobRepo) Update(ctx context.Context, username string, fn func([]model.Job) []model.Job) error {
	if username == "" {
		return domain.ErrInvalidArgument
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	jobs, err := r.load(ctx, username)
	if err != nil {
		return err
	}
	next := fn(jobs)
	b, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("encode jobs: %w", err)
	}
	return r.kv.Set(ctx, jobsKey(username), b)
}

func (r *JobRepo) Clear(ctx context.Context, username string) error {
	if username == "" {
		return domain.ErrInvalidArgument
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.kv.Remove(ctx, jobsKey(username))
}

// load decodes the stored collection. An absent or malformed value is an
// empty collection, never a crash in the load path.
func (r *JobRepo) load(ctx context.Context, username string) ([]model.Job, error) {
	b, err := r.kv.Get(ctx, jobsKey(username))
	if errors.Is(err, domain.ErrNotFound) {
		return []model.Job{}, nil
	}
	if err != nil {
		return nil, err
	}
	var jobs []model.Job
	if err := json.Unmarshal(b, &jobs); err != nil || jobs == nil {
		return []model.Job{}, nil
	}
	return jobs, nil
}
