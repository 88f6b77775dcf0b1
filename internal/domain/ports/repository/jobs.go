package repository

import (
	"context"

	"smart-ocr-client/internal/domain/model"
)

// JobRepository is the durable, per-user job collection. The storage partition
// is derived from the username; no two users ever share one.
//
// All mutations go through Update, which applies fn to the latest stored
// collection and commits the result atomically. Expressing mutations as pure
// transformations (rather than overwrites of an earlier snapshot) is what
// keeps a job inserted mid-reconciliation from being silently dropped.
type JobRepository interface {
	// Load returns the stored collection, newest first. A missing or
	// malformed stored value yields an empty collection, never an error
	// from decoding.
	Load(ctx context.Context, username string) ([]model.Job, error)

	// Update atomically replaces the collection with fn(latest).
	Update(ctx context.Context, username string, fn func([]model.Job) []model.Job) error

	// Clear removes the user's entire collection.
	Clear(ctx context.Context, username string) error
}
