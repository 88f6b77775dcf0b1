package repository

import (
	"context"

	"smart-ocr-client/internal/domain/model"
)

// SessionRepository persists the single active identity across process runs.
// Current returns domain.ErrNoSession when nobody is signed in.
type SessionRepository interface {
	Current(ctx context.Context) (*model.User, error)
	Set(ctx context.Context, user *model.User) error
	Clear(ctx context.Context) error
}
