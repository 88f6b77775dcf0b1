package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"smart-ocr-client/internal/domain"
	"smart-ocr-client/internal/domain/model"
	"smart-ocr-client/internal/domain/ports/repository"
)

var _ repository.SessionRepository = (*SessionRepo)(nil)

const sessionKey = "user"

// SessionRepo persists the active identity under a single well-known key.
// Clearing the session leaves every jobs_<username> partition untouched, so a
// later login with the same username finds its history intact.
type SessionRepo struct {
	kv repository.KVStore
}

func NewSessionRepo(kv repository.KVStore) *SessionRepo {
	return &SessionRepo{kv: kv}
}

func (r *SessionRepo) Current(ctx context.Context) (*model.User, error) {
	b, err := r.kv.Get(ctx, sessionKey)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrNoSession
	}
	if err != nil {
		return nil, err
	}
	var u model.User
	if err := json.Unmarshal(b, &u); err != nil || u.Username == "" {
		return nil, domain.ErrNoSession
	}
	return &u, nil
}

func (r *SessionRepo) Set(ctx context.Context, user *model.User) error {
	if user.IsZero() {
		return domain.ErrInvalidArgument
	}
	b, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	return r.kv.Set(ctx, sessionKey, b)
}

func (r *SessionRepo) Clear(ctx context.Context) error {
	return r.kv.Remove(ctx, sessionKey)
}
