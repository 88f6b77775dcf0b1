package usecase

import (
	"context"

	"smart-ocr-client/internal/domain"
	"smart-ocr-client/internal/domain/model"
	"smart-ocr-client/internal/domain/ports/adapter"
	"smart-ocr-client/internal/domain/ports/repository"
	"smart-ocr-client/internal/infra/logging"

	"github.com/rs/zerolog"
)

// Compile-time check
var _ SessionUseCase = (*sessionUC)(nil)

// SessionUseCase owns the active identity. Login swaps the storage partition
// every dependent component reads from; Logout detaches it without deleting
// any per-user history.
type SessionUseCase interface {
	Login(ctx context.Context, username, password string) (*model.User, error)
	Register(ctx context.Context, req adapter.RegisterRequest) error
	Logout(ctx context.Context) error
	// Current returns the signed-in user or domain.ErrNoSession.
	Current(ctx context.Context) (*model.User, error)
}

type sessionUC struct {
	backend  adapter.ProcessingBackend
	sessions repository.SessionRepository
	log      *zerolog.Logger
}

func NewSessionUseCase(backend adapter.ProcessingBackend, sessions repository.SessionRepository, logger *zerolog.Logger) *sessionUC {
	return &sessionUC{backend: backend, sessions: sessions, log: logger}
}

func (s *sessionUC) Login(ctx context.Context, username, password string) (*model.User, error) {
	defer logging.TraceDuration(s.log, "SessionUC.Login")()

	if username == "" || password == "" {
		return nil, domain.ErrInvalidArgument
	}
	user, err := s.backend.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}
	if err := s.sessions.Set(ctx, user); err != nil {
		return nil, err
	}
	s.log.Info().Str("username", user.Username).Msg("logged in")
	return user, nil
}

func (s *sessionUC) Register(ctx context.Context, req adapter.RegisterRequest) error {
	defer logging.TraceDuration(s.log, "SessionUC.Register")()

	if req.Username == "" || req.Email == "" || req.Name == "" || req.Password == "" {
		return domain.ErrInvalidArgument
	}
	return s.backend.Register(ctx, req)
}

func (s *sessionUC) Logout(ctx context.Context) error {
	defer logging.TraceDuration(s.log, "SessionUC.Logout")()

	// Only the identity record goes away. jobs_<username> stays put so the
	// same user logging back in recovers their history.
	return s.sessions.Clear(ctx)
}

func (s *sessionUC) Current(ctx context.Context) (*model.User, error) {
	return s.sessions.Current(ctx)
}
