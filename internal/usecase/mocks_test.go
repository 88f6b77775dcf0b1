//go:build !integration

package usecase_test

import (
	"context"
	"io"
	"sync"

	"github.com/rs/zerolog"

	"smart-ocr-client/internal/domain"
	"smart-ocr-client/internal/domain/model"
	"smart-ocr-client/internal/domain/ports/adapter"
	"smart-ocr-client/internal/domain/ports/repository"
)

// newTestLogger creates a silent zerolog.Logger for use in tests.
// It writes to io.Discard to prevent logs from cluttering test output.
func newTestLogger() *zerolog.Logger {
	logger := zerolog.New(io.Discard)
	return &logger
}

// ---- Mock ProcessingBackend ----

// MockBackend implements adapter.ProcessingBackend with overridable behavior
// per method and canned responses keyed by job id.
type MockBackend struct {
	mu sync.Mutex

	Statuses   map[string]model.StatusUpdate
	StatusErrs map[string]error
	// StatusCalls records every job id a Status request was issued for.
	StatusCalls []string

	LoginFunc       func(ctx context.Context, username, password string) (*model.User, error)
	RegisterFunc    func(ctx context.Context, req adapter.RegisterRequest) error
	UploadFunc      func(ctx context.Context, filename string, content io.Reader) (string, error)
	StatusFunc      func(ctx context.Context, jobID string) (model.StatusUpdate, error)
	ResultFunc      func(ctx context.Context, jobID string) (*model.DocumentResult, error)
	SearchFunc      func(ctx context.Context, query string) ([]model.SearchResultItem, error)
	DownloadURLFunc func(ctx context.Context, jobID string) (string, error)
}

var _ adapter.ProcessingBackend = (*MockBackend)(nil)

func NewMockBackend() *MockBackend {
	return &MockBackend{
		Statuses:   make(map[string]model.StatusUpdate),
		StatusErrs: make(map[string]error),
	}
}

func (m *MockBackend) Login(ctx context.Context, username, password string) (*model.User, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, username, password)
	}
	return model.NewUser(username, "", "")
}

func (m *MockBackend) Register(ctx context.Context, req adapter.RegisterRequest) error {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, req)
	}
	return nil
}

func (m *MockBackend) Upload(ctx context.Context, filename string, content io.Reader) (string, error) {
	if m.UploadFunc != nil {
		return m.UploadFunc(ctx, filename, content)
	}
	return "job-" + filename, nil
}

func (m *MockBackend) Status(ctx context.Context, jobID string) (model.StatusUpdate, error) {
	m.mu.Lock()
	m.StatusCalls = append(m.StatusCalls, jobID)
	m.mu.Unlock()
	if m.StatusFunc != nil {
		return m.StatusFunc(ctx, jobID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if err, ok := m.StatusErrs[jobID]; ok {
		return model.StatusUpdate{}, err
	}
	if s, ok := m.Statuses[jobID]; ok {
		return s, nil
	}
	return model.StatusUpdate{}, domain.ErrNotFound
}

func (m *MockBackend) Result(ctx context.Context, jobID string) (*model.DocumentResult, error) {
	if m.ResultFunc != nil {
		return m.ResultFunc(ctx, jobID)
	}
	return nil, domain.ErrNotReady
}

func (m *MockBackend) Search(ctx context.Context, query string) ([]model.SearchResultItem, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, query)
	}
	return nil, nil
}

func (m *MockBackend) DownloadURL(ctx context.Context, jobID string) (string, error) {
	if m.DownloadURLFunc != nil {
		return m.DownloadURLFunc(ctx, jobID)
	}
	return "", domain.ErrUnavailable
}

func (m *MockBackend) CallsFor(jobID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, id := range m.StatusCalls {
		if id == jobID {
			n++
		}
	}
	return n
}

// ---- Mock JobRepository ----

// MockJobRepo is an in-memory JobRepository. Update applies fn to the latest
// stored collection under a lock, matching the real repo's commit semantics.
// BeforeCommit, when set, runs inside Update after fn was chosen but before
// its result is committed, letting tests interleave a concurrent insert.
type MockJobRepo struct {
	mu   sync.Mutex
	data map[string][]model.Job

	LoadErr      error
	UpdateErr    error
	BeforeCommit func()
}

var _ repository.JobRepository = (*MockJobRepo)(nil)

func NewMockJobRepo() *MockJobRepo {
	return &MockJobRepo{data: make(map[string][]model.Job)}
}

func (m *MockJobRepo) Load(ctx context.Context, username string) ([]model.Job, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneJobs(m.data[username]), nil
}

func (m *MockJobRepo) Update(ctx context.Context, username string, fn func([]model.Job) []model.Job) error {
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.BeforeCommit != nil {
		hook := m.BeforeCommit
		m.BeforeCommit = nil
		m.mu.Unlock()
		hook()
		m.mu.Lock()
	}
	m.data[username] = fn(cloneJobs(m.data[username]))
	return nil
}

func (m *MockJobRepo) Clear(ctx context.Context, username string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, username)
	return nil
}

func (m *MockJobRepo) Seed(username string, jobs ...model.Job) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[username] = cloneJobs(jobs)
}

func cloneJobs(jobs []model.Job) []model.Job {
	out := make([]model.Job, len(jobs))
	copy(out, jobs)
	return out
}

// ---- Mock SessionRepository ----

type MockSessionRepo struct {
	mu   sync.Mutex
	user *model.User

	SetErr error
}

var _ repository.SessionRepository = (*MockSessionRepo)(nil)

func NewMockSessionRepo() *MockSessionRepo { return &MockSessionRepo{} }

func (m *MockSessionRepo) Current(ctx context.Context) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return nil, domain.ErrNoSession
	}
	cp := *m.user
	return &cp, nil
}

func (m *MockSessionRepo) Set(ctx context.Context, user *model.User) error {
	if m.SetErr != nil {
		return m.SetErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *user
	m.user = &cp
	return nil
}

func (m *MockSessionRepo) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.user = nil
	return nil
}
