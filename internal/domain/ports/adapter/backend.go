package adapter

import (
	"context"
	"io"

	"smart-ocr-client/internal/domain/model"
)

// RegisterRequest carries the fields the backend requires at registration.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// ProcessingBackend is the port for every remote operation the client
// performs. One method per backend endpoint; implementations are stateless.
type ProcessingBackend interface {
	// Login authenticates and returns the backend's user record.
	Login(ctx context.Context, username, password string) (*model.User, error)

	// Register creates an account. Duplicate usernames map to
	// domain.ErrAlreadyExists.
	Register(ctx context.Context, req RegisterRequest) error

	// Upload submits a document and returns the backend-assigned job id.
	Upload(ctx context.Context, filename string, content io.Reader) (string, error)

	// Status fetches the authoritative state for one job.
	Status(ctx context.Context, jobID string) (model.StatusUpdate, error)

	// Result fetches a completed job's output. A job that is not complete
	// maps to domain.ErrNotReady.
	Result(ctx context.Context, jobID string) (*model.DocumentResult, error)

	// Search queries previously processed documents.
	Search(ctx context.Context, query string) ([]model.SearchResultItem, error)

	// DownloadURL resolves a short-lived artifact URL for a job.
	DownloadURL(ctx context.Context, jobID string) (string, error)
}
