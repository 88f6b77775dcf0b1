// File: internal/infra/adapters/backend/http_client.go
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"smart-ocr-client/internal/domain"
	"smart-ocr-client/internal/domain/model"
	"smart-ocr-client/internal/domain/ports/adapter"
)

var _ adapter.ProcessingBackend = (*Client)(nil)

// Client implements adapter.ProcessingBackend against the backend REST API.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient validates the base URL and constructs a backend client.
func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("backend base url empty")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid backend base url: %w", err)
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}, nil
}

func (c *Client) endpoint(path string) string { return c.baseURL + path }

// apiMessage extracts the backend's human-readable `error` field from a
// non-2xx body, degrading to a generic message when absent or malformed.
func apiMessage(body io.Reader, fallback string) string {
	var out struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(body).Decode(&out); err != nil || out.Error == "" {
		return fallback
	}
	return out.Error
}

func (c *Client) Login(ctx context.Context, username, password string) (*model.User, error) {
	payload := map[string]string{"username": username, "password": password}
	b, _ := json.Marshal(payload)
	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("/api/login"), bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s", domain.ErrAuth, apiMessage(resp.Body, "login failed"))
	}
	var out struct {
		User struct {
			Username string `json:"username"`
			Email    string `json:"email"`
			Name     string `json:"name"`
		} `json:"user"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode login response: %w", err)
	}
	if out.User.Username == "" {
		return nil, fmt.Errorf("%w: empty user in login response", domain.ErrAuth)
	}
	return model.NewUser(out.User.Username, out.User.Email, out.User.Name)
}

func (c *Client) Register(ctx context.Context, r adapter.RegisterRequest) error {
	b, _ := json.Marshal(r)
	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("/api/register"), bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	switch {
	case resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated:
		return nil
	case resp.StatusCode == http.StatusConflict:
		return fmt.Errorf("%w: %s", domain.ErrAlreadyExists, apiMessage(resp.Body, "account already exists"))
	case resp.StatusCode == http.StatusBadRequest:
		return fmt.Errorf("%w: %s", domain.ErrInvalidArgument, apiMessage(resp.Body, "registration rejected"))
	default:
		return fmt.Errorf("%w: %s", domain.ErrAuth, apiMessage(resp.Body, "registration failed"))
	}
}

func (c *Client) Upload(ctx context.Context, filename string, content io.Reader) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, content); err != nil {
		return "", err
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("/api/upload"), &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: %s", domain.ErrUploadRejected, apiMessage(resp.Body, "upload failed"))
	}
	var out struct {
		JobID string `json:"job_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode upload response: %w", err)
	}
	if out.JobID == "" {
		return "", fmt.Errorf("%w: empty job_id in upload response", domain.ErrUploadRejected)
	}
	return out.JobID, nil
}

func (c *Client) Status(ctx context.Context, jobID string) (model.StatusUpdate, error) {
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint("/api/status/"+url.PathEscape(jobID)), nil)
	resp, err := c.client.Do(req)
	if err != nil {
		return model.StatusUpdate{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return model.StatusUpdate{}, fmt.Errorf("%w: job %s", domain.ErrNotFound, jobID)
	}
	if resp.StatusCode != http.StatusOK {
		return model.StatusUpdate{}, fmt.Errorf("status %s: %s", jobID, apiMessage(resp.Body, "status fetch failed"))
	}
	var out model.StatusUpdate
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return model.StatusUpdate{}, fmt.Errorf("decode status response: %w", err)
	}
	return out, nil
}

func (c *Client) Result(ctx context.Context, jobID string) (*model.DocumentResult, error) {
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint("/api/result/"+url.PathEscape(jobID)), nil)
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: job %s", domain.ErrNotFound, jobID)
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrNotReady, apiMessage(resp.Body, "result not ready"))
	}
	var out model.DocumentResult
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode result response: %w", err)
	}
	return &out, nil
}

func (c *Client) Search(ctx context.Context, query string) ([]model.SearchResultItem, error) {
	u := c.endpoint("/api/search") + "?q=" + url.QueryEscape(query)
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search: %s", apiMessage(resp.Body, "search failed"))
	}
	var out struct {
		Results []model.SearchResultItem `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	return out.Results, nil
}

func (c *Client) DownloadURL(ctx context.Context, jobID string) (string, error) {
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint("/api/download/"+url.PathEscape(jobID)), nil)
	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: %s", domain.ErrUnavailable, apiMessage(resp.Body, "download not available"))
	}
	var out struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode download response: %w", err)
	}
	if out.URL == "" {
		return "", fmt.Errorf("%w: empty url", domain.ErrUnavailable)
	}
	return out.URL, nil
}
