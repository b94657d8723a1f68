// Package client talks to the toolshelf HTTP API and keeps the local view of
// the catalog in sync with it.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/MrSnakeDoc/toolshelf/internal/domain"
)

// ErrNotFound matches any *APIError with status 404.
var ErrNotFound = errors.New("tool not found")

// APIError is returned for any non-2xx response.
type APIError struct {
	Status    int
	Message   string // the server's "error" field, if any
	RequestID string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api error %d", e.Status)
}

func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.Status == http.StatusNotFound
}

// Options is the body of GET /api/options.
type Options struct {
	Categories []string `json:"categories"`
	Pricing    []string `json:"pricing"`
}

// API is a typed client for the REST endpoints. It never retries; deadlines
// come from the caller's context.
type API struct {
	baseURL string
	http    *http.Client
}

// APIOption configures an API.
type APIOption func(*API)

// WithHTTPClient replaces http.DefaultClient.
func WithHTTPClient(c *http.Client) APIOption {
	return func(a *API) { a.http = c }
}

// NewAPI creates a client for the server at baseURL (ex: http://localhost:4000).
func NewAPI(baseURL string, opts ...APIOption) *API {
	a := &API{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    http.DefaultClient,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// ListTools fetches the records matching f.
func (a *API) ListTools(ctx context.Context, f domain.Filter) ([]domain.Tool, error) {
	path := "/api/tools"
	if !f.IsZero() {
		path += "?" + filterQuery(f).Encode()
	}

	var tools []domain.Tool
	if err := a.do(ctx, http.MethodGet, path, nil, &tools); err != nil {
		return nil, err
	}
	if tools == nil {
		tools = []domain.Tool{}
	}
	return tools, nil
}

func filterQuery(f domain.Filter) url.Values {
	q := url.Values{}
	if f.Category != "" && f.Category != domain.FilterAll {
		q.Set("category", f.Category)
	}
	if f.Pricing != "" && f.Pricing != domain.FilterAll {
		q.Set("pricing", f.Pricing)
	}
	if f.FeaturedOnly {
		q.Set("featured", "true")
	}
	if s := strings.TrimSpace(f.Query); s != "" {
		q.Set("q", s)
	}
	return q
}

func (a *API) GetTool(ctx context.Context, id string) (domain.Tool, error) {
	var tool domain.Tool
	err := a.do(ctx, http.MethodGet, toolPath(id), nil, &tool)
	return tool, err
}

func (a *API) CreateTool(ctx context.Context, in domain.CreateInput) (domain.Tool, error) {
	var tool domain.Tool
	err := a.do(ctx, http.MethodPost, "/api/tools", in, &tool)
	return tool, err
}

// UpdateTool sends only the fields set in patch.
func (a *API) UpdateTool(ctx context.Context, id string, patch domain.Patch) (domain.Tool, error) {
	var tool domain.Tool
	err := a.do(ctx, http.MethodPut, toolPath(id), patch, &tool)
	return tool, err
}

func (a *API) DeleteTool(ctx context.Context, id string) error {
	return a.do(ctx, http.MethodDelete, toolPath(id), nil, nil)
}

func (a *API) Options(ctx context.Context) (Options, error) {
	var opts Options
	err := a.do(ctx, http.MethodGet, "/api/options", nil, &opts)
	return opts, err
}

func toolPath(id string) string {
	return "/api/tools/" + url.PathEscape(id)
}

func (a *API) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-Id", requestID)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := a.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode, RequestID: requestID}
		var payload struct {
			Error string `json:"error"`
		}
		if data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10)); len(data) > 0 {
			if json.Unmarshal(data, &payload) == nil {
				apiErr.Message = payload.Error
			}
		}
		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
