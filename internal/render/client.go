// Package render submits built edit documents to the external render service
// and polls job progress. Submission is single-shot: a failed request is
// reported to the caller, never retried behind their back.
package render

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"cutline/internal/services"
	"cutline/internal/timeline"
)

const (
	defaultHTTPTimeout = 30 * time.Second
	correlationHeader  = "X-Correlation-ID"
)

// Job is the render service's view of one submitted edit.
type Job struct {
	ID        string  `json:"id"`
	Status    string  `json:"status"`
	Progress  float64 `json:"progress,omitempty"`
	OutputURL string  `json:"output_url,omitempty"`
	Error     string  `json:"error,omitempty"`
}

// Terminal job statuses as reported by the service.
const (
	StatusQueued    = "queued"
	StatusRendering = "rendering"
	StatusDone      = "done"
	StatusFailed    = "failed"
)

// Done reports whether the job has reached a terminal state.
func (j Job) Done() bool {
	return j.Status == StatusDone || j.Status == StatusFailed
}

// Client talks to the render service's HTTP API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Option customizes the render client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout overrides the default request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// NewClient constructs a render service client.
func NewClient(baseURL, apiKey string, opts ...Option) *Client {
	client := &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		apiKey:     strings.TrimSpace(apiKey),
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// Submit posts the edit document and returns the created job. Every request
// carries a fresh correlation id so a submission can be traced through the
// service's logs.
func (c *Client) Submit(ctx context.Context, edit timeline.Edit) (Job, error) {
	var empty Job
	if c.baseURL == "" {
		return empty, services.Wrap(services.ErrConfiguration, "render", "submit", "base url required", nil)
	}
	track := edit.VideoTrack()
	if track == nil || len(track.Clips) == 0 {
		return empty, services.Wrap(services.ErrValidation, "render", "submit", "edit has no video clips", nil)
	}

	endpoint, err := url.JoinPath(c.baseURL, "/v1/renders")
	if err != nil {
		return empty, services.Wrap(services.ErrConfiguration, "render", "submit", "build url", err)
	}
	encoded, err := json.Marshal(edit)
	if err != nil {
		return empty, services.Wrap(services.ErrValidation, "render", "submit", "encode edit", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(encoded))
	if err != nil {
		return empty, services.Wrap(services.ErrExternalService, "render", "submit", "build request", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return empty, services.Wrap(services.ErrExternalService, "render", "submit", "request failed", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return empty, services.Wrap(services.ErrExternalService, "render", "submit", "read body", err)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return empty, services.Wrap(services.ErrExternalService, "render", "submit",
			fmt.Sprintf("http %d: %s", resp.StatusCode, strings.TrimSpace(string(body))), nil)
	}

	var job Job
	if err := json.Unmarshal(body, &job); err != nil {
		return empty, services.Wrap(services.ErrExternalService, "render", "submit", "decode response", err)
	}
	if job.ID == "" {
		return empty, services.Wrap(services.ErrExternalService, "render", "submit", "response missing job id", nil)
	}
	return job, nil
}

// Status fetches the current state of a submitted job.
func (c *Client) Status(ctx context.Context, jobID string) (Job, error) {
	var empty Job
	jobID = strings.TrimSpace(jobID)
	if jobID == "" {
		return empty, services.Wrap(services.ErrValidation, "render", "status", "job id required", nil)
	}

	endpoint, err := url.JoinPath(c.baseURL, "/v1/renders", jobID)
	if err != nil {
		return empty, services.Wrap(services.ErrConfiguration, "render", "status", "build url", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return empty, services.Wrap(services.ErrExternalService, "render", "status", "build request", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return empty, services.Wrap(services.ErrExternalService, "render", "status", "request failed", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return empty, services.Wrap(services.ErrExternalService, "render", "status", "read body", err)
	}
	if resp.StatusCode == http.StatusNotFound {
		return empty, services.Wrap(services.ErrNotFound, "render", "status", "job "+jobID, nil)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return empty, services.Wrap(services.ErrExternalService, "render", "status",
			fmt.Sprintf("http %d: %s", resp.StatusCode, strings.TrimSpace(string(body))), nil)
	}

	var job Job
	if err := json.Unmarshal(body, &job); err != nil {
		return empty, services.Wrap(services.ErrExternalService, "render", "status", "decode response", err)
	}
	return job, nil
}

// Await polls a job until it reaches a terminal state or the context ends.
func (c *Client) Await(ctx context.Context, jobID string, interval time.Duration) (Job, error) {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		job, err := c.Status(ctx, jobID)
		if err != nil {
			return Job{}, err
		}
		if job.Done() {
			return job, nil
		}
		select {
		case <-ctx.Done():
			return Job{}, services.Wrap(services.ErrTimeout, "render", "await", "job "+jobID, ctx.Err())
		case <-ticker.C:
		}
	}
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(correlationHeader, uuid.NewString())
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
}
