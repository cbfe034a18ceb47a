// Package client talks to the taskmind HTTP API.
package client

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

	"taskmind/internal/task"
)

const defaultTimeout = 60 * time.Second

// APIError is a non-2xx response from the server.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}
	if e.Message == "" {
		return fmt.Sprintf("server returned %d", e.Status)
	}
	return fmt.Sprintf("%s (%d)", e.Message, e.Status)
}

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

func (c *Client) ListTasks(ctx context.Context, status string) ([]task.Task, error) {
	path := "/api/tasks"
	if s := strings.TrimSpace(status); s != "" {
		path += "?status=" + url.QueryEscape(s)
	}
	var out []task.Task
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateTask(ctx context.Context, in task.CreateInput) (task.Task, error) {
	var out task.Task
	err := c.do(ctx, http.MethodPost, "/api/tasks", in, &out)
	return out, err
}

func (c *Client) UpdateStatus(ctx context.Context, id, status string) (task.Task, error) {
	var out task.Task
	err := c.do(ctx, http.MethodPatch, "/api/tasks/"+url.PathEscape(id), map[string]string{"status": status}, &out)
	return out, err
}

func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/tasks/"+url.PathEscape(id), nil, nil)
}

func (c *Client) Summarize(ctx context.Context) (string, error) {
	var out struct {
		Summary string `json:"summary"`
	}
	err := c.do(ctx, http.MethodPost, "/api/tasks/summarize", nil, &out)
	return out.Summary, err
}

func (c *Client) SuggestPriority(ctx context.Context, description string) (task.Priority, error) {
	var out struct {
		Priority task.Priority `json:"priority"`
	}
	err := c.do(ctx, http.MethodPost, "/api/tasks/suggest-priority", map[string]string{"description": description}, &out)
	return out.Priority, err
}

func (c *Client) AutocompleteDescription(ctx context.Context, title string) (string, error) {
	var out struct {
		Description string `json:"description"`
	}
	err := c.do(ctx, http.MethodPost, "/api/tasks/autocomplete-description", map[string]string{"title": title}, &out)
	return out.Description, err
}

func (c *Client) do(ctx context.Context, method, path string, body, dst any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var payload struct {
			Message string `json:"message"`
			Code    string `json:"code"`
		}
		if json.Unmarshal(raw, &payload) == nil {
			apiErr.Message = payload.Message
			apiErr.Code = payload.Code
		}
		return apiErr
	}
	if dst == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
