package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Typed failures surfaced by the API client.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
)

// APIError carries the server's error message for 4xx/5xx responses that are
// not one of the sentinel cases.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (%d): %s", e.Status, e.Message)
}

// Task mirrors the server's task representation.
type Task struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
	Deadline    string `json:"deadline,omitempty"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// NewTask carries the fields for task creation. Zero values fall back to the
// server defaults (status "To Do", priority "Medium").
type NewTask struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status,omitempty"`
	Priority    string `json:"priority,omitempty"`
	Deadline    string `json:"deadline,omitempty"`
}

// TaskPatch is a partial update; nil fields are left untouched. Setting
// Deadline to an empty string clears it.
type TaskPatch struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
	Priority    *string `json:"priority,omitempty"`
	Deadline    *string `json:"deadline"`
}

// Client is a typed API client bound to a Session. Protected calls fail fast
// with ErrNoSession when no token is held; a server-side 401 surfaces as
// ErrUnauthorized and it is the caller's decision whether to clear the session.
type Client struct {
	baseURL string
	session *Session
	http    *http.Client
}

func New(baseURL string, session *Session) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		session: session,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *Client) Register(ctx context.Context, username, password string) error {
	body := map[string]string{"username": username, "password": password}
	return c.do(ctx, http.MethodPost, "/api/auth/register", body, false, nil)
}

// Login authenticates and stores the issued token in the session.
func (c *Client) Login(ctx context.Context, username, password string) error {
	body := map[string]string{"username": username, "password": password}
	var resp struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, false, &resp); err != nil {
		return err
	}
	return c.session.Set(resp.Token)
}

// Logout clears the local session. The token itself stays valid server-side
// until it expires; there is no revocation.
func (c *Client) Logout() error {
	return c.session.Clear()
}

func (c *Client) Me(ctx context.Context) (string, error) {
	var resp struct {
		Username string `json:"username"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, true, &resp); err != nil {
		return "", err
	}
	return resp.Username, nil
}

func (c *Client) ChangeUsername(ctx context.Context, newUsername string) (string, error) {
	body := map[string]string{"newUsername": newUsername}
	var resp struct {
		Username string `json:"username"`
	}
	if err := c.do(ctx, http.MethodPut, "/api/auth/change-username", body, true, &resp); err != nil {
		return "", err
	}
	return resp.Username, nil
}

func (c *Client) ChangePassword(ctx context.Context, oldPassword, newPassword, confirmPassword string) error {
	body := map[string]string{
		"oldPassword":     oldPassword,
		"newPassword":     newPassword,
		"confirmPassword": confirmPassword,
	}
	return c.do(ctx, http.MethodPut, "/api/auth/change-password", body, true, nil)
}

func (c *Client) ListTasks(ctx context.Context) ([]Task, error) {
	var tasks []Task
	if err := c.do(ctx, http.MethodGet, "/api/tasks", nil, true, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (c *Client) CreateTask(ctx context.Context, input NewTask) (*Task, error) {
	var task Task
	if err := c.do(ctx, http.MethodPost, "/api/tasks", input, true, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *Client) UpdateTask(ctx context.Context, id int64, patch TaskPatch) (*Task, error) {
	var task Task
	path := fmt.Sprintf("/api/tasks/%d", id)
	if err := c.do(ctx, http.MethodPut, path, patch, true, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// MoveTask is the board drag-and-drop operation: one idempotent status change
// per move.
func (c *Client) MoveTask(ctx context.Context, id int64, status string) (*Task, error) {
	var task Task
	path := fmt.Sprintf("/api/tasks/%d/status", id)
	if err := c.do(ctx, http.MethodPut, path, map[string]string{"status": status}, true, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *Client) DeleteTask(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/api/tasks/%d", id)
	return c.do(ctx, http.MethodDelete, path, nil, true, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body any, authed bool, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		token := c.session.Token()
		if token == "" {
			return ErrNoSession
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		switch resp.StatusCode {
		case http.StatusUnauthorized:
			return ErrUnauthorized
		case http.StatusNotFound:
			return ErrNotFound
		}
		return &APIError{Status: resp.StatusCode, Message: readErrorMessage(resp.Body)}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func readErrorMessage(r io.Reader) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(r).Decode(&payload); err != nil || payload.Error == "" {
		return "request failed"
	}
	return payload.Error
}
