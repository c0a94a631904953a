// Package taskapi implements the service.Service interface against the
// Todo Evolution REST backend.
package taskapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"tdo/internal/auth"
	"tdo/internal/config"
	"tdo/internal/service"
)

// basePath is the API version prefix shared by all endpoints.
const basePath = "/api/v1"

// Client implements service.Service over HTTP.
//
// The bearer token travels only in the Authorization header, never in the
// URL, so it cannot leak into server logs or shell history.
type Client struct {
	baseURL string
	sess    *auth.Manager
	logger  *zap.Logger

	// plain is used for login, which carries no credential.
	// authed attaches the bearer header via oauth2.Transport.
	plain  *http.Client
	authed *http.Client
}

// sessionTokenSource adapts the session Manager to oauth2.TokenSource.
// Token is consulted on every request, so expiry is re-evaluated each time.
type sessionTokenSource struct {
	sess *auth.Manager
}

func (s sessionTokenSource) Token() (*oauth2.Token, error) {
	raw, ok := s.sess.CurrentToken()
	if !ok {
		return nil, service.ErrNotAuthenticated
	}
	return &oauth2.Token{AccessToken: raw, TokenType: "Bearer"}, nil
}

// New creates a Client for the configured backend origin.
func New(cfg *config.Config, sess *auth.Manager, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.APIBaseURL, "/"),
		sess:    sess,
		logger:  logger,
		plain:   &http.Client{},
		authed: &http.Client{
			Transport: &oauth2.Transport{Source: sessionTokenSource{sess: sess}},
		},
	}
}

// Login implements service.Service.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	body, err := json.Marshal(map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", service.ErrLoginFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+basePath+"/auth/login", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: %v", service.ErrLoginFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.plain.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", service.ErrLoginFailed, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("api request",
		zap.String("method", req.Method),
		zap.String("path", req.URL.Path),
		zap.String("request_id", req.Header.Get("X-Request-ID")),
		zap.Int("status", resp.StatusCode),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: %s", service.ErrLoginFailed, loginDetail(resp.Body))
	}

	var payload struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("%w: %v", service.ErrLoginFailed, err)
	}
	if payload.AccessToken == "" {
		return "", fmt.Errorf("%w: empty access token in response", service.ErrLoginFailed)
	}
	return payload.AccessToken, nil
}

// ListTasks implements service.Service.
func (c *Client) ListTasks(ctx context.Context) ([]service.Task, error) {
	if _, ok := c.sess.CurrentToken(); !ok {
		return nil, service.ErrNotAuthenticated
	}

	var tasks []service.Task
	if err := c.do(ctx, http.MethodGet, "/tasks/", nil, &tasks, service.ErrFetchFailed); err != nil {
		return nil, err
	}
	return tasks, nil
}

// CreateTask implements service.Service.
func (c *Client) CreateTask(ctx context.Context, draft service.TaskDraft) (service.Task, error) {
	if _, ok := c.sess.CurrentToken(); !ok {
		return service.Task{}, service.ErrNotAuthenticated
	}

	if draft.Priority == "" {
		draft.Priority = service.PriorityMedium
	}

	var task service.Task
	if err := c.do(ctx, http.MethodPost, "/tasks/", draft, &task, service.ErrCreateFailed); err != nil {
		return service.Task{}, err
	}
	return task, nil
}

// UpdateTask implements service.Service.
func (c *Client) UpdateTask(ctx context.Context, id int64, patch service.TaskPatch) (service.Task, error) {
	if _, ok := c.sess.CurrentToken(); !ok {
		return service.Task{}, service.ErrNotAuthenticated
	}

	var task service.Task
	path := fmt.Sprintf("/tasks/%d", id)
	if err := c.do(ctx, http.MethodPatch, path, patch, &task, service.ErrUpdateFailed); err != nil {
		return service.Task{}, err
	}
	return task, nil
}

// DeleteTask implements service.Service.
func (c *Client) DeleteTask(ctx context.Context, id int64) error {
	if _, ok := c.sess.CurrentToken(); !ok {
		return service.ErrNotAuthenticated
	}

	path := fmt.Sprintf("/tasks/%d", id)
	return c.do(ctx, http.MethodDelete, path, nil, nil, service.ErrDeleteFailed)
}

// do issues an authorized request and decodes the JSON response into out,
// when out is non-nil. Any non-2xx status is reported as opErr.
func (c *Client) do(ctx context.Context, method, path string, in, out any, opErr error) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%w: %v", opErr, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+basePath+path, body)
	if err != nil {
		return fmt.Errorf("%w: %v", opErr, err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.authed.Do(req)
	if err != nil {
		// The transport surfaces a missing token as ErrNotAuthenticated.
		if errors.Is(err, service.ErrNotAuthenticated) {
			return service.ErrNotAuthenticated
		}
		return fmt.Errorf("%w: %v", opErr, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("api request",
		zap.String("method", method),
		zap.String("path", req.URL.Path),
		zap.String("request_id", req.Header.Get("X-Request-ID")),
		zap.Int("status", resp.StatusCode),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: server returned %s", opErr, resp.Status)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%w: %v", opErr, err)
		}
	}
	return nil
}

// loginDetail extracts the backend's {"detail": ...} message, falling back
// to a generic message when the body is not in that shape.
func loginDetail(body io.Reader) string {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(body).Decode(&payload); err != nil || payload.Detail == "" {
		return "invalid credentials"
	}
	return payload.Detail
}
