package revx

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
)

// DefaultBaseURL is used when no base URL is configured.
const DefaultBaseURL = "http://localhost:8080"

// APIError is a non-2xx response from the server. Detail carries the
// server's explanation when one was provided.
type APIError struct {
	StatusCode int    `json:"-"`
	Detail     string `json:"detail"`
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

// envelope is the standard success wrapper used by the API.
type envelope struct {
	Status    string          `json:"status"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
	AuthToken string          `json:"auth_token,omitempty"`
}

// Client talks to a RevX server. The zero value is not usable; construct
// with NewClient.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu    sync.RWMutex
	token string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithToken sets an initial auth token.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// NewClient builds a client for the given base URL.
func NewClient(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken replaces the bearer token attached to subsequent requests.
// An empty token detaches authentication. Safe for concurrent use.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Token returns the current bearer token.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) (*envelope, error) {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		// Error bodies are best-effort JSON with a detail field.
		_ = json.Unmarshal(payload, apiErr)
		return nil, apiErr
	}

	var env envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return nil, fmt.Errorf("decode response data: %w", err)
		}
	}
	return &env, nil
}

// Register creates an account and returns the new user plus an auth token.
func (c *Client) Register(ctx context.Context, in RegisterInput) (*User, string, error) {
	var user User
	env, err := c.do(ctx, http.MethodPost, "/auth/register", in, &user)
	if err != nil {
		return nil, "", err
	}
	return &user, env.AuthToken, nil
}

// Login authenticates with email and password and returns the user plus
// an auth token.
func (c *Client) Login(ctx context.Context, email, password string) (*User, string, error) {
	body := map[string]string{"email": email, "password": password}
	var user User
	env, err := c.do(ctx, http.MethodPost, "/auth/login", body, &user)
	if err != nil {
		return nil, "", err
	}
	return &user, env.AuthToken, nil
}

// Logout tells the server to end the session.
func (c *Client) Logout(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodPost, "/auth/logout", nil, nil)
	return err
}

// CurrentUser fetches the authenticated user's profile.
func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	var user User
	if _, err := c.do(ctx, http.MethodGet, "/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ForgotPassword requests a password reset for the given email. The server
// responds identically whether or not the account exists.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	_, err := c.do(ctx, http.MethodPost, "/auth/forgot-password", map[string]string{"email": email}, nil)
	return err
}

// ChangePassword replaces the caller's password.
func (c *Client) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	body := map[string]string{
		"current_password": currentPassword,
		"new_password":     newPassword,
	}
	_, err := c.do(ctx, http.MethodPost, "/auth/change-password", body, nil)
	return err
}

// ListProjects fetches all projects in their canonical server order.
func (c *Client) ListProjects(ctx context.Context) ([]Project, error) {
	var projects []Project
	if _, err := c.do(ctx, http.MethodGet, "/project/list", nil, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// GetProject fetches one project with its relations.
func (c *Client) GetProject(ctx context.Context, id uint64) (*Project, error) {
	var project Project
	if _, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/project/get/%d", id), nil, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// ListTags fetches the tag catalog.
func (c *Client) ListTags(ctx context.Context) ([]Tag, error) {
	var tags []Tag
	if _, err := c.do(ctx, http.MethodGet, "/project/tags", nil, &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

// CreateProject creates a project owned by the caller.
func (c *Client) CreateProject(ctx context.Context, in ProjectInput) (*Project, error) {
	var project Project
	if _, err := c.do(ctx, http.MethodPost, "/project/create", in, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// UpdateProject replaces a project's fields, tags, and images.
func (c *Client) UpdateProject(ctx context.Context, id uint64, in ProjectInput) (*Project, error) {
	var project Project
	if _, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/project/update/%d", id), in, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// SubmitProject creates a project after dropping tag ids that are no
// longer in the server's catalog.
func (c *Client) SubmitProject(ctx context.Context, in ProjectInput) (*Project, error) {
	if err := c.sanitizeInput(ctx, &in); err != nil {
		return nil, err
	}
	return c.CreateProject(ctx, in)
}

// SubmitProjectUpdate updates a project after dropping tag ids that are
// no longer in the server's catalog.
func (c *Client) SubmitProjectUpdate(ctx context.Context, id uint64, in ProjectInput) (*Project, error) {
	if err := c.sanitizeInput(ctx, &in); err != nil {
		return nil, err
	}
	return c.UpdateProject(ctx, id, in)
}

func (c *Client) sanitizeInput(ctx context.Context, in *ProjectInput) error {
	if len(in.TagIDs) == 0 {
		return nil
	}
	catalog, err := c.ListTags(ctx)
	if err != nil {
		return fmt.Errorf("fetch tag catalog: %w", err)
	}
	in.TagIDs = SanitizeTagIDs(in.TagIDs, catalog)
	return nil
}

// DeleteProject removes a project the caller owns.
func (c *Client) DeleteProject(ctx context.Context, id uint64) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/project/delete/%d", id), nil, nil)
	return err
}

// AddReview posts a review on a project the caller does not own.
func (c *Client) AddReview(ctx context.Context, projectID uint64, in ReviewInput) (*Review, error) {
	var review Review
	if _, err := c.do(ctx, http.MethodPost, fmt.Sprintf("/project/add_review/%d", projectID), in, &review); err != nil {
		return nil, err
	}
	return &review, nil
}

// RemoveReview deletes a review by id.
func (c *Client) RemoveReview(ctx context.Context, reviewID uint64) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/project/remove_review/%d", reviewID), nil, nil)
	return err
}

// AddContributor attaches a user to the caller's project by username.
func (c *Client) AddContributor(ctx context.Context, projectID uint64, username string) (*Contributor, error) {
	var contributor Contributor
	body := map[string]string{"username": username}
	if _, err := c.do(ctx, http.MethodPost, fmt.Sprintf("/project/add_contributor/%d", projectID), body, &contributor); err != nil {
		return nil, err
	}
	return &contributor, nil
}

// RemoveContributor detaches a contributor from the caller's project.
func (c *Client) RemoveContributor(ctx context.Context, projectID, contributorID uint64) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/project/remove_contributor/%d/%d", projectID, contributorID), nil, nil)
	return err
}

// MyProjects lists projects owned by the caller.
func (c *Client) MyProjects(ctx context.Context) ([]Project, error) {
	var projects []Project
	if _, err := c.do(ctx, http.MethodGet, "/user/my_projects", nil, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// UpdateProfile patches the caller's profile.
func (c *Client) UpdateProfile(ctx context.Context, in ProfileInput) (*User, error) {
	var user User
	if _, err := c.do(ctx, http.MethodPut, "/user/update", in, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
