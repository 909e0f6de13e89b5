// Package api implements the HTTP client for the authentication server.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/authd/internal/common"
	"github.com/dmitrijs2005/authd/internal/server/models"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
)

// Client talks to the authentication server over HTTP and keeps the access
// token obtained by Register or Login for subsequent authenticated calls.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	accessToken string
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// IsAuthenticated reports whether the client holds an access token.
func (c *Client) IsAuthenticated() bool {
	return c.accessToken != ""
}

// Logout drops the stored access token.
func (c *Client) Logout() {
	c.accessToken = ""
}

type detailResponse struct {
	Detail string `json:"detail"`
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnavailable, err.Error())
	}
	return resp, nil
}

// apiError turns a non-2xx response into an error, preferring the "detail"
// message the server puts in its JSON error bodies.
func apiError(resp *http.Response, body []byte) error {
	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	var d detailResponse
	if err := json.Unmarshal(body, &d); err == nil && d.Detail != "" {
		return errors.New(d.Detail)
	}
	return fmt.Errorf("unexpected status %d", resp.StatusCode)
}

func (c *Client) postForm(ctx context.Context, path string, form url.Values) (*models.Token, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, apiError(resp, body)
	}

	var token models.Token
	if err := json.Unmarshal(body, &token); err != nil {
		return nil, fmt.Errorf("error decoding token: %w", err)
	}
	return &token, nil
}

func (c *Client) authedRequest(ctx context.Context, method, path string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set(common.AuthHeaderName, common.BearerPrefix+" "+c.accessToken)
	return req, nil
}

func credentialsForm(username string, password []byte) url.Values {
	return url.Values{
		"username": {username},
		"password": {string(password)},
	}
}

// Register creates an account and stores the returned access token.
func (c *Client) Register(ctx context.Context, username string, password []byte) error {
	token, err := c.postForm(ctx, "/register", credentialsForm(username, password))
	if err != nil {
		return err
	}
	c.accessToken = token.AccessToken
	return nil
}

// Login authenticates and stores the returned access token.
func (c *Client) Login(ctx context.Context, username string, password []byte) error {
	token, err := c.postForm(ctx, "/login", credentialsForm(username, password))
	if err != nil {
		return err
	}
	c.accessToken = token.AccessToken
	return nil
}

// Me returns the username of the current session.
func (c *Client) Me(ctx context.Context) (string, error) {
	req, err := c.authedRequest(ctx, http.MethodGet, "/users/me")
	if err != nil {
		return "", err
	}

	resp, err := c.do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		return "", apiError(resp, body)
	}

	var me struct {
		Username string `json:"username"`
	}
	if err := json.Unmarshal(body, &me); err != nil {
		return "", err
	}
	return me.Username, nil
}

// ListUsers returns all registered users. Requires an admin session.
func (c *Client) ListUsers(ctx context.Context) ([]models.UserInfo, error) {
	req, err := c.authedRequest(ctx, http.MethodGet, "/admin/users")
	if err != nil {
		return nil, err
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp, body)
	}

	var users []models.UserInfo
	if err := json.Unmarshal(body, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// DeleteUser removes a user by username. Requires an admin session.
func (c *Client) DeleteUser(ctx context.Context, username string) error {
	req, err := c.authedRequest(ctx, http.MethodDelete, "/admin/users/"+url.PathEscape(username))
	if err != nil {
		return err
	}

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		return apiError(resp, body)
	}
	return nil
}
